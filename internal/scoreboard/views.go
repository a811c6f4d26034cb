package scoreboard

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-ledger/internal/ledger"
	"github.com/mauv0809/padel-ledger/internal/stats"
)

// Matches returns the active matches that pass the criteria, newest day first.
func (s *Scoreboard) Matches(c stats.Criteria) ([]ledger.Match, error) {
	matches, err := s.store.GetMatches()
	if err != nil {
		return nil, fmt.Errorf("failed to get matches: %w", err)
	}
	return stats.Filter(matches, c), nil
}

// DailySummaries filters the record set and folds it into per-day summaries.
func (s *Scoreboard) DailySummaries(c stats.Criteria) (map[string]stats.DailySummary, error) {
	snap, err := s.store.Snapshot()
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}
	return s.aggregate(narrow(snap, c)), nil
}

// Daily returns the summary of a single day. The second value is false when
// nothing was recorded on that day.
func (s *Scoreboard) Daily(date string) (stats.DailySummary, bool, error) {
	days, err := s.DailySummaries(stats.Criteria{DateFrom: date, DateTo: date})
	if err != nil {
		return stats.DailySummary{}, false, err
	}
	day, ok := days[date]
	return day, ok, nil
}

// Rankings ranks every player over the matches that pass the criteria.
func (s *Scoreboard) Rankings(c stats.Criteria) (stats.Rankings, error) {
	matches, err := s.Matches(c)
	if err != nil {
		return stats.Rankings{}, err
	}
	return stats.Rank(stats.GlobalSummary(matches)), nil
}

// PlayerStats returns the all-time summary of one player. The second value is
// false when the player never played an active match.
func (s *Scoreboard) PlayerStats(name string) (stats.PlayerSummary, bool, error) {
	matches, err := s.store.GetMatches()
	if err != nil {
		return stats.PlayerSummary{}, false, fmt.Errorf("failed to get matches: %w", err)
	}
	summary, ok := stats.GlobalSummary(matches)[name]
	return summary, ok, nil
}

// Watch keeps the cached View current until ctx is done. It recomputes the
// view from every snapshot the store pushes.
func (s *Scoreboard) Watch(ctx context.Context) {
	snapshots, cancel := s.store.Subscribe()
	defer cancel()

	log.Info("Watching ledger for changes")
	for {
		select {
		case <-ctx.Done():
			log.Info("Stopped watching ledger")
			return
		case snap, ok := <-snapshots:
			if !ok {
				return
			}
			view := &View{
				Daily:     s.aggregate(snap),
				Rankings:  stats.Rank(stats.GlobalSummary(snap.Matches)),
				UpdatedAt: s.now().UTC(),
			}
			s.mu.Lock()
			s.view = view
			s.mu.Unlock()
			log.Debug("Scoreboard view refreshed", "days", len(view.Daily), "players", len(view.Rankings.ByPlayed))
		}
	}
}

// Current returns the view cached by Watch, or nil before the first snapshot.
func (s *Scoreboard) Current() *View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view
}

// AnnounceDaily posts the summary of date to Slack.
func (s *Scoreboard) AnnounceDaily(date string, dryRun bool) error {
	day, _, err := s.Daily(date)
	if err != nil {
		return err
	}
	if err := s.notifier.SendDailySummary(date, day, dryRun); err != nil {
		return fmt.Errorf("failed to send daily summary: %w", err)
	}
	return nil
}

// AnnounceLeaderboard posts the all-time leaderboard to Slack.
func (s *Scoreboard) AnnounceLeaderboard(dryRun bool) error {
	rankings, err := s.Rankings(stats.Criteria{})
	if err != nil {
		return err
	}
	if err := s.notifier.SendLeaderboard(rankings, dryRun); err != nil {
		return fmt.Errorf("failed to send leaderboard: %w", err)
	}
	return nil
}

// Today is the current calendar day in the ledger's date format.
func (s *Scoreboard) Today() string {
	return s.now().Format(ledger.DateLayout)
}

func (s *Scoreboard) aggregate(snap ledger.Snapshot) map[string]stats.DailySummary {
	start := time.Now()
	days := stats.Aggregate(snap, s.Today())
	s.metrics.ObserveAggregationDuration(time.Since(start).Seconds())
	return days
}

// narrow applies the criteria to both the active matches and the deletion log.
// An empty criteria keeps the snapshot as is.
func narrow(snap ledger.Snapshot, c stats.Criteria) ledger.Snapshot {
	if c.IsZero() {
		return snap
	}
	return ledger.Snapshot{
		Matches:   stats.Filter(snap.Matches, c),
		Deletions: stats.FilterDeletions(snap.Deletions, c),
		Payments:  snap.Payments,
	}
}
