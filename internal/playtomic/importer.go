package playtomic

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-ledger/internal/ledger"
	"github.com/mauv0809/padel-ledger/internal/metrics"
	"golang.org/x/sync/errgroup"
)

const defaultLimit = 4

// NewImporter creates an Importer for the club identified by tenantID.
func NewImporter(client PlaytomicClient, recorder Recorder, ledger Ledger, metrics metrics.Metrics, tenantID string) *Importer {
	return &Importer{
		client:   client,
		recorder: recorder,
		ledger:   ledger,
		metrics:  metrics,
		tenantID: tenantID,
		limit:    defaultLimit,
	}
}

// Import records every played doubles match with confirmed results that
// started on or after since. Matches are stored as pending confirmation with
// their Playtomic ID as source, and matches imported before are skipped.
func (i *Importer) Import(ctx context.Context, since time.Time, dryRun bool) (ImportResult, error) {
	i.metrics.IncImportRuns()
	var result ImportResult

	summaries, err := i.client.GetMatches(ctx, &SearchMatchesParams{
		SportID:       "PADEL",
		HasPlayers:    true,
		Sort:          "start_date,ASC",
		TenantIDs:     []string{i.tenantID},
		FromStartDate: since.Format(ledger.DateLayout) + "T00:00:00",
	})
	if err != nil {
		return result, fmt.Errorf("failed to search playtomic matches: %w", err)
	}
	result.Found = len(summaries)

	imported, err := i.importedIDs()
	if err != nil {
		return result, err
	}

	var (
		mu      sync.Mutex
		matches []PadelMatch
		failed  int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(i.limit)
	for _, summary := range summaries {
		if imported[SourceID(summary.MatchID)] {
			log.Debug("Skipping already imported match", "matchID", summary.MatchID)
			result.Skipped++
			continue
		}
		matchID := summary.MatchID
		g.Go(func() error {
			match, err := i.client.GetSpecificMatch(gctx, matchID)
			if err != nil {
				log.Error("Error fetching specific match", "matchID", matchID, "error", err)
				mu.Lock()
				failed++
				mu.Unlock()
				return nil
			}
			mu.Lock()
			matches = append(matches, match)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return result, err
	}
	result.Failed = failed
	if err := ctx.Err(); err != nil {
		return result, err
	}

	sort.Slice(matches, func(a, b int) bool {
		if !matches[a].Start.Equal(matches[b].Start) {
			return matches[a].Start.Before(matches[b].Start)
		}
		return matches[a].MatchID < matches[b].MatchID
	})
	for _, match := range matches {
		draft, ok := ToDraft(match)
		if !ok {
			log.Debug("Skipping match without a usable result", "matchID", match.MatchID, "gameStatus", match.GameStatus, "resultsStatus", match.ResultsStatus)
			result.Skipped++
			continue
		}
		if _, err := i.recorder.ImportMatch(draft, ImportedBy, SourceID(match.MatchID), dryRun); err != nil {
			var verr *ledger.ValidationError
			if errors.As(err, &verr) {
				log.Warn("Playtomic match rejected", "matchID", match.MatchID, "reason", verr.Reason)
				result.Skipped++
				continue
			}
			return result, fmt.Errorf("failed to record playtomic match %s: %w", match.MatchID, err)
		}
		result.Imported++
	}

	log.Info("Playtomic import finished", "found", result.Found, "imported", result.Imported, "skipped", result.Skipped, "failed", result.Failed, "dryRun", dryRun)
	return result, nil
}

// ToDraft converts a played doubles match with confirmed results. The score
// of each team is the number of sets it won.
func ToDraft(m PadelMatch) (ledger.MatchDraft, bool) {
	if m.GameStatus != GameStatusPlayed || m.ResultsStatus != ResultsStatusConfirmed || len(m.Results) == 0 {
		return ledger.MatchDraft{}, false
	}
	if len(m.Teams) != 2 || len(m.Teams[0].Players) != 2 || len(m.Teams[1].Players) != 2 {
		return ledger.MatchDraft{}, false
	}

	team1, team2 := m.Teams[0], m.Teams[1]
	var sets1, sets2 int
	for _, set := range m.Results {
		s1, s2 := set.Scores[team1.ID], set.Scores[team2.ID]
		switch {
		case s1 > s2:
			sets1++
		case s2 > s1:
			sets2++
		}
	}

	return ledger.MatchDraft{
		Team1Players: names(team1),
		Team2Players: names(team2),
		ScoreTeam1:   strconv.Itoa(sets1),
		ScoreTeam2:   strconv.Itoa(sets2),
		Date:         m.Start.Format(ledger.DateLayout),
		Comment:      m.ResourceName,
	}, true
}

// SourceID is the ledger source of the Playtomic match with the given ID.
func SourceID(matchID string) string {
	return sourcePrefix + matchID
}

// importedIDs collects the sources of matches already in the ledger,
// including deleted ones so a deletion is not undone by the next import.
func (i *Importer) importedIDs() (map[string]bool, error) {
	snap, err := i.ledger.Snapshot()
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger: %w", err)
	}
	ids := make(map[string]bool)
	for _, m := range snap.Matches {
		if m.SourceID != "" {
			ids[m.SourceID] = true
		}
	}
	for _, rec := range snap.Deletions {
		if source := rec.OriginalMatch.SourceID; source != "" {
			ids[source] = true
			continue
		}
		// Snapshots deleted before sources had their own column carry the
		// ID as the first word of the comment.
		if fields := strings.Fields(rec.OriginalMatch.Comment); len(fields) > 0 && strings.HasPrefix(fields[0], sourcePrefix) {
			ids[fields[0]] = true
		}
	}
	return ids, nil
}

func names(t Team) []string {
	out := make([]string, len(t.Players))
	for i, p := range t.Players {
		out[i] = p.Name
	}
	return out
}
