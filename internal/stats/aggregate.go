package stats

import (
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-ledger/internal/ledger"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Aggregate folds the snapshot into per-day summaries keyed by date.
//
// Active matches and deletion snapshots are listed per day, active first, each
// group most recent first. Only active matches count towards played/won/lost.
// A player who appears only in that day's deleted matches is still listed,
// with zero counts, when a payment record exists for them on that day.
// A match without a date is filed under today and empty player names are
// skipped. The inputs are never modified, so repeated calls give equal results.
func Aggregate(snap ledger.Snapshot, today string) map[string]DailySummary {
	type day struct {
		active  []MatchView
		deleted []MatchView
		counts  map[string]*PlayerSummary
		seen    map[string]bool
	}
	days := make(map[string]*day)
	get := func(date string) *day {
		if date == "" {
			log.Debug("Match without date filed under today", "today", today)
			date = today
		}
		d, ok := days[date]
		if !ok {
			d = &day{counts: make(map[string]*PlayerSummary), seen: make(map[string]bool)}
			days[date] = d
		}
		return d
	}

	for _, m := range snap.Matches {
		d := get(m.Date)
		markSeen(d.seen, m)
		if m.IsDeleted {
			d.deleted = append(d.deleted, MatchView{Match: m})
			continue
		}
		d.active = append(d.active, MatchView{Match: m})
		attribute(d.counts, m)
	}
	for _, rec := range snap.Deletions {
		m := rec.OriginalMatch
		m.IsDeleted = true
		deletedAt := rec.DeletedAt
		d := get(m.Date)
		markSeen(d.seen, m)
		d.deleted = append(d.deleted, MatchView{Match: m, DeletedBy: rec.DeletedBy, DeletedAt: &deletedAt})
	}

	out := make(map[string]DailySummary, len(days))
	for date, d := range days {
		sortByRecency(d.active)
		sortByRecency(d.deleted)

		views := make([]MatchView, 0, len(d.active)+len(d.deleted))
		views = append(views, d.active...)
		views = append(views, d.deleted...)

		summary := make(map[string]DailyPlayerSummary, len(d.counts))
		for player, c := range d.counts {
			entry := DailyPlayerSummary{PlayerSummary: withWinPercentage(*c), PaymentHistory: []ledger.PaymentChange{}}
			if p, ok := snap.Payments[ledger.PaymentKey{Date: date, Player: player}]; ok {
				entry.Paid = p.Paid
				entry.PaymentHistory = append(entry.PaymentHistory, p.History...)
			}
			summary[player] = entry
		}
		for player := range d.seen {
			if _, ok := summary[player]; ok {
				continue
			}
			p, ok := snap.Payments[ledger.PaymentKey{Date: date, Player: player}]
			if !ok {
				continue
			}
			summary[player] = DailyPlayerSummary{
				Paid:           p.Paid,
				PaymentHistory: append([]ledger.PaymentChange{}, p.History...),
			}
		}
		out[date] = DailySummary{Matches: views, Summary: summary}
	}
	return out
}

// GlobalSummary folds every active match into one summary per player.
func GlobalSummary(matches []ledger.Match) map[string]PlayerSummary {
	counts := make(map[string]*PlayerSummary)
	for _, m := range matches {
		if m.IsDeleted {
			continue
		}
		attribute(counts, m)
	}
	out := make(map[string]PlayerSummary, len(counts))
	for player, c := range counts {
		out[player] = withWinPercentage(*c)
	}
	return out
}

// WinPercentage is won/played*100 rounded to two decimals, 0 when nothing was played.
func WinPercentage(won, played int) float64 {
	if played == 0 {
		return 0
	}
	pct, _ := decimal.NewFromInt(int64(won)).
		Mul(hundred).
		Div(decimal.NewFromInt(int64(played))).
		Round(2).
		Float64()
	return pct
}

func attribute(counts map[string]*PlayerSummary, m ledger.Match) {
	credit := func(players []string, won, lost bool) {
		for _, p := range players {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			c, ok := counts[p]
			if !ok {
				c = &PlayerSummary{}
				counts[p] = c
			}
			c.Played++
			if won {
				c.Won++
			}
			if lost {
				c.Lost++
			}
		}
	}
	switch m.Winner {
	case ledger.WinnerTeam1:
		credit(m.Team1Players, true, false)
		credit(m.Team2Players, false, true)
	case ledger.WinnerTeam2:
		credit(m.Team1Players, false, true)
		credit(m.Team2Players, true, false)
	default:
		credit(m.Team1Players, false, false)
		credit(m.Team2Players, false, false)
	}
}

func markSeen(seen map[string]bool, m ledger.Match) {
	for _, players := range [][]string{m.Team1Players, m.Team2Players} {
		for _, p := range players {
			if p = strings.TrimSpace(p); p != "" {
				seen[p] = true
			}
		}
	}
}

func withWinPercentage(s PlayerSummary) PlayerSummary {
	s.WinPercentage = WinPercentage(s.Won, s.Played)
	return s
}

func sortByRecency(views []MatchView) {
	sort.SliceStable(views, func(i, j int) bool {
		if !views[i].CreatedAt.Equal(views[j].CreatedAt) {
			return views[i].CreatedAt.After(views[j].CreatedAt)
		}
		return views[i].ID < views[j].ID
	})
}
