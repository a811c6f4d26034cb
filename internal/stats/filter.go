package stats

import (
	"strings"

	"github.com/mauv0809/padel-ledger/internal/ledger"
)

// Filter returns the active, complete matches that satisfy every set criterion.
// The input slice is not modified.
func Filter(matches []ledger.Match, c Criteria) []ledger.Match {
	out := make([]ledger.Match, 0, len(matches))
	for _, m := range matches {
		if m.IsDeleted || !isComplete(m) {
			continue
		}
		if c.matches(m) {
			out = append(out, m)
		}
	}
	return out
}

// FilterDeletions applies the same criteria to the snapshots in the deletion
// log, so filtered day views can still show what was deleted.
func FilterDeletions(records []ledger.DeletionRecord, c Criteria) []ledger.DeletionRecord {
	out := make([]ledger.DeletionRecord, 0, len(records))
	for _, rec := range records {
		if !isComplete(rec.OriginalMatch) {
			continue
		}
		if c.matches(rec.OriginalMatch) {
			out = append(out, rec)
		}
	}
	return out
}

func (c Criteria) matches(m ledger.Match) bool {
	if c.Player != "" && !m.HasPlayer(c.Player) {
		return false
	}
	if c.DateFrom != "" && m.Date < c.DateFrom {
		return false
	}
	if c.DateTo != "" && m.Date > c.DateTo {
		return false
	}
	if c.Year != "" && !(len(m.Date) >= 4 && m.Date[:4] == c.Year) {
		return false
	}
	if c.Month != "" && !(len(m.Date) >= 7 && m.Date[5:7] == padMonth(c.Month)) {
		return false
	}
	return true
}

func isComplete(m ledger.Match) bool {
	return m.Date != "" && len(m.Team1Players) > 0 && len(m.Team2Players) > 0
}

func padMonth(month string) string {
	month = strings.TrimSpace(month)
	if len(month) == 1 {
		return "0" + month
	}
	return month
}
