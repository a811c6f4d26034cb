package stats_test

import (
	"testing"
	"time"

	"github.com/mauv0809/padel-ledger/internal/ledger"
	"github.com/mauv0809/padel-ledger/internal/stats"
	"github.com/stretchr/testify/assert"
)

func ids(matches []ledger.Match) []string {
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.ID
	}
	return out
}

func TestFilter(t *testing.T) {
	m1 := match(t, "m1", "2024-03-01", []string{"A", "B"}, []string{"C", "D"}, "5", "3", t0)
	m2 := match(t, "m2", "2024-11-15", []string{"E", "F"}, []string{"C", "D"}, "5", "3", t0)
	m3 := match(t, "m3", "2023-03-01", []string{"A", "B"}, []string{"C", "D"}, "5", "3", t0)
	m4 := match(t, "m4", "2024-04-10", []string{"C", "A"}, []string{"B", "D"}, "5", "3", t0)
	m4.IsDeleted = true
	incomplete := ledger.Match{ID: "m5", Team1Players: []string{"A", "B"}}
	all := []ledger.Match{m1, m2, m3, m4, incomplete}

	tests := []struct {
		name     string
		criteria stats.Criteria
		want     []string
	}{
		{"no criteria", stats.Criteria{}, []string{"m1", "m2", "m3"}},
		{"year and player", stats.Criteria{Year: "2024", Player: "A"}, []string{"m1"}},
		{"player on team two", stats.Criteria{Player: "D"}, []string{"m1", "m2", "m3"}},
		{"inclusive range", stats.Criteria{DateFrom: "2024-03-01", DateTo: "2024-11-15"}, []string{"m1", "m2"}},
		{"month padded", stats.Criteria{Month: "3"}, []string{"m1", "m3"}},
		{"month two digits", stats.Criteria{Month: "11"}, []string{"m2"}},
		{"year and month", stats.Criteria{Year: "2023", Month: "03"}, []string{"m3"}},
		{"unknown player", stats.Criteria{Player: "Z"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(stats.Filter(all, tt.criteria)))
		})
	}
}

func TestFilterDeletions(t *testing.T) {
	at := time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC)
	records := []ledger.DeletionRecord{
		{OriginalMatch: match(t, "d1", "2024-03-01", []string{"A", "B"}, []string{"C", "D"}, "5", "3", t0), DeletedBy: "A", DeletedAt: at},
		{OriginalMatch: match(t, "d2", "2023-03-01", []string{"A", "B"}, []string{"C", "D"}, "5", "3", t0), DeletedBy: "A", DeletedAt: at},
	}

	got := stats.FilterDeletions(records, stats.Criteria{Year: "2024", Player: "A"})
	if assert.Len(t, got, 1) {
		assert.Equal(t, "d1", got[0].OriginalMatch.ID)
	}
}

func TestCriteriaIsZero(t *testing.T) {
	assert.True(t, stats.Criteria{}.IsZero())
	assert.False(t, stats.Criteria{Month: "1"}.IsZero())
}
