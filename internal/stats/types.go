package stats

import (
	"time"

	"github.com/mauv0809/padel-ledger/internal/ledger"
)

// PlayerSummary holds a player's derived results. It is recomputed from the
// record set on every query and never stored.
type PlayerSummary struct {
	Played        int     `json:"played"`
	Won           int     `json:"won"`
	Lost          int     `json:"lost"`
	WinPercentage float64 `json:"win_percentage"`
}

// DailyPlayerSummary is a player's summary for one day, with the session fee
// status for that day.
type DailyPlayerSummary struct {
	PlayerSummary
	Paid           bool                   `json:"paid"`
	PaymentHistory []ledger.PaymentChange `json:"payment_history"`
}

// MatchView is a match as shown in a day's list. Deleted matches carry the
// deletion metadata from the deletion log.
type MatchView struct {
	ledger.Match
	DeletedBy string     `json:"deleted_by,omitempty"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// DailySummary groups a day's matches with the per-player summary for that day.
type DailySummary struct {
	Matches []MatchView                   `json:"matches"`
	Summary map[string]DailyPlayerSummary `json:"summary"`
}

// RankedPlayer is one row in a leaderboard.
type RankedPlayer struct {
	Player string        `json:"player"`
	Stats  PlayerSummary `json:"stats"`
}

// Rankings holds the four leaderboards, each a full ordering of the players.
type Rankings struct {
	ByPlayed  []RankedPlayer `json:"by_played"`
	ByWon     []RankedPlayer `json:"by_won"`
	ByLost    []RankedPlayer `json:"by_lost"`
	ByWinRate []RankedPlayer `json:"by_win_rate"`
}

// Criteria narrows the match set. Empty fields do not filter.
type Criteria struct {
	Player   string `json:"player,omitempty"`
	DateFrom string `json:"date_from,omitempty"`
	DateTo   string `json:"date_to,omitempty"`
	Year     string `json:"year,omitempty"`
	Month    string `json:"month,omitempty"`
}

// IsZero reports whether no filter is set.
func (c Criteria) IsZero() bool {
	return c == Criteria{}
}
