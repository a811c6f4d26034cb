package ledger

import "time"

// DateLayout is the calendar-day format used for every match and payment date.
const DateLayout = "2006-01-02"

// Winner is the side that won a match, stored at write time.
type Winner string

const (
	WinnerTeam1 Winner = "Team1"
	WinnerTeam2 Winner = "Team2"
	WinnerDraw  Winner = "Draw"
)

// Match is a completed doubles game.
type Match struct {
	ID                  string      `json:"id" msgpack:"id"`
	Date                string      `json:"date" msgpack:"date"`
	Team1Players        []string    `json:"team1_players" msgpack:"team1_players"`
	Team2Players        []string    `json:"team2_players" msgpack:"team2_players"`
	ScoreTeam1          int         `json:"score_team1" msgpack:"score_team1"`
	ScoreTeam2          int         `json:"score_team2" msgpack:"score_team2"`
	Winner              Winner      `json:"winner" msgpack:"winner"`
	WinnerLabel         string      `json:"winner_label" msgpack:"winner_label"`
	Comment             string      `json:"comment,omitempty" msgpack:"comment"`
	LoadedBy            string      `json:"loaded_by" msgpack:"loaded_by"`
	CreatedAt           time.Time   `json:"created_at" msgpack:"created_at"`
	EditHistory         []EditEntry `json:"edit_history,omitempty" msgpack:"edit_history"`
	PendingConfirmation bool        `json:"pending_confirmation" msgpack:"pending_confirmation"`
	IsDeleted           bool        `json:"is_deleted" msgpack:"is_deleted"`
	// SourceID identifies the match in an external system it was imported
	// from. It is set on creation and never edited.
	SourceID            string      `json:"source_id,omitempty" msgpack:"source_id"`
}

// Players returns the four player slots, team 1 first.
func (m Match) Players() []string {
	players := make([]string, 0, len(m.Team1Players)+len(m.Team2Players))
	players = append(players, m.Team1Players...)
	return append(players, m.Team2Players...)
}

// HasPlayer reports whether name plays on either team.
func (m Match) HasPlayer(name string) bool {
	for _, p := range m.Players() {
		if p == name {
			return true
		}
	}
	return false
}

// MatchDraft holds the fields a caller submits when creating or editing a match.
// Scores are kept as raw strings so the validator can reject non-integers.
type MatchDraft struct {
	Team1Players []string `json:"team1_players"`
	Team2Players []string `json:"team2_players"`
	ScoreTeam1   string   `json:"score_team1"`
	ScoreTeam2   string   `json:"score_team2"`
	Date         string   `json:"date"`
	Comment      string   `json:"comment"`
}

// EditEntry is one audit record in a match's edit history.
type EditEntry struct {
	EditedBy string    `json:"edited_by" msgpack:"edited_by"`
	EditedAt time.Time `json:"edited_at" msgpack:"edited_at"`
	Changes  []string  `json:"changes" msgpack:"changes"`
}

// DeletionRecord is the immutable snapshot kept when a match is soft-deleted.
type DeletionRecord struct {
	OriginalMatch Match     `json:"original_match" msgpack:"original_match"`
	DeletedBy     string    `json:"deleted_by" msgpack:"deleted_by"`
	DeletedAt     time.Time `json:"deleted_at" msgpack:"deleted_at"`
}

// PaymentKey identifies a payment status by day and player.
type PaymentKey struct {
	Date   string
	Player string
}

// PaymentChange is one entry in a payment status history.
type PaymentChange struct {
	ChangedBy string    `json:"changed_by" msgpack:"changed_by"`
	Action    string    `json:"action" msgpack:"action"`
	Timestamp time.Time `json:"timestamp" msgpack:"timestamp"`
}

const (
	PaymentActionPaid   = "marked paid"
	PaymentActionUnpaid = "marked unpaid"
)

// PaymentStatus records whether a player paid the session fee on a day.
type PaymentStatus struct {
	Date    string          `json:"date" msgpack:"date"`
	Player  string          `json:"player" msgpack:"player"`
	Paid    bool            `json:"paid" msgpack:"paid"`
	History []PaymentChange `json:"payment_history" msgpack:"payment_history"`
}

// Snapshot is the full current record set delivered by the store.
type Snapshot struct {
	Matches   []Match
	Deletions []DeletionRecord
	Payments  map[PaymentKey]PaymentStatus
}
