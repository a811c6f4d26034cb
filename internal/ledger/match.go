package ledger

import (
	"strings"
	"time"
)

// NewMatch validates a draft and builds the match to be stored. The winner is
// resolved here, once.
func NewMatch(d MatchDraft, loadedBy string, pending bool, at time.Time) (Match, error) {
	if err := ValidateDraft(d); err != nil {
		return Match{}, err
	}
	m := Match{
		LoadedBy:            loadedBy,
		CreatedAt:           at,
		PendingConfirmation: pending,
	}
	applyDraft(&m, d)
	return m, nil
}

// applyDraft copies a validated draft onto m and recomputes the winner.
func applyDraft(m *Match, d MatchDraft) {
	m.Team1Players = trimAll(d.Team1Players)
	m.Team2Players = trimAll(d.Team2Players)
	m.ScoreTeam1, _ = ParseScore(d.ScoreTeam1)
	m.ScoreTeam2, _ = ParseScore(d.ScoreTeam2)
	m.Date = strings.TrimSpace(d.Date)
	m.Comment = strings.TrimSpace(d.Comment)

	outcome := ResolveWinner(m.ScoreTeam1, m.ScoreTeam2, m.Team1Players, m.Team2Players)
	m.Winner = outcome.Winner
	m.WinnerLabel = outcome.Label
}
