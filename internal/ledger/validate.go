package ledger

import (
	"fmt"
	"strconv"
	"strings"
)

// Reason names the first structural problem found in a submitted match.
type Reason string

const (
	ReasonMissingFields        Reason = "MissingFields"
	ReasonDuplicateWithinTeam1 Reason = "DuplicateWithinTeam1"
	ReasonDuplicateWithinTeam2 Reason = "DuplicateWithinTeam2"
	ReasonPlayerOnBothTeams    Reason = "PlayerOnBothTeams"
	ReasonInvalidScore         Reason = "InvalidScore"
)

// ValidationError rejects a submission before anything is written.
// Team is set to 1 or 2 for InvalidScore and is zero otherwise.
type ValidationError struct {
	Reason Reason
	Team   int
}

func (e *ValidationError) Error() string {
	switch e.Reason {
	case ReasonMissingFields:
		return "both teams need two players and a date"
	case ReasonDuplicateWithinTeam1:
		return "team 1 lists the same player twice"
	case ReasonDuplicateWithinTeam2:
		return "team 2 lists the same player twice"
	case ReasonPlayerOnBothTeams:
		return "a player cannot be on both teams"
	case ReasonInvalidScore:
		return fmt.Sprintf("score for team %d must be a whole number of 0 or more", e.Team)
	}
	return string(e.Reason)
}

// Validate checks a proposed match. Checks run in a fixed order and the first
// failure is returned.
func Validate(team1, team2 []string, score1, score2, date string) error {
	if !complete(team1) || !complete(team2) || strings.TrimSpace(date) == "" {
		return &ValidationError{Reason: ReasonMissingFields}
	}
	t1 := trimAll(team1)
	t2 := trimAll(team2)
	if t1[0] == t1[1] {
		return &ValidationError{Reason: ReasonDuplicateWithinTeam1}
	}
	if t2[0] == t2[1] {
		return &ValidationError{Reason: ReasonDuplicateWithinTeam2}
	}
	for _, a := range t1 {
		for _, b := range t2 {
			if a == b {
				return &ValidationError{Reason: ReasonPlayerOnBothTeams}
			}
		}
	}
	if _, err := ParseScore(score1); err != nil {
		return &ValidationError{Reason: ReasonInvalidScore, Team: 1}
	}
	if _, err := ParseScore(score2); err != nil {
		return &ValidationError{Reason: ReasonInvalidScore, Team: 2}
	}
	return nil
}

// ValidateDraft runs Validate over a draft's fields.
func ValidateDraft(d MatchDraft) error {
	return Validate(d.Team1Players, d.Team2Players, d.ScoreTeam1, d.ScoreTeam2, d.Date)
}

// ParseScore parses a non-negative integer score.
func ParseScore(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("score is empty")
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("score %q is not an integer: %w", raw, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("score %d is negative", n)
	}
	return n, nil
}

func complete(team []string) bool {
	if len(team) != 2 {
		return false
	}
	for _, name := range team {
		if strings.TrimSpace(name) == "" {
			return false
		}
	}
	return true
}

func trimAll(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = strings.TrimSpace(n)
	}
	return out
}
