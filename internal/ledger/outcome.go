package ledger

import (
	"fmt"
	"strings"
)

// Outcome is the winner of a match together with its display label.
type Outcome struct {
	Winner Winner
	Label  string
}

// ResolveWinner decides the winner from the two scores. The result is stored on
// the match and never derived again from the scores.
func ResolveWinner(score1, score2 int, team1, team2 []string) Outcome {
	switch {
	case score1 > score2:
		return Outcome{Winner: WinnerTeam1, Label: teamLabel(1, team1)}
	case score2 > score1:
		return Outcome{Winner: WinnerTeam2, Label: teamLabel(2, team2)}
	default:
		return Outcome{Winner: WinnerDraw, Label: string(WinnerDraw)}
	}
}

func teamLabel(n int, players []string) string {
	return fmt.Sprintf("Team %d (%s)", n, strings.Join(players, " & "))
}
