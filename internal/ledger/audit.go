package ledger

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MinorEdit is recorded when an edit changes none of the tracked fields.
const MinorEdit = "Minor edit"

// Diff describes what an edit changes, one entry per changed field, in the
// order team1Players, team2Players, scoreTeam1, scoreTeam2, date, comment.
func Diff(original Match, updated MatchDraft) []string {
	var changes []string
	add := func(field, before, after string) {
		if before != after {
			changes = append(changes, fmt.Sprintf("%s changed from %s to %s", field, display(before), display(after)))
		}
	}

	add("team1Players", roster(original.Team1Players), roster(trimAll(updated.Team1Players)))
	add("team2Players", roster(original.Team2Players), roster(trimAll(updated.Team2Players)))
	add("scoreTeam1", strconv.Itoa(original.ScoreTeam1), normalizeScore(updated.ScoreTeam1))
	add("scoreTeam2", strconv.Itoa(original.ScoreTeam2), normalizeScore(updated.ScoreTeam2))
	add("date", original.Date, strings.TrimSpace(updated.Date))
	add("comment", original.Comment, strings.TrimSpace(updated.Comment))

	if len(changes) == 0 {
		return []string{MinorEdit}
	}
	return changes
}

// ApplyEdit validates the draft and returns the edited match with a new entry
// appended to its history. Pending confirmation and deletion state are left as
// they were.
func ApplyEdit(original Match, d MatchDraft, editor string, at time.Time) (Match, error) {
	if err := ValidateDraft(d); err != nil {
		return Match{}, err
	}
	changes := Diff(original, d)

	edited := original
	applyDraft(&edited, d)

	history := make([]EditEntry, 0, len(original.EditHistory)+1)
	history = append(history, original.EditHistory...)
	edited.EditHistory = append(history, EditEntry{
		EditedBy: editor,
		EditedAt: at,
		Changes:  changes,
	})
	return edited, nil
}

// ToDraft turns a stored match back into an editable draft.
func ToDraft(m Match) MatchDraft {
	return MatchDraft{
		Team1Players: append([]string(nil), m.Team1Players...),
		Team2Players: append([]string(nil), m.Team2Players...),
		ScoreTeam1:   strconv.Itoa(m.ScoreTeam1),
		ScoreTeam2:   strconv.Itoa(m.ScoreTeam2),
		Date:         m.Date,
		Comment:      m.Comment,
	}
}

func roster(players []string) string {
	return strings.Join(players, " & ")
}

func normalizeScore(raw string) string {
	if n, err := ParseScore(raw); err == nil {
		return strconv.Itoa(n)
	}
	return strings.TrimSpace(raw)
}

func display(v string) string {
	if v == "" {
		return "(empty)"
	}
	return v
}
