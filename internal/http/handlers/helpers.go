package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-ledger/internal/club"
	"github.com/mauv0809/padel-ledger/internal/ledger"
	"github.com/mauv0809/padel-ledger/internal/scoreboard"
	"github.com/mauv0809/padel-ledger/internal/stats"
)

// ContextKey is a custom type to avoid key collisions in context.
type ContextKey string

const (
	DryRunKey ContextKey = "dryRun"
)

// IsDryRunFromContext is a helper to safely retrieve the dry_run flag from the request context.
func IsDryRunFromContext(r *http.Request) bool {
	dryRun, ok := r.Context().Value(DryRunKey).(bool)
	return ok && dryRun
}

// errorResponse is the JSON body of every failed API call.
type errorResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

// writeError maps ledger errors to a status code. Unknown errors are logged
// and reported as 500 without their details.
func writeError(w http.ResponseWriter, err error) {
	var verr *ledger.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: verr.Error(), Reason: string(verr.Reason)})
	case errors.Is(err, club.ErrMatchNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, scoreboard.ErrInvalidPayment):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		log.Error("Request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

// criteriaFromQuery reads the match filter from the query string.
func criteriaFromQuery(r *http.Request) stats.Criteria {
	q := r.URL.Query()
	return stats.Criteria{
		Player:   q.Get("player"),
		DateFrom: q.Get("from"),
		DateTo:   q.Get("to"),
		Year:     q.Get("year"),
		Month:    q.Get("month"),
	}
}

// score accepts a JSON number or string and keeps the raw text, so the
// validator sees exactly what the client sent.
type score string

func (s *score) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		*s = score(raw)
		return nil
	}
	*s = score(data)
	return nil
}

// matchRequest is the body of POST /matches and PUT /matches/{id}.
type matchRequest struct {
	Team1Players        []string `json:"team1_players"`
	Team2Players        []string `json:"team2_players"`
	ScoreTeam1          score    `json:"score_team1"`
	ScoreTeam2          score    `json:"score_team2"`
	Date                string   `json:"date"`
	Comment             string   `json:"comment"`
	LoadedBy            string   `json:"loaded_by"`
	EditedBy            string   `json:"edited_by"`
	PendingConfirmation bool     `json:"pending_confirmation"`
}

func (m matchRequest) draft() ledger.MatchDraft {
	return ledger.MatchDraft{
		Team1Players: m.Team1Players,
		Team2Players: m.Team2Players,
		ScoreTeam1:   string(m.ScoreTeam1),
		ScoreTeam2:   string(m.ScoreTeam2),
		Date:         m.Date,
		Comment:      m.Comment,
	}
}

// paymentRequest is the body of POST /payments/toggle.
type paymentRequest struct {
	Date      string `json:"date"`
	Player    string `json:"player"`
	ChangedBy string `json:"changed_by"`
}

// intQuery parses a positive integer query parameter, falling back to def.
func intQuery(r *http.Request, key string, def int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		log.Warn("Invalid query parameter, using default", "param", key, "value", raw, "default", def)
		return def
	}
	return n
}
