package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-ledger/internal/club"
	"github.com/mauv0809/padel-ledger/internal/scoreboard"
	"github.com/mauv0809/padel-ledger/internal/stats"
)

func ListPlayersHandler(store club.ClubStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		players, err := store.GetAllPlayers()
		if err != nil {
			http.Error(w, "Failed to get players", http.StatusInternalServerError)
			log.Error("Failed to get players from store", "error", err)
			return
		}
		writeJSON(w, http.StatusOK, players)
	}
}

func ListMatchesHandler(sb *scoreboard.Scoreboard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matches, err := sb.Matches(criteriaFromQuery(r))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, matches)
	}
}

func RecordMatchHandler(sb *scoreboard.Scoreboard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req matchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Warn("Invalid match body", "error", err)
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
			return
		}

		match, err := sb.RecordMatch(req.draft(), req.LoadedBy, req.PendingConfirmation, IsDryRunFromContext(r))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, match)
	}
}

func EditMatchHandler(sb *scoreboard.Scoreboard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req matchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Warn("Invalid match body", "error", err)
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
			return
		}
		editor := req.EditedBy
		if editor == "" {
			editor = scoreboard.UnverifiedRecorder
		}

		match, err := sb.EditMatch(r.PathValue("id"), req.draft(), editor, IsDryRunFromContext(r))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, match)
	}
}

func DeleteMatchHandler(sb *scoreboard.Scoreboard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deletedBy := r.URL.Query().Get("by")
		if deletedBy == "" {
			deletedBy = scoreboard.UnverifiedRecorder
		}

		record, err := sb.DeleteMatch(r.PathValue("id"), deletedBy, IsDryRunFromContext(r))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, record)
	}
}

func ConfirmMatchHandler(sb *scoreboard.Scoreboard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		match, err := sb.ConfirmMatch(r.PathValue("id"), IsDryRunFromContext(r))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, match)
	}
}

func TogglePaymentHandler(sb *scoreboard.Scoreboard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req paymentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
			return
		}
		changedBy := req.ChangedBy
		if changedBy == "" {
			changedBy = scoreboard.UnverifiedRecorder
		}

		status, err := sb.TogglePayment(req.Date, req.Player, changedBy, IsDryRunFromContext(r))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, status)
	}
}

func DailySummaryHandler(sb *scoreboard.Scoreboard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		days, err := sb.DailySummaries(criteriaFromQuery(r))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, days)
	}
}

func RankingsHandler(sb *scoreboard.Scoreboard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rankings, err := sb.Rankings(criteriaFromQuery(r))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, rankings)
	}
}

// ScoreboardHandler serves the view kept by Watch. Before the first snapshot
// arrives the view is computed on the spot.
func ScoreboardHandler(sb *scoreboard.Scoreboard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if view := sb.Current(); view != nil {
			writeJSON(w, http.StatusOK, view)
			return
		}

		log.Debug("No cached scoreboard view yet, computing one")
		days, err := sb.DailySummaries(stats.Criteria{})
		if err != nil {
			writeError(w, err)
			return
		}
		rankings, err := sb.Rankings(stats.Criteria{})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, scoreboard.View{Daily: days, Rankings: rankings})
	}
}
