package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-ledger/internal/club"
	"github.com/mauv0809/padel-ledger/internal/ledger"
	"github.com/mauv0809/padel-ledger/internal/notifier"
	"github.com/mauv0809/padel-ledger/internal/scoreboard"
	"github.com/mauv0809/padel-ledger/internal/stats"
	"github.com/slack-go/slack"
)

// respondWithSlackMsg is a helper to format and write a Slack message as an HTTP response.
func respondWithSlackMsg(w http.ResponseWriter, msg slack.Message) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(msg); err != nil {
		log.Error("Failed to encode slack message to JSON", "error", err)
	}
}

// respondWithFormatted writes the output of a notifier Format* call.
func respondWithFormatted(w http.ResponseWriter, msg any, err error) {
	if err != nil {
		http.Error(w, "Failed to format response", http.StatusInternalServerError)
		log.Error("Failed to format slack response", "error", err)
		return
	}
	slackMsg, ok := msg.(slack.Message)
	if !ok {
		http.Error(w, "Invalid message format for Slack", http.StatusInternalServerError)
		log.Error("Failed to cast message to slack.Message")
		return
	}
	respondWithSlackMsg(w, slackMsg)
}

func LeaderboardCommandHandler(sb *scoreboard.Scoreboard, notifier notifier.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rankings, err := sb.Rankings(stats.Criteria{})
		if err != nil {
			http.Error(w, "Failed to get rankings", http.StatusInternalServerError)
			log.Error("Failed to get rankings", "error", err)
			return
		}
		msg, err := notifier.FormatLeaderboardResponse(rankings)
		respondWithFormatted(w, msg, err)
	}
}

func PlayerStatsCommandHandler(sb *scoreboard.Scoreboard, mapper *club.PlayerMapper, notifier notifier.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}
		query := strings.TrimSpace(r.FormValue("text"))
		if query == "" {
			http.Error(w, "Player name is required.", http.StatusBadRequest)
			return
		}
		log.Info("Received player stats command", "player", query, "user", r.FormValue("user_name"))

		name, suggestions, err := mapper.Resolve(query)
		if err != nil {
			http.Error(w, "Failed to look up player", http.StatusInternalServerError)
			log.Error("Failed to resolve player", "error", err, "query", query)
			return
		}
		if name == "" {
			names := make([]string, len(suggestions))
			for i, s := range suggestions {
				names[i] = s.Name
			}
			msg, err := notifier.FormatPlayerNotFoundResponse(query, names)
			respondWithFormatted(w, msg, err)
			return
		}

		summary, ok, err := sb.PlayerStats(name)
		if err != nil {
			http.Error(w, "Failed to get player stats", http.StatusInternalServerError)
			log.Error("Failed to get player stats", "error", err, "player", name)
			return
		}
		if !ok {
			log.Warn("Could not find player stats", "player", name)
			msg, err := notifier.FormatPlayerNotFoundResponse(query, nil)
			respondWithFormatted(w, msg, err)
			return
		}
		msg, err := notifier.FormatPlayerStatsResponse(name, summary)
		respondWithFormatted(w, msg, err)
	}
}

// DailyCommandHandler answers with a day's summary. The text is an optional
// YYYY-MM-DD date, today by default.
func DailyCommandHandler(sb *scoreboard.Scoreboard, notifier notifier.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}
		date := strings.TrimSpace(r.FormValue("text"))
		if date == "" {
			date = sb.Today()
		}
		if _, err := time.Parse(ledger.DateLayout, date); err != nil {
			http.Error(w, "Date must look like 2024-03-01.", http.StatusBadRequest)
			return
		}

		day, _, err := sb.Daily(date)
		if err != nil {
			http.Error(w, "Failed to get daily summary", http.StatusInternalServerError)
			log.Error("Failed to get daily summary", "error", err, "date", date)
			return
		}
		msg, err := notifier.FormatDailySummaryResponse(date, day)
		respondWithFormatted(w, msg, err)
	}
}
