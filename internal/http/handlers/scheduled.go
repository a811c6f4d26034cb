package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-ledger/internal/playtomic"
	"github.com/mauv0809/padel-ledger/internal/scoreboard"
)

// ImportPlaytomicHandler imports the club's Playtomic matches of the last
// `days` days, today only by default.
func ImportPlaytomicHandler(importer *playtomic.Importer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		days := intQuery(r, "days", 0)
		since := time.Now().AddDate(0, 0, -days)
		log.Info("Starting Playtomic import...", "since", since.Format("2006-01-02"))

		result, err := importer.Import(r.Context(), since, IsDryRunFromContext(r))
		if err != nil {
			log.Error("Playtomic import failed", "error", err)
			http.Error(w, "Failed to import matches", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

// AnnounceDailyHandler posts a day's summary to Slack, today by default.
func AnnounceDailyHandler(sb *scoreboard.Scoreboard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date := r.URL.Query().Get("date")
		if date == "" {
			date = sb.Today()
		}
		if err := sb.AnnounceDaily(date, IsDryRunFromContext(r)); err != nil {
			log.Error("Failed to announce daily summary", "error", err, "date", date)
			http.Error(w, "Failed to announce daily summary", http.StatusInternalServerError)
			return
		}
		fmt.Fprintf(w, "Daily summary for %s sent.", date)
	}
}

func AnnounceLeaderboardHandler(sb *scoreboard.Scoreboard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := sb.AnnounceLeaderboard(IsDryRunFromContext(r)); err != nil {
			log.Error("Failed to announce leaderboard", "error", err)
			http.Error(w, "Failed to announce leaderboard", http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, "Leaderboard sent.")
	}
}
