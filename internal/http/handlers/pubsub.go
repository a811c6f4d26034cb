package handlers

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-ledger/internal/pubsub"
	"github.com/mauv0809/padel-ledger/internal/scoreboard"
)

// pushMessage is the envelope of a Pub/Sub push delivery.
type pushMessage struct {
	Subscription string `json:"subscription"`
	Message      struct {
		Data       string            `json:"data"`
		Attributes map[string]string `json:"attributes"`
	} `json:"message"`
}

// NotifyEventHandler receives ledger events from a push subscription and
// sends the matching Slack notification.
func NotifyEventHandler(sb *scoreboard.Scoreboard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		log.Debug("Received ledger event", "body", string(bodyBytes))

		var push pushMessage
		if err := json.Unmarshal(bodyBytes, &push); err != nil {
			log.Error("Failed to unmarshal wrapper JSON", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		rawData, err := base64.StdEncoding.DecodeString(push.Message.Data)
		if err != nil {
			log.Error("Failed to decode base64 data", "error", err)
			http.Error(w, "Invalid base64 data", http.StatusBadRequest)
			return
		}

		topic := pubsub.EventType(push.Message.Attributes["event"])
		if err := sb.HandleEvent(topic, rawData, IsDryRunFromContext(r)); err != nil {
			log.Error("Failed to handle ledger event", "error", err, "topic", topic, "subscription", push.Subscription)
			http.Error(w, "Failed to handle event", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}
