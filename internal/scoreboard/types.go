package scoreboard

import (
	"errors"
	"sync"
	"time"

	"github.com/mauv0809/padel-ledger/internal/metrics"
	"github.com/mauv0809/padel-ledger/internal/pubsub"
	"github.com/mauv0809/padel-ledger/internal/stats"
)

// UnverifiedRecorder is the loadedBy value for matches entered without a
// known recorder.
const UnverifiedRecorder = "unverified"

// ErrInvalidPayment is returned when a payment toggle lacks a date or player.
var ErrInvalidPayment = errors.New("payment toggle needs a date and a player")

// Scoreboard runs ledger writes and computes the derived views.
type Scoreboard struct {
	store    Store
	notifier Notifier
	metrics  metrics.Metrics
	pubsub   pubsub.PubSubClient

	// When set, Slack notifications are sent from the Pub/Sub push handler
	// instead of inline with the write.
	notifyViaEvents bool
	now             func() time.Time

	mu   sync.RWMutex
	view *View
}

// View is the latest recomputation of the full ledger, kept by Watch.
type View struct {
	Daily     map[string]stats.DailySummary `json:"daily"`
	Rankings  stats.Rankings                `json:"rankings"`
	UpdatedAt time.Time                     `json:"updated_at"`
}
