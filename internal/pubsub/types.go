package pubsub

import (
	"time"

	"cloud.google.com/go/pubsub"
	"github.com/mauv0809/padel-ledger/internal/ledger"
)

type client struct {
	client   *pubsub.Client
	teardown func()
}

// EventType represents the type of event/message sent via pubsub.
// The value doubles as the topic name.
type EventType string

const (
	EventMatchRecorded  EventType = "match-recorded"
	EventMatchEdited    EventType = "match-edited"
	EventMatchDeleted   EventType = "match-deleted"
	EventMatchConfirmed EventType = "match-confirmed"
	EventPaymentToggled EventType = "payment-toggled"
)

// MatchEvent is the payload for match-recorded, match-edited and
// match-confirmed.
type MatchEvent struct {
	Match ledger.Match `msgpack:"match"`
	Actor string       `msgpack:"actor"`
}

// DeletionEvent is the payload for match-deleted.
type DeletionEvent struct {
	Record ledger.DeletionRecord `msgpack:"record"`
}

// PaymentEvent is the payload for payment-toggled.
type PaymentEvent struct {
	Date      string    `msgpack:"date"`
	Player    string    `msgpack:"player"`
	Paid      bool      `msgpack:"paid"`
	ChangedBy string    `msgpack:"changed_by"`
	At        time.Time `msgpack:"at"`
}
