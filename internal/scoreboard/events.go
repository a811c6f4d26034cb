package scoreboard

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-ledger/internal/pubsub"
)

// HandleEvent sends the Slack notification for a ledger event delivered by a
// Pub/Sub push subscription. Events without a notification are acknowledged.
func (s *Scoreboard) HandleEvent(topic pubsub.EventType, data []byte, dryRun bool) error {
	switch topic {
	case pubsub.EventMatchRecorded:
		var event pubsub.MatchEvent
		if err := s.pubsub.ProcessMessage(data, &event); err != nil {
			return fmt.Errorf("failed to decode %s event: %w", topic, err)
		}
		return s.notifier.SendMatchRecorded(&event.Match, dryRun)
	case pubsub.EventMatchDeleted:
		var event pubsub.DeletionEvent
		if err := s.pubsub.ProcessMessage(data, &event); err != nil {
			return fmt.Errorf("failed to decode %s event: %w", topic, err)
		}
		return s.notifier.SendMatchDeleted(&event.Record, dryRun)
	case pubsub.EventMatchEdited, pubsub.EventMatchConfirmed, pubsub.EventPaymentToggled:
		log.Debug("No notification for event", "topic", topic)
		return nil
	default:
		return fmt.Errorf("unknown event type %q", topic)
	}
}
