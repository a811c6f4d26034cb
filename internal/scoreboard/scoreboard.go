package scoreboard

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-ledger/internal/ledger"
	"github.com/mauv0809/padel-ledger/internal/metrics"
	"github.com/mauv0809/padel-ledger/internal/pubsub"
)

// New creates a new Scoreboard. With notifyViaEvents set, Slack messages are
// left to the Pub/Sub push handler.
func New(store Store, notifier Notifier, metrics metrics.Metrics, pubsub pubsub.PubSubClient, notifyViaEvents bool) *Scoreboard {
	return &Scoreboard{
		store:           store,
		notifier:        notifier,
		metrics:         metrics,
		pubsub:          pubsub,
		notifyViaEvents: notifyViaEvents,
		now:             time.Now,
	}
}

// RecordMatch validates the draft and stores a new match. A match without a
// recorder is stored as pending confirmation and loaded by "unverified".
// In dry-run mode the match is built but not stored or published.
func (s *Scoreboard) RecordMatch(draft ledger.MatchDraft, loadedBy string, pending, dryRun bool) (*ledger.Match, error) {
	return s.record(draft, loadedBy, "", pending, dryRun)
}

// ImportMatch records a match taken from an external system. The match is
// pending confirmation and keeps sourceID, which edits never touch.
func (s *Scoreboard) ImportMatch(draft ledger.MatchDraft, loadedBy, sourceID string, dryRun bool) (*ledger.Match, error) {
	return s.record(draft, loadedBy, sourceID, true, dryRun)
}

func (s *Scoreboard) record(draft ledger.MatchDraft, loadedBy, sourceID string, pending, dryRun bool) (*ledger.Match, error) {
	loadedBy = strings.TrimSpace(loadedBy)
	if loadedBy == "" {
		loadedBy = UnverifiedRecorder
		pending = true
	}

	match, err := ledger.NewMatch(draft, loadedBy, pending, s.now().UTC())
	if err != nil {
		s.rejected(err)
		return nil, err
	}
	match.SourceID = sourceID

	if dryRun {
		log.Info("[Dry Run] Would have recorded match", "date", match.Date, "winner", match.Winner)
	} else {
		if _, err := s.store.CreateMatch(&match); err != nil {
			return nil, fmt.Errorf("failed to record match: %w", err)
		}
		s.metrics.IncMatchesRecorded()
		s.publish(pubsub.EventMatchRecorded, pubsub.MatchEvent{Match: match, Actor: loadedBy})
	}
	log.Info("Match recorded", "matchID", match.ID, "date", match.Date, "winner", match.Winner, "pending", match.PendingConfirmation, "source", sourceID)

	if !s.notifyViaEvents || dryRun {
		if err := s.notifier.SendMatchRecorded(&match, dryRun); err != nil {
			log.Error("Failed to notify about recorded match", "error", err, "matchID", match.ID)
		}
	}
	return &match, nil
}

// EditMatch applies the draft to an existing match, recomputes the winner and
// appends an audit entry. The read and the write happen in one store
// transaction, so concurrent edits never drop each other's entries.
func (s *Scoreboard) EditMatch(matchID string, draft ledger.MatchDraft, editor string, dryRun bool) (*ledger.Match, error) {
	at := s.now().UTC()
	apply := func(original ledger.Match) (ledger.Match, error) {
		return ledger.ApplyEdit(original, draft, editor, at)
	}

	if dryRun {
		original, err := s.store.GetMatch(matchID)
		if err != nil {
			return nil, err
		}
		edited, err := apply(*original)
		if err != nil {
			s.rejected(err)
			return nil, err
		}
		log.Info("[Dry Run] Would have edited match", "matchID", matchID, "changes", lastChanges(edited))
		return &edited, nil
	}

	edited, err := s.store.EditMatch(matchID, apply)
	if err != nil {
		s.rejected(err)
		return nil, err
	}
	s.metrics.IncMatchesEdited()
	s.publish(pubsub.EventMatchEdited, pubsub.MatchEvent{Match: *edited, Actor: editor})
	log.Info("Match edited", "matchID", matchID, "editor", editor, "changes", lastChanges(*edited))
	return edited, nil
}

func lastChanges(m ledger.Match) []string {
	if len(m.EditHistory) == 0 {
		return nil
	}
	return m.EditHistory[len(m.EditHistory)-1].Changes
}

// DeleteMatch moves a match into the deletion log.
func (s *Scoreboard) DeleteMatch(matchID, deletedBy string, dryRun bool) (*ledger.DeletionRecord, error) {
	if dryRun {
		original, err := s.store.GetMatch(matchID)
		if err != nil {
			return nil, err
		}
		log.Info("[Dry Run] Would have deleted match", "matchID", matchID, "deletedBy", deletedBy)
		return &ledger.DeletionRecord{OriginalMatch: *original, DeletedBy: deletedBy, DeletedAt: s.now().UTC()}, nil
	}

	record, err := s.store.DeleteMatch(matchID, deletedBy, s.now().UTC())
	if err != nil {
		return nil, err
	}
	s.metrics.IncMatchesDeleted()
	s.publish(pubsub.EventMatchDeleted, pubsub.DeletionEvent{Record: *record})

	if !s.notifyViaEvents {
		if err := s.notifier.SendMatchDeleted(record, false); err != nil {
			log.Error("Failed to notify about deleted match", "error", err, "matchID", matchID)
		}
	}
	return record, nil
}

// ConfirmMatch clears the pending flag of a match.
func (s *Scoreboard) ConfirmMatch(matchID string, dryRun bool) (*ledger.Match, error) {
	match, err := s.store.GetMatch(matchID)
	if err != nil {
		return nil, err
	}
	match.PendingConfirmation = false

	if dryRun {
		log.Info("[Dry Run] Would have confirmed match", "matchID", matchID)
		return match, nil
	}
	if err := s.store.ConfirmMatch(matchID); err != nil {
		return nil, err
	}
	s.publish(pubsub.EventMatchConfirmed, pubsub.MatchEvent{Match: *match})
	log.Info("Match confirmed", "matchID", matchID)
	return match, nil
}

// TogglePayment flips whether player paid the session fee on date.
func (s *Scoreboard) TogglePayment(date, player, changedBy string, dryRun bool) (*ledger.PaymentStatus, error) {
	date, player = strings.TrimSpace(date), strings.TrimSpace(player)
	if date == "" || player == "" {
		return nil, ErrInvalidPayment
	}
	at := s.now().UTC()

	if dryRun {
		payments, err := s.store.GetPayments()
		if err != nil {
			return nil, err
		}
		current := payments[ledger.PaymentKey{Date: date, Player: player}]
		log.Info("[Dry Run] Would have toggled payment", "date", date, "player", player, "paid", !current.Paid)
		return &ledger.PaymentStatus{Date: date, Player: player, Paid: !current.Paid, History: current.History}, nil
	}

	status, err := s.store.TogglePayment(date, player, changedBy, at)
	if err != nil {
		return nil, fmt.Errorf("failed to toggle payment: %w", err)
	}
	s.metrics.IncPaymentToggles()
	s.publish(pubsub.EventPaymentToggled, pubsub.PaymentEvent{
		Date:      date,
		Player:    player,
		Paid:      status.Paid,
		ChangedBy: changedBy,
		At:        at,
	})
	log.Info("Payment toggled", "date", date, "player", player, "paid", status.Paid, "changedBy", changedBy)
	return status, nil
}

func (s *Scoreboard) publish(topic pubsub.EventType, data any) {
	if err := s.pubsub.SendMessage(topic, data); err != nil {
		log.Error("Failed to publish ledger event", "error", err, "topic", topic)
	}
}

func (s *Scoreboard) rejected(err error) {
	var verr *ledger.ValidationError
	if errors.As(err, &verr) {
		s.metrics.IncValidationRejections(string(verr.Reason))
		log.Debug("Match draft rejected", "reason", verr.Reason)
	}
}
