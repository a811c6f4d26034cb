package scoreboard

import (
	"time"

	"github.com/mauv0809/padel-ledger/internal/ledger"
	"github.com/mauv0809/padel-ledger/internal/notifier"
)

// Store defines the ledger operations required by the scoreboard.
type Store interface {
	CreateMatch(match *ledger.Match) (string, error)
	GetMatch(matchID string) (*ledger.Match, error)
	EditMatch(matchID string, apply func(ledger.Match) (ledger.Match, error)) (*ledger.Match, error)
	ConfirmMatch(matchID string) error
	DeleteMatch(matchID, deletedBy string, at time.Time) (*ledger.DeletionRecord, error)
	TogglePayment(date, player, changedBy string, at time.Time) (*ledger.PaymentStatus, error)
	GetMatches() ([]ledger.Match, error)
	GetPayments() (map[ledger.PaymentKey]ledger.PaymentStatus, error)
	Snapshot() (ledger.Snapshot, error)
	Subscribe() (<-chan ledger.Snapshot, func())
}

// Notifier defines the notification operations required by the scoreboard.
type Notifier interface {
	notifier.Notifier
}
