package club

import (
	"time"

	"github.com/mauv0809/padel-ledger/internal/ledger"
)

// ClubStore defines the interface for interacting with the club's ledger.
type ClubStore interface {
	CreateMatch(match *ledger.Match) (string, error)
	GetMatch(matchID string) (*ledger.Match, error)
	EditMatch(matchID string, apply func(ledger.Match) (ledger.Match, error)) (*ledger.Match, error)
	ConfirmMatch(matchID string) error
	DeleteMatch(matchID, deletedBy string, at time.Time) (*ledger.DeletionRecord, error)
	SetPaymentStatus(date, player string, paid bool, changedBy string, at time.Time) (*ledger.PaymentStatus, error)
	TogglePayment(date, player, changedBy string, at time.Time) (*ledger.PaymentStatus, error)
	GetMatches() ([]ledger.Match, error)
	GetDeletions() ([]ledger.DeletionRecord, error)
	GetPayments() (map[ledger.PaymentKey]ledger.PaymentStatus, error)
	GetAllPlayers() ([]string, error)
	Snapshot() (ledger.Snapshot, error)
	Subscribe() (<-chan ledger.Snapshot, func())
	Clear()
}
