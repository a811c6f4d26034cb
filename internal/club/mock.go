package club

import (
	"sync"
	"time"

	"github.com/mauv0809/padel-ledger/internal/ledger"
)

// MockStore is a mock implementation of the ClubStore interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	CreateMatchFunc      func(match *ledger.Match) (string, error)
	GetMatchFunc         func(matchID string) (*ledger.Match, error)
	EditMatchFunc        func(matchID string, apply func(ledger.Match) (ledger.Match, error)) (*ledger.Match, error)
	ConfirmMatchFunc     func(matchID string) error
	DeleteMatchFunc      func(matchID, deletedBy string, at time.Time) (*ledger.DeletionRecord, error)
	SetPaymentStatusFunc func(date, player string, paid bool, changedBy string, at time.Time) (*ledger.PaymentStatus, error)
	TogglePaymentFunc    func(date, player, changedBy string, at time.Time) (*ledger.PaymentStatus, error)
	GetMatchesFunc       func() ([]ledger.Match, error)
	GetDeletionsFunc     func() ([]ledger.DeletionRecord, error)
	GetPaymentsFunc      func() (map[ledger.PaymentKey]ledger.PaymentStatus, error)
	GetAllPlayersFunc    func() ([]string, error)
	SnapshotFunc         func() (ledger.Snapshot, error)
	ClearFunc            func()

	// Call records
	CreateMatchCalls  []ledger.Match
	EditMatchCalls    []ledger.Match
	ConfirmMatchCalls []string
	DeleteMatchCalls  []struct {
		MatchID   string
		DeletedBy string
	}
	TogglePaymentCalls []struct {
		Date      string
		Player    string
		ChangedBy string
	}
	ClearCalls int

	// Snapshots sent to subscribers; tests push with Publish.
	subs []chan ledger.Snapshot
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateMatchCalls = nil
	m.EditMatchCalls = nil
	m.ConfirmMatchCalls = nil
	m.DeleteMatchCalls = nil
	m.TogglePaymentCalls = nil
	m.ClearCalls = 0
}

func (m *MockStore) CreateMatch(match *ledger.Match) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateMatchCalls = append(m.CreateMatchCalls, *match)
	if m.CreateMatchFunc != nil {
		return m.CreateMatchFunc(match)
	}
	if match.ID == "" {
		match.ID = "mock-match"
	}
	return match.ID, nil
}

func (m *MockStore) GetMatch(matchID string) (*ledger.Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetMatchFunc != nil {
		return m.GetMatchFunc(matchID)
	}
	return nil, ErrMatchNotFound
}

// EditMatch applies the edit to the match returned by GetMatch and records
// the result.
func (m *MockStore) EditMatch(matchID string, apply func(ledger.Match) (ledger.Match, error)) (*ledger.Match, error) {
	m.mu.Lock()
	fn := m.EditMatchFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(matchID, apply)
	}

	original, err := m.GetMatch(matchID)
	if err != nil {
		return nil, err
	}
	edited, err := apply(*original)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.EditMatchCalls = append(m.EditMatchCalls, edited)
	return &edited, nil
}

func (m *MockStore) ConfirmMatch(matchID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ConfirmMatchCalls = append(m.ConfirmMatchCalls, matchID)
	if m.ConfirmMatchFunc != nil {
		return m.ConfirmMatchFunc(matchID)
	}
	return nil
}

func (m *MockStore) DeleteMatch(matchID, deletedBy string, at time.Time) (*ledger.DeletionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteMatchCalls = append(m.DeleteMatchCalls, struct {
		MatchID   string
		DeletedBy string
	}{matchID, deletedBy})
	if m.DeleteMatchFunc != nil {
		return m.DeleteMatchFunc(matchID, deletedBy, at)
	}
	return &ledger.DeletionRecord{OriginalMatch: ledger.Match{ID: matchID}, DeletedBy: deletedBy, DeletedAt: at}, nil
}

func (m *MockStore) SetPaymentStatus(date, player string, paid bool, changedBy string, at time.Time) (*ledger.PaymentStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetPaymentStatusFunc != nil {
		return m.SetPaymentStatusFunc(date, player, paid, changedBy, at)
	}
	return &ledger.PaymentStatus{Date: date, Player: player, Paid: paid}, nil
}

func (m *MockStore) TogglePayment(date, player, changedBy string, at time.Time) (*ledger.PaymentStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TogglePaymentCalls = append(m.TogglePaymentCalls, struct {
		Date      string
		Player    string
		ChangedBy string
	}{date, player, changedBy})
	if m.TogglePaymentFunc != nil {
		return m.TogglePaymentFunc(date, player, changedBy, at)
	}
	return &ledger.PaymentStatus{
		Date:    date,
		Player:  player,
		Paid:    true,
		History: []ledger.PaymentChange{{ChangedBy: changedBy, Action: ledger.PaymentActionPaid, Timestamp: at}},
	}, nil
}

func (m *MockStore) GetMatches() ([]ledger.Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetMatchesFunc != nil {
		return m.GetMatchesFunc()
	}
	return nil, nil
}

func (m *MockStore) GetDeletions() ([]ledger.DeletionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetDeletionsFunc != nil {
		return m.GetDeletionsFunc()
	}
	return nil, nil
}

func (m *MockStore) GetPayments() (map[ledger.PaymentKey]ledger.PaymentStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetPaymentsFunc != nil {
		return m.GetPaymentsFunc()
	}
	return nil, nil
}

func (m *MockStore) GetAllPlayers() ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetAllPlayersFunc != nil {
		return m.GetAllPlayersFunc()
	}
	return nil, nil
}

// Snapshot falls back to the Get*Func spies when SnapshotFunc is unset.
func (m *MockStore) Snapshot() (ledger.Snapshot, error) {
	m.mu.Lock()
	fn := m.SnapshotFunc
	m.mu.Unlock()
	if fn != nil {
		return fn()
	}

	matches, err := m.GetMatches()
	if err != nil {
		return ledger.Snapshot{}, err
	}
	deletions, err := m.GetDeletions()
	if err != nil {
		return ledger.Snapshot{}, err
	}
	payments, err := m.GetPayments()
	if err != nil {
		return ledger.Snapshot{}, err
	}
	return ledger.Snapshot{Matches: matches, Deletions: deletions, Payments: payments}, nil
}

func (m *MockStore) Subscribe() (<-chan ledger.Snapshot, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch := make(chan ledger.Snapshot, 1)
	m.subs = append(m.subs, ch)
	return ch, func() {}
}

// Publish hands snap to every subscriber, replacing any unread snapshot.
func (m *MockStore) Publish(snap ledger.Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ch := range m.subs {
		deliver(ch, snap)
	}
}

func (m *MockStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClearCalls++
	if m.ClearFunc != nil {
		m.ClearFunc()
	}
}
