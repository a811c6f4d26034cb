package playtomic

import (
	"context"
	"sync"
)

// MockClient is a mock implementation of the PlaytomicClient interface for testing.
// It is safe for concurrent use.
type MockClient struct {
	mu sync.Mutex

	// Spies for method calls
	GetMatchesFunc       func(params *SearchMatchesParams) ([]MatchSummary, error)
	GetSpecificMatchFunc func(matchID string) (PadelMatch, error)

	// Call records
	GetMatchesCalls       []*SearchMatchesParams
	GetSpecificMatchCalls []string
}

// NewMockClient creates a new mock instance.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// Reset clears all call records.
func (m *MockClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetMatchesCalls = nil
	m.GetSpecificMatchCalls = nil
}

func (m *MockClient) GetMatches(ctx context.Context, params *SearchMatchesParams) ([]MatchSummary, error) {
	m.mu.Lock()
	m.GetMatchesCalls = append(m.GetMatchesCalls, params)
	fn := m.GetMatchesFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(params)
	}
	return []MatchSummary{}, nil
}

// GetSpecificMatch does not hold the lock while the spy runs, so concurrent
// callers are not serialized.
func (m *MockClient) GetSpecificMatch(ctx context.Context, matchID string) (PadelMatch, error) {
	m.mu.Lock()
	m.GetSpecificMatchCalls = append(m.GetSpecificMatchCalls, matchID)
	fn := m.GetSpecificMatchFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(matchID)
	}
	return PadelMatch{MatchID: matchID}, nil
}
