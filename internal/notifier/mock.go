package notifier

import (
	"sync"

	"github.com/mauv0809/padel-ledger/internal/ledger"
	"github.com/mauv0809/padel-ledger/internal/stats"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Call records
	SendMatchRecordedCalls []ledger.Match
	SendMatchDeletedCalls  []ledger.DeletionRecord
	SendLeaderboardCalls   []stats.Rankings
	SendDailySummaryCalls  []string
	DryRuns                []bool

	// Spies
	SendMatchRecordedFunc            func(match *ledger.Match, dryRun bool) error
	FormatLeaderboardResponseFunc    func(rankings stats.Rankings) (any, error)
	FormatPlayerStatsResponseFunc    func(player string, summary stats.PlayerSummary) (any, error)
	FormatPlayerNotFoundResponseFunc func(query string, suggestions []string) (any, error)
	FormatDailySummaryResponseFunc   func(date string, day stats.DailySummary) (any, error)

	// Call records for format functions
	LastPlayerStatsQuery  string
	LastNotFoundQuery     string
	LastNotFoundSuggested []string
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMatchRecordedCalls = nil
	m.SendMatchDeletedCalls = nil
	m.SendLeaderboardCalls = nil
	m.SendDailySummaryCalls = nil
	m.DryRuns = nil
	m.LastPlayerStatsQuery = ""
	m.LastNotFoundQuery = ""
	m.LastNotFoundSuggested = nil
}

func (m *Mock) SendMatchRecorded(match *ledger.Match, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMatchRecordedCalls = append(m.SendMatchRecordedCalls, *match)
	m.DryRuns = append(m.DryRuns, dryRun)
	if m.SendMatchRecordedFunc != nil {
		return m.SendMatchRecordedFunc(match, dryRun)
	}
	return nil
}

func (m *Mock) SendMatchDeleted(record *ledger.DeletionRecord, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMatchDeletedCalls = append(m.SendMatchDeletedCalls, *record)
	m.DryRuns = append(m.DryRuns, dryRun)
	return nil
}

func (m *Mock) SendLeaderboard(rankings stats.Rankings, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendLeaderboardCalls = append(m.SendLeaderboardCalls, rankings)
	m.DryRuns = append(m.DryRuns, dryRun)
	return nil
}

func (m *Mock) SendDailySummary(date string, day stats.DailySummary, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendDailySummaryCalls = append(m.SendDailySummaryCalls, date)
	m.DryRuns = append(m.DryRuns, dryRun)
	return nil
}

func (m *Mock) FormatLeaderboardResponse(rankings stats.Rankings) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatLeaderboardResponseFunc != nil {
		return m.FormatLeaderboardResponseFunc(rankings)
	}
	return "formatted_leaderboard", nil
}

func (m *Mock) FormatPlayerStatsResponse(player string, summary stats.PlayerSummary) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastPlayerStatsQuery = player
	if m.FormatPlayerStatsResponseFunc != nil {
		return m.FormatPlayerStatsResponseFunc(player, summary)
	}
	return "formatted_player_stats", nil
}

func (m *Mock) FormatPlayerNotFoundResponse(query string, suggestions []string) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastNotFoundQuery = query
	m.LastNotFoundSuggested = suggestions
	if m.FormatPlayerNotFoundResponseFunc != nil {
		return m.FormatPlayerNotFoundResponseFunc(query, suggestions)
	}
	return "formatted_player_not_found", nil
}

func (m *Mock) FormatDailySummaryResponse(date string, day stats.DailySummary) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatDailySummaryResponseFunc != nil {
		return m.FormatDailySummaryResponseFunc(date, day)
	}
	return "formatted_daily_summary", nil
}
