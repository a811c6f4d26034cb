package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                   sync.Mutex
	matchesRecorded      int
	matchesEdited        int
	matchesDeleted       int
	paymentToggles       int
	validationRejections map[string]int
	aggregationDurations []float64
	slackNotifSent       int
	slackNotifFailed     int
	importRuns           int
	startupTime          float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		validationRejections: make(map[string]int),
		aggregationDurations: make([]float64, 0),
	}
}

func (m *Mock) IncMatchesRecorded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesRecorded++
}

func (m *Mock) IncMatchesEdited() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesEdited++
}

func (m *Mock) IncMatchesDeleted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesDeleted++
}

func (m *Mock) IncPaymentToggles() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paymentToggles++
}

func (m *Mock) IncValidationRejections(reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.validationRejections[reason]++
}

func (m *Mock) ObserveAggregationDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.aggregationDurations = append(m.aggregationDurations, duration)
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) IncImportRuns() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.importRuns++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// MatchesRecorded returns the number of times IncMatchesRecorded was called.
func (m *Mock) MatchesRecorded() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesRecorded
}

// MatchesEdited returns the number of times IncMatchesEdited was called.
func (m *Mock) MatchesEdited() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesEdited
}

// MatchesDeleted returns the number of times IncMatchesDeleted was called.
func (m *Mock) MatchesDeleted() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesDeleted
}

// PaymentToggles returns the number of times IncPaymentToggles was called.
func (m *Mock) PaymentToggles() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.paymentToggles
}

// ValidationRejections returns the rejection count for reason.
func (m *Mock) ValidationRejections(reason string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.validationRejections[reason]
}

// AggregationDurations returns every observed aggregation duration.
func (m *Mock) AggregationDurations() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]float64(nil), m.aggregationDurations...)
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}

// ImportRuns returns the number of times IncImportRuns was called.
func (m *Mock) ImportRuns() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.importRuns
}
