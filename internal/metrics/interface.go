package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncMatchesRecorded()
	IncMatchesEdited()
	IncMatchesDeleted()
	IncPaymentToggles()
	IncValidationRejections(reason string)
	ObserveAggregationDuration(duration float64)
	IncSlackNotifSent()
	IncSlackNotifFailed()
	IncImportRuns()
	SetStartupTime(duration float64)
}
