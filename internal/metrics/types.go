package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
// By defining them all in one place, we ensure consistency in naming and labeling.
type Service struct {
	MatchesRecorded      prometheus.Counter
	MatchesEdited        prometheus.Counter
	MatchesDeleted       prometheus.Counter
	PaymentToggles       prometheus.Counter
	ValidationRejections *prometheus.CounterVec
	AggregationDuration  prometheus.Histogram
	SlackNotifSent       prometheus.Counter
	SlackNotifFailed     prometheus.Counter
	ImportRuns           prometheus.Counter
	StartupTimeSeconds   prometheus.Gauge
}
