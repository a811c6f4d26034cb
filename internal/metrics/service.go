package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		MatchesRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "padel_matches_recorded_total",
			Help: "The total number of matches recorded.",
		}),
		MatchesEdited: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "padel_matches_edited_total",
			Help: "The total number of match edits.",
		}),
		MatchesDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "padel_matches_deleted_total",
			Help: "The total number of matches moved to the deletion log.",
		}),
		PaymentToggles: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "padel_payment_toggles_total",
			Help: "The total number of payment status toggles.",
		}),
		ValidationRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "padel_validation_rejections_total",
			Help: "The total number of match drafts rejected, by reason.",
		}, []string{"reason"}),
		AggregationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "padel_aggregation_duration_seconds",
			Help:    "The duration of a full statistics recomputation.",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "padel_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "padel_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		ImportRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "padel_import_runs_total",
			Help: "The total number of Playtomic import runs.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "padel_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.MatchesRecorded,
		s.MatchesEdited,
		s.MatchesDeleted,
		s.PaymentToggles,
		s.ValidationRejections,
		s.AggregationDuration,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.ImportRuns,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncMatchesRecorded() {
	s.MatchesRecorded.Inc()
}

func (s *Service) IncMatchesEdited() {
	s.MatchesEdited.Inc()
}

func (s *Service) IncMatchesDeleted() {
	s.MatchesDeleted.Inc()
}

func (s *Service) IncPaymentToggles() {
	s.PaymentToggles.Inc()
}

func (s *Service) IncValidationRejections(reason string) {
	s.ValidationRejections.WithLabelValues(reason).Inc()
}

func (s *Service) ObserveAggregationDuration(duration float64) {
	s.AggregationDuration.Observe(duration)
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) IncImportRuns() {
	s.ImportRuns.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
