package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// SubmissionMetrics records the lifecycle of contact/quote submissions.
type SubmissionMetrics struct {
	received      *prometheus.CounterVec
	completed     *prometheus.CounterVec
	rejected      *prometheus.CounterVec
	providerSends prometheus.Counter
	duration      *prometheus.HistogramVec
}

// NewSubmissionMetrics registers the submission metrics on the provided registerer.
func NewSubmissionMetrics(reg prometheus.Registerer) *SubmissionMetrics {
	if reg == nil {
		return &SubmissionMetrics{}
	}
	received := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "submission_received",
		Help: "Submissions accepted for processing.",
	}, []string{"action"})
	completed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "submission_completed",
		Help: "Submissions that reached a success acknowledgment.",
	}, []string{"action"})
	rejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "submission_rejected",
		Help: "Submissions rejected before dispatch.",
	}, []string{"action", "reason"})
	providerSends := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "notification_provider_sends",
		Help: "Calls made to the external notification provider.",
	})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "submission_duration_seconds",
		Help:    "Duration of submission handling in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"action"})
	reg.MustRegister(received, completed, rejected, providerSends, duration)
	return &SubmissionMetrics{
		received:      received,
		completed:     completed,
		rejected:      rejected,
		providerSends: providerSends,
		duration:      duration,
	}
}

// IncReceived counts a submission entering the pipeline.
func (m *SubmissionMetrics) IncReceived(action string) {
	if m == nil || m.received == nil {
		return
	}
	m.received.WithLabelValues(normalizeLabel(action)).Inc()
}

// IncCompleted counts a submission acknowledged as successful.
func (m *SubmissionMetrics) IncCompleted(action string) {
	if m == nil || m.completed == nil {
		return
	}
	m.completed.WithLabelValues(normalizeLabel(action)).Inc()
}

// IncRejected counts a submission rejected at the named stage.
func (m *SubmissionMetrics) IncRejected(action, reason string) {
	if m == nil || m.rejected == nil {
		return
	}
	m.rejected.WithLabelValues(normalizeLabel(action), normalizeLabel(reason)).Inc()
}

// IncProviderSend counts one call to the external delivery provider.
func (m *SubmissionMetrics) IncProviderSend() {
	if m == nil || m.providerSends == nil {
		return
	}
	m.providerSends.Inc()
}

// ObserveDuration records how long a submission took end to end.
func (m *SubmissionMetrics) ObserveDuration(action string, d time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(action)).Observe(d.Seconds())
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
