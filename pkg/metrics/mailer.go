package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// MailerMetrics records delivery outcomes for outbound transactional mail.
type MailerMetrics struct {
	duration *prometheus.HistogramVec
	sent     *prometheus.CounterVec
	failed   *prometheus.CounterVec
}

// NewMailerMetrics registers the mailer metrics on the provided registerer.
func NewMailerMetrics(reg prometheus.Registerer) *MailerMetrics {
	if reg == nil {
		return &MailerMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "mail_send_duration_seconds",
		Help:    "Duration of outbound mail deliveries in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"template"})
	sent := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mail_sent_total",
		Help: "Successfully delivered mail messages.",
	}, []string{"template"})
	failed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mail_failed_total",
		Help: "Failed mail delivery attempts.",
	}, []string{"template"})
	reg.MustRegister(duration, sent, failed)
	return &MailerMetrics{
		duration: duration,
		sent:     sent,
		failed:   failed,
	}
}

// ObserveDuration records the delivery duration for the named template.
func (m *MailerMetrics) ObserveDuration(template string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(template)).Observe(duration.Seconds())
}

// IncSent increments the delivered counter for the named template.
func (m *MailerMetrics) IncSent(template string) {
	if m == nil || m.sent == nil {
		return
	}
	m.sent.WithLabelValues(normalizeLabel(template)).Inc()
}

// IncFailed increments the failure counter for the named template.
func (m *MailerMetrics) IncFailed(template string) {
	if m == nil || m.failed == nil {
		return
	}
	m.failed.WithLabelValues(normalizeLabel(template)).Inc()
}

func normalizeLabel(template string) string {
	if template == "" {
		return "unknown"
	}
	return template
}
