package metrics

import "github.com/prometheus/client_golang/prometheus"

// ReminderMetrics exposes counters/histograms for the reminder-call flow.
type ReminderMetrics struct {
	dispatchTotal   *prometheus.CounterVec
	webhookTotal    *prometheus.CounterVec
	vapiCallLatency *prometheus.HistogramVec
}

func NewReminderMetrics(reg prometheus.Registerer) *ReminderMetrics {
	m := &ReminderMetrics{
		dispatchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "medme",
			Subsystem: "reminders",
			Name:      "dispatch_total",
			Help:      "Total reminder call dispatch attempts",
		}, []string{"status"}),
		webhookTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "medme",
			Subsystem: "reminders",
			Name:      "webhook_total",
			Help:      "Total Vapi context-webhook requests",
		}, []string{"status"}),
		vapiCallLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "medme",
			Subsystem: "reminders",
			Name:      "vapi_call_seconds",
			Help:      "Latency of Vapi call placement requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.dispatchTotal, m.webhookTotal, m.vapiCallLatency)
	return m
}

func (m *ReminderMetrics) ObserveDispatch(status string) {
	if m == nil {
		return
	}
	m.dispatchTotal.WithLabelValues(status).Inc()
}

func (m *ReminderMetrics) ObserveWebhook(status string) {
	if m == nil {
		return
	}
	m.webhookTotal.WithLabelValues(status).Inc()
}

func (m *ReminderMetrics) ObserveVapiCall(status string, seconds float64) {
	if m == nil {
		return
	}
	m.vapiCallLatency.WithLabelValues(status).Observe(seconds)
}
