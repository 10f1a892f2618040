package metrics

import "github.com/prometheus/client_golang/prometheus"

// BookingMetrics exposes counters/histograms for the booking flow.
type BookingMetrics struct {
	fetchTotal      *prometheus.CounterVec
	staleDropped    prometheus.Counter
	submissionTotal *prometheus.CounterVec
	fetchLatency    *prometheus.HistogramVec
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		fetchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "booking",
			Subsystem: "availability",
			Name:      "fetch_total",
			Help:      "Total availability fetches",
		}, []string{"status"}),
		staleDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "booking",
			Subsystem: "availability",
			Name:      "stale_responses_dropped_total",
			Help:      "Availability responses discarded because a newer fetch superseded them",
		}),
		submissionTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "booking",
			Subsystem: "submission",
			Name:      "total",
			Help:      "Total booking submissions",
		}, []string{"status"}),
		fetchLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "booking",
			Subsystem: "availability",
			Name:      "fetch_latency_seconds",
			Help:      "Latency of availability fetches",
			Buckets:   prometheus.DefBuckets,
		}, []string{"status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.fetchTotal, m.staleDropped, m.submissionTotal, m.fetchLatency)
	return m
}

func (m *BookingMetrics) ObserveFetch(status string, seconds float64) {
	if m == nil {
		return
	}
	m.fetchTotal.WithLabelValues(status).Inc()
	m.fetchLatency.WithLabelValues(status).Observe(seconds)
}

func (m *BookingMetrics) ObserveStaleDropped() {
	if m == nil {
		return
	}
	m.staleDropped.Inc()
}

func (m *BookingMetrics) ObserveSubmission(status string) {
	if m == nil {
		return
	}
	m.submissionTotal.WithLabelValues(status).Inc()
}
