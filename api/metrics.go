package api

import (
	"github.com/prometheus/client_golang/prometheus"
)

// request outcomes
const (
	outcomeOK             = "ok"
	outcomeHTTPError      = "http_error"
	outcomeTransportError = "transport_error"
	outcomeDecodeError    = "decode_error"
	outcomeRateLimited    = "rate_limited"
)

// Metrics counts API attempts per route and outcome
type Metrics struct {
	requests *prometheus.CounterVec
}

// NewMetrics registers the API counters with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "redditscope",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Reddit API request attempts by delivery route and outcome.",
		}, []string{"route", "outcome"}),
	}
	reg.MustRegister(m.requests)
	return m
}

func (m *Metrics) observe(route, outcome string) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(route, outcome).Inc()
}
