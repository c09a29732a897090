package client

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/newsdesk/newsdesk/client/internal/api"
	clienterrors "github.com/newsdesk/newsdesk/client/internal/errors"
)

// Outcome label values.
const (
	outcomeOK             = "ok"
	outcomeStatusError    = "status_error"
	outcomeTimeout        = "timeout"
	outcomeTransportError = "transport_error"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "newsdesk_client",
			Name:      "requests_total",
			Help:      "Backend calls by surface, operation and outcome.",
		},
		[]string{"surface", "operation", "outcome"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "newsdesk_client",
			Name:      "request_duration_seconds",
			Help:      "Wall time of backend calls, including failed ones.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"surface", "operation"},
	)
)

// promObserver records facade observations into the metrics above.
type promObserver struct{}

func (promObserver) Observe(o api.Observation) {
	requestsTotal.WithLabelValues(o.Surface, o.Operation, outcomeOf(o)).Inc()
	requestDuration.WithLabelValues(o.Surface, o.Operation).Observe(o.Elapsed.Seconds())
}

func outcomeOf(o api.Observation) string {
	switch {
	case o.Err == nil:
		return outcomeOK
	case o.StatusCode != 0:
		return outcomeStatusError
	case clienterrors.IsTimeout(o.Err):
		return outcomeTimeout
	default:
		return outcomeTransportError
	}
}
