package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	GuardRedirectsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "payflow",
			Subsystem: "flow",
			Name:      "guard_redirects_total",
			Help:      "Total number of navigations rejected by a guard",
		},
		[]string{"guard", "step", "redirect"},
	)

	ExternalCallDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "payflow",
			Subsystem: "external",
			Name:      "call_duration_seconds",
			Help:      "Latency of calls to the client API and the mock API",
			Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"operation", "status"},
	)

	EventsPublishedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "payflow",
			Subsystem: "events",
			Name:      "published_total",
			Help:      "Total number of flow events handed to the publisher",
		},
		[]string{"event_type", "status"},
	)

	MockAPIInjectedErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "payflow",
			Subsystem: "mockapi",
			Name:      "injected_errors_total",
			Help:      "Total number of artificial 400 responses returned by the mock API",
		},
	)
)

func init() {
	Registry.MustRegister(GuardRedirectsTotal, ExternalCallDuration, EventsPublishedTotal, MockAPIInjectedErrorsTotal)
}

// CallStatus maps an error to the status label used by ExternalCallDuration.
func CallStatus(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
