package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "lending"

var (
	// Operations lending operations by name and result
	Operations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "operations_total",
		Help:      "Lending operations by operation and result.",
	}, []string{"operation", "result"})

	// UnsafeAccounts borrowers below the minimum health factor at the last check
	UnsafeAccounts = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "unsafe_accounts",
		Help:      "Borrowers whose health factor is below 1.0 at the last health check.",
	})

	// EventsDelivered events posted to the webhook
	EventsDelivered = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_delivered_total",
		Help:      "Events delivered to the webhook.",
	})
)

func init() {
	prometheus.MustRegister(Operations, UnsafeAccounts, EventsDelivered)
}

// ObserveOperation count one operation
func ObserveOperation(operation, result string) {
	Operations.WithLabelValues(operation, result).Inc()
}
