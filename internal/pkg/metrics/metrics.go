// Package metrics holds the Prometheus collectors of the storefront client.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storefront"

// Metrics is passed to the components that record metrics. A nil *Metrics
// records nothing.
type Metrics struct {
	GatewayRequests     *prometheus.CounterVec
	GatewayRefreshes    *prometheus.CounterVec
	CartReconciliations *prometheus.CounterVec
	CartPersistSkips    prometheus.Counter
}

// NewMetrics creates and registers all metrics with the given registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		GatewayRequests: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "gateway_requests_total",
				Help:      "Authenticated requests by final outcome",
			},
			[]string{"outcome"},
		),
		GatewayRefreshes: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "gateway_refreshes_total",
				Help:      "Access token refresh attempts",
			},
			[]string{"result"}, // result=ok/failed
		),
		CartReconciliations: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cart_reconciliations_total",
				Help:      "Cart reconciliations by kind",
			},
			[]string{"kind"}, // kind=guest/merge
		),
		CartPersistSkips: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cart_persist_skips_total",
				Help:      "Cart writes withheld to protect a stored cart that was not loaded yet",
			},
		),
	}
}

// GatewayRequest counts one finished gateway call
func (m *Metrics) GatewayRequest(outcome string) {
	if m == nil {
		return
	}
	m.GatewayRequests.WithLabelValues(outcome).Inc()
}

// GatewayRefresh counts one refresh attempt
func (m *Metrics) GatewayRefresh(ok bool) {
	if m == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "failed"
	}
	m.GatewayRefreshes.WithLabelValues(result).Inc()
}

// CartReconciled counts one reconciliation
func (m *Metrics) CartReconciled(kind string) {
	if m == nil {
		return
	}
	m.CartReconciliations.WithLabelValues(kind).Inc()
}

// CartPersistSkipped counts one withheld cart write
func (m *Metrics) CartPersistSkipped() {
	if m == nil {
		return
	}
	m.CartPersistSkips.Inc()
}
