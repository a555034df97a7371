// Package metrics defines the custom Prometheus metrics of the bakery API.
// HTTP request metrics come from echoprometheus; this package only holds the
// counters the authentication and order paths increment.
//
// The collectors are created unregistered; the router registers them with
// the registry that also backs /metrics.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "panaderia"

// LoginsTotal counts login attempts.
// Labels:
//   - role: "cliente" or "administrador" from the identifier presented,
//     "unknown" when none was
//   - result: "success", "bad_request", "not_found", "invalid_credential", "error"
var LoginsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by role and result.",
	},
	[]string{"role", "result"},
)

// GateDecisionsTotal counts role gate outcomes.
// Label:
//   - result: "allowed", "missing_token", "invalid_token" or "forbidden"
var GateDecisionsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gate_decisions_total",
		Help:      "Total number of authorization gate decisions, by result.",
	},
	[]string{"result"},
)

// StockRejectionsTotal counts orders refused for lack of stock.
var StockRejectionsTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stock_rejections_total",
		Help:      "Total number of orders rejected because a product ran out of stock.",
	},
)

// Register adds every collector to reg. Registering twice with the same
// registry is not an error.
func Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{LoginsTotal, GateDecisionsTotal, StockRejectionsTotal} {
		if err := reg.Register(c); err != nil {
			var already prometheus.AlreadyRegisteredError
			if errors.As(err, &already) {
				continue
			}
			return err
		}
	}
	return nil
}
