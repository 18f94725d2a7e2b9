package metrics

import "expvar"

// Dispatcher counters, exported under /debug/vars.
var (
	Requests        = expvar.NewInt("rh_requests")
	HTTPErrors      = expvar.NewInt("rh_http_errors")
	TransportErrors = expvar.NewInt("rh_transport_errors")
	SigningErrors   = expvar.NewInt("rh_signing_errors")
	OrdersPlaced    = expvar.NewInt("rh_orders_placed")
)

// Snapshot current counter values keyed by expvar name.
func Snapshot() map[string]int64 {
	return map[string]int64{
		"rh_requests":         Requests.Value(),
		"rh_http_errors":      HTTPErrors.Value(),
		"rh_transport_errors": TransportErrors.Value(),
		"rh_signing_errors":   SigningErrors.Value(),
		"rh_orders_placed":    OrdersPlaced.Value(),
	}
}
