package metrics

import (
	"net/http"

	"github.com/nursultanov/budgetbook/internal/health"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewServer serves /metrics plus the liveness/readiness probes on a port
// separate from the API.
func NewServer(addr string, checker *health.Checker) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		health.WriteJSON(w, http.StatusOK, checker.Liveness(r.Context()))
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		result := checker.Readiness(r.Context())
		status := http.StatusOK
		if result.Status != "up" {
			status = http.StatusServiceUnavailable
		}
		health.WriteJSON(w, status, result)
	})
	return &http.Server{Addr: addr, Handler: mux}
}
