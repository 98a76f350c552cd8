// Package health probes the service's dependencies for the liveness and
// readiness endpoints.
package health

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const probeTimeout = 2 * time.Second

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// probe is one named dependency check.
type probe struct {
	name string
	run  func(ctx context.Context) error
}

// CheckResult is the outcome of a single probe.
type CheckResult struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// HealthResult aggregates all probe outcomes; Status is "down" if any
// probe failed.
type HealthResult struct {
	Status string                 `json:"status"`
	Checks map[string]CheckResult `json:"checks,omitempty"`
}

// Checker runs dependency probes on demand.
type Checker struct {
	probes []probe
	logger *slog.Logger
	gauge  *prometheus.GaugeVec
}

// NewChecker builds a checker over the database and registers its gauge.
func NewChecker(db Pinger, logger *slog.Logger, reg prometheus.Registerer) *Checker {
	gauge := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "budgetbook",
		Name:      "health_check_up",
		Help:      "Whether a dependency is reachable. 1 = up, 0 = down.",
	}, []string{"dependency"})
	reg.MustRegister(gauge)

	return &Checker{
		probes: []probe{{name: "postgres", run: db.Ping}},
		logger: logger.With("component", "health"),
		gauge:  gauge,
	}
}

// Liveness reports only that the process is serving requests.
func (c *Checker) Liveness(_ context.Context) HealthResult {
	return HealthResult{Status: "up"}
}

// Readiness runs every probe and reports per-dependency status.
func (c *Checker) Readiness(ctx context.Context) HealthResult {
	result := HealthResult{
		Status: "up",
		Checks: make(map[string]CheckResult, len(c.probes)),
	}

	for _, p := range c.probes {
		probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
		err := p.run(probeCtx)
		cancel()

		if err != nil {
			c.logger.Warn("health check failed", "dependency", p.name, "error", err)
			result.Status = "down"
			result.Checks[p.name] = CheckResult{Status: "down", Error: err.Error()}
			c.gauge.WithLabelValues(p.name).Set(0)
			continue
		}
		result.Checks[p.name] = CheckResult{Status: "up"}
		c.gauge.WithLabelValues(p.name).Set(1)
	}

	return result
}

// WriteJSON writes a health result as a JSON response body.
func WriteJSON(w http.ResponseWriter, status int, result HealthResult) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(result)
}
