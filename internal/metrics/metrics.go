package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// Auth metrics

	RegistrationsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "budgetbook",
		Name:      "registrations_total",
		Help:      "Accounts created.",
	})

	ConfirmationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "budgetbook",
		Name:      "confirmations_total",
		Help:      "Account confirmation attempts, by outcome.",
	}, []string{"outcome"})

	LoginsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "budgetbook",
		Name:      "logins_total",
		Help:      "Login attempts, by outcome.",
	}, []string{"outcome"})

	EmailsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "budgetbook",
		Name:      "emails_total",
		Help:      "Outbound emails, by kind and outcome.",
	}, []string{"kind", "outcome"})

	// Janitor metrics

	StaleAccountsPurged = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "budgetbook",
		Name:      "stale_accounts_purged_total",
		Help:      "Unconfirmed accounts deleted by the janitor.",
	})

	// HTTP metrics

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "budgetbook",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "budgetbook",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests.",
	}, []string{"method", "path", "status"})
)

func Register() {
	prometheus.MustRegister(
		RegistrationsTotal,
		ConfirmationsTotal,
		LoginsTotal,
		EmailsTotal,
		StaleAccountsPurged,
		HTTPRequestDuration,
		HTTPRequestsTotal,
	)
}
