// Package metrics defines the custom Prometheus metrics for the task API. It
// is the single source of truth for metric names, labels, and help strings.
//
// Build one Metrics per registry with New. Production passes
// prometheus.DefaultRegisterer; tests pass a fresh prometheus.NewRegistry().
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "task_system"

type Metrics struct {
	// TasksMutatedTotal counts successful task writes.
	// Label:
	//   - operation: "create", "update" or "delete"
	TasksMutatedTotal *prometheus.CounterVec

	// AuthAttemptsTotal counts register/login outcomes.
	// Labels:
	//   - action: "register" or "login"
	//   - outcome: "ok", "not_found", "conflict" or "error"
	AuthAttemptsTotal *prometheus.CounterVec

	// AuthRejectionsTotal counts requests refused by the bearer middleware.
	// Label:
	//   - reason: "missing_credentials" or "invalid_token"
	AuthRejectionsTotal *prometheus.CounterVec

	// RateLimitedTotal counts requests rejected with 429.
	// Label:
	//   - scope: the limiter scope (e.g. "auth")
	RateLimitedTotal *prometheus.CounterVec

	// DependencyUp reports the last readiness probe result per dependency (1 = up).
	DependencyUp *prometheus.GaugeVec
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		TasksMutatedTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "tasks_mutated_total",
				Help:      "Total number of task writes, by operation.",
			},
			[]string{"operation"},
		),
		AuthAttemptsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "auth_attempts_total",
				Help:      "Total number of register and login attempts, by outcome.",
			},
			[]string{"action", "outcome"},
		),
		AuthRejectionsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "auth_rejections_total",
				Help:      "Total number of requests rejected by bearer authentication.",
			},
			[]string{"reason"},
		),
		RateLimitedTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rate_limited_total",
				Help:      "Total number of requests rejected by the rate limiter.",
			},
			[]string{"scope"},
		),
		DependencyUp: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "dependency_up",
				Help:      "Whether a dependency answered the last readiness probe (1) or not (0).",
			},
			[]string{"dependency"},
		),
	}
}
