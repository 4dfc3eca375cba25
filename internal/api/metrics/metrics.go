// Package metrics defines and registers all custom Prometheus metrics for the
// blog API. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics are registered with the default Prometheus registry at package
// initialisation via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "blog"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthRejectionsTotal counts requests rejected by the access control middleware.
// Labels:
//   - policy: "signed_in" or "admin_only"
//   - reason: e.g. "header_missing", "token_expired", "forbidden", "internal"
var AuthRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_rejections_total",
		Help:      "Total number of requests rejected by access control.",
	},
	[]string{"policy", "reason"},
)

// AuthAttemptsTotal counts signup and signin attempts.
// Labels:
//   - action: "signup" or "signin"
//   - result: "success", "invalid", "conflict" or "error"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of signup and signin attempts, by result.",
	},
	[]string{"action", "result"},
)

// ── Hashing pool metrics ─────────────────────────────────────────────────────

// HashQueueDepth tracks the number of hashing jobs waiting for a worker.
var HashQueueDepth = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "hash_queue_depth",
		Help:      "Current number of password hashing jobs waiting for a worker.",
	},
)

// HashWorkersBusy tracks the number of workers currently running a job.
var HashWorkersBusy = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "hash_workers_busy",
		Help:      "Current number of hashing workers running a job.",
	},
)

// HashJobDuration measures how long a single hashing job runs.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var HashJobDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "hash_job_duration_seconds",
		Help:      "Duration of password hashing and verification jobs.",
		Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1},
	},
	[]string{"worker_id"},
)

// ── Blog metrics ──────────────────────────────────────────────────────────────

// BlogWritesTotal counts successful blog and comment writes.
// Label:
//   - operation: "create", "update", "delete" or "comment"
var BlogWritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "writes_total",
		Help:      "Total number of successful blog and comment writes, by operation.",
	},
	[]string{"operation"},
)
