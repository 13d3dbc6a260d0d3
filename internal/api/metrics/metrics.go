// Package metrics defines and registers the custom Prometheus metrics of the
// user-management API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry on package init, and
// are exposed by the echoprometheus handler mounted at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "users"

// RepositoryOperationsTotal counts user repository calls.
// Labels:
//   - operation: list, create, update, delete, set_role, ensure_superadmin
//   - result: "ok", "validation", "forbidden" or "error"
var RepositoryOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "repository",
		Name:      "operations_total",
		Help:      "Total number of user repository operations, by operation and result.",
	},
	[]string{"operation", "result"},
)

// RepositoryOperationDuration measures one load, mutate, save cycle.
var RepositoryOperationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "repository",
		Name:      "operation_duration_seconds",
		Help:      "Duration of user repository operations including store round trips.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation"},
)

// SessionsResolvedTotal counts session resolutions.
// Label:
//   - result: "matched" (stored user found), "guest" (fabricated) or "error"
var SessionsResolvedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_resolved_total",
		Help:      "Total number of session resolutions, by result.",
	},
	[]string{"result"},
)
