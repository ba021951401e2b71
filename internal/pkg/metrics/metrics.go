// Package metrics defines and registers the custom Prometheus metrics of the
// appointments API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry on package init
// through promauto; the /metrics route serves them alongside the HTTP
// metrics collected by echoprometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "medconnect"

// ── Availability metrics ──────────────────────────────────────────────────────

// AvailabilitySubmissionsTotal counts availability form submissions.
// Label:
//   - outcome: "created", "unauthenticated", "forbidden", "incomplete",
//     "invalid_format", "invalid_range", "conflict" or "store_error"
var AvailabilitySubmissionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "availability_submissions_total",
		Help:      "Total number of availability submissions, by outcome.",
	},
	[]string{"outcome"},
)

// ViewCacheLookupsTotal counts dashboard view cache lookups.
// Label:
//   - result: "hit", "miss" or "error"
var ViewCacheLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "view_cache_lookups_total",
		Help:      "Total number of dashboard view cache lookups, by result.",
	},
	[]string{"result"},
)

// ViewInvalidationErrorsTotal counts failed best-effort view invalidations.
var ViewInvalidationErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "view_invalidation_errors_total",
		Help:      "Total number of dashboard view invalidations that failed.",
	},
)

// ── Inference metrics ─────────────────────────────────────────────────────────

// InferenceRequestsTotal counts calls to the inference provider.
// Labels:
//   - kind: "triage" or "summary"
//   - outcome: "ok", "fallback" or "error"
var InferenceRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "inference_requests_total",
		Help:      "Total number of inference provider calls, by kind and outcome.",
	},
	[]string{"kind", "outcome"},
)

// InferenceDuration measures the inference provider round trip.
// Label:
//   - kind: "triage" or "summary"
var InferenceDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "inference_duration_seconds",
		Help:      "Duration of inference provider calls.",
		Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 30},
	},
	[]string{"kind"},
)
