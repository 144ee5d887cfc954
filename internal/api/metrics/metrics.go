// Package metrics defines and registers the custom Prometheus metrics of the
// storefront API. Request counts and latencies come from the echoprometheus
// middleware; this package only carries business counters.
//
// Metrics are registered on the default registry at package init through
// promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storefront"

// ── Account metrics ───────────────────────────────────────────────────────────

// SigninsTotal counts sign-in attempts.
// Label:
//   - result: "success" or "failure"
var SigninsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signins_total",
		Help:      "Total number of sign-in attempts, by result.",
	},
	[]string{"result"},
)

// SignupsTotal counts registrations.
// Label:
//   - result: "success", "duplicate" or "failure"
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of account registrations, by result.",
	},
	[]string{"result"},
)

// AdminDeniedTotal counts requests rejected by the admin gate.
var AdminDeniedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "admin_denied_total",
		Help:      "Total number of requests refused for lacking the admin role.",
	},
)

// ── Catalog metrics ───────────────────────────────────────────────────────────

// CatalogMutationsTotal counts admin changes to the catalog.
// Label:
//   - operation: "create", "update", "delete" or "seed"
var CatalogMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_mutations_total",
		Help:      "Total number of catalog mutations, by operation.",
	},
	[]string{"operation"},
)

// SearchResults observes how many products a search returned.
var SearchResults = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "search_results",
		Help:      "Number of products returned per catalog search.",
		Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100},
	},
)

const (
	ResultSuccess   = "success"
	ResultFailure   = "failure"
	ResultDuplicate = "duplicate"

	OperationCreate = "create"
	OperationUpdate = "update"
	OperationDelete = "delete"
	OperationSeed   = "seed"
)
