// Package metrics defines and registers all custom Prometheus metrics for the
// customer service. It is the single source of truth for metric names,
// labels, and help strings.
//
// Registration happens through promauto at package init; the /metrics
// endpoint is wired by the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "customer"

// ── Customer lifecycle ────────────────────────────────────────────────────────

// CustomersCreatedTotal counts newly created customers.
// Label:
//   - customer_type: "PERSONAL" or "BUSINESS"
var CustomersCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "customers_created_total",
		Help:      "Total number of customers created, by customer type.",
	},
	[]string{"customer_type"},
)

// ProductRuleRejectionsTotal counts product additions rejected by the
// eligibility rules.
var ProductRuleRejectionsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "product_rule_rejections_total",
		Help:      "Total number of product additions rejected by eligibility rules.",
	},
)

// ── Cache ─────────────────────────────────────────────────────────────────────

// CacheLookupsTotal counts cache-aside lookups.
// Label:
//   - result: "hit" or "miss"
var CacheLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_lookups_total",
		Help:      "Total number of customer cache lookups, labelled by result.",
	},
	[]string{"result"},
)

// ── Downstream product service ────────────────────────────────────────────────

// DownstreamFailuresTotal counts failed resilience-wrapped calls on
// fail-closed paths.
// Label:
//   - operation: "fetch_portfolio", "create_product", "delete_product"
var DownstreamFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "downstream_failures_total",
		Help:      "Total number of failed product service calls on mutation paths.",
	},
	[]string{"operation"},
)

// ── Event emission ────────────────────────────────────────────────────────────

// EventsPublishedTotal counts lifecycle events delivered to the broker.
// Label:
//   - event_type: "CREATED", "UPDATED", "DELETED"
var EventsPublishedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_published_total",
		Help:      "Total number of customer lifecycle events published.",
	},
	[]string{"event_type"},
)

// EventPublishFailuresTotal counts publish attempts that failed and were
// dropped.
var EventPublishFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "event_publish_failures_total",
		Help:      "Total number of lifecycle event publish failures, by event type.",
	},
	[]string{"event_type"},
)

// EventsDroppedTotal counts events dropped because a dispatcher worker queue
// was full.
var EventsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_dropped_total",
		Help:      "Total number of lifecycle events dropped due to a full queue.",
	},
)
