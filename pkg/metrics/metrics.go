package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// APIRequestsTotal counts handled API requests.
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// APIRequestDuration tracks request latency.
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// RequisitionsCreatedTotal counts created requisitions per holding.
	RequisitionsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "requisitions_created_total",
			Help: "Total number of requisitions created",
		},
		[]string{"holding", "category"},
	)

	// ApprovalDecisionsTotal counts approve/reject decisions.
	ApprovalDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "requisition_approval_decisions_total",
			Help: "Total number of approval decisions recorded",
		},
		[]string{"decision"},
	)

	// BulkOperationsTotal counts bulk approve/reject invocations.
	BulkOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "requisition_bulk_operations_total",
			Help: "Total number of bulk approval operations",
		},
		[]string{"operation", "outcome"}, // outcome: full, partial, failed
	)

	// NotificationFailuresTotal counts swallowed notification errors.
	NotificationFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "notification_failures_total",
			Help: "Total number of failed (and swallowed) notification dispatches",
		},
	)

	// UnfilledRequisitions tracks requisitions currently flagged stale.
	UnfilledRequisitions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "requisitions_unfilled_alert",
			Help: "Number of requisitions flagged as unfilled past the staleness threshold",
		},
	)
)
