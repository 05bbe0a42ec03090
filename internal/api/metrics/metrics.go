// Package metrics defines and registers all custom Prometheus metrics for
// the magazine portal. It is the single source of truth for metric names,
// labels, and help strings. Registration happens at import time via
// promauto; HTTP-level metrics are handled separately by echoprometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portal"

// SubmissionsCreatedTotal counts newly created submissions.
// Label:
//   - faculty_id: the faculty a submission belongs to
var SubmissionsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "submissions_created_total",
		Help:      "Total number of submissions created, by faculty.",
	},
	[]string{"faculty_id"},
)

// SelectionsTotal counts coordinator review decisions.
// Label:
//   - decision: "selected", "deselected", or "rejected"
var SelectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "selections_total",
		Help:      "Total number of coordinator review decisions.",
	},
	[]string{"decision"},
)

// CommentsTotal counts review comments added.
var CommentsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "comments_total",
		Help:      "Total number of review comments added.",
	},
)

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ActivityQueueDepth tracks the pending entries in each dispatcher worker
// channel.
// Label:
//   - worker_id: numeric worker index
var ActivityQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "activity_queue_depth",
		Help:      "Current number of activity entries pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ActivityRecordedTotal counts audit trail entries persisted.
// Label:
//   - action: the activity action type
var ActivityRecordedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_recorded_total",
		Help:      "Total number of activity log entries persisted, by action.",
	},
	[]string{"action"},
)

// ActivityDroppedTotal counts audit trail entries dropped because the
// dispatcher queue was full.
var ActivityDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_dropped_total",
		Help:      "Total number of activity log entries dropped due to a full queue.",
	},
)
