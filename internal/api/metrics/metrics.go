// Package metrics defines and registers all custom Prometheus metrics for
// the ShareBite donation API. It is the single source of truth for metric
// names, labels, and help strings. All metrics self-register with the
// default registry via promauto at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "sharebite"

// ── Donation metrics ──────────────────────────────────────────────────────────

// DonationsCreatedTotal counts newly created donations.
// Label:
//   - category: the donation category as submitted (e.g. "cooked")
var DonationsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "donations_created_total",
		Help:      "Total number of donations created, by category.",
	},
	[]string{"category"},
)

// ClaimsTotal counts claim attempts by outcome.
// Label:
//   - result: "success", "not_found", "already_claimed" or "error"
var ClaimsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "claims_total",
		Help:      "Total number of claim attempts, by result.",
	},
	[]string{"result"},
)

// DonationsPurgedTotal counts donations deleted by retention sweeps.
var DonationsPurgedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "donations_purged_total",
		Help:      "Total number of donations removed by retention cleanup.",
	},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// AlertEmailsSentTotal counts successfully delivered alert broadcast mails.
var AlertEmailsSentTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "alert_emails_sent_total",
		Help:      "Total number of donation alert emails successfully handed to the mail provider.",
	},
)

// ── Background task metrics ───────────────────────────────────────────────────

// TasksQueueDepth tracks the current number of tasks waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var TasksQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "tasks_queue_depth",
		Help:      "Current number of tasks pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// TaskDuration measures how long a single background task takes end-to-end.
// Label:
//   - kind: the task kind (e.g. "donation_alert", "cleanup")
var TaskDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "task_duration_seconds",
		Help:      "Duration of background task processing from dequeue to completion.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"kind"},
)
