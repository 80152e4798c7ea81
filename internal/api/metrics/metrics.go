// Package metrics defines and registers all custom Prometheus metrics for the
// food truck API. It is the single source of truth for metric names, labels,
// and help strings.
//
// All metrics register themselves with the default Prometheus registry at
// package init via promauto; the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "foodtruck"

// ── Loyalty metrics ───────────────────────────────────────────────────────────

// VerificationsTotal counts student ID verification events.
// Label:
//   - action: "uploaded", "approved", or "rejected"
var VerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "verifications_total",
		Help:      "Total number of student ID verification events, by action.",
	},
	[]string{"action"},
)

// BillsProcessedTotal counts bill submissions by outcome.
// Label:
//   - result: "approved" (points awarded), "extraction_failed" (OCR could not
//     read the bill), "duplicate" (bill number already submitted), or
//     "rejected" (eligibility or daily-limit check failed)
var BillsProcessedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bills_processed_total",
		Help:      "Total number of bill submissions, by result.",
	},
	[]string{"result"},
)

// PointsAwardedTotal is the running sum of loyalty points granted.
var PointsAwardedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "points_awarded_total",
		Help:      "Total loyalty points awarded across all users.",
	},
)

// LoyaltyExpiredTotal counts memberships deactivated because the member
// aged out of the program.
var LoyaltyExpiredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "loyalty_expired_total",
		Help:      "Total number of loyalty memberships expired for age.",
	},
)

// SweepDuration measures how long a full expiry sweep over active students takes.
var SweepDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "expiry_sweep_duration_seconds",
		Help:      "Duration of a loyalty expiry sweep over all active students.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
)
