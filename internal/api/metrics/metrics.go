// Package metrics defines and registers all custom Prometheus metrics for the
// field service API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "fieldservice"

// ── Authentication metrics ────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials", or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of password login attempts, by result.",
	},
	[]string{"result"},
)

// OTPIssuedTotal counts one-time codes issued.
// Label:
//   - result: "sent", "throttled", or "error"
var OTPIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "otp_issued_total",
		Help:      "Total number of OTP issue requests, by result.",
	},
	[]string{"result"},
)

// OTPVerifiedTotal counts OTP verification attempts.
// Label:
//   - result: "success", "invalid", or "error"
var OTPVerifiedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "otp_verified_total",
		Help:      "Total number of OTP verification attempts, by result.",
	},
	[]string{"result"},
)

// ── Ticket metrics ────────────────────────────────────────────────────────────

// TicketStatusUpdatesTotal counts ticket status mutations.
// Label:
//   - status: the new ticket status (e.g. "IN_PROGRESS")
var TicketStatusUpdatesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ticket_status_updates_total",
		Help:      "Total number of ticket status updates, by resulting status.",
	},
	[]string{"status"},
)

// TicketMediaCapturesTotal counts location, photo, and signature captures.
// Label:
//   - kind: "location", "photos", or "signature"
var TicketMediaCapturesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ticket_media_captures_total",
		Help:      "Total number of field capture submissions, by kind.",
	},
	[]string{"kind"},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// NotificationsDeliveredTotal counts feed entries written by the dispatcher.
// Label:
//   - result: "ok" or "error"
var NotificationsDeliveredTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_delivered_total",
		Help:      "Total number of notification feed writes, by result.",
	},
	[]string{"result"},
)

// NotificationsQueueDepth tracks the number of events waiting in each
// dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var NotificationsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notifications_queue_depth",
		Help:      "Current number of notification events pending per dispatcher worker.",
	},
	[]string{"worker_id"},
)
