// Package metrics defines and registers all custom Prometheus metrics for
// the company management API. It is the single source of truth for metric
// names, labels, and help strings.
//
// Metrics register with the default Prometheus registry via promauto at
// package load; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "company"

// ── Authentication metrics ────────────────────────────────────────────────────

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "invalid_credentials", "inactive_account"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by outcome.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts successful registrations by role.
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of users registered, by role.",
	},
	[]string{"role"},
)

// TokenVerificationsTotal counts access-token verifications at the
// authentication gate. The expired/malformed distinction exists only here
// and in logs; HTTP responses collapse both into a generic 401.
// Label:
//   - result: "ok", "missing", "malformed", "expired", "unknown_user", "inactive_user"
var TokenVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_verifications_total",
		Help:      "Total number of access token verifications, labelled by result.",
	},
	[]string{"result"},
)

// RateLimitedTotal counts requests rejected by a rate limiter.
// Label:
//   - route: the throttled route group (e.g. "login")
var RateLimitedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_total",
		Help:      "Total number of requests rejected by rate limiting.",
	},
	[]string{"route"},
)

// ── Audit pipeline metrics ────────────────────────────────────────────────────

// AuditEventsWrittenTotal counts audit events persisted successfully.
// Label:
//   - type: the auth event type (e.g. "login", "login_failed")
var AuditEventsWrittenTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_written_total",
		Help:      "Total number of auth audit events persisted, by event type.",
	},
	[]string{"type"},
)

// AuditEventsDroppedTotal counts audit events dropped because a worker
// queue was full. Auditing is best-effort: requests never block on it.
var AuditEventsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_dropped_total",
		Help:      "Total number of auth audit events dropped due to full queues.",
	},
)

// AuditQueueDepth tracks the number of events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
