// Package metrics declares the Prometheus collectors of the collaboration
// service. Collectors register with the default registry on import and are
// served by the /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "collab"

// AuthEventsTotal counts credential operations.
// Labels:
//   - event: "signup", "login", "refresh", "logout", "logout_all"
//   - outcome: "ok" or a short failure reason such as "invalid_refresh"
var AuthEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_events_total",
		Help:      "Total number of credential operations, by event and outcome.",
	},
	[]string{"event", "outcome"},
)

// InvitationTransitionsTotal counts invitations entering a status,
// INVITED included.
var InvitationTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "invitation_transitions_total",
		Help:      "Total number of invitation state transitions, by resulting status.",
	},
	[]string{"status"},
)

// ApplicationTransitionsTotal counts applications entering a status,
// PENDING included.
var ApplicationTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "application_transitions_total",
		Help:      "Total number of role application state transitions, by resulting status.",
	},
	[]string{"status"},
)

// WorkflowRejectionsTotal counts requests a workflow engine refused.
// Labels:
//   - workflow: "invitation" or "application"
//   - reason: "forbidden", "conflict", "not_found", "invalid_argument"
var WorkflowRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "workflow_rejections_total",
		Help:      "Total number of workflow requests rejected, by workflow and reason.",
	},
	[]string{"workflow", "reason"},
)

// TeamMembershipsTotal counts memberships added or removed as a side
// effect of a workflow decision.
// Labels:
//   - via: "INVITATION" or "APPLICATION"
//   - change: "added" or "removed"
var TeamMembershipsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "team_memberships_total",
		Help:      "Total number of team membership changes caused by workflow decisions.",
	},
	[]string{"via", "change"},
)

// RateLimitRejectionsTotal counts requests dropped by a rate limit profile.
var RateLimitRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limit_rejections_total",
		Help:      "Total number of requests rejected by the rate limiter, by profile.",
	},
	[]string{"profile"},
)

// ExpiredRefreshTokensDeletedTotal counts rows removed by housekeeping or
// by an expired token being presented.
var ExpiredRefreshTokensDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "expired_refresh_tokens_deleted_total",
		Help:      "Total number of expired refresh tokens deleted.",
	},
)

// RateLimitRejected is a RateLimitConfig.OnReject hook.
func RateLimitRejected(profile string) {
	RateLimitRejectionsTotal.WithLabelValues(profile).Inc()
}
