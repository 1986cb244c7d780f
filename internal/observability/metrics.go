// Package observability provides Prometheus metrics and OpenTelemetry
// tracing for the application.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RegistrationsTotal counts successful account registrations.
	RegistrationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "postly_registrations_total",
		Help: "Total number of successful account registrations",
	})

	// LoginsTotal counts login attempts by outcome.
	LoginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "postly_logins_total",
		Help: "Total number of login attempts by outcome",
	}, []string{"outcome"})

	// AuthFailures counts auth gate rejections by reason
	// (missing, expired, malformed, signature).
	AuthFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "postly_auth_failures_total",
		Help: "Total number of auth gate rejections by reason",
	}, []string{"reason"})

	// PostsCreated counts created posts.
	PostsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "postly_posts_created_total",
		Help: "Total number of posts created",
	})

	// LikeToggles counts like toggles by resulting action (like / unlike).
	LikeToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "postly_like_toggles_total",
		Help: "Total number of like toggles by resulting action",
	}, []string{"action"})

	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "postly_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})
)
