package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	postViews = promauto.NewCounter(prometheus.CounterOpts{
		Name: "akuko_post_views_total",
		Help: "Number of public post page views.",
	})

	commentsSubmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "akuko_comments_submitted_total",
		Help: "Number of comment submissions grouped by outcome.",
	}, []string{"status"})

	loginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "akuko_login_attempts_total",
		Help: "Number of admin login attempts grouped by outcome.",
	}, []string{"status"})

	rateLimitHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "akuko_rate_limit_hits_total",
		Help: "Rate limiter activations grouped by limiter name.",
	}, []string{"limiter"})
)

// IncPostView increments the public post view counter.
func IncPostView() {
	postViews.Inc()
}

// IncComment increments the comment submission counter.
func IncComment(status string) {
	commentsSubmitted.WithLabelValues(status).Inc()
}

// IncLogin increments the login attempt counter.
func IncLogin(status string) {
	loginAttempts.WithLabelValues(status).Inc()
}

// IncRateLimit increments the rate-limit hit counter.
func IncRateLimit(name string) {
	rateLimitHits.WithLabelValues(name).Inc()
}
