// Package metrics defines Prometheus metrics for the social-post binaries.
//
// The binaries are short-lived, so nothing is scraped. When a Pushgateway
// is configured the default registry is pushed once before exit.
package metrics

import (
	"context"
	"fmt"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"
)

const namespace = "social_post"

// Remote API metrics.
var (
	APICallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "api_calls_total",
		Help:      "Total remote API calls by platform, operation and HTTP status.",
	}, []string{"platform", "op", "status"})

	APICallDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "api_call_duration_seconds",
		Help:      "Duration of remote API calls in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"platform", "op"})
)

// Publishing metrics.
var (
	PublishedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "published_total",
		Help:      "Total items successfully published, by platform.",
	}, []string{"platform"})

	MediaPollAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "media_poll_attempts_total",
		Help:      "Total Instagram container status polls, by media kind.",
	}, []string{"kind"})
)

// Auth metrics.
var (
	TokenRefreshesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_refreshes_total",
		Help:      "Total token refresh or acquisition attempts, by platform and result.",
	}, []string{"platform", "result"})
)

// StatusLabel renders an HTTP status code as a label value. Zero means the
// request never produced a response.
func StatusLabel(code int) string {
	if code == 0 {
		return "error"
	}
	return strconv.Itoa(code)
}

// ResultLabel maps an error to "success" or "failure".
func ResultLabel(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}

// Push sends everything in the default registry to a Pushgateway under job.
func Push(ctx context.Context, url, job string) error {
	err := push.New(url, job).
		Gatherer(prometheus.DefaultGatherer).
		PushContext(ctx)
	if err != nil {
		return fmt.Errorf("pushing metrics to %s: %w", url, err)
	}
	return nil
}
