// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ChatRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_requests_total",
			Help: "Total number of chat requests by classified intent and outcome",
		},
		[]string{"intent", "status"},
	)

	ChatRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "chat_request_duration_seconds",
			Help: "Duration of chat request handling in seconds",
		},
		[]string{"intent"},
	)

	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_requests_total",
			Help: "Total number of outbound provider requests",
		},
		[]string{"provider", "status"},
	)

	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "upstream_request_duration_seconds",
			Help: "Duration of outbound provider requests in seconds",
		},
		[]string{"provider"},
	)

	FallbackCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fallback_cache_hits_total",
			Help: "Times a degraded answer was served from the fallback cache",
		},
		[]string{"provider"},
	)
)
