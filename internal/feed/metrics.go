package feed

import (
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// UpstreamDuration measures upstream feed API calls.
	UpstreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "newsnexus",
			Name:      "upstream_request_duration_seconds",
			Help:      "Duration of upstream feed API requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation", "status"},
	)

	// FallbackTotal counts calls served by the fallback dataset because the
	// upstream failed.
	FallbackTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "newsnexus",
			Name:      "upstream_fallback_total",
			Help:      "Total number of upstream failures served from the fallback dataset",
		},
		[]string{"operation"},
	)

	// CacheLookups counts response cache hits and misses.
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "newsnexus",
			Name:      "response_cache_lookups_total",
			Help:      "Total number of response cache lookups",
		},
		[]string{"operation", "result"},
	)
)

func observeUpstream(operation string, resp *resty.Response, err error, start time.Time) {
	status := "error"
	if err == nil && resp != nil {
		status = strconv.Itoa(resp.StatusCode())
	}
	UpstreamDuration.WithLabelValues(operation, status).Observe(time.Since(start).Seconds())
}
