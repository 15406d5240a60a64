package sitemap

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CollectDuration measures full id collection runs.
	CollectDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "newsnexus",
			Name:      "sitemap_collect_duration_seconds",
			Help:      "Duration of sitemap article id collection in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 5, 15, 30, 60, 120, 300},
		},
	)

	// CollectedIDs is the size of the most recent id collection.
	CollectedIDs = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "newsnexus",
			Name:      "sitemap_article_ids",
			Help:      "Number of article ids in the most recent sitemap collection",
		},
	)
)
