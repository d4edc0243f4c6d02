// Package metrics exposes Prometheus collectors for the analysis pipeline.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics tracks pipeline activity. Collectors register on a private
// registry so repeated construction in tests cannot collide.
type Metrics struct {
	registry *prometheus.Registry

	PostsCollected *prometheus.CounterVec
	PostsEstimated prometheus.Counter
	HashtagsRanked *prometheus.CounterVec
	RunsTotal      *prometheus.CounterVec
	RunDuration    *prometheus.HistogramVec
}

// New creates and registers the pipeline collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		PostsCollected: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hashradar_posts_collected_total",
				Help: "Posts fetched from sources, by source name",
			},
			[]string{"source"},
		),
		PostsEstimated: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "hashradar_posts_estimated_total",
				Help: "Posts whose engagement metrics were partly or fully estimated",
			},
		),
		HashtagsRanked: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hashradar_hashtags_ranked_total",
				Help: "Hashtags that made a ranked result, by category",
			},
			[]string{"category"},
		),
		RunsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hashradar_runs_total",
				Help: "Completed analysis runs, by category and status",
			},
			[]string{"category", "status"},
		),
		RunDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "hashradar_run_duration_seconds",
				Help:    "Analysis run duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"category"},
		),
	}

	m.registry.MustRegister(
		m.PostsCollected,
		m.PostsEstimated,
		m.HashtagsRanked,
		m.RunsTotal,
		m.RunDuration,
	)
	return m
}

// Handler serves the /metrics endpoint for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
