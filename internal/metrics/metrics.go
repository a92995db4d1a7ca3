package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder exposes Prometheus metrics for the monitor.
type Recorder struct {
	fetchErrors     *prometheus.CounterVec
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	compositeScore  prometheus.Gauge
	componentPoints *prometheus.GaugeVec
	refreshDuration prometheus.Histogram
}

// New creates a Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		fetchErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gsmi_fetch_errors_total",
				Help: "Total number of failed provider fetches",
			},
			[]string{"provider", "series"},
		),
		cacheHits: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "gsmi_snapshot_cache_hits_total",
				Help: "Snapshot cache hits",
			},
		),
		cacheMisses: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "gsmi_snapshot_cache_misses_total",
				Help: "Snapshot cache misses",
			},
		),
		compositeScore: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "gsmi_composite_score",
				Help: "Last computed composite score (0-100)",
			},
		),
		componentPoints: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "gsmi_component_points",
				Help: "Last computed points per score component",
			},
			[]string{"component"},
		),
		refreshDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "gsmi_refresh_duration_seconds",
				Help:    "Duration of full snapshot refreshes in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
}

// RecordFetchError records a failed provider fetch.
func (r *Recorder) RecordFetchError(provider, series string) {
	r.fetchErrors.WithLabelValues(provider, series).Inc()
}

// RecordCacheHit records a snapshot cache hit.
func (r *Recorder) RecordCacheHit() { r.cacheHits.Inc() }

// RecordCacheMiss records a snapshot cache miss.
func (r *Recorder) RecordCacheMiss() { r.cacheMisses.Inc() }

// RecordScore records the latest composite score and component points.
func (r *Recorder) RecordScore(total int, components map[string]int) {
	r.compositeScore.Set(float64(total))
	for name, pts := range components {
		r.componentPoints.WithLabelValues(name).Set(float64(pts))
	}
}

// RecordRefreshDuration records a full refresh duration in seconds.
func (r *Recorder) RecordRefreshDuration(seconds float64) {
	r.refreshDuration.Observe(seconds)
}
