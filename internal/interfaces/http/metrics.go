package http

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	io_prometheus_client "github.com/prometheus/client_model/go"

	"github.com/reelscope/reelscope/internal/enrich"
)

// MetricsRegistry holds all Prometheus metrics for the service. It owns
// a private registry so multiple instances can coexist in tests.
type MetricsRegistry struct {
	registry *prometheus.Registry

	// Request metrics
	RequestDuration *prometheus.HistogramVec
	Analyses        *prometheus.CounterVec

	// Enrichment outcome metrics
	EnrichmentOutcomes *prometheus.CounterVec

	// Post cache metrics
	CacheHits     *prometheus.CounterVec
	CacheMisses   *prometheus.CounterVec
	CacheHitRatio prometheus.Gauge
}

// NewMetricsRegistry creates a registry with all service metrics.
func NewMetricsRegistry() *MetricsRegistry {
	m := &MetricsRegistry{
		registry: prometheus.NewRegistry(),

		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "reelscope_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0, 60.0},
			},
			[]string{"endpoint", "status"},
		),

		Analyses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reelscope_analyses_total",
				Help: "Total number of analyses served by endpoint and status",
			},
			[]string{"endpoint", "status"},
		),

		EnrichmentOutcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reelscope_enrichment_outcomes_total",
				Help: "Enrichment calls by task and outcome (upstream or fallback)",
			},
			[]string{"task", "outcome"},
		),

		CacheHits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reelscope_cache_hits_total",
				Help: "Total number of cache hits by cache type",
			},
			[]string{"cache_type"},
		),

		CacheMisses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reelscope_cache_misses_total",
				Help: "Total number of cache misses by cache type",
			},
			[]string{"cache_type"},
		),

		CacheHitRatio: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "reelscope_cache_hit_ratio",
				Help: "Current cache hit ratio (0.0 to 1.0)",
			},
		),
	}

	m.registry.MustRegister(
		m.RequestDuration,
		m.Analyses,
		m.EnrichmentOutcomes,
		m.CacheHits,
		m.CacheMisses,
		m.CacheHitRatio,
	)

	return m
}

// EnrichmentOutcome implements enrich.Observer.
func (m *MetricsRegistry) EnrichmentOutcome(task enrich.Task, outcome string) {
	m.EnrichmentOutcomes.WithLabelValues(string(task), outcome).Inc()
}

// RecordAnalysis counts one served analysis.
func (m *MetricsRegistry) RecordAnalysis(endpoint, status string) {
	m.Analyses.WithLabelValues(endpoint, status).Inc()
}

// RecordCacheHit records a cache hit for the specified cache type.
func (m *MetricsRegistry) RecordCacheHit(cacheType string) {
	m.CacheHits.WithLabelValues(cacheType).Inc()
	m.updateCacheHitRatio()
}

// RecordCacheMiss records a cache miss for the specified cache type.
func (m *MetricsRegistry) RecordCacheMiss(cacheType string) {
	m.CacheMisses.WithLabelValues(cacheType).Inc()
	m.updateCacheHitRatio()
}

// ObserveRequest records one request's duration.
func (m *MetricsRegistry) ObserveRequest(endpoint, status string, d time.Duration) {
	m.RequestDuration.WithLabelValues(endpoint, status).Observe(d.Seconds())
}

// updateCacheHitRatio recomputes the hit ratio from the raw counters.
func (m *MetricsRegistry) updateCacheHitRatio() {
	hitMetric := &io_prometheus_client.Metric{}
	missMetric := &io_prometheus_client.Metric{}

	totalHits := 0.0
	totalMisses := 0.0

	for _, cacheType := range []string{"post"} {
		if hitCounter, err := m.CacheHits.GetMetricWithLabelValues(cacheType); err == nil {
			if err := hitCounter.Write(hitMetric); err == nil {
				totalHits += hitMetric.GetCounter().GetValue()
			}
		}
		if missCounter, err := m.CacheMisses.GetMetricWithLabelValues(cacheType); err == nil {
			if err := missCounter.Write(missMetric); err == nil {
				totalMisses += missMetric.GetCounter().GetValue()
			}
		}
	}

	total := totalHits + totalMisses
	if total > 0 {
		m.CacheHitRatio.Set(totalHits / total)
	}
}

// Handler exposes the registry in Prometheus text format.
func (m *MetricsRegistry) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
