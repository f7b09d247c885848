package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reelscope/reelscope/internal/enrich"
)

// Gateway outcomes must surface in the exposition format.
var _ enrich.Observer = (*MetricsRegistry)(nil)

func scrape(t *testing.T, m *MetricsRegistry) string {
	t.Helper()
	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	return w.Body.String()
}

func TestEnrichmentOutcomeCounter(t *testing.T) {
	m := NewMetricsRegistry()

	m.EnrichmentOutcome(enrich.TaskSentiment, enrich.OutcomeFallback)
	m.EnrichmentOutcome(enrich.TaskSentiment, enrich.OutcomeFallback)
	m.EnrichmentOutcome(enrich.TaskHashtags, enrich.OutcomeUpstream)

	body := scrape(t, m)
	assert.Contains(t, body, `reelscope_enrichment_outcomes_total{outcome="fallback",task="sentiment"} 2`)
	assert.Contains(t, body, `reelscope_enrichment_outcomes_total{outcome="upstream",task="hashtags"} 1`)
}

func TestCacheHitRatio(t *testing.T) {
	m := NewMetricsRegistry()

	m.RecordCacheHit("post")
	m.RecordCacheHit("post")
	m.RecordCacheHit("post")
	m.RecordCacheMiss("post")

	body := scrape(t, m)
	assert.Contains(t, body, `reelscope_cache_hit_ratio 0.75`)
	assert.Contains(t, body, `reelscope_cache_hits_total{cache_type="post"} 3`)
}

func TestAnalysisCounter(t *testing.T) {
	m := NewMetricsRegistry()

	m.RecordAnalysis("analyze", "200")
	m.RecordAnalysis("analyze", "400")

	body := scrape(t, m)
	assert.Contains(t, body, `reelscope_analyses_total{endpoint="analyze",status="200"} 1`)
	assert.Contains(t, body, `reelscope_analyses_total{endpoint="analyze",status="400"} 1`)
}
