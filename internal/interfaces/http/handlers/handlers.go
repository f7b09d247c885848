// Package handlers implements the JSON endpoints of the analysis API.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/reelscope/reelscope/internal/app"
	"github.com/reelscope/reelscope/internal/domain"
	"github.com/reelscope/reelscope/internal/domain/comments"
	"github.com/reelscope/reelscope/internal/domain/timing"
	"github.com/reelscope/reelscope/internal/domain/virality"
	"github.com/reelscope/reelscope/internal/enrich"
	"github.com/reelscope/reelscope/internal/infrastructure/scraper"
)

const maxBodyBytes = 1 << 20 // 1 MiB request cap

// ScrapeClient fetches a post from the scrape service.
type ScrapeClient interface {
	Scrape(ctx context.Context, url string) (*domain.Post, error)
}

// PostStore is the cache consulted before scraping.
type PostStore interface {
	Get(ctx context.Context, shortcode string) (*domain.Post, bool)
	Set(ctx context.Context, post *domain.Post) error
	Healthy(ctx context.Context) bool
}

// MetricsRecorder counts served analyses and cache traffic.
type MetricsRecorder interface {
	RecordAnalysis(endpoint, status string)
	RecordCacheHit(cacheType string)
	RecordCacheMiss(cacheType string)
}

// NoopMetrics satisfies MetricsRecorder when no registry is wired.
type NoopMetrics struct{}

func (NoopMetrics) RecordAnalysis(string, string) {}
func (NoopMetrics) RecordCacheHit(string)         {}
func (NoopMetrics) RecordCacheMiss(string)        {}

// Config wires the handler dependencies. Scraper and Cache are
// optional; the scrape endpoint returns 503 without a scraper.
type Config struct {
	Analyzer *app.Analyzer
	Gateway  *enrich.Gateway
	Scraper  ScrapeClient
	Cache    PostStore
	Metrics  MetricsRecorder
}

// Handlers contains all HTTP endpoint handlers.
type Handlers struct {
	analyzer *app.Analyzer
	gateway  *enrich.Gateway
	scraper  ScrapeClient
	cache    PostStore
	metrics  MetricsRecorder

	comments *comments.Analyzer
	scorer   *virality.Scorer
	timing   *timing.Estimator

	startTime time.Time
}

// New creates the handler set.
func New(cfg Config) *Handlers {
	if cfg.Analyzer == nil {
		cfg.Analyzer = app.NewAnalyzer()
	}
	if cfg.Gateway == nil {
		cfg.Gateway = enrich.NewGateway(nil)
	}
	if cfg.Metrics == nil {
		cfg.Metrics = NoopMetrics{}
	}
	return &Handlers{
		analyzer:  cfg.Analyzer,
		gateway:   cfg.Gateway,
		scraper:   cfg.Scraper,
		cache:     cfg.Cache,
		metrics:   cfg.Metrics,
		comments:  comments.NewAnalyzer(),
		scorer:    virality.NewScorer(),
		timing:    timing.NewEstimator(),
		startTime: time.Now(),
	}
}

// errorResponse is the uniform error envelope.
type errorResponse struct {
	Error string `json:"error"`
}

// Analyze handles POST /analyze with a post payload, returning the full
// deterministic report.
func (h *Handlers) Analyze(w http.ResponseWriter, r *http.Request) {
	post, ok := h.decodePost(w, r, "analyze")
	if !ok {
		return
	}
	report, err := h.analyzer.Analyze(post)
	if err != nil {
		h.writeError(w, "analyze", err)
		return
	}
	h.writeJSON(w, "analyze", http.StatusOK, report)
}

// Virality handles POST /analyze/virality.
func (h *Handlers) Virality(w http.ResponseWriter, r *http.Request) {
	post, ok := h.decodeValidPost(w, r, "virality")
	if !ok {
		return
	}
	h.writeJSON(w, "virality", http.StatusOK, h.scorer.Score(post))
}

// Comments handles POST /analyze/comments.
func (h *Handlers) Comments(w http.ResponseWriter, r *http.Request) {
	post, ok := h.decodeValidPost(w, r, "comments")
	if !ok {
		return
	}
	h.writeJSON(w, "comments", http.StatusOK, h.comments.Analyze(post.Comments))
}

// Timing handles POST /analyze/timing with the deterministic local
// estimate and reference tables.
func (h *Handlers) Timing(w http.ResponseWriter, r *http.Request) {
	post, ok := h.decodeValidPost(w, r, "timing")
	if !ok {
		return
	}
	resp := struct {
		PostTime  timing.PostTime  `json:"post_time"`
		Reference timing.Reference `json:"reference"`
	}{
		PostTime:  h.timing.Estimate(post.TakenAt),
		Reference: h.timing.Reference(),
	}
	h.writeJSON(w, "timing", http.StatusOK, resp)
}

// Sentiment handles POST /analyze/sentiment via the enrichment gateway.
func (h *Handlers) Sentiment(w http.ResponseWriter, r *http.Request) {
	post, ok := h.decodeValidPost(w, r, "sentiment")
	if !ok {
		return
	}
	result, err := h.gateway.AnalyzeSentiment(r.Context(), post.Caption, post.Comments)
	if err != nil {
		h.writeError(w, "sentiment", err)
		return
	}
	h.writeJSON(w, "sentiment", http.StatusOK, result)
}

// Hashtags handles POST /analyze/hashtags via the enrichment gateway.
func (h *Handlers) Hashtags(w http.ResponseWriter, r *http.Request) {
	post, ok := h.decodeValidPost(w, r, "hashtags")
	if !ok {
		return
	}
	result, err := h.gateway.AnalyzeHashtags(r.Context(), post.Caption, post.Comments)
	if err != nil {
		h.writeError(w, "hashtags", err)
		return
	}
	h.writeJSON(w, "hashtags", http.StatusOK, result)
}

// TimingNarrative handles POST /analyze/timing/narrative via the
// enrichment gateway.
func (h *Handlers) TimingNarrative(w http.ResponseWriter, r *http.Request) {
	post, ok := h.decodeValidPost(w, r, "timing_narrative")
	if !ok {
		return
	}
	result, err := h.gateway.AnalyzeTiming(r.Context(), post)
	if err != nil {
		h.writeError(w, "timing_narrative", err)
		return
	}
	h.writeJSON(w, "timing_narrative", http.StatusOK, result)
}

// compareRequest is the POST /compare payload.
type compareRequest struct {
	Reel1 *domain.Post `json:"reel1"`
	Reel2 *domain.Post `json:"reel2"`
}

// Compare handles POST /compare with two post payloads.
func (h *Handlers) Compare(w http.ResponseWriter, r *http.Request) {
	var req compareRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, "compare", fmt.Errorf("%w: %v", domain.ErrInvalidInput, err))
		return
	}
	cmp, err := app.Compare(req.Reel1, req.Reel2)
	if err != nil {
		h.writeError(w, "compare", err)
		return
	}
	h.writeJSON(w, "compare", http.StatusOK, cmp)
}

var shortcodePattern = regexp.MustCompile(`/(?:reel|reels|p|tv)/([A-Za-z0-9_-]+)`)

// Scrape handles GET /scrape?url=. Cached posts are served without
// touching the scrape service.
func (h *Handlers) Scrape(w http.ResponseWriter, r *http.Request) {
	if h.scraper == nil {
		h.writeJSONError(w, "scrape", http.StatusServiceUnavailable, "scrape service is not configured")
		return
	}

	url := r.URL.Query().Get("url")
	if url == "" {
		h.writeError(w, "scrape", fmt.Errorf("%w: url query parameter is required", domain.ErrInvalidInput))
		return
	}

	var shortcode string
	if m := shortcodePattern.FindStringSubmatch(url); m != nil {
		shortcode = m[1]
	}

	if h.cache != nil && shortcode != "" {
		if post, ok := h.cache.Get(r.Context(), shortcode); ok {
			h.metrics.RecordCacheHit("post")
			h.writeJSON(w, "scrape", http.StatusOK, post)
			return
		}
		h.metrics.RecordCacheMiss("post")
	}

	post, err := h.scraper.Scrape(r.Context(), url)
	if err != nil {
		h.writeError(w, "scrape", err)
		return
	}

	if h.cache != nil {
		if err := h.cache.Set(r.Context(), post); err != nil {
			log.Warn().Err(err).Str("shortcode", post.Shortcode).Msg("Post cache write failed")
		}
	}
	h.writeJSON(w, "scrape", http.StatusOK, post)
}

// Health handles GET /health.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	cacheHealthy := false
	if h.cache != nil {
		cacheHealthy = h.cache.Healthy(r.Context())
	}

	resp := map[string]interface{}{
		"status":                "ok",
		"timestamp":             time.Now().UTC().Format(time.RFC3339),
		"uptime_seconds":        int(time.Since(h.startTime).Seconds()),
		"cache_healthy":         cacheHealthy,
		"enrichment_configured": h.gateway.Configured(),
	}
	h.writeJSON(w, "health", http.StatusOK, resp)
}

// NotFound handles unknown routes with the JSON envelope.
func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(errorResponse{Error: fmt.Sprintf("no such endpoint: %s", r.URL.Path)})
}

func decodeJSON(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	return dec.Decode(v)
}

// decodePost reads the request body as a post without validating it.
func (h *Handlers) decodePost(w http.ResponseWriter, r *http.Request, endpoint string) (*domain.Post, bool) {
	var post domain.Post
	if err := decodeJSON(r, &post); err != nil {
		h.writeError(w, endpoint, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err))
		return nil, false
	}
	return &post, true
}

// decodeValidPost reads and validates the request body as a post.
func (h *Handlers) decodeValidPost(w http.ResponseWriter, r *http.Request, endpoint string) (*domain.Post, bool) {
	post, ok := h.decodePost(w, r, endpoint)
	if !ok {
		return nil, false
	}
	if err := post.Validate(); err != nil {
		h.writeError(w, endpoint, err)
		return nil, false
	}
	return post, true
}

func (h *Handlers) writeJSON(w http.ResponseWriter, endpoint string, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Str("endpoint", endpoint).Msg("Response encoding failed")
	}
	h.metrics.RecordAnalysis(endpoint, fmt.Sprintf("%d", status))
}

func (h *Handlers) writeJSONError(w http.ResponseWriter, endpoint string, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{Error: msg})
	h.metrics.RecordAnalysis(endpoint, fmt.Sprintf("%d", status))
}

// writeError maps domain errors onto HTTP status codes.
func (h *Handlers) writeError(w http.ResponseWriter, endpoint string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, enrich.ErrNotConfigured):
		status = http.StatusServiceUnavailable
	case errors.Is(err, scraper.ErrScrapeFailed):
		status = http.StatusBadGateway
	}

	log.Warn().Err(err).Str("endpoint", endpoint).Int("status", status).Msg("Request failed")
	h.writeJSONError(w, endpoint, status, err.Error())
}
