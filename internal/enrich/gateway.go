// Package enrich is the integration point to the external
// text-generation service, with a deterministic fallback for every
// task so callers always receive a schema-conformant result.
package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"

	"github.com/reelscope/reelscope/internal/domain"
	"github.com/reelscope/reelscope/internal/domain/timing"
)

// Observer receives the outcome of each enrichment attempt. The HTTP
// layer plugs prometheus counters in here.
type Observer interface {
	EnrichmentOutcome(task Task, outcome string)
}

type noopObserver struct{}

func (noopObserver) EnrichmentOutcome(Task, string) {}

// Outcome labels reported to the Observer.
const (
	OutcomeUpstream = "upstream"
	OutcomeFallback = "fallback"
)

// Gateway wraps every text-generation call with a response-shape
// validator and a deterministic fallback. The single hard-failure path
// is a missing credential; every other failure degrades silently.
type Gateway struct {
	client   TextGenerator
	timing   *timing.Estimator
	breaker  *gobreaker.CircuitBreaker
	observer Observer
}

// Option customizes a Gateway.
type Option func(*Gateway)

// WithObserver wires an outcome observer.
func WithObserver(o Observer) Option {
	return func(g *Gateway) { g.observer = o }
}

// WithTimingEstimator swaps the estimator used for timing fallbacks.
func WithTimingEstimator(e *timing.Estimator) Option {
	return func(g *Gateway) { g.timing = e }
}

// NewGateway builds a gateway. A nil client means the service is not
// configured; every task then returns ErrNotConfigured.
func NewGateway(client TextGenerator, opts ...Option) *Gateway {
	g := &Gateway{
		client:   client,
		timing:   timing.NewEstimator(),
		observer: noopObserver{},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "text-generation",
			MaxRequests: 1,
			Interval:    60 * time.Second,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				log.Warn().Str("breaker", name).
					Str("from", from.String()).Str("to", to.String()).
					Msg("Circuit breaker state changed")
			},
		}),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Configured reports whether a text-generation client is present.
func (g *Gateway) Configured() bool {
	return g.client != nil
}

// generate runs one guarded upstream call and returns the fence-cleaned
// response text. The upstream outcome is recorded only when a validated
// result is served, so a call that parses or validates badly counts as
// a fallback alone.
func (g *Gateway) generate(ctx context.Context, prompt string) (string, error) {
	raw, err := g.breaker.Execute(func() (interface{}, error) {
		return g.client.Generate(ctx, prompt)
	})
	if err != nil {
		return "", err
	}
	return stripCodeFences(raw.(string)), nil
}

// fallbackNote logs the failure and produces the advisory note attached
// to the degraded result.
func (g *Gateway) fallbackNote(task Task, err error, rawText string) string {
	event := log.Warn().Str("task", string(task)).Err(err)
	if rawText != "" {
		// Keep the offending payload for diagnosis.
		event = event.Str("raw_response", rawText)
	}
	event.Msg("Enrichment degraded to fallback")

	g.observer.EnrichmentOutcome(task, OutcomeFallback)
	return fmt.Sprintf("text-generation unavailable, returning fallback data: %v", err)
}

// AnalyzeSentiment runs the sentiment task over a caption and its
// comments.
func (g *Gateway) AnalyzeSentiment(ctx context.Context, caption string, cs []domain.Comment) (*SentimentResult, error) {
	if cs == nil {
		return nil, fmt.Errorf("%w: comments must be a collection", domain.ErrInvalidInput)
	}
	if !g.Configured() {
		return nil, ErrNotConfigured
	}

	text, err := g.generate(ctx, sentimentPrompt(caption, cs))
	if err != nil {
		return fallbackSentiment(cs, g.fallbackNote(TaskSentiment, err, "")), nil
	}

	var result SentimentResult
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return fallbackSentiment(cs, g.fallbackNote(TaskSentiment, fmt.Errorf("%w: %v", ErrMalformedResponse, err), text)), nil
	}
	if err := result.Validate(); err != nil {
		return fallbackSentiment(cs, g.fallbackNote(TaskSentiment, err, text)), nil
	}
	g.observer.EnrichmentOutcome(TaskSentiment, OutcomeUpstream)
	return &result, nil
}

// AnalyzeHashtags runs the hashtag task over a caption and its
// comments.
func (g *Gateway) AnalyzeHashtags(ctx context.Context, caption string, cs []domain.Comment) (*HashtagResult, error) {
	if cs == nil {
		return nil, fmt.Errorf("%w: comments must be a collection", domain.ErrInvalidInput)
	}
	if !g.Configured() {
		return nil, ErrNotConfigured
	}

	currentTags := (&domain.Post{Caption: caption}).Hashtags()

	text, err := g.generate(ctx, hashtagPrompt(caption, cs, currentTags))
	if err != nil {
		return fallbackHashtags(currentTags, g.fallbackNote(TaskHashtags, err, "")), nil
	}

	var result HashtagResult
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return fallbackHashtags(currentTags, g.fallbackNote(TaskHashtags, fmt.Errorf("%w: %v", ErrMalformedResponse, err), text)), nil
	}
	if err := result.Validate(); err != nil {
		return fallbackHashtags(currentTags, g.fallbackNote(TaskHashtags, err, text)), nil
	}
	g.observer.EnrichmentOutcome(TaskHashtags, OutcomeUpstream)
	return &result, nil
}

// AnalyzeTiming runs the timing-narrative task over a post's metrics.
func (g *Gateway) AnalyzeTiming(ctx context.Context, p *domain.Post) (*TimingResult, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: nil post", domain.ErrInvalidInput)
	}
	if !g.Configured() {
		return nil, ErrNotConfigured
	}

	current := g.timing.Estimate(p.TakenAt)
	ref := g.timing.Reference()

	text, err := g.generate(ctx, timingPrompt(p, current.Hour, current.Day))
	if err != nil {
		return fallbackTiming(current, ref, g.fallbackNote(TaskTiming, err, "")), nil
	}

	var result TimingResult
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return fallbackTiming(current, ref, g.fallbackNote(TaskTiming, fmt.Errorf("%w: %v", ErrMalformedResponse, err), text)), nil
	}
	if err := result.Validate(); err != nil {
		return fallbackTiming(current, ref, g.fallbackNote(TaskTiming, err, text)), nil
	}
	g.observer.EnrichmentOutcome(TaskTiming, OutcomeUpstream)
	return &result, nil
}
