// Package app orchestrates the analysis pipeline over one or two posts.
package app

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/reelscope/reelscope/internal/domain"
	"github.com/reelscope/reelscope/internal/domain/category"
	"github.com/reelscope/reelscope/internal/domain/comments"
	"github.com/reelscope/reelscope/internal/domain/timing"
	"github.com/reelscope/reelscope/internal/domain/virality"
)

// Report bundles every deterministic analysis of a single post. It is
// recomputed from scratch on each call.
type Report struct {
	Shortcode    string                `json:"shortcode"`
	Username     string                `json:"username"`
	AnalyzedAt   time.Time             `json:"analyzed_at"`
	Metrics      domain.DerivedMetrics `json:"metrics"`
	CommentStats comments.Stats        `json:"comment_stats"`
	Virality     virality.Result       `json:"virality"`
	PostTime     timing.PostTime       `json:"post_time"`
	TimingRef    timing.Reference      `json:"timing_reference"`
	Category     category.Result       `json:"category"`
}

// Analyzer wires the domain components into one pipeline.
type Analyzer struct {
	comments *comments.Analyzer
	scorer   *virality.Scorer
	timing   *timing.Estimator
}

// NewAnalyzer builds an analyzer with default components.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		comments: comments.NewAnalyzer(),
		scorer:   virality.NewScorer(),
		timing:   timing.NewEstimator(),
	}
}

// NewAnalyzerWith allows swapping the comment analyzer and timing
// estimator, e.g. for a real time-distribution source.
func NewAnalyzerWith(ca *comments.Analyzer, te *timing.Estimator) *Analyzer {
	return &Analyzer{comments: ca, scorer: virality.NewScorer(), timing: te}
}

// Analyze runs the full deterministic pipeline on a post.
func (a *Analyzer) Analyze(p *domain.Post) (*Report, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: nil post", domain.ErrInvalidInput)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	report := &Report{
		Shortcode:    p.Shortcode,
		Username:     p.Username,
		AnalyzedAt:   time.Now().UTC(),
		Metrics:      domain.ComputeDerivedMetrics(p),
		CommentStats: a.comments.Analyze(p.Comments),
		Virality:     a.scorer.Score(p),
		PostTime:     a.timing.Estimate(p.TakenAt),
		TimingRef:    a.timing.Reference(),
		Category:     category.Detect(p),
	}

	log.Info().Str("shortcode", p.Shortcode).
		Int("virality_score", report.Virality.Score).
		Int("comments", report.CommentStats.TotalComments).
		Msg("Post analysis completed")

	return report, nil
}
