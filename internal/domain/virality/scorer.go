// Package virality computes the bounded composite virality score and
// its contributing-factor breakdown.
package virality

import (
	"fmt"
	"math"

	"github.com/rs/zerolog/log"

	"github.com/reelscope/reelscope/internal/domain"
)

// Level buckets a score into a categorical tier. Boundaries are
// inclusive on the lower bound of each tier.
type Level string

const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
	LevelViral  Level = "viral"
)

// Factor is one contributing factor with its signed impact.
type Factor struct {
	Factor      string `json:"factor"`
	Impact      int    `json:"impact"`
	Status      string `json:"status"`
	Description string `json:"description"`
}

// Predictions are monotone transforms of already-computed values, not
// independent model outputs.
type Predictions struct {
	Reach        float64 `json:"reach"`
	Engagement   float64 `json:"engagement"`
	Shareability float64 `json:"shareability"`
	Longevity    float64 `json:"longevity"`
}

// Result is the full virality assessment for a post.
type Result struct {
	Score           int         `json:"virality_score"`
	Level           Level       `json:"virality_level"`
	Factors         []Factor    `json:"factors"`
	Predictions     Predictions `json:"predictions"`
	Recommendations []string    `json:"recommendations"`
	RiskFactors     []string    `json:"risk_factors"`

	// Terms is the pre-rounding component breakdown.
	Terms Terms `json:"terms"`
}

// Terms holds each clamped term of the composite before summation.
type Terms struct {
	Engagement float64 `json:"engagement"`
	Reach      float64 `json:"reach"`
	Comments   float64 `json:"comments"`
	Caption    float64 `json:"caption"`
}

// Term caps for the weighted composite.
const (
	engagementTermCap = 40.0
	reachTermCap      = 30.0
	commentTermCap    = 20.0
	captionTermCap    = 10.0
)

// Scorer computes virality results. It is stateless and safe for
// concurrent use.
type Scorer struct{}

// NewScorer returns a virality scorer.
func NewScorer() *Scorer {
	return &Scorer{}
}

// Score derives the 0-100 composite and its breakdown from a post.
func (s *Scorer) Score(p *domain.Post) Result {
	engagementRate := domain.EngagementRateByViews(p.LikeCount, p.CommentCount, p.ViewCount)
	reachRate := domain.ReachRate(p.ViewCount, p.Followers)
	commentVolume := len(p.Comments)

	terms := Terms{
		Engagement: math.Min(engagementRate*2, engagementTermCap),
		Reach:      math.Min(reachRate/2, reachTermCap),
		Comments:   math.Min(float64(commentVolume)/10, commentTermCap),
		Caption:    math.Min(float64(len(p.Caption))/50, captionTermCap),
	}

	score := int(math.Round(math.Min(terms.Engagement+terms.Reach+terms.Comments+terms.Caption, 100)))
	level := LevelForScore(score)

	result := Result{
		Score:   score,
		Level:   level,
		Factors: buildFactors(engagementRate, reachRate, commentVolume),
		Predictions: Predictions{
			Reach:        math.Min(reachRate*1.5, 100),
			Engagement:   math.Min(engagementRate*1.2, 100),
			Shareability: math.Min(float64(score)*0.8, 100),
			Longevity:    math.Min(float64(score)*0.6, 100),
		},
		Recommendations: buildRecommendations(score),
		RiskFactors:     buildRiskFactors(score),
		Terms:           terms,
	}

	log.Debug().Str("shortcode", p.Shortcode).Int("score", score).
		Str("level", string(level)).Msg("Virality score computed")

	return result
}

// LevelForScore maps a score to its tier: >=80 viral, >=60 high,
// >=40 medium, else low.
func LevelForScore(score int) Level {
	switch {
	case score >= 80:
		return LevelViral
	case score >= 60:
		return LevelHigh
	case score >= 40:
		return LevelMedium
	default:
		return LevelLow
	}
}

// buildFactors produces the three named factors with threshold-based
// signed impacts.
func buildFactors(engagementRate, reachRate float64, commentVolume int) []Factor {
	engagement := Factor{
		Factor:      "Engagement Rate",
		Description: fmt.Sprintf("Current engagement rate is %.2f%%", engagementRate),
	}
	switch {
	case engagementRate > 5:
		engagement.Impact, engagement.Status = 15, "positive"
	case engagementRate > 2:
		engagement.Impact, engagement.Status = 5, "neutral"
	default:
		engagement.Impact, engagement.Status = -10, "negative"
	}

	reach := Factor{
		Factor:      "Reach Beyond Followers",
		Description: fmt.Sprintf("Post reached %.1f%% of follower base", reachRate),
	}
	switch {
	case reachRate > 100:
		reach.Impact, reach.Status = 20, "positive"
	case reachRate > 50:
		reach.Impact, reach.Status = 10, "neutral"
	default:
		reach.Impact, reach.Status = -5, "negative"
	}

	activity := Factor{
		Factor:      "Comment Activity",
		Description: fmt.Sprintf("Generated %d comments", commentVolume),
	}
	switch {
	case commentVolume > 50:
		activity.Impact, activity.Status = 15, "positive"
	case commentVolume > 20:
		activity.Impact, activity.Status = 5, "neutral"
	default:
		activity.Impact, activity.Status = -5, "negative"
	}

	return []Factor{engagement, reach, activity}
}

func buildRecommendations(score int) []string {
	first := "Maintain current content quality"
	if score < 50 {
		first = "Focus on creating more engaging content"
	}
	return []string{
		first,
		"Post during peak audience hours",
		"Use trending hashtags and sounds",
		"Encourage comments with questions",
		"Create shareable, relatable content",
	}
}

// buildRiskFactors is non-empty only below the medium tier.
func buildRiskFactors(score int) []string {
	if score >= 40 {
		return []string{}
	}
	return []string{
		"Low engagement rate may limit reach",
		"Content may not be resonating with audience",
	}
}
