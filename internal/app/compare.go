package app

import (
	"fmt"
	"math"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/reelscope/reelscope/internal/domain"
)

// Winner labels for a comparison dimension.
const (
	WinnerReel1 = "reel1"
	WinnerReel2 = "reel2"
	WinnerTie   = "tie"
)

// placeholderSentiment is a stub value, not a computed sentiment. Both
// posts get the same value so the dimension is always a tie; real
// sentiment lives in the enrichment gateway.
const placeholderSentiment = 7.5

// ReelSummary is the counter snapshot echoed back for each side.
type ReelSummary struct {
	Username string `json:"username"`
	Likes    int    `json:"likes"`
	Comments int    `json:"comments"`
	Views    int    `json:"views"`
}

// Dimension is one compared metric with its winner.
type Dimension struct {
	Reel1  float64 `json:"reel1"`
	Reel2  float64 `json:"reel2"`
	Winner string  `json:"winner"`
	Note   string  `json:"note,omitempty"`
}

// Comparison is the paired result for two posts.
type Comparison struct {
	Reel1           ReelSummary `json:"reel1"`
	Reel2           ReelSummary `json:"reel2"`
	Engagement      Dimension   `json:"engagement"`
	Reach           Dimension   `json:"reach"`
	Sentiment       Dimension   `json:"sentiment"`
	Virality        Dimension   `json:"virality"`
	Insights        []string    `json:"insights"`
	Recommendations []string    `json:"recommendations"`
}

// reelMetrics is the per-post intermediate used by Compare.
type reelMetrics struct {
	engagement float64
	reach      float64
	virality   float64
}

// Compare analyzes two posts against each other. The per-post metric
// computations are independent and run concurrently.
func Compare(reel1, reel2 *domain.Post) (*Comparison, error) {
	if reel1 == nil || reel2 == nil {
		return nil, fmt.Errorf("%w: comparison requires two posts", domain.ErrInvalidInput)
	}
	if err := reel1.Validate(); err != nil {
		return nil, err
	}
	if err := reel2.Validate(); err != nil {
		return nil, err
	}

	var m1, m2 reelMetrics
	var wg sync.WaitGroup
	wg.Add(2)
	go func() { defer wg.Done(); m1 = computeReelMetrics(reel1) }()
	go func() { defer wg.Done(); m2 = computeReelMetrics(reel2) }()
	wg.Wait()

	cmp := &Comparison{
		Reel1: summarize(reel1, "User 1"),
		Reel2: summarize(reel2, "User 2"),
		Engagement: Dimension{
			Reel1: m1.engagement, Reel2: m2.engagement,
			Winner: winner(m1.engagement, m2.engagement),
		},
		Reach: Dimension{
			Reel1: m1.reach, Reel2: m2.reach,
			Winner: winner(m1.reach, m2.reach),
		},
		Sentiment: Dimension{
			Reel1: placeholderSentiment, Reel2: placeholderSentiment,
			Winner: WinnerTie,
			Note:   "placeholder values, not a computed sentiment",
		},
		Virality: Dimension{
			Reel1: m1.virality, Reel2: m2.virality,
			Winner: winner(m1.virality, m2.virality),
		},
		Recommendations: []string{
			"Study the winning reel's content style and format",
			"Analyze timing and hashtag strategies of better performing content",
			"Consider A/B testing different content approaches",
			"Focus on elements that drove higher engagement",
		},
	}
	cmp.Insights = buildInsights(reel1, reel2, m1, m2)

	log.Info().Str("reel1", reel1.Shortcode).Str("reel2", reel2.Shortcode).
		Str("engagement_winner", cmp.Engagement.Winner).
		Str("virality_winner", cmp.Virality.Winner).
		Msg("Reel comparison completed")

	return cmp, nil
}

func computeReelMetrics(p *domain.Post) reelMetrics {
	engagement := domain.EngagementRateByViews(p.LikeCount, p.CommentCount, p.ViewCount)

	reach := 50.0 // neutral baseline when follower count is unknown
	if p.Followers > 0 {
		reach = domain.ReachRate(p.ViewCount, p.Followers)
	}

	return reelMetrics{
		engagement: engagement,
		reach:      reach,
		virality:   math.Min(math.Round(engagement*10+float64(p.CommentCount)/10), 100),
	}
}

func summarize(p *domain.Post, fallbackName string) ReelSummary {
	name := p.Username
	if name == "" {
		name = fallbackName
	}
	return ReelSummary{
		Username: name,
		Likes:    p.LikeCount,
		Comments: p.CommentCount,
		Views:    p.ViewCount,
	}
}

// winner is strictly-greater-or-tie, which keeps the comparison
// antisymmetric under input swap.
func winner(a, b float64) string {
	switch {
	case a > b:
		return WinnerReel1
	case b > a:
		return WinnerReel2
	default:
		return WinnerTie
	}
}

func buildInsights(reel1, reel2 *domain.Post, m1, m2 reelMetrics) []string {
	engagementWord := "lower"
	if m1.engagement > m2.engagement {
		engagementWord = "higher"
	}
	commentWord := "fewer"
	if reel2.CommentCount > reel1.CommentCount {
		commentWord = "more"
	}

	return []string{
		fmt.Sprintf("Reel 1 has %s engagement rate", engagementWord),
		fmt.Sprintf("Reel 2 received %s comments", commentWord),
		fmt.Sprintf("Overall performance difference: %.1f%%", math.Abs(m1.engagement-m2.engagement)),
	}
}
