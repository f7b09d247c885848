package domain

import (
	"math"

	"github.com/rs/zerolog/log"
)

// DerivedMetrics is recomputed fresh from a post on every call. It has
// no lifecycle of its own and is never cached or persisted.
type DerivedMetrics struct {
	EngagementRate        float64 `json:"engagement_rate"`
	EngagementRateByViews float64 `json:"engagement_rate_by_views"`
	ReachRate             float64 `json:"reach_rate"`
	LikeToViewRatio       float64 `json:"like_to_view_ratio"`
	CommentToLikeRatio    float64 `json:"comment_to_like_ratio"`
	AverageCommentLength  int     `json:"average_comment_length"`
	PerformanceScore      int     `json:"performance_score"`
}

// clampCount guards the primitives against contract-violating negative
// inputs: clamp to zero and log, never panic, so downstream composition
// stays total.
func clampCount(name string, v int) int {
	if v < 0 {
		log.Warn().Str("counter", name).Int("value", v).Msg("Negative counter clamped to 0")
		return 0
	}
	return v
}

// EngagementRate is the follower-based engagement percentage:
// (likes+comments)/followers * 100. Fails closed to 0 when the account
// has no followers.
func EngagementRate(likes, comments, followers int) float64 {
	likes = clampCount("likes", likes)
	comments = clampCount("comments", comments)
	if followers <= 0 {
		return 0
	}
	return float64(likes+comments) / float64(followers) * 100
}

// EngagementRateByViews is the view-based engagement percentage:
// (likes+comments)/views * 100 with a denominator floor of 1. This is a
// distinct metric from EngagementRate and the two are never conflated:
// the virality scorer and comparison engine reason about the view pool,
// not the follower pool.
func EngagementRateByViews(likes, comments, views int) float64 {
	likes = clampCount("likes", likes)
	comments = clampCount("comments", comments)
	views = clampCount("views", views)
	if views < 1 {
		views = 1
	}
	return float64(likes+comments) / float64(views) * 100
}

// ReachRate measures audience penetration beyond the follower base:
// views/followers * 100 with a denominator floor of 1.
func ReachRate(views, followers int) float64 {
	views = clampCount("views", views)
	followers = clampCount("followers", followers)
	if followers < 1 {
		followers = 1
	}
	return float64(views) / float64(followers) * 100
}

// LikeToViewRatio is likes/views * 100, 0 when there are no views.
func LikeToViewRatio(likes, views int) float64 {
	likes = clampCount("likes", likes)
	views = clampCount("views", views)
	if views <= 0 {
		return 0
	}
	return float64(likes) / float64(views) * 100
}

// CommentToLikeRatio is comments/likes * 100, 0 when there are no likes.
func CommentToLikeRatio(comments, likes int) float64 {
	comments = clampCount("comments", comments)
	likes = clampCount("likes", likes)
	if likes <= 0 {
		return 0
	}
	return float64(comments) / float64(likes) * 100
}

// AverageCommentLength is the mean character count of the comment
// texts, rounded to the nearest integer. Zero for an empty collection.
func AverageCommentLength(comments []Comment) int {
	if len(comments) == 0 {
		return 0
	}
	total := 0
	for _, c := range comments {
		total += len(c.Text)
	}
	return int(math.Round(float64(total) / float64(len(comments))))
}

// ComputeDerivedMetrics derives the full metric set for a post.
func ComputeDerivedMetrics(p *Post) DerivedMetrics {
	engagement := EngagementRate(p.LikeCount, p.CommentCount, p.Followers)
	likeView := LikeToViewRatio(p.LikeCount, p.ViewCount)
	commentLike := CommentToLikeRatio(p.CommentCount, p.LikeCount)
	avgLen := AverageCommentLength(p.Comments)

	// Composite 0-100 performance score: engagement weighted heaviest,
	// comment length capped at a 10-point contribution.
	performance := engagement*0.4 +
		likeView*0.3 +
		commentLike*0.2 +
		math.Min(float64(avgLen)/50, 1)*10
	performance = math.Min(100, performance)

	return DerivedMetrics{
		EngagementRate:        round2(engagement),
		EngagementRateByViews: round2(EngagementRateByViews(p.LikeCount, p.CommentCount, p.ViewCount)),
		ReachRate:             round2(ReachRate(p.ViewCount, p.Followers)),
		LikeToViewRatio:       round2(likeView),
		CommentToLikeRatio:    round2(commentLike),
		AverageCommentLength:  avgLen,
		PerformanceScore:      int(math.Round(performance)),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
