package enrich

import (
	"hash/fnv"

	"github.com/reelscope/reelscope/internal/domain"
	"github.com/reelscope/reelscope/internal/domain/timing"
)

// Deterministic fallback generators. Identical inputs always produce
// identical results, and every result validates against its task
// schema, so callers can render from it unconditionally.

var fallbackTrends = []string{"rising", "stable", "declining"}

// tagScore derives a stable 0-39 offset from a hashtag's text so the
// fallback stays deterministic where the original rolled dice.
func tagScore(tag string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(tag))
	return h.Sum32()
}

func fallbackSentiment(cs []domain.Comment, note string) *SentimentResult {
	top := make([]domain.Comment, 0, 3)
	for i := 0; i < len(cs) && i < 3; i++ {
		top = append(top, cs[i])
	}

	return &SentimentResult{
		Positive:            60,
		Negative:            20,
		Neutral:             20,
		Overall:             "positive",
		Score:               0.6,
		TopPositiveComments: top,
		TopNegativeComments: []domain.Comment{},
		Emotions:            Emotions{Joy: 40, Anger: 15, Sadness: 10, Fear: 5, Surprise: 30},
		Error:               note,
	}
}

func fallbackHashtags(currentTags []string, note string) *HashtagResult {
	current := make([]HashtagEntry, 0, len(currentTags))
	for _, tag := range currentTags {
		score := tagScore(tag)
		current = append(current, HashtagEntry{
			Hashtag:    tag,
			Engagement: 60 + int(score%40),
			Trend:      fallbackTrends[score%3],
			Category:   "lifestyle",
		})
	}

	return &HashtagResult{
		CurrentHashtags: current,
		TrendingHashtags: []HashtagEntry{
			{Hashtag: "#viral", Engagement: 85, Trend: "rising", Category: "trending"},
			{Hashtag: "#explore", Engagement: 78, Trend: "rising", Category: "discovery"},
			{Hashtag: "#fyp", Engagement: 82, Trend: "stable", Category: "algorithm"},
		},
		Recommendations: []HashtagEntry{
			{Hashtag: "#content", Engagement: 75, Trend: "stable", Category: "general"},
			{Hashtag: "#creator", Engagement: 70, Trend: "rising", Category: "creator"},
			{Hashtag: "#inspiration", Engagement: 68, Trend: "stable", Category: "lifestyle"},
		},
		CategoryBreakdown: []CategoryCount{
			{Category: "lifestyle", Count: 3},
			{Category: "trending", Count: 2},
			{Category: "general", Count: 2},
		},
		PerformanceScore: 72,
		Error:            note,
	}
}

func fallbackTiming(current timing.PostTime, ref timing.Reference, note string) *TimingResult {
	return &TimingResult{
		CurrentPostTime: current,
		BestTimes:       ref.BestTimes,
		DayAnalysis:     ref.DayAnalysis,
		HourlyAnalysis:  ref.HourlyAnalysis,
		Recommendations: ref.Recommendations,
		Error:           note,
	}
}
