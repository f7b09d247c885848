package enrich

import (
	"fmt"

	"github.com/reelscope/reelscope/internal/domain"
	"github.com/reelscope/reelscope/internal/domain/timing"
)

// Task identifies one enrichment operation.
type Task string

const (
	TaskSentiment Task = "sentiment"
	TaskHashtags  Task = "hashtags"
	TaskTiming    Task = "timing"
)

// Emotions is the per-emotion percentage breakdown of a sentiment
// result.
type Emotions struct {
	Joy      int `json:"joy"`
	Anger    int `json:"anger"`
	Sadness  int `json:"sadness"`
	Fear     int `json:"fear"`
	Surprise int `json:"surprise"`
}

// SentimentResult is the fixed sentiment schema. The same shape comes
// back whether the upstream call succeeded or the fallback generator
// produced it; Error carries a non-fatal advisory note in the latter
// case.
type SentimentResult struct {
	Positive            int              `json:"positive"`
	Negative            int              `json:"negative"`
	Neutral             int              `json:"neutral"`
	Overall             string           `json:"overall"`
	Score               float64          `json:"score"`
	TopPositiveComments []domain.Comment `json:"topPositiveComments"`
	TopNegativeComments []domain.Comment `json:"topNegativeComments"`
	Emotions            Emotions         `json:"emotions"`
	Error               string           `json:"error,omitempty"`
}

// Validate checks the schema invariants an upstream response must meet
// before it is returned verbatim.
func (r *SentimentResult) Validate() error {
	for name, v := range map[string]int{
		"positive": r.Positive, "negative": r.Negative, "neutral": r.Neutral,
		"joy": r.Emotions.Joy, "anger": r.Emotions.Anger, "sadness": r.Emotions.Sadness,
		"fear": r.Emotions.Fear, "surprise": r.Emotions.Surprise,
	} {
		if v < 0 || v > 100 {
			return fmt.Errorf("%w: sentiment field %s out of range: %d", ErrMalformedResponse, name, v)
		}
	}
	switch r.Overall {
	case "positive", "negative", "neutral":
	default:
		return fmt.Errorf("%w: unknown overall sentiment %q", ErrMalformedResponse, r.Overall)
	}
	if r.Score < -1 || r.Score > 1 {
		return fmt.Errorf("%w: sentiment score out of range: %f", ErrMalformedResponse, r.Score)
	}
	if len(r.TopPositiveComments) > 3 || len(r.TopNegativeComments) > 3 {
		return fmt.Errorf("%w: top comment lists exceed 3 entries", ErrMalformedResponse)
	}
	if r.TopPositiveComments == nil {
		r.TopPositiveComments = []domain.Comment{}
	}
	if r.TopNegativeComments == nil {
		r.TopNegativeComments = []domain.Comment{}
	}
	return nil
}

// HashtagEntry is one hashtag with its assessed performance.
type HashtagEntry struct {
	Hashtag    string `json:"hashtag"`
	Engagement int    `json:"engagement"`
	Trend      string `json:"trend"`
	Category   string `json:"category"`
}

// CategoryCount is one row of the per-category breakdown.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// HashtagResult is the fixed hashtag-analysis schema.
type HashtagResult struct {
	CurrentHashtags   []HashtagEntry  `json:"currentHashtags"`
	TrendingHashtags  []HashtagEntry  `json:"trendingHashtags"`
	Recommendations   []HashtagEntry  `json:"recommendations"`
	CategoryBreakdown []CategoryCount `json:"categoryBreakdown"`
	PerformanceScore  int             `json:"performanceScore"`
	Error             string          `json:"error,omitempty"`
}

// Validate checks the hashtag schema invariants.
func (r *HashtagResult) Validate() error {
	if r.PerformanceScore < 0 || r.PerformanceScore > 100 {
		return fmt.Errorf("%w: performance score out of range: %d", ErrMalformedResponse, r.PerformanceScore)
	}
	for _, list := range [][]HashtagEntry{r.CurrentHashtags, r.TrendingHashtags, r.Recommendations} {
		for _, e := range list {
			if e.Hashtag == "" {
				return fmt.Errorf("%w: empty hashtag entry", ErrMalformedResponse)
			}
			switch e.Trend {
			case "rising", "stable", "declining":
			default:
				return fmt.Errorf("%w: unknown trend %q for %s", ErrMalformedResponse, e.Trend, e.Hashtag)
			}
			if e.Engagement < 0 || e.Engagement > 100 {
				return fmt.Errorf("%w: engagement out of range for %s: %d", ErrMalformedResponse, e.Hashtag, e.Engagement)
			}
		}
	}
	if r.CurrentHashtags == nil {
		r.CurrentHashtags = []HashtagEntry{}
	}
	if r.TrendingHashtags == nil {
		r.TrendingHashtags = []HashtagEntry{}
	}
	if r.Recommendations == nil {
		r.Recommendations = []HashtagEntry{}
	}
	if r.CategoryBreakdown == nil {
		r.CategoryBreakdown = []CategoryCount{}
	}
	return nil
}

// TimingResult is the fixed timing-narrative schema, built on the
// timing package's row types.
type TimingResult struct {
	CurrentPostTime timing.PostTime    `json:"currentPostTime"`
	BestTimes       []timing.BestTime  `json:"bestTimes"`
	DayAnalysis     []timing.DayScore  `json:"dayAnalysis"`
	HourlyAnalysis  []timing.HourScore `json:"hourlyAnalysis"`
	Recommendations []string           `json:"recommendations"`
	Error           string             `json:"error,omitempty"`
}

// Validate checks the timing schema invariants.
func (r *TimingResult) Validate() error {
	if r.CurrentPostTime.Hour < 0 || r.CurrentPostTime.Hour > 23 {
		return fmt.Errorf("%w: hour out of range: %d", ErrMalformedResponse, r.CurrentPostTime.Hour)
	}
	switch r.CurrentPostTime.Performance {
	case timing.PerformanceExcellent, timing.PerformanceGood,
		timing.PerformanceAverage, timing.PerformancePoor:
	default:
		return fmt.Errorf("%w: unknown performance %q", ErrMalformedResponse, r.CurrentPostTime.Performance)
	}
	if len(r.BestTimes) == 0 || len(r.Recommendations) == 0 {
		return fmt.Errorf("%w: timing result missing best times or recommendations", ErrMalformedResponse)
	}
	for _, bt := range r.BestTimes {
		if bt.Hour < 0 || bt.Hour > 23 {
			return fmt.Errorf("%w: best-time hour out of range: %d", ErrMalformedResponse, bt.Hour)
		}
	}
	if r.DayAnalysis == nil {
		r.DayAnalysis = []timing.DayScore{}
	}
	if r.HourlyAnalysis == nil {
		r.HourlyAnalysis = []timing.HourScore{}
	}
	return nil
}
