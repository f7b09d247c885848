// Package timing classifies when a post went out and carries the static
// best-time reference tables.
package timing

import (
	"time"

	"github.com/rs/zerolog/log"
)

// Performance buckets for an hour of day.
const (
	PerformanceExcellent = "excellent"
	PerformanceGood      = "good"
	PerformanceAverage   = "average"
	PerformancePoor      = "poor"
)

// PostTime is the classification of a single post's publish moment.
type PostTime struct {
	Hour        int    `json:"hour"`
	Day         string `json:"day"`
	Performance string `json:"performance"`
}

// BestTime is one row of the best hour/day reference table.
type BestTime struct {
	Hour       int     `json:"hour"`
	Day        string  `json:"day"`
	Score      int     `json:"score"`
	Engagement float64 `json:"engagement"`
}

// DayScore is one row of the day-of-week reference table.
type DayScore struct {
	Day           string  `json:"day"`
	Score         int     `json:"score"`
	Posts         int     `json:"posts"`
	AvgEngagement float64 `json:"avgEngagement"`
}

// HourScore is one row of the hourly reference table.
type HourScore struct {
	Hour       int     `json:"hour"`
	Score      int     `json:"score"`
	Engagement float64 `json:"engagement"`
	Period     string  `json:"period"`
}

// Reference is the static illustrative baseline. The rows are fixed
// configuration constants, not derived from any corpus.
type Reference struct {
	BestTimes       []BestTime  `json:"bestTimes" yaml:"best_times"`
	DayAnalysis     []DayScore  `json:"dayAnalysis" yaml:"day_analysis"`
	HourlyAnalysis  []HourScore `json:"hourlyAnalysis" yaml:"hourly_analysis"`
	Recommendations []string    `json:"recommendations" yaml:"recommendations"`
}

// DefaultReference returns the shipped reference tables.
func DefaultReference() Reference {
	return Reference{
		BestTimes: []BestTime{
			{Hour: 19, Day: "Tuesday", Score: 85, Engagement: 12.5},
			{Hour: 20, Day: "Wednesday", Score: 82, Engagement: 11.8},
			{Hour: 18, Day: "Thursday", Score: 80, Engagement: 11.2},
		},
		DayAnalysis: []DayScore{
			{Day: "Monday", Score: 75, Posts: 100, AvgEngagement: 8.2},
			{Day: "Tuesday", Score: 85, Posts: 120, AvgEngagement: 9.5},
			{Day: "Wednesday", Score: 82, Posts: 110, AvgEngagement: 9.1},
			{Day: "Thursday", Score: 80, Posts: 105, AvgEngagement: 8.8},
			{Day: "Friday", Score: 78, Posts: 95, AvgEngagement: 8.5},
			{Day: "Saturday", Score: 70, Posts: 80, AvgEngagement: 7.8},
			{Day: "Sunday", Score: 72, Posts: 85, AvgEngagement: 8.0},
		},
		HourlyAnalysis: []HourScore{
			{Hour: 9, Score: 65, Engagement: 7.5, Period: "morning"},
			{Hour: 12, Score: 70, Engagement: 8.2, Period: "afternoon"},
			{Hour: 15, Score: 68, Engagement: 7.9, Period: "afternoon"},
			{Hour: 18, Score: 80, Engagement: 9.5, Period: "evening"},
			{Hour: 19, Score: 85, Engagement: 10.2, Period: "evening"},
			{Hour: 20, Score: 82, Engagement: 9.8, Period: "evening"},
		},
		Recommendations: []string{
			"Post between 7-9 PM for best engagement",
			"Tuesday and Wednesday show highest performance",
			"Avoid posting late night or early morning",
			"Weekend posts perform 15% lower than weekdays",
		},
	}
}

// Estimator classifies post timing against a reference baseline.
type Estimator struct {
	reference Reference
}

// NewEstimator returns an estimator with the default reference tables.
func NewEstimator() *Estimator {
	return &Estimator{reference: DefaultReference()}
}

// NewEstimatorWithReference returns an estimator with overridden tables.
func NewEstimatorWithReference(ref Reference) *Estimator {
	return &Estimator{reference: ref}
}

// Reference exposes the comparison baseline; it doubles as the timing
// fallback payload.
func (e *Estimator) Reference() Reference {
	return e.reference
}

// Estimate classifies the post's publish moment. Hour and weekday are
// derived in UTC so classification is reproducible across hosts.
func (e *Estimator) Estimate(takenAt time.Time) PostTime {
	utc := takenAt.UTC()
	hour := utc.Hour()

	pt := PostTime{
		Hour:        hour,
		Day:         utc.Weekday().String(),
		Performance: PerformanceForHour(hour),
	}

	log.Debug().Int("hour", hour).Str("day", pt.Day).
		Str("performance", pt.Performance).Msg("Post timing classified")

	return pt
}

// PerformanceForHour partitions the day into four buckets: evening
// prime time is excellent, afternoon good, late night and early morning
// poor, the remaining morning hours average.
func PerformanceForHour(hour int) string {
	switch {
	case hour >= 18 && hour <= 21:
		return PerformanceExcellent
	case hour >= 12 && hour <= 17:
		return PerformanceGood
	case hour >= 22 || hour <= 5:
		return PerformancePoor
	default:
		return PerformanceAverage
	}
}
