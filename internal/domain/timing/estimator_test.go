package timing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerformanceForHour(t *testing.T) {
	cases := []struct {
		hour int
		want string
	}{
		{18, PerformanceExcellent}, {19, PerformanceExcellent},
		{20, PerformanceExcellent}, {21, PerformanceExcellent},
		{12, PerformanceGood}, {15, PerformanceGood}, {17, PerformanceGood},
		{6, PerformanceAverage}, {9, PerformanceAverage}, {11, PerformanceAverage},
		{22, PerformancePoor}, {23, PerformancePoor},
		{0, PerformancePoor}, {3, PerformancePoor}, {5, PerformancePoor},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, PerformanceForHour(tc.hour), "hour %d", tc.hour)
	}
}

func TestPerformancePartitionIsTotal(t *testing.T) {
	for hour := 0; hour < 24; hour++ {
		got := PerformanceForHour(hour)
		assert.Contains(t, []string{
			PerformanceExcellent, PerformanceGood, PerformanceAverage, PerformancePoor,
		}, got)
	}
}

func TestEstimateUsesUTC(t *testing.T) {
	// 19:30 UTC on a Tuesday, expressed in a +05:00 zone
	zone := time.FixedZone("UTC+5", 5*3600)
	takenAt := time.Date(2025, 6, 10, 0, 30, 0, 0, zone) // 2025-06-09 19:30 UTC, Monday

	pt := NewEstimator().Estimate(takenAt)

	assert.Equal(t, 19, pt.Hour)
	assert.Equal(t, "Monday", pt.Day)
	assert.Equal(t, PerformanceExcellent, pt.Performance)
}

func TestDefaultReferenceTables(t *testing.T) {
	ref := DefaultReference()

	require.Len(t, ref.BestTimes, 3)
	assert.Equal(t, BestTime{Hour: 19, Day: "Tuesday", Score: 85, Engagement: 12.5}, ref.BestTimes[0])

	require.Len(t, ref.DayAnalysis, 7)
	assert.Equal(t, DayScore{Day: "Tuesday", Score: 85, Posts: 120, AvgEngagement: 9.5}, ref.DayAnalysis[1])

	require.Len(t, ref.HourlyAnalysis, 6)
	assert.Equal(t, HourScore{Hour: 19, Score: 85, Engagement: 10.2, Period: "evening"}, ref.HourlyAnalysis[4])

	require.Len(t, ref.Recommendations, 4)
	assert.Equal(t, "Post between 7-9 PM for best engagement", ref.Recommendations[0])
}

func TestEstimatorReferenceOverride(t *testing.T) {
	custom := Reference{Recommendations: []string{"only row"}}
	est := NewEstimatorWithReference(custom)
	assert.Equal(t, custom, est.Reference())
}
