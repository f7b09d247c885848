package enrich

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelscope/reelscope/internal/domain"
	"github.com/reelscope/reelscope/internal/domain/timing"
)

func TestFallbackSentimentDeterministic(t *testing.T) {
	cs := []domain.Comment{{ID: "1", Text: "nice"}, {ID: "2"}, {ID: "3"}, {ID: "4"}}

	a := fallbackSentiment(cs, "note")
	b := fallbackSentiment(cs, "note")
	assert.Equal(t, a, b)

	require.Len(t, a.TopPositiveComments, 3, "top comments bounded at 3")
	assert.NoError(t, a.Validate())
}

func TestFallbackHashtagsDeterministic(t *testing.T) {
	tags := []string{"#travel", "#sunset", "#food"}

	a := fallbackHashtags(tags, "note")
	b := fallbackHashtags(tags, "note")
	assert.Equal(t, a, b)

	require.Len(t, a.CurrentHashtags, 3)
	for _, e := range a.CurrentHashtags {
		assert.GreaterOrEqual(t, e.Engagement, 60)
		assert.Less(t, e.Engagement, 100)
		assert.Contains(t, fallbackTrends, e.Trend)
	}
	assert.NoError(t, a.Validate())
}

func TestFallbackHashtagsEmptyCaption(t *testing.T) {
	result := fallbackHashtags(nil, "note")
	assert.Empty(t, result.CurrentHashtags)
	assert.NoError(t, result.Validate())
	assert.NotEmpty(t, result.Recommendations)
}

func TestFallbackTimingMirrorsReference(t *testing.T) {
	ref := timing.DefaultReference()
	current := timing.NewEstimator().Estimate(time.Date(2025, 1, 6, 13, 0, 0, 0, time.UTC))

	result := fallbackTiming(current, ref, "note")

	assert.Equal(t, current, result.CurrentPostTime)
	assert.Equal(t, ref.BestTimes, result.BestTimes)
	assert.Equal(t, ref.DayAnalysis, result.DayAnalysis)
	assert.Equal(t, ref.HourlyAnalysis, result.HourlyAnalysis)
	assert.NoError(t, result.Validate())
}
