package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelscope/reelscope/internal/domain"
	"github.com/reelscope/reelscope/internal/domain/virality"
)

func TestAnalyzeFullReport(t *testing.T) {
	p := &domain.Post{
		ID:           "123",
		Shortcode:    "abc",
		Username:     "creator",
		Followers:    500,
		LikeCount:    100,
		CommentCount: 20,
		ViewCount:    1000,
		Caption:      "sunset walk #travel",
		TakenAt:      time.Date(2025, 6, 10, 19, 0, 0, 0, time.UTC),
		VideoURL:     "https://cdn.example/v.mp4",
		Comments: []domain.Comment{
			{ID: "1", Username: "ana", Text: "beautiful view", LikeCount: 4},
			{ID: "2", Username: "ben", Text: "where is this", LikeCount: 0},
		},
	}

	report, err := NewAnalyzer().Analyze(p)
	require.NoError(t, err)

	assert.Equal(t, "abc", report.Shortcode)
	assert.Equal(t, "creator", report.Username)
	assert.InDelta(t, 24.0, report.Metrics.EngagementRate, 1e-9)
	assert.Equal(t, 2, report.CommentStats.TotalComments)
	assert.Equal(t, virality.LevelMedium, report.Virality.Level)
	assert.Equal(t, 19, report.PostTime.Hour)
	assert.Equal(t, "excellent", report.PostTime.Performance)
	assert.Equal(t, "travel", report.Category.PrimaryCategory.Name)
	assert.NotEmpty(t, report.TimingRef.BestTimes)
	assert.False(t, report.AnalyzedAt.IsZero())
}

func TestAnalyzeZeroCounters(t *testing.T) {
	p := &domain.Post{Shortcode: "empty"}

	report, err := NewAnalyzer().Analyze(p)
	require.NoError(t, err)

	assert.Equal(t, virality.LevelLow, report.Virality.Level)
	assert.LessOrEqual(t, report.Virality.Score, 10)
	assert.Equal(t, 0, report.CommentStats.TotalComments)
	assert.Equal(t, 0, report.Metrics.PerformanceScore)
}

func TestAnalyzeRejectsBadInput(t *testing.T) {
	_, err := NewAnalyzer().Analyze(nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = NewAnalyzer().Analyze(&domain.Post{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
