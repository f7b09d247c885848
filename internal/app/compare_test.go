package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelscope/reelscope/internal/domain"
)

func post(shortcode string, likes, comments, views, followers int) *domain.Post {
	return &domain.Post{
		Shortcode:    shortcode,
		Username:     shortcode,
		LikeCount:    likes,
		CommentCount: comments,
		ViewCount:    views,
		Followers:    followers,
	}
}

func TestCompareWinners(t *testing.T) {
	strong := post("strong", 500, 100, 2000, 1000) // engagement 30%, reach 200%
	weak := post("weak", 10, 2, 5000, 1000)        // engagement 0.24%, reach 500%

	cmp, err := Compare(strong, weak)
	require.NoError(t, err)

	assert.Equal(t, WinnerReel1, cmp.Engagement.Winner)
	assert.Equal(t, WinnerReel2, cmp.Reach.Winner)
	assert.Equal(t, WinnerReel1, cmp.Virality.Winner)
	assert.Equal(t, WinnerTie, cmp.Sentiment.Winner)
	assert.NotEmpty(t, cmp.Sentiment.Note, "sentiment stub must be flagged")
}

func TestCompareAntisymmetric(t *testing.T) {
	a := post("a", 500, 100, 2000, 1000)
	b := post("b", 10, 2, 5000, 1000)

	forward, err := Compare(a, b)
	require.NoError(t, err)
	backward, err := Compare(b, a)
	require.NoError(t, err)

	swap := func(w string) string {
		switch w {
		case WinnerReel1:
			return WinnerReel2
		case WinnerReel2:
			return WinnerReel1
		default:
			return WinnerTie
		}
	}

	assert.Equal(t, swap(forward.Engagement.Winner), backward.Engagement.Winner)
	assert.Equal(t, swap(forward.Reach.Winner), backward.Reach.Winner)
	assert.Equal(t, swap(forward.Sentiment.Winner), backward.Sentiment.Winner)
	assert.Equal(t, swap(forward.Virality.Winner), backward.Virality.Winner)
}

func TestCompareTie(t *testing.T) {
	a := post("a", 100, 20, 1000, 500)
	b := post("b", 100, 20, 1000, 500)

	cmp, err := Compare(a, b)
	require.NoError(t, err)

	assert.Equal(t, WinnerTie, cmp.Engagement.Winner)
	assert.Equal(t, WinnerTie, cmp.Reach.Winner)
	assert.Equal(t, WinnerTie, cmp.Virality.Winner)
}

func TestCompareNeutralReachWithoutFollowers(t *testing.T) {
	a := post("a", 100, 20, 1000, 0)
	b := post("b", 100, 20, 1000, 0)

	cmp, err := Compare(a, b)
	require.NoError(t, err)

	assert.Equal(t, 50.0, cmp.Reach.Reel1)
	assert.Equal(t, 50.0, cmp.Reach.Reel2)
	assert.Equal(t, WinnerTie, cmp.Reach.Winner)
}

func TestCompareInsights(t *testing.T) {
	a := post("a", 500, 100, 2000, 1000)
	b := post("b", 10, 2, 5000, 1000)

	cmp, err := Compare(a, b)
	require.NoError(t, err)

	require.Len(t, cmp.Insights, 3)
	assert.Contains(t, cmp.Insights[0], "higher")
	assert.Contains(t, cmp.Insights[1], "fewer")
	assert.Contains(t, cmp.Insights[2], "29.8%")
}

func TestCompareRejectsInvalidInput(t *testing.T) {
	valid := post("ok", 1, 1, 1, 1)

	_, err := Compare(nil, valid)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = Compare(valid, &domain.Post{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCompareUsernameFallback(t *testing.T) {
	a := post("a", 1, 1, 1, 1)
	a.Username = ""
	b := post("b", 1, 1, 1, 1)

	cmp, err := Compare(a, b)
	require.NoError(t, err)
	assert.Equal(t, "User 1", cmp.Reel1.Username)
	assert.Equal(t, "b", cmp.Reel2.Username)
}
