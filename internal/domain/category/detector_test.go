package category

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reelscope/reelscope/internal/domain"
)

func TestDetectKeywordRules(t *testing.T) {
	cases := []struct {
		caption    string
		wantName   string
		confidence int
	}{
		{"My favorite pasta RECIPE tonight", "food", 85},
		{"Leg day at the gym", "fitness", 80},
		{"Time to explore the coast", "travel", 82},
		{"New skincare routine drop", "beauty", 88},
		{"The digital future is here", "tech", 78},
		{"Just another day", "lifestyle", 75},
	}

	for _, tc := range cases {
		result := Detect(&domain.Post{Caption: tc.caption})
		assert.Equal(t, tc.wantName, result.PrimaryCategory.Name, tc.caption)
		assert.Equal(t, tc.confidence, result.PrimaryCategory.Confidence, tc.caption)
		assert.Contains(t, result.PrimaryCategory.Description, tc.wantName)
	}
}

func TestDetectFormat(t *testing.T) {
	video := Detect(&domain.Post{VideoURL: "https://cdn.example/v.mp4"})
	assert.Equal(t, "video", video.ContentStyle.Format)

	image := Detect(&domain.Post{ImageURL: "https://cdn.example/i.jpg"})
	assert.Equal(t, "image", image.ContentStyle.Format)
}

func TestDetectIsDeterministic(t *testing.T) {
	post := &domain.Post{Caption: "workout and cooking"}
	assert.Equal(t, Detect(post), Detect(post))

	// First rule wins on multi-category captions
	assert.Equal(t, "food", Detect(post).PrimaryCategory.Name)
}
