// Package category detects the content category of a post from its
// caption with a deterministic keyword classifier.
package category

import (
	"fmt"
	"strings"

	"github.com/reelscope/reelscope/internal/domain"
)

// Category is a detected content category with its confidence.
type Category struct {
	Name        string `json:"name"`
	Confidence  int    `json:"confidence"`
	Description string `json:"description,omitempty"`
}

// SecondaryCategory adds a relevance dimension.
type SecondaryCategory struct {
	Name       string `json:"name"`
	Confidence int    `json:"confidence"`
	Relevance  int    `json:"relevance"`
}

// Theme is a keyword cluster backing a category call.
type Theme struct {
	Theme    string   `json:"theme"`
	Strength int      `json:"strength"`
	Keywords []string `json:"keywords"`
}

// Style describes the presentation of the content.
type Style struct {
	Type   string `json:"type"`
	Tone   string `json:"tone"`
	Format string `json:"format"`
}

// Result is the full category assessment.
type Result struct {
	PrimaryCategory     Category            `json:"primaryCategory"`
	SecondaryCategories []SecondaryCategory `json:"secondaryCategories"`
	ContentThemes       []Theme             `json:"contentThemes"`
	ContentStyle        Style               `json:"contentStyle"`
	AudienceInterests   []string            `json:"audienceInterests"`
	Recommendations     []string            `json:"recommendations"`
}

// rule maps trigger keywords to a category and its confidence. First
// match wins, so order matters.
type rule struct {
	name       string
	confidence int
	keywords   []string
}

var rules = []rule{
	{"food", 85, []string{"food", "recipe", "cooking"}},
	{"fitness", 80, []string{"fitness", "workout", "gym"}},
	{"travel", 82, []string{"travel", "vacation", "explore"}},
	{"beauty", 88, []string{"beauty", "makeup", "skincare"}},
	{"tech", 78, []string{"tech", "technology", "digital"}},
}

const (
	defaultCategory   = "lifestyle"
	defaultConfidence = 75
)

// Detect classifies the post's caption. Falls back to lifestyle when no
// keyword rule fires.
func Detect(p *domain.Post) Result {
	caption := strings.ToLower(p.Caption)

	name, confidence := defaultCategory, defaultConfidence
	for _, r := range rules {
		if containsAny(caption, r.keywords) {
			name, confidence = r.name, r.confidence
			break
		}
	}

	format := "image"
	if p.IsVideo() {
		format = "video"
	}

	return Result{
		PrimaryCategory: Category{
			Name:        name,
			Confidence:  confidence,
			Description: fmt.Sprintf("This content is primarily focused on %s themes and topics.", name),
		},
		SecondaryCategories: []SecondaryCategory{
			{Name: "entertainment", Confidence: 45, Relevance: 60},
			{Name: "inspiration", Confidence: 38, Relevance: 55},
		},
		ContentThemes: []Theme{
			{Theme: name, Strength: confidence, Keywords: []string{"lifestyle", "content", "daily", "inspiration"}},
			{Theme: "motivation", Strength: 45, Keywords: []string{"motivation", "success", "goals", "achievement"}},
		},
		ContentStyle:      Style{Type: "inspirational", Tone: "friendly", Format: format},
		AudienceInterests: []string{name, "entertainment", "inspiration", "trends"},
		Recommendations: []string{
			fmt.Sprintf("Continue focusing on %s content as it resonates well", name),
			"Add more interactive elements to boost engagement",
			"Consider creating series or themed content",
			"Use trending audio for video content",
		},
	}
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
