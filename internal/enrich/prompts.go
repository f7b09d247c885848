package enrich

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/reelscope/reelscope/internal/domain"
)

// Prompt-size limits on embedded comment samples.
const (
	sentimentCommentLimit = 50
	hashtagCommentLimit   = 20
)

const jsonOnlyInstruction = "Return only valid JSON without any markdown formatting or code blocks."

func commentSample(cs []domain.Comment, limit int) string {
	if len(cs) > limit {
		cs = cs[:limit]
	}
	raw, err := json.Marshal(cs)
	if err != nil {
		return "[]"
	}
	return string(raw)
}

func sentimentPrompt(caption string, cs []domain.Comment) string {
	var b strings.Builder
	b.WriteString("Analyze the sentiment of the following social media post caption and comments. ")
	b.WriteString("Provide a detailed sentiment analysis in JSON format.\n\n")
	fmt.Fprintf(&b, "Caption: %q\n\n", caption)
	fmt.Fprintf(&b, "Comments: %s\n\n", commentSample(cs, sentimentCommentLimit))
	b.WriteString(`Please analyze and return a JSON response with:
{
  "positive": 65,
  "negative": 15,
  "neutral": 20,
  "overall": "positive",
  "score": 0.75,
  "topPositiveComments": [
    {"id": "1", "text": "Amazing content!", "username": "user1", "like_count": 5}
  ],
  "topNegativeComments": [
    {"id": "2", "text": "Not great", "username": "user2", "like_count": 0}
  ],
  "emotions": {"joy": 45, "anger": 10, "sadness": 5, "fear": 5, "surprise": 35}
}

`)
	b.WriteString(jsonOnlyInstruction)
	return b.String()
}

func hashtagPrompt(caption string, cs []domain.Comment, currentTags []string) string {
	var b strings.Builder
	b.WriteString("Analyze the hashtags and content for this social media post and provide hashtag recommendations.\n\n")
	fmt.Fprintf(&b, "Caption: %q\n", caption)
	fmt.Fprintf(&b, "Current Hashtags: %s\n", strings.Join(currentTags, ", "))
	fmt.Fprintf(&b, "Sample Comments: %s\n\n", commentSample(cs, hashtagCommentLimit))
	b.WriteString(`Please analyze and return a JSON response with this exact structure:
{
  "currentHashtags": [
    {"hashtag": "#example", "engagement": 75, "trend": "rising", "category": "lifestyle"}
  ],
  "trendingHashtags": [
    {"hashtag": "#trending", "engagement": 85, "trend": "rising", "category": "lifestyle"}
  ],
  "recommendations": [
    {"hashtag": "#recommended", "engagement": 80, "trend": "stable", "category": "lifestyle"}
  ],
  "categoryBreakdown": [
    {"category": "lifestyle", "count": 5}
  ],
  "performanceScore": 75
}

`)
	b.WriteString(jsonOnlyInstruction)
	return b.String()
}

func timingPrompt(p *domain.Post, hour int, day string) string {
	var b strings.Builder
	b.WriteString("Analyze the posting time and provide optimal timing recommendations for social media content.\n\n")
	b.WriteString("Post Details:\n")
	fmt.Fprintf(&b, "- Posted at: %d:00 on %s\n", hour, day)
	fmt.Fprintf(&b, "- Likes: %d\n", p.LikeCount)
	fmt.Fprintf(&b, "- Comments: %d\n", p.CommentCount)
	fmt.Fprintf(&b, "- Views: %d\n\n", p.ViewCount)
	fmt.Fprintf(&b, `Return a JSON response with this structure:
{
  "currentPostTime": {"hour": %d, "day": %q, "performance": "good"},
  "bestTimes": [
    {"hour": 19, "day": "Tuesday", "score": 85, "engagement": 12.5}
  ],
  "dayAnalysis": [
    {"day": "Monday", "score": 75, "posts": 100, "avgEngagement": 8.2}
  ],
  "hourlyAnalysis": [
    {"hour": 9, "score": 65, "engagement": 7.5, "period": "morning"}
  ],
  "recommendations": ["Post between 7-9 PM for best engagement"]
}

`, hour, day)
	b.WriteString(jsonOnlyInstruction)
	return b.String()
}

// stripCodeFences removes markdown fence wrapping, a known quirk of
// generative responses, before JSON parsing.
func stripCodeFences(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}
