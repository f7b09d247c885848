package comments

// stopwords is the fixed set of common English function words excluded
// from the word-frequency ranking.
var stopwords = map[string]bool{
	"this": true, "that": true, "with": true, "have": true, "will": true,
	"from": true, "they": true, "been": true, "were": true, "said": true,
	"each": true, "which": true, "their": true, "time": true, "more": true,
	"very": true, "what": true, "know": true, "just": true, "first": true,
	"into": true, "over": true, "think": true, "also": true, "your": true,
	"work": true, "life": true, "only": true, "can": true, "still": true,
	"should": true, "after": true, "being": true, "now": true, "made": true,
	"before": true, "here": true, "through": true, "when": true, "where": true,
	"how": true, "all": true, "any": true, "may": true, "say": true,
	"she": true, "use": true, "her": true, "him": true, "his": true,
	"has": true, "had": true,
}
