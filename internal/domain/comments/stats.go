// Package comments aggregates statistics over a post's comment
// collection.
package comments

import (
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/reelscope/reelscope/internal/domain"
)

// CommenterCount is one row of the top-commenters ranking.
type CommenterCount struct {
	Username string `json:"username"`
	Count    int    `json:"count"`
}

// LikeBucket is one row of the like-count distribution. Buckets are
// fixed, exhaustive and disjoint: every comment lands in exactly one.
type LikeBucket struct {
	Range string `json:"range"`
	Count int    `json:"count"`
}

// WordCount is one row of the word-frequency ranking.
type WordCount struct {
	Word      string `json:"word"`
	Frequency int    `json:"frequency"`
}

// HourBucket is one hour of the synthetic time-of-day distribution.
type HourBucket struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

// Stats is the aggregate output of Analyze.
type Stats struct {
	TotalComments          int              `json:"total_comments"`
	AverageLength          int              `json:"average_length"`
	TotalLikes             int              `json:"total_likes"`
	TopCommenters          []CommenterCount `json:"top_commenters"`
	EngagementDistribution []LikeBucket     `json:"engagement_distribution"`
	WordCloud              []WordCount      `json:"word_cloud"`

	// TimeDistribution is a synthetic estimate: comments carry no
	// timestamps, so these counts are generated, not measured.
	TimeDistribution          []HourBucket `json:"time_distribution"`
	TimeDistributionEstimated bool         `json:"time_distribution_estimated"`
}

// likeBucketEdges defines the fixed distribution buckets.
var likeBucketEdges = []struct {
	label    string
	min, max int
}{
	{"0 likes", 0, 0},
	{"1-5 likes", 1, 5},
	{"6-10 likes", 6, 10},
	{"11+ likes", 11, int(^uint(0) >> 1)},
}

const (
	topCommenterLimit = 5
	wordCloudLimit    = 10
	minWordLength     = 4
)

// Analyzer computes comment statistics. The time-of-day estimator is
// pluggable so the synthetic placeholder can be swapped for a real
// measurement source without touching callers.
type Analyzer struct {
	timeEstimator TimeDistributionEstimator
}

// NewAnalyzer returns an analyzer using the synthetic time estimator.
func NewAnalyzer() *Analyzer {
	return &Analyzer{timeEstimator: NewSyntheticTimeEstimator()}
}

// NewAnalyzerWithEstimator returns an analyzer with a custom
// time-of-day source.
func NewAnalyzerWithEstimator(est TimeDistributionEstimator) *Analyzer {
	return &Analyzer{timeEstimator: est}
}

// Analyze aggregates the comment collection. An empty collection yields
// zeroed stats and empty rankings without error.
func (a *Analyzer) Analyze(cs []domain.Comment) Stats {
	stats := Stats{
		TopCommenters:          []CommenterCount{},
		EngagementDistribution: bucketize(cs),
		WordCloud:              []WordCount{},
		TimeDistribution:       []HourBucket{},
	}

	if len(cs) == 0 {
		return stats
	}

	stats.TotalComments = len(cs)
	stats.AverageLength = domain.AverageCommentLength(cs)
	for _, c := range cs {
		stats.TotalLikes += c.LikeCount
	}

	stats.TopCommenters = topCommenters(cs)
	stats.WordCloud = wordCloud(cs)

	stats.TimeDistribution = a.timeEstimator.Estimate(len(cs))
	stats.TimeDistributionEstimated = true

	log.Debug().Int("comments", stats.TotalComments).
		Int("total_likes", stats.TotalLikes).
		Msg("Comment statistics computed")

	return stats
}

// topCommenters ranks usernames by comment count, descending, ties in
// first-seen order, top 5.
func topCommenters(cs []domain.Comment) []CommenterCount {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	order := 0

	for _, c := range cs {
		if _, ok := counts[c.Username]; !ok {
			firstSeen[c.Username] = order
			order++
		}
		counts[c.Username]++
	}

	ranked := make([]CommenterCount, 0, len(counts))
	for username, count := range counts {
		ranked = append(ranked, CommenterCount{Username: username, Count: count})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return firstSeen[ranked[i].Username] < firstSeen[ranked[j].Username]
	})

	if len(ranked) > topCommenterLimit {
		ranked = ranked[:topCommenterLimit]
	}
	return ranked
}

// bucketize counts comments into the fixed like-count buckets.
func bucketize(cs []domain.Comment) []LikeBucket {
	buckets := make([]LikeBucket, len(likeBucketEdges))
	for i, edge := range likeBucketEdges {
		buckets[i].Range = edge.label
	}
	for _, c := range cs {
		likes := c.LikeCount
		if likes < 0 {
			likes = 0
		}
		for i, edge := range likeBucketEdges {
			if likes >= edge.min && likes <= edge.max {
				buckets[i].Count++
				break
			}
		}
	}
	return buckets
}

// wordCloud ranks token frequency across all comment texts: lowercase,
// whitespace split, tokens shorter than 4 characters and stopwords
// discarded, descending frequency, ties in first-seen order, top 10.
func wordCloud(cs []domain.Comment) []WordCount {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	order := 0

	for _, c := range cs {
		for _, word := range strings.Fields(strings.ToLower(c.Text)) {
			if len(word) < minWordLength || stopwords[word] {
				continue
			}
			if _, ok := counts[word]; !ok {
				firstSeen[word] = order
				order++
			}
			counts[word]++
		}
	}

	ranked := make([]WordCount, 0, len(counts))
	for word, freq := range counts {
		ranked = append(ranked, WordCount{Word: word, Frequency: freq})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Frequency != ranked[j].Frequency {
			return ranked[i].Frequency > ranked[j].Frequency
		}
		return firstSeen[ranked[i].Word] < firstSeen[ranked[j].Word]
	})

	if len(ranked) > wordCloudLimit {
		ranked = ranked[:wordCloudLimit]
	}
	return ranked
}
