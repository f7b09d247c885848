package comments

import "math/rand"

// TimeDistributionEstimator supplies a per-hour comment distribution.
// Scraped comments carry no timestamps, so the default implementation
// fabricates one; a real measurement source can be plugged in here
// without touching callers.
type TimeDistributionEstimator interface {
	Estimate(totalComments int) []HourBucket
}

// SyntheticTimeEstimator generates a pseudo-random placeholder
// distribution across the 24 hours. Its output is an estimate and is
// always labeled as such in Stats.
type SyntheticTimeEstimator struct{}

// NewSyntheticTimeEstimator returns the stateless default estimator.
func NewSyntheticTimeEstimator() *SyntheticTimeEstimator {
	return &SyntheticTimeEstimator{}
}

// Estimate spreads roughly totalComments/10 counts per hour. The
// generator is seeded from the comment total on every call, so the same
// input always renders the same placeholder and nothing is shared
// between concurrent analyses.
func (s *SyntheticTimeEstimator) Estimate(totalComments int) []HourBucket {
	rng := rand.New(rand.NewSource(int64(totalComments) + 1))

	buckets := make([]HourBucket, 24)
	for hour := range buckets {
		buckets[hour].Hour = hour
		if totalComments > 0 {
			buckets[hour].Count = int(rng.Float64() * float64(totalComments) / 10)
		}
	}
	return buckets
}
