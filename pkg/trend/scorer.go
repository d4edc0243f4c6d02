package trend

import (
	"math"
	"time"
)

// Weights control how much each normalized signal contributes to the
// trending score. Recency is the configurable time weight.
type Weights struct {
	Engagement  float64 `yaml:"engagement"`
	Volume      float64 `yaml:"volume"`
	Total       float64 `yaml:"total"`
	Average     float64 `yaml:"average"`
	Sentiment   float64 `yaml:"sentiment"`
	Recency     float64 `yaml:"recency"`
	Consistency float64 `yaml:"consistency"`
}

// DefaultWeights returns the standard signal mix.
func DefaultWeights() Weights {
	return Weights{
		Engagement:  0.25,
		Volume:      0.20,
		Total:       0.15,
		Average:     0.15,
		Sentiment:   0.10,
		Recency:     0.15,
		Consistency: 0.05,
	}
}

// Scorer computes the 0-100 trending score for finalized aggregates.
type Scorer struct {
	w Weights
}

// NewScorer creates a scorer. All-zero weights fall back to defaults.
func NewScorer(w Weights) *Scorer {
	if w.Engagement+w.Volume+w.Total+w.Average+w.Sentiment+w.Recency+w.Consistency == 0 {
		w = DefaultWeights()
	}
	return &Scorer{w: w}
}

// Score combines the aggregate's signals into a bounded trending score.
// Each signal normalizes to [0,1]: engagement score over its 10-point
// ceiling, post count against 25, total engagement against 25000,
// average engagement against 2500, polarity shifted from [-1,1].
// Recency decays exponentially with a 24-hour scale from FirstSeen
// (zero FirstSeen reads as now). Consistency rewards hashtags whose
// posts perform uniformly. A small length bonus nudges longer, more
// specific hashtags ahead on near-ties.
func (s *Scorer) Score(a *Aggregate, at time.Time) float64 {
	engNorm := math.Min(a.EngagementScore()/10.0, 1.0)
	postNorm := math.Min(float64(a.PostCount)/25.0, 1.0)
	totalNorm := math.Min(float64(a.TotalEngagement)/25000.0, 1.0)
	avgNorm := math.Min(a.AvgEngagement()/2500.0, 1.0)
	sentimentNorm := (a.AvgPolarity() + 1) / 2

	timeFactor := 1.0
	if !a.FirstSeen.IsZero() {
		hours := at.Sub(a.FirstSeen).Hours()
		timeFactor = math.Exp(-hours / 24.0)
	}

	score := (engNorm*s.w.Engagement +
		postNorm*s.w.Volume +
		totalNorm*s.w.Total +
		avgNorm*s.w.Average +
		sentimentNorm*s.w.Sentiment +
		timeFactor*s.w.Recency +
		consistency(a.Samples)*s.w.Consistency) * 100

	length := len(a.Hashtag)
	if length > 20 {
		length = 20
	}
	score += float64(length) * 0.01

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return math.Round(score*100) / 100
}

// consistency is 1.0 when every sample matches and decays toward 0 as
// the spread grows relative to the mean. Fewer than two samples count
// as perfectly consistent.
func consistency(samples []int) float64 {
	if len(samples) < 2 {
		return 1.0
	}

	sum := 0.0
	for _, v := range samples {
		sum += float64(v)
	}
	mean := sum / float64(len(samples))

	variance := 0.0
	for _, v := range samples {
		d := float64(v) - mean
		variance += d * d
	}
	variance /= float64(len(samples))

	return 1.0 / (1.0 + math.Sqrt(variance)/math.Max(mean, 1))
}
