package trend

import (
	"testing"
	"time"
)

// uniformAggregate builds an aggregate of n posts with identical
// engagement per post, split 80/15/5 across likes/comments/shares.
func uniformAggregate(tag string, n, perPost int) *Aggregate {
	samples := make([]int, n)
	for i := range samples {
		samples[i] = perPost
	}
	return &Aggregate{
		Hashtag:         tag,
		Category:        "technology",
		PostCount:       n,
		Likes:           n * perPost * 80 / 100,
		Comments:        n * perPost * 15 / 100,
		Shares:          n * perPost * 5 / 100,
		TotalEngagement: n * perPost,
		Samples:         samples,
	}
}

func TestScorerBounds(t *testing.T) {
	s := NewScorer(Weights{})
	at := time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)

	aggs := []*Aggregate{
		uniformAggregate("tech", 1, 1),
		uniformAggregate("tech", 3, 500),
		uniformAggregate("tech", 30, 5000),
		{Hashtag: "tech", PostCount: 1, Samples: []int{0}, PolaritySum: -1},
	}
	for _, a := range aggs {
		got := s.Score(a, at)
		if got < 0 || got > 100 {
			t.Errorf("Score(%+v) = %v, outside [0,100]", a, got)
		}
	}
}

func TestScorerSaturatesAtHundred(t *testing.T) {
	s := NewScorer(Weights{})

	// Every signal at its ceiling: engagement score pinned to 10 (the
	// log tail needs weighted engagement past 1e8), 25+ posts, 25k+
	// total, 2500+ average, polarity 1, fresh, uniform samples.
	a := uniformAggregate("artificialintelligence", 30, 200000000)
	a.PolaritySum = float64(a.PostCount)

	if got := s.Score(a, time.Now().UTC()); got != 100.0 {
		t.Fatalf("saturated score = %v, want 100.0", got)
	}
}

func TestScorerMorePostsSamePerformanceScoresHigher(t *testing.T) {
	s := NewScorer(Weights{})
	at := time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)

	small := uniformAggregate("tech", 3, 100)
	large := uniformAggregate("tech", 12, 100)

	if gotSmall, gotLarge := s.Score(small, at), s.Score(large, at); gotLarge < gotSmall {
		t.Errorf("12 posts scored %v, below 3 posts at %v", gotLarge, gotSmall)
	}
}

func TestScorerRecencyDecay(t *testing.T) {
	s := NewScorer(Weights{})
	at := time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)

	fresh := uniformAggregate("tech", 5, 200)
	fresh.FirstSeen = at

	stale := uniformAggregate("tech", 5, 200)
	stale.FirstSeen = at.Add(-48 * time.Hour)

	if gotFresh, gotStale := s.Score(fresh, at), s.Score(stale, at); gotStale >= gotFresh {
		t.Errorf("stale aggregate scored %v, not below fresh %v", gotStale, gotFresh)
	}
}

func TestScorerZeroFirstSeenReadsAsNow(t *testing.T) {
	s := NewScorer(Weights{})
	at := time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)

	zero := uniformAggregate("tech", 5, 200)

	fresh := uniformAggregate("tech", 5, 200)
	fresh.FirstSeen = at

	if gotZero, gotFresh := s.Score(zero, at), s.Score(fresh, at); gotZero != gotFresh {
		t.Errorf("zero FirstSeen scored %v, fresh scored %v; want equal", gotZero, gotFresh)
	}
}

func TestScorerLengthBonus(t *testing.T) {
	s := NewScorer(Weights{})
	at := time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)

	short := uniformAggregate("ai", 5, 200)
	long := uniformAggregate("artificialintelligence", 5, 200)

	gotShort, gotLong := s.Score(short, at), s.Score(long, at)
	if gotLong <= gotShort {
		t.Errorf("long hashtag scored %v, not above short %v", gotLong, gotShort)
	}
	// Bonus caps at 20 characters: 0.20 vs 0.02.
	if diff := gotLong - gotShort; diff < 0.17 || diff > 0.19 {
		t.Errorf("length bonus difference = %v, want 0.18", diff)
	}
}

func TestConsistencyIdenticalSamples(t *testing.T) {
	if got := consistency([]int{250, 250, 250, 250}); got != 1.0 {
		t.Errorf("consistency of identical samples = %v, want 1.0", got)
	}
}

func TestConsistencyFewSamples(t *testing.T) {
	if got := consistency(nil); got != 1.0 {
		t.Errorf("consistency(nil) = %v, want 1.0", got)
	}
	if got := consistency([]int{42}); got != 1.0 {
		t.Errorf("consistency of one sample = %v, want 1.0", got)
	}
}

func TestConsistencyDropsWithSpread(t *testing.T) {
	uniform := consistency([]int{100, 100, 100})
	spread := consistency([]int{10, 100, 1000})
	if spread >= uniform {
		t.Errorf("spread consistency %v not below uniform %v", spread, uniform)
	}
	if spread <= 0 {
		t.Errorf("consistency must stay positive, got %v", spread)
	}
}

func TestNewScorerDefaultsOnZeroWeights(t *testing.T) {
	s := NewScorer(Weights{})
	if s.w != DefaultWeights() {
		t.Errorf("zero weights = %+v, want defaults %+v", s.w, DefaultWeights())
	}

	custom := Weights{Engagement: 0.5, Recency: 0.5}
	if s := NewScorer(custom); s.w != custom {
		t.Errorf("custom weights not kept: %+v", s.w)
	}
}
