package trend

import (
	"strings"
	"time"

	"github.com/elonfeng/hashradar/pkg/engage"
	"github.com/elonfeng/hashradar/pkg/sentiment"
)

// Aggregate accumulates per-hashtag statistics across the posts of one
// run. Keying is case-insensitive; Hashtag keeps the first-seen casing.
// Estimated stays true only while every contributing post was estimated.
type Aggregate struct {
	Hashtag         string
	Category        string
	PostCount       int
	Likes           int
	Comments        int
	Shares          int
	TotalEngagement int
	Samples         []int
	PolaritySum     float64
	FirstSeen       time.Time
	Estimated       bool
}

func (a *Aggregate) AvgLikes() float64 {
	return float64(a.Likes) / float64(a.PostCount)
}

func (a *Aggregate) AvgComments() float64 {
	return float64(a.Comments) / float64(a.PostCount)
}

func (a *Aggregate) AvgShares() float64 {
	return float64(a.Shares) / float64(a.PostCount)
}

func (a *Aggregate) AvgEngagement() float64 {
	return float64(a.TotalEngagement) / float64(a.PostCount)
}

// AvgPolarity is the mean sentiment polarity over contributing posts.
func (a *Aggregate) AvgPolarity() float64 {
	return a.PolaritySum / float64(a.PostCount)
}

// SentimentLabel classifies the averaged polarity.
func (a *Aggregate) SentimentLabel() string {
	return sentiment.Label(a.AvgPolarity())
}

// EngagementScore rates the aggregate on the 1-10 scale from its
// truncated average counts.
func (a *Aggregate) EngagementScore() float64 {
	return engage.Score(int(a.AvgLikes()), int(a.AvgComments()), int(a.AvgShares()))
}

// Aggregator folds per-post metrics into per-hashtag aggregates for one
// category run. It is a single-writer structure: one goroutine folds at
// a time.
type Aggregator struct {
	cat   Category
	aggs  map[string]*Aggregate
	order []string
	now   func() time.Time
}

// NewAggregator creates an aggregator for one category.
func NewAggregator(cat Category) *Aggregator {
	return &Aggregator{
		cat:  cat,
		aggs: make(map[string]*Aggregate),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// Fold merges one post's metrics and sentiment into the aggregates of
// every relevant tag. Irrelevant tags are dropped here.
func (g *Aggregator) Fold(tags []string, m engage.Metrics, polarity float64) {
	engagement := m.Total()

	for _, tag := range tags {
		if !g.cat.Relevant(tag) {
			continue
		}

		key := strings.ToLower(tag)
		a, ok := g.aggs[key]
		if !ok {
			a = &Aggregate{
				Hashtag:   tag,
				Category:  g.cat.Name,
				FirstSeen: g.now(),
				Estimated: m.Estimated,
			}
			g.aggs[key] = a
			g.order = append(g.order, key)
		}

		a.PostCount++
		a.Likes += m.Likes
		a.Comments += m.Comments
		a.Shares += m.Shares
		a.TotalEngagement += engagement
		a.Samples = append(a.Samples, engagement)
		a.PolaritySum += polarity
		if !m.Estimated {
			a.Estimated = false
		}
	}
}

// Aggregates returns the accumulated aggregates in first-seen order.
func (g *Aggregator) Aggregates() []*Aggregate {
	out := make([]*Aggregate, 0, len(g.order))
	for _, key := range g.order {
		out = append(out, g.aggs[key])
	}
	return out
}
