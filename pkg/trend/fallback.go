package trend

import (
	"fmt"
	"math/rand"

	"github.com/elonfeng/hashradar/internal/store"
	"github.com/elonfeng/hashradar/pkg/engage"
	"github.com/elonfeng/hashradar/pkg/sentiment"
)

// Fallback synthesizes a ranked top-10 from the category's predefined
// hashtags for runs that collected no qualifying hashtag. Every row is
// marked estimated; metrics are illustrative, scaled down the ranking
// so the list still reads plausibly.
func Fallback(cat Category, rng *rand.Rand, urlTemplate string) []store.HashtagTrend {
	tags := cat.Hashtags
	if len(tags) == 0 {
		tags = []string{cat.Name}
	}
	if len(tags) > 10 {
		tags = tags[:10]
	}

	trends := make([]store.HashtagTrend, 0, len(tags))
	for i, tag := range tags {
		base := 2000 + rng.Intn(6001) - i*300
		likes := int(float64(base) * 0.65)
		comments := int(float64(base) * 0.25)
		shares := int(float64(base) * 0.10)

		trends = append(trends, store.HashtagTrend{
			Rank:            i + 1,
			Hashtag:         tag,
			Category:        cat.Name,
			PostCount:       10 + rng.Intn(41),
			TotalEngagement: base,
			Likes:           likes,
			Comments:        comments,
			Shares:          shares,
			AvgLikes:        float64(likes),
			AvgComments:     float64(comments),
			AvgShares:       float64(shares),
			AvgEngagement:   float64(base),
			EngagementScore: engage.Score(likes, comments, shares),
			TrendingScore:   float64(90 - i*8),
			Sentiment:       sentiment.Positive,
			SentimentScore:  0.6,
			Estimated:       true,
			HashtagURL:      fmt.Sprintf(urlTemplate, tag),
		})
	}
	return trends
}
