// Package report renders finished analysis runs as plain-text console
// reports: ranked hashtag blocks, summary statistics and top performers.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/elonfeng/hashradar/internal/store"
)

const lineWidth = 90

// RatingBar renders a ten-cell bar for a 0-10 rating, filled glyphs for
// whole points scored.
func RatingBar(rating float64) string {
	filled := int(rating)
	if filled < 0 {
		filled = 0
	}
	if filled > 10 {
		filled = 10
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", 10-filled)
}

// Render writes the full report for a run: header, one block per ranked
// hashtag, then summary statistics and top performers.
func Render(w io.Writer, run *store.Run, trends []store.HashtagTrend) {
	if len(trends) == 0 {
		fmt.Fprintln(w, "no hashtags found")
		return
	}

	heavy := strings.Repeat("=", lineWidth)
	light := strings.Repeat("─", lineWidth)

	fmt.Fprintln(w, heavy)
	fmt.Fprintf(w, "TOP %d TRENDING #%s HASHTAGS\n", len(trends), strings.ToUpper(run.Category))
	fmt.Fprintln(w, heavy)
	fmt.Fprintln(w)

	for _, t := range trends {
		writeBlock(w, light, t)
	}

	writeSummary(w, heavy, trends)
	writePerformers(w, heavy, trends)
}

func writeBlock(w io.Writer, rule string, t store.HashtagTrend) {
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "#%2d. #%s\n", t.Rank, t.Hashtag)
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "    Trending Score: %.1f/100\n", t.TrendingScore)
	fmt.Fprintf(w, "    Engagement Score: %.2f/10  %s\n", t.EngagementScore, RatingBar(t.EngagementScore))
	fmt.Fprintf(w, "    Posts: %d | Total Engagement: %s\n", t.PostCount, humanize.Comma(int64(t.TotalEngagement)))
	fmt.Fprintf(w, "    Likes: %s | Comments: %s | Shares: %s\n",
		humanize.Comma(int64(t.Likes)), humanize.Comma(int64(t.Comments)), humanize.Comma(int64(t.Shares)))
	fmt.Fprintln(w, "    Avg per Post:")
	fmt.Fprintf(w, "       - Likes: %s\n", humanize.Comma(int64(t.AvgLikes)))
	fmt.Fprintf(w, "       - Comments: %s\n", humanize.Comma(int64(t.AvgComments)))
	fmt.Fprintf(w, "       - Shares: %s\n", humanize.Comma(int64(t.AvgShares)))
	fmt.Fprintf(w, "    Sentiment: %s (%+.2f)\n", title(t.Sentiment), t.SentimentScore)
	if t.Estimated {
		fmt.Fprintln(w, "    [Contains estimated engagement data]")
	}
	fmt.Fprintf(w, "    URL: %s\n", t.HashtagURL)
	fmt.Fprintln(w)
}

func writeSummary(w io.Writer, rule string, trends []store.HashtagTrend) {
	var (
		totalPosts  int
		totalEng    int
		sumTrending float64
		estimated   int
	)
	for _, t := range trends {
		totalPosts += t.PostCount
		totalEng += t.TotalEngagement
		sumTrending += t.TrendingScore
		if t.Estimated {
			estimated++
		}
	}

	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "SUMMARY STATISTICS")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Total Hashtags: %d\n", len(trends))
	fmt.Fprintf(w, "Total Posts Analyzed: %d\n", totalPosts)
	fmt.Fprintf(w, "Total Engagement: %s\n", humanize.Comma(int64(totalEng)))
	fmt.Fprintf(w, "Average Trending Score: %.1f/100\n", sumTrending/float64(len(trends)))
	fmt.Fprintf(w, "Real Data: %d | Estimated: %d\n", len(trends)-estimated, estimated)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w)
}

func writePerformers(w io.Writer, rule string, trends []store.HashtagTrend) {
	engaging := trends[0]
	frequent := trends[0]
	positive := trends[0]
	for _, t := range trends[1:] {
		if t.EngagementScore > engaging.EngagementScore {
			engaging = t
		}
		if t.PostCount > frequent.PostCount {
			frequent = t
		}
		if t.SentimentScore > positive.SentimentScore {
			positive = t
		}
	}

	fmt.Fprintln(w, "TOP PERFORMERS")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Most Engaging: #%s (Score: %.2f/10)\n", engaging.Hashtag, engaging.EngagementScore)
	fmt.Fprintf(w, "Most Frequent: #%s (%d posts)\n", frequent.Hashtag, frequent.PostCount)
	fmt.Fprintf(w, "Most Positive: #%s (Sentiment: %+.2f)\n", positive.Hashtag, positive.SentimentScore)
	fmt.Fprintln(w, rule)
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
