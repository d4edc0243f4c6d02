// Package engage turns raw post counters into complete, comparable
// engagement metrics: parsing display-formatted counts, filling gaps the
// capture step could not observe, and rating posts on a 1-10 scale.
package engage

import (
	"math"
	"strconv"
	"strings"
)

// Metrics holds the engagement counts for a single post.
type Metrics struct {
	Likes     int  `json:"likes"`
	Comments  int  `json:"comments"`
	Shares    int  `json:"shares"`
	Estimated bool `json:"estimated"`
}

// Total returns the combined engagement count.
func (m Metrics) Total() int {
	return m.Likes + m.Comments + m.Shares
}

// ParseCount converts a display-formatted count like "1.2K", "3,400" or
// "2M" into an integer. Suffixes K, M and B multiply by a thousand, a
// million and a billion; matching is case-insensitive and thousands
// separators are ignored. Anything unparseable yields 0.
func ParseCount(s string) int {
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return 0
	}

	mult := 1.0
	switch s[len(s)-1] {
	case 'K':
		mult = 1e3
		s = s[:len(s)-1]
	case 'M':
		mult = 1e6
		s = s[:len(s)-1]
	case 'B':
		mult = 1e9
		s = s[:len(s)-1]
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return int(math.Round(v * mult))
}

// Score rates a post's engagement from 1 to 10. Comments weigh four
// times and shares eight times as much as likes, since they demand more
// of the viewer. The curve is piecewise linear over weighted-engagement
// bands and flattens logarithmically past 10k.
func Score(likes, comments, shares int) float64 {
	if likes < 0 || comments < 0 || shares < 0 {
		return 1.0
	}

	weighted := float64(likes) + float64(comments)*4 + float64(shares)*8
	if weighted == 0 {
		return 1.0
	}

	var score float64
	switch {
	case weighted <= 20:
		score = 1.0 + (weighted/20)*1.5
	case weighted <= 100:
		score = 2.5 + ((weighted-20)/80)*1.5
	case weighted <= 500:
		score = 4.0 + ((weighted-100)/400)*2.0
	case weighted <= 2000:
		score = 6.0 + ((weighted-500)/1500)*2.0
	case weighted <= 10000:
		score = 8.0 + ((weighted-2000)/8000)*1.5
	default:
		score = 9.5 + (math.Log10(weighted)-4)*0.125
	}

	if score < 1 {
		score = 1
	}
	if score > 10 {
		score = 10
	}
	return math.Round(score*100) / 100
}
