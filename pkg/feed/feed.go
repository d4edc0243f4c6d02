// Package feed models captured social posts and the sources that
// deliver them. Engagement counts stay in display form ("1.2K") until
// the engagement step parses them; an empty count means the capture
// never observed that metric.
package feed

import (
	"context"
	"html"
	"regexp"
	"strings"
	"time"
)

// Post is one captured social post before analysis.
type Post struct {
	Text        string    `json:"text"`
	LikesRaw    string    `json:"likes"`
	CommentsRaw string    `json:"comments"`
	SharesRaw   string    `json:"shares"`
	URL         string    `json:"url,omitempty"`
	CapturedAt  time.Time `json:"captured_at,omitempty"`
}

// Source delivers captured posts for one search term.
type Source interface {
	Name() string
	Fetch(ctx context.Context, term string, limit int) ([]Post, error)
}

var markupRe = regexp.MustCompile(`<[^>]*>`)

// stripHTML flattens markup into plain text with single spaces.
func stripHTML(s string) string {
	s = markupRe.ReplaceAllString(s, " ")
	s = html.UnescapeString(s)
	return strings.Join(strings.Fields(s), " ")
}

// tagTerm collapses a search term to tag form: lowercase, no spaces.
func tagTerm(term string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(term)), " ", "")
}
