package feed

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/mmcdole/gofeed"
)

// RSS fetches posts from a per-tag RSS/Atom feed. The feed URL template
// takes the tag as its single %s verb; the default points at Mastodon
// public tag feeds. Feed entries carry no engagement counts, so every
// post from this source goes through baseline estimation.
type RSS struct {
	client   *http.Client
	parser   *gofeed.Parser
	template string
}

// NewRSS creates a tag-feed collector. An empty template defaults to
// Mastodon's public tag feeds.
func NewRSS(template string) *RSS {
	if template == "" {
		template = "https://mastodon.social/tags/%s.rss"
	}
	return &RSS{
		client:   &http.Client{Timeout: 30 * time.Second},
		parser:   gofeed.NewParser(),
		template: template,
	}
}

func (r *RSS) Name() string { return "rss" }

func (r *RSS) Fetch(ctx context.Context, term string, limit int) ([]Post, error) {
	feedURL := fmt.Sprintf(r.template, url.PathEscape(tagTerm(term)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create rss request %s: %w", term, err)
	}
	req.Header.Set("User-Agent", "hashradar/1.0")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch rss %s: %w", term, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rss %s status %d", term, resp.StatusCode)
	}

	parsed, err := r.parser.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse rss %s: %w", term, err)
	}

	var posts []Post
	for _, entry := range parsed.Items {
		if limit > 0 && len(posts) >= limit {
			break
		}

		text := stripHTML(entry.Description)
		if text == "" {
			text = stripHTML(entry.Title)
		}

		captured := time.Now().UTC()
		if entry.PublishedParsed != nil {
			captured = entry.PublishedParsed.UTC()
		} else if entry.UpdatedParsed != nil {
			captured = entry.UpdatedParsed.UTC()
		}

		posts = append(posts, Post{
			Text:       text,
			URL:        entry.Link,
			CapturedAt: captured,
		})
	}

	return posts, nil
}
