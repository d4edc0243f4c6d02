package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const mastodonPageCap = 40

// Mastodon fetches public posts for a term from a Mastodon server's tag
// timeline. Public timelines need no credentials; favourites, replies
// and boosts come through as observed counts.
type Mastodon struct {
	client  *http.Client
	baseURL string
}

// NewMastodon creates a collector for the given server. An empty server
// defaults to mastodon.social.
func NewMastodon(server string) *Mastodon {
	if server == "" {
		server = "https://mastodon.social"
	}
	return &Mastodon{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: strings.TrimRight(server, "/"),
	}
}

func (m *Mastodon) Name() string { return "mastodon" }

func (m *Mastodon) Fetch(ctx context.Context, term string, limit int) ([]Post, error) {
	if limit <= 0 || limit > mastodonPageCap {
		limit = mastodonPageCap
	}

	reqURL := fmt.Sprintf("%s/api/v1/timelines/tag/%s?limit=%d",
		m.baseURL, url.PathEscape(tagTerm(term)), limit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create mastodon request: %w", err)
	}
	req.Header.Set("User-Agent", "hashradar/1.0")

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch tag %s: %w", term, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("mastodon tag %s status %d", term, resp.StatusCode)
	}

	var statuses []mastodonStatus
	if err := json.NewDecoder(resp.Body).Decode(&statuses); err != nil {
		return nil, fmt.Errorf("decode tag %s: %w", term, err)
	}

	posts := make([]Post, 0, len(statuses))
	for _, st := range statuses {
		posts = append(posts, Post{
			Text:        stripHTML(st.Content),
			LikesRaw:    strconv.Itoa(st.FavouritesCount),
			CommentsRaw: strconv.Itoa(st.RepliesCount),
			SharesRaw:   strconv.Itoa(st.ReblogsCount),
			URL:         st.URL,
			CapturedAt:  st.CreatedAt,
		})
	}
	return posts, nil
}

type mastodonStatus struct {
	Content         string    `json:"content"`
	URL             string    `json:"url"`
	CreatedAt       time.Time `json:"created_at"`
	FavouritesCount int       `json:"favourites_count"`
	RepliesCount    int       `json:"replies_count"`
	ReblogsCount    int       `json:"reblogs_count"`
}
