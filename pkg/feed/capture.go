package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Capture reads post dumps that a browser capture step drops into a
// directory. A term maps to files named after it, "<term>.json" or
// "<term>_<batch>.json", each holding a JSON array of posts with
// display-formatted counts.
type Capture struct {
	dir string
}

// NewCapture creates a capture-directory source.
func NewCapture(dir string) *Capture {
	return &Capture{dir: dir}
}

func (c *Capture) Name() string { return "capture" }

func (c *Capture) Fetch(ctx context.Context, term string, limit int) ([]Post, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return nil, fmt.Errorf("read capture dir %s: %w", c.dir, err)
	}

	stem := fileTerm(term)
	var posts []Post
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".json")
		if name != stem && !strings.HasPrefix(name, stem+"_") {
			continue
		}

		batch, err := readCaptureFile(filepath.Join(c.dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		posts = append(posts, batch...)
		if limit > 0 && len(posts) >= limit {
			posts = posts[:limit]
			break
		}
	}

	return posts, nil
}

func readCaptureFile(path string) ([]Post, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read capture file %s: %w", path, err)
	}

	var posts []Post
	if err := json.Unmarshal(data, &posts); err != nil {
		return nil, fmt.Errorf("parse capture file %s: %w", path, err)
	}
	return posts, nil
}

// fileTerm normalizes a search term for file lookup.
func fileTerm(term string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(term)), " ", "_")
}
