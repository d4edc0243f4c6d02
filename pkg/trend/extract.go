package trend

import (
	"regexp"
	"sort"
	"strings"
)

var (
	hashtagRe = regexp.MustCompile(`#(\w+)`)
	keywordRe = regexp.MustCompile(`\b[a-z]{4,}\b`)
)

// commonWords are ignored during keyword mining.
var commonWords = map[string]bool{
	"this": true, "that": true, "with": true, "from": true, "have": true,
	"more": true, "will": true, "their": true, "there": true, "what": true,
	"about": true, "which": true, "when": true, "make": true, "like": true,
	"time": true, "just": true, "know": true, "take": true, "people": true,
	"into": true, "year": true, "your": true, "some": true, "could": true,
	"them": true, "than": true, "other": true, "then": true, "look": true,
	"only": true, "come": true, "over": true, "think": true, "also": true,
	"back": true, "after": true, "work": true, "first": true, "well": true,
	"even": true, "want": true, "because": true, "these": true, "give": true,
	"most": true,
}

// ExtractTags returns up to 10 candidate hashtags for a post: explicit
// #tags from the text, or the first five fallback tags when the post
// carries none, plus mined keywords. Tags come back without the '#'
// prefix, deduplicated with explicit tags first.
func ExtractTags(text string, fallback []string) []string {
	var explicit []string
	for _, m := range hashtagRe.FindAllStringSubmatch(text, -1) {
		explicit = append(explicit, m[1])
	}

	if len(explicit) == 0 {
		n := len(fallback)
		if n > 5 {
			n = 5
		}
		explicit = append(explicit, fallback[:n]...)
	}

	tags := append(explicit, mineKeywords(text)...)

	seen := make(map[string]bool, len(tags))
	out := tags[:0]
	for _, t := range tags {
		key := strings.ToLower(t)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, t)
	}

	if len(out) > 10 {
		out = out[:10]
	}
	return out
}

// mineKeywords pulls up to five recurring words of four or more letters
// from the text, skipping common filler. A word must appear at least
// twice to count; ties keep first-appearance order.
func mineKeywords(text string) []string {
	words := keywordRe.FindAllString(strings.ToLower(text), -1)

	counts := make(map[string]int)
	var order []string
	for _, w := range words {
		if commonWords[w] {
			continue
		}
		if counts[w] == 0 {
			order = append(order, w)
		}
		counts[w]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	var out []string
	for _, w := range order {
		if counts[w] < 2 {
			continue
		}
		out = append(out, w)
		if len(out) == 5 {
			break
		}
	}
	return out
}
