package trend

import "strings"

// Category defines a topic to analyze: the keywords searched against
// sources and the predefined hashtags used for relevance matching and
// as the fallback tag pool.
type Category struct {
	Name     string   `yaml:"name" json:"name"`
	Keywords []string `yaml:"keywords" json:"keywords"`
	Hashtags []string `yaml:"hashtags" json:"hashtags"`
}

// Relevant reports whether a hashtag belongs in this category. An exact
// match against keywords or predefined hashtags passes, as does a
// substring match either direction against keywords. Tags under 3
// characters are rejected; everything else passes. The filter is
// deliberately permissive: unknown but plausible tags stay in.
func (c Category) Relevant(tag string) bool {
	lower := strings.ToLower(tag)

	for _, k := range c.Keywords {
		if strings.ToLower(k) == lower {
			return true
		}
	}
	for _, h := range c.Hashtags {
		if strings.ToLower(h) == lower {
			return true
		}
	}

	for _, k := range c.Keywords {
		kl := strings.ToLower(k)
		if strings.Contains(lower, kl) || strings.Contains(kl, lower) {
			return true
		}
	}

	return len(lower) >= 3
}

// SearchTerms returns the keywords actually searched in one run, capped
// at three per category.
func (c Category) SearchTerms() []string {
	if len(c.Keywords) > 3 {
		return c.Keywords[:3]
	}
	return c.Keywords
}
