// Package sentiment scores post text with a small opinion lexicon.
// Polarity lands in [-1, 1]; the label uses a +-0.1 neutral band.
package sentiment

import (
	"math"
	"strings"
	"unicode"
)

// Sentiment labels.
const (
	Positive = "positive"
	Negative = "negative"
	Neutral  = "neutral"
)

// Result is a scored sentiment classification.
type Result struct {
	Polarity float64 `json:"polarity"`
	Label    string  `json:"label"`
}

// Analyzer scores text against weighted word lists, with negation
// flipping and intensity boosting.
type Analyzer struct {
	lexicon   map[string]float64
	negations map[string]bool
	boosters  map[string]float64
}

// NewAnalyzer creates an analyzer with the built-in lexicon.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		lexicon:   defaultLexicon,
		negations: defaultNegations,
		boosters:  defaultBoosters,
	}
}

// Analyze scores a text. The polarity is the average of matched word
// weights, negation-adjusted, rounded to three decimals. Text with no
// opinion words scores 0 and reads neutral.
func (a *Analyzer) Analyze(text string) Result {
	var (
		sum    float64
		hits   int
		negate bool
		boost  = 1.0
	)

	for _, tok := range tokenize(text) {
		if a.negations[tok] {
			negate = true
			continue
		}
		if b, ok := a.boosters[tok]; ok {
			boost = b
			continue
		}

		weight, ok := a.lexicon[tok]
		if !ok {
			negate = false
			boost = 1.0
			continue
		}

		weight *= boost
		if negate {
			// "not good" reads mildly negative rather than anti-good.
			weight *= -0.5
		}
		sum += weight
		hits++
		negate = false
		boost = 1.0
	}

	if hits == 0 {
		return Result{Polarity: 0, Label: Neutral}
	}

	polarity := sum / float64(hits)
	if polarity > 1 {
		polarity = 1
	}
	if polarity < -1 {
		polarity = -1
	}
	polarity = math.Round(polarity*1000) / 1000

	return Result{Polarity: polarity, Label: Label(polarity)}
}

// Label classifies a polarity: above 0.1 positive, below -0.1 negative,
// neutral between.
func Label(polarity float64) string {
	switch {
	case polarity > 0.1:
		return Positive
	case polarity < -0.1:
		return Negative
	default:
		return Neutral
	}
}

// tokenize lowercases and splits on whitespace, trimming punctuation but
// keeping inner apostrophes so contractions like "don't" survive.
func tokenize(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimFunc(f, func(r rune) bool {
			return !unicode.IsLetter(r) && r != '\''
		})
		f = strings.Trim(f, "'")
		if f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}
