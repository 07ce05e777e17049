// Package sentiment aggregates headline polarity into a categorical
// sentiment using keyword overrides on top of a generic polarity analyzer.
package sentiment

import (
	"strings"

	"github.com/seenimoa/marketmind/pkg/models"
)

// MaxHeadlines is the number of most-recent headlines considered.
const MaxHeadlines = 5

// Scoring constants.
const (
	questionWeight  = 0.5
	keywordWeight   = 1.2
	keywordPolarity = 0.4
	positiveCutoff  = 0.1
	negativeCutoff  = -0.1
)

// Keywords are the override lists checked before generic analysis.
// Matching is a case-insensitive substring test; negative wins over positive.
type Keywords struct {
	Negative []string
	Positive []string
}

// DefaultKeywords returns the built-in keyword lists.
func DefaultKeywords() Keywords {
	return Keywords{
		Negative: []string{"decline", "drop", "loss", "down", "plunge", "cut", "fall", "dip", "decrease"},
		Positive: []string{"profit", "gain", "growth", "rise", "jump", "beat", "increase", "record high"},
	}
}

// Aggregator turns headlines into a SentimentResult.
type Aggregator struct {
	keywords Keywords
	analyzer PolarityAnalyzer
}

// NewAggregator creates an aggregator. A nil analyzer falls back to the
// built-in LexiconAnalyzer.
func NewAggregator(keywords Keywords, analyzer PolarityAnalyzer) *Aggregator {
	if analyzer == nil {
		analyzer = NewLexiconAnalyzer()
	}
	return &Aggregator{keywords: keywords, analyzer: analyzer}
}

// ScoreHeadline returns the weight and polarity of a single headline.
//
// The weight starts at 1 and is halved for questions. A negative keyword
// forces polarity -0.4 and multiplies the weight by 1.2; otherwise a
// positive keyword forces +0.4 with the same multiplier; otherwise the
// generic analyzer decides.
func (a *Aggregator) ScoreHeadline(headline string) (weight, polarity float64) {
	weight = 1.0
	lower := strings.ToLower(headline)

	if strings.Contains(headline, "?") {
		weight *= questionWeight
	}

	switch {
	case containsAny(lower, a.keywords.Negative):
		weight *= keywordWeight
		polarity = -keywordPolarity
	case containsAny(lower, a.keywords.Positive):
		weight *= keywordWeight
		polarity = keywordPolarity
	default:
		polarity = a.analyzer.Polarity(headline)
	}
	return weight, polarity
}

// Aggregate scores up to MaxHeadlines headlines in order. The accumulated
// weight × polarity is divided by the number of headlines, not by the total
// weight. No headlines yields Neutral with an empty list.
func (a *Aggregator) Aggregate(headlines []string) models.SentimentResult {
	if len(headlines) > MaxHeadlines {
		headlines = headlines[:MaxHeadlines]
	}
	kept := make([]string, len(headlines))
	copy(kept, headlines)

	if len(kept) == 0 {
		return models.SentimentResult{Category: models.SentimentNeutral, Headlines: kept}
	}

	total := 0.0
	for _, h := range kept {
		w, p := a.ScoreHeadline(h)
		total += w * p
	}
	avg := total / float64(len(kept))

	return models.SentimentResult{
		Category:  Categorize(avg),
		Average:   avg,
		Headlines: kept,
	}
}

// Categorize maps an average polarity to a category.
func Categorize(avg float64) models.SentimentCategory {
	switch {
	case avg > positiveCutoff:
		return models.SentimentPositive
	case avg < negativeCutoff:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, strings.ToLower(w)) {
			return true
		}
	}
	return false
}
