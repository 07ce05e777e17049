package sentiment

import "strings"

// PolarityAnalyzer scores free text on a scale from -1 (negative) to +1
// (positive).
type PolarityAnalyzer interface {
	Polarity(text string) float64
}

// term is a weighted dictionary entry. Dictionaries are slices so that the
// sum order, and therefore the float result, is stable.
type term struct {
	word   string
	weight float64
}

// bullish / bearish dictionaries (lowercase, substring matched).
var bullishTerms = []term{
	{"bullish", 0.7}, {"rally", 0.6}, {"surge", 0.7}, {"upbeat", 0.5},
	{"positive", 0.4}, {"upgrade", 0.6}, {"outperform", 0.6},
	{"buy", 0.5}, {"strong", 0.4}, {"recovery", 0.5}, {"breakout", 0.6},
	{"all-time high", 0.7}, {"exceeds", 0.5}, {"expansion", 0.4},
	{"dividend", 0.4}, {"accumulate", 0.5}, {"soar", 0.7}, {"robust", 0.4},
	{"optimistic", 0.5}, {"win", 0.4}, {"approval", 0.4}, {"bonus", 0.3},
}

var bearishTerms = []term{
	{"bearish", 0.7}, {"crash", 0.8}, {"slump", 0.6},
	{"negative", 0.4}, {"downgrade", 0.6}, {"underperform", 0.6},
	{"sell", 0.5}, {"weak", 0.4}, {"selloff", 0.7}, {"correction", 0.5},
	{"default", 0.7}, {"fraud", 0.8}, {"scam", 0.8}, {"investigation", 0.5},
	{"miss", 0.5}, {"warning", 0.5}, {"concern", 0.3}, {"penalty", 0.5},
	{"probe", 0.5}, {"lawsuit", 0.6}, {"tumble", 0.6}, {"slowdown", 0.4},
}

// LexiconAnalyzer is an offline dictionary-based polarity analyzer.
// Score = (bullish - bearish) / (bullish + bearish), 0 when nothing matches.
type LexiconAnalyzer struct {
	bullish []term
	bearish []term
}

// NewLexiconAnalyzer returns an analyzer with the built-in market dictionaries.
func NewLexiconAnalyzer() *LexiconAnalyzer {
	return &LexiconAnalyzer{bullish: bullishTerms, bearish: bearishTerms}
}

// Polarity implements PolarityAnalyzer.
func (a *LexiconAnalyzer) Polarity(text string) float64 {
	lower := strings.ToLower(text)

	bull := 0.0
	for _, t := range a.bullish {
		if strings.Contains(lower, t.word) {
			bull += t.weight
		}
	}
	bear := 0.0
	for _, t := range a.bearish {
		if strings.Contains(lower, t.word) {
			bear += t.weight
		}
	}

	total := bull + bear
	if total == 0 {
		return 0
	}
	return (bull - bear) / total
}
