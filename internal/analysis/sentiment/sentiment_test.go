package sentiment

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/seenimoa/marketmind/pkg/models"
)

// fixedAnalyzer returns the same polarity for any text and records calls.
type fixedAnalyzer struct {
	polarity float64
	calls    []string
}

func (f *fixedAnalyzer) Polarity(text string) float64 {
	f.calls = append(f.calls, text)
	return f.polarity
}

func newTestAggregator(polarity float64) (*Aggregator, *fixedAnalyzer) {
	fa := &fixedAnalyzer{polarity: polarity}
	return NewAggregator(DefaultKeywords(), fa), fa
}

func TestAggregateEmpty(t *testing.T) {
	agg, _ := newTestAggregator(0)
	got := agg.Aggregate(nil)
	assert.Equal(t, models.SentimentNeutral, got.Category)
	assert.Empty(t, got.Headlines)
	assert.NotNil(t, got.Headlines)
}

func TestAggregatePositiveKeyword(t *testing.T) {
	agg, fa := newTestAggregator(-1)
	got := agg.Aggregate([]string{"Company profit jumps 20%"})

	assert.InDelta(t, 0.48, got.Average, 1e-9)
	assert.Equal(t, models.SentimentPositive, got.Category)
	assert.Empty(t, fa.calls, "keyword override skips the generic analyzer")
}

func TestAggregateQuestionWithNegativeKeyword(t *testing.T) {
	agg, _ := newTestAggregator(1)
	w, p := agg.ScoreHeadline("Is the stock in decline?")
	assert.InDelta(t, 0.6, w, 1e-9)
	assert.InDelta(t, -0.4, p, 1e-9)

	got := agg.Aggregate([]string{"Is the stock in decline?"})
	assert.InDelta(t, -0.24, got.Average, 1e-9)
	assert.Equal(t, models.SentimentNegative, got.Category)
}

func TestNegativeKeywordWinsOverPositive(t *testing.T) {
	agg, _ := newTestAggregator(0)
	_, p := agg.ScoreHeadline("Profit falls despite revenue growth")
	assert.InDelta(t, -0.4, p, 1e-9)
}

func TestKeywordMatchIsCaseInsensitive(t *testing.T) {
	agg, _ := newTestAggregator(0)
	_, p := agg.ScoreHeadline("Shares PLUNGE after results")
	assert.InDelta(t, -0.4, p, 1e-9)
	_, p = agg.ScoreHeadline("Nifty hits RECORD HIGH")
	assert.InDelta(t, 0.4, p, 1e-9)
}

func TestGenericAnalyzerFallback(t *testing.T) {
	agg, fa := newTestAggregator(0.5)
	w, p := agg.ScoreHeadline("Board meets on Friday?")
	assert.InDelta(t, 0.5, w, 1e-9)
	assert.InDelta(t, 0.5, p, 1e-9)
	assert.Equal(t, []string{"Board meets on Friday?"}, fa.calls)
}

// Averaging divides by the headline count, not the total weight.
func TestAverageDividesByCount(t *testing.T) {
	agg, _ := newTestAggregator(0)
	got := agg.Aggregate([]string{
		"Company profit jumps",  // 1.2 × 0.4 = 0.48
		"Board meets on Friday", // 1.0 × 0   = 0
	})
	assert.InDelta(t, 0.24, got.Average, 1e-9)
	assert.Equal(t, models.SentimentPositive, got.Category)

	// By-weight averaging would give 0.48 / 2.2 ≈ 0.218; the count rule gives 0.24.
	assert.Greater(t, math.Abs(0.48/2.2-got.Average), 1e-6)
}

func TestAggregateKeepsFirstFiveInOrder(t *testing.T) {
	agg, _ := newTestAggregator(0)
	in := []string{"a", "b", "c", "d", "e", "f", "g"}
	got := agg.Aggregate(in)
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, got.Headlines)
	assert.Equal(t, models.SentimentNeutral, got.Category)

	got.Headlines[0] = "mutated"
	assert.Equal(t, "a", in[0], "result does not alias the input")
}

func TestCategorizeBoundaries(t *testing.T) {
	assert.Equal(t, models.SentimentNeutral, Categorize(0.1))
	assert.Equal(t, models.SentimentPositive, Categorize(0.1001))
	assert.Equal(t, models.SentimentNeutral, Categorize(-0.1))
	assert.Equal(t, models.SentimentNegative, Categorize(-0.1001))
}

func TestNilAnalyzerUsesLexicon(t *testing.T) {
	agg := NewAggregator(DefaultKeywords(), nil)
	_, p := agg.ScoreHeadline("Analysts turn bullish after upgrade")
	assert.Greater(t, p, 0.0)
}

func TestLexiconAnalyzer(t *testing.T) {
	a := NewLexiconAnalyzer()

	assert.Greater(t, a.Polarity("Reliance shares rally on strong positive results"), 0.0)
	assert.Less(t, a.Polarity("Market crash: fraud investigation concerns"), 0.0)
	assert.Equal(t, 0.0, a.Polarity("Company announces new office location in Bengaluru"))

	for _, text := range []string{"bullish", "crash fraud scam", "bullish crash"} {
		p := a.Polarity(text)
		assert.GreaterOrEqual(t, p, -1.0)
		assert.LessOrEqual(t, p, 1.0)
	}
	assert.Equal(t, a.Polarity("bullish surge, weak sell"), a.Polarity("bullish surge, weak sell"))
}
