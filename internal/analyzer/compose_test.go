package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seenimoa/marketmind/internal/analysis/fundamental"
	"github.com/seenimoa/marketmind/internal/analysis/recommend"
	"github.com/seenimoa/marketmind/pkg/models"
)

func fixtureInputs() Inputs {
	return Inputs{
		Ticker:    "INFY.NS",
		Snapshot:  infosysSnapshot(),
		History:   flatHistory(30),
		Headlines: []string{"Infosys profit jumps", "Is the stock in decline?"},
		Profile:   &models.InvestorProfile{Risk: recommend.RiskMedium, Horizon: recommend.HorizonOneYear},
	}
}

func TestComposeIsIdempotent(t *testing.T) {
	in := fixtureInputs()
	first := Compose(in)
	second := Compose(in)
	assert.Equal(t, first, second)

	assert.Equal(t, []string{"Infosys profit jumps", "Is the stock in decline?"}, in.Headlines,
		"inputs are not modified")
}

func TestComposeSentimentAveragesByCount(t *testing.T) {
	report := Compose(fixtureInputs())
	// (1.2 × 0.4 + 0.6 × -0.4) / 2
	assert.InDelta(t, 0.12, report.Sentiment.Average, 1e-9)
	assert.Equal(t, models.SentimentPositive, report.Sentiment.Category)
}

func TestComposeNilSnapshot(t *testing.T) {
	report := Compose(Inputs{Ticker: "ZZZ.NS"})

	assert.Equal(t, "ZZZ.NS", report.Ticker)
	assert.Equal(t, "Default", report.Sector)
	assert.Equal(t, 0, report.Fundamentals.Score)
	assert.Equal(t, models.ValuationUnavailable, report.Valuation.Verdict)
	assert.Nil(t, report.Valuation.IntrinsicValue)
	assert.Equal(t, models.PsychologyUnavailable, report.Psychology.State)
	assert.False(t, report.Alerts.Available)
	assert.Equal(t, models.SentimentNeutral, report.Sentiment.Category)
	assert.Equal(t, models.VerdictAvoid, report.Recommendation.Verdict)
	assert.Equal(t, 10, report.Recommendation.MarketMindScore)
	assert.Nil(t, report.Advice)

	for _, m := range report.Metrics {
		assert.Equal(t, models.NotAvailable, m.Value, m.Name)
	}
}

func TestComposeIndustryFallback(t *testing.T) {
	snap := infosysSnapshot()
	snap.Sector = "Conglomerates"
	snap.Industry = "Auto"

	report := Compose(Inputs{Ticker: "X.NS", Snapshot: snap})
	assert.Equal(t, "Auto", report.Sector)
	assert.Equal(t, "Conglomerates", report.RawSector)
}

func TestComposeUnknownSectorUsesDefault(t *testing.T) {
	snap := infosysSnapshot()
	snap.Sector = "Conglomerates"
	snap.Industry = ""

	report := Compose(Inputs{Ticker: "X.NS", Snapshot: snap})
	assert.Equal(t, "Default", report.Sector)
}

// The alert view is sliced from the psychology history by date, so a move
// confined to the last week raises an alert without changing the 30-day state.
func TestComposeAlertWindowSlicedFromHistory(t *testing.T) {
	history := flatHistory(30)
	history[27].Close = 104
	history[28].Close = 107
	history[29].Close = 110

	in := fixtureInputs()
	in.History = history
	report := Compose(in)

	require.True(t, report.Alerts.Available)
	assert.True(t, report.Alerts.PriceAlert)
	assert.False(t, report.Alerts.VolumeAlert)
	assert.Equal(t, models.PsychologyNeutral, report.Psychology.State)
}

func TestEngineUsesInjectedTables(t *testing.T) {
	tables := DefaultTables()
	tables.Outlook = recommend.NewOutlookTable(map[string]int{"IT": -200})
	engine := NewEngine(tables)

	report := engine.Compose(fixtureInputs())
	assert.Equal(t, 0, report.Recommendation.MarketMindScore)
	assert.Equal(t, models.LabelAvoid, report.Recommendation.ScoreLabel)
}

func TestEngineRecordsInjectedAssumptions(t *testing.T) {
	tables := DefaultTables()
	tables.Assumptions = fundamental.Assumptions{GrowthRate: 0.2, DiscountRate: 0.1, Years: 3}

	got := NewEngine(tables).Compose(fixtureInputs())
	require.NotNil(t, got.Valuation.ProjectedEPS)
	assert.Equal(t, 3, got.Valuation.Years)
	assert.InDelta(t, 0.2, got.Valuation.GrowthRate, 1e-12)

	def := Compose(fixtureInputs())
	assert.Equal(t, fundamental.DefaultAssumptions.Years, def.Valuation.Years)
}
