package analyzer

import (
	"github.com/seenimoa/marketmind/internal/analysis/fundamental"
	"github.com/seenimoa/marketmind/internal/analysis/recommend"
	"github.com/seenimoa/marketmind/internal/analysis/sentiment"
	"github.com/seenimoa/marketmind/internal/analysis/technical"
	"github.com/seenimoa/marketmind/pkg/models"
)

// DefaultAlertWindowDays is the trailing window of the short-term alerts.
const DefaultAlertWindowDays = 7

// Inputs are the frozen provider results one report is composed from.
type Inputs struct {
	Ticker    string
	Snapshot  *models.Snapshot
	History   []models.PricePoint // psychology window, oldest first
	Headlines []string
	Profile   *models.InvestorProfile // nil skips the advice section

	// AlertWindowDays slices the alert view out of History. Zero means
	// DefaultAlertWindowDays.
	AlertWindowDays int
}

// Tables are the fixed lookup tables and assumptions the engine runs with.
type Tables struct {
	Sectors     fundamental.SectorTable
	Assumptions fundamental.Assumptions
	Keywords    sentiment.Keywords
	Outlook     recommend.OutlookTable
	Polarity    sentiment.PolarityAnalyzer // nil uses the built-in lexicon
}

// DefaultTables returns the built-in tables.
func DefaultTables() Tables {
	return Tables{
		Sectors:     fundamental.DefaultSectorTable(),
		Assumptions: fundamental.DefaultAssumptions,
		Keywords:    sentiment.DefaultKeywords(),
		Outlook:     recommend.DefaultOutlookTable(),
	}
}

// Engine composes reports. It holds no mutable state and is safe for
// concurrent use.
type Engine struct {
	sectors    fundamental.SectorTable
	scorer     *fundamental.Scorer
	estimator  *fundamental.Estimator
	aggregator *sentiment.Aggregator
	outlook    recommend.OutlookTable
}

// NewEngine creates an engine bound to t.
func NewEngine(t Tables) *Engine {
	return &Engine{
		sectors:    t.Sectors,
		scorer:     fundamental.NewScorer(t.Sectors),
		estimator:  fundamental.NewEstimator(t.Assumptions),
		aggregator: sentiment.NewAggregator(t.Keywords, t.Polarity),
		outlook:    t.Outlook,
	}
}

var defaultEngine = NewEngine(DefaultTables())

// Compose builds a report from in using the default tables.
func Compose(in Inputs) models.Report {
	return defaultEngine.Compose(in)
}

// Compose builds a report from in. It reads no clock and draws no random
// numbers, so equal inputs always give equal reports.
func (e *Engine) Compose(in Inputs) models.Report {
	snap := in.Snapshot
	if snap == nil {
		snap = &models.Snapshot{Ticker: in.Ticker}
	}

	metrics := fundamental.BuildMetricReport(snap)
	sector := e.classify(snap)
	fundamentals := e.scorer.Evaluate(metrics, sector)
	valuation := e.estimator.Estimate(snap.TrailingEPS, snap.CurrentPrice, e.sectors.Benchmark(sector).PE)

	alertDays := in.AlertWindowDays
	if alertDays <= 0 {
		alertDays = DefaultAlertWindowDays
	}

	news := e.aggregator.Aggregate(in.Headlines)

	report := models.Report{
		Ticker:         in.Ticker,
		Name:           snap.Name,
		RawSector:      snap.Sector,
		Sector:         sector,
		SectorIcon:     e.sectors.Icon(sector),
		Metrics:        metrics.Metrics(),
		Fundamentals:   fundamentals,
		Valuation:      valuation,
		Psychology:     technical.ClassifyPsychology(in.History),
		Alerts:         technical.ShortTermAlerts(technical.TrailingWindow(in.History, alertDays)),
		Sentiment:      news,
		Recommendation: recommend.Recommend(fundamentals.Score, valuation.Verdict, &news, sector, e.outlook),
	}

	if in.Profile != nil {
		advice := recommend.Advise(fundamentals.Score, valuation.Verdict, *in.Profile)
		report.Advice = &advice
	}
	return report
}

// classify maps the raw sector label, falling back to the industry label
// when the sector alone is not recognised.
func (e *Engine) classify(snap *models.Snapshot) string {
	sector := e.sectors.Classify(snap.Sector)
	if sector == fundamental.DefaultSector && snap.Industry != "" {
		sector = e.sectors.Classify(snap.Industry)
	}
	return sector
}
