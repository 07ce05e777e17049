package models

// NotAvailable is the marker used in a MetricReport for a missing value.
const NotAvailable = "N/A"

// Metric names, in report order.
const (
	MetricPE           = "PE Ratio"
	MetricROE          = "ROE"
	MetricEPSGrowth    = "EPS Growth"
	MetricFreeCashFlow = "Free Cash Flow"
	MetricProfitMargin = "Profit Margin"
	MetricPB           = "PB Ratio"
)

// MetricNames lists the six fundamental metrics in their fixed report order.
var MetricNames = []string{
	MetricPE, MetricROE, MetricEPSGrowth, MetricFreeCashFlow, MetricProfitMargin, MetricPB,
}

// Metric is a single formatted entry of a MetricReport.
type Metric struct {
	Name  string `json:"name"`
	Value string `json:"value"` // formatted value or NotAvailable
}

// Available reports whether the metric carries a value.
func (m Metric) Available() bool {
	return m.Value != "" && m.Value != NotAvailable
}

// MetricReport is the ordered set of formatted fundamental metrics for one
// analysis run. It is built once and never modified.
type MetricReport struct {
	metrics []Metric
}

// NewMetricReport builds a report from name → value pairs. Names not present
// in values are recorded as NotAvailable, and unknown names are ignored.
func NewMetricReport(values map[string]string) MetricReport {
	metrics := make([]Metric, 0, len(MetricNames))
	for _, name := range MetricNames {
		v, ok := values[name]
		if !ok || v == "" {
			v = NotAvailable
		}
		metrics = append(metrics, Metric{Name: name, Value: v})
	}
	return MetricReport{metrics: metrics}
}

// Metrics returns a copy of the report entries in order.
func (r MetricReport) Metrics() []Metric {
	out := make([]Metric, len(r.metrics))
	copy(out, r.metrics)
	return out
}

// Get returns the formatted value for name, or NotAvailable.
func (r MetricReport) Get(name string) string {
	for _, m := range r.metrics {
		if m.Name == name {
			return m.Value
		}
	}
	return NotAvailable
}

// SectorBenchmark holds the sector-average multiples used for comparison.
type SectorBenchmark struct {
	PE float64 `json:"pe"`
	PB float64 `json:"pb"`
}

// RiskLevel is the qualitative risk derived from the fundamental score.
type RiskLevel string

const (
	RiskLow      RiskLevel = "Low"
	RiskModerate RiskLevel = "Moderate"
	RiskHigh     RiskLevel = "High"
)

// FundamentalAssessment is the output of the fundamental scorer.
type FundamentalAssessment struct {
	Score      int       `json:"score"` // 0..6
	Risk       RiskLevel `json:"risk"`
	Strengths  []string  `json:"strengths"`
	Weaknesses []string  `json:"weaknesses"`
	Summary    string    `json:"summary"`
}

// ValuationVerdict is the outcome of the discounted-earnings estimate.
type ValuationVerdict string

const (
	Undervalued          ValuationVerdict = "Undervalued"
	Overvalued           ValuationVerdict = "Overvalued"
	ValuationUnavailable ValuationVerdict = "Unavailable"
)

// ValuationFlag is an advisory hint about the valuation assumptions.
type ValuationFlag string

const (
	FlagTooOptimistic      ValuationFlag = "too_optimistic"
	FlagPossibleMispricing ValuationFlag = "possible_mispricing"
)

// ValuationResult holds the intrinsic value estimate. Numeric fields are nil
// when the verdict is ValuationUnavailable.
type ValuationResult struct {
	ProjectedEPS   *float64         `json:"projected_eps,omitempty"`
	IntrinsicValue *float64         `json:"intrinsic_value,omitempty"`
	CurrentPrice   *float64         `json:"current_price,omitempty"`
	Verdict        ValuationVerdict `json:"verdict"`
	Flags          []ValuationFlag  `json:"flags,omitempty"`

	// Projection inputs behind ProjectedEPS; zero when Unavailable.
	GrowthRate float64 `json:"growth_rate,omitempty"`
	Years      int     `json:"years,omitempty"`
}

// SentimentCategory is the aggregate polarity of recent headlines.
type SentimentCategory string

const (
	SentimentPositive SentimentCategory = "Positive"
	SentimentNegative SentimentCategory = "Negative"
	SentimentNeutral  SentimentCategory = "Neutral"
)

// SentimentResult is the output of the news sentiment aggregator.
type SentimentResult struct {
	Category  SentimentCategory `json:"category"`
	Average   float64           `json:"average"`
	Headlines []string          `json:"headlines"`
}

// PsychologyState describes short-term price/volume behaviour.
type PsychologyState string

const (
	PsychologyFOMO         PsychologyState = "FOMO"
	PsychologyPanicSelling PsychologyState = "PanicSelling"
	PsychologyHighActivity PsychologyState = "HighActivity"
	PsychologyNeutral      PsychologyState = "Neutral"
	PsychologyUnavailable  PsychologyState = "Unavailable"
)

// Psychology is the classified state plus the measurements behind it.
type Psychology struct {
	State          PsychologyState `json:"state"`
	PriceChangePct float64         `json:"price_change_pct"`
	VolumeRatio    float64         `json:"volume_ratio"`
}

// ShortTermAlerts is the 7-day price and volume alert view.
type ShortTermAlerts struct {
	Available      bool    `json:"available"`
	PriceChangePct float64 `json:"price_change_pct"`
	VolumeRatio    float64 `json:"volume_ratio"`
	PriceAlert     bool    `json:"price_alert"`
	VolumeAlert    bool    `json:"volume_alert"`
}

// Verdict is the categorical recommendation.
type Verdict string

const (
	VerdictStrongBuy       Verdict = "StrongBuy"
	VerdictLikelyBuy       Verdict = "LikelyBuy"
	VerdictGrowthCandidate Verdict = "GrowthCandidate"
	VerdictWatch           Verdict = "Watch"
	VerdictAvoid           Verdict = "Avoid"
)

// ScoreLabel is the label attached to the numeric MarketMind Score.
type ScoreLabel string

const (
	LabelBuy   ScoreLabel = "Buy"
	LabelWatch ScoreLabel = "Watch"
	LabelAvoid ScoreLabel = "Avoid"
)

// Recommendation carries both the categorical verdict and the numeric
// MarketMind Score. The two are computed independently and may disagree.
type Recommendation struct {
	Verdict         Verdict    `json:"verdict"`
	MarketMindScore int        `json:"marketmind_score"` // 0..100
	ScoreLabel      ScoreLabel `json:"score_label"`
}

// InvestorProfile describes the investor's risk appetite and horizon.
type InvestorProfile struct {
	Risk    string `json:"risk"`    // "Low", "Medium", "High"
	Horizon string `json:"horizon"` // "1 Year", "3+ Years", ...
}

// Advice is the investor-profile buy score with short- and long-term guidance.
type Advice struct {
	Profile   InvestorProfile `json:"profile"`
	BuyScore  int             `json:"buy_score"`
	ShortTerm string          `json:"short_term"`
	LongTerm  string          `json:"long_term"`
}

// Report is the complete result of one analysis run.
type Report struct {
	Ticker         string                `json:"ticker"`
	Name           string                `json:"name,omitempty"`
	RawSector      string                `json:"raw_sector,omitempty"`
	Sector         string                `json:"sector"`
	SectorIcon     string                `json:"sector_icon"`
	Metrics        []Metric              `json:"metrics"`
	Fundamentals   FundamentalAssessment `json:"fundamentals"`
	Valuation      ValuationResult       `json:"valuation"`
	Psychology     Psychology            `json:"psychology"`
	Alerts         ShortTermAlerts       `json:"alerts"`
	Sentiment      SentimentResult       `json:"sentiment"`
	Recommendation Recommendation        `json:"recommendation"`
	Advice         *Advice               `json:"advice,omitempty"`
}
