package fundamental

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seenimoa/marketmind/pkg/models"
)

func TestExtractNumber(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"12.5%", 12.5, true},
		{"-3.2 Cr", -3.2, true},
		{"₹1,234.50 Cr", 1234.5, true},
		{"-₹3.20 Cr", -3.2, true},
		{"28", 28, true},
		{"N/A", 0, false},
		{"", 0, false},
		{".", 0, false},
		{"-", 0, false},
		{"-.", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"12-3", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ExtractNumber(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	table := DefaultSectorTable()
	tests := map[string]string{
		"Financial Services":     SectorBanking,
		"Information Technology": SectorIT,
		"Technology":             SectorIT,
		"consumer defensive":     SectorFMCG,
		"Consumer Cyclical":      SectorAuto,
		"Utilities":              SectorUtilities,
		"Industrials":            SectorAuto,
		"Healthcare":             DefaultSector,
		"":                       DefaultSector,
		"Martian Mining":         DefaultSector,
	}
	for raw, want := range tests {
		assert.Equal(t, want, table.Classify(raw), "Classify(%q)", raw)
	}
}

func TestSectorTableCoversClassifierRange(t *testing.T) {
	table := DefaultSectorTable()
	sectors := map[string]bool{}
	for _, s := range table.Sectors() {
		sectors[s] = true
	}
	for _, s := range table.labels {
		assert.True(t, sectors[s], "classifier output %q has no benchmark", s)
	}
	assert.True(t, sectors[DefaultSector])
}

func TestSectorsSorted(t *testing.T) {
	table := DefaultSectorTable()
	want := []string{SectorAuto, SectorBanking, DefaultSector, SectorFMCG, SectorIT, SectorUtilities}
	for i := 0; i < 5; i++ {
		assert.Equal(t, want, table.Sectors())
	}
}

func TestBenchmarkFallsBackToDefault(t *testing.T) {
	table := DefaultSectorTable()
	assert.Equal(t, models.SectorBenchmark{PE: 15, PB: 2.5}, table.Benchmark(SectorBanking))
	assert.Equal(t, models.SectorBenchmark{PE: 25, PB: 3}, table.Benchmark("Pharma"))
	assert.Equal(t, "🏢", table.Icon("Pharma"))
}

func TestBuildMetricReport(t *testing.T) {
	snap := &models.Snapshot{
		TrailingPE:     models.Float(24.5),
		ReturnOnEquity: models.Float(0.1834),
		ProfitMargin:   models.Float(-0.021),
		PriceToBook:    models.Float(7.1),
		FreeCashFlow:   models.Float(1234500000),
	}
	report := BuildMetricReport(snap)

	assert.Equal(t, "24.50", report.Get(models.MetricPE))
	assert.Equal(t, "18.34%", report.Get(models.MetricROE))
	assert.Equal(t, models.NotAvailable, report.Get(models.MetricEPSGrowth))
	assert.Equal(t, "₹123.45 Cr", report.Get(models.MetricFreeCashFlow))
	assert.Equal(t, "-2.10%", report.Get(models.MetricProfitMargin), "percent metrics keep their sign")
	assert.Equal(t, "7.10", report.Get(models.MetricPB))

	names := make([]string, 0, 6)
	for _, m := range report.Metrics() {
		names = append(names, m.Name)
	}
	assert.Equal(t, models.MetricNames, names)
}

func TestBuildMetricReportNil(t *testing.T) {
	report := BuildMetricReport(nil)
	for _, m := range report.Metrics() {
		assert.Equal(t, models.NotAvailable, m.Value)
	}
}

// Tiny positive values must not round to zero and be scored as weaknesses.
func TestBuildMetricReportKeepsTinyValues(t *testing.T) {
	snap := &models.Snapshot{
		TrailingPE:     models.Float(0.004),
		ReturnOnEquity: models.Float(0.00004),
		FreeCashFlow:   models.Float(40000),
	}
	report := BuildMetricReport(snap)

	assert.Equal(t, "0.004", report.Get(models.MetricPE))
	assert.Equal(t, "0.004%", report.Get(models.MetricROE))
	assert.Equal(t, "₹0.004 Cr", report.Get(models.MetricFreeCashFlow))
	assert.Equal(t, 3, Score(report))

	got := NewScorer(DefaultSectorTable()).Evaluate(report, SectorIT)
	for _, w := range got.Weaknesses {
		assert.NotContains(t, w, "zero")
		assert.NotContains(t, w, "invalid")
	}

	neg := BuildMetricReport(&models.Snapshot{FreeCashFlow: models.Float(-40000)})
	assert.Equal(t, "-₹0.004 Cr", neg.Get(models.MetricFreeCashFlow))

	zero := BuildMetricReport(&models.Snapshot{TrailingPE: models.Float(0), FreeCashFlow: models.Float(0)})
	assert.Equal(t, "0.00", zero.Get(models.MetricPE))
	assert.Equal(t, "₹0.00 Cr", zero.Get(models.MetricFreeCashFlow))
}

func allPositiveReport() models.MetricReport {
	return models.NewMetricReport(map[string]string{
		models.MetricPE:           "18.00",
		models.MetricROE:          "22.00%",
		models.MetricEPSGrowth:    "14.00%",
		models.MetricFreeCashFlow: "₹500.00 Cr",
		models.MetricProfitMargin: "19.00%",
		models.MetricPB:           "2.00",
	})
}

func TestEvaluateAllPositive(t *testing.T) {
	s := NewScorer(DefaultSectorTable())
	a := s.Evaluate(allPositiveReport(), DefaultSector)

	assert.Equal(t, 6, a.Score)
	assert.Equal(t, models.RiskLow, a.Risk)
	assert.Empty(t, a.Weaknesses)
	assert.Len(t, a.Strengths, 6)
	assert.Contains(t, a.Summary, "This stock has good fundamentals including valuation is low vs sector avg P/E (18 < 25)")
	assert.NotContains(t, a.Summary, "However")
	assert.Contains(t, a.Summary, "Overall risk profile appears Low based on current fundamentals.")
}

func TestEvaluateAllMissing(t *testing.T) {
	s := NewScorer(DefaultSectorTable())
	a := s.Evaluate(models.NewMetricReport(nil), DefaultSector)

	assert.Equal(t, 0, a.Score)
	assert.Equal(t, models.RiskHigh, a.Risk)
	assert.Equal(t,
		"This stock has limited data for evaluation. Overall risk profile appears High based on current fundamentals.",
		a.Summary)
}

func TestEvaluateOnlyWeaknesses(t *testing.T) {
	s := NewScorer(DefaultSectorTable())
	report := models.NewMetricReport(map[string]string{
		models.MetricPE:           "-4.00",
		models.MetricROE:          "-2.00%",
		models.MetricFreeCashFlow: "-₹3.20 Cr",
	})
	a := s.Evaluate(report, DefaultSector)

	assert.Equal(t, 0, a.Score)
	assert.Equal(t, []string{
		"P/E ratio is invalid or negative (PE = -4)",
		"ROE is negative or zero (ROE = -2%)",
		"free cash flow is zero or negative (₹-3.2 Cr)",
	}, a.Weaknesses)
	assert.Equal(t,
		"This stock has weak fundamentals. However, there are concerns such as "+
			"P/E ratio is invalid or negative (PE = -4), ROE is negative or zero (ROE = -2%), "+
			"free cash flow is zero or negative (₹-3.2 Cr). Overall risk profile appears High based on current fundamentals.",
		a.Summary)
}

// A low but positive ROE counts toward Score and is still a weakness; the
// two rules use different thresholds and must not be merged.
func TestScoreAndNarrativeThresholdsDiverge(t *testing.T) {
	s := NewScorer(DefaultSectorTable())
	report := models.NewMetricReport(map[string]string{
		models.MetricROE:          "3.00%",
		models.MetricEPSGrowth:    "2.00%",
		models.MetricProfitMargin: "4.00%",
	})
	a := s.Evaluate(report, DefaultSector)

	assert.Equal(t, 3, a.Score)
	assert.Equal(t, models.RiskModerate, a.Risk)
	assert.ElementsMatch(t, []string{
		"poor return on equity (ROE < 5%)",
		"low earnings growth",
		"thin profit margins",
	}, a.Weaknesses)

	negative := models.NewMetricReport(map[string]string{models.MetricProfitMargin: "-6.00%"})
	b := s.Evaluate(negative, DefaultSector)
	assert.Equal(t, 0, b.Score, "negative percentage is excluded from Score")
	assert.Equal(t, []string{"thin profit margins"}, b.Weaknesses)
}

func TestEvaluateMiddleBandsAreSilent(t *testing.T) {
	s := NewScorer(DefaultSectorTable())
	report := models.NewMetricReport(map[string]string{
		models.MetricPE:           "25",
		models.MetricROE:          "10%",
		models.MetricEPSGrowth:    "7%",
		models.MetricProfitMargin: "10%",
		models.MetricPB:           "3.3",
	})
	a := s.Evaluate(report, DefaultSector)
	assert.Equal(t, 5, a.Score)
	assert.Empty(t, a.Strengths)
	assert.Empty(t, a.Weaknesses)
}

func TestEvaluateSectorBenchmarks(t *testing.T) {
	s := NewScorer(DefaultSectorTable())
	report := models.NewMetricReport(map[string]string{
		models.MetricPE: "30",
		models.MetricPB: "5",
	})

	it := s.Evaluate(report, SectorIT)
	assert.Equal(t, []string{"book value is attractive (PB < sector avg 6)"}, it.Strengths)
	assert.Equal(t, []string{"valuation is high vs sector avg P/E (30 > 28)"}, it.Weaknesses)

	banking := s.Evaluate(report, SectorBanking)
	assert.Contains(t, banking.Weaknesses, "valuation is high vs sector avg P/E (30 > 15)")
	assert.Contains(t, banking.Weaknesses, "PB ratio is unusually high or negative (PB = 5)")
}

func TestRiskFor(t *testing.T) {
	assert.Equal(t, models.RiskLow, RiskFor(6))
	assert.Equal(t, models.RiskLow, RiskFor(5))
	assert.Equal(t, models.RiskModerate, RiskFor(4))
	assert.Equal(t, models.RiskModerate, RiskFor(3))
	assert.Equal(t, models.RiskHigh, RiskFor(2))
	assert.Equal(t, models.RiskHigh, RiskFor(0))
}

func TestEstimateValuation(t *testing.T) {
	v := EstimateValuation(models.Float(100), models.Float(1000), 15)

	require.NotNil(t, v.ProjectedEPS)
	require.NotNil(t, v.IntrinsicValue)
	require.NotNil(t, v.CurrentPrice)
	assert.InDelta(t, 100*math.Pow(1.15, 5), *v.ProjectedEPS, 1e-9)
	assert.InDelta(t, 201.1357, *v.ProjectedEPS, 1e-3)
	assert.InDelta(t, 1873.34, *v.IntrinsicValue, 0.01)
	assert.Equal(t, 1000.0, *v.CurrentPrice)
	assert.Equal(t, models.Undervalued, v.Verdict)
	assert.Empty(t, v.Flags)
}

func TestEstimatorRecordsAssumptions(t *testing.T) {
	e := NewEstimator(Assumptions{GrowthRate: 0.12, DiscountRate: 0.08, Years: 3})
	v := e.Estimate(models.Float(50), models.Float(400), 20)
	assert.Equal(t, 3, v.Years)
	assert.InDelta(t, 0.12, v.GrowthRate, 1e-12)
	assert.InDelta(t, 50*math.Pow(1.12, 3), *v.ProjectedEPS, 1e-9)

	none := e.Estimate(nil, models.Float(400), 20)
	assert.Zero(t, none.Years)
	assert.Zero(t, none.GrowthRate)
}

func TestEstimateValuationOvervalued(t *testing.T) {
	v := EstimateValuation(models.Float(10), models.Float(500), 25)
	assert.Equal(t, models.Overvalued, v.Verdict)
	assert.Empty(t, v.Flags)
}

func TestEstimateValuationUnavailable(t *testing.T) {
	cases := []struct {
		name       string
		eps, price *float64
	}{
		{"missing eps", nil, models.Float(1000)},
		{"missing price", models.Float(100), nil},
		{"both missing", nil, nil},
		{"zero eps", models.Float(0), models.Float(1000)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			v := EstimateValuation(c.eps, c.price, 25)
			assert.Equal(t, models.ValuationUnavailable, v.Verdict)
			assert.Nil(t, v.ProjectedEPS)
			assert.Nil(t, v.IntrinsicValue)
			assert.Nil(t, v.CurrentPrice)
			assert.Empty(t, v.Flags)
		})
	}
}

func TestEstimateValuationFlags(t *testing.T) {
	// intrinsic ≈ 100 × 2.0114 × 25 / 1.6105 ≈ 3122 vs price 500 → > 5×.
	optimistic := EstimateValuation(models.Float(100), models.Float(500), 25)
	assert.Equal(t, []models.ValuationFlag{models.FlagTooOptimistic}, optimistic.Flags)
	assert.Equal(t, models.Undervalued, optimistic.Verdict, "flags never change the verdict")

	// intrinsic ≈ 31.2 vs price 1000 → < 0.3×.
	cheap := EstimateValuation(models.Float(1), models.Float(1000), 25)
	assert.Equal(t, []models.ValuationFlag{models.FlagPossibleMispricing}, cheap.Flags)
	assert.Equal(t, models.Overvalued, cheap.Verdict)
}
