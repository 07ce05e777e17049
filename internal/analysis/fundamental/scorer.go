package fundamental

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/seenimoa/marketmind/pkg/models"
)

// Scorer evaluates a MetricReport against sector benchmarks.
type Scorer struct {
	sectors SectorTable
}

// NewScorer creates a scorer bound to the given sector table.
func NewScorer(sectors SectorTable) *Scorer {
	return &Scorer{sectors: sectors}
}

// Score counts the metrics that are present and strictly positive.
func Score(report models.MetricReport) int {
	score := 0
	for _, m := range report.Metrics() {
		if !m.Available() {
			continue
		}
		if v, ok := ExtractNumber(m.Value); ok && v > 0 {
			score++
		}
	}
	return score
}

// RiskFor maps a score to a risk level.
func RiskFor(score int) models.RiskLevel {
	switch {
	case score >= 5:
		return models.RiskLow
	case score >= 3:
		return models.RiskModerate
	default:
		return models.RiskHigh
	}
}

// Evaluate scores the report and builds the strengths/weaknesses narrative.
//
// The narrative thresholds differ from the Score rule on purpose: a ROE of
// 3% counts toward Score (it is positive) and is still listed as a weakness.
func (s *Scorer) Evaluate(report models.MetricReport, sector string) models.FundamentalAssessment {
	bench := s.sectors.Benchmark(sector)
	var strengths, weaknesses []string

	value := func(name string) (float64, bool) {
		return ExtractNumber(report.Get(name))
	}

	if pe, ok := value(models.MetricPE); ok {
		if pe > 0 {
			if pe < bench.PE {
				strengths = append(strengths, fmt.Sprintf("valuation is low vs sector avg P/E (%s < %s)", num(pe), num(bench.PE)))
			} else if pe > bench.PE {
				weaknesses = append(weaknesses, fmt.Sprintf("valuation is high vs sector avg P/E (%s > %s)", num(pe), num(bench.PE)))
			}
		} else {
			weaknesses = append(weaknesses, fmt.Sprintf("P/E ratio is invalid or negative (PE = %s)", num(pe)))
		}
	}

	if roe, ok := value(models.MetricROE); ok {
		switch {
		case roe > 0 && roe > 15:
			strengths = append(strengths, "strong return on equity (ROE > 15%)")
		case roe > 0 && roe < 5:
			weaknesses = append(weaknesses, "poor return on equity (ROE < 5%)")
		case roe <= 0:
			weaknesses = append(weaknesses, fmt.Sprintf("ROE is negative or zero (ROE = %s%%)", num(roe)))
		}
	}

	if g, ok := value(models.MetricEPSGrowth); ok {
		switch {
		case g > 0 && g > 10:
			strengths = append(strengths, "strong earnings growth")
		case g > 0 && g < 5:
			weaknesses = append(weaknesses, "low earnings growth")
		case g <= 0:
			weaknesses = append(weaknesses, fmt.Sprintf("EPS growth is negative or zero (%s%%)", num(g)))
		}
	}

	if fcf, ok := value(models.MetricFreeCashFlow); ok {
		if fcf > 0 {
			strengths = append(strengths, "positive free cash flow")
		} else {
			weaknesses = append(weaknesses, fmt.Sprintf("free cash flow is zero or negative (₹%s Cr)", num(fcf)))
		}
	}

	if margin, ok := value(models.MetricProfitMargin); ok {
		if margin >= 15 {
			strengths = append(strengths, "healthy profit margin")
		}
		if margin < 5 {
			weaknesses = append(weaknesses, "thin profit margins")
		}
	}

	if pb, ok := value(models.MetricPB); ok {
		if pb > 0 && pb < bench.PB {
			strengths = append(strengths, fmt.Sprintf("book value is attractive (PB < sector avg %s)", num(bench.PB)))
		} else if pb < 0 || pb > bench.PB*1.2 {
			weaknesses = append(weaknesses, fmt.Sprintf("PB ratio is unusually high or negative (PB = %s)", num(pb)))
		}
	}

	score := Score(report)
	risk := RiskFor(score)

	return models.FundamentalAssessment{
		Score:      score,
		Risk:       risk,
		Strengths:  strengths,
		Weaknesses: weaknesses,
		Summary:    summarize(strengths, weaknesses, risk),
	}
}

func summarize(strengths, weaknesses []string, risk models.RiskLevel) string {
	var parts []string
	if len(strengths) > 0 {
		parts = append(parts, "good fundamentals including "+strings.Join(strengths, ", ")+".")
	}
	if len(weaknesses) > 0 {
		parts = append(parts, "However, there are concerns such as "+strings.Join(weaknesses, ", ")+".")
	}

	var summary string
	switch {
	case len(strengths) == 0 && len(weaknesses) > 0:
		summary = "This stock has weak fundamentals. " + strings.Join(parts, " ")
	case len(strengths) == 0:
		summary = "This stock has limited data for evaluation."
	default:
		summary = "This stock has " + strings.Join(parts, " ")
	}

	return summary + fmt.Sprintf(" Overall risk profile appears %s based on current fundamentals.", risk)
}

// num renders a float without trailing zeros: 28 → "28", 18.5 → "18.5".
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
