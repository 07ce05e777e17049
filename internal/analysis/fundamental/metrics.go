package fundamental

import (
	"strconv"

	"github.com/seenimoa/marketmind/pkg/models"
	"github.com/seenimoa/marketmind/pkg/utils"
)

// BuildMetricReport formats the six fundamental metrics from a provider
// snapshot. Ratios reported as fractions (ROE, margin, growth) become signed
// percentages; free cash flow is shown in crores. Missing fields become N/A.
func BuildMetricReport(s *models.Snapshot) models.MetricReport {
	if s == nil {
		return models.NewMetricReport(nil)
	}

	values := map[string]string{
		models.MetricPE:           plain(s.TrailingPE),
		models.MetricROE:          percent(s.ReturnOnEquity),
		models.MetricEPSGrowth:    percent(s.EarningsGrowth),
		models.MetricFreeCashFlow: crores(s.FreeCashFlow),
		models.MetricProfitMargin: percent(s.ProfitMargin),
		models.MetricPB:           plain(s.PriceToBook),
	}
	return models.NewMetricReport(values)
}

func plain(v *float64) string {
	if v == nil {
		return models.NotAvailable
	}
	return formatNonZero(*v)
}

func percent(ratio *float64) string {
	if ratio == nil {
		return models.NotAvailable
	}
	return formatNonZero(*ratio*100) + "%"
}

func crores(v *float64) string {
	if v == nil {
		return models.NotAvailable
	}
	if cr := utils.ToCrores(*v); cr != 0 && utils.FormatCrores(*v) == utils.FormatCrores(0) {
		if cr < 0 {
			return "-₹" + formatNonZero(-cr) + " Cr"
		}
		return "₹" + formatNonZero(cr) + " Cr"
	}
	return utils.FormatCrores(*v)
}

// maxDecimals bounds the precision used to keep a tiny value from
// rendering as zero.
const maxDecimals = 12

// formatNonZero formats v with two decimals, widening the precision until a
// nonzero value no longer reads as zero.
func formatNonZero(v float64) string {
	for prec := 2; prec <= maxDecimals; prec++ {
		s := strconv.FormatFloat(v, 'f', prec, 64)
		if v == 0 {
			return s
		}
		if parsed, _ := strconv.ParseFloat(s, 64); parsed != 0 {
			return s
		}
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
