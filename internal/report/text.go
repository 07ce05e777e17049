// Package report renders analysis reports for the terminal.
package report

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/seenimoa/marketmind/internal/analysis/fundamental"
	"github.com/seenimoa/marketmind/internal/analysis/recommend"
	"github.com/seenimoa/marketmind/pkg/models"
	"github.com/seenimoa/marketmind/pkg/utils"
)

var (
	line     = strings.Repeat("═", 60)
	thinLine = strings.Repeat("─", 60)
)

// Text renders a full report. generatedAt is shown in the header in IST.
func Text(r *models.Report, generatedAt time.Time) (string, error) {
	if r == nil {
		return "", fmt.Errorf("report is nil")
	}

	var sb strings.Builder

	sb.WriteString("\n" + line + "\n")
	fmt.Fprintf(&sb, "  MarketMind: %s", r.Ticker)
	if r.Name != "" {
		fmt.Fprintf(&sb, " (%s)", r.Name)
	}
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "  Generated: %s\n", utils.FormatDateTimeIST(generatedAt))
	sb.WriteString(line + "\n")

	fmt.Fprintf(&sb, "  %s Sector: %s", r.SectorIcon, r.Sector)
	if r.RawSector != "" && r.RawSector != r.Sector {
		fmt.Fprintf(&sb, " (%s)", r.RawSector)
	}
	sb.WriteString("\n")

	writeFundamentals(&sb, r)
	writeValuation(&sb, r.Valuation)
	writePsychology(&sb, r.Psychology)
	writeAlerts(&sb, r.Alerts)
	writeSentiment(&sb, r.Sentiment)
	writeRecommendation(&sb, r.Recommendation)
	if r.Advice != nil {
		writeAdvice(&sb, *r.Advice)
	}

	sb.WriteString("\n" + line + "\n")
	sb.WriteString("  Disclaimer: heuristic scores for educational purposes.\n")
	sb.WriteString("  Not financial advice. Always consult a SEBI-registered advisor.\n")
	sb.WriteString(line + "\n")

	return sb.String(), nil
}

// AlertsText renders only the short-term alert view.
func AlertsText(ticker string, a models.ShortTermAlerts) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "\n  %s\n", ticker)
	writeAlerts(&sb, a)
	return sb.String()
}

// MetricIcon marks a formatted metric value: ✅ when it is a percentage or
// crore amount without a minus sign, or when its numeric value is positive.
func MetricIcon(value string) string {
	noMinus := !strings.Contains(value, "-")
	if (strings.Contains(value, "%") && noMinus) || (strings.Contains(value, "Cr") && noMinus) {
		return "✅"
	}
	if v, ok := fundamental.ExtractNumber(value); ok && v > 0 {
		return "✅"
	}
	return "❌"
}

func writeFundamentals(sb *strings.Builder, r *models.Report) {
	sb.WriteString("\n  ■ FUNDAMENTAL REPORT\n")
	for _, m := range r.Metrics {
		if !m.Available() {
			continue
		}
		fmt.Fprintf(sb, "    %-16s %s %s\n", m.Name+":", m.Value, MetricIcon(m.Value))
	}
	fmt.Fprintf(sb, "\n  Final Score: %d/6 | Risk: %s\n", r.Fundamentals.Score, r.Fundamentals.Risk)
	fmt.Fprintf(sb, "  %s\n", r.Fundamentals.Summary)
	sb.WriteString(thinLine + "\n")
}

func writeValuation(sb *strings.Builder, v models.ValuationResult) {
	sb.WriteString("\n  ■ VALUATION\n")
	if v.Verdict == models.ValuationUnavailable {
		sb.WriteString("  Valuation Verdict: N/A (missing EPS or price)\n")
		sb.WriteString(thinLine + "\n")
		return
	}

	fmt.Fprintf(sb, "  Projected EPS (%dyr @ %s%%): %s\n", v.Years, pct(v.GrowthRate), utils.FormatINR(deref(v.ProjectedEPS)))
	fmt.Fprintf(sb, "  Intrinsic Value (discounted): %s\n", utils.FormatINR(deref(v.IntrinsicValue)))
	fmt.Fprintf(sb, "  Current Price: %s\n", utils.FormatINR(deref(v.CurrentPrice)))
	fmt.Fprintf(sb, "  Valuation Verdict: %s\n", valuationLabel(v.Verdict))
	for _, f := range v.Flags {
		fmt.Fprintf(sb, "  ⚠️ %s\n", flagLabel(f))
	}
	sb.WriteString(thinLine + "\n")
}

func writePsychology(sb *strings.Builder, p models.Psychology) {
	sb.WriteString("\n  ■ MARKET PSYCHOLOGY (30d)\n")
	fmt.Fprintf(sb, "  %s\n", psychologyLabel(p.State))
	if p.State != models.PsychologyUnavailable {
		fmt.Fprintf(sb, "  Price change: %s | Volume ratio: %.2fx\n", utils.FormatPct(p.PriceChangePct), p.VolumeRatio)
	}
	sb.WriteString(thinLine + "\n")
}

func writeAlerts(sb *strings.Builder, a models.ShortTermAlerts) {
	sb.WriteString("\n  ■ SHORT-TERM ALERTS (7d)\n")
	if !a.Available {
		sb.WriteString("  ⚠️ No price data available\n")
		sb.WriteString(thinLine + "\n")
		return
	}
	fmt.Fprintf(sb, "  Price change: %s | Volume ratio: %.2fx\n", utils.FormatPct(a.PriceChangePct), a.VolumeRatio)
	if a.PriceAlert {
		sb.WriteString("  🚨 Price moved more than 7% this week\n")
	}
	if a.VolumeAlert {
		sb.WriteString("  📢 Volume spike above 1.5x the weekly average\n")
	}
	if !a.PriceAlert && !a.VolumeAlert {
		sb.WriteString("  No alerts\n")
	}
	sb.WriteString(thinLine + "\n")
}

func writeSentiment(sb *strings.Builder, s models.SentimentResult) {
	sb.WriteString("\n  ■ NEWS SENTIMENT\n")
	if len(s.Headlines) == 0 {
		sb.WriteString("  Sentiment: 🟡 Neutral (no major news found)\n")
		sb.WriteString(thinLine + "\n")
		return
	}
	fmt.Fprintf(sb, "  Sentiment: %s (avg %.2f)\n", sentimentLabel(s.Category), s.Average)
	sb.WriteString("  Recent headlines:\n")
	for _, h := range s.Headlines {
		fmt.Fprintf(sb, "    - %s\n", h)
	}
	sb.WriteString(thinLine + "\n")
}

func writeRecommendation(sb *strings.Builder, r models.Recommendation) {
	sb.WriteString("\n  ★ BUY RECOMMENDATION\n")
	fmt.Fprintf(sb, "  %s\n", verdictLabel(r.Verdict))
	fmt.Fprintf(sb, "  MarketMind Score: %d/100 (%s)\n", r.MarketMindScore, r.ScoreLabel)
	sb.WriteString(thinLine + "\n")
}

func writeAdvice(sb *strings.Builder, a models.Advice) {
	sb.WriteString("\n  ■ INVESTOR ADVICE\n")
	fmt.Fprintf(sb, "  🎯 Investor Profile: %s Risk | %s\n", a.Profile.Risk, a.Profile.Horizon)
	fmt.Fprintf(sb, "  Buy Score: %d/100\n", a.BuyScore)
	if a.ShortTerm == recommend.ShortTermRisky {
		sb.WriteString("  • Short-term: ⚠️ Risky due to overvaluation or weak momentum\n")
	} else {
		sb.WriteString("  • Short-term: ✅ Solid opportunity\n")
	}
	if a.LongTerm == recommend.LongTermStrongPick {
		sb.WriteString("  • Long-term: ✅ Strong pick with solid fundamentals\n")
	} else {
		sb.WriteString("  • Long-term: ⚠️ Only consider if buying for long horizon\n")
	}
	sb.WriteString(thinLine + "\n")
}

func valuationLabel(v models.ValuationVerdict) string {
	switch v {
	case models.Undervalued:
		return "✅ Undervalued"
	case models.Overvalued:
		return "❌ Overvalued"
	default:
		return "N/A"
	}
}

func flagLabel(f models.ValuationFlag) string {
	switch f {
	case models.FlagTooOptimistic:
		return "Intrinsic value is over 5x the price; growth assumptions may be too optimistic"
	case models.FlagPossibleMispricing:
		return "Intrinsic value is under 0.3x the price; possible mispricing or data error"
	default:
		return string(f)
	}
}

func psychologyLabel(s models.PsychologyState) string {
	switch s {
	case models.PsychologyFOMO:
		return "🚀 FOMO building (high volume & price surge)"
	case models.PsychologyPanicSelling:
		return "😨 Panic selling detected"
	case models.PsychologyHighActivity:
		return "🔥 High activity, watch closely"
	case models.PsychologyNeutral:
		return "🟡 Sideways/neutral sentiment"
	default:
		return "⚠️ No price data available"
	}
}

func sentimentLabel(c models.SentimentCategory) string {
	switch c {
	case models.SentimentPositive:
		return "🟢 Positive sentiment"
	case models.SentimentNegative:
		return "🔴 Negative sentiment"
	default:
		return "🟡 Neutral sentiment"
	}
}

func verdictLabel(v models.Verdict) string {
	switch v {
	case models.VerdictStrongBuy:
		return "✅ Strong Buy: Undervalued with solid fundamentals and positive sentiment."
	case models.VerdictLikelyBuy:
		return "✅ Likely Buy: Good fundamentals, undervaluation detected."
	case models.VerdictGrowthCandidate:
		return "💡 Consider for Growth Portfolio: Strong fundamentals but currently expensive."
	case models.VerdictWatch:
		return "⚠️ Watch: Fundamentals are average. Further confirmation needed."
	default:
		return "❌ Avoid: Weak fundamentals or high valuation."
	}
}

// pct renders a growth ratio as a percentage without trailing zeros.
func pct(ratio float64) string {
	return strconv.FormatFloat(math.Round(ratio*10000)/100, 'f', -1, 64)
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
