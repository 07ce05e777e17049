// Package recommend combines the per-signal results into a categorical
// verdict, the numeric MarketMind Score and profile-based advice.
package recommend

import (
	"github.com/seenimoa/marketmind/internal/analysis/fundamental"
	"github.com/seenimoa/marketmind/pkg/models"
)

// Verdict returns the categorical recommendation. The first matching rule
// wins. A nil sentiment is treated as not Positive.
func Verdict(score int, valuation models.ValuationVerdict, sentiment *models.SentimentResult) models.Verdict {
	positive := sentiment != nil && sentiment.Category == models.SentimentPositive

	switch {
	case score >= 5 && valuation == models.Undervalued && positive:
		return models.VerdictStrongBuy
	case score >= 4 && valuation == models.Undervalued:
		return models.VerdictLikelyBuy
	case score >= 4 && valuation == models.Overvalued:
		return models.VerdictGrowthCandidate
	case score >= 3:
		return models.VerdictWatch
	default:
		return models.VerdictAvoid
	}
}

// OutlookTable maps a canonical sector to a score adjustment. Sectors not
// in the table adjust by 0.
type OutlookTable struct {
	adjustments map[string]int
}

// NewOutlookTable copies adjustments into a new table.
func NewOutlookTable(adjustments map[string]int) OutlookTable {
	m := make(map[string]int, len(adjustments))
	for k, v := range adjustments {
		m[k] = v
	}
	return OutlookTable{adjustments: m}
}

// DefaultOutlookTable returns the built-in sector outlook.
func DefaultOutlookTable() OutlookTable {
	return NewOutlookTable(map[string]int{
		fundamental.SectorIT:        5,
		fundamental.SectorBanking:   3,
		fundamental.SectorFMCG:      2,
		fundamental.SectorAuto:      0,
		fundamental.SectorUtilities: -2,
		fundamental.DefaultSector:   0,
	})
}

// Adjustment returns the outlook adjustment for sector.
func (t OutlookTable) Adjustment(sector string) int {
	return t.adjustments[sector]
}

// Score thresholds and weights.
const (
	scorePerMetric      = 15
	undervaluedBonus    = 25
	otherValuationBonus = 10
	buyLabelThreshold   = 80
	watchLabelThreshold = 60
	maxMarketMindScore  = 100
)

// MarketMindScore computes the 0..100 score and its label:
//
//	base     = score×15 + (25 if Undervalued else 10)
//	adjusted = clamp(base + outlook[sector], 0, 100)
//
// It is independent of Verdict and the two may disagree.
func MarketMindScore(score int, valuation models.ValuationVerdict, sector string, outlook OutlookTable) (int, models.ScoreLabel) {
	base := score * scorePerMetric
	if valuation == models.Undervalued {
		base += undervaluedBonus
	} else {
		base += otherValuationBonus
	}

	adjusted := clamp(base+outlook.Adjustment(sector), 0, maxMarketMindScore)
	return adjusted, Label(adjusted)
}

// Label maps a MarketMind Score to Buy (>=80), Watch (>=60) or Avoid.
func Label(score int) models.ScoreLabel {
	switch {
	case score >= buyLabelThreshold:
		return models.LabelBuy
	case score >= watchLabelThreshold:
		return models.LabelWatch
	default:
		return models.LabelAvoid
	}
}

// Recommend computes both the verdict and the MarketMind Score.
func Recommend(score int, valuation models.ValuationVerdict, sentiment *models.SentimentResult, sector string, outlook OutlookTable) models.Recommendation {
	mms, label := MarketMindScore(score, valuation, sector, outlook)
	return models.Recommendation{
		Verdict:         Verdict(score, valuation, sentiment),
		MarketMindScore: mms,
		ScoreLabel:      label,
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
