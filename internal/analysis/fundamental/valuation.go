package fundamental

import (
	"math"

	"github.com/seenimoa/marketmind/pkg/models"
)

// Assumptions are the fixed inputs of the discounted-earnings estimate.
type Assumptions struct {
	GrowthRate   float64 // annual EPS growth (decimal, e.g., 0.15)
	DiscountRate float64 // annual discount rate (decimal, e.g., 0.10)
	Years        int     // projection horizon
}

// DefaultAssumptions: 15% growth, 10% discount, 5 years.
var DefaultAssumptions = Assumptions{
	GrowthRate:   0.15,
	DiscountRate: 0.10,
	Years:        5,
}

// Advisory thresholds relative to the current price.
const (
	optimisticMultiple = 5.0
	mispricingMultiple = 0.3
)

// Estimator projects earnings forward and discounts them back to an
// intrinsic value per share.
type Estimator struct {
	assumptions Assumptions
}

// NewEstimator creates an estimator with the given assumptions.
func NewEstimator(a Assumptions) *Estimator {
	return &Estimator{assumptions: a}
}

// Estimate computes the valuation. When EPS or price is missing (nil or
// zero) the verdict is Unavailable and no numeric field is populated.
//
//	projectedEPS = EPS × (1+g)^n
//	intrinsic    = projectedEPS × sectorPE / (1+d)^n
func (e *Estimator) Estimate(eps, price *float64, sectorPE float64) models.ValuationResult {
	if eps == nil || price == nil || *eps == 0 || *price == 0 {
		return models.ValuationResult{Verdict: models.ValuationUnavailable}
	}

	n := float64(e.assumptions.Years)
	projected := *eps * math.Pow(1+e.assumptions.GrowthRate, n)
	intrinsic := projected * sectorPE / math.Pow(1+e.assumptions.DiscountRate, n)
	current := *price

	v := models.ValuationResult{
		ProjectedEPS:   &projected,
		IntrinsicValue: &intrinsic,
		CurrentPrice:   &current,
		Verdict:        models.Overvalued,
		GrowthRate:     e.assumptions.GrowthRate,
		Years:          e.assumptions.Years,
	}
	if intrinsic > current {
		v.Verdict = models.Undervalued
	}

	switch {
	case intrinsic > optimisticMultiple*current:
		v.Flags = append(v.Flags, models.FlagTooOptimistic)
	case intrinsic < mispricingMultiple*current:
		v.Flags = append(v.Flags, models.FlagPossibleMispricing)
	}
	return v
}

// EstimateValuation runs the estimate with DefaultAssumptions.
func EstimateValuation(eps, price *float64, sectorPE float64) models.ValuationResult {
	return NewEstimator(DefaultAssumptions).Estimate(eps, price, sectorPE)
}
