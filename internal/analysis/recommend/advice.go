package recommend

import (
	"fmt"
	"strings"

	"github.com/seenimoa/marketmind/pkg/models"
)

// Investor profile values.
const (
	RiskLow    = "Low"
	RiskMedium = "Medium"
	RiskHigh   = "High"

	HorizonOneYear   = "1 Year"
	HorizonThreeYear = "3+ Years"
)

// Advice outcomes.
const (
	ShortTermSolid      = "Solid"
	ShortTermRisky      = "Risky"
	LongTermStrongPick  = "StrongPick"
	LongTermHorizonOnly = "LongHorizonOnly"
)

const (
	solidBuyScore = 60
	maxBuyScore   = 100
)

// DefaultProfile is used when the caller supplies no profile.
var DefaultProfile = models.InvestorProfile{Risk: RiskMedium, Horizon: HorizonThreeYear}

// Advise computes the profile-dependent buy score and short/long-term advice.
//
//	fundamentals: score×5
//	valuation:    25 Undervalued, 10 Overvalued, 0 Unavailable
//	risk:         20 Low & score>=5, 15 Medium & score>=3, else 10
//	horizon:      20 "3+ Years" & score>=5, 15 "1 Year", else 10
func Advise(score int, valuation models.ValuationVerdict, profile models.InvestorProfile) models.Advice {
	buy := score * 5

	switch valuation {
	case models.Undervalued:
		buy += 25
	case models.Overvalued:
		buy += 10
	}

	switch {
	case profile.Risk == RiskLow && score >= 5:
		buy += 20
	case profile.Risk == RiskMedium && score >= 3:
		buy += 15
	default:
		buy += 10
	}

	switch {
	case profile.Horizon == HorizonThreeYear && score >= 5:
		buy += 20
	case profile.Horizon == HorizonOneYear:
		buy += 15
	default:
		buy += 10
	}

	if buy > maxBuyScore {
		buy = maxBuyScore
	}

	a := models.Advice{
		Profile:   profile,
		BuyScore:  buy,
		ShortTerm: ShortTermSolid,
		LongTerm:  LongTermHorizonOnly,
	}
	if valuation == models.Overvalued || buy < solidBuyScore {
		a.ShortTerm = ShortTermRisky
	}
	if score >= 4 && valuation == models.Undervalued {
		a.LongTerm = LongTermStrongPick
	}
	return a
}

// ParseProfile builds a profile from user input. Matching is
// case-insensitive and blank fields take the DefaultProfile value.
func ParseProfile(risk, horizon string) (models.InvestorProfile, error) {
	p := DefaultProfile

	if r := strings.TrimSpace(risk); r != "" {
		v, ok := match(r, RiskLow, RiskMedium, RiskHigh)
		if !ok {
			return p, fmt.Errorf("unknown risk %q (want Low, Medium or High)", risk)
		}
		p.Risk = v
	}
	if h := strings.TrimSpace(horizon); h != "" {
		v, ok := match(h, HorizonOneYear, HorizonThreeYear)
		if !ok {
			return p, fmt.Errorf("unknown horizon %q (want %q or %q)", horizon, HorizonOneYear, HorizonThreeYear)
		}
		p.Horizon = v
	}
	return p, nil
}

func match(in string, options ...string) (string, bool) {
	for _, o := range options {
		if strings.EqualFold(in, o) {
			return o, true
		}
	}
	return "", false
}
