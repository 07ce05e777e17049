// Package models defines the core data structures shared by MarketMind's
// providers, analysis engine and presentation layers.
package models

import "time"

// Snapshot is the fundamentals/price record returned by a market-data provider.
// Every numeric field is optional; a nil pointer means the provider did not
// report it.
type Snapshot struct {
	Ticker   string `json:"ticker"`   // e.g., "INFY.NS"
	Name     string `json:"name"`     // e.g., "Infosys Limited"
	Sector   string `json:"sector"`   // raw provider label, e.g., "Technology"
	Industry string `json:"industry"` // raw provider label, e.g., "Information Technology Services"
	Currency string `json:"currency"`

	TrailingPE     *float64 `json:"trailing_pe,omitempty"`
	ReturnOnEquity *float64 `json:"return_on_equity,omitempty"` // ratio, 0.18 = 18%
	ProfitMargin   *float64 `json:"profit_margin,omitempty"`    // ratio
	PriceToBook    *float64 `json:"price_to_book,omitempty"`
	TrailingEPS    *float64 `json:"trailing_eps,omitempty"`
	CurrentPrice   *float64 `json:"current_price,omitempty"`
	EarningsGrowth *float64 `json:"earnings_growth,omitempty"` // ratio, YoY
	FreeCashFlow   *float64 `json:"free_cash_flow,omitempty"`  // raw INR
}

// PricePoint is one daily close/volume observation. Histories are ordered
// oldest first.
type PricePoint struct {
	Date   time.Time `json:"date"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// Float returns a pointer to v. Handy for building snapshots in tests and
// decoders.
func Float(v float64) *float64 {
	return &v
}
