package utils

import (
	"strings"
)

// Exchange suffixes understood by the market-data provider.
var exchangeSuffixes = []string{".NS", ".BO"}

// DefaultSuffix is appended to symbols that carry no exchange suffix.
const DefaultSuffix = ".NS"

// Common NSE symbol aliases, keyed by what users tend to type.
var tickerAliases = map[string]string{
	"RIL":           "RELIANCE",
	"INFOSYS":       "INFY",
	"HDFC BANK":     "HDFCBANK",
	"ICICI BANK":    "ICICIBANK",
	"SBI":           "SBIN",
	"AIRTEL":        "BHARTIARTL",
	"BAJAJ FIN":     "BAJFINANCE",
	"L&T":           "LT",
	"TATA MOTORS":   "TATAMOTORS",
	"TATA STEEL":    "TATASTEEL",
	"HCL TECH":      "HCLTECH",
	"KOTAK":         "KOTAKBANK",
	"AXIS BANK":     "AXISBANK",
	"SUN PHARMA":    "SUNPHARMA",
	"ASIAN PAINTS":  "ASIANPAINT",
	"NESTLE":        "NESTLEIND",
	"ULTRATECH":     "ULTRACEMCO",
	"TECH MAHINDRA": "TECHM",
	"MAHINDRA":      "M&M",
	"ADANI":         "ADANIENT",
	"HUL":           "HINDUNILVR",
	"COAL INDIA":    "COALINDIA",
}

// NormalizeTicker turns user input into a provider-ready symbol: trimmed,
// uppercased, alias-resolved and suffixed with .NS unless it already carries
// a recognised exchange suffix.
//
//	"infy"        → "INFY.NS"
//	" $tcs "      → "TCS.NS"
//	"sbi"         → "SBIN.NS"
//	"reliance.bo" → "RELIANCE.BO"
func NormalizeTicker(ticker string) string {
	ticker = strings.TrimSpace(strings.ToUpper(ticker))
	ticker = strings.TrimPrefix(ticker, "$")
	if ticker == "" {
		return ""
	}

	base, suffix := SplitSuffix(ticker)
	if canonical, ok := tickerAliases[base]; ok {
		base = canonical
	}
	if suffix == "" {
		suffix = DefaultSuffix
	}
	return base + suffix
}

// SplitSuffix separates a recognised exchange suffix from the symbol.
// The suffix is empty when none is present.
func SplitSuffix(ticker string) (base, suffix string) {
	for _, s := range exchangeSuffixes {
		if strings.HasSuffix(ticker, s) {
			return strings.TrimSuffix(ticker, s), s
		}
	}
	return ticker, ""
}

// BaseSymbol strips the exchange suffix, e.g. "INFY.NS" → "INFY". News
// searches use the bare symbol.
func BaseSymbol(ticker string) string {
	base, _ := SplitSuffix(strings.ToUpper(strings.TrimSpace(ticker)))
	return base
}
