package fundamental

import (
	"strconv"
	"strings"
)

// ExtractNumber pulls a float out of a loosely formatted metric string such as
// "12.5%", "-3.2 Cr" or "₹1,234.50 Cr". Every character other than ASCII
// digits, '.' and '-' is discarded. It reports false when nothing numeric
// remains or the remainder does not parse; it never fails its caller.
func ExtractNumber(s string) (float64, bool) {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			return r
		}
		return -1
	}, s)

	switch cleaned {
	case "", ".", "-", "-.":
		return 0, false
	}

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
