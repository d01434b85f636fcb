package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseDecimal reads upstream numeric strings, accepting either "." or ","
// as the decimal separator. Empty strings and placeholders such as "...",
// "-" or "X" report false.
func ParseDecimal(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, false
	}
	f, _ := d.Float64()
	return f, true
}
