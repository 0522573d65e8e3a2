package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatBaht renders an amount as Thai baht with two decimal places and
// thousands separators, e.g. "1,234.50". Used by the export surfaces.
func FormatBaht(amount decimal.Decimal) string {
	fixed := amount.Round(2).StringFixed(2)

	neg := strings.HasPrefix(fixed, "-")
	if neg {
		fixed = fixed[1:]
	}

	intPart, fracPart, _ := strings.Cut(fixed, ".")
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	b.WriteByte('.')
	b.WriteString(fracPart)
	return b.String()
}
