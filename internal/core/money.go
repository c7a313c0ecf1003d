// Package core holds the domain types and the pure analytic functions:
// validation, money formatting, budget status, trend and budget analysis,
// and portfolio position aggregation.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// FormatCurrency renders an amount as an INR currency string with thousands
// separators and two decimal places, e.g. "₹1,234.56". Negative amounts keep
// the sign after the symbol ("₹-1,234.56").
func FormatCurrency(amount decimal.Decimal) string {
	s := amount.StringFixed(2)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}

	intPart, fracPart, _ := strings.Cut(s, ".")

	var b strings.Builder
	b.WriteString("₹")
	b.WriteString(sign)
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteByte('.')
	b.WriteString(fracPart)
	return b.String()
}
