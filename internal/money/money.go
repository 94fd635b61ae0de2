// Package money holds the shared numeric presentation rules of Finvoice 2.0
// documents: exactly two fractional digits, comma as decimal separator, no
// thousands separator. Every monetary element in a generated document goes
// through Format; every monetary element read back goes through Parse.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Zero is decimal zero
var Zero = decimal.Zero

// Format renders d with exactly two fractional digits and a comma as the
// decimal separator. Rounding happens here, at presentation time only.
func Format(d decimal.Decimal) string {
	return strings.Replace(d.StringFixed(2), ".", ",", 1)
}

// Parse reads a Finvoice-formatted amount. Both comma and dot decimal
// separators are accepted.
func Parse(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.Replace(strings.TrimSpace(s), ",", ".", 1))
}

// MustParse parses a Finvoice-formatted amount, panics on error
func MustParse(s string) decimal.Decimal {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// FromFloat creates a decimal from a float without presentation rounding
func FromFloat(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

// Sum sums a slice of decimals
func Sum(values []decimal.Decimal) decimal.Decimal {
	result := Zero
	for _, v := range values {
		result = result.Add(v)
	}
	return result
}
