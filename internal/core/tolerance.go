package core

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Epsilon is the tolerance for every quantity comparison in the ledger and the reconciler.
var Epsilon = decimal.New(1, -3)

// Significant reports whether |d| > Epsilon.
func Significant(d decimal.Decimal) bool {
	return d.Abs().GreaterThan(Epsilon)
}

// Differs reports whether a and b are further apart than Epsilon.
func Differs(a, b decimal.Decimal) bool {
	return Significant(a.Sub(b))
}

// RoundCurrency rounds a money amount to cents, half away from zero.
func RoundCurrency(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// RoundQuantity rounds a stock or order quantity to the two decimals the ledger stores.
func RoundQuantity(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// RoundUnitPrice keeps four decimals for per-unit prices derived from line totals.
func RoundUnitPrice(d decimal.Decimal) decimal.Decimal {
	return d.Round(4)
}

var quantityInput = regexp.MustCompile(`^\d*([,.]\d{0,2})?$`)

// ParseQuantity parses operator input that may use ',' or '.' as the decimal separator
// with at most two fractional digits. Input with any other character is rejected.
// Accepted input that carries no digits ("", ",") reads as 0.
func ParseQuantity(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if !quantityInput.MatchString(s) {
		return decimal.Zero, fmt.Errorf("%w: quantity %q is not a number with at most 2 decimals", ErrValidation, raw)
	}
	s = strings.TrimSuffix(strings.Replace(s, ",", ".", 1), ".")
	if strings.HasPrefix(s, ".") {
		s = "0" + s
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, nil
	}
	return d, nil
}

// CleanNumber reads loosely formatted numbers such as "12,50 €" or "1.234": decimal
// commas become dots and everything but digits and dots is dropped. Unreadable input is 0.
func CleanNumber(raw string) decimal.Decimal {
	var b strings.Builder
	for _, r := range strings.ReplaceAll(raw, ",", ".") {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	d, err := decimal.NewFromString(b.String())
	if err != nil {
		return decimal.Zero
	}
	return d
}
