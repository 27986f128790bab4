// Package money centralizes exact-decimal arithmetic for every
// monetary, volume and interest figure in the system. Binary floating
// point is never used for these values; rounding happens only at
// display formatting.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Amount is an exact decimal value. It is used for currency, liters,
// case quantities and interest factors alike so that all unit math
// flows through one implementation.
type Amount = decimal.Decimal

// Zero is the zero Amount.
var Zero = decimal.Zero

// New returns an Amount from integer units.
func New(v int64) Amount {
	return decimal.NewFromInt(v)
}

// Parse converts a decimal string into an Amount.
func Parse(s string) (Amount, error) {
	return decimal.NewFromString(s)
}

// MustParse converts a decimal string into an Amount and panics on
// malformed input. Reserved for compiled-in constants.
func MustParse(s string) Amount {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(fmt.Sprintf("money: invalid constant %q: %v", s, err))
	}
	return d
}

// FromFloat converts a float into an Amount. Prefer Parse for values
// that originate as text; this exists for interop with numeric config.
func FromFloat(f float64) Amount {
	return decimal.NewFromFloat(f)
}

// Sum adds a list of Amounts without intermediate rounding.
func Sum(values ...Amount) Amount {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// FormatUSD renders an Amount as a dollar string with two decimals.
func FormatUSD(a Amount) string {
	return "$" + a.StringFixed(2)
}
