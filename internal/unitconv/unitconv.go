// Package unitconv converts between the heterogeneous units that show
// up on wine invoices: bottle-size strings, bottle counts, case counts
// and liters. All math is decimal-exact.
//
// Parsing never fails. Historical SKU data carries malformed size
// strings, and invoice generation must not halt on a single bad one,
// so unrecognized input degrades to the standard 750ml bottle with a
// logged diagnostic.
package unitconv

import (
	"strings"

	"github.com/wellcrafted/invoicing/pkg/money"
	"go.uber.org/zap"
)

// DefaultBottlesPerCase applies when a SKU has no itemsPerCase value.
const DefaultBottlesPerCase = 12

// DefaultBottleLiters is the fallback for unparseable size strings:
// a standard 750ml wine bottle.
var DefaultBottleLiters = money.MustParse("0.75")

var mlPerLiter = money.New(1000)

// ParseBottleSizeToLiters converts a bottle-size representation into
// liters. Accepted forms: a bare decimal ("0.750"), a milliliter
// suffix ("750ml", "750 ML"), or a liter suffix ("1.5L", "1.5 l"),
// case-insensitively.
func ParseBottleSizeToLiters(raw string) money.Amount {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return DefaultBottleLiters
	}

	switch {
	case strings.HasSuffix(s, "ml"):
		value := strings.TrimSpace(strings.TrimSuffix(s, "ml"))
		if ml, err := money.Parse(value); err == nil && ml.IsPositive() {
			return ml.Div(mlPerLiter)
		}
	case strings.HasSuffix(s, "l"):
		value := strings.TrimSpace(strings.TrimSuffix(s, "l"))
		if liters, err := money.Parse(value); err == nil && liters.IsPositive() {
			return liters
		}
	default:
		if liters, err := money.Parse(s); err == nil && liters.IsPositive() {
			return liters
		}
	}

	zap.L().Debug("unparseable bottle size, using 750ml default", zap.String("size", raw))
	return DefaultBottleLiters
}

// BottlesToCases converts a bottle count into a possibly fractional
// case count. A nil or non-positive itemsPerCase falls back to the
// standard 12-bottle case.
func BottlesToCases(bottles int, itemsPerCase *int) money.Amount {
	return money.New(int64(bottles)).Div(money.New(int64(perCase(itemsPerCase))))
}

// CasesToBottles is the exact inverse of BottlesToCases.
func CasesToBottles(cases money.Amount, itemsPerCase *int) money.Amount {
	return cases.Mul(money.New(int64(perCase(itemsPerCase))))
}

// LineItemLiters returns the total liters for one order line.
func LineItemLiters(quantity int, size string) money.Amount {
	return ParseBottleSizeToLiters(size).Mul(money.New(int64(quantity)))
}

// LiterLine is the per-line input for InvoiceTotalLiters. TotalLiters,
// when set, is trusted as an already-validated figure and summed
// as-is; otherwise the total is recomputed from quantity and size.
type LiterLine struct {
	Quantity    int
	BottleSize  string
	TotalLiters *money.Amount
}

// InvoiceTotalLiters sums liters across all lines of an invoice.
func InvoiceTotalLiters(lines []LiterLine) money.Amount {
	total := money.Zero
	for _, line := range lines {
		if line.TotalLiters != nil {
			total = total.Add(*line.TotalLiters)
			continue
		}
		total = total.Add(LineItemLiters(line.Quantity, line.BottleSize))
	}
	return total
}

func perCase(itemsPerCase *int) int {
	if itemsPerCase == nil || *itemsPerCase <= 0 {
		return DefaultBottlesPerCase
	}
	return *itemsPerCase
}
