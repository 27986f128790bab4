package interest

import (
	"time"

	"github.com/wellcrafted/invoicing/pkg/money"
)

// DayCountConvention selects how a span of calendar days converts into
// fractional months for interest computation.
type DayCountConvention string

const (
	// Conv30360 treats every month as 30 days and the year as 360 days.
	// This is the default for VA collection terms.
	Conv30360 DayCountConvention = "30/360"
	// ConvActual365 divides actual days by a 365-day year.
	ConvActual365 DayCountConvention = "ACT/365"
	// ConvActual360 divides actual days by a 360-day year.
	ConvActual360 DayCountConvention = "ACT/360"
	// ConvActualActual divides actual days by 365 or 366 depending on
	// whether the current calendar year at calculation time is a leap
	// year. Periods that span a year boundary are judged by the as-of
	// year only; this matches the legacy behavior invoices were issued
	// under and is kept for reproducibility.
	ConvActualActual DayCountConvention = "ACT/ACT"
)

// monthsFraction expresses the month count for a day span as an exact
// ratio num/den. Callers multiply through by num before dividing by
// den so that quantities like 73 days at 30/360 stay exact
// (1000 × 0.03 × 73 / 30 = 73.00, with no repeating-decimal residue).
func monthsFraction(days int, convention DayCountConvention, now time.Time) (num, den money.Amount) {
	switch convention {
	case ConvActual365:
		return money.New(int64(days) * 12), money.New(365)
	case ConvActual360:
		return money.New(int64(days) * 12), money.New(360)
	case ConvActualActual:
		daysInYear := int64(365)
		if isLeapYear(now.Year()) {
			daysInYear = 366
		}
		return money.New(int64(days) * 12), money.New(daysInYear)
	default: // Conv30360
		return money.New(int64(days)), money.New(30)
	}
}

// MonthsFromDays converts a day count into fractional months under the
// given convention. now supplies the calendar year for ACT/ACT.
func MonthsFromDays(days int, convention DayCountConvention, now time.Time) money.Amount {
	if days <= 0 {
		return money.Zero
	}
	num, den := monthsFraction(days, convention, now)
	return num.Div(den)
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
