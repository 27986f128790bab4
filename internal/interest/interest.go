// Package interest computes overdue finance charges for invoices under
// selectable day-count conventions, and renders the VA legal text that
// accompanies them. All arithmetic is decimal-exact.
package interest

import (
	"time"

	"github.com/wellcrafted/invoicing/pkg/money"
)

// DefaultGracePeriodDays is applied when the caller passes a negative
// grace period.
const DefaultGracePeriodDays = 0

// Result describes one overdue-interest computation.
type Result struct {
	Principal     money.Amount
	DaysOverdue   int
	MonthsOverdue money.Amount
	EffectiveRate money.Amount
	Interest      money.Amount
	Total         money.Amount
}

// OverdueInterest computes simple interest (I = P·r·t) on an overdue
// principal. Days overdue and chargeable days are both floored at
// zero; a not-yet-overdue invoice yields exactly zero interest and a
// zero effective rate, never a negative figure.
func OverdueInterest(principal money.Amount, dueDate, asOf time.Time, monthlyRate money.Amount, gracePeriodDays int, convention DayCountConvention) Result {
	days := chargeableDays(dueDate, asOf, gracePeriodDays)
	if days == 0 {
		return Result{
			Principal:     principal,
			MonthsOverdue: money.Zero,
			EffectiveRate: money.Zero,
			Interest:      money.Zero,
			Total:         principal,
		}
	}

	num, den := monthsFraction(days, convention, asOf)
	months := num.Div(den)
	rate := monthlyRate.Mul(num).Div(den)
	charged := principal.Mul(monthlyRate).Mul(num).Div(den)

	return Result{
		Principal:     principal,
		DaysOverdue:   days,
		MonthsOverdue: months,
		EffectiveRate: rate,
		Interest:      charged,
		Total:         principal.Add(charged),
	}
}

// CompoundInterest computes monthly-compounded interest:
// total = P·(1+r)^t, interest = total − P.
//
// The exponent t is always the 30/360 month count regardless of the
// requested convention; the legacy calculator behaved this way and
// issued invoices depend on it. Equal to simple interest at zero
// months overdue, and never below it for a positive rate and period.
func CompoundInterest(principal money.Amount, dueDate, asOf time.Time, monthlyRate money.Amount, gracePeriodDays int) Result {
	days := chargeableDays(dueDate, asOf, gracePeriodDays)
	if days == 0 {
		return Result{
			Principal:     principal,
			MonthsOverdue: money.Zero,
			EffectiveRate: money.Zero,
			Interest:      money.Zero,
			Total:         principal,
		}
	}

	num, den := monthsFraction(days, Conv30360, asOf)
	months := num.Div(den)
	factor := compoundFactor(monthlyRate, months)
	total := principal.Mul(factor)
	charged := total.Sub(principal)

	return Result{
		Principal:     principal,
		DaysOverdue:   days,
		MonthsOverdue: months,
		EffectiveRate: factor.Sub(money.New(1)),
		Interest:      charged,
		Total:         total,
	}
}

func compoundFactor(monthlyRate, months money.Amount) money.Amount {
	base := money.New(1).Add(monthlyRate)
	factor, err := base.PowWithPrecision(months, 16)
	if err != nil {
		// Pow only fails on a negative base with fractional exponent,
		// which a validated rate cannot produce.
		return money.New(1)
	}
	return factor
}

func chargeableDays(dueDate, asOf time.Time, gracePeriodDays int) int {
	if gracePeriodDays < 0 {
		gracePeriodDays = DefaultGracePeriodDays
	}
	overdue := int(asOf.Sub(dueDate).Hours() / 24)
	if overdue < 0 {
		overdue = 0
	}
	chargeable := overdue - gracePeriodDays
	if chargeable < 0 {
		chargeable = 0
	}
	return chargeable
}
