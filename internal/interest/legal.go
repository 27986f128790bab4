package interest

import (
	"fmt"

	"github.com/wellcrafted/invoicing/pkg/money"
)

// DefaultMonthlyRate is the VA late-payment finance charge: 1.5% per
// month on past-due balances.
var DefaultMonthlyRate = money.MustParse("0.015")

// CollectionTerms renders the collection-terms paragraph printed on VA
// invoices, templated from the monthly interest rate.
func CollectionTerms(monthlyRate money.Amount) string {
	pct := monthlyRate.Mul(money.New(100))
	return fmt.Sprintf(
		"Past due balances are subject to a finance charge of %s%% per month. "+
			"Purchaser agrees to pay all costs of collection, including reasonable "+
			"attorney's fees, incurred in collecting any amount owed under this invoice.",
		pct.StringFixed(1),
	)
}

// ComplianceNotice renders the jurisdiction compliance paragraph. The
// tax-exempt format carries the extended out-of-state transport
// wording.
func ComplianceNotice(taxExempt bool) string {
	if taxExempt {
		return "This shipment is sold for resale and delivery outside the Commonwealth " +
			"of Virginia. No Virginia wine excise tax has been collected on this sale. " +
			"Purchaser is responsible for all taxes due in the destination jurisdiction " +
			"and for maintaining transport records as required by the Virginia Alcoholic " +
			"Beverage Control Authority."
	}
	return "Virginia wine excise tax has been paid or will be remitted by the wholesaler " +
		"on all products listed. Retain this invoice as required by the Virginia " +
		"Alcoholic Beverage Control Authority."
}
