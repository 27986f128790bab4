// Package format decides which jurisdiction-mandated document layout
// applies to an invoice. Selection is a pure function of its inputs so
// historical invoices re-render identically.
package format

import "strings"

// Type enumerates the three canonical invoice formats.
type Type string

const (
	// Standard is the generic layout for customers outside the
	// regulated flow.
	Standard Type = "STANDARD"
	// VAABCInState is the Virginia compliance layout for in-state
	// sales; wine excise tax applies.
	VAABCInState Type = "VA_ABC_IN_STATE"
	// VAABCTaxExempt is the Virginia compliance layout for sales
	// shipped out of state; no excise tax is collected.
	VAABCTaxExempt Type = "VA_ABC_TAX_EXEMPT"
)

// RegulatedState is the jurisdiction whose ABC rules drive the two
// compliance formats.
const RegulatedState = "VA"

// Input carries the jurisdiction facts for format selection.
type Input struct {
	// CustomerState is the customer's state code; empty when unknown.
	CustomerState string
	// DistributorState is the tenant's home state.
	DistributorState string
	// Override, when set, wins over every rule.
	Override *Type
}

// Determine selects the invoice format:
//
//  1. a manual override is returned as-is;
//  2. an unknown customer state falls back to Standard;
//  3. a VA distributor selling to a VA customer gets the in-state
//     compliance format;
//  4. a VA distributor selling anywhere else gets the tax-exempt
//     compliance format;
//  5. everything else is Standard.
func Determine(in Input) Type {
	if in.Override != nil {
		return *in.Override
	}

	customer := normalizeState(in.CustomerState)
	if customer == "" {
		return Standard
	}

	if normalizeState(in.DistributorState) == RegulatedState {
		if customer == RegulatedState {
			return VAABCInState
		}
		return VAABCTaxExempt
	}

	return Standard
}

// Valid reports whether t is one of the three canonical formats.
func Valid(t Type) bool {
	switch t {
	case Standard, VAABCInState, VAABCTaxExempt:
		return true
	}
	return false
}

func normalizeState(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
