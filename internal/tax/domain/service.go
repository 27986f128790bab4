package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/wellcrafted/invoicing/pkg/money"
)

// Resolver looks up the effective tax rate for a scope, falling back
// to the compiled-in jurisdiction defaults when no persisted rule
// matches.
type Resolver interface {
	ResolveRate(ctx context.Context, tenantID snowflake.ID, jurisdiction string, taxType TaxType, asOf time.Time) (money.Amount, error)
}

// CalculateInput carries everything the tax calculator needs for one
// invoice.
type CalculateInput struct {
	TenantID         snowflake.ID
	DistributorState string
	CustomerState    string
	TotalLiters      money.Amount
	Subtotal         money.Amount
	IncludeExcise    bool
	IncludeSales     bool
	AsOf             time.Time
}

// CalculateResult is the tax breakdown for one invoice.
type CalculateResult struct {
	ExciseTax money.Amount
	SalesTax  money.Amount
	TotalTax  money.Amount
}

// Calculator computes invoice taxes. Absence of an applicable tax is a
// zero result, never an error.
type Calculator interface {
	CalculateInvoiceTaxes(ctx context.Context, in CalculateInput) (CalculateResult, error)
}

// Service manages tax rules for tenant administrators.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*TaxRule, error)
	List(ctx context.Context, tenantID snowflake.ID, req ListRequest) ([]TaxRule, error)
	Supersede(ctx context.Context, req SupersedeRequest) (*TaxRule, error)
}

type CreateRequest struct {
	TenantID      snowflake.ID
	Jurisdiction  string       `json:"jurisdiction"`
	TaxType       TaxType      `json:"tax_type"`
	Rate          money.Amount `json:"rate"`
	PerLiter      bool         `json:"per_liter"`
	EffectiveDate time.Time    `json:"effective_date"`
	ExpiryDate    *time.Time   `json:"expiry_date,omitempty"`
}

type ListRequest struct {
	Jurisdiction string
	TaxType      *TaxType
	ActiveAt     *time.Time
}

// SupersedeRequest bounds an existing rule with an expiry and creates
// its replacement in one step.
type SupersedeRequest struct {
	TenantID snowflake.ID
	RuleID   snowflake.ID
	Replace  CreateRequest
}
