// Package domain contains persistence models and contracts for tax
// rules.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/wellcrafted/invoicing/pkg/money"
)

// TaxType distinguishes the two taxes an invoice can carry.
type TaxType string

const (
	// TaxTypeExcise is the per-liter wine excise tax.
	TaxTypeExcise TaxType = "EXCISE"
	// TaxTypeSales is the subtotal-based retail sales tax.
	TaxTypeSales TaxType = "SALES"
)

// TaxRule is a tenant-scoped, effective-dated rate override. Rules are
// never deleted; a newer effective date or an expiry bound supersedes
// them.
type TaxRule struct {
	ID           snowflake.ID `gorm:"primaryKey"`
	TenantID     snowflake.ID `gorm:"column:tenant_id;not null;index:ix_tax_rules_scope,priority:1"`
	Jurisdiction string       `gorm:"type:text;not null;index:ix_tax_rules_scope,priority:2"`
	TaxType      TaxType      `gorm:"column:tax_type;type:text;not null;index:ix_tax_rules_scope,priority:3"`

	// Rate is a fraction for sales tax (0.053) or dollars per liter
	// for excise (0.40), depending on PerLiter.
	Rate     money.Amount `gorm:"type:numeric(12,6);not null"`
	PerLiter bool         `gorm:"column:per_liter;not null;default:false"`

	EffectiveDate time.Time  `gorm:"column:effective_date;not null"`
	ExpiryDate    *time.Time `gorm:"column:expiry_date"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (TaxRule) TableName() string { return "tax_rules" }

// ActiveAt reports whether the rule covers the as-of date.
func (r *TaxRule) ActiveAt(asOf time.Time) bool {
	if r.EffectiveDate.After(asOf) {
		return false
	}
	return r.ExpiryDate == nil || !r.ExpiryDate.Before(asOf)
}

func (r *TaxRule) Validate() error {
	if r.Jurisdiction == "" {
		return ErrInvalidJurisdiction
	}
	if r.TaxType != TaxTypeExcise && r.TaxType != TaxTypeSales {
		return ErrInvalidTaxType
	}
	if r.Rate.IsNegative() {
		return ErrInvalidTaxRate
	}
	if r.ExpiryDate != nil && r.ExpiryDate.Before(r.EffectiveDate) {
		return ErrInvalidEffectiveRange
	}
	return nil
}
