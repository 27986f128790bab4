// Package domain holds the customer (licensee) model. The customer's
// state is the counterpart to the distributor's home state in format
// selection, and the payment-terms string feeds due-date calculation.
package domain

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Address is a postal address embedded on customer rows.
type Address struct {
	Street string `gorm:"type:text"`
	City   string `gorm:"type:text"`
	State  string `gorm:"type:text"`
	Zip    string `gorm:"type:text"`
}

// Customer is a licensed buyer (restaurant, retailer, or out-of-state
// licensee).
type Customer struct {
	ID       snowflake.ID `gorm:"primaryKey"`
	TenantID snowflake.ID `gorm:"column:tenant_id;not null;index:ix_customers_tenant"`

	Name           string `gorm:"type:text;not null"`
	CustomerNumber string `gorm:"type:text"`
	Email          string `gorm:"type:text"`
	Phone          string `gorm:"type:text"`

	// State is the customer's licensing state; it decides in-state vs
	// tax-exempt invoices. Often equal to the billing address state but
	// kept separate so licensing can diverge from mailing.
	State string `gorm:"type:text;not null"`

	// PaymentTerms is free text from the books system, e.g. "Net 30
	// Days" or "C.O.D.". Normalized by internal/terms at build time.
	PaymentTerms string `gorm:"type:text"`

	ABCLicenseNumber string `gorm:"type:text"`
	SalesRepName     string `gorm:"type:text"`

	BillingAddress Address `gorm:"embedded;embeddedPrefix:billing_"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Customer) TableName() string { return "customers" }

// LicensingState returns the normalized two-letter state code, falling
// back to the billing address when the licensing state is blank.
func (c *Customer) LicensingState() string {
	state := strings.ToUpper(strings.TrimSpace(c.State))
	if state == "" {
		state = strings.ToUpper(strings.TrimSpace(c.BillingAddress.State))
	}
	return state
}

// Repository loads customers scoped by tenant.
type Repository interface {
	// FindByID returns the customer or ErrNotFound.
	FindByID(ctx context.Context, tenantID, id snowflake.ID) (*Customer, error)

	Create(ctx context.Context, customer *Customer) error
}
