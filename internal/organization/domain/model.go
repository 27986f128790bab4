// Package domain holds the distributor organization (tenant) model.
// The organization's home state drives invoice format selection and
// excise applicability.
package domain

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Tenant is a wine distributor operating the system.
type Tenant struct {
	ID   snowflake.ID `gorm:"primaryKey"`
	Name string       `gorm:"type:text;not null"`

	// State is the distributor's home state, e.g. "VA". It is the
	// distributor side of format selection.
	State string `gorm:"type:text;not null"`

	Street string `gorm:"type:text"`
	City   string `gorm:"type:text"`
	Zip    string `gorm:"type:text"`

	Phone string `gorm:"type:text"`
	Email string `gorm:"type:text"`

	// WholesalerLicenseNumber is printed on VA ABC invoices.
	WholesalerLicenseNumber string `gorm:"type:text"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Tenant) TableName() string { return "tenants" }

// HomeState returns the normalized two-letter state code.
func (t *Tenant) HomeState() string {
	return strings.ToUpper(strings.TrimSpace(t.State))
}

// Repository loads tenants.
type Repository interface {
	// FindByID returns the tenant or ErrNotFound.
	FindByID(ctx context.Context, id snowflake.ID) (*Tenant, error)

	Create(ctx context.Context, tenant *Tenant) error
}
