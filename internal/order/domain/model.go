// Package domain holds the order, order line, and SKU models the
// invoice builder reads from. SKUs carry the bottle-size and case-pack
// data that unit conversion depends on; order lines additionally store
// the computed cases and liters written back after an invoice build.
package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/wellcrafted/invoicing/pkg/money"
)

// SKU is a sellable wine product.
type SKU struct {
	ID       snowflake.ID `gorm:"primaryKey"`
	TenantID snowflake.ID `gorm:"column:tenant_id;not null;index:ix_skus_tenant"`

	Code            string `gorm:"type:text;not null"`
	ProductName     string `gorm:"type:text;not null"`
	ProductCategory string `gorm:"type:text"`
	Description     string `gorm:"type:text"`

	// Size is the raw bottle size as entered, e.g. "750ml" or "1.5L".
	// Parsed leniently; unparseable sizes fall back to 750ml.
	Size string `gorm:"type:text"`

	// Liters, when set, is the authoritative per-bottle volume and
	// takes precedence over parsing Size.
	Liters *money.Amount `gorm:"type:numeric(12,6)"`

	// ItemsPerCase is the case pack; nil or zero means the standard 12.
	ItemsPerCase *int `gorm:"column:items_per_case"`

	// ABCCodeNumber is the Virginia ABC product code.
	ABCCodeNumber string `gorm:"column:abc_code_number;type:text"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (SKU) TableName() string { return "skus" }

// OrderLine is one SKU position on an order.
type OrderLine struct {
	ID      snowflake.ID `gorm:"primaryKey"`
	OrderID snowflake.ID `gorm:"column:order_id;not null;index:ix_order_lines_order"`
	SKUID   snowflake.ID `gorm:"column:sku_id;not null"`
	SKU     *SKU         `gorm:"foreignKey:SKUID"`

	// Quantity is in bottles.
	Quantity  int          `gorm:"not null"`
	UnitPrice money.Amount `gorm:"type:numeric(12,4);not null"`

	Description string `gorm:"type:text"`

	// CasesQuantity and TotalLiters are computed during invoice build
	// and persisted back onto the line. Nil until then.
	CasesQuantity *money.Amount `gorm:"column:cases_quantity;type:numeric(12,6)"`
	TotalLiters   *money.Amount `gorm:"column:total_liters;type:numeric(12,6)"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (OrderLine) TableName() string { return "order_lines" }

// ShippingAddress is the ship-to destination embedded on orders.
type ShippingAddress struct {
	Name   string `gorm:"type:text"`
	Street string `gorm:"type:text"`
	City   string `gorm:"type:text"`
	State  string `gorm:"type:text"`
	Zip    string `gorm:"type:text"`
}

// Order statuses relevant to invoicing.
const (
	StatusPending   = "PENDING"
	StatusConfirmed = "CONFIRMED"
	StatusInvoiced  = "INVOICED"
)

// Order is a customer order awaiting invoicing.
type Order struct {
	ID         snowflake.ID `gorm:"primaryKey"`
	TenantID   snowflake.ID `gorm:"column:tenant_id;not null;index:ix_orders_tenant"`
	CustomerID snowflake.ID `gorm:"column:customer_id;not null"`

	OrderNumber string    `gorm:"type:text;not null"`
	Status      string    `gorm:"type:text;not null;default:'PENDING'"`
	OrderDate   time.Time `gorm:"not null"`

	PurchaseOrderNumber string     `gorm:"column:purchase_order_number;type:text"`
	DeliveryDate        *time.Time `gorm:"column:delivery_date"`

	ShipTo ShippingAddress `gorm:"embedded;embeddedPrefix:ship_to_"`

	Lines []OrderLine `gorm:"foreignKey:OrderID"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Order) TableName() string { return "orders" }

// LineCalc carries the computed per-line values persisted after an
// invoice build.
type LineCalc struct {
	LineID        snowflake.ID
	CasesQuantity money.Amount
	TotalLiters   money.Amount
}

// Repository loads and updates orders scoped by tenant.
type Repository interface {
	// FindByID returns the order with lines and SKUs preloaded, or
	// ErrNotFound.
	FindByID(ctx context.Context, tenantID, id snowflake.ID) (*Order, error)

	// CustomerID returns just the order's customer id, or ErrNotFound.
	// Cheap scalar lookup for callers that fan out fetches.
	CustomerID(ctx context.Context, tenantID, id snowflake.ID) (snowflake.ID, error)

	// SaveCalculatedLineValues persists computed cases and liters back
	// onto order lines. Lines not in the batch are untouched.
	SaveCalculatedLineValues(ctx context.Context, calcs []LineCalc) error

	// MarkInvoiced transitions the order status once an invoice exists.
	MarkInvoiced(ctx context.Context, tenantID, id snowflake.ID) error

	Create(ctx context.Context, order *Order) error
	CreateSKU(ctx context.Context, sku *SKU) error
}
