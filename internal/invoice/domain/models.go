// Package domain contains the invoice persistence model and the
// immutable invoice-data snapshot handed to renderers.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/wellcrafted/invoicing/internal/format"
	templatedomain "github.com/wellcrafted/invoicing/internal/template/domain"
	"github.com/wellcrafted/invoicing/pkg/money"
	"gorm.io/datatypes"
)

// Status represents invoice lifecycle states.
type Status string

const (
	StatusDraft Status = "DRAFT"
	StatusOpen  Status = "OPEN"
	StatusPaid  Status = "PAID"
	StatusVoid  Status = "VOID"
)

// Invoice is a persisted invoice. The Snapshot blob is the complete
// invoice data as built; the scalar columns exist for querying and the
// unique-number constraint.
type Invoice struct {
	ID         snowflake.ID `gorm:"primaryKey"`
	TenantID   snowflake.ID `gorm:"column:tenant_id;not null;uniqueIndex:ux_invoices_number,priority:1"`
	OrderID    snowflake.ID `gorm:"column:order_id;not null;index"`
	CustomerID snowflake.ID `gorm:"column:customer_id;not null;index"`

	InvoiceNumber string      `gorm:"column:invoice_number;type:text;not null;uniqueIndex:ux_invoices_number,priority:2"`
	Format        format.Type `gorm:"type:text;not null"`
	Status        Status      `gorm:"type:text;not null;default:'DRAFT'"`

	Subtotal money.Amount `gorm:"type:numeric(14,4);not null"`
	TotalTax money.Amount `gorm:"type:numeric(14,4);not null"`
	Total    money.Amount `gorm:"type:numeric(14,4);not null"`

	IssuedAt time.Time `gorm:"not null"`
	DueAt    time.Time `gorm:"not null"`

	Snapshot datatypes.JSON `gorm:"type:jsonb;not null;default:'{}'"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Invoice) TableName() string { return "invoices" }

// EnrichedOrderLine is one order line after unit conversion and
// pricing. Values are copied, never referenced, so the snapshot stays
// stable if the order is edited later.
type EnrichedOrderLine struct {
	OrderLineID snowflake.ID `json:"orderLineId,omitempty"`

	SKUCode         string `json:"skuCode"`
	ProductName     string `json:"productName"`
	ProductCategory string `json:"productCategory,omitempty"`
	Description     string `json:"description,omitempty"`
	Size            string `json:"size,omitempty"`
	ABCCodeNumber   string `json:"abcCodeNumber,omitempty"`

	Quantity      int          `json:"quantity"`
	CasesQuantity money.Amount `json:"casesQuantity"`
	TotalLiters   money.Amount `json:"totalLiters"`
	UnitPrice     money.Amount `json:"unitPrice"`
	BottlePrice   money.Amount `json:"bottlePrice"`
	LineTotal     money.Amount `json:"lineTotal"`

	// QuantityDisplay is the human form, e.g. "1.00 cs / 12 btl".
	QuantityDisplay string `json:"quantityDisplay"`
}

// Party is a copied name-and-address block.
type Party struct {
	Name    string `json:"name"`
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Zip     string `json:"zip,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	License string `json:"license,omitempty"`
}

// CompleteInvoiceData is the immutable snapshot the builder produces
// and renderers consume. Invariants: Total = Subtotal + TotalTax and
// Subtotal = sum of line totals, both decimal-exact.
type CompleteInvoiceData struct {
	InvoiceNumber string       `json:"invoiceNumber"`
	Format        format.Type  `json:"format"`
	CustomerID    snowflake.ID `json:"customerId,omitempty"`

	IssuedAt time.Time `json:"issuedAt"`
	DueAt    time.Time `json:"dueAt"`

	PaymentTerms string `json:"paymentTerms,omitempty"`

	Distributor Party `json:"distributor"`
	BillTo      Party `json:"billTo"`
	ShipTo      Party `json:"shipTo"`

	OrderNumber         string `json:"orderNumber,omitempty"`
	PurchaseOrderNumber string `json:"purchaseOrderNumber,omitempty"`
	CustomerNumber      string `json:"customerNumber,omitempty"`
	SalesRepName        string `json:"salesRepName,omitempty"`

	Lines       []EnrichedOrderLine `json:"lines"`
	TotalLiters money.Amount        `json:"totalLiters"`

	Subtotal  money.Amount `json:"subtotal"`
	ExciseTax money.Amount `json:"exciseTax"`
	SalesTax  money.Amount `json:"salesTax"`
	TotalTax  money.Amount `json:"totalTax"`
	Total     money.Amount `json:"total"`

	MonthlyInterestRate money.Amount `json:"monthlyInterestRate"`
	CollectionTerms     string       `json:"collectionTerms,omitempty"`
	ComplianceNotice    string       `json:"complianceNotice,omitempty"`

	TemplateSettings templatedomain.Settings `json:"templateSettings"`
}
