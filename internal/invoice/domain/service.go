package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/wellcrafted/invoicing/internal/format"
)

// BuildRequest drives one invoice build.
type BuildRequest struct {
	TenantID snowflake.ID
	OrderID  snowflake.ID

	// FormatOverride forces a format regardless of states.
	FormatOverride *format.Type
}

// Builder assembles a complete invoice-data snapshot without
// persisting anything.
type Builder interface {
	BuildInvoiceData(ctx context.Context, req BuildRequest) (*CompleteInvoiceData, error)
}

// Service owns invoice persistence on top of the builder.
type Service interface {
	// CreateInvoice builds the snapshot, assigns a unique invoice
	// number, persists a DRAFT invoice, writes computed line values
	// back onto the order, and marks the order invoiced.
	CreateInvoice(ctx context.Context, req BuildRequest) (*Invoice, error)

	// GetInvoice returns a persisted invoice or ErrNotFound.
	GetInvoice(ctx context.Context, tenantID, id snowflake.ID) (*Invoice, error)

	// RenderInvoiceHTML renders a persisted invoice's snapshot to HTML
	// through its template settings.
	RenderInvoiceHTML(ctx context.Context, tenantID, id snowflake.ID) (string, error)
}
