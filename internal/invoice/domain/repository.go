package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

// Repository persists invoices.
type Repository interface {
	// Create inserts an invoice. A duplicate invoice number surfaces
	// as a database duplicate-key error the caller classifies.
	Create(ctx context.Context, invoice *Invoice) error

	// FindByID returns the invoice or ErrNotFound.
	FindByID(ctx context.Context, tenantID, id snowflake.ID) (*Invoice, error)

	// FindByOrder returns the invoice for an order, or ErrNotFound.
	FindByOrder(ctx context.Context, tenantID, orderID snowflake.ID) (*Invoice, error)

	// HighestNumberWithPrefix returns the lexicographically highest
	// invoice number with the given prefix for a tenant, or "" when
	// none exists.
	HighestNumberWithPrefix(ctx context.Context, tenantID snowflake.ID, prefix string) (string, error)
}
