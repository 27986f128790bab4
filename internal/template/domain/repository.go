package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/wellcrafted/invoicing/internal/format"
)

// Repository persists per-(tenant, format) template config rows.
type Repository interface {
	// FindByScope returns the config for a tenant and format, or
	// ErrNotFound when the tenant has never customized that format.
	FindByScope(ctx context.Context, tenantID snowflake.ID, ft format.Type) (*TemplateConfig, error)

	// Upsert writes the config document for a scope. Last write wins;
	// concurrent writers do not merge.
	Upsert(ctx context.Context, config *TemplateConfig) error
}
