package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/wellcrafted/invoicing/internal/format"
)

// Service resolves and updates template settings.
type Service interface {
	// Resolve returns the complete settings for a tenant and format.
	// Missing or invalid persisted config degrades to the format
	// defaults; Resolve never fails for config reasons.
	Resolve(ctx context.Context, tenantID snowflake.ID, ft format.Type) (Settings, error)

	// Update validates and persists a partial config document, then
	// returns the settings resolved from it.
	Update(ctx context.Context, tenantID snowflake.ID, ft format.Type, doc *ConfigDocument) (Settings, error)
}
