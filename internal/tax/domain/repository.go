package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

type Repository interface {
	// FindLatestRule returns the most-recently-effective, non-expired
	// rule for the scope, or nil when no rule applies. Absence is not
	// an error.
	FindLatestRule(ctx context.Context, tenantID snowflake.ID, jurisdiction string, taxType TaxType, asOf time.Time) (*TaxRule, error)
	Create(ctx context.Context, rule *TaxRule) error
	List(ctx context.Context, tenantID snowflake.ID, filter ListRequest) ([]TaxRule, error)
	FindByID(ctx context.Context, tenantID, id snowflake.ID) (*TaxRule, error)
	Update(ctx context.Context, rule *TaxRule) error
}
