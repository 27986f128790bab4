package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	orgdomain "github.com/wellcrafted/invoicing/internal/organization/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) orgdomain.Repository {
	return &repository{db: db}
}

func (r *repository) FindByID(ctx context.Context, id snowflake.ID) (*orgdomain.Tenant, error) {
	var tenant orgdomain.Tenant
	err := r.db.WithContext(ctx).First(&tenant, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, orgdomain.ErrNotFound
		}
		return nil, err
	}
	return &tenant, nil
}

func (r *repository) Create(ctx context.Context, tenant *orgdomain.Tenant) error {
	if tenant.Name == "" || tenant.State == "" {
		return orgdomain.ErrInvalidOrganization
	}
	return r.db.WithContext(ctx).Create(tenant).Error
}
