package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/wellcrafted/invoicing/internal/format"
	templatedomain "github.com/wellcrafted/invoicing/internal/template/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) templatedomain.Repository {
	return &repository{db: db}
}

func (r *repository) FindByScope(ctx context.Context, tenantID snowflake.ID, ft format.Type) (*templatedomain.TemplateConfig, error) {
	var config templatedomain.TemplateConfig
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND format = ?", tenantID, ft).
		First(&config).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, templatedomain.ErrNotFound
		}
		return nil, err
	}
	return &config, nil
}

func (r *repository) Upsert(ctx context.Context, config *templatedomain.TemplateConfig) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "tenant_id"}, {Name: "format"}},
			DoUpdates: clause.AssignmentColumns([]string{"document", "updated_at"}),
		}).
		Create(config).Error
}
