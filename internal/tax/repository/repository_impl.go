package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	taxdomain "github.com/wellcrafted/invoicing/internal/tax/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) taxdomain.Repository {
	return &repository{db: db}
}

func (r *repository) FindLatestRule(ctx context.Context, tenantID snowflake.ID, jurisdiction string, taxType taxdomain.TaxType, asOf time.Time) (*taxdomain.TaxRule, error) {
	var rule taxdomain.TaxRule
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND jurisdiction = ? AND tax_type = ?", tenantID, jurisdiction, taxType).
		Where("effective_date <= ?", asOf).
		Where("expiry_date IS NULL OR expiry_date >= ?", asOf).
		Order("effective_date DESC").
		First(&rule).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rule, nil
}

func (r *repository) Create(ctx context.Context, rule *taxdomain.TaxRule) error {
	return r.db.WithContext(ctx).Create(rule).Error
}

func (r *repository) List(ctx context.Context, tenantID snowflake.ID, filter taxdomain.ListRequest) ([]taxdomain.TaxRule, error) {
	stmt := r.db.WithContext(ctx).
		Model(&taxdomain.TaxRule{}).
		Where("tenant_id = ?", tenantID)

	if filter.Jurisdiction != "" {
		stmt = stmt.Where("jurisdiction = ?", filter.Jurisdiction)
	}
	if filter.TaxType != nil {
		stmt = stmt.Where("tax_type = ?", *filter.TaxType)
	}
	if filter.ActiveAt != nil {
		stmt = stmt.
			Where("effective_date <= ?", *filter.ActiveAt).
			Where("expiry_date IS NULL OR expiry_date >= ?", *filter.ActiveAt)
	}

	var items []taxdomain.TaxRule
	err := stmt.Order("jurisdiction ASC, tax_type ASC, effective_date DESC").Find(&items).Error
	return items, err
}

func (r *repository) FindByID(ctx context.Context, tenantID, id snowflake.ID) (*taxdomain.TaxRule, error) {
	var rule taxdomain.TaxRule
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&rule).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rule, nil
}

func (r *repository) Update(ctx context.Context, rule *taxdomain.TaxRule) error {
	return r.db.WithContext(ctx).Save(rule).Error
}
