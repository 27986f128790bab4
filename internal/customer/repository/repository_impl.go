package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	customerdomain "github.com/wellcrafted/invoicing/internal/customer/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) customerdomain.Repository {
	return &repository{db: db}
}

func (r *repository) FindByID(ctx context.Context, tenantID, id snowflake.ID) (*customerdomain.Customer, error) {
	var customer customerdomain.Customer
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&customer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, customerdomain.ErrNotFound
		}
		return nil, err
	}
	return &customer, nil
}

func (r *repository) Create(ctx context.Context, customer *customerdomain.Customer) error {
	if customer.TenantID == 0 || customer.Name == "" {
		return customerdomain.ErrInvalidCustomer
	}
	return r.db.WithContext(ctx).Create(customer).Error
}
