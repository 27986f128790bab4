package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	orderdomain "github.com/wellcrafted/invoicing/internal/order/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) orderdomain.Repository {
	return &repository{db: db}
}

func (r *repository) FindByID(ctx context.Context, tenantID, id snowflake.ID) (*orderdomain.Order, error) {
	var order orderdomain.Order
	err := r.db.WithContext(ctx).
		Preload("Lines").
		Preload("Lines.SKU").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, orderdomain.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *repository) CustomerID(ctx context.Context, tenantID, id snowflake.ID) (snowflake.ID, error) {
	var ids []snowflake.ID
	err := r.db.WithContext(ctx).
		Model(&orderdomain.Order{}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Limit(1).
		Pluck("customer_id", &ids).Error
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, orderdomain.ErrNotFound
	}
	return ids[0], nil
}

func (r *repository) SaveCalculatedLineValues(ctx context.Context, calcs []orderdomain.LineCalc) error {
	if len(calcs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()
		for _, calc := range calcs {
			err := tx.Model(&orderdomain.OrderLine{}).
				Where("id = ?", calc.LineID).
				Updates(map[string]any{
					"cases_quantity": calc.CasesQuantity,
					"total_liters":   calc.TotalLiters,
					"updated_at":     now,
				}).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *repository) MarkInvoiced(ctx context.Context, tenantID, id snowflake.ID) error {
	res := r.db.WithContext(ctx).
		Model(&orderdomain.Order{}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Updates(map[string]any{
			"status":     orderdomain.StatusInvoiced,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return orderdomain.ErrNotFound
	}
	return nil
}

func (r *repository) Create(ctx context.Context, order *orderdomain.Order) error {
	if order.TenantID == 0 || order.CustomerID == 0 {
		return orderdomain.ErrInvalidOrder
	}
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *repository) CreateSKU(ctx context.Context, sku *orderdomain.SKU) error {
	return r.db.WithContext(ctx).Create(sku).Error
}
