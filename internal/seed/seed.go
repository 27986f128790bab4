// Package seed loads demo data for local evaluation: a Virginia
// distributor, two licensed customers, a small wine catalog, and
// confirmed orders ready to invoice.
package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	customerdomain "github.com/wellcrafted/invoicing/internal/customer/domain"
	orderdomain "github.com/wellcrafted/invoicing/internal/order/domain"
	orgdomain "github.com/wellcrafted/invoicing/internal/organization/domain"
	"github.com/wellcrafted/invoicing/pkg/money"
	"gorm.io/gorm"
)

const demoTenantName = "Blue Ridge Wine Distributors"

// EnsureDemoData seeds the demo tenant and its orders. Idempotent:
// an existing demo tenant short-circuits the whole load.
func EnsureDemoData(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing orgdomain.Tenant
		err := tx.Where("name = ?", demoTenantName).First(&existing).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return loadDemoData(tx, node)
	})
}

func loadDemoData(tx *gorm.DB, node *snowflake.Node) error {
	now := time.Now().UTC()

	tenant := &orgdomain.Tenant{
		ID:                      node.Generate(),
		Name:                    demoTenantName,
		State:                   "VA",
		Street:                  "12 Vine St",
		City:                    "Richmond",
		Zip:                     "23220",
		Phone:                   "(804) 555-0147",
		Email:                   "orders@blueridgewine.example",
		WholesalerLicenseNumber: "WL-1234",
	}
	if err := tx.Create(tenant).Error; err != nil {
		return err
	}

	bistro := &customerdomain.Customer{
		ID:               node.Generate(),
		TenantID:         tenant.ID,
		Name:             "Cork & Fork Bistro",
		CustomerNumber:   "C-0042",
		State:            "VA",
		PaymentTerms:     "Net 30 Days",
		ABCLicenseNumber: "012-34567",
		SalesRepName:     "Dana Whitfield",
		BillingAddress: customerdomain.Address{
			Street: "88 Main St",
			City:   "Norfolk",
			State:  "VA",
			Zip:    "23510",
		},
	}
	shop := &customerdomain.Customer{
		ID:             node.Generate(),
		TenantID:       tenant.ID,
		Name:           "Capitol Bottle Shop",
		CustomerNumber: "C-0043",
		State:          "DC",
		PaymentTerms:   "C.O.D.",
		BillingAddress: customerdomain.Address{
			Street: "450 K St NW",
			City:   "Washington",
			State:  "DC",
			Zip:    "20001",
		},
	}
	if err := tx.Create([]*customerdomain.Customer{bistro, shop}).Error; err != nil {
		return err
	}

	twelvePerCase := 12
	sixPerCase := 6
	chardonnay := &orderdomain.SKU{
		ID:            node.Generate(),
		TenantID:      tenant.ID,
		Code:          "CHRD-750",
		ProductName:   "Estate Chardonnay 2024",
		Size:          "750ml",
		ItemsPerCase:  &twelvePerCase,
		ABCCodeNumber: "012345",
	}
	magnum := &orderdomain.SKU{
		ID:            node.Generate(),
		TenantID:      tenant.ID,
		Code:          "CABF-1500",
		ProductName:   "Reserve Cabernet Franc 2022",
		Size:          "1.5L",
		ItemsPerCase:  &sixPerCase,
		ABCCodeNumber: "067890",
	}
	if err := tx.Create([]*orderdomain.SKU{chardonnay, magnum}).Error; err != nil {
		return err
	}

	orders := []*orderdomain.Order{
		{
			ID:          node.Generate(),
			TenantID:    tenant.ID,
			CustomerID:  bistro.ID,
			OrderNumber: "SO-1001",
			Status:      orderdomain.StatusConfirmed,
			OrderDate:   now,
			Lines: []orderdomain.OrderLine{
				{
					ID:        node.Generate(),
					SKUID:     chardonnay.ID,
					Quantity:  12,
					UnitPrice: money.MustParse("14.50"),
				},
				{
					ID:        node.Generate(),
					SKUID:     magnum.ID,
					Quantity:  6,
					UnitPrice: money.MustParse("32.00"),
				},
			},
		},
		{
			ID:          node.Generate(),
			TenantID:    tenant.ID,
			CustomerID:  shop.ID,
			OrderNumber: "SO-1002",
			Status:      orderdomain.StatusConfirmed,
			OrderDate:   now,
			Lines: []orderdomain.OrderLine{{
				ID:        node.Generate(),
				SKUID:     chardonnay.ID,
				Quantity:  24,
				UnitPrice: money.MustParse("13.75"),
			}},
		},
	}
	for _, ord := range orders {
		if err := tx.Create(ord).Error; err != nil {
			return err
		}
	}
	return nil
}
