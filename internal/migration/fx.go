package migration

import (
	"github.com/wellcrafted/invoicing/internal/config"
	customerdomain "github.com/wellcrafted/invoicing/internal/customer/domain"
	invoicedomain "github.com/wellcrafted/invoicing/internal/invoice/domain"
	orderdomain "github.com/wellcrafted/invoicing/internal/order/domain"
	orgdomain "github.com/wellcrafted/invoicing/internal/organization/domain"
	"github.com/wellcrafted/invoicing/internal/seed"
	taxdomain "github.com/wellcrafted/invoicing/internal/tax/domain"
	templatedomain "github.com/wellcrafted/invoicing/internal/template/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			// Non-Postgres databases (sqlite for local development)
			// derive the schema from the models instead.
			if err := conn.AutoMigrate(
				&orgdomain.Tenant{},
				&customerdomain.Customer{},
				&orderdomain.SKU{},
				&orderdomain.Order{},
				&orderdomain.OrderLine{},
				&taxdomain.TaxRule{},
				&templatedomain.TemplateConfig{},
				&invoicedomain.Invoice{},
			); err != nil {
				return err
			}
		}

		if cfg.SeedDemoData {
			return seed.EnsureDemoData(conn)
		}
		return nil
	}),
)
