package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/wellcrafted/invoicing/internal/clock"
	"github.com/wellcrafted/invoicing/internal/config"
	"github.com/wellcrafted/invoicing/internal/customer"
	"github.com/wellcrafted/invoicing/internal/invoice"
	"github.com/wellcrafted/invoicing/internal/migration"
	"github.com/wellcrafted/invoicing/internal/order"
	"github.com/wellcrafted/invoicing/internal/organization"
	"github.com/wellcrafted/invoicing/internal/server"
	"github.com/wellcrafted/invoicing/internal/tax"
	"github.com/wellcrafted/invoicing/internal/template"
	"github.com/wellcrafted/invoicing/pkg/db"
	"github.com/wellcrafted/invoicing/pkg/log"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		log.Module,
		fx.Provide(registerSnowflake),
		fx.Provide(config.NewTaxConfigHolder),
		db.Module,
		clock.Module,
		migration.Module,

		// Domains
		organization.Module,
		customer.Module,
		order.Module,
		tax.Module,
		template.Module,
		invoice.Module,

		// HTTP surface
		server.Module,
	)
	app.Run()
}

func registerSnowflake() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}
