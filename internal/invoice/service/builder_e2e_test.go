package service

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wellcrafted/invoicing/internal/clock"
	"github.com/wellcrafted/invoicing/internal/config"
	"github.com/wellcrafted/invoicing/internal/customer"
	customerdomain "github.com/wellcrafted/invoicing/internal/customer/domain"
	"github.com/wellcrafted/invoicing/internal/format"
	invoicedomain "github.com/wellcrafted/invoicing/internal/invoice/domain"
	"github.com/wellcrafted/invoicing/internal/invoice/render"
	invoicerepository "github.com/wellcrafted/invoicing/internal/invoice/repository"
	"github.com/wellcrafted/invoicing/internal/order"
	orderdomain "github.com/wellcrafted/invoicing/internal/order/domain"
	"github.com/wellcrafted/invoicing/internal/organization"
	orgdomain "github.com/wellcrafted/invoicing/internal/organization/domain"
	"github.com/wellcrafted/invoicing/internal/tax"
	taxdomain "github.com/wellcrafted/invoicing/internal/tax/domain"
	"github.com/wellcrafted/invoicing/internal/template"
	templatedomain "github.com/wellcrafted/invoicing/internal/template/domain"
	"github.com/wellcrafted/invoicing/pkg/money"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// buildEnv is the wired slice of the app the invoice tests exercise.
type buildEnv struct {
	db        *gorm.DB
	node      *snowflake.Node
	clock     *clock.FakeClock
	orders    orderdomain.Repository
	customers customerdomain.Repository
	tenants   orgdomain.Repository
	builder   invoicedomain.Builder
	invoices  invoicedomain.Service
	app       *fx.App
}

func startBuildEnv(t *testing.T) *buildEnv {
	t.Helper()

	fake := clock.NewFakeClock(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	env := &buildEnv{clock: fake}

	app := fx.New(
		fx.NopLogger,
		fx.Provide(func() (*gorm.DB, error) {
			db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
			if err != nil {
				return nil, err
			}
			err = db.AutoMigrate(
				&orgdomain.Tenant{},
				&customerdomain.Customer{},
				&orderdomain.SKU{},
				&orderdomain.Order{},
				&orderdomain.OrderLine{},
				&taxdomain.TaxRule{},
				&templatedomain.TemplateConfig{},
				&invoicedomain.Invoice{},
			)
			return db, err
		}),
		fx.Provide(func() *zap.Logger { return zap.NewNop() }),
		fx.Provide(func() clock.Clock { return fake }),
		fx.Provide(func() (*snowflake.Node, error) { return snowflake.NewNode(1) }),
		fx.Provide(config.NewTaxConfigHolder),
		organization.Module,
		customer.Module,
		order.Module,
		tax.Module,
		template.Module,
		// The invoice providers are wired directly rather than through
		// the package's fx module, which would import this package back.
		fx.Provide(invoicerepository.NewRepository),
		fx.Provide(render.NewHTMLRenderer),
		fx.Provide(NewBuilder),
		fx.Provide(NewService),
		fx.Populate(&env.db, &env.node, &env.orders, &env.customers, &env.tenants, &env.builder, &env.invoices),
	)
	require.NoError(t, app.Err())
	env.app = app
	t.Cleanup(func() { _ = app.Stop(context.Background()) })
	return env
}

// seedScenario inserts the tenant, customer, SKU, and a 12-bottle
// order of 750ml wine at $14.50 per bottle.
func seedScenario(t *testing.T, env *buildEnv, customerState string) (snowflake.ID, snowflake.ID) {
	t.Helper()
	ctx := context.Background()

	tenant := &orgdomain.Tenant{
		ID:                      env.node.Generate(),
		Name:                    "Blue Ridge Wine Distributors",
		State:                   "VA",
		Street:                  "12 Vine St",
		City:                    "Richmond",
		Zip:                     "23220",
		WholesalerLicenseNumber: "WL-1234",
	}
	require.NoError(t, env.tenants.Create(ctx, tenant))

	cust := &customerdomain.Customer{
		ID:             env.node.Generate(),
		TenantID:       tenant.ID,
		Name:           "Cork & Fork Bistro",
		CustomerNumber: "C-0042",
		State:          customerState,
		PaymentTerms:   "Net 30 Days",
		BillingAddress: customerdomain.Address{
			Street: "88 Main St", City: "Norfolk", State: customerState, Zip: "23510",
		},
	}
	require.NoError(t, env.customers.Create(ctx, cust))

	itemsPerCase := 12
	sku := &orderdomain.SKU{
		ID:            env.node.Generate(),
		TenantID:      tenant.ID,
		Code:          "CHRD-750",
		ProductName:   "Estate Chardonnay 2024",
		Size:          "750ml",
		ItemsPerCase:  &itemsPerCase,
		ABCCodeNumber: "012345",
	}
	require.NoError(t, env.orders.CreateSKU(ctx, sku))

	ord := &orderdomain.Order{
		ID:          env.node.Generate(),
		TenantID:    tenant.ID,
		CustomerID:  cust.ID,
		OrderNumber: "SO-1001",
		Status:      orderdomain.StatusConfirmed,
		OrderDate:   env.clock.Now(),
		Lines: []orderdomain.OrderLine{{
			ID:        env.node.Generate(),
			SKUID:     sku.ID,
			Quantity:  12,
			UnitPrice: money.MustParse("14.50"),
		}},
	}
	require.NoError(t, env.orders.Create(ctx, ord))

	return tenant.ID, ord.ID
}

func TestBuildInvoiceDataInStateScenario(t *testing.T) {
	env := startBuildEnv(t)
	tenantID, orderID := seedScenario(t, env, "VA")

	data, err := env.builder.BuildInvoiceData(context.Background(), invoicedomain.BuildRequest{
		TenantID: tenantID,
		OrderID:  orderID,
	})
	require.NoError(t, err)

	assert.Equal(t, format.VAABCInState, data.Format)

	require.Len(t, data.Lines, 1)
	line := data.Lines[0]
	assert.True(t, line.TotalLiters.Equal(money.MustParse("9")), "liters: %s", line.TotalLiters)
	assert.True(t, line.CasesQuantity.Equal(money.New(1)), "cases: %s", line.CasesQuantity)
	assert.True(t, line.LineTotal.Equal(money.MustParse("174.00")), "line total: %s", line.LineTotal)
	assert.Equal(t, "1.00 cs / 12 btl", line.QuantityDisplay)

	assert.True(t, data.Subtotal.Equal(money.MustParse("174.00")), "subtotal: %s", data.Subtotal)
	assert.True(t, data.ExciseTax.Equal(money.MustParse("3.60")), "excise: %s", data.ExciseTax)
	assert.True(t, data.SalesTax.IsZero(), "sales: %s", data.SalesTax)
	assert.True(t, data.Total.Equal(money.MustParse("177.60")), "total: %s", data.Total)

	// Snapshot invariants.
	assert.True(t, data.Total.Equal(data.Subtotal.Add(data.TotalTax)))
	assert.True(t, data.TotalLiters.Equal(money.MustParse("9")))

	// Net 30 from the issue date.
	assert.Equal(t, env.clock.Now().AddDate(0, 0, 30), data.DueAt)

	assert.NotEmpty(t, data.CollectionTerms)
	assert.Contains(t, data.ComplianceNotice, "excise")
	assert.Equal(t, templatedomain.BaseVAInState, data.TemplateSettings.BaseTemplate)
}

func TestBuildInvoiceDataOutOfStateScenario(t *testing.T) {
	env := startBuildEnv(t)
	tenantID, orderID := seedScenario(t, env, "MD")

	data, err := env.builder.BuildInvoiceData(context.Background(), invoicedomain.BuildRequest{
		TenantID: tenantID,
		OrderID:  orderID,
	})
	require.NoError(t, err)

	assert.Equal(t, format.VAABCTaxExempt, data.Format)
	assert.True(t, data.ExciseTax.IsZero(), "excise: %s", data.ExciseTax)
	assert.True(t, data.TotalTax.IsZero())
	assert.True(t, data.Total.Equal(money.MustParse("174.00")), "total: %s", data.Total)
	assert.Equal(t, templatedomain.BaseVATaxExempt, data.TemplateSettings.BaseTemplate)
}

func TestBuildInvoiceDataFormatOverride(t *testing.T) {
	env := startBuildEnv(t)
	tenantID, orderID := seedScenario(t, env, "VA")

	override := format.Standard
	data, err := env.builder.BuildInvoiceData(context.Background(), invoicedomain.BuildRequest{
		TenantID:       tenantID,
		OrderID:        orderID,
		FormatOverride: &override,
	})
	require.NoError(t, err)

	assert.Equal(t, format.Standard, data.Format)
	// Standard invoices carry no excise line even for VA customers.
	assert.True(t, data.ExciseTax.IsZero())
}

func TestBuildInvoiceDataOrderNotFound(t *testing.T) {
	env := startBuildEnv(t)
	tenantID, _ := seedScenario(t, env, "VA")

	_, err := env.builder.BuildInvoiceData(context.Background(), invoicedomain.BuildRequest{
		TenantID: tenantID,
		OrderID:  env.node.Generate(),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, orderdomain.ErrNotFound)
}

func TestCreateInvoiceAssignsSequentialNumbers(t *testing.T) {
	env := startBuildEnv(t)
	ctx := context.Background()
	tenantID, orderID := seedScenario(t, env, "VA")

	first, err := env.invoices.CreateInvoice(ctx, invoicedomain.BuildRequest{
		TenantID: tenantID,
		OrderID:  orderID,
	})
	require.NoError(t, err)
	assert.Equal(t, "INV-202603-0001", first.InvoiceNumber)
	assert.Equal(t, invoicedomain.StatusDraft, first.Status)

	// Second order for the same tenant in the same month.
	cust2 := &customerdomain.Customer{
		ID: env.node.Generate(), TenantID: tenantID, Name: "Harbor Cellars", State: "VA",
	}
	require.NoError(t, env.customers.Create(ctx, cust2))
	ord2 := &orderdomain.Order{
		ID: env.node.Generate(), TenantID: tenantID, CustomerID: cust2.ID,
		OrderNumber: "SO-1002", OrderDate: env.clock.Now(),
		Lines: []orderdomain.OrderLine{{
			ID: env.node.Generate(), SKUID: 0, Quantity: 6, UnitPrice: money.MustParse("10.00"),
		}},
	}
	require.NoError(t, env.orders.Create(ctx, ord2))

	second, err := env.invoices.CreateInvoice(ctx, invoicedomain.BuildRequest{
		TenantID: tenantID,
		OrderID:  ord2.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "INV-202603-0002", second.InvoiceNumber)

	// A new month restarts the sequence.
	env.clock.Advance(31 * 24 * time.Hour)
	cust3 := &customerdomain.Customer{
		ID: env.node.Generate(), TenantID: tenantID, Name: "Skyline Taproom", State: "VA",
	}
	require.NoError(t, env.customers.Create(ctx, cust3))
	ord3 := &orderdomain.Order{
		ID: env.node.Generate(), TenantID: tenantID, CustomerID: cust3.ID,
		OrderNumber: "SO-1003", OrderDate: env.clock.Now(),
		Lines: []orderdomain.OrderLine{{
			ID: env.node.Generate(), SKUID: 0, Quantity: 1, UnitPrice: money.MustParse("20.00"),
		}},
	}
	require.NoError(t, env.orders.Create(ctx, ord3))

	third, err := env.invoices.CreateInvoice(ctx, invoicedomain.BuildRequest{
		TenantID: tenantID,
		OrderID:  ord3.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "INV-202604-0001", third.InvoiceNumber)
}

func TestCreateInvoicePersistsSnapshotAndLineValues(t *testing.T) {
	env := startBuildEnv(t)
	ctx := context.Background()
	tenantID, orderID := seedScenario(t, env, "VA")

	created, err := env.invoices.CreateInvoice(ctx, invoicedomain.BuildRequest{
		TenantID: tenantID,
		OrderID:  orderID,
	})
	require.NoError(t, err)

	loaded, err := env.invoices.GetInvoice(ctx, tenantID, created.ID)
	require.NoError(t, err)

	var snapshot invoicedomain.CompleteInvoiceData
	require.NoError(t, json.Unmarshal(loaded.Snapshot, &snapshot))
	assert.Equal(t, created.InvoiceNumber, snapshot.InvoiceNumber)
	assert.True(t, snapshot.Total.Equal(money.MustParse("177.60")))

	// Computed cases and liters were written back onto the order line.
	ord, err := env.orders.FindByID(ctx, tenantID, orderID)
	require.NoError(t, err)
	require.Len(t, ord.Lines, 1)
	require.NotNil(t, ord.Lines[0].CasesQuantity)
	require.NotNil(t, ord.Lines[0].TotalLiters)
	assert.True(t, ord.Lines[0].CasesQuantity.Equal(money.New(1)))
	assert.True(t, ord.Lines[0].TotalLiters.Equal(money.MustParse("9")))
	assert.Equal(t, orderdomain.StatusInvoiced, ord.Status)

	// Creating again for the same order is rejected.
	_, err = env.invoices.CreateInvoice(ctx, invoicedomain.BuildRequest{
		TenantID: tenantID,
		OrderID:  orderID,
	})
	assert.ErrorIs(t, err, invoicedomain.ErrAlreadyInvoiced)
}

func TestRenderInvoiceHTML(t *testing.T) {
	env := startBuildEnv(t)
	ctx := context.Background()
	tenantID, orderID := seedScenario(t, env, "VA")

	created, err := env.invoices.CreateInvoice(ctx, invoicedomain.BuildRequest{
		TenantID: tenantID,
		OrderID:  orderID,
	})
	require.NoError(t, err)

	html, err := env.invoices.RenderInvoiceHTML(ctx, tenantID, created.ID)
	require.NoError(t, err)

	assert.True(t, strings.Contains(html, created.InvoiceNumber))
	assert.Contains(t, html, "Estate Chardonnay 2024")
	assert.Contains(t, html, "Virginia ABC")
	assert.Contains(t, html, "$174.00")
	assert.Contains(t, html, "$177.60")
}
