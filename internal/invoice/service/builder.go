package service

import (
	"context"
	"fmt"
	"time"

	"github.com/wellcrafted/invoicing/internal/clock"
	"github.com/wellcrafted/invoicing/internal/config"
	customerdomain "github.com/wellcrafted/invoicing/internal/customer/domain"
	"github.com/wellcrafted/invoicing/internal/format"
	"github.com/wellcrafted/invoicing/internal/interest"
	invoicedomain "github.com/wellcrafted/invoicing/internal/invoice/domain"
	"github.com/wellcrafted/invoicing/internal/observability/metrics"
	orderdomain "github.com/wellcrafted/invoicing/internal/order/domain"
	orgdomain "github.com/wellcrafted/invoicing/internal/organization/domain"
	taxdomain "github.com/wellcrafted/invoicing/internal/tax/domain"
	templatedomain "github.com/wellcrafted/invoicing/internal/template/domain"
	"github.com/wellcrafted/invoicing/internal/terms"
	"github.com/wellcrafted/invoicing/internal/unitconv"
	"github.com/wellcrafted/invoicing/pkg/money"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var tracer = otel.Tracer("invoicing/invoice")

type builderParams struct {
	fx.In

	Log       *zap.Logger
	Clock     clock.Clock
	TaxConfig *config.TaxConfigHolder

	Orders    orderdomain.Repository
	Customers customerdomain.Repository
	Tenants   orgdomain.Repository

	TaxCalculator taxdomain.Calculator
	Templates     templatedomain.Service
}

// Builder assembles invoice data snapshots. It performs no writes.
type Builder struct {
	log       *zap.Logger
	clock     clock.Clock
	taxConfig *config.TaxConfigHolder

	orders    orderdomain.Repository
	customers customerdomain.Repository
	tenants   orgdomain.Repository

	taxCalc   taxdomain.Calculator
	templates templatedomain.Service
}

func NewBuilder(p builderParams) invoicedomain.Builder {
	return &Builder{
		log:       p.Log.Named("invoice.builder"),
		clock:     p.Clock,
		taxConfig: p.TaxConfig,
		orders:    p.Orders,
		customers: p.Customers,
		tenants:   p.Tenants,
		taxCalc:   p.TaxCalculator,
		templates: p.Templates,
	}
}

// BuildInvoiceData assembles the complete snapshot for an order. The
// invoice number is left blank; number assignment happens at persist
// time where uniqueness can be enforced.
func (b *Builder) BuildInvoiceData(ctx context.Context, req invoicedomain.BuildRequest) (*invoicedomain.CompleteInvoiceData, error) {
	if req.TenantID == 0 {
		return nil, invoicedomain.ErrInvalidTenant
	}
	if req.OrderID == 0 {
		return nil, invoicedomain.ErrInvalidOrder
	}

	ctx, span := tracer.Start(ctx, "invoice.build")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("tenant_id", int64(req.TenantID)),
		attribute.Int64("order_id", int64(req.OrderID)),
	)
	started := time.Now()

	var (
		order    *orderdomain.Order
		customer *customerdomain.Customer
		tenant   *orgdomain.Tenant
	)

	// Order, customer, and tenant are independent reads.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		order, err = b.orders.FindByID(gctx, req.TenantID, req.OrderID)
		if err != nil {
			return fmt.Errorf("fetch order: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		tenant, err = b.tenants.FindByID(gctx, req.TenantID)
		if err != nil {
			return fmt.Errorf("fetch tenant: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		customerID, err := b.orders.CustomerID(gctx, req.TenantID, req.OrderID)
		if err != nil {
			return fmt.Errorf("fetch order customer id: %w", err)
		}
		customer, err = b.customers.FindByID(gctx, req.TenantID, customerID)
		if err != nil {
			return fmt.Errorf("fetch customer: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		metrics.Pipeline().IncBuildError(metrics.BuildErrorReasonNotFound)
		return nil, err
	}

	if len(order.Lines) == 0 {
		return nil, orderdomain.ErrNoLines
	}

	selected := format.Determine(format.Input{
		CustomerState:    customer.LicensingState(),
		DistributorState: tenant.HomeState(),
		Override:         req.FormatOverride,
	})

	lines, totalLiters, subtotal := b.enrichLines(order.Lines)

	// VA compliance invoices itemize excise but never sales tax as a
	// separate line.
	taxes, err := b.taxCalc.CalculateInvoiceTaxes(ctx, taxdomain.CalculateInput{
		TenantID:         req.TenantID,
		DistributorState: tenant.HomeState(),
		CustomerState:    customer.LicensingState(),
		TotalLiters:      totalLiters,
		Subtotal:         subtotal,
		IncludeExcise:    selected == format.VAABCInState,
		IncludeSales:     false,
		AsOf:             b.clock.Now(),
	})
	if err != nil {
		metrics.Pipeline().IncBuildError(metrics.BuildErrorReasonDB)
		return nil, fmt.Errorf("calculate taxes: %w", err)
	}

	settings, err := b.templates.Resolve(ctx, req.TenantID, selected)
	if err != nil {
		return nil, fmt.Errorf("resolve template settings: %w", err)
	}

	issuedAt := b.clock.Now()
	monthlyRate := b.monthlyInterestRate()

	data := &invoicedomain.CompleteInvoiceData{
		Format:       selected,
		CustomerID:   customer.ID,
		IssuedAt:     issuedAt,
		DueAt:        terms.DueDate(issuedAt, customer.PaymentTerms),
		PaymentTerms: string(terms.Normalize(customer.PaymentTerms)),

		Distributor: invoicedomain.Party{
			Name:    tenant.Name,
			Street:  tenant.Street,
			City:    tenant.City,
			State:   tenant.HomeState(),
			Zip:     tenant.Zip,
			Phone:   tenant.Phone,
			Email:   tenant.Email,
			License: tenant.WholesalerLicenseNumber,
		},
		BillTo: invoicedomain.Party{
			Name:    customer.Name,
			Street:  customer.BillingAddress.Street,
			City:    customer.BillingAddress.City,
			State:   customer.BillingAddress.State,
			Zip:     customer.BillingAddress.Zip,
			Phone:   customer.Phone,
			Email:   customer.Email,
			License: customer.ABCLicenseNumber,
		},
		ShipTo: shipToParty(order, customer),

		OrderNumber:         order.OrderNumber,
		PurchaseOrderNumber: order.PurchaseOrderNumber,
		CustomerNumber:      customer.CustomerNumber,
		SalesRepName:        customer.SalesRepName,

		Lines:       lines,
		TotalLiters: totalLiters,

		Subtotal:  subtotal,
		ExciseTax: taxes.ExciseTax,
		SalesTax:  taxes.SalesTax,
		TotalTax:  taxes.TotalTax,
		Total:     subtotal.Add(taxes.TotalTax),

		MonthlyInterestRate: monthlyRate,
		CollectionTerms:     interest.CollectionTerms(monthlyRate),
		ComplianceNotice:    complianceNotice(selected),

		TemplateSettings: settings,
	}

	metrics.Pipeline().ObserveBuildDuration(string(selected), time.Since(started))
	b.log.Debug("invoice data built",
		zap.Int64("tenant_id", int64(req.TenantID)),
		zap.Int64("order_id", int64(req.OrderID)),
		zap.String("format", string(selected)),
		zap.String("total", data.Total.String()),
	)
	return data, nil
}

// enrichLines converts each order line through unit conversion and
// exact pricing, returning the lines with invoice totals.
func (b *Builder) enrichLines(orderLines []orderdomain.OrderLine) ([]invoicedomain.EnrichedOrderLine, money.Amount, money.Amount) {
	lines := make([]invoicedomain.EnrichedOrderLine, 0, len(orderLines))
	literLines := make([]unitconv.LiterLine, 0, len(orderLines))
	subtotal := money.Zero

	for _, ol := range orderLines {
		var (
			size         string
			itemsPerCase *int
			presetLiters *money.Amount
			sku          orderdomain.SKU
		)
		if ol.SKU != nil {
			sku = *ol.SKU
			size = sku.Size
			itemsPerCase = sku.ItemsPerCase
			presetLiters = sku.Liters
		}

		bottleLiters := unitconv.ParseBottleSizeToLiters(size)
		if presetLiters != nil && presetLiters.IsPositive() {
			bottleLiters = *presetLiters
		}
		totalLiters := bottleLiters.Mul(money.New(int64(ol.Quantity)))

		lineTotal := ol.UnitPrice.Mul(money.New(int64(ol.Quantity)))
		subtotal = subtotal.Add(lineTotal)

		lines = append(lines, invoicedomain.EnrichedOrderLine{
			OrderLineID:     ol.ID,
			SKUCode:         sku.Code,
			ProductName:     sku.ProductName,
			ProductCategory: sku.ProductCategory,
			Description:     firstNonEmpty(ol.Description, sku.Description),
			Size:            size,
			ABCCodeNumber:   sku.ABCCodeNumber,
			Quantity:        ol.Quantity,
			CasesQuantity:   unitconv.BottlesToCases(ol.Quantity, itemsPerCase),
			TotalLiters:     totalLiters,
			UnitPrice:       ol.UnitPrice,
			BottlePrice:     ol.UnitPrice,
			LineTotal:       lineTotal,
			QuantityDisplay: unitconv.DisplayFormat(ol.Quantity, itemsPerCase),
		})
		literLines = append(literLines, unitconv.LiterLine{
			Quantity:    ol.Quantity,
			BottleSize:  size,
			TotalLiters: &totalLiters,
		})
	}

	return lines, unitconv.InvoiceTotalLiters(literLines), subtotal
}

func (b *Builder) monthlyInterestRate() money.Amount {
	if b.taxConfig == nil {
		return interest.DefaultMonthlyRate
	}
	rate, err := money.Parse(b.taxConfig.Get().MonthlyInterestRate)
	if err != nil {
		return interest.DefaultMonthlyRate
	}
	return rate
}

func complianceNotice(selected format.Type) string {
	switch selected {
	case format.VAABCInState:
		return interest.ComplianceNotice(false)
	case format.VAABCTaxExempt:
		return interest.ComplianceNotice(true)
	default:
		return ""
	}
}

func shipToParty(order *orderdomain.Order, customer *customerdomain.Customer) invoicedomain.Party {
	ship := order.ShipTo
	if ship.Name == "" && ship.Street == "" {
		// No explicit ship-to means deliver to the billing address.
		return invoicedomain.Party{
			Name:   customer.Name,
			Street: customer.BillingAddress.Street,
			City:   customer.BillingAddress.City,
			State:  customer.BillingAddress.State,
			Zip:    customer.BillingAddress.Zip,
		}
	}
	return invoicedomain.Party{
		Name:   ship.Name,
		Street: ship.Street,
		City:   ship.City,
		State:  ship.State,
		Zip:    ship.Zip,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
