package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/wellcrafted/invoicing/internal/config"
	"github.com/wellcrafted/invoicing/internal/format"
	taxdomain "github.com/wellcrafted/invoicing/internal/tax/domain"
	"github.com/wellcrafted/invoicing/pkg/money"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type resolverParam struct {
	fx.In

	Log       *zap.Logger
	Repo      taxdomain.Repository
	TaxConfig *config.TaxConfigHolder
}

type resolver struct {
	log  *zap.Logger
	repo taxdomain.Repository
	cfg  *config.TaxConfigHolder
}

// NewResolver returns the rate resolver: persisted rules first,
// configured jurisdiction defaults as the fallback.
func NewResolver(p resolverParam) taxdomain.Resolver {
	return &resolver{
		log:  p.Log.Named("tax.resolver"),
		repo: p.Repo,
		cfg:  p.TaxConfig,
	}
}

func (r *resolver) ResolveRate(ctx context.Context, tenantID snowflake.ID, jurisdiction string, taxType taxdomain.TaxType, asOf time.Time) (money.Amount, error) {
	rule, err := r.repo.FindLatestRule(ctx, tenantID, jurisdiction, taxType, asOf)
	if err != nil {
		return money.Zero, err
	}
	if rule != nil {
		return rule.Rate, nil
	}

	// No persisted rule: fall back to the configured VA defaults.
	cfg := r.cfg.Get()
	switch taxType {
	case taxdomain.TaxTypeExcise:
		return money.MustParse(cfg.ExcisePerLiter), nil
	case taxdomain.TaxTypeSales:
		return money.MustParse(cfg.SalesRate), nil
	}
	return money.Zero, nil
}

type calculatorParam struct {
	fx.In

	Log      *zap.Logger
	Resolver taxdomain.Resolver
}

type calculator struct {
	log      *zap.Logger
	resolver taxdomain.Resolver
}

// NewCalculator returns the invoice tax calculator.
func NewCalculator(p calculatorParam) taxdomain.Calculator {
	return &calculator{
		log:      p.Log.Named("tax.calculator"),
		resolver: p.Resolver,
	}
}

// CalculateInvoiceTaxes computes the excise and sales tax lines.
//
// Excise applies only when the distributor's home state is the
// regulated jurisdiction AND the caller requested it: liters × rate.
// Sales tax applies only when requested: subtotal × rate. A missing
// rule or flag yields a zero line, never an error.
func (c *calculator) CalculateInvoiceTaxes(ctx context.Context, in taxdomain.CalculateInput) (taxdomain.CalculateResult, error) {
	result := taxdomain.CalculateResult{
		ExciseTax: money.Zero,
		SalesTax:  money.Zero,
		TotalTax:  money.Zero,
	}

	domestic := strings.EqualFold(strings.TrimSpace(in.DistributorState), format.RegulatedState)

	if in.IncludeExcise && domestic {
		rate, err := c.resolver.ResolveRate(ctx, in.TenantID, format.RegulatedState, taxdomain.TaxTypeExcise, in.AsOf)
		if err != nil {
			return result, err
		}
		result.ExciseTax = in.TotalLiters.Mul(rate)
	}

	if in.IncludeSales {
		rate, err := c.resolver.ResolveRate(ctx, in.TenantID, format.RegulatedState, taxdomain.TaxTypeSales, in.AsOf)
		if err != nil {
			return result, err
		}
		result.SalesTax = in.Subtotal.Mul(rate)
	}

	result.TotalTax = result.ExciseTax.Add(result.SalesTax)
	return result, nil
}
