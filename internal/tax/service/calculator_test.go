package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wellcrafted/invoicing/internal/config"
	taxdomain "github.com/wellcrafted/invoicing/internal/tax/domain"
	taxrepository "github.com/wellcrafted/invoicing/internal/tax/repository"
	"github.com/wellcrafted/invoicing/pkg/money"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupTaxTest(t *testing.T) (*gorm.DB, taxdomain.Repository, taxdomain.Calculator, *snowflake.Node) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&taxdomain.TaxRule{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	repo := taxrepository.NewRepository(db)
	taxCfg, err := config.NewTaxConfigHolder()
	require.NoError(t, err)

	resolver := NewResolver(resolverParam{
		Log:       zap.NewNop(),
		Repo:      repo,
		TaxConfig: taxCfg,
	})
	calc := NewCalculator(calculatorParam{
		Log:      zap.NewNop(),
		Resolver: resolver,
	})
	return db, repo, calc, node
}

func seedRule(t *testing.T, repo taxdomain.Repository, node *snowflake.Node, tenantID snowflake.ID, taxType taxdomain.TaxType, rate string, effective time.Time, expiry *time.Time) *taxdomain.TaxRule {
	t.Helper()
	rule := &taxdomain.TaxRule{
		ID:            node.Generate(),
		TenantID:      tenantID,
		Jurisdiction:  "VA",
		TaxType:       taxType,
		Rate:          money.MustParse(rate),
		PerLiter:      taxType == taxdomain.TaxTypeExcise,
		EffectiveDate: effective,
		ExpiryDate:    expiry,
	}
	require.NoError(t, repo.Create(context.Background(), rule))
	return rule
}

// In-state invoice, 9 liters at the fallback $0.40/liter rate.
func TestCalculateExciseFallbackRate(t *testing.T) {
	_, _, calc, node := setupTaxTest(t)

	res, err := calc.CalculateInvoiceTaxes(context.Background(), taxdomain.CalculateInput{
		TenantID:         node.Generate(),
		DistributorState: "VA",
		CustomerState:    "VA",
		TotalLiters:      money.New(9),
		Subtotal:         money.New(174),
		IncludeExcise:    true,
		AsOf:             time.Now().UTC(),
	})
	require.NoError(t, err)

	assert.True(t, res.ExciseTax.Equal(money.MustParse("3.60")), "excise %s", res.ExciseTax)
	assert.True(t, res.SalesTax.IsZero())
	assert.True(t, res.TotalTax.Equal(money.MustParse("3.60")))
}

// Out-of-region distributor never owes VA excise, even when requested.
func TestCalculateExciseGatedByDistributorState(t *testing.T) {
	_, _, calc, node := setupTaxTest(t)

	res, err := calc.CalculateInvoiceTaxes(context.Background(), taxdomain.CalculateInput{
		TenantID:         node.Generate(),
		DistributorState: "NC",
		CustomerState:    "VA",
		TotalLiters:      money.New(9),
		Subtotal:         money.New(174),
		IncludeExcise:    true,
		IncludeSales:     false,
		AsOf:             time.Now().UTC(),
	})
	require.NoError(t, err)
	assert.True(t, res.TotalTax.IsZero(), "total %s", res.TotalTax)
}

func TestCalculateSalesTax(t *testing.T) {
	_, _, calc, node := setupTaxTest(t)

	res, err := calc.CalculateInvoiceTaxes(context.Background(), taxdomain.CalculateInput{
		TenantID:         node.Generate(),
		DistributorState: "VA",
		CustomerState:    "VA",
		TotalLiters:      money.New(9),
		Subtotal:         money.New(1000),
		IncludeSales:     true,
		AsOf:             time.Now().UTC(),
	})
	require.NoError(t, err)

	// 1000 * 0.053 = 53 exactly.
	assert.True(t, res.SalesTax.Equal(money.New(53)), "sales %s", res.SalesTax)
	assert.True(t, res.ExciseTax.IsZero())
}

// No include-flags: everything zero, no error.
func TestCalculateNothingRequested(t *testing.T) {
	_, _, calc, node := setupTaxTest(t)

	res, err := calc.CalculateInvoiceTaxes(context.Background(), taxdomain.CalculateInput{
		TenantID:         node.Generate(),
		DistributorState: "VA",
		CustomerState:    "MD",
		TotalLiters:      money.New(9),
		Subtotal:         money.New(174),
		AsOf:             time.Now().UTC(),
	})
	require.NoError(t, err)
	assert.True(t, res.TotalTax.IsZero())
}

// A persisted rule overrides the fallback, honoring effective dating.
func TestPersistedRuleOverridesFallback(t *testing.T) {
	_, repo, calc, node := setupTaxTest(t)
	tenantID := node.Generate()

	now := time.Now().UTC()
	seedRule(t, repo, node, tenantID, taxdomain.TaxTypeExcise, "0.50", now.AddDate(-1, 0, 0), nil)

	res, err := calc.CalculateInvoiceTaxes(context.Background(), taxdomain.CalculateInput{
		TenantID:         tenantID,
		DistributorState: "VA",
		CustomerState:    "VA",
		TotalLiters:      money.New(10),
		Subtotal:         money.New(174),
		IncludeExcise:    true,
		AsOf:             now,
	})
	require.NoError(t, err)
	assert.True(t, res.ExciseTax.Equal(money.New(5)), "excise %s", res.ExciseTax)
}

func TestFindLatestRuleEffectiveDating(t *testing.T) {
	_, repo, _, node := setupTaxTest(t)
	tenantID := node.Generate()
	now := time.Now().UTC()

	old := seedRule(t, repo, node, tenantID, taxdomain.TaxTypeExcise, "0.30", now.AddDate(-2, 0, 0), nil)
	current := seedRule(t, repo, node, tenantID, taxdomain.TaxTypeExcise, "0.40", now.AddDate(-1, 0, 0), nil)
	future := seedRule(t, repo, node, tenantID, taxdomain.TaxTypeExcise, "0.55", now.AddDate(0, 6, 0), nil)

	got, err := repo.FindLatestRule(context.Background(), tenantID, "VA", taxdomain.TaxTypeExcise, now)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, current.ID, got.ID)

	// After the future rule's effective date it takes over.
	got, err = repo.FindLatestRule(context.Background(), tenantID, "VA", taxdomain.TaxTypeExcise, now.AddDate(0, 7, 0))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, future.ID, got.ID)

	_ = old
}

func TestFindLatestRuleHonorsExpiry(t *testing.T) {
	_, repo, _, node := setupTaxTest(t)
	tenantID := node.Generate()
	now := time.Now().UTC()

	expiry := now.AddDate(0, -1, 0)
	seedRule(t, repo, node, tenantID, taxdomain.TaxTypeSales, "0.06", now.AddDate(-1, 0, 0), &expiry)

	got, err := repo.FindLatestRule(context.Background(), tenantID, "VA", taxdomain.TaxTypeSales, now)
	require.NoError(t, err)
	assert.Nil(t, got, "expired rule must not resolve")
}

func TestFindLatestRuleAbsenceIsNil(t *testing.T) {
	_, repo, _, node := setupTaxTest(t)

	got, err := repo.FindLatestRule(context.Background(), node.Generate(), "VA", taxdomain.TaxTypeExcise, time.Now().UTC())
	require.NoError(t, err)
	assert.Nil(t, got)
}
