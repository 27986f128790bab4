package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wellcrafted/invoicing/internal/clock"
	"github.com/wellcrafted/invoicing/internal/format"
	templatedomain "github.com/wellcrafted/invoicing/internal/template/domain"
	templaterepository "github.com/wellcrafted/invoicing/internal/template/repository"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func setupTemplateTest(t *testing.T) (templatedomain.Service, templatedomain.Repository, *snowflake.Node) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&templatedomain.TemplateConfig{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	repo := templaterepository.NewRepository(db)
	svc := NewService(serviceParams{
		Log:   zap.NewNop(),
		Clock: clock.NewFakeClock(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)),
		GenID: node,
		Repo:  repo,
	})
	return svc, repo, node
}

func TestResolveWithoutConfigReturnsDefaults(t *testing.T) {
	svc, _, _ := setupTemplateTest(t)
	ctx := context.Background()

	settings, err := svc.Resolve(ctx, 42, format.VAABCInState)
	require.NoError(t, err)
	assert.Equal(t, templatedomain.DefaultSettings(format.VAABCInState), settings)
}

func TestResolveRejectsUnknownFormat(t *testing.T) {
	svc, _, _ := setupTemplateTest(t)

	_, err := svc.Resolve(context.Background(), 42, format.Type("PARCHMENT"))
	assert.ErrorIs(t, err, templatedomain.ErrInvalidFormat)
}

func TestUpdateThenResolveRoundTrip(t *testing.T) {
	svc, _, _ := setupTemplateTest(t)
	ctx := context.Background()

	name := "Shenandoah Wine Co."
	doc := &templatedomain.ConfigDocument{
		Options: &templatedomain.OptionsPatch{CompanyDisplayName: &name},
		Layout: &templatedomain.LayoutPatch{
			Sections: map[string]bool{"showShipTo": false},
		},
	}
	saved, err := svc.Update(ctx, 42, format.Standard, doc)
	require.NoError(t, err)
	assert.Equal(t, name, saved.Options.CompanyDisplayName)
	assert.False(t, saved.Layout.Sections.ShowShipTo)

	resolved, err := svc.Resolve(ctx, 42, format.Standard)
	require.NoError(t, err)
	assert.Equal(t, saved, resolved)

	// Another tenant and another format are unaffected.
	other, err := svc.Resolve(ctx, 7, format.Standard)
	require.NoError(t, err)
	assert.Equal(t, templatedomain.DefaultSettings(format.Standard), other)

	exempt, err := svc.Resolve(ctx, 42, format.VAABCTaxExempt)
	require.NoError(t, err)
	assert.Equal(t, templatedomain.DefaultSettings(format.VAABCTaxExempt), exempt)
}

func TestUpdateLastWriteWins(t *testing.T) {
	svc, _, _ := setupTemplateTest(t)
	ctx := context.Background()

	first := "First Pass"
	second := "Second Pass"
	_, err := svc.Update(ctx, 42, format.Standard, &templatedomain.ConfigDocument{
		Options: &templatedomain.OptionsPatch{CompanyDisplayName: &first},
	})
	require.NoError(t, err)

	_, err = svc.Update(ctx, 42, format.Standard, &templatedomain.ConfigDocument{
		Options: &templatedomain.OptionsPatch{CompanyDisplayName: &second},
	})
	require.NoError(t, err)

	resolved, err := svc.Resolve(ctx, 42, format.Standard)
	require.NoError(t, err)
	assert.Equal(t, second, resolved.Options.CompanyDisplayName)
	// The earlier field is gone entirely, not merged across writes.
	assert.Equal(t, templatedomain.SignatureLine, resolved.Options.SignatureStyle)
}

func TestUpdateRejectsInvalidDocument(t *testing.T) {
	svc, _, _ := setupTemplateTest(t)

	bad := templatedomain.BaseTemplate("NEON")
	_, err := svc.Update(context.Background(), 42, format.Standard, &templatedomain.ConfigDocument{
		BaseTemplate: &bad,
	})
	assert.ErrorIs(t, err, templatedomain.ErrInvalidConfig)

	_, err = svc.Update(context.Background(), 0, format.Standard, nil)
	assert.ErrorIs(t, err, templatedomain.ErrInvalidTenant)
}

func TestResolveCorruptBlobDegradesToDefaults(t *testing.T) {
	svc, repo, node := setupTemplateTest(t)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &templatedomain.TemplateConfig{
		ID:       node.Generate(),
		TenantID: 42,
		Format:   format.VAABCInState,
		Document: datatypes.JSON(`{"layout": {"columns": "not-a-list"`),
	}))

	settings, err := svc.Resolve(ctx, 42, format.VAABCInState)
	require.NoError(t, err)
	assert.Equal(t, templatedomain.DefaultSettings(format.VAABCInState), settings)
}
