package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/wellcrafted/invoicing/internal/cache"
	"github.com/wellcrafted/invoicing/internal/clock"
	"github.com/wellcrafted/invoicing/internal/format"
	templatedomain "github.com/wellcrafted/invoicing/internal/template/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// settingsTTL bounds staleness across process instances; in-process
// writes invalidate eagerly.
const settingsTTL = 5 * time.Minute

type cacheKey struct {
	tenantID snowflake.ID
	ft       format.Type
}

type serviceParams struct {
	fx.In

	Log   *zap.Logger
	Clock clock.Clock
	GenID *snowflake.Node
	Repo  templatedomain.Repository
}

type Service struct {
	log   *zap.Logger
	clock clock.Clock
	genID *snowflake.Node
	repo  templatedomain.Repository
	cache cache.Cache[cacheKey, templatedomain.Settings]
}

func NewService(p serviceParams) templatedomain.Service {
	return &Service{
		log:   p.Log.Named("template.service"),
		clock: p.Clock,
		genID: p.GenID,
		repo:  p.Repo,
		cache: cache.NewTTLCache[cacheKey, templatedomain.Settings](),
	}
}

func (s *Service) Resolve(ctx context.Context, tenantID snowflake.ID, ft format.Type) (templatedomain.Settings, error) {
	if !format.Valid(ft) {
		return templatedomain.Settings{}, templatedomain.ErrInvalidFormat
	}
	key := cacheKey{tenantID: tenantID, ft: ft}
	if settings, ok := s.cache.Get(key); ok {
		return settings, nil
	}

	config, err := s.repo.FindByScope(ctx, tenantID, ft)
	if err != nil {
		if errors.Is(err, templatedomain.ErrNotFound) {
			settings := templatedomain.DefaultSettings(ft)
			s.cache.Set(key, settings, settingsTTL)
			return settings, nil
		}
		return templatedomain.Settings{}, fmt.Errorf("load template config: %w", err)
	}

	doc, err := templatedomain.DecodeConfigDocument(config.Document)
	if err != nil {
		// A corrupt blob must never break invoice rendering.
		s.log.Warn("invalid template config, using defaults",
			zap.Int64("tenant_id", int64(tenantID)),
			zap.String("format", string(ft)),
			zap.Error(err),
		)
		doc = nil
	}

	settings := templatedomain.Merge(doc, ft)
	s.cache.Set(key, settings, settingsTTL)
	return settings, nil
}

func (s *Service) Update(ctx context.Context, tenantID snowflake.ID, ft format.Type, doc *templatedomain.ConfigDocument) (templatedomain.Settings, error) {
	if tenantID == 0 {
		return templatedomain.Settings{}, templatedomain.ErrInvalidTenant
	}
	if !format.Valid(ft) {
		return templatedomain.Settings{}, templatedomain.ErrInvalidFormat
	}
	if doc == nil {
		doc = &templatedomain.ConfigDocument{}
	}
	if err := doc.Validate(); err != nil {
		return templatedomain.Settings{}, err
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return templatedomain.Settings{}, fmt.Errorf("encode template config: %w", err)
	}

	now := s.clock.Now()
	config := &templatedomain.TemplateConfig{
		ID:        s.genID.Generate(),
		TenantID:  tenantID,
		Format:    ft,
		Document:  datatypes.JSON(raw),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Upsert(ctx, config); err != nil {
		return templatedomain.Settings{}, fmt.Errorf("save template config: %w", err)
	}

	settings := templatedomain.Merge(doc, ft)
	s.cache.Set(cacheKey{tenantID: tenantID, ft: ft}, settings, settingsTTL)

	s.log.Info("template config updated",
		zap.Int64("tenant_id", int64(tenantID)),
		zap.String("format", string(ft)),
	)
	return settings, nil
}
