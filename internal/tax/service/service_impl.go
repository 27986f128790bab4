package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	taxdomain "github.com/wellcrafted/invoicing/internal/tax/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type serviceParams struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  taxdomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  taxdomain.Repository
}

func NewService(p serviceParams) taxdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("tax.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req taxdomain.CreateRequest) (*taxdomain.TaxRule, error) {
	if req.TenantID == 0 {
		return nil, taxdomain.ErrInvalidTenant
	}

	now := time.Now().UTC()
	rule := &taxdomain.TaxRule{
		ID:            s.genID.Generate(),
		TenantID:      req.TenantID,
		Jurisdiction:  strings.ToUpper(strings.TrimSpace(req.Jurisdiction)),
		TaxType:       req.TaxType,
		Rate:          req.Rate,
		PerLiter:      req.PerLiter,
		EffectiveDate: req.EffectiveDate,
		ExpiryDate:    req.ExpiryDate,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := rule.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, rule); err != nil {
		return nil, err
	}
	return rule, nil
}

// List returns a tenant's rules, newest effective first.
func (s *Service) List(ctx context.Context, tenantID snowflake.ID, req taxdomain.ListRequest) ([]taxdomain.TaxRule, error) {
	if tenantID == 0 {
		return nil, taxdomain.ErrInvalidTenant
	}
	return s.repo.List(ctx, tenantID, req)
}

// Supersede bounds an existing rule with an expiry and writes its
// replacement in one transaction. Rules are never deleted.
func (s *Service) Supersede(ctx context.Context, req taxdomain.SupersedeRequest) (*taxdomain.TaxRule, error) {
	if req.TenantID == 0 {
		return nil, taxdomain.ErrInvalidTenant
	}

	existing, err := s.repo.FindByID(ctx, req.TenantID, req.RuleID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, taxdomain.ErrNotFound
	}

	now := time.Now().UTC()
	replacement := &taxdomain.TaxRule{
		ID:            s.genID.Generate(),
		TenantID:      req.TenantID,
		Jurisdiction:  strings.ToUpper(strings.TrimSpace(req.Replace.Jurisdiction)),
		TaxType:       req.Replace.TaxType,
		Rate:          req.Replace.Rate,
		PerLiter:      req.Replace.PerLiter,
		EffectiveDate: req.Replace.EffectiveDate,
		ExpiryDate:    req.Replace.ExpiryDate,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := replacement.Validate(); err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		expiry := replacement.EffectiveDate.AddDate(0, 0, -1)
		existing.ExpiryDate = &expiry
		existing.UpdatedAt = now
		if err := tx.Save(existing).Error; err != nil {
			return err
		}
		return tx.Create(replacement).Error
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("tax rule superseded",
		zap.String("tenant_id", req.TenantID.String()),
		zap.String("old_rule_id", existing.ID.String()),
		zap.String("new_rule_id", replacement.ID.String()),
	)
	return replacement, nil
}
