package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bwmarrin/snowflake"
	"github.com/wellcrafted/invoicing/internal/clock"
	invoicedomain "github.com/wellcrafted/invoicing/internal/invoice/domain"
	"github.com/wellcrafted/invoicing/internal/invoice/number"
	"github.com/wellcrafted/invoicing/internal/invoice/render"
	"github.com/wellcrafted/invoicing/internal/observability/metrics"
	orderdomain "github.com/wellcrafted/invoicing/internal/order/domain"
	"github.com/wellcrafted/invoicing/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// maxNumberRetries bounds duplicate-key retries when concurrent
// builders race for the same month sequence.
const maxNumberRetries = 5

type serviceParams struct {
	fx.In

	Log      *zap.Logger
	Clock    clock.Clock
	GenID    *snowflake.Node
	Builder  invoicedomain.Builder
	Repo     invoicedomain.Repository
	Orders   orderdomain.Repository
	Renderer render.Renderer
}

type Service struct {
	log      *zap.Logger
	clock    clock.Clock
	genID    *snowflake.Node
	builder  invoicedomain.Builder
	repo     invoicedomain.Repository
	orders   orderdomain.Repository
	renderer render.Renderer
}

func NewService(p serviceParams) invoicedomain.Service {
	return &Service{
		log:      p.Log.Named("invoice.service"),
		clock:    p.Clock,
		genID:    p.GenID,
		builder:  p.Builder,
		repo:     p.Repo,
		orders:   p.Orders,
		renderer: p.Renderer,
	}
}

func (s *Service) CreateInvoice(ctx context.Context, req invoicedomain.BuildRequest) (*invoicedomain.Invoice, error) {
	if existing, err := s.repo.FindByOrder(ctx, req.TenantID, req.OrderID); err == nil && existing != nil {
		return nil, invoicedomain.ErrAlreadyInvoiced
	} else if err != nil && !errors.Is(err, invoicedomain.ErrNotFound) {
		return nil, err
	}

	data, err := s.builder.BuildInvoiceData(ctx, req)
	if err != nil {
		return nil, err
	}

	invoice, err := s.persistWithNumber(ctx, req, data)
	if err != nil {
		return nil, err
	}

	// Write computed cases and liters back onto the order lines, then
	// transition the order. Both are best-effort after the invoice
	// exists; a failure here must not lose the invoice.
	if err := s.orders.SaveCalculatedLineValues(ctx, lineCalcs(data)); err != nil {
		s.log.Warn("persist calculated line values failed",
			zap.Int64("order_id", int64(req.OrderID)), zap.Error(err))
	}
	if err := s.orders.MarkInvoiced(ctx, req.TenantID, req.OrderID); err != nil {
		s.log.Warn("mark order invoiced failed",
			zap.Int64("order_id", int64(req.OrderID)), zap.Error(err))
	}

	metrics.Pipeline().IncInvoiceBuilt(string(invoice.Format))
	s.log.Info("invoice created",
		zap.Int64("tenant_id", int64(invoice.TenantID)),
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.String("format", string(invoice.Format)),
		zap.String("total", invoice.Total.String()),
	)
	return invoice, nil
}

// persistWithNumber assigns the next month-scoped sequence number and
// inserts. On a duplicate-key conflict it re-reads the highest number
// and retries, bounded by maxNumberRetries.
func (s *Service) persistWithNumber(ctx context.Context, req invoicedomain.BuildRequest, data *invoicedomain.CompleteInvoiceData) (*invoicedomain.Invoice, error) {
	issuedAt := data.IssuedAt
	prefix := number.MonthPrefix(issuedAt)

	for attempt := 0; attempt < maxNumberRetries; attempt++ {
		highest, err := s.repo.HighestNumberWithPrefix(ctx, req.TenantID, prefix)
		if err != nil {
			return nil, fmt.Errorf("read highest invoice number: %w", err)
		}
		invoiceNumber, err := number.Next(issuedAt, highest)
		if err != nil {
			return nil, err
		}

		data.InvoiceNumber = invoiceNumber
		snapshot, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("encode invoice snapshot: %w", err)
		}

		invoice := &invoicedomain.Invoice{
			ID:            s.genID.Generate(),
			TenantID:      req.TenantID,
			OrderID:       req.OrderID,
			CustomerID:    data.CustomerID,
			InvoiceNumber: invoiceNumber,
			Format:        data.Format,
			Status:        invoicedomain.StatusDraft,
			Subtotal:      data.Subtotal,
			TotalTax:      data.TotalTax,
			Total:         data.Total,
			IssuedAt:      issuedAt,
			DueAt:         data.DueAt,
			Snapshot:      datatypes.JSON(snapshot),
			CreatedAt:     s.clock.Now(),
			UpdatedAt:     s.clock.Now(),
		}
		err = s.repo.Create(ctx, invoice)
		if err == nil {
			return invoice, nil
		}
		if !db.IsDuplicateKeyErr(err) {
			metrics.Pipeline().IncBuildError(metrics.BuildErrorReasonDB)
			return nil, fmt.Errorf("persist invoice: %w", err)
		}

		metrics.Pipeline().IncNumberCollision()
		s.log.Debug("invoice number collision, retrying",
			zap.String("invoice_number", invoiceNumber),
			zap.Int("attempt", attempt+1),
		)
	}

	metrics.Pipeline().IncBuildError(metrics.BuildErrorReasonConflict)
	return nil, invoicedomain.ErrNumberExhausted
}

func (s *Service) GetInvoice(ctx context.Context, tenantID, id snowflake.ID) (*invoicedomain.Invoice, error) {
	return s.repo.FindByID(ctx, tenantID, id)
}

func (s *Service) RenderInvoiceHTML(ctx context.Context, tenantID, id snowflake.ID) (string, error) {
	invoice, err := s.repo.FindByID(ctx, tenantID, id)
	if err != nil {
		return "", err
	}

	var data invoicedomain.CompleteInvoiceData
	if err := json.Unmarshal(invoice.Snapshot, &data); err != nil {
		return "", fmt.Errorf("decode invoice snapshot: %w", err)
	}

	doc, err := render.BuildDocument(&data)
	if err != nil {
		return "", err
	}
	return s.renderer.RenderHTML(doc)
}

func lineCalcs(data *invoicedomain.CompleteInvoiceData) []orderdomain.LineCalc {
	calcs := make([]orderdomain.LineCalc, 0, len(data.Lines))
	for _, line := range data.Lines {
		if line.OrderLineID == 0 {
			continue
		}
		calcs = append(calcs, orderdomain.LineCalc{
			LineID:        line.OrderLineID,
			CasesQuantity: line.CasesQuantity,
			TotalLiters:   line.TotalLiters,
		})
	}
	return calcs
}
