// Package server exposes the HTTP API: invoice creation and rendering,
// per-format template settings, and tax rule administration.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/wellcrafted/invoicing/internal/config"
	invoicedomain "github.com/wellcrafted/invoicing/internal/invoice/domain"
	taxdomain "github.com/wellcrafted/invoicing/internal/tax/domain"
	templatedomain "github.com/wellcrafted/invoicing/internal/template/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module wires the gin engine, the server, and its lifecycle.
var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

// Server holds the handler dependencies.
type Server struct {
	engine      *gin.Engine
	cfg         config.Config
	log         *zap.Logger
	genID       *snowflake.Node
	invoiceSvc  invoicedomain.Service
	templateSvc templatedomain.Service
	taxSvc      taxdomain.Service
}

// ServerParams collects the server dependencies.
type ServerParams struct {
	fx.In

	Gin         *gin.Engine
	Cfg         config.Config
	Log         *zap.Logger
	GenID       *snowflake.Node
	InvoiceSvc  invoicedomain.Service
	TemplateSvc templatedomain.Service
	TaxSvc      taxdomain.Service
}

// NewEngine builds the gin engine with the shared middleware chain.
func NewEngine(log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(log))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(log *zap.Logger) *gin.Engine {
	return NewEngine(log)
}

// NewServer registers the API routes on the engine.
func NewServer(p ServerParams) *Server {
	s := &Server{
		engine:      p.Gin,
		cfg:         p.Cfg,
		log:         p.Log.Named("server"),
		genID:       p.GenID,
		invoiceSvc:  p.InvoiceSvc,
		templateSvc: p.TemplateSvc,
		taxSvc:      p.TaxSvc,
	}

	s.registerAPIRoutes()
	return s
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api", s.TenantRequired())

	// -------- Invoices --------
	api.POST("/invoices", s.CreateInvoice)
	api.GET("/invoices/:id", s.GetInvoiceByID)
	api.GET("/invoices/:id/document", s.GetInvoiceDocument)

	// -------- Template settings --------
	api.GET("/template-settings/:format", s.GetTemplateSettings)
	api.PUT("/template-settings/:format", s.UpdateTemplateSettings)

	// -------- Tax rules --------
	api.POST("/tax-rules", s.CreateTaxRule)
	api.GET("/tax-rules", s.ListTaxRules)
	api.POST("/tax-rules/:id/supersede", s.SupersedeTaxRule)

	s.engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, errorResponse{Error: errorPayload{
			Type:    "not_found",
			Message: "not found",
		}})
	})
}

func run(lc fx.Lifecycle, cfg config.Config, log *zap.Logger, r *gin.Engine) {
	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server starting", zap.String("addr", srv.Addr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}
