package server

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/wellcrafted/invoicing/internal/tenantctx"
	"go.uber.org/zap"
)

const tenantHeader = "X-Tenant-ID"

// TenantRequired resolves the acting tenant from the X-Tenant-ID header
// and stores it on the request context. Requests without a parseable
// tenant are rejected before any handler runs.
func (s *Server) TenantRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(tenantHeader))
		if raw == "" {
			AbortWithError(c, newValidationError("tenant_id", "missing_tenant", "missing "+tenantHeader+" header"))
			return
		}

		id, err := snowflake.ParseString(raw)
		if err != nil || id == 0 {
			AbortWithError(c, newValidationError("tenant_id", "invalid_tenant", "invalid tenant id"))
			return
		}

		ctx := tenantctx.WithTenantID(c.Request.Context(), id)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func tenantFromRequest(c *gin.Context) (snowflake.ID, bool) {
	return tenantctx.TenantIDFromContext(c.Request.Context())
}

// RequestLogger emits one structured log line per request.
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	log = log.Named("http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("route", route),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		}
		if lastErr := c.Errors.Last(); lastErr != nil {
			fields = append(fields, zap.Error(lastErr.Err))
		}

		if c.Writer.Status() >= 500 {
			log.Error("request", fields...)
			return
		}
		log.Info("request", fields...)
	}
}
