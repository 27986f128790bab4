package server

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/wellcrafted/invoicing/internal/format"
	templatedomain "github.com/wellcrafted/invoicing/internal/template/domain"
)

func (s *Server) GetTemplateSettings(c *gin.Context) {
	tenantID, ok := tenantFromRequest(c)
	if !ok {
		AbortWithError(c, newValidationError("tenant_id", "missing_tenant", "missing tenant"))
		return
	}

	ft := format.Type(strings.TrimSpace(c.Param("format")))
	if !format.Valid(ft) {
		AbortWithError(c, newValidationError("format", "invalid_format", "invalid invoice format"))
		return
	}

	settings, err := s.templateSvc.Resolve(c.Request.Context(), tenantID, ft)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": settings})
}

func (s *Server) UpdateTemplateSettings(c *gin.Context) {
	tenantID, ok := tenantFromRequest(c)
	if !ok {
		AbortWithError(c, newValidationError("tenant_id", "missing_tenant", "missing tenant"))
		return
	}

	ft := format.Type(strings.TrimSpace(c.Param("format")))
	if !format.Valid(ft) {
		AbortWithError(c, newValidationError("format", "invalid_format", "invalid invoice format"))
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	// Strict decode: unknown top-level fields are a client error, not
	// something to silently drop.
	doc, err := templatedomain.DecodeConfigDocument(body)
	if err != nil {
		if errors.Is(err, templatedomain.ErrInvalidConfig) {
			AbortWithError(c, err)
			return
		}
		AbortWithError(c, newValidationError("body", "invalid_json", "malformed config document"))
		return
	}

	settings, err := s.templateSvc.Update(c.Request.Context(), tenantID, ft, doc)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": settings})
}
