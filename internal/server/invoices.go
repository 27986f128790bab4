package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/wellcrafted/invoicing/internal/format"
	invoicedomain "github.com/wellcrafted/invoicing/internal/invoice/domain"
)

type createInvoiceRequest struct {
	OrderID string `json:"order_id"`
	// Format forces a layout instead of deriving one from the
	// distributor and customer states.
	Format string `json:"format,omitempty"`
}

func (s *Server) CreateInvoice(c *gin.Context) {
	tenantID, ok := tenantFromRequest(c)
	if !ok {
		AbortWithError(c, newValidationError("tenant_id", "missing_tenant", "missing tenant"))
		return
	}

	var req createInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	orderID, err := parseSnowflakeID(req.OrderID)
	if err != nil {
		AbortWithError(c, newValidationError("order_id", "invalid_id", "invalid order id"))
		return
	}

	build := invoicedomain.BuildRequest{
		TenantID: tenantID,
		OrderID:  orderID,
	}
	if raw := strings.TrimSpace(req.Format); raw != "" {
		ft := format.Type(raw)
		if !format.Valid(ft) {
			AbortWithError(c, newValidationError("format", "invalid_format", "invalid invoice format"))
			return
		}
		build.FormatOverride = &ft
	}

	inv, err := s.invoiceSvc.CreateInvoice(c.Request.Context(), build)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": inv})
}

func (s *Server) GetInvoiceByID(c *gin.Context) {
	tenantID, ok := tenantFromRequest(c)
	if !ok {
		AbortWithError(c, newValidationError("tenant_id", "missing_tenant", "missing tenant"))
		return
	}

	id, err := parseSnowflakeID(c.Param("id"))
	if err != nil {
		AbortWithError(c, newValidationError("id", "invalid_id", "invalid id"))
		return
	}

	inv, err := s.invoiceSvc.GetInvoice(c.Request.Context(), tenantID, id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": inv})
}

// GetInvoiceDocument renders the invoice's stored snapshot through its
// template settings and returns the HTML document.
func (s *Server) GetInvoiceDocument(c *gin.Context) {
	tenantID, ok := tenantFromRequest(c)
	if !ok {
		AbortWithError(c, newValidationError("tenant_id", "missing_tenant", "missing tenant"))
		return
	}

	id, err := parseSnowflakeID(c.Param("id"))
	if err != nil {
		AbortWithError(c, newValidationError("id", "invalid_id", "invalid id"))
		return
	}

	html, err := s.invoiceSvc.RenderInvoiceHTML(c.Request.Context(), tenantID, id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}
