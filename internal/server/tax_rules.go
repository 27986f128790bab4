package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	taxdomain "github.com/wellcrafted/invoicing/internal/tax/domain"
	"github.com/wellcrafted/invoicing/pkg/money"
)

type taxRuleRequest struct {
	Jurisdiction  string `json:"jurisdiction"`
	TaxType       string `json:"tax_type"`
	Rate          string `json:"rate"`
	PerLiter      bool   `json:"per_liter"`
	EffectiveDate string `json:"effective_date"`
	ExpiryDate    string `json:"expiry_date,omitempty"`
}

func (r taxRuleRequest) toCreateRequest() (taxdomain.CreateRequest, error) {
	rate, err := money.Parse(strings.TrimSpace(r.Rate))
	if err != nil {
		return taxdomain.CreateRequest{}, newValidationError("rate", "invalid_rate", "rate must be a decimal number")
	}

	effective, err := parseOptionalDate(r.EffectiveDate)
	if err != nil || effective == nil {
		return taxdomain.CreateRequest{}, newValidationError("effective_date", "invalid_date", "effective_date must be a date")
	}

	var expiry *time.Time
	if strings.TrimSpace(r.ExpiryDate) != "" {
		expiry, err = parseOptionalDate(r.ExpiryDate)
		if err != nil {
			return taxdomain.CreateRequest{}, newValidationError("expiry_date", "invalid_date", "expiry_date must be a date")
		}
	}

	return taxdomain.CreateRequest{
		Jurisdiction:  strings.ToUpper(strings.TrimSpace(r.Jurisdiction)),
		TaxType:       taxdomain.TaxType(strings.ToUpper(strings.TrimSpace(r.TaxType))),
		Rate:          rate,
		PerLiter:      r.PerLiter,
		EffectiveDate: *effective,
		ExpiryDate:    expiry,
	}, nil
}

func (s *Server) CreateTaxRule(c *gin.Context) {
	tenantID, ok := tenantFromRequest(c)
	if !ok {
		AbortWithError(c, newValidationError("tenant_id", "missing_tenant", "missing tenant"))
		return
	}

	var req taxRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	create, err := req.toCreateRequest()
	if err != nil {
		AbortWithError(c, err)
		return
	}
	create.TenantID = tenantID

	rule, err := s.taxSvc.Create(c.Request.Context(), create)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": rule})
}

func (s *Server) ListTaxRules(c *gin.Context) {
	tenantID, ok := tenantFromRequest(c)
	if !ok {
		AbortWithError(c, newValidationError("tenant_id", "missing_tenant", "missing tenant"))
		return
	}

	req := taxdomain.ListRequest{
		Jurisdiction: strings.ToUpper(strings.TrimSpace(c.Query("jurisdiction"))),
	}
	if raw := strings.TrimSpace(c.Query("tax_type")); raw != "" {
		tt := taxdomain.TaxType(strings.ToUpper(raw))
		req.TaxType = &tt
	}
	activeAt, err := parseOptionalDate(c.Query("active_at"))
	if err != nil {
		AbortWithError(c, newValidationError("active_at", "invalid_date", "active_at must be a date"))
		return
	}
	req.ActiveAt = activeAt

	rules, err := s.taxSvc.List(c.Request.Context(), tenantID, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": rules})
}

// SupersedeTaxRule bounds an existing rule and creates its replacement
// in one step so a jurisdiction never loses coverage.
func (s *Server) SupersedeTaxRule(c *gin.Context) {
	tenantID, ok := tenantFromRequest(c)
	if !ok {
		AbortWithError(c, newValidationError("tenant_id", "missing_tenant", "missing tenant"))
		return
	}

	ruleID, err := parseSnowflakeID(c.Param("id"))
	if err != nil {
		AbortWithError(c, newValidationError("id", "invalid_id", "invalid id"))
		return
	}

	var req taxRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	replace, err := req.toCreateRequest()
	if err != nil {
		AbortWithError(c, err)
		return
	}
	replace.TenantID = tenantID

	rule, err := s.taxSvc.Supersede(c.Request.Context(), taxdomain.SupersedeRequest{
		TenantID: tenantID,
		RuleID:   ruleID,
		Replace:  replace,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": rule})
}
