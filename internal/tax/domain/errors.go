package domain

import "errors"

var (
	ErrInvalidTenant         = errors.New("invalid_tenant")
	ErrInvalidJurisdiction   = errors.New("invalid_jurisdiction")
	ErrInvalidTaxType        = errors.New("invalid_tax_type")
	ErrInvalidTaxRate        = errors.New("invalid_tax_rate")
	ErrInvalidEffectiveRange = errors.New("invalid_effective_range")
	ErrInvalidID             = errors.New("invalid_id")
	ErrNotFound              = errors.New("not_found")
)
