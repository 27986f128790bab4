package domain

import "errors"

var (
	ErrNotFound            = errors.New("organization: tenant not found")
	ErrInvalidOrganization = errors.New("organization: invalid tenant")
)
