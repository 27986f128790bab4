package domain

import "errors"

var (
	ErrInvalidTenant = errors.New("template: invalid tenant id")
	ErrInvalidFormat = errors.New("template: invalid invoice format")
	ErrInvalidConfig = errors.New("template: invalid config document")
	ErrNotFound      = errors.New("template: config not found")
)
