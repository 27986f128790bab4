package domain

import "errors"

var (
	ErrInvalidTenant   = errors.New("invoice: invalid tenant id")
	ErrInvalidOrder    = errors.New("invoice: invalid order id")
	ErrNotFound        = errors.New("invoice: not found")
	ErrNumberExhausted = errors.New("invoice: number generation retries exhausted")
	ErrAlreadyInvoiced = errors.New("invoice: order already invoiced")
)
