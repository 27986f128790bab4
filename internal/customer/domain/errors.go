package domain

import "errors"

var (
	ErrNotFound        = errors.New("customer: not found")
	ErrInvalidCustomer = errors.New("customer: invalid customer")
)
