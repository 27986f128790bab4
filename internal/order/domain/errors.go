package domain

import "errors"

var (
	ErrNotFound     = errors.New("order: not found")
	ErrInvalidOrder = errors.New("order: invalid order")
	ErrNoLines      = errors.New("order: order has no lines")
)
