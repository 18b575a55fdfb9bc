package services

import "errors"

var (
	// ErrNoLineItems rejects order placement with an empty line-item list.
	ErrNoLineItems = errors.New("order must contain at least one line item")

	// ErrInvalidCredentials is returned on any login failure, without
	// revealing whether the username exists.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
