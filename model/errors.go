package model

import "errors"

var (
	// ErrNotFound is returned when a catalog item or order does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidCredentials is returned by login and registration.
	ErrInvalidCredentials = errors.New("Email and password are required.")

	// ErrUnreachable means the API server could not be contacted at all.
	ErrUnreachable = errors.New("Network error: unable to reach the API server.")

	ErrUnauthenticated = errors.New("login required")
	ErrForbidden       = errors.New("admin role required")

	ErrEmptyCart       = errors.New("Cart is empty.")
	ErrInvalidCustomer = errors.New("name and address are required")
	ErrInvalidStatus   = errors.New("invalid order status")
	ErrInvalidStock    = errors.New("stock cannot be negative")
)
