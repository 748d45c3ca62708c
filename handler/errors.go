package handler

import (
	"context"
	"errors"
	"net/http"

	"retro-accessories/apiclient"
	"retro-accessories/model"
)

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, model.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, model.ErrInvalidCredentials),
		errors.Is(err, model.ErrEmptyCart),
		errors.Is(err, model.ErrInvalidCustomer),
		errors.Is(err, model.ErrInvalidStatus),
		errors.Is(err, model.ErrInvalidStock):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrUnreachable):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}

	// Client errors from the upstream API pass through; anything else
	// upstream is our gateway's problem.
	var apiErr *apiclient.Error
	if errors.As(err, &apiErr) {
		if apiErr.Status >= 400 && apiErr.Status < 500 {
			return apiErr.Status
		}
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
