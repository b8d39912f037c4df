package listing

import (
	"errors"
	"net/http"
)

// Domain errors for listing operations.
var (
	ErrNotFound     = errors.New("listing not found")
	ErrDuplicate    = errors.New("listing already exists for phone")
	ErrInvalidPhone = errors.New("invalid phone number")
)

// MapHTTPStatus converts domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidPhone) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
