package contracts

import (
	"errors"
	"net/http"
)

// Domain errors for contract operations.
var (
	ErrNotFound      = errors.New("contract not found")
	ErrRiskNotFound  = errors.New("risk not found")
	ErrDuplicate     = errors.New("contract already exists")
	ErrInvalidStatus = errors.New("invalid risk status")
	ErrInvalidInput  = errors.New("invalid request")
)

// MapHTTPStatus maps contract domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrRiskNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidStatus) || errors.Is(err, ErrInvalidInput) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
