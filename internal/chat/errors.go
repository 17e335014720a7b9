package chat

import (
	"errors"
	"net/http"

	"github.com/clauseguard/clauseguard/internal/contracts"
)

// Domain errors for chat operations.
var (
	ErrEmptyMessage         = errors.New("message cannot be empty")
	ErrInvalidInput         = errors.New("invalid request")
	ErrAssistantUnavailable = errors.New("assistant unavailable")
)

// MapHTTPStatus maps chat domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrEmptyMessage) || errors.Is(err, ErrInvalidInput) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrAssistantUnavailable) {
		return http.StatusBadGateway
	}
	if errors.Is(err, contracts.ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
