package jobs

import (
	"errors"
	"net/http"

	"github.com/clauseguard/clauseguard/internal/extraction"
)

// Domain errors for job operations.
var (
	ErrNotFound      = errors.New("job not found")
	ErrInputTooShort = errors.New("contract text too short (minimum 100 characters)")
	ErrTimedOut      = errors.New("analysis timed out")
	ErrQueueFull     = errors.New("analysis queue is full")
	ErrInvalidUpload = errors.New("invalid upload")
	ErrFileTooLarge  = errors.New("file exceeds maximum upload size")
)

// MapHTTPStatus maps job domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrInputTooShort) || errors.Is(err, ErrInvalidUpload) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrFileTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	if errors.Is(err, ErrQueueFull) {
		return http.StatusServiceUnavailable
	}
	if status := extraction.MapHTTPStatus(err); status != http.StatusInternalServerError {
		return status
	}
	return http.StatusInternalServerError
}
