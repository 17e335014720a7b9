package analysis

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidResponse indicates the model returned output that could not
	// be parsed as JSON. Retrying on the same raw text will not succeed.
	ErrInvalidResponse = errors.New("model returned unparseable analysis")
	// ErrClientFailure indicates a transport, auth, or remote API failure.
	ErrClientFailure = errors.New("analysis service unavailable")
)

// MapHTTPStatus maps analysis errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrInvalidResponse) {
		return http.StatusBadGateway
	}
	if errors.Is(err, ErrClientFailure) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
