package extraction

import (
	"errors"
	"net/http"
)

// Extraction failure modes.
var (
	ErrUnsupportedFormat  = errors.New("unsupported document format")
	ErrEmptyDocument      = errors.New("document contains no readable text")
	ErrEncryptedDocument  = errors.New("document is password protected")
	ErrNoExtractableText  = errors.New("could not extract text from document")
)

// MapHTTPStatus maps extraction errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrUnsupportedFormat) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrEmptyDocument) ||
		errors.Is(err, ErrEncryptedDocument) ||
		errors.Is(err, ErrNoExtractableText) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
