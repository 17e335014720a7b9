package extraction

import (
	"errors"
	"testing"

	"github.com/ledongthuc/pdf"
)

func TestMapOpenError(t *testing.T) {
	t.Run("invalid password means encrypted", func(t *testing.T) {
		err := mapOpenError(pdf.ErrInvalidPassword)
		if !errors.Is(err, ErrEncryptedDocument) {
			t.Errorf("err = %v, want ErrEncryptedDocument", err)
		}
	})

	t.Run("anything else is unreadable", func(t *testing.T) {
		err := mapOpenError(errors.New("malformed xref table"))
		if !errors.Is(err, ErrNoExtractableText) {
			t.Errorf("err = %v, want ErrNoExtractableText", err)
		}
	})
}
