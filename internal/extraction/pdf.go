package extraction

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// pdfStrategy is one entry in the ordered PDF decode chain. Strategies share
// a uniform signature and are tried in sequence; the first one producing
// non-blank text wins and partial output is never merged across strategies.
type pdfStrategy struct {
	name string
	fn   func(r *pdf.Reader) (string, error)
}

var pdfStrategies = []pdfStrategy{
	{"layout", pdfTextByRows},
	{"sequential", pdfTextByPages},
}

func extractPDF(data []byte) (Result, error) {
	reader, err := pdf.NewReaderEncrypted(
		bytes.NewReader(data),
		int64(len(data)),
		func() string { return "" },
	)
	if err != nil {
		return Result{}, mapOpenError(err)
	}

	reasons := make([]string, 0, len(pdfStrategies))

	for _, strategy := range pdfStrategies {
		text, err := runPDFStrategy(reader, strategy)
		if err != nil {
			reasons = append(reasons, fmt.Sprintf("%s failed: %v", strategy.name, err))
			continue
		}

		text = strings.TrimSpace(text)
		if text == "" {
			reasons = append(reasons, fmt.Sprintf("%s produced no text", strategy.name))
			continue
		}

		return Result{Text: text, Method: "pdf/" + strategy.name}, nil
	}

	return Result{}, fmt.Errorf(
		"%w: %s", ErrNoExtractableText, strings.Join(reasons, "; "),
	)
}

// mapOpenError classifies reader-open failures. A document that cannot be
// opened with an empty password is encrypted; anything else is unreadable.
func mapOpenError(err error) error {
	if errors.Is(err, pdf.ErrInvalidPassword) {
		return ErrEncryptedDocument
	}
	return fmt.Errorf("%w: open pdf: %v", ErrNoExtractableText, err)
}

// runPDFStrategy invokes one strategy, converting library panics on
// malformed content streams into ordinary strategy failures.
func runPDFStrategy(r *pdf.Reader, strategy pdfStrategy) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			text = ""
			err = fmt.Errorf("panic: %v", rec)
		}
	}()

	return strategy.fn(r)
}

// pdfTextByRows reconstructs text with row grouping, preserving reading
// order within each page.
func pdfTextByRows(r *pdf.Reader) (string, error) {
	var pages []string

	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}

		rows, err := page.GetTextByRow()
		if err != nil {
			return "", fmt.Errorf("page %d: %w", i, err)
		}

		var sb strings.Builder
		for _, row := range rows {
			for _, word := range row.Content {
				sb.WriteString(word.S)
			}
			sb.WriteString("\n")
		}

		if pageText := strings.TrimSpace(sb.String()); pageText != "" {
			pages = append(pages, pageText)
		}
	}

	return strings.Join(pages, "\n"), nil
}

// pdfTextByPages decodes each page's plain text in sequence, skipping
// pages that fail to decode.
func pdfTextByPages(r *pdf.Reader) (string, error) {
	var pages []string

	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		if pageText = strings.TrimSpace(pageText); pageText != "" {
			pages = append(pages, pageText)
		}
	}

	return strings.Join(pages, "\n"), nil
}
