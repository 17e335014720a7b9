// Package extraction converts uploaded document bytes into plain text.
// It is a pure function over the input buffer: the declared format comes
// from the filename extension, and each format runs its own decode chain.
// DOC and RTF support is best effort; fidelity is not guaranteed.
package extraction

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies a document format derived from a filename extension.
type Format string

const (
	FormatPDF     Format = "pdf"
	FormatDOCX    Format = "docx"
	FormatTXT     Format = "txt"
	FormatDOC     Format = "doc"
	FormatRTF     Format = "rtf"
	FormatODT     Format = "odt"
	FormatUnknown Format = "unknown"
)

// DetectFormat derives the document format from the filename extension,
// case-insensitive. Content sniffing is deliberately not performed.
func DetectFormat(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return FormatPDF
	case ".docx":
		return FormatDOCX
	case ".txt":
		return FormatTXT
	case ".doc":
		return FormatDOC
	case ".rtf":
		return FormatRTF
	case ".odt":
		return FormatODT
	default:
		return FormatUnknown
	}
}

// Result holds successfully extracted text. Text is trimmed and never empty;
// Method names the decode path that produced it.
type Result struct {
	Text   string
	Method string
}

// Extract converts raw document bytes into plain text based on the filename's
// extension. It returns ErrEmptyDocument for zero-length input of any format
// and ErrUnsupportedFormat for ODT or unrecognized extensions.
func Extract(data []byte, filename string) (Result, error) {
	if len(data) == 0 {
		return Result{}, ErrEmptyDocument
	}

	switch format := DetectFormat(filename); format {
	case FormatPDF:
		return extractPDF(data)
	case FormatDOCX:
		return extractDOCX(data)
	case FormatTXT:
		return extractText(data)
	case FormatDOC:
		// Legacy .doc has no Go-native decoder; text coercion recovers
		// whatever readable runs the binary container holds.
		return extractDOC(data)
	case FormatRTF:
		return extractRTF(data)
	case FormatODT:
		return Result{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	default:
		return Result{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(filename))
	}
}
