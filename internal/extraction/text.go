package extraction

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// textDecoding is one entry in the ordered character decoding chain for
// plain-text input. decode reports false when the bytes are not valid in
// that encoding.
type textDecoding struct {
	name   string
	decode func([]byte) (string, bool)
}

var textDecodings = []textDecoding{
	{"utf-8", decodeUTF8},
	{"latin-1", decodeCharmap(charmap.ISO8859_1)},
	{"cp1252", decodeCharmap(charmap.Windows1252)},
	{"iso-8859-1", decodeCharmap(charmap.ISO8859_1)},
}

func extractText(data []byte) (Result, error) {
	for _, decoding := range textDecodings {
		decoded, ok := decoding.decode(data)
		if !ok {
			continue
		}

		if text := strings.TrimSpace(decoded); text != "" {
			return Result{Text: text, Method: "txt/" + decoding.name}, nil
		}
	}

	// Best effort: substitute invalid bytes instead of failing outright.
	text := strings.TrimSpace(strings.ToValidUTF8(string(data), string(utf8.RuneError)))
	if text == "" {
		return Result{}, ErrEmptyDocument
	}

	return Result{Text: text, Method: "txt/utf-8-lossy"}, nil
}

func extractDOC(data []byte) (Result, error) {
	result, err := extractText(data)
	if err != nil {
		return Result{}, err
	}

	result.Method = "doc/" + strings.TrimPrefix(result.Method, "txt/")
	return result, nil
}

var (
	rtfGroups   = regexp.MustCompile(`\{\\.*?\}`)
	rtfControls = regexp.MustCompile(`\\.*?;`)
)

func extractRTF(data []byte) (Result, error) {
	decoded, err := extractText(data)
	if err != nil {
		return Result{}, err
	}

	text := rtfGroups.ReplaceAllString(decoded.Text, "")
	text = rtfControls.ReplaceAllString(text, "")

	text = strings.TrimSpace(text)
	if text == "" {
		return Result{}, ErrEmptyDocument
	}

	return Result{Text: text, Method: "rtf"}, nil
}

func decodeUTF8(data []byte) (string, bool) {
	if !utf8.Valid(data) {
		return "", false
	}
	return string(data), true
}

func decodeCharmap(cm *charmap.Charmap) func([]byte) (string, bool) {
	return func(data []byte) (string, bool) {
		decoded, err := cm.NewDecoder().Bytes(data)
		if err != nil {
			return "", false
		}
		return string(decoded), true
	}
}
