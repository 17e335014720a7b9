package extraction

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

func extractDOCX(data []byte) (Result, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Result{}, fmt.Errorf("%w: open docx container: %v", ErrNoExtractableText, err)
	}

	var document *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			document = f
			break
		}
	}
	if document == nil {
		return Result{}, fmt.Errorf("%w: docx has no word/document.xml", ErrNoExtractableText)
	}

	rc, err := document.Open()
	if err != nil {
		return Result{}, fmt.Errorf("%w: read docx document: %v", ErrNoExtractableText, err)
	}
	defer rc.Close()

	paragraphs, err := docxParagraphs(rc)
	if err != nil {
		return Result{}, fmt.Errorf("%w: parse docx document: %v", ErrNoExtractableText, err)
	}

	text := strings.TrimSpace(strings.Join(paragraphs, "\n"))
	if text == "" {
		return Result{}, ErrEmptyDocument
	}

	return Result{Text: text, Method: "docx"}, nil
}

// docxParagraphs walks the WordprocessingML token stream collecting the text
// runs of each w:p element in document order.
func docxParagraphs(r io.Reader) ([]string, error) {
	decoder := xml.NewDecoder(r)

	var (
		paragraphs  []string
		current     strings.Builder
		inParagraph bool
		inText      bool
	)

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				inParagraph = true
				current.Reset()
			case "t":
				inText = inParagraph
			case "tab":
				if inParagraph {
					current.WriteString("\t")
				}
			}
		case xml.CharData:
			if inText {
				current.Write(t)
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				if inParagraph {
					paragraphs = append(paragraphs, current.String())
					inParagraph = false
				}
			}
		}
	}

	return paragraphs, nil
}
