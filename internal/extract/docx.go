package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	docxMainPart     = "word/document.xml"
	wordprocessingNS ="http://schemas.openxmlformats.org/wordprocessingml/2006/main"
)

// docxExtractor reads word-processing documents as plain text. Styling is
// dropped and non-empty paragraphs are separated by a blank line, in document
// order, including paragraphs inside tables.
type docxExtractor struct{}

func (docxExtractor) Extract(data []byte) (content *Content, err error) {
	defer recoverDecoder("docx", &err)

	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, extractionError("docx", err)
	}

	var main *zip.File
	for _, f := range archive.File {
		if f.Name == docxMainPart {
			main = f
			break
		}
	}
	if main == nil {
		return nil, extractionError("docx", fmt.Errorf("missing %s", docxMainPart))
	}

	rc, err := main.Open()
	if err != nil {
		return nil, extractionError("docx", err)
	}
	defer rc.Close()

	paragraphs, err := docxParagraphs(rc)
	if err != nil {
		return nil, extractionError("docx", err)
	}
	return textContent(strings.Join(paragraphs, "\n\n"), nil), nil
}

// docxParagraphs walks the main document part and returns the text of every
// non-empty w:p. Only w:t carries text; w:tab and w:br/w:cr become whitespace.
func docxParagraphs(r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)

	var (
		paragraphs []string
		current    strings.Builder
		depth      int
		inText     bool
		sawBody    bool
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space != wordprocessingNS {
				continue
			}
			switch t.Name.Local {
			case "body":
				sawBody = true
			case "p":
				// nested paragraphs (text boxes) continue the outer one
				if depth == 0 {
					current.Reset()
				}
				depth++
			case "t":
				inText = true
			case "tab":
				current.WriteByte('\t')
			case "br", "cr":
				current.WriteByte('\n')
			}
		case xml.EndElement:
			if t.Name.Space != wordprocessingNS {
				continue
			}
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				if depth == 0 {
					continue
				}
				depth--
				if depth == 0 {
					if text := strings.TrimSpace(current.String()); text != "" {
						paragraphs = append(paragraphs, text)
					}
				}
			}
		case xml.CharData:
			if inText && depth > 0 {
				current.Write(t)
			}
		}
	}

	if !sawBody {
		return nil, errors.New("document has no body")
	}
	return paragraphs, nil
}
