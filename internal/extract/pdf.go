package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

func init() {
	// Cloud Functions only allow writes under /tmp; pdfcpu must not touch ~/.config.
	api.DisableConfigDir()
}

type pdfExtractor struct{}

// Extract validates the PDF structure with pdfcpu, which also rejects files that
// need a user password, then reads the text row by row so line starts survive.
func (pdfExtractor) Extract(data []byte) (content *Content, err error) {
	defer recoverDecoder("pdf", &err)

	pageCount, err := pdfPageCount(data)
	if err != nil {
		return nil, extractionError("pdf", err)
	}
	text, err := pdfText(data)
	if err != nil {
		return nil, extractionError("pdf", err)
	}
	return textContent(text, map[string]any{MetaPageCount: pageCount}), nil
}

func pdfPageCount(data []byte) (int, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return api.PageCount(bytes.NewReader(data), conf)
}

func pdfText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			return "", fmt.Errorf("page %d: %w", i, err)
		}
		for _, row := range rows {
			for _, word := range row.Content {
				b.WriteString(word.S)
			}
			b.WriteByte('\n')
		}
	}
	return b.String(), nil
}
