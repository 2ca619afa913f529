package extract

import (
	"fmt"
	"mime"
	"strings"
)

// Format is the closed set of document formats the pipeline can ingest.
type Format int

const (
	FormatPDF Format = iota + 1
	FormatLegacySpreadsheet
	FormatSpreadsheet
	FormatWordProcessing
)

// Supported MIME types.
const (
	MIMEPDF               = "application/pdf"
	MIMELegacySpreadsheet = "application/vnd.ms-excel"
	MIMESpreadsheet       = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	MIMEWordProcessing    = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

var formatsByMIME = map[string]Format{
	MIMEPDF:               FormatPDF,
	MIMELegacySpreadsheet: FormatLegacySpreadsheet,
	MIMESpreadsheet:       FormatSpreadsheet,
	MIMEWordProcessing:    FormatWordProcessing,
}

func (f Format) String() string {
	switch f {
	case FormatPDF:
		return "pdf"
	case FormatLegacySpreadsheet:
		return "xls"
	case FormatSpreadsheet:
		return "xlsx"
	case FormatWordProcessing:
		return "docx"
	}
	return "unknown"
}

// Route maps a content type to its Format. It inspects nothing but the string,
// so unsupported uploads are rejected before any bytes are fetched.
func Route(contentType string) (Format, error) {
	if f, ok := formatsByMIME[normalizeContentType(contentType)]; ok {
		return f, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, contentType)
}

// ExtractorFor returns the extractor implementing f.
func ExtractorFor(f Format) (Extractor, error) {
	switch f {
	case FormatPDF:
		return pdfExtractor{}, nil
	case FormatLegacySpreadsheet:
		return xlsExtractor{}, nil
	case FormatSpreadsheet:
		return xlsxExtractor{}, nil
	case FormatWordProcessing:
		return docxExtractor{}, nil
	}
	return nil, fmt.Errorf("%w: format %d", ErrUnsupportedFormat, int(f))
}

// normalizeContentType drops parameters such as "; charset=binary" and lower-cases the media type.
func normalizeContentType(contentType string) string {
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		return mediaType
	}
	return strings.ToLower(strings.TrimSpace(contentType))
}
