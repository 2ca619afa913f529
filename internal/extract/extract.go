// Package extract converts raw uploaded bytes into either a flat text stream or
// per-sheet row grids, together with coarse metadata about the source file.
package extract

import (
	"errors"
	"fmt"

	"github.com/Lllllllleong/rfpingest/internal/textutil"
)

var (
	// ErrUnsupportedFormat is returned when a content type maps to no extractor.
	ErrUnsupportedFormat = errors.New("unsupported format")
	// ErrExtractionFailure is returned when bytes cannot be decoded as their declared format.
	ErrExtractionFailure = errors.New("extraction failed")
)

// PreviewLength is the number of characters kept in the text preview metadata.
const PreviewLength = 500

// Metadata keys written by the extractors.
const (
	MetaPageCount   = "pageCount"
	MetaSheetCount  = "sheetCount"
	MetaSheetNames  = "sheetNames"
	MetaTextPreview = "textPreview"
)

// Kind tells which half of Content an extractor populated.
type Kind int

const (
	KindText Kind = iota + 1
	KindTable
)

// Sheet is one worksheet as an ordered list of rows of cell values.
type Sheet struct {
	Name string
	Rows [][]string
}

// Content is the output of an Extractor. Text is set for KindText, Sheets for KindTable.
type Content struct {
	Kind     Kind
	Text     string
	Sheets   []Sheet
	Metadata map[string]any
}

// Extractor decodes the bytes of a single document format.
// Implementations return no partial content on failure.
type Extractor interface {
	Extract(data []byte) (*Content, error)
}

func textContent(text string, metadata map[string]any) *Content {
	if metadata == nil {
		metadata = make(map[string]any, 1)
	}
	metadata[MetaTextPreview] = textutil.Truncate(text, PreviewLength)
	return &Content{Kind: KindText, Text: text, Metadata: metadata}
}

func tableContent(sheets []Sheet) *Content {
	names := make([]string, len(sheets))
	for i, s := range sheets {
		names[i] = s.Name
	}
	return &Content{
		Kind:   KindTable,
		Sheets: sheets,
		Metadata: map[string]any{
			MetaSheetCount: len(sheets),
			MetaSheetNames: names,
		},
	}
}

func extractionError(format string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrExtractionFailure, format, err)
}

// recoverDecoder turns a panic inside a third-party decoder into an extraction failure.
func recoverDecoder(format string, errp *error) {
	if r := recover(); r != nil {
		*errp = extractionError(format, fmt.Errorf("decoder panic: %v", r))
	}
}
