package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lllllllleong/rfpingest/internal/extract"
	"github.com/Lllllllleong/rfpingest/internal/segment"
	"github.com/Lllllllleong/rfpingest/internal/testutil"
)

func newTestParser(t *testing.T) *DocumentParser {
	t.Helper()
	seg, err := segment.New(segment.DefaultConfig())
	require.NoError(t, err)
	return NewDocumentParser(seg)
}

func TestDocumentParser_Spreadsheet(t *testing.T) {
	p := newTestParser(t)
	data := testutil.RFPWorkbook(t)

	res, err := p.Parse(context.Background(), extract.FormatSpreadsheet, data)
	require.NoError(t, err)

	require.Len(t, res.Sections, 2)
	assert.Equal(t, "Security", res.Sections[0].Name)
	assert.Equal(t, "Pricing", res.Sections[1].Name)
	require.Len(t, res.Sections[0].Questions, 1)
	require.Len(t, res.Sections[1].Questions, 1)
	assert.Equal(t, "q_1", res.Sections[0].Questions[0].ID)
	assert.Equal(t, "q_2", res.Sections[1].Questions[0].ID)
	assert.Equal(t, 2, res.TotalQuestions)

	assert.Equal(t, "xlsx", res.Metadata[MetaFormat])
	assert.Equal(t, len(data), res.Metadata[MetaSourceBytes])
	assert.Equal(t, contentHash(data), res.Metadata[MetaSourceHash])
	assert.Equal(t, 2, res.Metadata[extract.MetaSheetCount])
	assert.Equal(t, 2, res.Metadata[MetaSectionCount])
}

func TestDocumentParser_WordProcessing(t *testing.T) {
	p := newTestParser(t)
	data := testutil.WordDocument(t,
		"1. Describe your backup retention policy in detail",
		"2. Explain how restores are verified each quarter",
	)

	res, err := p.Parse(context.Background(), extract.FormatWordProcessing, data)
	require.NoError(t, err)

	require.Len(t, res.Sections, 1)
	assert.Equal(t, "General Questions", res.Sections[0].Name)
	require.Len(t, res.Sections[0].Questions, 2)
	assert.Equal(t, "Describe your backup retention policy in detail", res.Sections[0].Questions[0].Text)
	assert.Equal(t, "Explain how restores are verified each quarter", res.Sections[0].Questions[1].Text)
	assert.Equal(t, 2, res.TotalQuestions)
	assert.Equal(t, "docx", res.Metadata[MetaFormat])
	assert.Contains(t, res.Metadata[extract.MetaTextPreview], "backup retention policy")
}

func TestDocumentParser_CancelledSheetFiltering(t *testing.T) {
	p := newTestParser(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := p.Parse(ctx, extract.FormatSpreadsheet, testutil.RFPWorkbook(t))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, res)
}

func TestDocumentParser_Deterministic(t *testing.T) {
	p := newTestParser(t)
	data := testutil.RFPWorkbook(t)

	first, err := p.Parse(context.Background(), extract.FormatSpreadsheet, data)
	require.NoError(t, err)
	second, err := p.Parse(context.Background(), extract.FormatSpreadsheet, data)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestDocumentParser_Failures(t *testing.T) {
	p := newTestParser(t)

	_, err := p.Parse(context.Background(), extract.Format(0), []byte("x"))
	assert.ErrorIs(t, err, extract.ErrUnsupportedFormat)

	_, err = p.Parse(context.Background(), extract.FormatSpreadsheet, []byte("not a workbook"))
	assert.ErrorIs(t, err, extract.ErrExtractionFailure)
}

func TestContentHash(t *testing.T) {
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", contentHash(nil))
}
