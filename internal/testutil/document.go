package testutil

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`
	packageRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`
	documentHead = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"><w:body>`
	documentTail = `<w:sectPr/></w:body></w:document>`
)

// WordDocument returns the bytes of a .docx holding one single-run paragraph per entry.
func WordDocument(t testing.TB, paragraphs ...string) []byte {
	t.Helper()
	var body strings.Builder
	for _, p := range paragraphs {
		body.WriteString(Paragraph(t, p))
	}
	return WordDocumentBody(t, body.String())
}

// Paragraph renders text as a w:p element with a single run.
func Paragraph(t testing.TB, text string) string {
	t.Helper()
	var escaped bytes.Buffer
	require.NoError(t, xml.EscapeText(&escaped, []byte(text)))
	return `<w:p><w:r><w:t xml:space="preserve">` + escaped.String() + `</w:t></w:r></w:p>`
}

// WordDocumentBody packages raw w:body content as a .docx.
func WordDocumentBody(t testing.TB, body string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	parts := []struct{ name, content string }{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", packageRelsXML},
		{"word/document.xml", documentHead + body + documentTail},
	}
	for _, part := range parts {
		w, err := zw.Create(part.name)
		require.NoError(t, err)
		_, err = w.Write([]byte(part.content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}
