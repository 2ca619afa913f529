package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/Lllllllleong/rfpingest/internal/extract"
	"github.com/Lllllllleong/rfpingest/internal/segment"
)

// Metadata keys describing the source bytes.
const (
	MetaFormat      = "format"
	MetaSourceBytes = "sourceBytes"
	MetaSourceHash  = "sourceHash"
)

// DocumentParser runs extraction, segmentation and aggregation over bytes
// already in memory. It is pure: identical input yields identical output.
type DocumentParser struct {
	segmenter *segment.Segmenter
}

func NewDocumentParser(segmenter *segment.Segmenter) *DocumentParser {
	return &DocumentParser{segmenter: segmenter}
}

// Parse decodes data as format and returns the aggregated result.
// ctx only bounds the concurrent sheet filtering.
func (p *DocumentParser) Parse(ctx context.Context, format extract.Format, data []byte) (*Result, error) {
	extractor, err := extract.ExtractorFor(format)
	if err != nil {
		return nil, err
	}
	content, err := extractor.Extract(data)
	if err != nil {
		return nil, err
	}

	sections, err := p.segmenter.Segment(ctx, content, segment.NewIDSequence())
	if err != nil {
		return nil, fmt.Errorf("failed to segment %s content: %w", format, err)
	}

	metadata := make(map[string]any, len(content.Metadata)+3)
	for k, v := range content.Metadata {
		metadata[k] = v
	}
	metadata[MetaFormat] = format.String()
	metadata[MetaSourceBytes] = len(data)
	metadata[MetaSourceHash] = contentHash(data)

	return Aggregate(sections, metadata), nil
}

func contentHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
