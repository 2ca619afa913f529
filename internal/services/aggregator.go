package services

import (
	"github.com/Lllllllleong/rfpingest/internal/models"
)

// MetaSectionCount is added to the metadata summary by Aggregate.
const MetaSectionCount = "sectionCount"

// Result is the payload written to a document on a successful run.
type Result struct {
	Sections       []models.Section
	TotalQuestions int
	Metadata       map[string]any
}

// Aggregate merges segmented sections with extractor metadata. It performs no I/O.
// Sections is never nil so the record always carries an explicit (possibly empty) list.
func Aggregate(sections []models.Section, metadata map[string]any) *Result {
	if sections == nil {
		sections = []models.Section{}
	}

	total := 0
	for _, s := range sections {
		total += len(s.Questions)
	}

	merged := make(map[string]any, len(metadata)+1)
	for k, v := range metadata {
		merged[k] = v
	}
	merged[MetaSectionCount] = len(sections)

	return &Result{
		Sections:       sections,
		TotalQuestions: total,
		Metadata:       merged,
	}
}
