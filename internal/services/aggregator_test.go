package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Lllllllleong/rfpingest/internal/models"
)

func TestAggregate(t *testing.T) {
	sections := []models.Section{
		{ID: "section_1", Name: "A", Questions: []models.Question{{ID: "q_1"}, {ID: "q_2"}}},
		{ID: "section_2", Name: "B", Questions: []models.Question{{ID: "q_3"}}},
	}
	metadata := map[string]any{"sheetCount": 2}

	res := Aggregate(sections, metadata)

	assert.Equal(t, 3, res.TotalQuestions)
	assert.Equal(t, sections, res.Sections)
	assert.Equal(t, 2, res.Metadata["sheetCount"])
	assert.Equal(t, 2, res.Metadata[MetaSectionCount])
	assert.NotContains(t, metadata, MetaSectionCount, "input metadata must not be mutated")
}

func TestAggregate_Empty(t *testing.T) {
	res := Aggregate(nil, nil)

	assert.Zero(t, res.TotalQuestions)
	assert.NotNil(t, res.Sections)
	assert.Empty(t, res.Sections)
	assert.Equal(t, 0, res.Metadata[MetaSectionCount])
}
