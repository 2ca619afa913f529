package priority

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Lllllllleong/rfpingest/internal/models"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		text string
		want models.Priority
	}{
		{name: "high keyword", text: "Vendor MUST support SAML", want: models.PriorityHigh},
		{name: "required", text: "Encryption at rest is required.", want: models.PriorityHigh},
		{name: "medium keyword", text: "The solution should scale horizontally", want: models.PriorityMedium},
		{name: "recommend", text: "We Recommend a dedicated account manager", want: models.PriorityMedium},
		{name: "no keyword", text: "Describe your company history", want: models.PriorityLow},
		{name: "empty", text: "", want: models.PriorityLow},
		{
			name: "high wins over medium",
			text: "This feature must be available and we should also prefer SSO",
			want: models.PriorityHigh,
		},
		{name: "substring match", text: "Do you ship mustard?", want: models.PriorityHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.text))
		})
	}
}

func TestClassifier_CustomRulesOrder(t *testing.T) {
	c := NewClassifier([]Rule{
		{Priority: models.PriorityMedium, Keywords: []string{"Nice"}},
		{Priority: models.PriorityHigh, Keywords: []string{"nice to have"}},
	})

	assert.Equal(t, models.PriorityMedium, c.Classify("nice to have: dark mode"))
	assert.Equal(t, models.PriorityLow, c.Classify("dark mode"))
}
