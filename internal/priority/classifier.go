// Package priority tags question text with an urgency level using keyword rules.
package priority

import (
	"strings"

	"github.com/Lllllllleong/rfpingest/internal/models"
)

// Rule assigns Priority to text containing any of Keywords.
type Rule struct {
	Priority models.Priority
	Keywords []string
}

// DefaultRules is evaluated first-match-wins, so high always beats medium.
// Keywords match as substrings of the lower-cased text.
var DefaultRules = []Rule{
	{Priority: models.PriorityHigh, Keywords: []string{"must", "required", "mandatory", "critical", "essential"}},
	{Priority: models.PriorityMedium, Keywords: []string{"should", "recommend", "prefer"}},
}

// Classifier applies an ordered rule list and falls back to low priority.
type Classifier struct {
	rules    []Rule
	fallback models.Priority
}

// NewClassifier copies rules, lower-casing every keyword.
func NewClassifier(rules []Rule) *Classifier {
	normalized := make([]Rule, len(rules))
	for i, r := range rules {
		keywords := make([]string, len(r.Keywords))
		for j, k := range r.Keywords {
			keywords[j] = strings.ToLower(k)
		}
		normalized[i] = Rule{Priority: r.Priority, Keywords: keywords}
	}
	return &Classifier{rules: normalized, fallback: models.PriorityLow}
}

// Classify returns the priority of the first rule with a keyword present in text.
func (c *Classifier) Classify(text string) models.Priority {
	lower := strings.ToLower(text)
	for _, r := range c.rules {
		for _, k := range r.Keywords {
			if strings.Contains(lower, k) {
				return r.Priority
			}
		}
	}
	return c.fallback
}

var defaultClassifier = NewClassifier(DefaultRules)

// Classify uses DefaultRules.
func Classify(text string) models.Priority {
	return defaultClassifier.Classify(text)
}
