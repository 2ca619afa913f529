package segment

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// BoundaryPattern is one named alternative of the question-boundary expression.
type BoundaryPattern struct {
	Name string
	Expr string
}

// DefaultBoundaries is listed in match precedence order: when several markers
// could start at the same position, the earlier entry wins.
var DefaultBoundaries = []BoundaryPattern{
	{Name: "numbered", Expr: `\d+\.`},
	{Name: "lettered", Expr: `[A-Za-z]\.`},
	{Name: "question-label", Expr: `(?i:question)\s*\d+:?`},
	{Name: "question-mark", Expr: `\?\s`},
}

var errNoBoundaries = errors.New("at least one boundary pattern is required")

// CompileBoundaries joins patterns into one expression anchored at the start of
// the text or right after a newline.
func CompileBoundaries(patterns []BoundaryPattern) (*regexp.Regexp, error) {
	if len(patterns) == 0 {
		return nil, errNoBoundaries
	}
	alternatives := make([]string, len(patterns))
	for i, p := range patterns {
		if _, err := regexp.Compile(p.Expr); err != nil {
			return nil, fmt.Errorf("boundary pattern %q: %w", p.Name, err)
		}
		alternatives[i] = "(?:" + p.Expr + ")"
	}
	return regexp.Compile(`(?:^|\n)(?:` + strings.Join(alternatives, "|") + `)`)
}
