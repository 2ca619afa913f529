// Package segment turns extracted content into ordered sections of question records.
package segment

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/Lllllllleong/rfpingest/internal/extract"
	"github.com/Lllllllleong/rfpingest/internal/models"
	"github.com/Lllllllleong/rfpingest/internal/priority"
	"github.com/Lllllllleong/rfpingest/internal/textutil"
)

// TextRules configures segmentation of flat text.
type TextRules struct {
	Boundaries []BoundaryPattern
	// Fragments whose trimmed length is at most MinFragmentLength are noise.
	MinFragmentLength int
	MaxQuestionLength int
	SectionName       string
}

// TableRules configures row filtering of spreadsheet sheets.
type TableRules struct {
	// A first cell becomes a question only if its trimmed length exceeds MinCandidateLength.
	MinCandidateLength int
	// Any candidate containing one of these (lower-cased) is treated as a header row.
	HeaderKeywords    []string
	MaxQuestionLength int
	// Workers bounds how many sheets are filtered concurrently.
	Workers int
}

// Config bundles all segmentation rules.
type Config struct {
	Text       TextRules
	Table      TableRules
	Priorities []priority.Rule
}

// DefaultConfig returns the production rule set.
func DefaultConfig() Config {
	return Config{
		Text: TextRules{
			Boundaries:        DefaultBoundaries,
			MinFragmentLength: 20,
			MaxQuestionLength: 500,
			SectionName:       "General Questions",
		},
		Table: TableRules{
			MinCandidateLength: 10,
			HeaderKeywords:     []string{"question", "section", "number", "#", "description", "response"},
			MaxQuestionLength:  500,
			Workers:            4,
		},
		Priorities: priority.DefaultRules,
	}
}

// Segmenter is safe for concurrent use; all per-document state lives in the IDSequence.
type Segmenter struct {
	boundary   *regexp.Regexp
	text       TextRules
	table      TableRules
	classifier *priority.Classifier
}

func New(cfg Config) (*Segmenter, error) {
	boundary, err := CompileBoundaries(cfg.Text.Boundaries)
	if err != nil {
		return nil, err
	}
	if cfg.Table.Workers < 1 {
		cfg.Table.Workers = 1
	}
	keywords := make([]string, len(cfg.Table.HeaderKeywords))
	for i, k := range cfg.Table.HeaderKeywords {
		keywords[i] = strings.ToLower(k)
	}
	cfg.Table.HeaderKeywords = keywords

	return &Segmenter{
		boundary:   boundary,
		text:       cfg.Text,
		table:      cfg.Table,
		classifier: priority.NewClassifier(cfg.Priorities),
	}, nil
}

// Segment dispatches on the kind of extracted content.
func (s *Segmenter) Segment(ctx context.Context, content *extract.Content, ids *IDSequence) ([]models.Section, error) {
	switch content.Kind {
	case extract.KindText:
		return s.SegmentText(content.Text, ids), nil
	case extract.KindTable:
		return s.SegmentSheets(ctx, content.Sheets, ids)
	}
	return nil, fmt.Errorf("cannot segment content of kind %d", content.Kind)
}

// SegmentText splits text on question boundaries. Surviving fragments go into a
// single section; no section is returned when nothing survives.
func (s *Segmenter) SegmentText(text string, ids *IDSequence) []models.Section {
	var questions []models.Question
	for _, fragment := range s.boundary.Split(text, -1) {
		fragment = strings.TrimSpace(fragment)
		if textutil.RuneLen(fragment) <= s.text.MinFragmentLength {
			continue
		}
		questions = append(questions, s.newQuestion(ids, fragment, s.text.MaxQuestionLength))
	}
	if len(questions) == 0 {
		return nil
	}
	return []models.Section{{ID: ids.NextSection(), Name: s.text.SectionName, Questions: questions}}
}

// SegmentSheets filters each sheet's rows concurrently, then assigns ids in
// sheet order so the output does not depend on scheduling. No ids are consumed
// when ctx is cancelled before every sheet is filtered.
func (s *Segmenter) SegmentSheets(ctx context.Context, sheets []extract.Sheet, ids *IDSequence) ([]models.Section, error) {
	candidates := make([][]string, len(sheets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.table.Workers)
	for i, sheet := range sheets {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			candidates[i] = s.filterRows(sheet.Rows)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to filter sheet rows: %w", err)
	}

	var sections []models.Section
	for i, sheet := range sheets {
		if len(candidates[i]) == 0 {
			continue
		}
		questions := make([]models.Question, 0, len(candidates[i]))
		for _, text := range candidates[i] {
			questions = append(questions, s.newQuestion(ids, text, s.table.MaxQuestionLength))
		}
		sections = append(sections, models.Section{ID: ids.NextSection(), Name: sheet.Name, Questions: questions})
	}
	return sections, nil
}

// filterRows keeps the first cell of every row that looks like a question.
func (s *Segmenter) filterRows(rows [][]string) []string {
	var kept []string
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		candidate := strings.TrimSpace(row[0])
		if candidate == "" || textutil.RuneLen(candidate) <= s.table.MinCandidateLength {
			continue
		}
		if s.isHeader(candidate) {
			continue
		}
		kept = append(kept, candidate)
	}
	return kept
}

// isHeader matches by containment, so "What is your phone number?" is dropped too.
func (s *Segmenter) isHeader(candidate string) bool {
	lower := strings.ToLower(candidate)
	for _, k := range s.table.HeaderKeywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

func (s *Segmenter) newQuestion(ids *IDSequence, text string, maxLen int) models.Question {
	return models.NewQuestion(ids.NextQuestion(), textutil.Truncate(text, maxLen), s.classifier.Classify(text))
}
