package models

import "time"

// DocumentStatus is the lifecycle state of an ingestion run for a Document.
type DocumentStatus string

const (
	StatusPending    DocumentStatus = "pending"
	StatusProcessing DocumentStatus = "processing"
	StatusReady      DocumentStatus = "ready"
	StatusError      DocumentStatus = "error"
)

// Terminal reports whether no further automatic transition follows s.
func (s DocumentStatus) Terminal() bool {
	return s == StatusReady || s == StatusError
}

// Document represents one uploaded RFP artifact in Firestore.
// The ingestion pipeline owns Sections, TotalQuestions, Metadata and ErrorMessage;
// the remaining fields are written by the upload flow.
type Document struct {
	ID             string         `firestore:"-"`
	TeamID         string         `firestore:"teamId,omitempty"`
	StoragePath    string         `firestore:"storagePath,omitempty"`
	ContentType    string         `firestore:"contentType,omitempty"`
	Status         DocumentStatus `firestore:"status,omitempty"`
	Sections       []Section      `firestore:"sections"`
	TotalQuestions int            `firestore:"totalQuestions"`
	Metadata       map[string]any `firestore:"metadata,omitempty"`
	ErrorMessage   string         `firestore:"errorMessage,omitempty"`
	CreatedAt      time.Time      `firestore:"createdAt,omitempty"`
	UpdatedAt      time.Time      `firestore:"updatedAt,omitempty"`
}

// Section is a named, ordered group of questions: one per spreadsheet sheet,
// or a single synthetic group for flat text.
type Section struct {
	ID        string     `firestore:"id" json:"id"`
	Name      string     `firestore:"name" json:"name"`
	Questions []Question `firestore:"questions" json:"questions"`
}

// QuestionStatus tracks the answering workflow of a single question.
type QuestionStatus string

const QuestionPending QuestionStatus = "pending"

// Priority is the urgency tag assigned to a question at ingestion.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Question is a single extracted item requiring a response. Only ID, Text and
// Priority are decided by ingestion; the rest start empty and are filled downstream.
type Question struct {
	ID         string         `firestore:"id" json:"id"`
	Text       string         `firestore:"text" json:"text"`
	Response   string         `firestore:"response" json:"response"`
	Status     QuestionStatus `firestore:"status" json:"status"`
	AssignedTo *string        `firestore:"assignedTo" json:"assignedTo"`
	Priority   Priority       `firestore:"priority" json:"priority"`
	TrustScore float64        `firestore:"trustScore" json:"trustScore"`
	Citations  []Citation     `firestore:"citations" json:"citations"`
}

// Citation references material backing a generated answer.
type Citation struct {
	Source  string `firestore:"source" json:"source"`
	Excerpt string `firestore:"excerpt,omitempty" json:"excerpt,omitempty"`
}

// NewQuestion returns a freshly extracted question in its initial state.
func NewQuestion(id, text string, priority Priority) Question {
	return Question{
		ID:        id,
		Text:      text,
		Status:    QuestionPending,
		Priority:  priority,
		Citations: []Citation{},
	}
}
