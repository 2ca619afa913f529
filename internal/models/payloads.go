package models

// GCSEvent is the data payload of a Cloud Storage "object finalized" CloudEvent.
type GCSEvent struct {
	Bucket      string `json:"bucket"`
	Name        string `json:"name"`
	ContentType string `json:"contentType"`
	Size        string `json:"size"`
	Generation  string `json:"generation"`
}

// IngestRequest addresses one ingestion run. DocumentRef is opaque to the pipeline
// and only used to address the final record update.
type IngestRequest struct {
	DocumentRef string
	StoragePath string
	ContentType string
}

// IngestOutcome is the terminal result of an ingestion run, mirroring what was
// written to the document record.
type IngestOutcome struct {
	Status         DocumentStatus
	TotalQuestions int
	SectionCount   int
	ErrorMessage   string
}
