package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Lllllllleong/rfpingest/internal/models"
)

// DocumentFinder resolves the document record created for an uploaded object.
type DocumentFinder interface {
	FindByStoragePath(ctx context.Context, storagePath string) (*models.Document, error)
}

// DocumentProcessor runs one ingestion. *Ingestor satisfies it.
type DocumentProcessor interface {
	Process(ctx context.Context, req models.IngestRequest) (*models.IngestOutcome, error)
}

// Notifier is told about every finished run. *AnswerHandoff satisfies it.
type Notifier interface {
	Notify(ctx context.Context, documentRef string, outcome *models.IngestOutcome) (bool, error)
}

// UploadTrigger turns object-finalized events from the uploads bucket into
// ingestion runs.
type UploadTrigger struct {
	bucket    string
	finder    DocumentFinder
	processor DocumentProcessor
	notifier  Notifier
}

// NewUploadTrigger wires the trigger. notifier may be nil.
func NewUploadTrigger(bucket string, finder DocumentFinder, processor DocumentProcessor, notifier Notifier) *UploadTrigger {
	return &UploadTrigger{bucket: bucket, finder: finder, processor: processor, notifier: notifier}
}

// Handle returns an error only when the event should be redelivered.
func (t *UploadTrigger) Handle(ctx context.Context, event models.GCSEvent) error {
	logCtx := slog.With("bucket", event.Bucket, "object", event.Name)

	if event.Bucket != t.bucket {
		logCtx.Warn("Ignoring event from unexpected bucket.", "expectedBucket", t.bucket)
		return nil
	}

	doc, err := t.finder.FindByStoragePath(ctx, event.Name)
	if err != nil {
		logCtx.Error("Failed to look up document for upload", "error", err)
		return err
	}
	if doc == nil {
		logCtx.Warn("No document registered for uploaded object, skipping.")
		return nil
	}

	contentType := doc.ContentType
	if contentType == "" {
		contentType = event.ContentType
	}

	outcome, err := t.processor.Process(ctx, models.IngestRequest{
		DocumentRef: doc.ID,
		StoragePath: event.Name,
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("ingestion of document %s could not be recorded: %w", doc.ID, err)
	}

	if t.notifier != nil {
		if _, err := t.notifier.Notify(ctx, doc.ID, outcome); err != nil {
			logCtx.Error("Answer generation hand-off failed", "documentId", doc.ID, "error", err)
		}
	}
	return nil
}
