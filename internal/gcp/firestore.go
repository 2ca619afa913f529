package gcp

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"

	"github.com/Lllllllleong/rfpingest/internal/models"
	"github.com/Lllllllleong/rfpingest/internal/services"
)

// DocumentStore persists ingestion state on the documents collection.
type DocumentStore struct {
	client     *firestore.Client
	collection string
}

func NewDocumentStore(client *firestore.Client, collection string) *DocumentStore {
	return &DocumentStore{client: client, collection: collection}
}

// OpenDocumentStore dials Firestore for projectID and binds the store to the
// named collection. Both values are checked before any connection is made.
func OpenDocumentStore(ctx context.Context, projectID, collection string) (*DocumentStore, error) {
	if err := errors.Join(
		requireValue("projectID", projectID),
		requireValue("collection", collection),
	); err != nil {
		return nil, fmt.Errorf("cannot open document store: %w", err)
	}

	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create Firestore client for %s/%s: %w", projectID, collection, err)
	}
	return NewDocumentStore(client, collection), nil
}

// Close releases the underlying client.
func (s *DocumentStore) Close() error {
	return s.client.Close()
}

func requireValue(name, value string) error {
	if value == "" {
		return fmt.Errorf("%s must be provided", name)
	}
	return nil
}

var _ services.DocumentStore = (*DocumentStore)(nil)

// FindByStoragePath returns the document registered for an uploaded object,
// or nil when the upload flow has not created one.
func (s *DocumentStore) FindByStoragePath(ctx context.Context, storagePath string) (*models.Document, error) {
	docs, err := s.client.Collection(s.collection).Where("storagePath", "==", storagePath).Limit(1).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to query document for %s: %w", storagePath, err)
	}
	if len(docs) == 0 {
		return nil, nil
	}

	var doc models.Document
	if err := docs[0].DataTo(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode document %s: %w", docs[0].Ref.ID, err)
	}
	doc.ID = docs[0].Ref.ID
	return &doc, nil
}

func (s *DocumentStore) MarkProcessing(ctx context.Context, ref string) error {
	return s.update(ctx, ref, processingUpdates())
}

func (s *DocumentStore) MarkReady(ctx context.Context, ref string, result *services.Result) error {
	return s.update(ctx, ref, readyUpdates(result))
}

func (s *DocumentStore) MarkFailed(ctx context.Context, ref string, message string) error {
	return s.update(ctx, ref, failedUpdates(message))
}

func (s *DocumentStore) update(ctx context.Context, ref string, updates []firestore.Update) error {
	if _, err := s.client.Collection(s.collection).Doc(ref).Update(ctx, updates); err != nil {
		return fmt.Errorf("failed to update document %s: %w", ref, err)
	}
	return nil
}

func processingUpdates() []firestore.Update {
	return []firestore.Update{
		{Path: "status", Value: string(models.StatusProcessing)},
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	}
}

// readyUpdates writes sections, count and metadata together with the status
// so readers never see ready without its results. A stale errorMessage from an
// earlier failed run is removed.
func readyUpdates(result *services.Result) []firestore.Update {
	return []firestore.Update{
		{Path: "status", Value: string(models.StatusReady)},
		{Path: "sections", Value: result.Sections},
		{Path: "totalQuestions", Value: result.TotalQuestions},
		{Path: "metadata", Value: result.Metadata},
		{Path: "errorMessage", Value: firestore.Delete},
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	}
}

func failedUpdates(message string) []firestore.Update {
	return []firestore.Update{
		{Path: "status", Value: string(models.StatusError)},
		{Path: "errorMessage", Value: message},
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	}
}
