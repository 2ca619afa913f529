package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Lllllllleong/rfpingest/internal/extract"
	"github.com/Lllllllleong/rfpingest/internal/models"
)

// ObjectSource reads an uploaded file by its storage path.
type ObjectSource interface {
	Fetch(ctx context.Context, path string) ([]byte, error)
}

// DocumentStore applies the status transitions of an ingestion run to the document record.
type DocumentStore interface {
	MarkProcessing(ctx context.Context, ref string) error
	MarkReady(ctx context.Context, ref string, result *Result) error
	MarkFailed(ctx context.Context, ref string, message string) error
}

// Recorder observes finished runs. status is "ready" or "error".
type Recorder interface {
	ObserveIngestion(format, status string, questions int, elapsed time.Duration)
}

type noopRecorder struct{}

func (noopRecorder) ObserveIngestion(string, string, int, time.Duration) {}

const tracerName = "github.com/Lllllllleong/rfpingest/internal/services"

// Ingestor sequences router, fetch, parse and persist for a single document.
// Runs for different documents share no mutable state; the caller must not run
// the same document concurrently.
type Ingestor struct {
	objects   ObjectSource
	documents DocumentStore
	parser    *DocumentParser
	metrics   Recorder
	tracer    trace.Tracer
}

// IngestorOption customises an Ingestor.
type IngestorOption func(*Ingestor)

// WithTracerProvider starts spans from tp instead of the global provider.
func WithTracerProvider(tp trace.TracerProvider) IngestorOption {
	return func(f *Ingestor) {
		f.tracer = tp.Tracer(tracerName)
	}
}

// NewIngestor wires the pipeline. metrics may be nil.
func NewIngestor(objects ObjectSource, documents DocumentStore, parser *DocumentParser, metrics Recorder, opts ...IngestorOption) *Ingestor {
	if metrics == nil {
		metrics = noopRecorder{}
	}
	f := &Ingestor{
		objects:   objects,
		documents: documents,
		parser:    parser,
		metrics:   metrics,
		tracer:    otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Process runs the pipeline once and leaves the document in ready or error.
// Pipeline failures are reported through the outcome; a non-nil error means
// the document record itself could not be written. A panic anywhere in the run
// is reported the same way as a pipeline failure.
func (f *Ingestor) Process(ctx context.Context, req models.IngestRequest) (outcome *models.IngestOutcome, err error) {
	start := time.Now()
	logCtx := slog.With("documentId", req.DocumentRef, "runId", uuid.NewString(), "storagePath", req.StoragePath)
	logCtx.Info("Starting ingestion.", "contentType", req.ContentType)

	ctx, span := f.tracer.Start(ctx, "Ingestor.Process", trace.WithAttributes(
		attribute.String("document.id", req.DocumentRef),
		attribute.String("document.content_type", req.ContentType),
	))
	defer span.End()

	var (
		format extract.Format
		saved  *Result
	)
	defer func() {
		if r := recover(); r != nil {
			outcome, err = f.recoverFault(ctx, logCtx, span, req.DocumentRef, format, start, saved, r)
		}
	}()

	if err := f.documents.MarkProcessing(ctx, req.DocumentRef); err != nil {
		logCtx.Error("Failed to mark document as processing", "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "mark processing")
		return nil, fmt.Errorf("failed to mark document %s as processing: %w", req.DocumentRef, err)
	}

	format, err = extract.Route(req.ContentType)
	if err != nil {
		return f.handleError(ctx, logCtx, span, req.DocumentRef, format, start, err)
	}
	logCtx.Info("Routed content type.", "format", format.String())

	data, err := f.fetch(ctx, req.StoragePath)
	if err != nil {
		return f.handleError(ctx, logCtx, span, req.DocumentRef, format, start, err)
	}
	logCtx.Info("Downloaded source file.", "bytes", len(data))

	result, err := f.parse(ctx, format, data)
	if err != nil {
		return f.handleError(ctx, logCtx, span, req.DocumentRef, format, start, err)
	}

	if err := f.documents.MarkReady(ctx, req.DocumentRef, result); err != nil {
		return f.handleError(ctx, logCtx, span, req.DocumentRef, format, start, fmt.Errorf("failed to save ingestion result: %w", err))
	}
	saved = result

	if result.TotalQuestions == 0 {
		logCtx.Warn("No questions found in document.")
	}
	span.SetAttributes(attribute.Int("document.total_questions", result.TotalQuestions))
	f.metrics.ObserveIngestion(format.String(), string(models.StatusReady), result.TotalQuestions, time.Since(start))
	logCtx.Info("Ingestion complete.", "sectionCount", len(result.Sections), "totalQuestions", result.TotalQuestions)

	return readyOutcome(result), nil
}

func (f *Ingestor) fetch(ctx context.Context, path string) ([]byte, error) {
	ctx, span := f.tracer.Start(ctx, "Ingestor.fetch")
	defer span.End()

	data, err := f.objects.Fetch(ctx, path)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch")
		return nil, fmt.Errorf("failed to read source file: %w", err)
	}
	span.SetAttributes(attribute.Int("document.bytes", len(data)))
	return data, nil
}

func (f *Ingestor) parse(ctx context.Context, format extract.Format, data []byte) (*Result, error) {
	ctx, span := f.tracer.Start(ctx, "Ingestor.parse", trace.WithAttributes(attribute.String("document.format", format.String())))
	defer span.End()

	result, err := f.parser.Parse(ctx, format, data)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "parse")
		return nil, err
	}
	return result, nil
}

// handleError moves the document to the error state with a readable message.
func (f *Ingestor) handleError(ctx context.Context, logCtx *slog.Logger, span trace.Span, ref string, format extract.Format, start time.Time, cause error) (*models.IngestOutcome, error) {
	message := cause.Error()
	logCtx.Error("Ingestion failed", "error", cause)
	span.RecordError(cause)
	span.SetStatus(codes.Error, message)

	outcome := &models.IngestOutcome{Status: models.StatusError, ErrorMessage: message}
	markErr := f.documents.MarkFailed(ctx, ref, message)
	f.metrics.ObserveIngestion(format.String(), string(models.StatusError), 0, time.Since(start))
	if markErr != nil {
		logCtx.Error("CRITICAL: Failed to update document status to error after a processing failure.", "updateError", markErr)
		return outcome, fmt.Errorf("failed to record ingestion error for document %s: %w", ref, markErr)
	}
	return outcome, nil
}

// recoverFault converts a recovered panic into an outcome. A document whose
// result was already saved stays ready.
func (f *Ingestor) recoverFault(ctx context.Context, logCtx *slog.Logger, span trace.Span, ref string, format extract.Format, start time.Time, saved *Result, r any) (outcome *models.IngestOutcome, err error) {
	cause := fmt.Errorf("unexpected internal fault: %v", r)
	if saved != nil {
		logCtx.Error("Internal fault after the ingestion result was saved", "error", cause)
		span.RecordError(cause)
		return readyOutcome(saved), nil
	}

	defer func() {
		if again := recover(); again != nil {
			logCtx.Error("CRITICAL: Internal fault while recording an ingestion error.", "error", cause, "fault", again)
			span.SetStatus(codes.Error, cause.Error())
			outcome = &models.IngestOutcome{Status: models.StatusError, ErrorMessage: cause.Error()}
			err = fmt.Errorf("failed to record ingestion error for document %s: unexpected internal fault: %v", ref, again)
		}
	}()
	return f.handleError(ctx, logCtx, span, ref, format, start, cause)
}

func readyOutcome(result *Result) *models.IngestOutcome {
	return &models.IngestOutcome{
		Status:         models.StatusReady,
		TotalQuestions: result.TotalQuestions,
		SectionCount:   len(result.Sections),
	}
}
