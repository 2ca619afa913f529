package telemetry

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Cloud Logging correlates entries carrying these fields with Cloud Trace.
const (
	traceField  = "logging.googleapis.com/trace"
	spanIDField = "logging.googleapis.com/spanId"
)

// LogExporter writes every finished span as one structured log entry.
type LogExporter struct {
	logger    *slog.Logger
	projectID string
}

var _ sdktrace.SpanExporter = (*LogExporter)(nil)

// NewLogExporter logs spans to logger. projectID may be empty, in which case
// entries are not linked to Cloud Trace.
func NewLogExporter(logger *slog.Logger, projectID string) *LogExporter {
	return &LogExporter{logger: logger, projectID: projectID}
}

func (e *LogExporter) ExportSpans(ctx context.Context, spans []sdktrace.ReadOnlySpan) error {
	for _, s := range spans {
		sc := s.SpanContext()
		args := []any{
			"span", s.Name(),
			"traceId", sc.TraceID().String(),
			"spanId", sc.SpanID().String(),
			"durationMs", s.EndTime().Sub(s.StartTime()).Milliseconds(),
			"status", s.Status().Code.String(),
		}
		if s.Parent().IsValid() {
			args = append(args, "parentSpanId", s.Parent().SpanID().String())
		}
		if desc := s.Status().Description; desc != "" {
			args = append(args, "statusMessage", desc)
		}
		if e.projectID != "" {
			args = append(args,
				traceField, fmt.Sprintf("projects/%s/traces/%s", e.projectID, sc.TraceID()),
				spanIDField, sc.SpanID().String(),
			)
		}
		if attrs := s.Attributes(); len(attrs) > 0 {
			args = append(args, slog.Group("attributes", spanAttrs(attrs)...))
		}
		e.logger.InfoContext(ctx, "Span finished.", args...)
	}
	return nil
}

func (e *LogExporter) Shutdown(context.Context) error {
	return nil
}

func spanAttrs(attrs []attribute.KeyValue) []any {
	out := make([]any, 0, len(attrs))
	for _, kv := range attrs {
		out = append(out, slog.Any(string(kv.Key), kv.Value.AsInterface()))
	}
	return out
}
