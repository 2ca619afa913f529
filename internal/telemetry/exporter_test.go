package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func decodeEntries(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		entries = append(entries, entry)
	}
	return entries
}

func TestLogExporter_ExportSpans(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(NewLogExporter(logger, "rfp-prod")))
	tracer := tp.Tracer("test")

	ctx, parent := tracer.Start(context.Background(), "Ingestor.Process")
	_, child := tracer.Start(ctx, "Ingestor.fetch")
	child.SetAttributes(attribute.Int("document.bytes", 2048))
	child.End()
	parent.SetStatus(codes.Error, "failed to read source file")
	parent.End()

	entries := decodeEntries(t, &buf)
	require.Len(t, entries, 2)

	fetch, process := entries[0], entries[1]
	assert.Equal(t, "Span finished.", fetch["msg"])
	assert.Equal(t, "Ingestor.fetch", fetch["span"])
	assert.Equal(t, process["spanId"], fetch["parentSpanId"])
	assert.Equal(t, process["traceId"], fetch["traceId"])
	assert.Equal(t, "Unset", fetch["status"])
	assert.Equal(t, map[string]any{"document.bytes": float64(2048)}, fetch["attributes"])
	assert.Equal(t, "projects/rfp-prod/traces/"+fetch["traceId"].(string), fetch[traceField])
	assert.Equal(t, fetch["spanId"], fetch[spanIDField])

	assert.Equal(t, "Ingestor.Process", process["span"])
	assert.Equal(t, "Error", process["status"])
	assert.Equal(t, "failed to read source file", process["statusMessage"])
	assert.NotContains(t, process, "parentSpanId")
	assert.NotContains(t, process, "attributes")
}

func TestLogExporter_WithoutProject(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(NewLogExporter(logger, "")))

	_, span := tp.Tracer("test").Start(context.Background(), "Ingestor.parse")
	span.End()

	entries := decodeEntries(t, &buf)
	require.Len(t, entries, 1)
	assert.NotContains(t, entries[0], traceField)
	assert.NotContains(t, entries[0], spanIDField)
}

func TestInitTracing(t *testing.T) {
	previous := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	shutdown, err := InitTracing(context.Background(), logger, "rfp-prod", "document-ingestor")
	require.NoError(t, err)
	defer func() { assert.NoError(t, shutdown(context.Background())) }()

	buf.Reset()
	_, span := otel.Tracer("test").Start(context.Background(), "Ingestor.Process")
	span.End()

	entries := decodeEntries(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "Ingestor.Process", entries[0]["span"])
}
