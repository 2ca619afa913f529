// Package telemetry installs the process-wide tracer provider.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	gcpdetector "go.opentelemetry.io/contrib/detectors/gcp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// InitTracing installs a tracer provider that exports spans through logger as
// they end, described by the detected GCP resource. The returned function
// shuts the provider down.
func InitTracing(ctx context.Context, logger *slog.Logger, projectID, serviceName string) (func(context.Context) error, error) {
	res, err := resource.New(ctx,
		resource.WithDetectors(gcpdetector.NewDetector()),
		resource.WithAttributes(semconv.ServiceName(serviceName)),
	)
	switch {
	case errors.Is(err, resource.ErrPartialResource):
		logger.Warn("Trace resource is incomplete.", "error", err)
	case err != nil:
		return nil, fmt.Errorf("failed to create trace resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.AlwaysSample())),
		sdktrace.WithSyncer(NewLogExporter(logger, projectID)),
	)
	otel.SetTracerProvider(tp)

	logger.Info("Tracing configured.", "service", serviceName)
	return tp.Shutdown, nil
}
