package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"cloud.google.com/go/storage"
	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
	cloudevents "github.com/cloudevents/sdk-go/v2"
	_ "github.com/joho/godotenv/autoload"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Lllllllleong/rfpingest/internal/config"
	"github.com/Lllllllleong/rfpingest/internal/gcp"
	"github.com/Lllllllleong/rfpingest/internal/metrics"
	"github.com/Lllllllleong/rfpingest/internal/models"
	"github.com/Lllllllleong/rfpingest/internal/segment"
	"github.com/Lllllllleong/rfpingest/internal/services"
	"github.com/Lllllllleong/rfpingest/internal/telemetry"
)

var (
	cfg             *config.AppConfig
	triggerInstance *services.UploadTrigger
	metricsPusher   *metrics.Pusher
	once            sync.Once
	initErr         error
)

func init() {
	cfg = config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	functions.CloudEvent("IngestDocument", ingestDocument)
}

// main is required by the Go Functions Framework.
func main() {}

func ingestDocument(ctx context.Context, e cloudevents.Event) error {
	once.Do(func() {
		triggerInstance, initErr = newUploadTrigger(context.Background(), cfg)
	})
	if initErr != nil {
		slog.Error("Critical error during function initialization", "error", initErr)
		return initErr
	}

	var gcsEvent models.GCSEvent
	if err := json.Unmarshal(e.Data(), &gcsEvent); err != nil {
		slog.Error("Failed to unmarshal event data", "error", err, "data", string(e.Data()))
		return fmt.Errorf("json.Unmarshal: %w", err)
	}

	err := triggerInstance.Handle(ctx, gcsEvent)
	if metricsPusher != nil {
		if pushErr := metricsPusher.Push(ctx); pushErr != nil {
			slog.Warn("Failed to push ingestion metrics", "error", pushErr)
		}
	}
	return err
}

func newUploadTrigger(ctx context.Context, cfg *config.AppConfig) (*services.UploadTrigger, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.Telemetry.TracingEnabled {
		// spans are exported as they end, so there is nothing to flush on exit
		if _, err := telemetry.InitTracing(ctx, slog.Default(), cfg.ProjectID, cfg.Telemetry.ServiceName); err != nil {
			return nil, err
		}
	}

	storageClient, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	documents, err := gcp.OpenDocumentStore(ctx, cfg.ProjectID, cfg.FirestoreCollection)
	if err != nil {
		return nil, err
	}

	segCfg := segment.DefaultConfig()
	segCfg.Table.Workers = cfg.SheetWorkers
	segmenter, err := segment.New(segCfg)
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	recorder, err := metrics.NewRecorder(registry)
	if err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}
	if cfg.Telemetry.MetricsPushURL != "" {
		metricsPusher = metrics.NewPusher(cfg.Telemetry.MetricsPushURL, cfg.Telemetry.ServiceName, uuid.NewString(), registry)
	}

	ingestor := services.NewIngestor(
		gcp.NewObjectSource(storageClient, cfg.UploadsBucket, cfg.MaxSourceBytes),
		documents,
		services.NewDocumentParser(segmenter),
		recorder,
	)

	var notifier services.Notifier
	if cfg.Workflow.Enabled() {
		executionsClient, err := gcp.NewWorkflowExecutionsClient(ctx)
		if err != nil {
			return nil, err
		}
		notifier = services.NewAnswerHandoff(executionsClient, cfg.ProjectID, cfg.Workflow.Location, cfg.Workflow.ID)
	}

	slog.Info("Document ingestor initialized.",
		"bucket", cfg.UploadsBucket,
		"collection", cfg.FirestoreCollection,
		"handoff", cfg.Workflow.Enabled(),
		"tracing", cfg.Telemetry.TracingEnabled,
		"metricsPush", metricsPusher != nil,
	)
	return services.NewUploadTrigger(cfg.UploadsBucket, documents, ingestor, notifier), nil
}
