package config

import (
	"errors"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

const defaultMaxSourceBytes = 50 << 20

// WorkflowConfig names the answer-generation workflow started after a
// successful ingestion. The hand-off is disabled when ID is empty.
type WorkflowConfig struct {
	ID       string
	Location string
}

// Enabled reports whether a workflow hand-off is configured.
func (w WorkflowConfig) Enabled() bool {
	return w.ID != ""
}

// TelemetryConfig controls where metrics and traces leave the process.
// Metrics are pushed only when PushURL is set.
type TelemetryConfig struct {
	ServiceName    string
	MetricsPushURL string
	TracingEnabled bool
}

// AppConfig is populated from environment variables.
type AppConfig struct {
	ProjectID           string
	UploadsBucket       string
	FirestoreCollection string
	MaxSourceBytes      int64
	SheetWorkers        int
	LogLevel            string
	Workflow            WorkflowConfig
	Telemetry           TelemetryConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
func Load() *AppConfig {
	return &AppConfig{
		ProjectID:           getEnv("PROJECT_ID", ""),
		UploadsBucket:       getEnv("UPLOADS_BUCKET", ""),
		FirestoreCollection: getEnv("FIRESTORE_COLLECTION", "documents"),
		MaxSourceBytes:      getEnvInt64("MAX_SOURCE_BYTES", defaultMaxSourceBytes),
		SheetWorkers:        getEnvInt("SHEET_WORKERS", 4),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		Workflow: WorkflowConfig{
			ID:       getEnv("WORKFLOW_ID", ""),
			Location: getEnv("WORKFLOW_LOCATION", "us-central1"),
		},
		Telemetry: TelemetryConfig{
			ServiceName:    getEnv("SERVICE_NAME", "document-ingestor"),
			MetricsPushURL: getEnv("METRICS_PUSH_URL", ""),
			TracingEnabled: getEnvBool("TRACING_ENABLED", true),
		},
	}
}

// Validate reports every missing required value at once.
func (c *AppConfig) Validate() error {
	var errs []error
	if c.ProjectID == "" {
		errs = append(errs, errors.New("PROJECT_ID is required"))
	}
	if c.UploadsBucket == "" {
		errs = append(errs, errors.New("UPLOADS_BUCKET is required"))
	}
	if c.SheetWorkers < 1 {
		errs = append(errs, errors.New("SHEET_WORKERS must be at least 1"))
	}
	return errors.Join(errs...)
}

// SlogLevel maps LogLevel onto slog, defaulting to info.
func (c *AppConfig) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

func getEnvInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.ParseInt(v, 10, 64)
		if err == nil {
			return i
		}
	}
	return def
}
