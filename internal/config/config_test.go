package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Setenv("PROJECT_ID", "rfp-prod")
	t.Setenv("UPLOADS_BUCKET", "rfp-uploads")
	t.Setenv("MAX_SOURCE_BYTES", "1024")
	t.Setenv("SHEET_WORKERS", "8")
	t.Setenv("WORKFLOW_ID", "answer-generation")
	t.Setenv("FIRESTORE_COLLECTION", "")
	t.Setenv("METRICS_PUSH_URL", "http://pushgateway:9091")
	t.Setenv("TRACING_ENABLED", "false")

	cfg := Load()

	assert.Equal(t, "rfp-prod", cfg.ProjectID)
	assert.Equal(t, "rfp-uploads", cfg.UploadsBucket)
	assert.Equal(t, "documents", cfg.FirestoreCollection)
	assert.Equal(t, int64(1024), cfg.MaxSourceBytes)
	assert.Equal(t, 8, cfg.SheetWorkers)
	assert.True(t, cfg.Workflow.Enabled())
	assert.Equal(t, "us-central1", cfg.Workflow.Location)
	assert.Equal(t, "http://pushgateway:9091", cfg.Telemetry.MetricsPushURL)
	assert.False(t, cfg.Telemetry.TracingEnabled)
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PROJECT_ID", "UPLOADS_BUCKET", "MAX_SOURCE_BYTES", "SHEET_WORKERS", "WORKFLOW_ID", "LOG_LEVEL", "SERVICE_NAME", "METRICS_PUSH_URL", "TRACING_ENABLED"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, int64(50<<20), cfg.MaxSourceBytes)
	assert.Equal(t, 4, cfg.SheetWorkers)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.Workflow.Enabled())
	assert.Equal(t, "document-ingestor", cfg.Telemetry.ServiceName)
	assert.Empty(t, cfg.Telemetry.MetricsPushURL)
	assert.True(t, cfg.Telemetry.TracingEnabled)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     AppConfig
		wantErr []string
	}{
		{
			name: "valid",
			cfg:  AppConfig{ProjectID: "p", UploadsBucket: "b", SheetWorkers: 1},
		},
		{
			name:    "missing everything",
			cfg:     AppConfig{},
			wantErr: []string{"PROJECT_ID is required", "UPLOADS_BUCKET is required", "SHEET_WORKERS must be at least 1"},
		},
		{
			name:    "missing bucket",
			cfg:     AppConfig{ProjectID: "p", SheetWorkers: 2},
			wantErr: []string{"UPLOADS_BUCKET is required"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if len(tt.wantErr) == 0 {
				assert.NoError(t, err)
				return
			}
			for _, msg := range tt.wantErr {
				assert.ErrorContains(t, err, msg)
			}
		})
	}
}

func TestSlogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		cfg := AppConfig{LogLevel: in}
		assert.Equal(t, want, cfg.SlogLevel(), in)
	}
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_INT_VAR"

	t.Setenv(key, "123")
	assert.Equal(t, 123, getEnvInt(key, 0))

	t.Setenv(key, "invalid")
	assert.Equal(t, 10, getEnvInt(key, 10))

	t.Setenv(key, "")
	assert.Equal(t, 10, getEnvInt(key, 10))
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	t.Setenv(key, "true")
	assert.True(t, getEnvBool(key, false))

	t.Setenv(key, "0")
	assert.False(t, getEnvBool(key, true))

	t.Setenv(key, "maybe")
	assert.True(t, getEnvBool(key, true))
}

func TestGetEnvInt64(t *testing.T) {
	key := "TEST_INT64_VAR"

	t.Setenv(key, "8589934592")
	assert.Equal(t, int64(8589934592), getEnvInt64(key, 0))

	t.Setenv(key, "-")
	assert.Equal(t, int64(7), getEnvInt64(key, 7))
}
