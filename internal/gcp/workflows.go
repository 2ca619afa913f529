package gcp

import (
	"context"
	"fmt"

	executions "cloud.google.com/go/workflows/executions/apiv1"
)

// NewWorkflowExecutionsClient creates a client for starting workflow executions.
func NewWorkflowExecutionsClient(ctx context.Context) (*executions.Client, error) {
	client, err := executions.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create workflow executions client: %w", err)
	}
	return client, nil
}
