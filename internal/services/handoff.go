package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"cloud.google.com/go/workflows/executions/apiv1/executionspb"
	"github.com/googleapis/gax-go/v2"

	"github.com/Lllllllleong/rfpingest/internal/models"
)

// ExecutionCreator is satisfied by *executions.Client.
type ExecutionCreator interface {
	CreateExecution(ctx context.Context, req *executionspb.CreateExecutionRequest, opts ...gax.CallOption) (*executionspb.Execution, error)
}

// AnswerHandoff starts the answer-generation workflow for documents that
// finished ingestion with at least one question.
type AnswerHandoff struct {
	executions ExecutionCreator
	parent     string
}

func NewAnswerHandoff(executions ExecutionCreator, projectID, location, workflowID string) *AnswerHandoff {
	return &AnswerHandoff{
		executions: executions,
		parent:     fmt.Sprintf("projects/%s/locations/%s/workflows/%s", projectID, location, workflowID),
	}
}

// Notify reports whether a workflow execution was started.
func (h *AnswerHandoff) Notify(ctx context.Context, documentRef string, outcome *models.IngestOutcome) (bool, error) {
	if outcome == nil || outcome.Status != models.StatusReady || outcome.TotalQuestions == 0 {
		return false, nil
	}

	payload, err := json.Marshal(map[string]any{
		"documentId":     documentRef,
		"totalQuestions": outcome.TotalQuestions,
	})
	if err != nil {
		return false, fmt.Errorf("failed to marshal workflow payload: %w", err)
	}

	exec, err := h.executions.CreateExecution(ctx, &executionspb.CreateExecutionRequest{
		Parent:    h.parent,
		Execution: &executionspb.Execution{Argument: string(payload)},
	})
	if err != nil {
		return false, fmt.Errorf("failed to trigger workflow execution: %w", err)
	}
	slog.Info("Answer generation workflow started.", "documentId", documentRef, "execution", exec.GetName())
	return true, nil
}
