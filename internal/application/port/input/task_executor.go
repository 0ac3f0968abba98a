package input

import (
	"context"

	"uav-agent/internal/domain/entity"
)

// ExecuteResult is the stable result shape shared by the single-agent
// and multi-agent paths. Callers rely on these three fields.
type ExecuteResult struct {
	Success           bool                      `json:"success"`
	Output            string                    `json:"output"`
	IntermediateSteps []entity.IntermediateStep `json:"intermediate_steps"`
	Iterations        int                       `json:"iterations,omitempty"`
}

type TaskExecutor interface {
	Execute(ctx context.Context, command string) (*ExecuteResult, error)
}
