package entity

import (
	"time"

	"github.com/google/uuid"
)

type StepStatus string

const (
	StepPending   StepStatus = "pending"
	StepValidated StepStatus = "validated"
	StepExecuting StepStatus = "executing"
	StepCompleted StepStatus = "completed"
	StepFailed    StepStatus = "failed"
	StepSkipped   StepStatus = "skipped"
)

type PlanStatus string

const (
	PlanDraft     PlanStatus = "draft"
	PlanValidated PlanStatus = "validated"
	PlanExecuting PlanStatus = "executing"
	PlanCompleted PlanStatus = "completed"
	PlanFailed    PlanStatus = "failed"
)

// PlanStep is one tool invocation inside a plan. Dependencies reference
// other step IDs that must complete before this step may run.
type PlanStep struct {
	StepID         string                 `json:"step_id"`
	ToolName       string                 `json:"tool_name"`
	Args           map[string]interface{} `json:"args"`
	Rationale      string                 `json:"rationale"`
	ExpectedEffect string                 `json:"expected_effect"`
	Dependencies   []string               `json:"dependencies"`
	Status         StepStatus             `json:"status"`
	ErrorMessage   string                 `json:"error_message,omitempty"`
}

// Plan is the ordered list of tool invocations the planner produces
// before anything touches the remote API.
type Plan struct {
	PlanID     string     `json:"plan_id"`
	UserIntent string     `json:"user_intent"`
	Steps      []PlanStep `json:"steps"`
	Rationale  string     `json:"rationale"`
	CreatedAt  time.Time  `json:"created_at"`
	Status     PlanStatus `json:"status"`
}

func NewPlan(userIntent string) Plan {
	return Plan{
		PlanID:     uuid.NewString(),
		UserIntent: userIntent,
		CreatedAt:  time.Now(),
		Status:     PlanDraft,
	}
}

type FixType string

const (
	FixToolNotFound    FixType = "tool_not_found"
	FixResolvedRef     FixType = "resolved_reference"
	FixInvalidRange    FixType = "invalid_range"
	FixInvalidType     FixType = "invalid_type"
	FixUnreasonable    FixType = "physically_unreasonable"
	FixMissingRequired FixType = "missing_required"
)

// ValidationFix records a rewrite applied during the validation pass.
type ValidationFix struct {
	StepID        string      `json:"step_id"`
	FixType       FixType     `json:"fix_type"`
	OriginalValue interface{} `json:"original_value,omitempty"`
	FixedValue    interface{} `json:"fixed_value,omitempty"`
	Reason        string      `json:"reason"`
}

type ValidatedPlan struct {
	PlanID   string          `json:"plan_id"`
	Steps    []PlanStep      `json:"normalized_steps"`
	Fixes    []ValidationFix `json:"fixes"`
	Warnings []string        `json:"validation_warnings"`
	IsValid  bool            `json:"is_valid"`
}

// ExecutionResult is the outcome of a single executed step.
type ExecutionResult struct {
	StepID     string    `json:"step_id"`
	Success    bool      `json:"success"`
	Output     string    `json:"output,omitempty"`
	Error      string    `json:"error,omitempty"`
	DurationMS int64     `json:"duration_ms"`
	Timestamp  time.Time `json:"timestamp"`
}

type StepError struct {
	StepID string `json:"step_id"`
	Error  string `json:"error"`
}

type ReportStatus string

const (
	ReportCompleted ReportStatus = "completed"
	ReportPartial   ReportStatus = "partial"
	ReportFailed    ReportStatus = "failed"
)

type ExecutionReport struct {
	PlanID      string            `json:"plan_id"`
	Results     []ExecutionResult `json:"execution_results"`
	Errors      []StepError       `json:"errors"`
	FinalStatus ReportStatus      `json:"final_status"`
	Summary     string            `json:"summary"`
	StartedAt   time.Time         `json:"started_at"`
	CompletedAt time.Time         `json:"completed_at"`
}

func (r *ExecutionReport) HasErrors() bool {
	if len(r.Errors) > 0 {
		return true
	}
	for _, res := range r.Results {
		if !res.Success {
			return true
		}
	}
	return false
}
