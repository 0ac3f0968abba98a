package compat

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"uav-agent/internal/application/port/input"
	"uav-agent/internal/application/port/output"
	"uav-agent/internal/domain/entity"
)

// Result is the stable shape older callers depend on. The same three
// fields come back whether the single-agent or multi-agent path ran.
type Result struct {
	Success           bool                      `json:"success"`
	Output            string                    `json:"output"`
	IntermediateSteps []entity.IntermediateStep `json:"intermediate_steps"`
}

// ControlAgent wraps a task executor behind the original command-level
// facade: Execute never returns an error, failures fold into the
// result.
type ControlAgent struct {
	client output.UAVPort
	runner input.TaskExecutor
	logger output.LoggerPort

	sessionContext map[string]interface{}
}

func NewControlAgent(runner input.TaskExecutor, client output.UAVPort, logger output.LoggerPort) *ControlAgent {
	return &ControlAgent{
		client:         client,
		runner:         runner,
		logger:         logger,
		sessionContext: make(map[string]interface{}),
	}
}

func (a *ControlAgent) Execute(ctx context.Context, command string) Result {
	result, err := a.runner.Execute(ctx, command)
	if err != nil {
		a.logger.Error("Command execution failed", "command", command, "error", err)
		return Result{
			Success:           false,
			Output:            fmt.Sprintf("Error executing command: %v", err),
			IntermediateSteps: []entity.IntermediateStep{},
		}
	}

	steps := result.IntermediateSteps
	if steps == nil {
		steps = []entity.IntermediateStep{}
	}

	return Result{
		Success:           result.Success,
		Output:            result.Output,
		IntermediateSteps: steps,
	}
}

// RefreshSessionContext re-reads the session descriptor. Failures are
// logged and the previous context kept.
func (a *ControlAgent) RefreshSessionContext(ctx context.Context) {
	raw, err := a.client.CurrentSession(ctx)
	if err != nil {
		a.logger.Warn("Could not refresh session context", "error", err)
		return
	}

	var session map[string]interface{}
	if err := json.Unmarshal(raw, &session); err != nil {
		a.logger.Warn("Malformed session payload", "error", err)
		return
	}

	a.sessionContext = map[string]interface{}{
		"session_id":       session["id"],
		"task_type":        session["task"],
		"task_description": session["task_description"],
		"status":           session["status"],
	}
}

// SessionSummary renders the session, progress and drone roster as a
// human-readable block for the interactive prompt and the status
// command.
func (a *ControlAgent) SessionSummary(ctx context.Context) string {
	session, err := a.fetchObject(ctx, a.client.CurrentSession)
	if err != nil {
		return fmt.Sprintf("Error getting session summary: %v", err)
	}
	progress, err := a.fetchObject(ctx, func(ctx context.Context) (json.RawMessage, error) {
		return a.client.TaskProgress(ctx, "current")
	})
	if err != nil {
		return fmt.Sprintf("Error getting session summary: %v", err)
	}

	rawDrones, err := a.client.ListDrones(ctx)
	if err != nil {
		return fmt.Sprintf("Error getting session summary: %v", err)
	}
	var drones []map[string]interface{}
	if err := json.Unmarshal(rawDrones, &drones); err != nil {
		return fmt.Sprintf("Error getting session summary: %v", err)
	}

	var b strings.Builder
	b.WriteString("=== Current Session Summary ===\n")
	fmt.Fprintf(&b, "Session: %v\n", orUnknown(session["name"]))
	fmt.Fprintf(&b, "Task: %v - %v\n", orUnknown(session["task"]), stringOr(session["task_description"], ""))
	fmt.Fprintf(&b, "Status: %v\n\n", orUnknown(session["status"]))
	fmt.Fprintf(&b, "Progress: %v%% (%v)\n", numberOr(progress["progress_percentage"], 0),
		orUnknown(progress["status_message"]))
	fmt.Fprintf(&b, "Completed: %v\n\n", boolOr(progress["is_completed"]))
	fmt.Fprintf(&b, "Drones: %d available\n", len(drones))
	for _, drone := range drones {
		fmt.Fprintf(&b, "  - %v (%v): %v, Battery: %.1f%%\n",
			drone["name"], drone["id"], drone["status"], numberOr(drone["battery_level"], 0))
	}

	return strings.TrimRight(b.String(), "\n")
}

func (a *ControlAgent) fetchObject(ctx context.Context, fetch func(context.Context) (json.RawMessage, error)) (map[string]interface{}, error) {
	raw, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	var obj map[string]interface{}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, err
	}
	return obj, nil
}

func orUnknown(v interface{}) interface{} {
	if v == nil {
		return "Unknown"
	}
	return v
}

func stringOr(v interface{}, fallback string) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fallback
}

func numberOr(v interface{}, fallback float64) float64 {
	if f, ok := v.(float64); ok {
		return f
	}
	return fallback
}

func boolOr(v interface{}) bool {
	b, _ := v.(bool)
	return b
}
