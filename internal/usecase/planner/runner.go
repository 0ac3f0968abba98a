package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"uav-agent/internal/application/port/output"
	"uav-agent/internal/domain/entity"
)

// Runner executes a validated plan step by step. It keeps no state
// between runs; every Execute call starts from a clean slate.
type Runner struct {
	tools  output.ToolRegistry
	logger output.LoggerPort
}

func NewRunner(tools output.ToolRegistry, logger output.LoggerPort) *Runner {
	return &Runner{
		tools:  tools,
		logger: logger,
	}
}

// Execute runs the normalized steps in order, honoring dependencies.
// A step whose dependencies are missing, failed or not yet completed
// is recorded as failed and skipped instead of aborting the run.
func (r *Runner) Execute(ctx context.Context, plan entity.ValidatedPlan) entity.ExecutionReport {
	r.logger.Info("Executing plan", "planId", plan.PlanID, "steps", len(plan.Steps))

	report := entity.ExecutionReport{
		PlanID:    plan.PlanID,
		StartedAt: time.Now(),
	}

	allStepIDs := make(map[string]bool, len(plan.Steps))
	for _, step := range plan.Steps {
		allStepIDs[step.StepID] = true
	}
	completed := make(map[string]bool)
	failed := make(map[string]bool)
	skipped := make(map[string]bool)

	for _, step := range plan.Steps {
		if step.Status == entity.StepSkipped {
			r.logger.Debug("Skipping step", "stepId", step.StepID)
			skipped[step.StepID] = true
			continue
		}

		if reason := unmetDependencies(step, allStepIDs, completed, failed, skipped); reason != "" {
			r.logger.Warn("Step blocked", "stepId", step.StepID, "reason", reason)
			report.Results = append(report.Results, entity.ExecutionResult{
				StepID:    step.StepID,
				Success:   false,
				Error:     reason,
				Timestamp: time.Now(),
			})
			report.Errors = append(report.Errors, entity.StepError{StepID: step.StepID, Error: reason})
			skipped[step.StepID] = true
			continue
		}

		result := r.executeStep(ctx, step)
		report.Results = append(report.Results, result)
		if result.Success {
			completed[step.StepID] = true
		} else {
			failed[step.StepID] = true
			report.Errors = append(report.Errors, entity.StepError{StepID: step.StepID, Error: result.Error})
		}
	}

	report.FinalStatus = finalStatus(report.Results)
	report.Summary = summarize(report.Results)
	report.CompletedAt = time.Now()

	r.logger.Info("Execution complete", "planId", plan.PlanID,
		"status", report.FinalStatus, "summary", report.Summary)

	return report
}

func (r *Runner) executeStep(ctx context.Context, step entity.PlanStep) entity.ExecutionResult {
	r.logger.Info("Executing step", "stepId", step.StepID, "tool", step.ToolName)

	start := time.Now()
	result := entity.ExecutionResult{
		StepID:    step.StepID,
		Timestamp: start,
	}

	tool, ok := r.tools.Get(entity.ToolName(step.ToolName))
	if !ok {
		result.Error = fmt.Sprintf("Tool '%s' not found", step.ToolName)
		result.DurationMS = time.Since(start).Milliseconds()
		return result
	}

	args, err := json.Marshal(step.Args)
	if err != nil {
		result.Error = fmt.Sprintf("could not encode arguments: %v", err)
		result.DurationMS = time.Since(start).Milliseconds()
		return result
	}

	out, err := tool.Execute(ctx, string(args))
	result.DurationMS = time.Since(start).Milliseconds()
	if err != nil {
		result.Error = err.Error()
		return result
	}

	result.Success = true
	result.Output = out
	return result
}

func unmetDependencies(step entity.PlanStep, all, completed, failed, skipped map[string]bool) string {
	if len(step.Dependencies) == 0 {
		return ""
	}

	var missing, blocked, pending []string
	for _, dep := range step.Dependencies {
		switch {
		case !all[dep]:
			missing = append(missing, dep)
		case failed[dep] || skipped[dep]:
			blocked = append(blocked, dep)
		case !completed[dep]:
			pending = append(pending, dep)
		}
	}

	if len(missing) == 0 && len(blocked) == 0 && len(pending) == 0 {
		return ""
	}

	var reasons []string
	if len(missing) > 0 {
		reasons = append(reasons, "missing dependencies: "+strings.Join(missing, ", "))
	}
	if len(blocked) > 0 {
		reasons = append(reasons, "failed/skipped dependencies: "+strings.Join(blocked, ", "))
	}
	if len(pending) > 0 {
		reasons = append(reasons, "unmet dependencies (not completed): "+strings.Join(pending, ", "))
	}
	return "Unmet dependencies: " + strings.Join(reasons, "; ")
}

func finalStatus(results []entity.ExecutionResult) entity.ReportStatus {
	anySuccess := false
	anyFailure := false
	for _, r := range results {
		if r.Success {
			anySuccess = true
		} else {
			anyFailure = true
		}
	}

	switch {
	case !anyFailure:
		return entity.ReportCompleted
	case anySuccess:
		return entity.ReportPartial
	default:
		return entity.ReportFailed
	}
}

func summarize(results []entity.ExecutionResult) string {
	successful := 0
	for _, r := range results {
		if r.Success {
			successful++
		}
	}
	total := len(results)

	switch {
	case successful == total:
		return fmt.Sprintf("Successfully executed all %d steps.", total)
	case successful == 0:
		return fmt.Sprintf("Failed to execute any of the %d steps.", total)
	default:
		return fmt.Sprintf("Completed %d/%d steps successfully.", successful, total)
	}
}
