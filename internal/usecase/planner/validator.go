package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"uav-agent/internal/application/port/output"
	"uav-agent/internal/domain/entity"
)

const (
	minAltitude    = 5.0
	maxAltitude    = 500.0
	cappedAltitude = 120.0
	maxCoordinate  = 10000.0
	maxSpeed       = 50.0
	cappedSpeed    = 10.0
	minSpeed       = 5.0
)

// Validator checks a draft plan for executability and rewrites broken
// parameters in place of rejecting the plan outright.
type Validator struct {
	client output.UAVPort
	tools  output.ToolRegistry
	logger output.LoggerPort
}

func NewValidator(client output.UAVPort, tools output.ToolRegistry, logger output.LoggerPort) *Validator {
	return &Validator{
		client: client,
		tools:  tools,
		logger: logger,
	}
}

// ValidateAndFix runs three passes over every step: tool existence,
// parameter validity and physical plausibility. The plan stays valid
// as long as every unknown tool could be replaced by a suggestion.
func (v *Validator) ValidateAndFix(ctx context.Context, plan entity.Plan) entity.ValidatedPlan {
	v.logger.Info("Validating plan", "planId", plan.PlanID, "steps", len(plan.Steps))

	var fixes []entity.ValidationFix
	var warnings []string
	normalized := make([]entity.PlanStep, 0, len(plan.Steps))

	for _, step := range plan.Steps {
		normalizedStep := copyStep(step)

		if _, ok := v.tools.Get(entity.ToolName(step.ToolName)); !ok {
			fix := entity.ValidationFix{
				StepID:        step.StepID,
				FixType:       entity.FixToolNotFound,
				OriginalValue: step.ToolName,
				Reason:        fmt.Sprintf("Tool '%s' not found in available tools", step.ToolName),
			}

			if suggested := v.suggestAlternativeTool(step.ToolName); suggested != "" {
				normalizedStep.ToolName = suggested
				fix.FixedValue = suggested
				fix.Reason += fmt.Sprintf(" -> Suggested alternative: %s", suggested)
				fixes = append(fixes, fix)
				warnings = append(warnings, fmt.Sprintf(
					"Step %s: Tool '%s' not found, using '%s' instead", step.StepID, step.ToolName, suggested))
			} else {
				normalizedStep.Status = entity.StepSkipped
				fixes = append(fixes, fix)
				warnings = append(warnings, fmt.Sprintf(
					"Step %s: Tool '%s' not found, skipping step", step.StepID, step.ToolName))
				normalized = append(normalized, normalizedStep)
				continue
			}
		}

		fixes = append(fixes, v.fixParameters(ctx, &normalizedStep)...)
		fixes = append(fixes, v.fixPhysicalMeaning(&normalizedStep)...)

		normalizedStep.Status = entity.StepValidated
		normalized = append(normalized, normalizedStep)
	}

	isValid := true
	for _, fix := range fixes {
		if fix.FixType == entity.FixToolNotFound && fix.FixedValue == nil {
			isValid = false
			break
		}
	}

	v.logger.Info("Validation complete", "planId", plan.PlanID, "valid", isValid,
		"fixes", len(fixes), "warnings", len(warnings))

	return entity.ValidatedPlan{
		PlanID:   plan.PlanID,
		Steps:    normalized,
		Fixes:    fixes,
		Warnings: warnings,
		IsValid:  isValid,
	}
}

func (v *Validator) fixParameters(ctx context.Context, step *entity.PlanStep) []entity.ValidationFix {
	var fixes []entity.ValidationFix

	if droneID, ok := step.Args["drone_id"].(string); ok && strings.HasPrefix(droneID, "$") {
		if resolved := v.resolveDroneID(ctx); resolved != "" {
			step.Args["drone_id"] = resolved
			fixes = append(fixes, entity.ValidationFix{
				StepID:        step.StepID,
				FixType:       entity.FixResolvedRef,
				OriginalValue: droneID,
				FixedValue:    resolved,
				Reason:        "Resolved drone_id reference",
			})
		}
	}

	if altitude, ok := numericArg(step.Args["altitude"]); ok {
		switch {
		case altitude < 0:
			fixes = append(fixes, entity.ValidationFix{
				StepID:        step.StepID,
				FixType:       entity.FixInvalidRange,
				OriginalValue: altitude,
				FixedValue:    minAltitude,
				Reason:        "Altitude cannot be negative, set to minimum",
			})
			step.Args["altitude"] = minAltitude
		case altitude > maxAltitude:
			fixes = append(fixes, entity.ValidationFix{
				StepID:        step.StepID,
				FixType:       entity.FixInvalidRange,
				OriginalValue: altitude,
				FixedValue:    cappedAltitude,
				Reason:        "Altitude exceeds reasonable maximum, capped",
			})
			step.Args["altitude"] = cappedAltitude
		}
	}

	for _, coordKey := range []string{"x", "y", "z"} {
		raw, present := step.Args[coordKey]
		if !present {
			continue
		}
		str, isStr := raw.(string)
		if !isStr {
			continue
		}
		if parsed, err := strconv.ParseFloat(str, 64); err == nil {
			step.Args[coordKey] = parsed
		} else {
			fixes = append(fixes, entity.ValidationFix{
				StepID:        step.StepID,
				FixType:       entity.FixInvalidType,
				OriginalValue: str,
				FixedValue:    0.0,
				Reason:        fmt.Sprintf("Could not convert %s to number, set to 0", coordKey),
			})
			step.Args[coordKey] = 0.0
		}
	}

	return fixes
}

func (v *Validator) fixPhysicalMeaning(step *entity.PlanStep) []entity.ValidationFix {
	var fixes []entity.ValidationFix

	if step.ToolName == "move_to" || step.ToolName == "move_towards" {
		for _, coord := range []string{"x", "y", "z"} {
			value, ok := numericArg(step.Args[coord])
			if !ok {
				continue
			}
			if value > maxCoordinate || value < -maxCoordinate {
				fixes = append(fixes, entity.ValidationFix{
					StepID:        step.StepID,
					FixType:       entity.FixUnreasonable,
					OriginalValue: value,
					FixedValue:    0.0,
					Reason:        fmt.Sprintf("%s coordinate too large, likely error", strings.ToUpper(coord)),
				})
				step.Args[coord] = 0.0
			}
		}
	}

	if speed, ok := numericArg(step.Args["speed"]); ok {
		switch {
		case speed > maxSpeed:
			fixes = append(fixes, entity.ValidationFix{
				StepID:        step.StepID,
				FixType:       entity.FixUnreasonable,
				OriginalValue: speed,
				FixedValue:    cappedSpeed,
				Reason:        "Speed too high, capped to safe value",
			})
			step.Args["speed"] = cappedSpeed
		case speed <= 0:
			fixes = append(fixes, entity.ValidationFix{
				StepID:        step.StepID,
				FixType:       entity.FixUnreasonable,
				OriginalValue: speed,
				FixedValue:    minSpeed,
				Reason:        "Speed must be positive, set to minimum",
			})
			step.Args["speed"] = minSpeed
		}
	}

	return fixes
}

// resolveDroneID replaces a $placeholder with the first drone the API
// reports. Returns "" when the roster is unavailable or empty.
func (v *Validator) resolveDroneID(ctx context.Context) string {
	raw, err := v.client.ListDrones(ctx)
	if err != nil {
		v.logger.Warn("Could not resolve drone_id reference", "error", err)
		return ""
	}

	var drones []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(raw, &drones); err != nil || len(drones) == 0 {
		return ""
	}

	if drones[0].ID != "" {
		return drones[0].ID
	}
	return drones[0].Name
}

func (v *Validator) suggestAlternativeTool(toolName string) string {
	lower := strings.ToLower(toolName)

	for _, def := range v.tools.Definitions() {
		available := strings.ToLower(def.Name.String())
		if strings.Contains(available, lower) || strings.Contains(lower, available) {
			return def.Name.String()
		}
	}

	prefix := lower
	if len(prefix) > 5 {
		prefix = prefix[:5]
	}
	for _, def := range v.tools.Definitions() {
		if strings.HasPrefix(strings.ToLower(def.Name.String()), prefix) {
			return def.Name.String()
		}
	}

	return ""
}

func copyStep(step entity.PlanStep) entity.PlanStep {
	copied := step
	copied.Args = make(map[string]interface{}, len(step.Args))
	for k, val := range step.Args {
		copied.Args[k] = val
	}
	copied.Dependencies = append([]string(nil), step.Dependencies...)
	return copied
}

func numericArg(raw interface{}) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
