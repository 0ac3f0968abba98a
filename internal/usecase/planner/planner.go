package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"uav-agent/internal/application/port/output"
	"uav-agent/internal/domain/entity"
	"uav-agent/internal/infrastructure/prompts"
)

// Planner asks the model for a structured execution plan. It never
// executes tools itself; the validation and execution passes do that.
type Planner struct {
	llm            output.LLMPort
	tools          output.ToolRegistry
	logger         output.LoggerPort
	promptTemplate string
}

func NewPlanner(
	llm output.LLMPort,
	tools output.ToolRegistry,
	logger output.LoggerPort,
	promptTemplate string,
) *Planner {
	return &Planner{
		llm:            llm,
		tools:          tools,
		logger:         logger,
		promptTemplate: promptTemplate,
	}
}

type planPayload struct {
	UserIntent string            `json:"user_intent"`
	Rationale  string            `json:"rationale"`
	Steps      []entity.PlanStep `json:"steps"`
}

// Plan generates a draft plan for the operator command. A model or
// parse failure produces an empty plan with status failed rather than
// an error; callers inspect the status.
func (p *Planner) Plan(ctx context.Context, userInput string) entity.Plan {
	plan := entity.NewPlan(userInput)

	prompt, err := prompts.GeneratePlannerPrompt(p.promptTemplate, p.tools, userInput)
	if err != nil {
		p.logger.Error("Planner prompt generation failed", "error", err)
		return p.failed(plan, err)
	}

	resp, err := p.llm.Chat(ctx, output.ChatRequest{
		Messages: []entity.Message{
			{Role: entity.RoleUser, Content: prompt},
		},
		Temperature: 0.0,
	})
	if err != nil {
		p.logger.Error("Planner LLM request failed", "error", err)
		return p.failed(plan, err)
	}

	payload, err := extractJSON(resp.Message.Content)
	if err != nil {
		p.logger.Error("Planner output not parseable", "error", err)
		return p.failed(plan, err)
	}

	plan.Rationale = payload.Rationale
	plan.Steps = payload.Steps
	for i := range plan.Steps {
		if plan.Steps[i].Status == "" {
			plan.Steps[i].Status = entity.StepPending
		}
		if plan.Steps[i].Dependencies == nil {
			plan.Steps[i].Dependencies = []string{}
		}
	}

	p.logger.Info("Plan generated", "planId", plan.PlanID, "steps", len(plan.Steps))
	return plan
}

func (p *Planner) failed(plan entity.Plan, err error) entity.Plan {
	plan.Steps = []entity.PlanStep{}
	plan.Rationale = fmt.Sprintf("Failed to generate plan: %v", err)
	plan.Status = entity.PlanFailed
	return plan
}

var (
	fencedBlockRe   = regexp.MustCompile("(?s)```(?:json)?\\s*\\n?(.*?)\\n?```")
	lineCommentRe   = regexp.MustCompile(`//.*`)
	blockCommentRe  = regexp.MustCompile(`(?s)/\*.*?\*/`)
	trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)
)

// extractJSON digs the plan object out of a model response that may
// wrap it in markdown fences, surround it with prose, or contain
// comments and trailing commas.
func extractJSON(text string) (*planPayload, error) {
	jsonStr := text
	if m := fencedBlockRe.FindStringSubmatch(text); m != nil {
		jsonStr = m[1]
	} else if start := strings.Index(text, "{"); start >= 0 {
		if end := strings.LastIndex(text, "}"); end > start {
			jsonStr = text[start : end+1]
		}
	}

	jsonStr = strings.TrimSpace(jsonStr)
	jsonStr = lineCommentRe.ReplaceAllString(jsonStr, "")
	jsonStr = blockCommentRe.ReplaceAllString(jsonStr, "")

	var payload planPayload
	if err := json.Unmarshal([]byte(jsonStr), &payload); err != nil {
		jsonStr = trailingCommaRe.ReplaceAllString(jsonStr, "$1")
		if retryErr := json.Unmarshal([]byte(jsonStr), &payload); retryErr != nil {
			return nil, fmt.Errorf("failed to parse JSON: %v", err)
		}
	}

	return &payload, nil
}
