package executor

import (
	"context"
	"fmt"
	"time"

	"uav-agent/internal/application/port/input"
	"uav-agent/internal/application/port/output"
	"uav-agent/internal/domain/entity"
)

var _ input.TaskExecutor = (*UseCase)(nil)

const (
	defaultMaxIterations = 50
	maxObservationLen    = 20000
)

type UseCase struct {
	llm           output.LLMPort
	tools         output.ToolRegistry
	uav           output.UAVPort
	ui            output.UserInteractionPort
	logger        output.LoggerPort
	systemPrompt  string
	maxIterations int
	temperature   float32
}

func New(
	llm output.LLMPort,
	tools output.ToolRegistry,
	uav output.UAVPort,
	ui output.UserInteractionPort,
	logger output.LoggerPort,
	systemPrompt string,
	maxIterations int,
	temperature float32,
) *UseCase {
	if maxIterations <= 0 {
		maxIterations = defaultMaxIterations
	}
	return &UseCase{
		llm:           llm,
		tools:         tools,
		uav:           uav,
		ui:            ui,
		logger:        logger,
		systemPrompt:  systemPrompt,
		maxIterations: maxIterations,
		temperature:   temperature,
	}
}

func (uc *UseCase) Execute(ctx context.Context, command string) (*input.ExecuteResult, error) {
	state := &entity.AgentState{MaxIterations: uc.maxIterations}
	uc.refreshSessionContext(ctx, state)

	state.Messages = []entity.Message{
		{Role: entity.RoleSystem, Content: uc.systemPrompt + uc.sessionPreamble(state)},
		{Role: entity.RoleUser, Content: command},
	}

	toolDefs := uc.tools.Definitions()

	for iteration := 1; iteration <= uc.maxIterations; iteration++ {
		state.CurrentStep = iteration
		uc.logger.Debug("Starting iteration", "iteration", iteration)
		if uc.ui != nil {
			uc.ui.ShowIteration(ctx, iteration, uc.maxIterations)
		}

		resp, err := uc.llm.Chat(ctx, output.ChatRequest{
			Messages:    state.Messages,
			Tools:       toolDefs,
			Temperature: uc.temperature,
		})
		if err != nil {
			state.Err = err.Error()
			return nil, fmt.Errorf("llm request failed: %w", err)
		}

		state.Messages = append(state.Messages, resp.Message)

		if len(resp.Message.ToolCalls) == 0 {
			state.FinalAnswer = resp.Message.Content
			if uc.ui != nil {
				uc.ui.ShowThinking(ctx, resp.Message.Content)
			}
			return &input.ExecuteResult{
				Success:           true,
				Output:            resp.Message.Content,
				IntermediateSteps: state.IntermediateSteps,
				Iterations:        iteration,
			}, nil
		}

		for _, tc := range resp.Message.ToolCalls {
			observation := uc.executeTool(ctx, state, tc)

			state.Messages = append(state.Messages, entity.Message{
				Role:       entity.RoleTool,
				ToolCallID: tc.ID,
				Name:       tc.Name,
				Content:    observation,
			})
		}
	}

	state.Err = "max iterations exceeded"
	return nil, fmt.Errorf("max iterations (%d) exceeded", uc.maxIterations)
}

func (uc *UseCase) executeTool(ctx context.Context, state *entity.AgentState, tc entity.ToolCall) string {
	tool, ok := uc.tools.Get(entity.ToolName(tc.Name))
	if !ok {
		uc.logger.Warn("Unknown tool called", "name", tc.Name)
		return fmt.Sprintf("Error: unknown tool '%s'", tc.Name)
	}

	uc.logger.Info("Executing tool", "name", tc.Name, "args", tc.Arguments)
	if uc.ui != nil {
		uc.ui.ShowToolStart(ctx, tc.Name, tc.Arguments)
	}

	start := time.Now()
	result, err := tool.Execute(ctx, tc.Arguments)
	elapsed := time.Since(start).Milliseconds()

	if err != nil {
		uc.logger.Error("Tool execution failed", "name", tc.Name, "error", err)
		observation := "Error: " + err.Error()
		if uc.ui != nil {
			uc.ui.ShowToolResult(ctx, tc.Name, observation, true)
		}
		state.IntermediateSteps = append(state.IntermediateSteps, entity.IntermediateStep{
			Tool:        tc.Name,
			Arguments:   tc.Arguments,
			Observation: observation,
			DurationMS:  elapsed,
		})
		return observation
	}

	if len(result) > maxObservationLen {
		result = result[:maxObservationLen] + "\n... (truncated)"
	}

	uc.logger.Debug("Tool completed", "name", tc.Name, "resultLen", len(result), "durationMs", elapsed)
	if uc.ui != nil {
		uc.ui.ShowToolResult(ctx, tc.Name, result, false)
	}

	state.IntermediateSteps = append(state.IntermediateSteps, entity.IntermediateStep{
		Tool:        tc.Name,
		Arguments:   tc.Arguments,
		Observation: result,
		DurationMS:  elapsed,
	})
	return result
}

// refreshSessionContext pulls the current session and drone roster so the
// model starts with the mission already in view. Failures are logged and
// skipped; the agent can still call the query tools itself.
func (uc *UseCase) refreshSessionContext(ctx context.Context, state *entity.AgentState) {
	if uc.uav == nil {
		return
	}

	session, err := uc.uav.CurrentSession(ctx)
	if err != nil {
		uc.logger.Warn("Could not refresh session context", "error", err)
	} else {
		state.SessionInfo = session
	}

	drones, err := uc.uav.ListDrones(ctx)
	if err != nil {
		uc.logger.Warn("Could not list drones", "error", err)
	} else {
		state.DronesStatus = drones
	}
}

func (uc *UseCase) sessionPreamble(state *entity.AgentState) string {
	if state.SessionInfo == nil && state.DronesStatus == nil {
		return ""
	}

	preamble := "\n\n## Current Session Context\n"
	if state.SessionInfo != nil {
		preamble += "Session:\n" + string(state.SessionInfo) + "\n"
	}
	if state.DronesStatus != nil {
		preamble += "Drones:\n" + string(state.DronesStatus) + "\n"
	}
	return preamble
}
