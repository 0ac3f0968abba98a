package coordinator

import (
	"context"
	"strings"

	"uav-agent/internal/application/port/input"
	"uav-agent/internal/application/port/output"
	"uav-agent/internal/domain/entity"
)

var _ input.TaskExecutor = (*UseCase)(nil)

// UseCase decomposes an operator command into sub-tasks and delegates
// them to the specialized agents, then aggregates their reports.
type UseCase struct {
	agents       output.SimpleAgentRegistry
	logger       output.LoggerPort
	systemPrompt string
}

func New(agents output.SimpleAgentRegistry, logger output.LoggerPort, systemPrompt string) *UseCase {
	return &UseCase{
		agents:       agents,
		logger:       logger,
		systemPrompt: systemPrompt,
	}
}

func (uc *UseCase) Execute(ctx context.Context, command string) (*input.ExecuteResult, error) {
	state := entity.NewMultiAgentState()
	if uc.systemPrompt != "" {
		state.Messages = append(state.Messages, entity.Message{Role: entity.RoleSystem, Content: uc.systemPrompt})
	}
	state.Messages = append(state.Messages, entity.Message{Role: entity.RoleUser, Content: command})

	state.CurrentPhase = "planning"
	state.TaskQueue = uc.decomposeTask(command)
	uc.logger.Info("Task decomposed", "subTasks", len(state.TaskQueue))

	state.CurrentPhase = "executing"
	uc.runTasks(ctx, state)

	state.CurrentPhase = "aggregating"
	state.FinalAnswer = aggregateResults(state)
	state.CurrentPhase = "done"

	return &input.ExecuteResult{
		Success:           true,
		Output:            state.FinalAnswer,
		IntermediateSteps: collectSteps(state),
	}, nil
}

// decomposeTask routes the command to agents by keyword. A command
// can fan out to several agents; anything unrecognized goes to the
// navigator.
func (uc *UseCase) decomposeTask(command string) []entity.SubTask {
	lower := strings.ToLower(command)
	var tasks []entity.SubTask

	if containsAny(lower, "move", "go to", "take off", "land", "navigate") {
		tasks = append(tasks, entity.SubTask{
			Agent:    entity.AgentTypeNavigator,
			Command:  command,
			Priority: "high",
		})
	}

	if containsAny(lower, "photo", "picture", "survey", "target", "reconnaissance") {
		tasks = append(tasks, entity.SubTask{
			Agent:    entity.AgentTypeRecon,
			Command:  command,
			Priority: "medium",
		})
	}

	if containsAny(lower, "safety", "battery", "weather", "check") {
		tasks = append(tasks, entity.SubTask{
			Agent:    entity.AgentTypeSafety,
			Command:  "Check safety status for: " + command,
			Priority: "high",
		})
	}

	if len(tasks) == 0 {
		tasks = append(tasks, entity.SubTask{
			Agent:    entity.AgentTypeNavigator,
			Command:  command,
			Priority: "normal",
		})
	}

	return tasks
}

func (uc *UseCase) runTasks(ctx context.Context, state *entity.MultiAgentState) {
	for _, task := range state.TaskQueue {
		agent, ok := uc.agents.Get(task.Agent)
		if !ok {
			uc.logger.Warn("Unknown agent in task queue", "agent", task.Agent)
			continue
		}

		state.ActiveAgents = append(state.ActiveAgents, string(task.Agent))
		state.AgentRoles[string(task.Agent)] = agent.GetDescription()

		uc.logger.Info("Delegating sub-task", "agent", task.Agent, "command", task.Command)
		out, err := agent.Execute(ctx, task.Command)

		result := entity.AgentResult{
			Agent:   task.Agent,
			Success: err == nil,
			Output:  out,
		}
		if err != nil {
			result.Output = "Error: " + err.Error()
			uc.logger.Error("Sub-task failed", "agent", task.Agent, "error", err)
		}

		state.AgentResults[string(task.Agent)] = result
		state.CompletedTasks = append(state.CompletedTasks, task)
	}
}

func aggregateResults(state *entity.MultiAgentState) string {
	if len(state.CompletedTasks) == 0 {
		return "No results to aggregate."
	}

	var outputs []string
	for _, task := range state.CompletedTasks {
		result, ok := state.AgentResults[string(task.Agent)]
		if !ok || !result.Success {
			continue
		}
		outputs = append(outputs, "["+string(result.Agent)+"]: "+result.Output)
	}

	if len(outputs) == 0 {
		return "All tasks failed."
	}
	return strings.Join(outputs, "\n") + "\n\n[TASK DONE]"
}

func collectSteps(state *entity.MultiAgentState) []entity.IntermediateStep {
	steps := make([]entity.IntermediateStep, 0, len(state.CompletedTasks))
	for _, task := range state.CompletedTasks {
		result, ok := state.AgentResults[string(task.Agent)]
		if !ok {
			continue
		}
		steps = append(steps, entity.IntermediateStep{
			Tool:        "agent_" + string(task.Agent),
			Arguments:   task.Command,
			Observation: result.Output,
		})
	}
	return steps
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
