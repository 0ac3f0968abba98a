package prompts

import (
	"context"
	"strings"
	"testing"

	"uav-agent/internal/application/port/output"
	"uav-agent/internal/domain/entity"
)

type mockTool struct {
	name        entity.ToolName
	description string
}

func (m *mockTool) Name() entity.ToolName               { return m.name }
func (m *mockTool) Description() string                 { return m.description }
func (m *mockTool) Parameters() map[string]interface{}  { return map[string]interface{}{} }
func (m *mockTool) Execute(ctx context.Context, args string) (string, error) {
	return "", nil
}

type mockToolRegistry struct {
	tools []output.ToolPort
}

func (r *mockToolRegistry) Register(tool output.ToolPort) {
	r.tools = append(r.tools, tool)
}

func (r *mockToolRegistry) Get(name entity.ToolName) (output.ToolPort, bool) {
	for _, tool := range r.tools {
		if tool.Name() == name {
			return tool, true
		}
	}
	return nil, false
}

func (r *mockToolRegistry) All() []output.ToolPort { return r.tools }

func (r *mockToolRegistry) Definitions() []entity.ToolDefinition {
	defs := make([]entity.ToolDefinition, 0, len(r.tools))
	for _, tool := range r.tools {
		defs = append(defs, entity.ToolDefinition{
			Name:        tool.Name(),
			Description: tool.Description(),
			Parameters:  tool.Parameters(),
		})
	}
	return defs
}

func TestGeneratePlannerPrompt(t *testing.T) {
	registry := &mockToolRegistry{}
	registry.Register(&mockTool{name: entity.ToolListDrones, description: "List all drones"})
	registry.Register(&mockTool{name: entity.ToolTakeOff, description: "Take off to altitude"})

	result, err := GeneratePlannerPrompt(PlannerPrompt, registry, "survey the east field")
	if err != nil {
		t.Fatalf("GeneratePlannerPrompt failed: %v", err)
	}

	if !strings.Contains(result, "**list_drones**: List all drones") {
		t.Error("Result should contain list_drones documentation")
	}

	if !strings.Contains(result, "**take_off**: Take off to altitude") {
		t.Error("Result should contain take_off documentation")
	}

	if !strings.Contains(result, "survey the east field") {
		t.Error("Result should contain the operator command")
	}
}

type mockAgent struct {
	agentType   entity.AgentType
	description string
}

func (m *mockAgent) GetType() entity.AgentType { return m.agentType }
func (m *mockAgent) GetName() entity.ToolName  { return entity.ToolName("agent_" + string(m.agentType)) }
func (m *mockAgent) GetDescription() string    { return m.description }
func (m *mockAgent) Execute(ctx context.Context, task string) (string, error) {
	return "", nil
}

type mockAgentRegistry struct {
	agents []output.SimpleAgent
}

func (r *mockAgentRegistry) Register(agent output.SimpleAgent) {
	r.agents = append(r.agents, agent)
}

func (r *mockAgentRegistry) Get(agentType entity.AgentType) (output.SimpleAgent, bool) {
	for _, agent := range r.agents {
		if agent.GetType() == agentType {
			return agent, true
		}
	}
	return nil, false
}

func (r *mockAgentRegistry) List() []output.SimpleAgent { return r.agents }

func TestGenerateCoordinatorPrompt(t *testing.T) {
	registry := &mockAgentRegistry{}
	registry.Register(&mockAgent{agentType: entity.AgentTypeNavigator, description: "Move drones around"})
	registry.Register(&mockAgent{agentType: entity.AgentTypeSafety, description: "Watch battery and weather"})

	result, err := GenerateCoordinatorPrompt(CoordinatorPrompt, registry)
	if err != nil {
		t.Fatalf("GenerateCoordinatorPrompt failed: %v", err)
	}

	if !strings.Contains(result, "navigator: Move drones around") {
		t.Error("Result should contain navigator description")
	}

	if !strings.Contains(result, "safety: Watch battery and weather") {
		t.Error("Result should contain safety description")
	}
}
