package service

import (
	"uav-agent/internal/application/port/output"
	"uav-agent/internal/domain/entity"
)

var _ output.ToolRegistry = (*ToolRegistryImpl)(nil)

type ToolRegistryImpl struct {
	tools map[entity.ToolName]output.ToolPort
	order []entity.ToolName
}

func NewToolRegistry() *ToolRegistryImpl {
	return &ToolRegistryImpl{
		tools: make(map[entity.ToolName]output.ToolPort),
	}
}

func (r *ToolRegistryImpl) Register(tool output.ToolPort) {
	if _, exists := r.tools[tool.Name()]; !exists {
		r.order = append(r.order, tool.Name())
	}
	r.tools[tool.Name()] = tool
}

func (r *ToolRegistryImpl) Get(name entity.ToolName) (output.ToolPort, bool) {
	tool, ok := r.tools[name]
	return tool, ok
}

func (r *ToolRegistryImpl) All() []output.ToolPort {
	result := make([]output.ToolPort, 0, len(r.tools))
	for _, name := range r.order {
		result = append(result, r.tools[name])
	}
	return result
}

// Definitions returns tool definitions in registration order so
// generated prompts stay stable between runs.
func (r *ToolRegistryImpl) Definitions() []entity.ToolDefinition {
	result := make([]entity.ToolDefinition, 0, len(r.tools))
	for _, name := range r.order {
		tool := r.tools[name]
		result = append(result, entity.ToolDefinition{
			Name:        tool.Name(),
			Description: tool.Description(),
			Parameters:  tool.Parameters(),
		})
	}
	return result
}

var _ output.SimpleAgentRegistry = (*SimpleAgentRegistryImpl)(nil)

type SimpleAgentRegistryImpl struct {
	agents map[entity.AgentType]output.SimpleAgent
	order  []entity.AgentType
}

func NewSimpleAgentRegistry() *SimpleAgentRegistryImpl {
	return &SimpleAgentRegistryImpl{
		agents: make(map[entity.AgentType]output.SimpleAgent),
	}
}

func (r *SimpleAgentRegistryImpl) Register(agent output.SimpleAgent) {
	if _, exists := r.agents[agent.GetType()]; !exists {
		r.order = append(r.order, agent.GetType())
	}
	r.agents[agent.GetType()] = agent
}

func (r *SimpleAgentRegistryImpl) Get(agentType entity.AgentType) (output.SimpleAgent, bool) {
	agent, ok := r.agents[agentType]
	return agent, ok
}

func (r *SimpleAgentRegistryImpl) List() []output.SimpleAgent {
	result := make([]output.SimpleAgent, 0, len(r.agents))
	for _, agentType := range r.order {
		result = append(result, r.agents[agentType])
	}
	return result
}
