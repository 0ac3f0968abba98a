package output

import (
	"context"

	"uav-agent/internal/domain/entity"
)

// SimpleAgent is a specialized agent the coordinator can delegate to.
type SimpleAgent interface {
	GetType() entity.AgentType
	GetName() entity.ToolName
	GetDescription() string
	Execute(ctx context.Context, task string) (string, error)
}

type SimpleAgentRegistry interface {
	Register(agent SimpleAgent)
	Get(agentType entity.AgentType) (SimpleAgent, bool)
	List() []SimpleAgent
}
