package entity

type AgentType string

const (
	AgentTypeCoordinator AgentType = "coordinator"
	AgentTypeNavigator   AgentType = "navigator"
	AgentTypeRecon       AgentType = "reconnaissance"
	AgentTypeSafety      AgentType = "safety"
)

type SubTask struct {
	Agent    AgentType `json:"agent"`
	Command  string    `json:"command"`
	Priority string    `json:"priority"`
}

type AgentResult struct {
	Agent             AgentType          `json:"agent"`
	Success           bool               `json:"success"`
	Output            string             `json:"output"`
	IntermediateSteps []IntermediateStep `json:"intermediate_steps"`
}
