package prompts

import (
	"bytes"
	"text/template"

	"uav-agent/internal/application/port/output"
)

type ToolInfo struct {
	Name        string
	Description string
}

type PlannerPromptData struct {
	Tools []ToolInfo
	Input string
}

// GeneratePlannerPrompt fills the planner template with the registry's
// tool documentation and the operator command.
func GeneratePlannerPrompt(baseTemplate string, tools output.ToolRegistry, input string) (string, error) {
	defs := tools.Definitions()
	toolInfos := make([]ToolInfo, 0, len(defs))
	for _, def := range defs {
		toolInfos = append(toolInfos, ToolInfo{
			Name:        def.Name.String(),
			Description: def.Description,
		})
	}

	data := PlannerPromptData{
		Tools: toolInfos,
		Input: input,
	}

	return execute("planner", baseTemplate, data)
}

type AgentInfo struct {
	Name        string
	Description string
}

type CoordinatorPromptData struct {
	Agents []AgentInfo
}

// GenerateCoordinatorPrompt lists the registered specialized agents in
// the coordinator template.
func GenerateCoordinatorPrompt(baseTemplate string, agentRegistry output.SimpleAgentRegistry) (string, error) {
	agents := agentRegistry.List()
	agentInfos := make([]AgentInfo, 0, len(agents))
	for _, agent := range agents {
		agentInfos = append(agentInfos, AgentInfo{
			Name:        string(agent.GetType()),
			Description: agent.GetDescription(),
		})
	}

	return execute("coordinator", baseTemplate, CoordinatorPromptData{Agents: agentInfos})
}

func execute(name, baseTemplate string, data interface{}) (string, error) {
	tmpl, err := template.New(name).Parse(baseTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}
