package di

import (
	"fmt"

	"uav-agent/internal/adapter/compat"
	"uav-agent/internal/adapter/tool"
	"uav-agent/internal/application/port/input"
	"uav-agent/internal/application/port/output"
	"uav-agent/internal/application/service"
	"uav-agent/internal/infrastructure/config"
	"uav-agent/internal/infrastructure/llm/ollamalocal"
	"uav-agent/internal/infrastructure/llm/openaicompat"
	"uav-agent/internal/infrastructure/logger"
	"uav-agent/internal/infrastructure/prompts"
	"uav-agent/internal/infrastructure/uav"
	"uav-agent/internal/infrastructure/userinteraction"
	"uav-agent/internal/usecase/agents/navigator"
	"uav-agent/internal/usecase/agents/recon"
	"uav-agent/internal/usecase/agents/safety"
	"uav-agent/internal/usecase/coordinator"
	"uav-agent/internal/usecase/executor"
	"uav-agent/internal/usecase/planner"
)

type Container struct {
	Settings *config.Config
	Logger   output.LoggerPort
	UAV      output.UAVPort
	LLM      output.LLMPort
	UI       output.UserInteractionPort
	Tools    output.ToolRegistry
	Agents   output.SimpleAgentRegistry

	SingleExecutor input.TaskExecutor
	MultiExecutor  input.TaskExecutor

	Planner   *planner.Planner
	Validator *planner.Validator
	Runner    *planner.Runner

	SingleAgent *compat.ControlAgent
	MultiAgent  *compat.ControlAgent
}

type Config struct {
	TaskName     string
	SystemPrompt string
	Settings     *config.Config
}

func NewContainer(cfg Config) (*Container, error) {
	settings := cfg.Settings
	if settings == nil {
		loaded, err := config.Load()
		if err != nil {
			return nil, fmt.Errorf("failed to load settings: %w", err)
		}
		settings = loaded
	}

	log, err := logger.NewLoggerAdapter(cfg.TaskName)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	uavCfg := uav.DefaultConfig(settings.UAV.BaseURL)
	uavCfg.APIKey = settings.UAV.APIKey
	uavCfg.Logger = log
	client := uav.NewClient(uavCfg)

	llm, err := newLLM(settings, log)
	if err != nil {
		log.Close()
		return nil, err
	}

	ui := userinteraction.NewConsoleUserInteraction()

	tools := service.NewToolRegistry()
	registerUAVTools(tools, client, log)

	systemPrompt := cfg.SystemPrompt
	if systemPrompt == "" {
		systemPrompt = prompts.DefaultSystemPrompt
	}

	agents := service.NewSimpleAgentRegistry()
	agents.Register(navigator.New(llm, tools, log, ui, prompts.NavigatorPrompt))
	agents.Register(recon.New(llm, tools, log, ui, prompts.ReconPrompt))
	agents.Register(safety.New(llm, tools, log, ui, prompts.SafetyPrompt))

	coordinatorPrompt, err := prompts.GenerateCoordinatorPrompt(prompts.CoordinatorPrompt, agents)
	if err != nil {
		log.Close()
		return nil, fmt.Errorf("failed to render coordinator prompt: %w", err)
	}

	// The planner sees the delegation tools on top of the raw UAV
	// tools, so a plan step can hand a whole sub-task to an agent.
	plannerTools := service.NewToolRegistry()
	for _, t := range tools.All() {
		plannerTools.Register(t)
	}
	for _, agent := range agents.List() {
		plannerTools.Register(tool.NewAgentTool(agent, log))
	}

	singleUC := executor.New(llm, tools, client, ui, log, systemPrompt,
		settings.Agent.MaxIterations, settings.Agent.Temperature)
	multiUC := coordinator.New(agents, log, coordinatorPrompt)

	return &Container{
		Settings:       settings,
		Logger:         log,
		UAV:            client,
		LLM:            llm,
		UI:             ui,
		Tools:          plannerTools,
		Agents:         agents,
		SingleExecutor: singleUC,
		MultiExecutor:  multiUC,
		Planner:        planner.NewPlanner(llm, plannerTools, log, prompts.PlannerPrompt),
		Validator:      planner.NewValidator(client, plannerTools, log),
		Runner:         planner.NewRunner(plannerTools, log),
		SingleAgent:    compat.NewControlAgent(singleUC, client, log),
		MultiAgent:     compat.NewControlAgent(multiUC, client, log),
	}, nil
}

func (c *Container) Close() {
	if c.Logger != nil {
		c.Logger.Close()
	}
}

func newLLM(settings *config.Config, log output.LoggerPort) (output.LLMPort, error) {
	provider, err := settings.Provider()
	if err != nil {
		return nil, err
	}

	switch provider.Type {
	case "ollama":
		return ollamalocal.NewAdapter(ollamalocal.Config{
			Model:     provider.DefaultModel,
			ServerURL: provider.BaseURL,
			Logger:    log,
		})
	case "openai", "openai-compatible":
		llmCfg := openaicompat.DefaultConfig(provider.APIKey, provider.DefaultModel)
		if provider.BaseURL != "" {
			llmCfg.BaseURL = provider.BaseURL
		}
		llmCfg.Logger = log
		return openaicompat.NewAdapter(llmCfg), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider type %q", provider.Type)
	}
}

func registerUAVTools(registry *service.ToolRegistryImpl, client output.UAVPort, log output.LoggerPort) {
	registry.Register(tool.NewListDronesTool(client, log))
	registry.Register(tool.NewDroneStatusTool(client, log))
	registry.Register(tool.NewNearbyEntitiesTool(client, log))
	registry.Register(tool.NewSessionInfoTool(client, log))
	registry.Register(tool.NewTaskProgressTool(client, log))
	registry.Register(tool.NewWeatherTool(client, log))
	registry.Register(tool.NewTargetsTool(client, log))
	registry.Register(tool.NewObstaclesTool(client, log))
	registry.Register(tool.NewTakeOffTool(client, log))
	registry.Register(tool.NewLandTool(client, log))
	registry.Register(tool.NewMoveToTool(client, log))
	registry.Register(tool.NewMoveTowardsTool(client, log))
	registry.Register(tool.NewChangeAltitudeTool(client, log))
	registry.Register(tool.NewHoverTool(client, log))
	registry.Register(tool.NewRotateTool(client, log))
	registry.Register(tool.NewReturnHomeTool(client, log))
	registry.Register(tool.NewSetHomeTool(client, log))
	registry.Register(tool.NewCalibrateTool(client, log))
	registry.Register(tool.NewChargeTool(client, log))
	registry.Register(tool.NewTakePhotoTool(client, log))
	registry.Register(tool.NewSendMessageTool(client, log))
	registry.Register(tool.NewBroadcastTool(client, log))
	registry.Register(tool.NewCheckPointCollisionTool(client, log))
	registry.Register(tool.NewCheckPathCollisionTool(client, log))
}
