package prompts

import (
	_ "embed"
)

//go:embed system.txt
var DefaultSystemPrompt string

//go:embed planner.txt
var PlannerPrompt string

//go:embed navigator.txt
var NavigatorPrompt string

//go:embed recon.txt
var ReconPrompt string

//go:embed safety.txt
var SafetyPrompt string

//go:embed coordinator.txt
var CoordinatorPrompt string
