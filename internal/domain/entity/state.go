package entity

import "encoding/json"

// IntermediateStep is one reasoning/action record collected while an
// agent works through a command.
type IntermediateStep struct {
	Tool        string `json:"tool"`
	Arguments   string `json:"arguments"`
	Observation string `json:"observation"`
	DurationMS  int64  `json:"duration_ms"`
}

// AgentState is the per-invocation state bag threaded through the
// single-agent loop. It is transient: a fresh one is built for every
// Execute call and discarded afterwards.
type AgentState struct {
	Messages []Message

	SessionInfo  json.RawMessage
	TaskProgress json.RawMessage
	DronesStatus json.RawMessage

	IntermediateSteps []IntermediateStep
	CurrentStep       int
	MaxIterations     int

	FinalAnswer string
	Err         string
}

// MultiAgentState is the coordination variant: which agents ran, what
// each produced, and where the pipeline currently is.
type MultiAgentState struct {
	Messages []Message

	ActiveAgents   []string
	AgentRoles     map[string]string
	TaskQueue      []SubTask
	CompletedTasks []SubTask
	AgentResults   map[string]AgentResult

	SharedContext map[string]interface{}
	CurrentPhase  string

	FinalPlan   *Plan
	FinalAnswer string
	Err         string
}

func NewMultiAgentState() *MultiAgentState {
	return &MultiAgentState{
		AgentRoles:    make(map[string]string),
		AgentResults:  make(map[string]AgentResult),
		SharedContext: make(map[string]interface{}),
		CurrentPhase:  "idle",
	}
}
