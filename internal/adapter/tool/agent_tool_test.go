package tool

import (
	"context"
	"testing"

	"uav-agent/internal/application/port/output"
	"uav-agent/internal/domain/entity"
)

type nopLogger struct{}

func (nopLogger) Debug(msg string, args ...any)                    {}
func (nopLogger) Info(msg string, args ...any)                     {}
func (nopLogger) Warn(msg string, args ...any)                     {}
func (nopLogger) Error(msg string, args ...any)                    {}
func (l nopLogger) WithField(key string, value any) output.LoggerPort { return l }
func (l nopLogger) WithFields(fields map[string]any) output.LoggerPort { return l }
func (nopLogger) Close() error                                     { return nil }

type fakeAgent struct {
	lastTask string
	result   string
	err      error
}

func (a *fakeAgent) GetType() entity.AgentType { return entity.AgentTypeNavigator }
func (a *fakeAgent) GetName() entity.ToolName  { return entity.ToolAgentNavigator }
func (a *fakeAgent) GetDescription() string    { return "Handles drone movement tasks" }
func (a *fakeAgent) Execute(ctx context.Context, task string) (string, error) {
	a.lastTask = task
	return a.result, a.err
}

func TestAgentToolDelegatesTask(t *testing.T) {
	agent := &fakeAgent{result: "moved to waypoint"}
	tool := NewAgentTool(agent, nopLogger{})

	out, err := tool.Execute(context.Background(), `{"task":"fly drone-001 to (10, 20, 30)"}`)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if out != "moved to waypoint" {
		t.Errorf("unexpected output: %q", out)
	}
	if agent.lastTask != "fly drone-001 to (10, 20, 30)" {
		t.Errorf("task not forwarded: %q", agent.lastTask)
	}
}

func TestAgentToolRequiresTask(t *testing.T) {
	tool := NewAgentTool(&fakeAgent{}, nopLogger{})

	_, err := tool.Execute(context.Background(), `{}`)
	if err == nil || err.Error() != "task is required" {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestAgentToolExposesAgentIdentity(t *testing.T) {
	tool := NewAgentTool(&fakeAgent{}, nopLogger{})

	if tool.Name() != entity.ToolAgentNavigator {
		t.Errorf("unexpected name: %s", tool.Name())
	}
	if tool.Description() != "Handles drone movement tasks" {
		t.Errorf("unexpected description: %s", tool.Description())
	}
}
