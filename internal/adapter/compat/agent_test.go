package compat

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"

	"uav-agent/internal/application/port/input"
	"uav-agent/internal/application/port/output"
	"uav-agent/internal/domain/entity"
)

type nopLogger struct{}

func (nopLogger) Debug(msg string, args ...any)                      {}
func (nopLogger) Info(msg string, args ...any)                       {}
func (nopLogger) Warn(msg string, args ...any)                       {}
func (nopLogger) Error(msg string, args ...any)                      {}
func (l nopLogger) WithField(key string, value any) output.LoggerPort  { return l }
func (l nopLogger) WithFields(fields map[string]any) output.LoggerPort { return l }
func (nopLogger) Close() error                                       { return nil }

type stubExecutor struct {
	result *input.ExecuteResult
	err    error
}

func (e *stubExecutor) Execute(ctx context.Context, command string) (*input.ExecuteResult, error) {
	return e.result, e.err
}

type summaryUAV struct {
	session  json.RawMessage
	progress json.RawMessage
	drones   json.RawMessage
}

func (u *summaryUAV) ListDrones(ctx context.Context) (json.RawMessage, error) {
	return u.drones, nil
}
func (u *summaryUAV) DroneStatus(ctx context.Context, droneID string) (json.RawMessage, error) {
	return nil, nil
}
func (u *summaryUAV) NearbyEntities(ctx context.Context, droneID string) (json.RawMessage, error) {
	return nil, nil
}
func (u *summaryUAV) TakeOff(ctx context.Context, droneID string, altitude float64) (json.RawMessage, error) {
	return nil, nil
}
func (u *summaryUAV) Land(ctx context.Context, droneID string) (json.RawMessage, error) {
	return nil, nil
}
func (u *summaryUAV) MoveTo(ctx context.Context, droneID string, x, y, z float64) (json.RawMessage, error) {
	return nil, nil
}
func (u *summaryUAV) MoveAlongPath(ctx context.Context, droneID string, waypoints []entity.Position) (json.RawMessage, error) {
	return nil, nil
}
func (u *summaryUAV) MoveTowards(ctx context.Context, droneID string, distance float64, heading, dz *float64) (json.RawMessage, error) {
	return nil, nil
}
func (u *summaryUAV) ChangeAltitude(ctx context.Context, droneID string, altitude float64) (json.RawMessage, error) {
	return nil, nil
}
func (u *summaryUAV) Hover(ctx context.Context, droneID string, duration *float64) (json.RawMessage, error) {
	return nil, nil
}
func (u *summaryUAV) Rotate(ctx context.Context, droneID string, heading float64) (json.RawMessage, error) {
	return nil, nil
}
func (u *summaryUAV) ReturnHome(ctx context.Context, droneID string) (json.RawMessage, error) {
	return nil, nil
}
func (u *summaryUAV) SetHome(ctx context.Context, droneID string) (json.RawMessage, error) {
	return nil, nil
}
func (u *summaryUAV) Calibrate(ctx context.Context, droneID string) (json.RawMessage, error) {
	return nil, nil
}
func (u *summaryUAV) Charge(ctx context.Context, droneID string, chargeAmount float64) (json.RawMessage, error) {
	return nil, nil
}
func (u *summaryUAV) TakePhoto(ctx context.Context, droneID string) (json.RawMessage, error) {
	return nil, nil
}
func (u *summaryUAV) SendMessage(ctx context.Context, droneID, targetDroneID, message string) (json.RawMessage, error) {
	return nil, nil
}
func (u *summaryUAV) Broadcast(ctx context.Context, droneID, message string) (json.RawMessage, error) {
	return nil, nil
}
func (u *summaryUAV) CurrentSession(ctx context.Context) (json.RawMessage, error) {
	return u.session, nil
}
func (u *summaryUAV) SessionData(ctx context.Context, sessionID string) (json.RawMessage, error) {
	return nil, nil
}
func (u *summaryUAV) TaskProgress(ctx context.Context, sessionID string) (json.RawMessage, error) {
	return u.progress, nil
}
func (u *summaryUAV) Weather(ctx context.Context) (json.RawMessage, error)   { return nil, nil }
func (u *summaryUAV) Targets(ctx context.Context) (json.RawMessage, error)   { return nil, nil }
func (u *summaryUAV) Waypoints(ctx context.Context) (json.RawMessage, error) { return nil, nil }
func (u *summaryUAV) Obstacles(ctx context.Context) (json.RawMessage, error) { return nil, nil }
func (u *summaryUAV) CheckPointCollision(ctx context.Context, point entity.Position, safetyMargin float64) (json.RawMessage, error) {
	return nil, nil
}
func (u *summaryUAV) CheckPathCollision(ctx context.Context, start, end entity.Position, safetyMargin float64) (json.RawMessage, error) {
	return nil, nil
}

func TestExecuteFoldsErrorsIntoResult(t *testing.T) {
	agent := NewControlAgent(&stubExecutor{err: errors.New("llm request failed: timeout")},
		&summaryUAV{}, nopLogger{})

	result := agent.Execute(context.Background(), "take off")
	if result.Success {
		t.Error("expected failure")
	}
	if result.Output != "Error executing command: llm request failed: timeout" {
		t.Errorf("unexpected output: %q", result.Output)
	}
	if result.IntermediateSteps == nil || len(result.IntermediateSteps) != 0 {
		t.Errorf("steps must be an empty slice, got %#v", result.IntermediateSteps)
	}
}

func TestResultShapeStableAcrossPaths(t *testing.T) {
	singlePath := NewControlAgent(&stubExecutor{result: &input.ExecuteResult{
		Success: true,
		Output:  "done",
		IntermediateSteps: []entity.IntermediateStep{
			{Tool: "list_drones", Arguments: "{}", Observation: "[]"},
		},
	}}, &summaryUAV{}, nopLogger{})

	multiPath := NewControlAgent(&stubExecutor{result: &input.ExecuteResult{
		Success: true,
		Output:  "[navigator]: moved\n\n[TASK DONE]",
		IntermediateSteps: []entity.IntermediateStep{
			{Tool: "agent_navigator", Arguments: "move", Observation: "moved"},
		},
	}}, &summaryUAV{}, nopLogger{})

	single := singlePath.Execute(context.Background(), "cmd")
	multi := multiPath.Execute(context.Background(), "cmd")

	singleJSON, _ := json.Marshal(single)
	multiJSON, _ := json.Marshal(multi)

	keys := func(raw []byte) []string {
		var m map[string]json.RawMessage
		if err := json.Unmarshal(raw, &m); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		out := make([]string, 0, len(m))
		for k := range m {
			out = append(out, k)
		}
		return out
	}

	singleKeys := keys(singleJSON)
	multiKeys := keys(multiJSON)
	if len(singleKeys) != 3 || len(multiKeys) != 3 {
		t.Fatalf("expected 3 top-level keys, got %v and %v", singleKeys, multiKeys)
	}
	want := map[string]bool{"success": true, "output": true, "intermediate_steps": true}
	for _, k := range append(singleKeys, multiKeys...) {
		if !want[k] {
			t.Errorf("unexpected key %q", k)
		}
	}
}

func TestSessionSummaryFormatsRoster(t *testing.T) {
	uav := &summaryUAV{
		session:  json.RawMessage(`{"name":"Patrol Alpha","task":"patrol","task_description":"perimeter sweep","status":"active"}`),
		progress: json.RawMessage(`{"progress_percentage":40,"status_message":"in progress","is_completed":false}`),
		drones:   json.RawMessage(`[{"id":"drone-001","name":"Alpha","status":"flying","battery_level":87.5}]`),
	}
	agent := NewControlAgent(&stubExecutor{result: &input.ExecuteResult{}}, uav, nopLogger{})

	summary := agent.SessionSummary(context.Background())
	for _, want := range []string{
		"Session: Patrol Alpha",
		"Task: patrol - perimeter sweep",
		"Progress: 40% (in progress)",
		"Drones: 1 available",
		"Alpha (drone-001): flying, Battery: 87.5%",
	} {
		if !strings.Contains(summary, want) {
			t.Errorf("summary missing %q:\n%s", want, summary)
		}
	}
}

func TestRefreshSessionContext(t *testing.T) {
	uav := &summaryUAV{
		session: json.RawMessage(`{"id":"sess-1","task":"patrol","task_description":"d","status":"active"}`),
	}
	agent := NewControlAgent(&stubExecutor{}, uav, nopLogger{})

	agent.RefreshSessionContext(context.Background())
	want := map[string]interface{}{
		"session_id": "sess-1", "task_type": "patrol",
		"task_description": "d", "status": "active",
	}
	if !reflect.DeepEqual(agent.sessionContext, want) {
		t.Errorf("unexpected context: %#v", agent.sessionContext)
	}
}
