package tool

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"uav-agent/internal/domain/entity"
)

// mockClient records the last call so tests can assert exact forwarding.
type mockClient struct {
	lastMethod string
	lastArgs   []interface{}
	response   json.RawMessage
	err        error
}

func (m *mockClient) record(method string, args ...interface{}) (json.RawMessage, error) {
	m.lastMethod = method
	m.lastArgs = args
	if m.err != nil {
		return nil, m.err
	}
	if m.response == nil {
		return json.RawMessage(`{"status":"ok"}`), nil
	}
	return m.response, nil
}

func (m *mockClient) ListDrones(ctx context.Context) (json.RawMessage, error) {
	return m.record("ListDrones")
}
func (m *mockClient) DroneStatus(ctx context.Context, droneID string) (json.RawMessage, error) {
	return m.record("DroneStatus", droneID)
}
func (m *mockClient) NearbyEntities(ctx context.Context, droneID string) (json.RawMessage, error) {
	return m.record("NearbyEntities", droneID)
}
func (m *mockClient) TakeOff(ctx context.Context, droneID string, altitude float64) (json.RawMessage, error) {
	return m.record("TakeOff", droneID, altitude)
}
func (m *mockClient) Land(ctx context.Context, droneID string) (json.RawMessage, error) {
	return m.record("Land", droneID)
}
func (m *mockClient) MoveTo(ctx context.Context, droneID string, x, y, z float64) (json.RawMessage, error) {
	return m.record("MoveTo", droneID, x, y, z)
}
func (m *mockClient) MoveAlongPath(ctx context.Context, droneID string, waypoints []entity.Position) (json.RawMessage, error) {
	return m.record("MoveAlongPath", droneID, waypoints)
}
func (m *mockClient) MoveTowards(ctx context.Context, droneID string, distance float64, heading, dz *float64) (json.RawMessage, error) {
	return m.record("MoveTowards", droneID, distance, heading, dz)
}
func (m *mockClient) ChangeAltitude(ctx context.Context, droneID string, altitude float64) (json.RawMessage, error) {
	return m.record("ChangeAltitude", droneID, altitude)
}
func (m *mockClient) Hover(ctx context.Context, droneID string, duration *float64) (json.RawMessage, error) {
	return m.record("Hover", droneID, duration)
}
func (m *mockClient) Rotate(ctx context.Context, droneID string, heading float64) (json.RawMessage, error) {
	return m.record("Rotate", droneID, heading)
}
func (m *mockClient) ReturnHome(ctx context.Context, droneID string) (json.RawMessage, error) {
	return m.record("ReturnHome", droneID)
}
func (m *mockClient) SetHome(ctx context.Context, droneID string) (json.RawMessage, error) {
	return m.record("SetHome", droneID)
}
func (m *mockClient) Calibrate(ctx context.Context, droneID string) (json.RawMessage, error) {
	return m.record("Calibrate", droneID)
}
func (m *mockClient) Charge(ctx context.Context, droneID string, chargeAmount float64) (json.RawMessage, error) {
	return m.record("Charge", droneID, chargeAmount)
}
func (m *mockClient) TakePhoto(ctx context.Context, droneID string) (json.RawMessage, error) {
	return m.record("TakePhoto", droneID)
}
func (m *mockClient) SendMessage(ctx context.Context, droneID, targetDroneID, message string) (json.RawMessage, error) {
	return m.record("SendMessage", droneID, targetDroneID, message)
}
func (m *mockClient) Broadcast(ctx context.Context, droneID, message string) (json.RawMessage, error) {
	return m.record("Broadcast", droneID, message)
}
func (m *mockClient) CurrentSession(ctx context.Context) (json.RawMessage, error) {
	return m.record("CurrentSession")
}
func (m *mockClient) SessionData(ctx context.Context, sessionID string) (json.RawMessage, error) {
	return m.record("SessionData", sessionID)
}
func (m *mockClient) TaskProgress(ctx context.Context, sessionID string) (json.RawMessage, error) {
	return m.record("TaskProgress", sessionID)
}
func (m *mockClient) Weather(ctx context.Context) (json.RawMessage, error) {
	return m.record("Weather")
}
func (m *mockClient) Targets(ctx context.Context) (json.RawMessage, error) {
	return m.record("Targets")
}
func (m *mockClient) Waypoints(ctx context.Context) (json.RawMessage, error) {
	return m.record("Waypoints")
}
func (m *mockClient) Obstacles(ctx context.Context) (json.RawMessage, error) {
	return m.record("Obstacles")
}
func (m *mockClient) CheckPointCollision(ctx context.Context, point entity.Position, safetyMargin float64) (json.RawMessage, error) {
	return m.record("CheckPointCollision", point, safetyMargin)
}
func (m *mockClient) CheckPathCollision(ctx context.Context, start, end entity.Position, safetyMargin float64) (json.RawMessage, error) {
	return m.record("CheckPathCollision", start, end, safetyMargin)
}

func TestDroneStatusMissingDroneID(t *testing.T) {
	tool := NewDroneStatusTool(&mockClient{}, nil)

	_, err := tool.Execute(context.Background(), `{}`)
	if err == nil {
		t.Fatal("expected error for missing drone_id")
	}
	if err.Error() != "drone_id is required" {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestDroneStatusMalformedJSON(t *testing.T) {
	tool := NewDroneStatusTool(&mockClient{}, nil)

	_, err := tool.Execute(context.Background(), `{not json`)
	if err == nil {
		t.Fatal("expected error for malformed JSON")
	}
	if !strings.Contains(err.Error(), "parsing JSON input") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestTakeOffForwardsValues(t *testing.T) {
	client := &mockClient{}
	tool := NewTakeOffTool(client, nil)

	_, err := tool.Execute(context.Background(), `{"drone_id":"drone-007","altitude":25.5}`)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if client.lastMethod != "TakeOff" {
		t.Fatalf("expected TakeOff call, got %s", client.lastMethod)
	}
	if client.lastArgs[0] != "drone-007" || client.lastArgs[1] != 25.5 {
		t.Errorf("values not forwarded exactly: %v", client.lastArgs)
	}
}

func TestTakeOffDefaultAltitude(t *testing.T) {
	client := &mockClient{}
	tool := NewTakeOffTool(client, nil)

	if _, err := tool.Execute(context.Background(), `{"drone_id":"drone-001"}`); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if client.lastArgs[1] != 10.0 {
		t.Errorf("expected default altitude 10, got %v", client.lastArgs[1])
	}
}

func TestMoveToRequiresEveryCoordinate(t *testing.T) {
	tool := NewMoveToTool(&mockClient{}, nil)

	cases := []struct {
		args    string
		missing string
	}{
		{`{"x":1,"y":2,"z":3}`, "drone_id"},
		{`{"drone_id":"d","y":2,"z":3}`, "x"},
		{`{"drone_id":"d","x":1,"z":3}`, "y"},
		{`{"drone_id":"d","x":1,"y":2}`, "z"},
	}

	for _, tc := range cases {
		_, err := tool.Execute(context.Background(), tc.args)
		if err == nil {
			t.Errorf("args %s: expected error", tc.args)
			continue
		}
		if err.Error() != tc.missing+" is required" {
			t.Errorf("args %s: unexpected error %v", tc.args, err)
		}
	}
}

func TestMoveToZeroCoordinatesAreValid(t *testing.T) {
	client := &mockClient{}
	tool := NewMoveToTool(client, nil)

	_, err := tool.Execute(context.Background(), `{"drone_id":"d","x":0,"y":0,"z":0}`)
	if err != nil {
		t.Fatalf("zero coordinates should be accepted: %v", err)
	}

	if client.lastArgs[1] != 0.0 || client.lastArgs[2] != 0.0 || client.lastArgs[3] != 0.0 {
		t.Errorf("unexpected forwarded values: %v", client.lastArgs)
	}
}

func TestMoveTowardsOptionalHeading(t *testing.T) {
	client := &mockClient{}
	tool := NewMoveTowardsTool(client, nil)

	_, err := tool.Execute(context.Background(), `{"drone_id":"d","distance":15}`)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if client.lastArgs[1] != 15.0 {
		t.Errorf("distance not forwarded: %v", client.lastArgs)
	}
	if client.lastArgs[2] != (*float64)(nil) {
		t.Errorf("heading should be nil when omitted, got %v", client.lastArgs[2])
	}

	_, err = tool.Execute(context.Background(), `{"drone_id":"d","distance":15,"heading":270}`)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	heading, ok := client.lastArgs[2].(*float64)
	if !ok || heading == nil || *heading != 270 {
		t.Errorf("heading not forwarded: %v", client.lastArgs[2])
	}
}

func TestSendMessageMissingFields(t *testing.T) {
	tool := NewSendMessageTool(&mockClient{}, nil)

	cases := []struct {
		args    string
		missing string
	}{
		{`{"target_drone_id":"b","message":"hi"}`, "drone_id"},
		{`{"drone_id":"a","message":"hi"}`, "target_drone_id"},
		{`{"drone_id":"a","target_drone_id":"b"}`, "message"},
	}

	for _, tc := range cases {
		_, err := tool.Execute(context.Background(), tc.args)
		if err == nil || err.Error() != tc.missing+" is required" {
			t.Errorf("args %s: unexpected error %v", tc.args, err)
		}
	}
}

func TestChargeRequiresAmount(t *testing.T) {
	tool := NewChargeTool(&mockClient{}, nil)

	_, err := tool.Execute(context.Background(), `{"drone_id":"d"}`)
	if err == nil || err.Error() != "charge_amount is required" {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestCheckPathCollisionDefaultsMargin(t *testing.T) {
	client := &mockClient{}
	tool := NewCheckPathCollisionTool(client, nil)

	args := `{"start_x":0,"start_y":0,"start_z":10,"end_x":50,"end_y":50,"end_z":10}`
	if _, err := tool.Execute(context.Background(), args); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if client.lastMethod != "CheckPathCollision" {
		t.Fatalf("expected CheckPathCollision, got %s", client.lastMethod)
	}
	if client.lastArgs[2] != 1.0 {
		t.Errorf("expected default safety margin 1.0, got %v", client.lastArgs[2])
	}
	start := client.lastArgs[0].(entity.Position)
	if start.Z != 10 {
		t.Errorf("start point not forwarded: %+v", start)
	}
}

func TestCheckPointCollisionMissingCoordinate(t *testing.T) {
	tool := NewCheckPointCollisionTool(&mockClient{}, nil)

	_, err := tool.Execute(context.Background(), `{"x":1,"y":2}`)
	if err == nil || err.Error() != "z is required" {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestListDronesPrettyPrintsPayload(t *testing.T) {
	client := &mockClient{response: json.RawMessage(`[{"id":"drone-001"}]`)}
	tool := NewListDronesTool(client, nil)

	result, err := tool.Execute(context.Background(), "")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if !strings.Contains(result, `"id": "drone-001"`) {
		t.Errorf("expected indented payload, got %q", result)
	}
}

func TestHoverForwardsOptionalDuration(t *testing.T) {
	client := &mockClient{}
	tool := NewHoverTool(client, nil)

	if _, err := tool.Execute(context.Background(), `{"drone_id":"d","duration":5}`); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	duration, ok := client.lastArgs[1].(*float64)
	if !ok || duration == nil || *duration != 5 {
		t.Errorf("duration not forwarded: %v", client.lastArgs[1])
	}
}
