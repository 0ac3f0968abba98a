package uav

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"uav-agent/internal/domain/entity"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, apiKey string) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := DefaultConfig(server.URL)
	cfg.APIKey = apiKey
	return NewClient(cfg)
}

func TestListDrones(t *testing.T) {
	var gotPath, gotMethod string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		w.Write([]byte(`[{"id":"drone-001","status":"idle"}]`))
	}, "")

	result, err := client.ListDrones(context.Background())
	if err != nil {
		t.Fatalf("ListDrones failed: %v", err)
	}

	if gotMethod != http.MethodGet || gotPath != "/drones" {
		t.Errorf("expected GET /drones, got %s %s", gotMethod, gotPath)
	}
	if !strings.Contains(string(result), "drone-001") {
		t.Errorf("unexpected payload: %s", result)
	}
}

func TestTakeOffEncodesAltitudeAsQuery(t *testing.T) {
	var gotPath, gotAltitude string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAltitude = r.URL.Query().Get("altitude")
		w.Write([]byte(`{"status":"ok"}`))
	}, "")

	_, err := client.TakeOff(context.Background(), "drone-001", 20.5)
	if err != nil {
		t.Fatalf("TakeOff failed: %v", err)
	}

	if gotPath != "/drones/drone-001/command/take_off" {
		t.Errorf("unexpected path: %s", gotPath)
	}
	if gotAltitude != "20.5" {
		t.Errorf("expected altitude=20.5, got %q", gotAltitude)
	}
}

func TestMoveToForwardsCoordinates(t *testing.T) {
	var query map[string]string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		query = map[string]string{
			"x": r.URL.Query().Get("x"),
			"y": r.URL.Query().Get("y"),
			"z": r.URL.Query().Get("z"),
		}
		w.Write([]byte(`{}`))
	}, "")

	_, err := client.MoveTo(context.Background(), "drone-001", 10, -5.25, 30)
	if err != nil {
		t.Fatalf("MoveTo failed: %v", err)
	}

	if query["x"] != "10" || query["y"] != "-5.25" || query["z"] != "30" {
		t.Errorf("unexpected coordinates: %v", query)
	}
}

func TestMoveTowardsOmitsUnsetOptionals(t *testing.T) {
	var rawQuery string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery
		w.Write([]byte(`{}`))
	}, "")

	_, err := client.MoveTowards(context.Background(), "drone-001", 15, nil, nil)
	if err != nil {
		t.Fatalf("MoveTowards failed: %v", err)
	}

	if strings.Contains(rawQuery, "heading") || strings.Contains(rawQuery, "dz") {
		t.Errorf("optional params should be omitted, got query %q", rawQuery)
	}
	if !strings.Contains(rawQuery, "distance=15") {
		t.Errorf("expected distance=15 in query %q", rawQuery)
	}
}

func TestCheckPathCollisionSendsJSONBody(t *testing.T) {
	var body map[string]interface{}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/obstacles/collision/path" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.Write([]byte(`{"collision":false}`))
	}, "")

	start := entity.Position{X: 0, Y: 0, Z: 10}
	end := entity.Position{X: 50, Y: 50, Z: 10}
	_, err := client.CheckPathCollision(context.Background(), start, end, 1.0)
	if err != nil {
		t.Fatalf("CheckPathCollision failed: %v", err)
	}

	if body["safety_margin"] != 1.0 {
		t.Errorf("expected safety_margin=1.0, got %v", body["safety_margin"])
	}
	startBody, ok := body["start"].(map[string]interface{})
	if !ok || startBody["z"] != 10.0 {
		t.Errorf("unexpected start point: %v", body["start"])
	}
}

func TestAPIKeyHeader(t *testing.T) {
	var gotKey string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-API-Key")
		w.Write([]byte(`{}`))
	}, "secret-key")

	if _, err := client.CurrentSession(context.Background()); err != nil {
		t.Fatalf("CurrentSession failed: %v", err)
	}

	if gotKey != "secret-key" {
		t.Errorf("expected X-API-Key header, got %q", gotKey)
	}
}

func TestNoAPIKeyHeaderWhenUnset(t *testing.T) {
	var hasHeader bool
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, hasHeader = r.Header["X-Api-Key"]
		w.Write([]byte(`{}`))
	}, "")

	if _, err := client.CurrentSession(context.Background()); err != nil {
		t.Fatalf("CurrentSession failed: %v", err)
	}

	if hasHeader {
		t.Error("X-API-Key header should not be sent without a key")
	}
}

func TestUnauthorizedMapsToAuthError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}, "bad-key")

	_, err := client.ListDrones(context.Background())
	if err == nil {
		t.Fatal("expected error for 401")
	}
	if !strings.Contains(err.Error(), "authentication failed") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestForbiddenIncludesDetail(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"detail":"SYSTEM role required"}`))
	}, "user-key")

	_, err := client.Charge(context.Background(), "drone-001", 50)
	if err == nil {
		t.Fatal("expected error for 403")
	}
	if !strings.Contains(err.Error(), "permission denied: SYSTEM role required") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestNoContentReturnsNil(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}, "")

	result, err := client.Land(context.Background(), "drone-001")
	if err != nil {
		t.Fatalf("Land failed: %v", err)
	}
	if result != nil {
		t.Errorf("expected nil payload for 204, got %s", result)
	}
}

func TestSendMessageForwardsParams(t *testing.T) {
	var target, message string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		target = r.URL.Query().Get("target_drone_id")
		message = r.URL.Query().Get("message")
		w.Write([]byte(`{}`))
	}, "")

	_, err := client.SendMessage(context.Background(), "drone-001", "drone-002", "rendezvous at target 3")
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}

	if target != "drone-002" || message != "rendezvous at target 3" {
		t.Errorf("params not forwarded: target=%q message=%q", target, message)
	}
}

func TestTaskProgressDefaultsToCurrentSession(t *testing.T) {
	var gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"progress_percentage":40}`))
	}, "")

	if _, err := client.TaskProgress(context.Background(), ""); err != nil {
		t.Fatalf("TaskProgress failed: %v", err)
	}

	if gotPath != "/sessions/current/task-progress" {
		t.Errorf("unexpected path: %s", gotPath)
	}
}
