package output

import (
	"context"
	"encoding/json"

	"uav-agent/internal/domain/entity"
)

// UAVPort is the client surface over the remote UAV Control System API.
// Responses are the server's JSON payloads passed through untouched:
// the agent reads them, this layer does not interpret them.
type UAVPort interface {
	// Drones
	ListDrones(ctx context.Context) (json.RawMessage, error)
	DroneStatus(ctx context.Context, droneID string) (json.RawMessage, error)
	NearbyEntities(ctx context.Context, droneID string) (json.RawMessage, error)

	// Flight commands
	TakeOff(ctx context.Context, droneID string, altitude float64) (json.RawMessage, error)
	Land(ctx context.Context, droneID string) (json.RawMessage, error)
	MoveTo(ctx context.Context, droneID string, x, y, z float64) (json.RawMessage, error)
	MoveAlongPath(ctx context.Context, droneID string, waypoints []entity.Position) (json.RawMessage, error)
	MoveTowards(ctx context.Context, droneID string, distance float64, heading, dz *float64) (json.RawMessage, error)
	ChangeAltitude(ctx context.Context, droneID string, altitude float64) (json.RawMessage, error)
	Hover(ctx context.Context, droneID string, duration *float64) (json.RawMessage, error)
	Rotate(ctx context.Context, droneID string, heading float64) (json.RawMessage, error)
	ReturnHome(ctx context.Context, droneID string) (json.RawMessage, error)
	SetHome(ctx context.Context, droneID string) (json.RawMessage, error)
	Calibrate(ctx context.Context, droneID string) (json.RawMessage, error)
	Charge(ctx context.Context, droneID string, chargeAmount float64) (json.RawMessage, error)
	TakePhoto(ctx context.Context, droneID string) (json.RawMessage, error)

	// Messaging
	SendMessage(ctx context.Context, droneID, targetDroneID, message string) (json.RawMessage, error)
	Broadcast(ctx context.Context, droneID, message string) (json.RawMessage, error)

	// Session
	CurrentSession(ctx context.Context) (json.RawMessage, error)
	SessionData(ctx context.Context, sessionID string) (json.RawMessage, error)
	TaskProgress(ctx context.Context, sessionID string) (json.RawMessage, error)

	// Environment
	Weather(ctx context.Context) (json.RawMessage, error)
	Targets(ctx context.Context) (json.RawMessage, error)
	Waypoints(ctx context.Context) (json.RawMessage, error)
	Obstacles(ctx context.Context) (json.RawMessage, error)

	// Safety
	CheckPointCollision(ctx context.Context, point entity.Position, safetyMargin float64) (json.RawMessage, error)
	CheckPathCollision(ctx context.Context, start, end entity.Position, safetyMargin float64) (json.RawMessage, error)
}
