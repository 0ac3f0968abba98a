package tool

import (
	"context"
	"fmt"

	"uav-agent/internal/application/port/output"
	"uav-agent/internal/domain/entity"
)

type ListDronesTool struct {
	client output.UAVPort
	logger output.LoggerPort
}

func NewListDronesTool(client output.UAVPort, logger output.LoggerPort) *ListDronesTool {
	return &ListDronesTool{client: client, logger: logger}
}

func (t *ListDronesTool) Name() entity.ToolName { return entity.ToolListDrones }
func (t *ListDronesTool) Description() string {
	return "List all drones in the current session with their status, battery level and position. Use this before trying to control a drone. No input required."
}
func (t *ListDronesTool) Parameters() map[string]interface{} {
	return objectSchema(map[string]interface{}{})
}

func (t *ListDronesTool) Execute(ctx context.Context, arguments string) (string, error) {
	drones, err := t.client.ListDrones(ctx)
	if err != nil {
		return "", fmt.Errorf("listing drones: %w", err)
	}
	return prettyJSON(drones), nil
}

type DroneStatusTool struct {
	client output.UAVPort
	logger output.LoggerPort
}

func NewDroneStatusTool(client output.UAVPort, logger output.LoggerPort) *DroneStatusTool {
	return &DroneStatusTool{client: client, logger: logger}
}

func (t *DroneStatusTool) Name() entity.ToolName { return entity.ToolDroneStatus }
func (t *DroneStatusTool) Description() string {
	return "Get detailed status of a specific drone: position, battery, heading and visited targets. Input: {\"drone_id\": \"drone-001\"}."
}
func (t *DroneStatusTool) Parameters() map[string]interface{} {
	return objectSchema(map[string]interface{}{
		"drone_id": stringProp("The ID of the drone"),
	}, "drone_id")
}

func (t *DroneStatusTool) Execute(ctx context.Context, arguments string) (string, error) {
	var input struct {
		DroneID string `json:"drone_id"`
	}
	if err := parseArgs(arguments, &input); err != nil {
		return "", err
	}
	if input.DroneID == "" {
		return "", fmt.Errorf("drone_id is required")
	}

	status, err := t.client.DroneStatus(ctx, input.DroneID)
	if err != nil {
		return "", fmt.Errorf("getting drone status: %w", err)
	}
	return prettyJSON(status), nil
}

type NearbyEntitiesTool struct {
	client output.UAVPort
	logger output.LoggerPort
}

func NewNearbyEntitiesTool(client output.UAVPort, logger output.LoggerPort) *NearbyEntitiesTool {
	return &NearbyEntitiesTool{client: client, logger: logger}
}

func (t *NearbyEntitiesTool) Name() entity.ToolName { return entity.ToolNearbyEntities }
func (t *NearbyEntitiesTool) Description() string {
	return "Get drones, targets and obstacles near a specific drone, within its perception radius. Input: {\"drone_id\": \"drone-001\"}."
}
func (t *NearbyEntitiesTool) Parameters() map[string]interface{} {
	return objectSchema(map[string]interface{}{
		"drone_id": stringProp("The ID of the drone"),
	}, "drone_id")
}

func (t *NearbyEntitiesTool) Execute(ctx context.Context, arguments string) (string, error) {
	var input struct {
		DroneID string `json:"drone_id"`
	}
	if err := parseArgs(arguments, &input); err != nil {
		return "", err
	}
	if input.DroneID == "" {
		return "", fmt.Errorf("drone_id is required")
	}

	entities, err := t.client.NearbyEntities(ctx, input.DroneID)
	if err != nil {
		return "", fmt.Errorf("getting nearby entities: %w", err)
	}
	return prettyJSON(entities), nil
}

type SessionInfoTool struct {
	client output.UAVPort
	logger output.LoggerPort
}

func NewSessionInfoTool(client output.UAVPort, logger output.LoggerPort) *SessionInfoTool {
	return &SessionInfoTool{client: client, logger: logger}
}

func (t *SessionInfoTool) Name() entity.ToolName { return entity.ToolSessionInfo }
func (t *SessionInfoTool) Description() string {
	return "Get current session information: task type, statistics and status. Use this to understand what mission you need to complete. No input required."
}
func (t *SessionInfoTool) Parameters() map[string]interface{} {
	return objectSchema(map[string]interface{}{})
}

func (t *SessionInfoTool) Execute(ctx context.Context, arguments string) (string, error) {
	session, err := t.client.CurrentSession(ctx)
	if err != nil {
		return "", fmt.Errorf("getting session info: %w", err)
	}
	return prettyJSON(session), nil
}

type TaskProgressTool struct {
	client output.UAVPort
	logger output.LoggerPort
}

func NewTaskProgressTool(client output.UAVPort, logger output.LoggerPort) *TaskProgressTool {
	return &TaskProgressTool{client: client, logger: logger}
}

func (t *TaskProgressTool) Name() entity.ToolName { return entity.ToolTaskProgress }
func (t *TaskProgressTool) Description() string {
	return "Get mission task progress: completion percentage and status. Use this to track how close the mission is to finishing. No input required."
}
func (t *TaskProgressTool) Parameters() map[string]interface{} {
	return objectSchema(map[string]interface{}{})
}

func (t *TaskProgressTool) Execute(ctx context.Context, arguments string) (string, error) {
	progress, err := t.client.TaskProgress(ctx, "current")
	if err != nil {
		return "", fmt.Errorf("getting task progress: %w", err)
	}
	return prettyJSON(progress), nil
}

type WeatherTool struct {
	client output.UAVPort
	logger output.LoggerPort
}

func NewWeatherTool(client output.UAVPort, logger output.LoggerPort) *WeatherTool {
	return &WeatherTool{client: client, logger: logger}
}

func (t *WeatherTool) Name() entity.ToolName { return entity.ToolWeather }
func (t *WeatherTool) Description() string {
	return "Get current weather conditions: wind speed, visibility and weather type. Check this before takeoff. No input required."
}
func (t *WeatherTool) Parameters() map[string]interface{} {
	return objectSchema(map[string]interface{}{})
}

func (t *WeatherTool) Execute(ctx context.Context, arguments string) (string, error) {
	weather, err := t.client.Weather(ctx)
	if err != nil {
		return "", fmt.Errorf("getting weather: %w", err)
	}
	return prettyJSON(weather), nil
}

type TargetsTool struct {
	client output.UAVPort
	logger output.LoggerPort
}

func NewTargetsTool(client output.UAVPort, logger output.LoggerPort) *TargetsTool {
	return &TargetsTool{client: client, logger: logger}
}

func (t *TargetsTool) Name() entity.ToolName { return entity.ToolTargets }
func (t *TargetsTool) Description() string {
	return "Get all targets in the session: waypoints, survey points and areas to search or patrol. No input required."
}
func (t *TargetsTool) Parameters() map[string]interface{} {
	return objectSchema(map[string]interface{}{})
}

func (t *TargetsTool) Execute(ctx context.Context, arguments string) (string, error) {
	targets, err := t.client.Targets(ctx)
	if err != nil {
		return "", fmt.Errorf("getting targets: %w", err)
	}
	return prettyJSON(targets), nil
}

type ObstaclesTool struct {
	client output.UAVPort
	logger output.LoggerPort
}

func NewObstaclesTool(client output.UAVPort, logger output.LoggerPort) *ObstaclesTool {
	return &ObstaclesTool{client: client, logger: logger}
}

func (t *ObstaclesTool) Name() entity.ToolName { return entity.ToolObstacles }
func (t *ObstaclesTool) Description() string {
	return "Get all obstacles in the session that drones must avoid. No input required."
}
func (t *ObstaclesTool) Parameters() map[string]interface{} {
	return objectSchema(map[string]interface{}{})
}

func (t *ObstaclesTool) Execute(ctx context.Context, arguments string) (string, error) {
	obstacles, err := t.client.Obstacles(ctx)
	if err != nil {
		return "", fmt.Errorf("getting obstacles: %w", err)
	}
	return prettyJSON(obstacles), nil
}
