package tool

import (
	"context"
	"fmt"

	"uav-agent/internal/application/port/output"
	"uav-agent/internal/domain/entity"
)

type CheckPointCollisionTool struct {
	client output.UAVPort
	logger output.LoggerPort
}

func NewCheckPointCollisionTool(client output.UAVPort, logger output.LoggerPort) *CheckPointCollisionTool {
	return &CheckPointCollisionTool{client: client, logger: logger}
}

func (t *CheckPointCollisionTool) Name() entity.ToolName { return entity.ToolCheckPointCollision }
func (t *CheckPointCollisionTool) Description() string {
	return "Check whether a point collides with any obstacle, with an optional safety margin in meters. Input: {\"x\": 50, \"y\": 30, \"z\": 20, \"safety_margin\": 2}."
}
func (t *CheckPointCollisionTool) Parameters() map[string]interface{} {
	return objectSchema(map[string]interface{}{
		"x":             numberProp("X coordinate in meters"),
		"y":             numberProp("Y coordinate in meters"),
		"z":             numberProp("Altitude in meters"),
		"safety_margin": numberProp("Optional safety margin in meters, default 0"),
	}, "x", "y", "z")
}

func (t *CheckPointCollisionTool) Execute(ctx context.Context, arguments string) (string, error) {
	var input struct {
		X            *float64 `json:"x"`
		Y            *float64 `json:"y"`
		Z            *float64 `json:"z"`
		SafetyMargin *float64 `json:"safety_margin"`
	}
	if err := parseArgs(arguments, &input); err != nil {
		return "", err
	}
	if input.X == nil {
		return "", fmt.Errorf("x is required")
	}
	if input.Y == nil {
		return "", fmt.Errorf("y is required")
	}
	if input.Z == nil {
		return "", fmt.Errorf("z is required")
	}

	margin := 0.0
	if input.SafetyMargin != nil {
		margin = *input.SafetyMargin
	}

	point := entity.Position{X: *input.X, Y: *input.Y, Z: *input.Z}
	result, err := t.client.CheckPointCollision(ctx, point, margin)
	if err != nil {
		return "", fmt.Errorf("checking point collision: %w", err)
	}
	return prettyJSON(result), nil
}

type CheckPathCollisionTool struct {
	client output.UAVPort
	logger output.LoggerPort
}

func NewCheckPathCollisionTool(client output.UAVPort, logger output.LoggerPort) *CheckPathCollisionTool {
	return &CheckPathCollisionTool{client: client, logger: logger}
}

func (t *CheckPathCollisionTool) Name() entity.ToolName { return entity.ToolCheckPathCollision }
func (t *CheckPathCollisionTool) Description() string {
	return "Check whether a straight path between two points intersects any obstacle, with an optional safety margin in meters (default 1). Input: {\"start_x\": 0, \"start_y\": 0, \"start_z\": 10, \"end_x\": 50, \"end_y\": 50, \"end_z\": 10}."
}
func (t *CheckPathCollisionTool) Parameters() map[string]interface{} {
	return objectSchema(map[string]interface{}{
		"start_x":       numberProp("Path start X in meters"),
		"start_y":       numberProp("Path start Y in meters"),
		"start_z":       numberProp("Path start altitude in meters"),
		"end_x":         numberProp("Path end X in meters"),
		"end_y":         numberProp("Path end Y in meters"),
		"end_z":         numberProp("Path end altitude in meters"),
		"safety_margin": numberProp("Optional safety margin in meters, default 1"),
	}, "start_x", "start_y", "start_z", "end_x", "end_y", "end_z")
}

func (t *CheckPathCollisionTool) Execute(ctx context.Context, arguments string) (string, error) {
	var input struct {
		StartX       *float64 `json:"start_x"`
		StartY       *float64 `json:"start_y"`
		StartZ       *float64 `json:"start_z"`
		EndX         *float64 `json:"end_x"`
		EndY         *float64 `json:"end_y"`
		EndZ         *float64 `json:"end_z"`
		SafetyMargin *float64 `json:"safety_margin"`
	}
	if err := parseArgs(arguments, &input); err != nil {
		return "", err
	}
	for name, v := range map[string]*float64{
		"start_x": input.StartX, "start_y": input.StartY, "start_z": input.StartZ,
		"end_x": input.EndX, "end_y": input.EndY, "end_z": input.EndZ,
	} {
		if v == nil {
			return "", fmt.Errorf("%s is required", name)
		}
	}

	margin := 1.0
	if input.SafetyMargin != nil {
		margin = *input.SafetyMargin
	}

	start := entity.Position{X: *input.StartX, Y: *input.StartY, Z: *input.StartZ}
	end := entity.Position{X: *input.EndX, Y: *input.EndY, Z: *input.EndZ}
	result, err := t.client.CheckPathCollision(ctx, start, end, margin)
	if err != nil {
		return "", fmt.Errorf("checking path collision: %w", err)
	}
	return prettyJSON(result), nil
}
