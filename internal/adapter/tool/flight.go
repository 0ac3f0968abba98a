package tool

import (
	"context"
	"fmt"

	"uav-agent/internal/application/port/output"
	"uav-agent/internal/domain/entity"
)

const defaultTakeOffAltitude = 10.0

type TakeOffTool struct {
	client output.UAVPort
	logger output.LoggerPort
}

func NewTakeOffTool(client output.UAVPort, logger output.LoggerPort) *TakeOffTool {
	return &TakeOffTool{client: client, logger: logger}
}

func (t *TakeOffTool) Name() entity.ToolName { return entity.ToolTakeOff }
func (t *TakeOffTool) Description() string {
	return "Command a drone to take off to the given altitude in meters (default 10). The drone must be idle. Input: {\"drone_id\": \"drone-001\", \"altitude\": 20}."
}
func (t *TakeOffTool) Parameters() map[string]interface{} {
	return objectSchema(map[string]interface{}{
		"drone_id": stringProp("The ID of the drone"),
		"altitude": numberProp("Target altitude in meters, default 10"),
	}, "drone_id")
}

func (t *TakeOffTool) Execute(ctx context.Context, arguments string) (string, error) {
	var input struct {
		DroneID  string   `json:"drone_id"`
		Altitude *float64 `json:"altitude"`
	}
	if err := parseArgs(arguments, &input); err != nil {
		return "", err
	}
	if input.DroneID == "" {
		return "", fmt.Errorf("drone_id is required")
	}

	altitude := defaultTakeOffAltitude
	if input.Altitude != nil {
		altitude = *input.Altitude
	}

	result, err := t.client.TakeOff(ctx, input.DroneID, altitude)
	if err != nil {
		return "", fmt.Errorf("taking off: %w", err)
	}
	return prettyJSON(result), nil
}

type LandTool struct {
	client output.UAVPort
	logger output.LoggerPort
}

func NewLandTool(client output.UAVPort, logger output.LoggerPort) *LandTool {
	return &LandTool{client: client, logger: logger}
}

func (t *LandTool) Name() entity.ToolName { return entity.ToolLand }
func (t *LandTool) Description() string {
	return "Command a flying drone to land at its current position. Input: {\"drone_id\": \"drone-001\"}."
}
func (t *LandTool) Parameters() map[string]interface{} {
	return objectSchema(map[string]interface{}{
		"drone_id": stringProp("The ID of the drone"),
	}, "drone_id")
}

func (t *LandTool) Execute(ctx context.Context, arguments string) (string, error) {
	var input struct {
		DroneID string `json:"drone_id"`
	}
	if err := parseArgs(arguments, &input); err != nil {
		return "", err
	}
	if input.DroneID == "" {
		return "", fmt.Errorf("drone_id is required")
	}

	result, err := t.client.Land(ctx, input.DroneID)
	if err != nil {
		return "", fmt.Errorf("landing: %w", err)
	}
	return prettyJSON(result), nil
}

type MoveToTool struct {
	client output.UAVPort
	logger output.LoggerPort
}

func NewMoveToTool(client output.UAVPort, logger output.LoggerPort) *MoveToTool {
	return &MoveToTool{client: client, logger: logger}
}

func (t *MoveToTool) Name() entity.ToolName { return entity.ToolMoveTo }
func (t *MoveToTool) Description() string {
	return "Move a flying drone to specific coordinates in meters. Input: {\"drone_id\": \"drone-001\", \"x\": 50, \"y\": 30, \"z\": 20}."
}
func (t *MoveToTool) Parameters() map[string]interface{} {
	return objectSchema(map[string]interface{}{
		"drone_id": stringProp("The ID of the drone"),
		"x":        numberProp("Target X coordinate in meters"),
		"y":        numberProp("Target Y coordinate in meters"),
		"z":        numberProp("Target altitude in meters"),
	}, "drone_id", "x", "y", "z")
}

func (t *MoveToTool) Execute(ctx context.Context, arguments string) (string, error) {
	var input struct {
		DroneID string   `json:"drone_id"`
		X       *float64 `json:"x"`
		Y       *float64 `json:"y"`
		Z       *float64 `json:"z"`
	}
	if err := parseArgs(arguments, &input); err != nil {
		return "", err
	}
	if input.DroneID == "" {
		return "", fmt.Errorf("drone_id is required")
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

	result, err := t.client.MoveTo(ctx, input.DroneID, *input.X, *input.Y, *input.Z)
	if err != nil {
		return "", fmt.Errorf("moving: %w", err)
	}
	return prettyJSON(result), nil
}

type MoveTowardsTool struct {
	client output.UAVPort
	logger output.LoggerPort
}

func NewMoveTowardsTool(client output.UAVPort, logger output.LoggerPort) *MoveTowardsTool {
	return &MoveTowardsTool{client: client, logger: logger}
}

func (t *MoveTowardsTool) Name() entity.ToolName { return entity.ToolMoveTowards }
func (t *MoveTowardsTool) Description() string {
	return "Move a flying drone a distance in meters along a heading (0-360 degrees, current heading if omitted), with optional vertical component dz. Input: {\"drone_id\": \"drone-001\", \"distance\": 25, \"heading\": 90}."
}
func (t *MoveTowardsTool) Parameters() map[string]interface{} {
	return objectSchema(map[string]interface{}{
		"drone_id": stringProp("The ID of the drone"),
		"distance": numberProp("Distance to move in meters"),
		"heading":  numberProp("Optional heading in degrees 0-360; current heading if omitted"),
		"dz":       numberProp("Optional altitude change in meters"),
	}, "drone_id", "distance")
}

func (t *MoveTowardsTool) Execute(ctx context.Context, arguments string) (string, error) {
	var input struct {
		DroneID  string   `json:"drone_id"`
		Distance *float64 `json:"distance"`
		Heading  *float64 `json:"heading"`
		DZ       *float64 `json:"dz"`
	}
	if err := parseArgs(arguments, &input); err != nil {
		return "", err
	}
	if input.DroneID == "" {
		return "", fmt.Errorf("drone_id is required")
	}
	if input.Distance == nil {
		return "", fmt.Errorf("distance is required")
	}

	result, err := t.client.MoveTowards(ctx, input.DroneID, *input.Distance, input.Heading, input.DZ)
	if err != nil {
		return "", fmt.Errorf("moving: %w", err)
	}
	return prettyJSON(result), nil
}

type ChangeAltitudeTool struct {
	client output.UAVPort
	logger output.LoggerPort
}

func NewChangeAltitudeTool(client output.UAVPort, logger output.LoggerPort) *ChangeAltitudeTool {
	return &ChangeAltitudeTool{client: client, logger: logger}
}

func (t *ChangeAltitudeTool) Name() entity.ToolName { return entity.ToolChangeAltitude }
func (t *ChangeAltitudeTool) Description() string {
	return "Change a flying drone's altitude while keeping its X/Y position. Input: {\"drone_id\": \"drone-001\", \"altitude\": 30}."
}
func (t *ChangeAltitudeTool) Parameters() map[string]interface{} {
	return objectSchema(map[string]interface{}{
		"drone_id": stringProp("The ID of the drone"),
		"altitude": numberProp("Target altitude in meters"),
	}, "drone_id", "altitude")
}

func (t *ChangeAltitudeTool) Execute(ctx context.Context, arguments string) (string, error) {
	var input struct {
		DroneID  string   `json:"drone_id"`
		Altitude *float64 `json:"altitude"`
	}
	if err := parseArgs(arguments, &input); err != nil {
		return "", err
	}
	if input.DroneID == "" {
		return "", fmt.Errorf("drone_id is required")
	}
	if input.Altitude == nil {
		return "", fmt.Errorf("altitude is required")
	}

	result, err := t.client.ChangeAltitude(ctx, input.DroneID, *input.Altitude)
	if err != nil {
		return "", fmt.Errorf("changing altitude: %w", err)
	}
	return prettyJSON(result), nil
}

type HoverTool struct {
	client output.UAVPort
	logger output.LoggerPort
}

func NewHoverTool(client output.UAVPort, logger output.LoggerPort) *HoverTool {
	return &HoverTool{client: client, logger: logger}
}

func (t *HoverTool) Name() entity.ToolName { return entity.ToolHover }
func (t *HoverTool) Description() string {
	return "Command a flying drone to hover at its current position, optionally for a duration in seconds. Input: {\"drone_id\": \"drone-001\", \"duration\": 5}."
}
func (t *HoverTool) Parameters() map[string]interface{} {
	return objectSchema(map[string]interface{}{
		"drone_id": stringProp("The ID of the drone"),
		"duration": numberProp("Optional hover duration in seconds"),
	}, "drone_id")
}

func (t *HoverTool) Execute(ctx context.Context, arguments string) (string, error) {
	var input struct {
		DroneID  string   `json:"drone_id"`
		Duration *float64 `json:"duration"`
	}
	if err := parseArgs(arguments, &input); err != nil {
		return "", err
	}
	if input.DroneID == "" {
		return "", fmt.Errorf("drone_id is required")
	}

	result, err := t.client.Hover(ctx, input.DroneID, input.Duration)
	if err != nil {
		return "", fmt.Errorf("hovering: %w", err)
	}
	return prettyJSON(result), nil
}

type RotateTool struct {
	client output.UAVPort
	logger output.LoggerPort
}

func NewRotateTool(client output.UAVPort, logger output.LoggerPort) *RotateTool {
	return &RotateTool{client: client, logger: logger}
}

func (t *RotateTool) Name() entity.ToolName { return entity.ToolRotate }
func (t *RotateTool) Description() string {
	return "Rotate a drone to face a specific heading in degrees 0-360. Input: {\"drone_id\": \"drone-001\", \"heading\": 180}."
}
func (t *RotateTool) Parameters() map[string]interface{} {
	return objectSchema(map[string]interface{}{
		"drone_id": stringProp("The ID of the drone"),
		"heading":  numberProp("Target heading in degrees 0-360"),
	}, "drone_id", "heading")
}

func (t *RotateTool) Execute(ctx context.Context, arguments string) (string, error) {
	var input struct {
		DroneID string   `json:"drone_id"`
		Heading *float64 `json:"heading"`
	}
	if err := parseArgs(arguments, &input); err != nil {
		return "", err
	}
	if input.DroneID == "" {
		return "", fmt.Errorf("drone_id is required")
	}
	if input.Heading == nil {
		return "", fmt.Errorf("heading is required")
	}

	result, err := t.client.Rotate(ctx, input.DroneID, *input.Heading)
	if err != nil {
		return "", fmt.Errorf("rotating: %w", err)
	}
	return prettyJSON(result), nil
}

type ReturnHomeTool struct {
	client output.UAVPort
	logger output.LoggerPort
}

func NewReturnHomeTool(client output.UAVPort, logger output.LoggerPort) *ReturnHomeTool {
	return &ReturnHomeTool{client: client, logger: logger}
}

func (t *ReturnHomeTool) Name() entity.ToolName { return entity.ToolReturnHome }
func (t *ReturnHomeTool) Description() string {
	return "Command a drone to return to its home position. Input: {\"drone_id\": \"drone-001\"}."
}
func (t *ReturnHomeTool) Parameters() map[string]interface{} {
	return objectSchema(map[string]interface{}{
		"drone_id": stringProp("The ID of the drone"),
	}, "drone_id")
}

func (t *ReturnHomeTool) Execute(ctx context.Context, arguments string) (string, error) {
	var input struct {
		DroneID string `json:"drone_id"`
	}
	if err := parseArgs(arguments, &input); err != nil {
		return "", err
	}
	if input.DroneID == "" {
		return "", fmt.Errorf("drone_id is required")
	}

	result, err := t.client.ReturnHome(ctx, input.DroneID)
	if err != nil {
		return "", fmt.Errorf("returning home: %w", err)
	}
	return prettyJSON(result), nil
}

type SetHomeTool struct {
	client output.UAVPort
	logger output.LoggerPort
}

func NewSetHomeTool(client output.UAVPort, logger output.LoggerPort) *SetHomeTool {
	return &SetHomeTool{client: client, logger: logger}
}

func (t *SetHomeTool) Name() entity.ToolName { return entity.ToolSetHome }
func (t *SetHomeTool) Description() string {
	return "Set a drone's current position as its home position. Input: {\"drone_id\": \"drone-001\"}."
}
func (t *SetHomeTool) Parameters() map[string]interface{} {
	return objectSchema(map[string]interface{}{
		"drone_id": stringProp("The ID of the drone"),
	}, "drone_id")
}

func (t *SetHomeTool) Execute(ctx context.Context, arguments string) (string, error) {
	var input struct {
		DroneID string `json:"drone_id"`
	}
	if err := parseArgs(arguments, &input); err != nil {
		return "", err
	}
	if input.DroneID == "" {
		return "", fmt.Errorf("drone_id is required")
	}

	result, err := t.client.SetHome(ctx, input.DroneID)
	if err != nil {
		return "", fmt.Errorf("setting home: %w", err)
	}
	return prettyJSON(result), nil
}

type CalibrateTool struct {
	client output.UAVPort
	logger output.LoggerPort
}

func NewCalibrateTool(client output.UAVPort, logger output.LoggerPort) *CalibrateTool {
	return &CalibrateTool{client: client, logger: logger}
}

func (t *CalibrateTool) Name() entity.ToolName { return entity.ToolCalibrate }
func (t *CalibrateTool) Description() string {
	return "Calibrate a drone's sensors. Input: {\"drone_id\": \"drone-001\"}."
}
func (t *CalibrateTool) Parameters() map[string]interface{} {
	return objectSchema(map[string]interface{}{
		"drone_id": stringProp("The ID of the drone"),
	}, "drone_id")
}

func (t *CalibrateTool) Execute(ctx context.Context, arguments string) (string, error) {
	var input struct {
		DroneID string `json:"drone_id"`
	}
	if err := parseArgs(arguments, &input); err != nil {
		return "", err
	}
	if input.DroneID == "" {
		return "", fmt.Errorf("drone_id is required")
	}

	result, err := t.client.Calibrate(ctx, input.DroneID)
	if err != nil {
		return "", fmt.Errorf("calibrating: %w", err)
	}
	return prettyJSON(result), nil
}

type ChargeTool struct {
	client output.UAVPort
	logger output.LoggerPort
}

func NewChargeTool(client output.UAVPort, logger output.LoggerPort) *ChargeTool {
	return &ChargeTool{client: client, logger: logger}
}

func (t *ChargeTool) Name() entity.ToolName { return entity.ToolCharge }
func (t *ChargeTool) Description() string {
	return "Charge a landed drone's battery by the given amount in percent. Input: {\"drone_id\": \"drone-001\", \"charge_amount\": 50}."
}
func (t *ChargeTool) Parameters() map[string]interface{} {
	return objectSchema(map[string]interface{}{
		"drone_id":      stringProp("The ID of the drone"),
		"charge_amount": numberProp("Amount to charge in percent"),
	}, "drone_id", "charge_amount")
}

func (t *ChargeTool) Execute(ctx context.Context, arguments string) (string, error) {
	var input struct {
		DroneID      string   `json:"drone_id"`
		ChargeAmount *float64 `json:"charge_amount"`
	}
	if err := parseArgs(arguments, &input); err != nil {
		return "", err
	}
	if input.DroneID == "" {
		return "", fmt.Errorf("drone_id is required")
	}
	if input.ChargeAmount == nil {
		return "", fmt.Errorf("charge_amount is required")
	}

	result, err := t.client.Charge(ctx, input.DroneID, *input.ChargeAmount)
	if err != nil {
		return "", fmt.Errorf("charging: %w", err)
	}
	return prettyJSON(result), nil
}

type TakePhotoTool struct {
	client output.UAVPort
	logger output.LoggerPort
}

func NewTakePhotoTool(client output.UAVPort, logger output.LoggerPort) *TakePhotoTool {
	return &TakePhotoTool{client: client, logger: logger}
}

func (t *TakePhotoTool) Name() entity.ToolName { return entity.ToolTakePhoto }
func (t *TakePhotoTool) Description() string {
	return "Take a photo with a drone's camera at its current position. Input: {\"drone_id\": \"drone-001\"}."
}
func (t *TakePhotoTool) Parameters() map[string]interface{} {
	return objectSchema(map[string]interface{}{
		"drone_id": stringProp("The ID of the drone"),
	}, "drone_id")
}

func (t *TakePhotoTool) Execute(ctx context.Context, arguments string) (string, error) {
	var input struct {
		DroneID string `json:"drone_id"`
	}
	if err := parseArgs(arguments, &input); err != nil {
		return "", err
	}
	if input.DroneID == "" {
		return "", fmt.Errorf("drone_id is required")
	}

	result, err := t.client.TakePhoto(ctx, input.DroneID)
	if err != nil {
		return "", fmt.Errorf("taking photo: %w", err)
	}
	return prettyJSON(result), nil
}
