package tool

import (
	"context"
	"fmt"

	"uav-agent/internal/application/port/output"
	"uav-agent/internal/domain/entity"
)

type SendMessageTool struct {
	client output.UAVPort
	logger output.LoggerPort
}

func NewSendMessageTool(client output.UAVPort, logger output.LoggerPort) *SendMessageTool {
	return &SendMessageTool{client: client, logger: logger}
}

func (t *SendMessageTool) Name() entity.ToolName { return entity.ToolSendMessage }
func (t *SendMessageTool) Description() string {
	return "Send a message from one drone to another. Input: {\"drone_id\": \"drone-001\", \"target_drone_id\": \"drone-002\", \"message\": \"...\"}."
}
func (t *SendMessageTool) Parameters() map[string]interface{} {
	return objectSchema(map[string]interface{}{
		"drone_id":        stringProp("The ID of the sender drone"),
		"target_drone_id": stringProp("The ID of the recipient drone"),
		"message":         stringProp("The message content"),
	}, "drone_id", "target_drone_id", "message")
}

func (t *SendMessageTool) Execute(ctx context.Context, arguments string) (string, error) {
	var input struct {
		DroneID       string `json:"drone_id"`
		TargetDroneID string `json:"target_drone_id"`
		Message       string `json:"message"`
	}
	if err := parseArgs(arguments, &input); err != nil {
		return "", err
	}
	if input.DroneID == "" {
		return "", fmt.Errorf("drone_id is required")
	}
	if input.TargetDroneID == "" {
		return "", fmt.Errorf("target_drone_id is required")
	}
	if input.Message == "" {
		return "", fmt.Errorf("message is required")
	}

	result, err := t.client.SendMessage(ctx, input.DroneID, input.TargetDroneID, input.Message)
	if err != nil {
		return "", fmt.Errorf("sending message: %w", err)
	}
	return prettyJSON(result), nil
}

type BroadcastTool struct {
	client output.UAVPort
	logger output.LoggerPort
}

func NewBroadcastTool(client output.UAVPort, logger output.LoggerPort) *BroadcastTool {
	return &BroadcastTool{client: client, logger: logger}
}

func (t *BroadcastTool) Name() entity.ToolName { return entity.ToolBroadcast }
func (t *BroadcastTool) Description() string {
	return "Broadcast a message from one drone to all other drones. Input: {\"drone_id\": \"drone-001\", \"message\": \"...\"}."
}
func (t *BroadcastTool) Parameters() map[string]interface{} {
	return objectSchema(map[string]interface{}{
		"drone_id": stringProp("The ID of the sender drone"),
		"message":  stringProp("The message content"),
	}, "drone_id", "message")
}

func (t *BroadcastTool) Execute(ctx context.Context, arguments string) (string, error) {
	var input struct {
		DroneID string `json:"drone_id"`
		Message string `json:"message"`
	}
	if err := parseArgs(arguments, &input); err != nil {
		return "", err
	}
	if input.DroneID == "" {
		return "", fmt.Errorf("drone_id is required")
	}
	if input.Message == "" {
		return "", fmt.Errorf("message is required")
	}

	result, err := t.client.Broadcast(ctx, input.DroneID, input.Message)
	if err != nil {
		return "", fmt.Errorf("broadcasting: %w", err)
	}
	return prettyJSON(result), nil
}
