package userinteraction

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"uav-agent/internal/application/port/output"
)

var _ output.UserInteractionPort = (*ConsoleUserInteraction)(nil)

type ConsoleUserInteraction struct {
	reader *bufio.Reader
}

func NewConsoleUserInteraction() *ConsoleUserInteraction {
	return &ConsoleUserInteraction{
		reader: bufio.NewReader(os.Stdin),
	}
}

func (u *ConsoleUserInteraction) AskQuestion(ctx context.Context, question string) (string, error) {
	fmt.Printf("\n[OPERATOR INPUT REQUIRED] %s\n> ", question)

	answer, err := u.reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read operator input: %w", err)
	}

	return strings.TrimSpace(answer), nil
}

func (u *ConsoleUserInteraction) ShowIteration(ctx context.Context, iteration, maxIterations int) {
	cyan := color.New(color.FgCyan, color.Bold)
	cyan.Printf("\n━━━ Iteration %d/%d ━━━\n", iteration, maxIterations)
}

func (u *ConsoleUserInteraction) ShowThinking(ctx context.Context, content string) {
	if content == "" {
		return
	}

	blue := color.New(color.FgBlue)
	blue.Print("\nThinking: ")

	dim := color.New(color.Faint)
	dim.Println(truncate(content, 500))
}

func (u *ConsoleUserInteraction) ShowToolStart(ctx context.Context, toolName, arguments string) {
	yellow := color.New(color.FgYellow, color.Bold)
	yellow.Printf("\n▶ %s\n", displayName(toolName))

	summary := formatToolArguments(toolName, arguments)
	if summary != "" {
		dim := color.New(color.Faint)
		dim.Printf("   %s\n", summary)
	}
}

func (u *ConsoleUserInteraction) ShowToolResult(ctx context.Context, toolName, result string, isError bool) {
	if isError {
		red := color.New(color.FgRed)
		red.Print("✗ ")

		dim := color.New(color.Faint)
		dim.Println(truncate(result, 300))
		return
	}

	green := color.New(color.FgGreen)
	green.Printf("✓ %s\n", truncate(firstLine(result), 120))
}

func displayName(toolName string) string {
	names := map[string]string{
		"list_drones":           "List drones",
		"get_drone_status":      "Drone status",
		"get_nearby_entities":   "Nearby entities",
		"get_session_info":      "Session info",
		"get_task_progress":     "Task progress",
		"get_weather":           "Weather",
		"get_targets":           "Targets",
		"get_obstacles":         "Obstacles",
		"take_off":              "Take off",
		"land":                  "Land",
		"move_to":               "Move to",
		"move_towards":          "Move towards",
		"change_altitude":       "Change altitude",
		"hover":                 "Hover",
		"rotate":                "Rotate",
		"return_home":           "Return home",
		"set_home":              "Set home",
		"calibrate":             "Calibrate",
		"charge":                "Charge",
		"take_photo":            "Take photo",
		"send_message":          "Send message",
		"broadcast":             "Broadcast",
		"check_point_collision": "Point collision check",
		"check_path_collision":  "Path collision check",
		"agent_navigator":       "Delegate: navigator",
		"agent_reconnaissance":  "Delegate: reconnaissance",
		"agent_safety":          "Delegate: safety",
	}

	if name, ok := names[toolName]; ok {
		return name
	}
	return toolName
}

func formatToolArguments(toolName, arguments string) string {
	var args map[string]interface{}
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		return ""
	}

	switch toolName {
	case "move_to":
		return fmt.Sprintf("drone=%v → (%v, %v, %v)", args["drone_id"], args["x"], args["y"], args["z"])
	case "take_off":
		if alt, ok := args["altitude"]; ok {
			return fmt.Sprintf("drone=%v altitude=%v", args["drone_id"], alt)
		}
		return fmt.Sprintf("drone=%v", args["drone_id"])
	case "send_message":
		return fmt.Sprintf("%v → %v: %v", args["drone_id"], args["target_drone_id"], truncate(fmt.Sprint(args["message"]), 60))
	case "agent_navigator", "agent_reconnaissance", "agent_safety":
		return truncate(fmt.Sprint(args["task"]), 80)
	}

	if id, ok := args["drone_id"]; ok {
		return fmt.Sprintf("drone=%v", id)
	}
	return truncate(arguments, 80)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx]
	}
	return s
}
