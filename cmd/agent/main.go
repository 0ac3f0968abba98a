package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	rcron "github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"uav-agent/internal/di"
	"uav-agent/internal/domain/entity"
	"uav-agent/internal/infrastructure/env"
)

var rootCmd = &cobra.Command{
	Use:   "uav-agent",
	Short: "uav-agent - natural language drone control",
	Long:  "Controls a fleet of simulated drones through natural language commands interpreted by an LLM.",
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the single agent (one command or interactive mode)",
	RunE:  runSingle,
}

var multiCmd = &cobra.Command{
	Use:   "multi",
	Short: "Run a command through the multi-agent coordinator",
	RunE:  runMulti,
}

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate and validate an execution plan without flying",
	RunE:  runPlan,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current session, progress and drone roster",
	RunE:  runStatus,
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run a periodic safety sweep (battery, weather, collisions)",
	RunE:  runWatch,
}

var (
	commandFlag  string
	executeFlag  bool
	scheduleFlag string
	sessionFlag  string
	targetsFlag  bool
	waypointFlag bool
	obstacleFlag bool
)

func init() {
	runCmd.Flags().StringVarP(&commandFlag, "command", "c", "", "Single command to execute")
	multiCmd.Flags().StringVarP(&commandFlag, "command", "c", "", "Command to decompose and delegate")
	planCmd.Flags().StringVarP(&commandFlag, "command", "c", "", "Command to plan for")
	planCmd.Flags().BoolVar(&executeFlag, "execute", false, "Execute the validated plan and print the report")
	watchCmd.Flags().StringVar(&scheduleFlag, "schedule", "@every 5m", "Sweep schedule (cron expression or @every duration)")
	statusCmd.Flags().StringVar(&sessionFlag, "session", "", "Show raw data for a specific session ID")
	statusCmd.Flags().BoolVar(&targetsFlag, "targets", false, "Show raw target list")
	statusCmd.Flags().BoolVar(&waypointFlag, "waypoints", false, "Show raw waypoint list")
	statusCmd.Flags().BoolVar(&obstacleFlag, "obstacles", false, "Show raw obstacle list")
	rootCmd.AddCommand(runCmd, multiCmd, planCmd, statusCmd, watchCmd)
}

func main() {
	env.NewEnvService()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newContainer(taskName string) (*di.Container, error) {
	return di.NewContainer(di.Config{TaskName: taskName})
}

func runSingle(cmd *cobra.Command, args []string) error {
	c, err := newContainer("single-agent")
	if err != nil {
		return err
	}
	defer c.Close()

	ctx := cmd.Context()

	if commandFlag != "" {
		result := c.SingleAgent.Execute(ctx, commandFlag)
		fmt.Println(result.Output)
		if !result.Success {
			os.Exit(1)
		}
		return nil
	}

	return runInteractive(ctx, c)
}

func runInteractive(ctx context.Context, c *di.Container) error {
	fmt.Println("UAV Control Agent - Interactive Mode")
	fmt.Println("Type 'quit', 'exit' or 'q' to stop")
	fmt.Println("Type 'status' to see the session summary")
	fmt.Println()
	fmt.Println(c.SingleAgent.SessionSummary(ctx))

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("\nCommand: ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		switch strings.ToLower(input) {
		case "quit", "exit", "q":
			fmt.Println("Goodbye!")
			return nil
		case "status":
			fmt.Println(c.SingleAgent.SessionSummary(ctx))
			continue
		}

		result := c.SingleAgent.Execute(ctx, input)
		fmt.Println(result.Output)
	}
	return scanner.Err()
}

func runMulti(cmd *cobra.Command, args []string) error {
	if commandFlag == "" {
		return fmt.Errorf("--command is required")
	}

	c, err := newContainer("multi-agent")
	if err != nil {
		return err
	}
	defer c.Close()

	result := c.MultiAgent.Execute(cmd.Context(), commandFlag)
	fmt.Println(result.Output)
	if !result.Success {
		os.Exit(1)
	}
	return nil
}

func runPlan(cmd *cobra.Command, args []string) error {
	if commandFlag == "" {
		return fmt.Errorf("--command is required")
	}

	c, err := newContainer("planner")
	if err != nil {
		return err
	}
	defer c.Close()

	ctx := cmd.Context()

	plan := c.Planner.Plan(ctx, commandFlag)
	if plan.Status == entity.PlanFailed {
		return fmt.Errorf("planning failed: %s", plan.Rationale)
	}

	validated := c.Validator.ValidateAndFix(ctx, plan)
	if err := printJSON(validated); err != nil {
		return err
	}

	if !executeFlag {
		return nil
	}
	if !validated.IsValid {
		return fmt.Errorf("refusing to execute an invalid plan")
	}

	report := c.Runner.Execute(ctx, validated)
	return printJSON(report)
}

func runStatus(cmd *cobra.Command, args []string) error {
	c, err := newContainer("status")
	if err != nil {
		return err
	}
	defer c.Close()

	ctx := cmd.Context()

	if sessionFlag != "" {
		raw, err := c.UAV.SessionData(ctx, sessionFlag)
		if err != nil {
			return err
		}
		return printRaw(raw)
	}

	switch {
	case targetsFlag:
		raw, err := c.UAV.Targets(ctx)
		if err != nil {
			return err
		}
		return printRaw(raw)
	case waypointFlag:
		raw, err := c.UAV.Waypoints(ctx)
		if err != nil {
			return err
		}
		return printRaw(raw)
	case obstacleFlag:
		raw, err := c.UAV.Obstacles(ctx)
		if err != nil {
			return err
		}
		return printRaw(raw)
	}

	fmt.Println(c.SingleAgent.SessionSummary(ctx))
	return nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	c, err := newContainer("safety-watch")
	if err != nil {
		return err
	}
	defer c.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sweep := func() {
		result := c.MultiAgent.Execute(ctx,
			"check battery levels and weather conditions for all drones")
		fmt.Println(result.Output)
	}

	scheduler := rcron.New()
	if _, err := scheduler.AddFunc(scheduleFlag, sweep); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", scheduleFlag, err)
	}

	fmt.Printf("Safety sweep scheduled (%s), Ctrl-C to stop\n", scheduleFlag)
	sweep()
	scheduler.Start()

	<-ctx.Done()
	sweepCtx := scheduler.Stop()
	<-sweepCtx.Done()
	return nil
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func printRaw(raw json.RawMessage) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		fmt.Println(string(raw))
		return nil
	}
	fmt.Println(buf.String())
	return nil
}
