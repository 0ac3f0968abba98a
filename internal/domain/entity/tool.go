package entity

type ToolName string

const (
	ToolListDrones      ToolName = "list_drones"
	ToolDroneStatus     ToolName = "get_drone_status"
	ToolNearbyEntities  ToolName = "get_nearby_entities"
	ToolSessionInfo     ToolName = "get_session_info"
	ToolTaskProgress    ToolName = "get_task_progress"
	ToolWeather         ToolName = "get_weather"
	ToolTargets         ToolName = "get_targets"
	ToolObstacles       ToolName = "get_obstacles"

	ToolTakeOff        ToolName = "take_off"
	ToolLand           ToolName = "land"
	ToolMoveTo         ToolName = "move_to"
	ToolMoveTowards    ToolName = "move_towards"
	ToolChangeAltitude ToolName = "change_altitude"
	ToolHover          ToolName = "hover"
	ToolRotate         ToolName = "rotate"
	ToolReturnHome     ToolName = "return_home"
	ToolSetHome        ToolName = "set_home"
	ToolCalibrate      ToolName = "calibrate"
	ToolCharge         ToolName = "charge"
	ToolTakePhoto      ToolName = "take_photo"

	ToolSendMessage ToolName = "send_message"
	ToolBroadcast   ToolName = "broadcast"

	ToolCheckPointCollision ToolName = "check_point_collision"
	ToolCheckPathCollision  ToolName = "check_path_collision"

	ToolAgentNavigator ToolName = "agent_navigator"
	ToolAgentRecon     ToolName = "agent_reconnaissance"
	ToolAgentSafety    ToolName = "agent_safety"
)

func (t ToolName) String() string {
	return string(t)
}
