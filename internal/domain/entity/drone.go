package entity

// Position is a point in the session coordinate space, meters.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// DroneSummary carries the fields the agent needs when picking a drone
// out of a /drones listing. The full payload is passed through untouched.
type DroneSummary struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Status  string   `json:"status"`
	Battery float64  `json:"battery_level"`
	Pos     Position `json:"position"`
}
