package model

// RunID uniquely identifies one play-through, charged against the daily budget
type RunID string

// RunState represents the phase of an arcade run
type RunState string

const (
	RunStateReady      RunState = "ready"      // no run active, waiting for start
	RunStateRunning    RunState = "running"    // simulation ticking
	RunStateTerminated RunState = "terminated" // collision reached, score reported
)

// ObstacleKind distinguishes ground obstacles from flying ones
type ObstacleKind string

const (
	ObstacleCactus ObstacleKind = "cactus" // grows up from the ground
	ObstacleBird   ObstacleKind = "bird"   // occupies a fixed band above the ground
)

// Obstacle is one scrolling hazard in the playfield
type Obstacle struct {
	X      float64      `json:"x"`
	Width  float64      `json:"width"`
	Height float64      `json:"height"`
	Kind   ObstacleKind `json:"kind"`
}

// RunTicket is issued when an attempt is consumed at run start
type RunTicket struct {
	RunID   RunID
	Profile *PlayerProfile
}

// FrameSnapshot describes one frame of a run for an external renderer.
// Any renderer that reproduces these relative positions is sufficient;
// pixel-level drawing is out of scope here.
type FrameSnapshot struct {
	State     RunState   `json:"state"`
	DinoY     float64    `json:"dino_y"`
	DinoVel   float64    `json:"dino_velocity"`
	Obstacles []Obstacle `json:"obstacles"`
	Score     int        `json:"score"` // floored display score
	HighScore int        `json:"high_score"`
}
