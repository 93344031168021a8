package engine

import (
	"time"

	"github.com/dadportal/dinojump-go/internal/model"
)

// Playfield geometry. Positions are in the same units the browser client
// draws with, so a renderer on either side of the API agrees on hitboxes.
const (
	GameWidth  = 600.0
	GameHeight = 250.0
	GroundY    = 200.0
	DinoWidth  = 44.0
	DinoHeight = 47.0
	DinoX      = 50.0

	Gravity     = 0.8
	JumpImpulse = -15.0

	// ScorePerTick accrues while running; display score is the floor
	ScorePerTick = 0.1

	// Jumping is only allowed within this distance of the ground
	groundEpsilon = 1.0

	// Obstacles are dropped once fully past the left edge
	despawnX = -50.0

	// Birds only appear once the score clears this, to ease early runs
	birdScoreThreshold = 5.0

	// Bird hitbox band above the ground
	birdTop    = GroundY - 60
	birdBottom = GroundY - 30
	birdWidth  = 40.0
	birdHeight = 30.0
)

// Tuning is the difficulty-determined speed and spawn-rate pair
type Tuning struct {
	Speed         float64       // horizontal units per tick
	SpawnInterval time.Duration // minimum wall-clock gap between spawns
}

var tunings = map[model.Difficulty]Tuning{
	model.DifficultyEasy:   {Speed: 4, SpawnInterval: 2000 * time.Millisecond},
	model.DifficultyMedium: {Speed: 6, SpawnInterval: 1500 * time.Millisecond},
	model.DifficultyHard:   {Speed: 8, SpawnInterval: 1000 * time.Millisecond},
}

// TuningFor returns the tuning for a difficulty, falling back to easy for
// anything unrecognized
func TuningFor(d model.Difficulty) Tuning {
	if t, ok := tunings[d]; ok {
		return t
	}
	return tunings[model.DifficultyEasy]
}
