package engine

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/dadportal/dinojump-go/internal/dependencies/clock"
	"github.com/dadportal/dinojump-go/internal/dependencies/random"
	"github.com/dadportal/dinojump-go/internal/model"
	"github.com/dadportal/dinojump-go/internal/services/ledger"
)

// Engine runs one player's arcade sessions: a gravity-driven jump over
// horizontally scrolling obstacles, with axis-aligned hitbox collision and
// per-tick score accrual. The engine owns all run state; the host drives it
// by calling Tick once per display frame and Jump on input events.
type Engine struct {
	ledger *ledger.Service
	clock  clock.Clock
	random random.Random
	logger *slog.Logger

	playerID model.PlayerID

	state     model.RunState
	runID     model.RunID
	tuning    Tuning
	dinoY     float64
	dinoVel   float64
	obstacles []model.Obstacle
	lastSpawn time.Time
	score     float64
	highScore int
}

// New creates an engine for the given player, in the Ready state
func New(ledgerService *ledger.Service, clk clock.Clock, rnd random.Random, playerID model.PlayerID, logger *slog.Logger) *Engine {
	return &Engine{
		ledger:   ledgerService,
		clock:    clk,
		random:   rnd,
		logger:   logger,
		playerID: playerID,
		state:    model.RunStateReady,
		dinoY:    GroundY,
	}
}

// State returns the current run state
func (e *Engine) State() model.RunState {
	return e.state
}

// Score returns the floored display score of the current or last run
func (e *Engine) Score() int {
	return int(math.Floor(e.score))
}

// Start begins a new run, consuming one attempt from the ledger. Allowed
// from Ready or Terminated. Returns model.ErrDailyLimitReached without
// changing state when the budget is exhausted; the caller surfaces that as
// a disabled action, not a failure.
func (e *Engine) Start(ctx context.Context) error {
	if e.state == model.RunStateRunning {
		return nil
	}

	ticket, err := e.ledger.BeginRun(ctx, e.playerID)
	if err != nil {
		return err
	}

	// Difficulty is read once here and fixed for the whole run; a settings
	// change takes effect on the next run.
	e.tuning = TuningFor(ticket.Profile.Difficulty)
	e.highScore = ticket.Profile.HighScore
	e.runID = ticket.RunID

	e.dinoY = GroundY
	e.dinoVel = 0
	e.obstacles = nil
	e.lastSpawn = e.clock.Now()
	e.score = 0
	e.state = model.RunStateRunning

	return nil
}

// Jump applies the jump impulse. Keyboard, pointer and touch all arrive
// here as the same signal. Ignored unless the dino is on (or within an
// epsilon of) the ground, which rules out mid-air double jumps.
func (e *Engine) Jump() {
	if e.state != model.RunStateRunning {
		return
	}
	if e.dinoY >= GroundY-groundEpsilon {
		e.dinoVel = JumpImpulse
	}
}

// Tick advances the simulation by one frame. Order matters: physics, then
// spawn, then advance, then collision, then score — collision must see this
// tick's post-advance obstacle positions against this tick's dino position.
// On the terminating tick the final score is reported to the ledger once.
func (e *Engine) Tick(ctx context.Context) error {
	if e.state != model.RunStateRunning {
		return nil
	}

	// Velocity integration and ground clamp. The ground is the only floor
	// collision; there is no ceiling.
	e.dinoY += e.dinoVel
	e.dinoVel += Gravity
	if e.dinoY >= GroundY {
		e.dinoY = GroundY
		e.dinoVel = 0
	}

	e.spawnObstacles()
	e.advanceObstacles()

	if e.collided() {
		return e.terminate(ctx)
	}

	e.score += ScorePerTick
	return nil
}

// spawnObstacles appends a new obstacle at the right edge once the
// difficulty's spawn interval has elapsed
func (e *Engine) spawnObstacles() {
	now := e.clock.Now()
	if now.Sub(e.lastSpawn) <= e.tuning.SpawnInterval {
		return
	}

	isBird := e.random.Float64() > 0.7 && e.score > birdScoreThreshold

	obstacle := model.Obstacle{X: GameWidth}
	if isBird {
		obstacle.Kind = model.ObstacleBird
		obstacle.Width = birdWidth
		obstacle.Height = birdHeight
	} else {
		obstacle.Kind = model.ObstacleCactus
		obstacle.Width = 20 + e.random.Float64()*20
		obstacle.Height = 35 + e.random.Float64()*20
	}

	e.obstacles = append(e.obstacles, obstacle)
	e.lastSpawn = now
}

// advanceObstacles scrolls every obstacle left and culls the ones that are
// fully off screen
func (e *Engine) advanceObstacles() {
	kept := e.obstacles[:0]
	for _, o := range e.obstacles {
		o.X -= e.tuning.Speed
		if o.X > despawnX {
			kept = append(kept, o)
		}
	}
	e.obstacles = kept
}

// collided tests the dino hitbox against every obstacle hitbox. The dino
// box is inset from the sprite bounds to be forgiving.
func (e *Engine) collided() bool {
	dinoLeft := DinoX
	dinoRight := DinoX + DinoWidth - 10
	dinoTop := e.dinoY - DinoHeight + 10
	dinoBottom := e.dinoY

	for _, o := range e.obstacles {
		var obsTop, obsBottom float64
		if o.Kind == model.ObstacleBird {
			obsTop = birdTop
			obsBottom = birdBottom
		} else {
			obsTop = GroundY - o.Height
			obsBottom = GroundY
		}

		if dinoRight > o.X && dinoLeft < o.X+o.Width &&
			dinoBottom > obsTop && dinoTop < obsBottom {
			return true
		}
	}
	return false
}

// terminate ends the run on collision and reports the final score. One hit
// ends the run; there is no partial damage.
func (e *Engine) terminate(ctx context.Context) error {
	e.state = model.RunStateTerminated
	finalScore := e.Score()

	profile, err := e.ledger.RecordScore(ctx, e.playerID, finalScore)
	if err != nil {
		return err
	}
	e.highScore = profile.HighScore

	e.logger.Info("run ended",
		slog.String("player", string(e.playerID)),
		slog.String("run_id", string(e.runID)),
		slog.Int("score", finalScore),
		slog.Int("high_score", e.highScore),
	)

	return nil
}

// Snapshot returns the frame description an external renderer redraws from
func (e *Engine) Snapshot() model.FrameSnapshot {
	obstacles := make([]model.Obstacle, len(e.obstacles))
	copy(obstacles, e.obstacles)

	return model.FrameSnapshot{
		State:     e.state,
		DinoY:     e.dinoY,
		DinoVel:   e.dinoVel,
		Obstacles: obstacles,
		Score:     e.Score(),
		HighScore: e.highScore,
	}
}
