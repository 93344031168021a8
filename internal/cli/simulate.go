package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/dadportal/dinojump-go/internal/factory"
	"github.com/dadportal/dinojump-go/internal/model"
	"github.com/dadportal/dinojump-go/internal/services/engine"
	"github.com/dadportal/dinojump-go/internal/services/ledger"
)

func newSimulateCmd() *cobra.Command {
	var difficulty string
	var maxTicks int
	var frameMillis int

	cmd := &cobra.Command{
		Use:   "simulate <player>",
		Short: "Run a headless game locally with an auto-jumping player",
		Long: `simulate runs the arcade engine in-process against in-memory storage,
with a simple reflex player that jumps whenever an obstacle gets close.
Useful for eyeballing difficulty tuning without a browser.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d := model.Difficulty(difficulty)
			if !d.IsValid() {
				return model.ErrInvalidDifficulty
			}

			app, err := factory.New(factory.Config{
				LedgerConfig: ledger.Config{
					FallbackDefaults: ledger.Defaults{
						DailyLimit: 1,
						Difficulty: d,
					},
				},
			})
			if err != nil {
				return err
			}

			playerID := model.PlayerID(args[0])
			eng := app.NewEngine(playerID)

			ctx := cmd.Context()
			if err := eng.Start(ctx); err != nil {
				return err
			}

			ticker := time.NewTicker(time.Duration(frameMillis) * time.Millisecond)
			defer ticker.Stop()

			ticks := 0
			jumps := 0
			for eng.State() == model.RunStateRunning && ticks < maxTicks {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-ticker.C:
				}

				snap := eng.Snapshot()
				if shouldJump(snap) {
					eng.Jump()
					jumps++
				}

				if err := eng.Tick(ctx); err != nil {
					return err
				}
				ticks++
			}

			final := eng.Snapshot()
			out := NewOutput(cfg.Output)
			out.Print(SimulationResult{
				PlayerID:   string(playerID),
				Difficulty: difficulty,
				Ticks:      ticks,
				Score:      final.Score,
				HighScore:  final.HighScore,
				Jumps:      jumps,
			})
			return nil
		},
	}

	cmd.Flags().StringVar(&difficulty, "difficulty", "easy", "Difficulty: easy, medium, hard")
	cmd.Flags().IntVar(&maxTicks, "max-ticks", 100000, "Stop after this many frames")
	cmd.Flags().IntVar(&frameMillis, "frame-ms", 16, "Milliseconds per frame")

	return cmd
}

// shouldJump is the reflex heuristic: jump while grounded and the
// nearest obstacle is inside the reaction window ahead of the dino.
func shouldJump(snap model.FrameSnapshot) bool {
	if snap.DinoY < engine.GroundY {
		return false
	}
	for _, ob := range snap.Obstacles {
		if ob.X > engine.DinoX && ob.X < engine.DinoX+70 {
			return true
		}
	}
	return false
}
