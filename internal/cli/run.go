package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run bookkeeping commands",
	}

	cmd.AddCommand(newRunStartCmd())
	cmd.AddCommand(newRunScoreCmd())

	return cmd
}

func newRunStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start <player>",
		Short: "Consume one daily play and start a run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result BeginRunResult

			if err := client.Post("/api/v1/players/"+args[0]+"/runs", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newRunScoreCmd() *cobra.Command {
	var runID string
	var score int

	cmd := &cobra.Command{
		Use:   "score <player>",
		Short: "Report a finished run's score",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if score < 0 {
				return fmt.Errorf("--score must be non-negative")
			}

			req := map[string]any{"score": score}
			if runID != "" {
				req["run_id"] = runID
			}

			var result Profile
			if err := client.Post("/api/v1/players/"+args[0]+"/scores", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&score, "score", 0, "Final score (required)")
	cmd.Flags().StringVar(&runID, "run-id", "", "Run ID from 'run start'")
	_ = cmd.MarkFlagRequired("score")

	return cmd
}
