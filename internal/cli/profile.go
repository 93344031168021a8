package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Player profile commands",
	}

	cmd.AddCommand(newProfileGetCmd())
	cmd.AddCommand(newProfileSettingsCmd())
	cmd.AddCommand(newProfileResetCmd())

	return cmd
}

func newProfileGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <player>",
		Short: "Show a player's profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Profile

			if err := client.Get("/api/v1/players/"+args[0]+"/profile", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newProfileSettingsCmd() *cobra.Command {
	var dailyLimit int
	var difficulty string

	cmd := &cobra.Command{
		Use:   "settings <player>",
		Short: "Update a player's settings (requires guardian session)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{}
			if cmd.Flags().Changed("daily-limit") {
				req["daily_limit"] = dailyLimit
			}
			if cmd.Flags().Changed("difficulty") {
				req["difficulty"] = difficulty
			}
			if len(req) == 0 {
				return fmt.Errorf("at least one of --daily-limit or --difficulty is required")
			}

			var result Profile
			if err := client.Patch("/api/v1/players/"+args[0]+"/settings", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&dailyLimit, "daily-limit", 0, "Plays allowed per day")
	cmd.Flags().StringVar(&difficulty, "difficulty", "", "Difficulty: easy, medium, hard")

	return cmd
}

func newProfileResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset-attempts <player>",
		Short: "Reset today's attempt counter (requires guardian session)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Profile

			if err := client.Post("/api/v1/players/"+args[0]+"/attempts/reset", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
