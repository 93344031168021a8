package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGuardianCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "guardian",
		Short: "Guardian gate commands",
	}

	cmd.AddCommand(newGuardianVerifyCmd())
	cmd.AddCommand(newGuardianLockoutCmd())
	cmd.AddCommand(newGuardianSetPINCmd())
	cmd.AddCommand(newGuardianCloseCmd())

	return cmd
}

func newGuardianVerifyCmd() *cobra.Command {
	var pin string

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify the guardian PIN and open a session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if pin == "" {
				return fmt.Errorf("--pin is required")
			}

			req := map[string]string{"pin": pin}
			var result VerifyResult

			if err := client.Post("/api/v1/guardian/verify", req, &result); err != nil {
				return err
			}

			// Save token so subsequent guarded commands work
			if err := cfg.SaveToken(result.GuardianToken); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&pin, "pin", "", "Four-digit PIN (required)")
	_ = cmd.MarkFlagRequired("pin")

	return cmd
}

func newGuardianLockoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lockout",
		Short: "Show the gate's lockout status",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result LockoutStatus

			if err := client.Get("/api/v1/guardian/lockout", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGuardianSetPINCmd() *cobra.Command {
	var newPIN, confirm string

	cmd := &cobra.Command{
		Use:   "set-pin",
		Short: "Change the guardian PIN (requires guardian session)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if newPIN == "" || confirm == "" {
				return fmt.Errorf("--new-pin and --confirm are required")
			}

			req := map[string]string{
				"new_pin":     newPIN,
				"confirm_pin": confirm,
			}

			if err := client.Put("/api/v1/guardian/pin", req, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("PIN updated")
			return nil
		},
	}

	cmd.Flags().StringVar(&newPIN, "new-pin", "", "New four-digit PIN (required)")
	cmd.Flags().StringVar(&confirm, "confirm", "", "Confirmation of the new PIN (required)")
	_ = cmd.MarkFlagRequired("new-pin")
	_ = cmd.MarkFlagRequired("confirm")

	return cmd
}

func newGuardianCloseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "close",
		Short: "Close the current guardian session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Post("/api/v1/guardian/close", nil, nil); err != nil {
				return err
			}

			if err := cfg.ClearToken(); err != nil {
				return fmt.Errorf("failed to clear token: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Guardian session closed")
			return nil
		},
	}
}
