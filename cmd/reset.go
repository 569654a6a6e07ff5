package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Sign out and clear the saved profile",
	Long:  "Removes the stored identity, onboarding answers and quiz answers, exactly like logging out from the app.",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := setup(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		if err := rt.profiles.Clear(); err != nil {
			return fmt.Errorf("saved profile not cleared: %w", err)
		}
		rt.logger.Info("profile cleared from command line", "storage", rt.storage)
		fmt.Fprintf(cmd.OutOrStdout(), "Signed out. Cleared saved profile from %s.\n", rt.storage)
		return nil
	},
}
