package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/careerpath/advisor/internal/deeplink"
	"github.com/careerpath/advisor/internal/session"
)

var linkCmd = &cobra.Command{
	Use:   "link <query>",
	Short: "Show how a deep link would be resolved for the saved profile",
	Example: "  advisor link 'deepDive=true&roleId=data-analyst&roleName=Data%20Analyst&roleRank=2'\n" +
		"  advisor link 'https://example.com/app?skipOnboarding=true'",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		params, err := deeplink.Parse(args[0])
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "warning:", err)
		}

		rt, err := setup(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		m := session.New(rt.profiles, params, session.WithLogger(rt.logger))
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Signed in: %v\n", m.Authenticated())
		fmt.Fprintf(out, "Intent:    %s\n", m.Intent())
		fmt.Fprintf(out, "Start:     %s\n", m.Step())
		if r := m.Role(); r.Valid() {
			fmt.Fprintf(out, "Role:      %s (%s), rank %d\n", r.Name, r.ID, r.Rank)
		}
		return nil
	},
}
