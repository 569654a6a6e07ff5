package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/careerpath/advisor/internal/session"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the saved profile and where the app would start",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := setup(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		m := session.New(rt.profiles, nil, session.WithLogger(rt.logger))
		out := cmd.OutOrStdout()

		id, ok := m.Identity()
		if !ok {
			fmt.Fprintln(out, "Not signed in.")
			fmt.Fprintf(out, "Start:     %s\n", m.Step())
			return nil
		}

		fmt.Fprintf(out, "Name:      %s\n", id.DisplayName)
		fmt.Fprintf(out, "Email:     %s\n", id.Email)
		if o, ok := m.Onboarding(); ok {
			fmt.Fprintf(out, "Language:  %s\n", o.Language)
			fmt.Fprintf(out, "Region:    %s\n", o.Region)
			if goal, ok := o.GoalText(); ok {
				fmt.Fprintf(out, "Goal:      %s\n", goal)
			} else {
				fmt.Fprintln(out, "Goal:      (none yet)")
			}
		} else {
			fmt.Fprintln(out, "Onboarding: not completed")
		}
		fmt.Fprintf(out, "Quiz:      %d answers saved\n", len(m.Answers()))
		fmt.Fprintf(out, "Start:     %s\n", m.Step())
		return nil
	},
}
