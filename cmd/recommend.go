package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/careerpath/advisor/internal/handoff"
	"github.com/careerpath/advisor/internal/quiz"
	"github.com/careerpath/advisor/internal/recommend"
	"github.com/careerpath/advisor/internal/session"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Print role recommendations for the saved quiz answers",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := setup(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		m := session.New(rt.profiles, nil, session.WithLogger(rt.logger))
		if !m.Authenticated() {
			return errors.New("not signed in; run advisor to create a profile first")
		}
		answers := m.Answers()
		if len(answers) == 0 {
			return errors.New("no saved quiz answers; take the quiz in the app first")
		}

		o, hasOnboarding := m.Onboarding()
		in := recommend.Input{
			Answers:       answers,
			Questions:     quiz.Questions(),
			Onboarding:    o,
			HasOnboarding: hasOnboarding,
		}

		timeout, _ := cmd.Flags().GetDuration("timeout")
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		recs, err := buildRecommender(cmd, rt).Recommend(ctx, in)
		if err != nil {
			return fmt.Errorf("recommend: %w", err)
		}

		out := cmd.OutOrStdout()
		for _, r := range recs {
			fmt.Fprintf(out, "%d. %s (%s)\n", r.Rank, r.RoleName, r.RoleID)
			if r.Summary != "" {
				fmt.Fprintf(out, "   %s\n", r.Summary)
			}
			fmt.Fprintf(out, "   %s\n", handoff.URL(rt.cfg.HandoffBase, r.Selection()))
		}
		return nil
	},
}

func init() {
	recommendCmd.Flags().Duration("timeout", time.Minute, "Maximum time to wait for recommendations")
}
