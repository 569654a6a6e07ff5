package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/careerpath/advisor/internal/app"
	"github.com/careerpath/advisor/internal/deeplink"
	"github.com/careerpath/advisor/internal/llm"
	"github.com/careerpath/advisor/internal/recommend"
	"github.com/careerpath/advisor/internal/session"
)

// runApp opens storage, builds the session machine, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	rt, err := setup(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	link, _ := cmd.Flags().GetString("link")
	noSplash, _ := cmd.Flags().GetBool("no-splash")
	params, err := deeplink.Parse(link)
	if err != nil {
		rt.logger.Warn("ignoring malformed deep link parts", "link", link, "error", err)
	}

	machine := session.New(rt.profiles, params,
		session.WithLogger(rt.logger),
		session.WithValidator(rt.cfg.Login),
		session.WithHandoffBase(rt.cfg.HandoffBase),
	)

	url, err := app.Run(app.Options{
		Machine:     machine,
		Recommender: buildRecommender(cmd, rt),
		Validator:   rt.cfg.Login,
		HandoffBase: rt.cfg.HandoffBase,
		Timeout:     rt.cfg.LLM.Timeout,
		Splash:      !noSplash,
		Logger:      rt.logger,
	})
	if err != nil {
		return err
	}
	if url != "" {
		fmt.Fprintln(cmd.OutOrStdout(), "Continue with your skill assessment:")
		fmt.Fprintln(cmd.OutOrStdout(), "  "+url)
	}
	return nil
}

// buildRecommender returns an LLM-backed recommender with the built-in
// catalog as fallback, or the catalog alone when no provider is configured.
func buildRecommender(cmd *cobra.Command, rt *appEnv) recommend.Recommender {
	provider, err := llm.NewProvider(cmd.Context(), rt.cfg.LLM, rt.events(), rt.logger)
	switch {
	case errors.Is(err, llm.ErrDisabled):
		rt.logger.Info("no LLM provider configured, using built-in role catalog")
		return recommend.New(nil, recommend.DefaultConfig(), rt.logger)
	case err != nil:
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Recommendations will use the built-in role catalog.")
		return recommend.New(nil, recommend.DefaultConfig(), rt.logger)
	}
	rt.logger.Info("LLM provider ready", "provider", rt.cfg.LLM.Provider, "model", provider.ModelID())
	return recommend.New(provider, recommend.DefaultConfig(), rt.logger)
}
