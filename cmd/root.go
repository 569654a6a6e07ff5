package cmd

import (
	"github.com/spf13/cobra"

	"github.com/careerpath/advisor/internal/config"
)

// v holds flag, env and config file settings for every command.
var v = config.New()

var rootCmd = &cobra.Command{
	Use:   "advisor",
	Short: "Find a career that fits you",
	Long: "advisor walks you through a short profile and a psychology quiz, suggests\n" +
		"career roles that fit, and hands off to a skill assessment for the role you pick.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to a config file (default: advisor.yaml in the user config dir or working dir)")
	pf.String("db", "", "Path to SQLite database file (overrides ADVISOR_DB env var)")
	pf.Bool("ephemeral", false, "Keep the profile in memory only; nothing is saved")
	pf.String("log-level", "info", "Log level: debug, info, warn, error")
	pf.String("log-format", "text", "Log format: text or json")
	pf.String("log-file", "", "Log file path (default: advisor.log in the data dir)")

	mustBind(config.KeyDB, pf.Lookup("db"))
	mustBind(config.KeyEphemeral, pf.Lookup("ephemeral"))
	mustBind(config.KeyLogLevel, pf.Lookup("log-level"))
	mustBind(config.KeyLogFormat, pf.Lookup("log-format"))
	mustBind(config.KeyLogFile, pf.Lookup("log-file"))

	rootCmd.Flags().Bool("no-splash", false, "Skip the welcome animation")
	rootCmd.Flags().String("link", "", "Deep link to open, e.g. 'deepDive=true&roleId=data-analyst&roleName=Data Analyst'")

	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(linkCmd)
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}
