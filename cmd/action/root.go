package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	dryRun          bool
	configPath      string
	githubTokenFlag string
)

var rootCmd = &cobra.Command{
	Use:   "reviewbuddy",
	Short: "ReviewBuddy posts automated reviews on GitHub pull requests.",
	Long: `ReviewBuddy reviews a GitHub pull request and posts the result as a single
comment: static analysis findings from the configured linters merged with an
AI-generated summary and suggestions.

Designed to run inside a GitHub Actions workflow, where the pull request is
resolved from the event payload:

  reviewbuddy
  reviewbuddy --dry-run`,
	SilenceUsage: true,
	RunE:         runReview,
}

func init() { //nolint:gochecknoinits // Cobra command registration
	cobra.OnInitialize(initConfig)

	rootCmd.Flags().StringVarP(&githubTokenFlag, "github-token", "t", "", "GitHub token (defaults to GITHUB_TOKEN)")
	rootCmd.Flags().StringVar(&configPath, "config-path", ".reviewbuddy.yml", "path to the review settings file inside the repository")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "render the review to stdout instead of posting it")

	if err := viper.BindPFlag("GITHUB_TOKEN", rootCmd.Flags().Lookup("github-token")); err != nil {
		slog.Error("error binding flag", "error", err)
		os.Exit(1)
	}
	if err := viper.BindPFlag("REPO_CONFIG_PATH", rootCmd.Flags().Lookup("config-path")); err != nil {
		slog.Error("error binding flag", "error", err)
		os.Exit(1)
	}
}

// initConfig reads ENV variables if set.
func initConfig() {
	viper.AutomaticEnv()
}
