// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gamebox-setup/internal/config"
	"gamebox-setup/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// Verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string

	// loadedConfig is the effective configuration, populated before any
	// command runs. Falls back to defaults when loading fails.
	loadedConfig = config.DefaultConfig()

	// rootCmd represents the base command. Running it without a subcommand
	// provisions the environment; that is the tool's whole job.
	rootCmd = &cobra.Command{
		Use:   "gamebox-setup",
		Short: "Provision the Gamebox Python environment",
		Long: TitleStyle.Render("gamebox-setup") + SubtitleStyle.Render(" - reproducible Gamebox environment provisioning") + `

gamebox-setup prepares everything the Gamebox servers need to run:
a Python interpreter meeting the minimum version (installed through
pyenv when the system has none), an isolated .venv environment, and
the dependencies pinned in requirements.txt.

Re-running is always safe: completed steps are detected and skipped,
and the dependency manifest is reapplied on every run.

` + SubtitleStyle.Render("Quick Start:") + `
  1. Run 'gamebox-setup' in the project checkout
  2. Follow the printed activation and launch commands

` + SubtitleStyle.Render("Examples:") + `
  gamebox-setup             Provision the environment
  gamebox-setup check       Inspect the host without changing it
  gamebox-setup init        Scaffold the pin file and manifest
  gamebox-setup config show Show current configuration`,
		RunE: runSetup,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/gamebox-setup/config.cue)")

	// Add subcommands
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newCompletionCommand())
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Use fang.Execute for enhanced Cobra styling
	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// initRootConfig reads in config file and ENV variables if set.
func initRootConfig() {
	// Set custom config file path if provided via --config flag
	if cfgFile != "" {
		config.SetConfigFilePathOverride(cfgFile)
	}

	cfg, err := config.Load()
	if err != nil {
		// Surface config problems but keep going on defaults; a broken
		// config file must not block provisioning.
		rendered, _ := issue.Get(issue.ConfigLoadFailedId).Render(issueStyle())
		fmt.Fprint(os.Stderr, rendered)
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
		return
	}

	loadedConfig = cfg

	// Apply verbose from config if not set via flag
	if !verbose {
		verbose = cfg.UI.Verbose
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// issueStyle maps the configured color scheme onto a glamour style name.
func issueStyle() string {
	if loadedConfig != nil && loadedConfig.UI.ColorScheme == config.ColorSchemeLight {
		return "light"
	}
	return "dark"
}

// GetVerbose returns the verbose flag value
func GetVerbose() bool {
	return verbose
}
