// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gamebox-setup/internal/host"
	"gamebox-setup/internal/issue"
	"gamebox-setup/internal/pip"
	"gamebox-setup/internal/provision"
	"gamebox-setup/internal/pyenv"
	"gamebox-setup/internal/venv"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// runSetup is the root command handler: it runs the provisioning workflow
// in the current directory. Progress and diagnostics go to stderr; only
// the final launch instructions go to stdout.
func runSetup(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	orch := provision.New(
		provision.Options{
			Dir:            ".",
			PostSetupHooks: loadedConfig.Hooks.PostSetup,
		},
		provision.DefaultServices(host.NewExecHost(), logger, os.Stderr),
		logger,
	)

	report, err := orch.Run(cmd.Context())
	if err != nil {
		if id := issueForError(err); id != 0 {
			if rendered, renderErr := issue.Get(id).Render(issueStyle()); renderErr == nil {
				fmt.Fprint(os.Stderr, rendered)
			}
		}
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Setup failed: ")+formatErrorForDisplay(err, verbose))
		return &ExitError{Code: 1, Err: err}
	}

	printReport(report)
	return nil
}

// printReport writes the success summary and launch instructions to stdout.
func printReport(report *provision.Report) {
	fmt.Printf("%s Environment ready\n", SuccessStyle.Render("✓"))
	fmt.Println()
	fmt.Printf("%s: %s (%s)\n", CmdStyle.Render("Python"), report.Runtime.Version, report.Runtime.Origin)
	env := report.EnvPath
	if !report.EnvCreated {
		env += " " + SubtitleStyle.Render("(existing, dependencies reapplied)")
	}
	fmt.Printf("%s: %s\n", CmdStyle.Render("Environment"), env)
	fmt.Printf("%s: %d from %s\n", CmdStyle.Render("Dependencies"), report.Dependencies, provision.ManifestName)
	fmt.Println()
	fmt.Println(SubtitleStyle.Render("Next steps:"))
	for i, instruction := range report.Instructions() {
		fmt.Printf("  %d. %s\n", i+1, CmdStyle.Render(instruction))
	}
}

// issueForError maps a workflow error onto its remediation card. Zero
// means no card applies and the plain error is all there is to show.
func issueForError(err error) issue.Id {
	switch {
	case errors.Is(err, provision.ErrPinFileInvalid):
		return issue.PinFileInvalidId
	case errors.Is(err, pyenv.ErrToolMissing):
		return issue.VersionManagerMissingId
	case errors.Is(err, pyenv.ErrInstallFailed):
		return issue.RuntimeInstallFailedId
	case errors.Is(err, venv.ErrCreateFailed):
		return issue.EnvironmentCreateFailedId
	case errors.Is(err, pip.ErrInstallFailed):
		return issue.DependencyInstallFailedId
	case errors.Is(err, fs.ErrNotExist):
		// The manifest is the only input read after the pin file check.
		return issue.ManifestMissingId
	default:
		return 0
	}
}

// newLogger builds the stderr logger commands share. Debug level requires
// --verbose (or ui.verbose in the config file).
func newLogger() *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
		Level:           level,
	})
}
