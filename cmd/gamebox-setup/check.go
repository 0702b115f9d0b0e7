// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"

	"gamebox-setup/internal/host"
	"gamebox-setup/internal/pip"
	"gamebox-setup/internal/provision"
	"gamebox-setup/internal/pyruntime"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// checkCmd reports what a provisioning run would find on this host.
// Strictly read-only: it probes and prints, nothing more.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Inspect the host and project without changing anything",
	Long: `Inspect the host and project checkout the way a provisioning run would,
and report what was found. Nothing is installed, created, or modified.`,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	h := host.NewExecHost()
	// Probing diagnostics are noise here; the report lines below are the output.
	quiet := log.New(io.Discard)

	fmt.Println(TitleStyle.Render("Host and project check"))
	fmt.Println()

	pin, pinErr := provision.ReadPinFile(provision.PinFileName)
	if pinErr != nil {
		printCheck(false, fmt.Sprintf("version pin file (%s): %v", provision.PinFileName, pinErr))
	} else {
		printCheck(true, fmt.Sprintf("version pin file (%s): %s", provision.PinFileName, pin))
	}

	runtime, found, err := pyruntime.NewResolver(h, quiet).Resolve(cmd.Context(), provision.RuntimeRequirement)
	switch {
	case err != nil:
		printCheck(false, fmt.Sprintf("system runtime probe failed: %v", err))
	case found:
		printCheck(true, fmt.Sprintf("system Python %s at %s (>= %s)",
			runtime.Version, runtime.Path, provision.RuntimeRequirement))
	default:
		printCheck(false, fmt.Sprintf("no system Python >= %s on PATH", provision.RuntimeRequirement))
	}

	tool := host.VersionManagerExecutable()
	if path, err := h.LookPath(tool); err != nil {
		printCheck(false, tool+" not installed")
	} else {
		printCheck(true, tool+" available at "+path)
	}

	if h.PathExists(provision.VenvDirName) {
		printCheck(true, "environment directory "+provision.VenvDirName+" present")
	} else {
		printCheck(false, "environment directory "+provision.VenvDirName+" absent (will be created)")
	}

	entries, err := pip.LoadManifest(provision.ManifestName)
	if err != nil {
		printCheck(false, fmt.Sprintf("dependency manifest (%s): %v", provision.ManifestName, err))
	} else {
		printCheck(true, fmt.Sprintf("dependency manifest (%s): %d entries", provision.ManifestName, len(entries)))
	}

	fmt.Println()
	fmt.Println(SubtitleStyle.Render("Run 'gamebox-setup' to provision."))
	return nil
}

func printCheck(ok bool, detail string) {
	mark := SuccessStyle.Render("✓")
	if !ok {
		mark = WarningStyle.Render("✗")
	}
	fmt.Printf("  %s %s\n", mark, detail)
}
