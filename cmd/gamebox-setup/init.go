// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"gamebox-setup/internal/provision"

	"github.com/spf13/cobra"
)

const (
	defaultPin = "3.11.0\n"

	defaultManifest = `# Gamebox server dependencies
requests>=2.0
`
)

var (
	initForce bool

	// initCmd scaffolds the provisioning inputs for a new checkout.
	initCmd = &cobra.Command{
		Use:   "init",
		Short: "Create the version pin file and dependency manifest",
		Long: `Create the standard provisioning inputs in the current directory:
a ` + provision.PinFileName + ` file pinning the interpreter version and a starter
` + provision.ManifestName + ` dependency manifest.`,
		RunE: runInit,
	}
)

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite existing files")
}

func runInit(cmd *cobra.Command, args []string) error {
	files := []struct {
		name    string
		content string
	}{
		{provision.PinFileName, defaultPin},
		{provision.ManifestName, defaultManifest},
	}

	for _, f := range files {
		if _, err := os.Stat(f.name); err == nil && !initForce {
			return fmt.Errorf("file '%s' already exists. Use --force to overwrite", f.name)
		}
		if err := os.WriteFile(f.name, []byte(f.content), 0o644); err != nil {
			return fmt.Errorf("failed to write file: %w", err)
		}
		absPath, _ := filepath.Abs(f.name)
		fmt.Printf("%s Created %s\n", SuccessStyle.Render("✓"), absPath)
	}

	fmt.Println()
	fmt.Println(SubtitleStyle.Render("Next steps:"))
	fmt.Println("  1. Adjust " + provision.ManifestName + " to list your dependencies")
	fmt.Println("  2. Run 'gamebox-setup' to provision the environment")

	return nil
}
