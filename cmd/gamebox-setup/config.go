// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"

	"gamebox-setup/internal/config"
	"gamebox-setup/internal/issue"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `gamebox-setup config` command tree.
func newConfigCommand() *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage gamebox-setup configuration",
		Long: `Manage gamebox-setup configuration.

Configuration is stored in:
  - Linux: ~/.config/gamebox-setup/config.cue
  - macOS: ~/Library/Application Support/gamebox-setup/config.cue
  - Windows: %APPDATA%\gamebox-setup\config.cue`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig()
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath()
		},
	})

	return cfgCmd
}

func showConfig() error {
	cfg, err := config.Load()
	if err != nil {
		rendered, _ := issue.Get(issue.ConfigLoadFailedId).Render(issueStyle())
		fmt.Fprint(os.Stderr, rendered)
		return err
	}

	keyStyle := CmdStyle
	valueStyle := SuccessStyle

	fmt.Println(TitleStyle.Render("Current Configuration"))
	fmt.Println()

	cfgDir, dirErr := config.ConfigDir()
	if dirErr == nil {
		cfgPath := cfgDir + "/config.cue"
		if fileExistsCheck(cfgPath) {
			fmt.Printf("%s: %s\n", keyStyle.Render("Config file"), cfgPath)
		} else {
			fmt.Printf("%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
		}
	} else {
		fmt.Printf("%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Println()

	fmt.Printf("%s:\n", keyStyle.Render("ui"))
	fmt.Printf("  color_scheme: %s\n", valueStyle.Render(cfg.UI.ColorScheme.String()))
	fmt.Printf("  verbose: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.UI.Verbose)))

	fmt.Println()
	fmt.Printf("%s:\n", keyStyle.Render("hooks"))
	if len(cfg.Hooks.PostSetup) == 0 {
		fmt.Printf("  post_setup: %s\n", SubtitleStyle.Render("(none configured)"))
	} else {
		fmt.Printf("  post_setup:\n")
		for _, snippet := range cfg.Hooks.PostSetup {
			fmt.Printf("    - %s\n", valueStyle.Render(snippet))
		}
	}

	return nil
}

func showConfigPath() error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}

	fmt.Printf("Config directory: %s\n", cfgDir)
	fmt.Printf("Config file: %s/config.cue\n", cfgDir)

	return nil
}

// fileExistsCheck checks if a file exists and is not a directory.
func fileExistsCheck(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}
