// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for gamebox-setup.
//
// This package implements the Cobra command hierarchy for the gamebox-setup
// CLI: the root provisioning command plus subcommands for scaffolding,
// host diagnostics, configuration, and shell completion.
package cmd
