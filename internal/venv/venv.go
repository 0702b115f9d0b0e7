// SPDX-License-Identifier: MPL-2.0

// Package venv materializes the project's isolated dependency environment.
package venv

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"gamebox-setup/internal/host"

	"github.com/charmbracelet/log"
)

// ErrCreateFailed is the sentinel error wrapped by CreateError.
var ErrCreateFailed = errors.New("environment creation failed")

type (
	// State describes the isolated environment after Ensure.
	State struct {
		// Path is the environment directory.
		Path string
		// Created reports whether this run built the environment.
		// False means a directory was already present and was trusted
		// as-is; its internal integrity is not verified.
		Created bool
	}

	// CreateError is returned when the interpreter exits non-zero while
	// building the environment (insufficient disk, unwritable path, ...).
	CreateError struct {
		Path     string
		ExitCode int
		Output   string
		Cause    error
	}

	// Builder creates isolated environments through the host interface.
	Builder struct {
		host   host.Host
		logger *log.Logger
	}
)

// Error implements the error interface.
func (e *CreateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to create environment at %s: %v", e.Path, e.Cause)
	}
	msg := fmt.Sprintf("failed to create environment at %s: interpreter exited with status %d", e.Path, e.ExitCode)
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += ": " + out
	}
	return msg
}

// Unwrap returns ErrCreateFailed for errors.Is() compatibility.
func (e *CreateError) Unwrap() error { return ErrCreateFailed }

// NewBuilder creates a Builder backed by the given host.
func NewBuilder(h host.Host, logger *log.Logger) *Builder {
	return &Builder{host: h, logger: logger}
}

// Ensure makes the isolated environment at targetDir exist, using the
// interpreter at pythonPath to build it when absent. An existing directory
// is trusted by presence alone and skipped; the workflow does not verify
// the contents of a pre-existing environment.
func (b *Builder) Ensure(ctx context.Context, pythonPath, targetDir string) (State, error) {
	if b.host.PathExists(targetDir) {
		b.logger.Debug("environment directory already present, trusting as-is", "path", targetDir)
		return State{Path: targetDir, Created: false}, nil
	}

	if parent := filepath.Dir(targetDir); parent != "." {
		if err := b.host.MkdirAll(parent, 0o755); err != nil {
			return State{}, &CreateError{Path: targetDir, Cause: err}
		}
	}

	b.logger.Info("creating isolated environment", "path", targetDir, "interpreter", pythonPath)
	result, err := b.host.Run(ctx, pythonPath, "-m", "venv", targetDir)
	if err != nil {
		return State{}, &CreateError{Path: targetDir, Cause: err}
	}
	if result.ExitCode != 0 {
		return State{}, &CreateError{
			Path:     targetDir,
			ExitCode: result.ExitCode,
			Output:   result.Stderr,
		}
	}

	return State{Path: targetDir, Created: true}, nil
}
