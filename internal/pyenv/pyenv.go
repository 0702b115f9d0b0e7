// SPDX-License-Identifier: MPL-2.0

// Package pyenv wraps the host-installed pyenv version manager: querying
// installed versions, installing the pinned version when absent, and
// pinning it for the project directory.
package pyenv

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"gamebox-setup/internal/host"
	"gamebox-setup/internal/pyruntime"
	"gamebox-setup/pkg/pyversion"

	"github.com/charmbracelet/log"
)

var (
	// ErrToolMissing is the sentinel error wrapped by ToolMissingError.
	ErrToolMissing = errors.New("version manager not found")
	// ErrInstallFailed is the sentinel error wrapped by InstallFailedError.
	ErrInstallFailed = errors.New("runtime install failed")
)

type (
	// ToolMissingError is returned when pyenv itself is not installed.
	// This is fatal and user-actionable; the bridge never attempts a
	// silent fallback.
	ToolMissingError struct {
		Tool string
	}

	// InstallFailedError is returned when a pyenv install invocation
	// exits non-zero. The tool's own diagnostic output has already been
	// streamed to the operator verbatim by the time this is returned.
	InstallFailedError struct {
		Version  string
		ExitCode int
		Cause    error
	}

	// Bridge drives pyenv through the host capability interface.
	Bridge struct {
		host   host.Host
		logger *log.Logger

		// installOutput receives the streamed output of long-running
		// install invocations, so the operator sees progress and, on
		// failure, the tool's diagnostics unmodified.
		installOutput io.Writer
	}
)

// Error implements the error interface.
func (e *ToolMissingError) Error() string {
	return fmt.Sprintf("%s is not installed and no suitable system runtime was found", e.Tool)
}

// Unwrap returns ErrToolMissing for errors.Is() compatibility.
func (e *ToolMissingError) Unwrap() error { return ErrToolMissing }

// Error implements the error interface.
func (e *InstallFailedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("pyenv install %s failed: %v", e.Version, e.Cause)
	}
	return fmt.Sprintf("pyenv install %s exited with status %d", e.Version, e.ExitCode)
}

// Unwrap returns ErrInstallFailed for errors.Is() compatibility.
func (e *InstallFailedError) Unwrap() error { return ErrInstallFailed }

// NewBridge creates a Bridge. installOutput receives streamed install
// progress; pass the process stderr in production.
func NewBridge(h host.Host, logger *log.Logger, installOutput io.Writer) *Bridge {
	return &Bridge{host: h, logger: logger, installOutput: installOutput}
}

// EnsureManaged makes the pinned version available through pyenv and pins
// it for the current project directory. The install step is skipped when
// the version is already present; installs can take minutes and must never
// repeat needlessly. Returns a descriptor pointing at the managed
// interpreter.
func (b *Bridge) EnsureManaged(ctx context.Context, pin pyversion.Version) (pyruntime.Descriptor, error) {
	tool := host.VersionManagerExecutable()

	exe, err := b.host.LookPath(tool)
	if err != nil {
		return pyruntime.Descriptor{}, &ToolMissingError{Tool: tool}
	}

	installed, err := b.installedVersions(ctx, exe)
	if err != nil {
		return pyruntime.Descriptor{}, err
	}

	if installed[pin.String()] {
		b.logger.Info("pinned runtime already installed, skipping install", "version", pin)
	} else {
		b.logger.Info("installing pinned runtime (this can take several minutes)", "version", pin)
		code, err := b.host.RunStreaming(ctx, b.installOutput, b.installOutput, exe, "install", pin.String())
		if err != nil {
			return pyruntime.Descriptor{}, &InstallFailedError{Version: pin.String(), Cause: err}
		}
		if code != 0 {
			return pyruntime.Descriptor{}, &InstallFailedError{Version: pin.String(), ExitCode: code}
		}
	}

	// Pin for the project directory. Harmless to repeat: pyenv rewrites
	// the same pin file.
	if result, err := b.host.Run(ctx, exe, "local", pin.String()); err != nil {
		return pyruntime.Descriptor{}, fmt.Errorf("failed to pin runtime version: %w", err)
	} else if result.ExitCode != 0 {
		return pyruntime.Descriptor{}, fmt.Errorf("pyenv local %s exited with status %d: %s",
			pin, result.ExitCode, strings.TrimSpace(result.Stderr))
	}

	pythonPath, err := b.managedInterpreterPath(ctx, exe, pin)
	if err != nil {
		return pyruntime.Descriptor{}, err
	}

	return pyruntime.Descriptor{
		Version: pin,
		Path:    pythonPath,
		Origin:  pyruntime.OriginManaged,
	}, nil
}

// installedVersions queries pyenv for its installed version set. Queried
// live on every run; the host may have changed since the last invocation.
func (b *Bridge) installedVersions(ctx context.Context, exe string) (map[string]bool, error) {
	result, err := b.host.Run(ctx, exe, "versions", "--bare")
	if err != nil {
		return nil, fmt.Errorf("failed to list installed runtime versions: %w", err)
	}
	if result.ExitCode != 0 {
		return nil, fmt.Errorf("pyenv versions exited with status %d: %s",
			result.ExitCode, strings.TrimSpace(result.Stderr))
	}

	installed := make(map[string]bool)
	for _, line := range strings.Split(result.Stdout, "\n") {
		if v := strings.TrimSpace(line); v != "" {
			installed[v] = true
		}
	}
	return installed, nil
}

// managedInterpreterPath resolves the interpreter executable for the
// pinned version under the pyenv root.
func (b *Bridge) managedInterpreterPath(ctx context.Context, exe string, pin pyversion.Version) (string, error) {
	result, err := b.host.Run(ctx, exe, "root")
	if err != nil {
		return "", fmt.Errorf("failed to locate pyenv root: %w", err)
	}
	if result.ExitCode != 0 {
		return "", fmt.Errorf("pyenv root exited with status %d: %s",
			result.ExitCode, strings.TrimSpace(result.Stderr))
	}

	root := strings.TrimSpace(result.Stdout)
	pythonPath := host.ManagedPython(root, pin.String())
	if !b.host.PathExists(pythonPath) {
		return "", fmt.Errorf("managed interpreter not found at %s after install", pythonPath)
	}

	return pythonPath, nil
}
