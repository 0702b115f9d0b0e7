// SPDX-License-Identifier: MPL-2.0

package pip

import (
	"context"
	"errors"
	"fmt"
	"io"

	"gamebox-setup/internal/host"

	"github.com/charmbracelet/log"
)

// ErrInstallFailed is the sentinel error wrapped by InstallError.
var ErrInstallFailed = errors.New("dependency install failed")

type (
	// InstallError is returned on the first unrecoverable install failure.
	// It names the offending package; remaining entries are not attempted,
	// so a failed run never leaves a silently half-updated environment
	// reported as success.
	InstallError struct {
		Package  string
		ExitCode int
		Cause    error
	}

	// Installer applies a dependency manifest to an isolated environment.
	Installer struct {
		host   host.Host
		logger *log.Logger

		// output receives streamed pip output so resolver diagnostics
		// reach the operator verbatim.
		output io.Writer
	}
)

// Error implements the error interface.
func (e *InstallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to install %s: %v", e.Package, e.Cause)
	}
	return fmt.Sprintf("failed to install %s: pip exited with status %d", e.Package, e.ExitCode)
}

// Unwrap returns ErrInstallFailed for errors.Is() compatibility.
func (e *InstallError) Unwrap() error { return ErrInstallFailed }

// NewInstaller creates an Installer. output receives streamed pip
// progress; pass the process stderr in production.
func NewInstaller(h host.Host, logger *log.Logger, output io.Writer) *Installer {
	return &Installer{host: h, logger: logger, output: output}
}

// Install applies entries to the environment whose interpreter is at
// envPython. The environment's pip is upgraded first (many dependency
// resolutions silently need a current pip), then entries are installed in
// manifest order. This always runs in full, even against a pre-existing
// environment: pip itself makes re-installation idempotent, and the
// manifest may have changed since the environment was built.
func (i *Installer) Install(ctx context.Context, envPython string, entries []Entry) error {
	i.logger.Info("upgrading environment package installer")
	if err := i.pipInstall(ctx, envPython, "pip", "--upgrade", "pip"); err != nil {
		return err
	}

	for _, entry := range entries {
		i.logger.Info("installing dependency", "package", entry.Name, "spec", entry.Raw)
		if err := i.pipInstall(ctx, envPython, entry.Name, entry.Raw); err != nil {
			return err
		}
	}

	return nil
}

// pipInstall runs "python -m pip install <args...>" with streamed output.
func (i *Installer) pipInstall(ctx context.Context, envPython, pkg string, args ...string) error {
	cmdArgs := append([]string{"-m", "pip", "install"}, args...)

	code, err := i.host.RunStreaming(ctx, i.output, i.output, envPython, cmdArgs...)
	if err != nil {
		return &InstallError{Package: pkg, Cause: err}
	}
	if code != 0 {
		return &InstallError{Package: pkg, ExitCode: code}
	}
	return nil
}
