// SPDX-License-Identifier: MPL-2.0

// Package host abstracts the handful of host-system capabilities the
// provisioning workflow needs: locating executables, running processes,
// checking paths, and creating directories. The orchestration code is
// platform-neutral; everything OS-specific funnels through this package.
package host

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
)

type (
	// RunResult captures the outcome of a finished process.
	RunResult struct {
		// ExitCode is the process exit status. Zero means success.
		ExitCode int
		// Stdout is the captured standard output.
		Stdout string
		// Stderr is the captured standard error.
		Stderr string
	}

	// Host is the capability set the workflow depends on. Production code
	// uses ExecHost; tests substitute a scripted fake.
	Host interface {
		// LookPath locates an executable on the search path.
		LookPath(name string) (string, error)

		// Run executes a process to completion and captures its output.
		// A non-zero exit status is reported via RunResult.ExitCode, not
		// via the error return; the error is reserved for failures to
		// start or wait on the process.
		Run(ctx context.Context, name string, args ...string) (RunResult, error)

		// RunStreaming executes a process with its output wired directly
		// to the given writers, for long-running invocations whose
		// progress the operator should see verbatim. Returns the exit
		// code and any start/wait error.
		RunStreaming(ctx context.Context, stdout, stderr io.Writer, name string, args ...string) (int, error)

		// PathExists reports whether the given path exists.
		PathExists(path string) bool

		// MkdirAll creates a directory along with any missing parents.
		MkdirAll(path string, perm os.FileMode) error
	}

	// ExecHost implements Host against the real operating system.
	ExecHost struct{}
)

// NewExecHost creates a Host backed by os/exec and the local filesystem.
func NewExecHost() *ExecHost {
	return &ExecHost{}
}

// LookPath locates an executable on PATH.
func (h *ExecHost) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// Run executes a process and captures stdout/stderr.
func (h *ExecHost) Run(ctx context.Context, name string, args ...string) (RunResult, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := RunResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		result.ExitCode = 1
		return result, err
	}

	return result, nil
}

// RunStreaming executes a process with output streamed to the given writers.
func (h *ExecHost) RunStreaming(ctx context.Context, stdout, stderr io.Writer, name string, args ...string) (int, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return exitErr.ExitCode(), nil
		}
		return 1, err
	}

	return 0, nil
}

// PathExists reports whether path exists on the local filesystem.
func (h *ExecHost) PathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// MkdirAll creates path and any missing parents.
func (h *ExecHost) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}
