// SPDX-License-Identifier: MPL-2.0

// Package hooks runs operator-defined post-setup shell snippets inside the
// embedded mvdan/sh interpreter. Using the embedded interpreter keeps hook
// behavior identical across platforms and avoids depending on a host shell.
package hooks

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gamebox-setup/internal/host"

	"github.com/charmbracelet/log"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// Runner executes hook snippets with the provisioned environment active.
type Runner struct {
	logger *log.Logger
	stdout io.Writer
	stderr io.Writer
}

// NewRunner creates a hook Runner writing hook output to the given writers.
func NewRunner(logger *log.Logger, stdout, stderr io.Writer) *Runner {
	return &Runner{logger: logger, stdout: stdout, stderr: stderr}
}

// Run executes each snippet in order with the virtual environment at
// venvDir active: its scripts directory is prepended to PATH and
// VIRTUAL_ENV is set, for the duration of the snippet only. The activation
// is scoped to the interpreter process; nothing global is mutated.
//
// Hooks are a convenience, not part of provisioning proper: a failing hook
// is logged and the remaining hooks still run. The first failure is
// returned so the caller can warn, but it must not fail the workflow.
func (r *Runner) Run(ctx context.Context, venvDir string, snippets []string) error {
	if len(snippets) == 0 {
		return nil
	}

	environ := hookEnviron(venvDir)

	var firstErr error
	for idx, snippet := range snippets {
		if err := r.runOne(ctx, environ, idx, snippet); err != nil {
			r.logger.Warn("post-setup hook failed", "hook", idx+1, "error", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	return firstErr
}

func (r *Runner) runOne(ctx context.Context, environ []string, idx int, snippet string) error {
	name := fmt.Sprintf("post_setup[%d]", idx)

	prog, err := syntax.NewParser().Parse(strings.NewReader(snippet), name)
	if err != nil {
		return fmt.Errorf("failed to parse hook: %w", err)
	}

	runner, err := interp.New(
		interp.Env(expand.ListEnviron(environ...)),
		interp.StdIO(nil, r.stdout, r.stderr),
	)
	if err != nil {
		return fmt.Errorf("failed to create hook interpreter: %w", err)
	}

	r.logger.Debug("running post-setup hook", "hook", name)
	if err := runner.Run(ctx, prog); err != nil {
		return fmt.Errorf("hook exited with error: %w", err)
	}
	return nil
}

// hookEnviron builds the hook environment: the parent environment with the
// venv's scripts directory prepended to PATH and VIRTUAL_ENV set.
func hookEnviron(venvDir string) []string {
	absVenv, err := filepath.Abs(venvDir)
	if err != nil {
		absVenv = venvDir
	}
	scripts := filepath.Join(absVenv, host.VenvScriptsDir())

	environ := os.Environ()
	out := make([]string, 0, len(environ)+2)
	for _, kv := range environ {
		if strings.HasPrefix(kv, "PATH=") {
			out = append(out, "PATH="+scripts+string(os.PathListSeparator)+strings.TrimPrefix(kv, "PATH="))
			continue
		}
		if strings.HasPrefix(kv, "VIRTUAL_ENV=") {
			continue
		}
		out = append(out, kv)
	}
	out = append(out, "VIRTUAL_ENV="+absVenv)
	return out
}
