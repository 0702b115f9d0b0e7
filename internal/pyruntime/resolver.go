// SPDX-License-Identifier: MPL-2.0

package pyruntime

import (
	"context"
	"fmt"
	"strings"

	"gamebox-setup/internal/host"
	"gamebox-setup/pkg/pyversion"

	"github.com/charmbracelet/log"
)

// Resolver probes the host for a system interpreter meeting a minimum
// version. It is strictly read-only: it never installs or modifies
// anything, and a host with no qualifying interpreter is a legitimate
// outcome, not an error.
type Resolver struct {
	host   host.Host
	logger *log.Logger
}

// NewResolver creates a Resolver backed by the given host.
func NewResolver(h host.Host, logger *log.Logger) *Resolver {
	return &Resolver{host: h, logger: logger}
}

// Resolve locates a system interpreter satisfying req. The boolean result
// reports whether one was found; false with a nil error means no
// qualifying interpreter exists and the caller should fall back to a
// managed installation. Candidates that cannot be probed (broken shims,
// unparseable version output) are skipped, not fatal.
func (r *Resolver) Resolve(ctx context.Context, req pyversion.Requirement) (Descriptor, bool, error) {
	for _, name := range host.PythonCandidates() {
		path, err := r.host.LookPath(name)
		if err != nil {
			r.logger.Debug("interpreter not on PATH", "name", name)
			continue
		}

		version, err := r.probeVersion(ctx, path)
		if err != nil {
			r.logger.Debug("skipping unprobeable interpreter", "path", path, "error", err)
			continue
		}

		if !req.SatisfiedBy(version) {
			r.logger.Debug("interpreter below requirement",
				"path", path, "version", version, "required", req)
			continue
		}

		r.logger.Debug("system interpreter qualifies", "path", path, "version", version)
		return Descriptor{
			Version: version,
			Path:    path,
			Origin:  OriginSystem,
		}, true, nil
	}

	return Descriptor{}, false, nil
}

// probeVersion asks the interpreter at path for its version and parses the
// "Python X.Y.Z" output it prints.
func (r *Resolver) probeVersion(ctx context.Context, path string) (pyversion.Version, error) {
	result, err := r.host.Run(ctx, path, "--version")
	if err != nil {
		return pyversion.Version{}, fmt.Errorf("failed to query version of %s: %w", path, err)
	}
	if result.ExitCode != 0 {
		return pyversion.Version{}, fmt.Errorf("%s --version exited with status %d", path, result.ExitCode)
	}

	// Python 2 printed the version banner on stderr; 3.x uses stdout.
	output := strings.TrimSpace(result.Stdout)
	if output == "" {
		output = strings.TrimSpace(result.Stderr)
	}

	return ParseVersionOutput(output)
}

// ParseVersionOutput extracts the version from interpreter banner output
// such as "Python 3.11.4".
func ParseVersionOutput(output string) (pyversion.Version, error) {
	fields := strings.Fields(output)
	if len(fields) < 2 || fields[0] != "Python" {
		return pyversion.Version{}, fmt.Errorf("unexpected version output: %q", output)
	}
	return pyversion.Parse(fields[1])
}
