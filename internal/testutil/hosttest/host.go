// SPDX-License-Identifier: EPL-2.0

// Package hosttest provides a scripted, in-memory host.Host implementation
// for unit tests. Every external-process invocation the workflow would make
// is recorded and answered from a stub table, so tests can assert on the
// exact commands issued without touching the real system.
package hosttest

import (
	"context"
	"io"
	"os"
	"strings"
	"sync"

	"gamebox-setup/internal/host"
)

// FakeHost is a scripted host.Host. The zero value is usable: every lookup
// fails, every path is absent, and every unstubbed command succeeds with
// empty output.
type FakeHost struct {
	mu sync.Mutex

	// Executables maps executable names to resolved paths for LookPath.
	Executables map[string]string

	// results maps a full command line to its scripted outcome.
	results map[string]host.RunResult
	// errs maps a full command line to a start/wait error.
	errs map[string]error

	// existing holds paths that PathExists reports as present.
	existing map[string]bool

	// calls records every Run/RunStreaming invocation in order.
	calls []string

	// created records directories passed to MkdirAll.
	created []string
}

// New creates an empty FakeHost.
func New() *FakeHost {
	return &FakeHost{
		Executables: make(map[string]string),
		results:     make(map[string]host.RunResult),
		errs:        make(map[string]error),
		existing:    make(map[string]bool),
	}
}

// WithExecutable registers name as resolvable on the fake search path.
func (f *FakeHost) WithExecutable(name, path string) *FakeHost {
	f.Executables[name] = path
	return f
}

// WithPath marks a filesystem path as existing.
func (f *FakeHost) WithPath(path string) *FakeHost {
	f.existing[path] = true
	return f
}

// Stub registers the outcome for an exact command line
// (executable followed by arguments, space-joined).
func (f *FakeHost) Stub(cmdline string, result host.RunResult) *FakeHost {
	f.results[cmdline] = result
	return f
}

// StubErr registers a start/wait error for an exact command line.
func (f *FakeHost) StubErr(cmdline string, err error) *FakeHost {
	f.errs[cmdline] = err
	return f
}

// LookPath resolves an executable from the registered table.
func (f *FakeHost) LookPath(name string) (string, error) {
	if path, ok := f.Executables[name]; ok {
		return path, nil
	}
	return "", &lookPathError{name: name}
}

// Run answers from the stub table and records the call.
func (f *FakeHost) Run(ctx context.Context, name string, args ...string) (host.RunResult, error) {
	cmdline := cmdline(name, args)

	f.mu.Lock()
	f.calls = append(f.calls, cmdline)
	f.mu.Unlock()

	if err, ok := f.errs[cmdline]; ok {
		return host.RunResult{ExitCode: 1}, err
	}
	return f.results[cmdline], nil
}

// RunStreaming answers from the stub table, copying scripted output to the
// given writers, and records the call.
func (f *FakeHost) RunStreaming(ctx context.Context, stdout, stderr io.Writer, name string, args ...string) (int, error) {
	cmdline := cmdline(name, args)

	f.mu.Lock()
	f.calls = append(f.calls, cmdline)
	f.mu.Unlock()

	if err, ok := f.errs[cmdline]; ok {
		return 1, err
	}

	result := f.results[cmdline]
	if result.Stdout != "" && stdout != nil {
		_, _ = io.WriteString(stdout, result.Stdout)
	}
	if result.Stderr != "" && stderr != nil {
		_, _ = io.WriteString(stderr, result.Stderr)
	}
	return result.ExitCode, nil
}

// PathExists reports membership in the scripted path set.
func (f *FakeHost) PathExists(path string) bool {
	return f.existing[path]
}

// MkdirAll records the directory and marks it as existing.
func (f *FakeHost) MkdirAll(path string, perm os.FileMode) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, path)
	f.existing[path] = true
	return nil
}

// Calls returns every recorded command line, in invocation order.
func (f *FakeHost) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	copy(out, f.calls)
	return out
}

// CallsMatching returns recorded command lines containing substr.
func (f *FakeHost) CallsMatching(substr string) []string {
	var out []string
	for _, c := range f.Calls() {
		if strings.Contains(c, substr) {
			out = append(out, c)
		}
	}
	return out
}

// CreatedDirs returns every directory passed to MkdirAll.
func (f *FakeHost) CreatedDirs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.created))
	copy(out, f.created)
	return out
}

func cmdline(name string, args []string) string {
	if len(args) == 0 {
		return name
	}
	return name + " " + strings.Join(args, " ")
}

// lookPathError mimics exec.LookPath failures for unregistered executables.
type lookPathError struct {
	name string
}

func (e *lookPathError) Error() string {
	return "exec: \"" + e.name + "\": executable file not found in $PATH"
}
