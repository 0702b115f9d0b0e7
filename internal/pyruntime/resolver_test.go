// SPDX-License-Identifier: MPL-2.0

package pyruntime

import (
	"context"
	"io"
	"runtime"
	"testing"

	"gamebox-setup/internal/host"
	"gamebox-setup/internal/testutil/hosttest"
	"gamebox-setup/pkg/pyversion"

	"github.com/charmbracelet/log"
)

func testResolver(h host.Host) *Resolver {
	return NewResolver(h, log.New(io.Discard))
}

func firstCandidate() string {
	if runtime.GOOS == "windows" {
		return "python"
	}
	return "python3"
}

func TestResolve_QualifyingSystemInterpreter(t *testing.T) {
	t.Parallel()

	name := firstCandidate()
	fake := hosttest.New().
		WithExecutable(name, "/usr/bin/"+name).
		Stub("/usr/bin/"+name+" --version", host.RunResult{Stdout: "Python 3.11.4\n"})

	desc, found, err := testResolver(fake).Resolve(context.Background(), pyversion.Requirement{Major: 3, Minor: 11})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if !found {
		t.Fatal("Resolve found no interpreter, want one")
	}
	if desc.Origin != OriginSystem {
		t.Errorf("Origin = %q, want system", desc.Origin)
	}
	if desc.Path != "/usr/bin/"+name {
		t.Errorf("Path = %q", desc.Path)
	}
	if desc.Version.Minor != 11 {
		t.Errorf("Version = %+v, want minor 11", desc.Version)
	}
}

func TestResolve_RejectsOldVersionNumerically(t *testing.T) {
	t.Parallel()

	// "3.9" sorts after "3.11" lexically; the resolver must still reject it.
	name := firstCandidate()
	fake := hosttest.New().
		WithExecutable(name, "/usr/bin/"+name).
		Stub("/usr/bin/"+name+" --version", host.RunResult{Stdout: "Python 3.9.18\n"})

	_, found, err := testResolver(fake).Resolve(context.Background(), pyversion.Requirement{Major: 3, Minor: 11})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if found {
		t.Error("Resolve accepted 3.9.18 against a 3.11 requirement")
	}
}

func TestResolve_AcceptsNewerMinor(t *testing.T) {
	t.Parallel()

	name := firstCandidate()
	fake := hosttest.New().
		WithExecutable(name, "/opt/python/bin/"+name).
		Stub("/opt/python/bin/"+name+" --version", host.RunResult{Stdout: "Python 3.12.0\n"})

	_, found, err := testResolver(fake).Resolve(context.Background(), pyversion.Requirement{Major: 3, Minor: 11})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if !found {
		t.Error("Resolve rejected 3.12.0 against a 3.11 requirement")
	}
}

func TestResolve_NothingOnPath(t *testing.T) {
	t.Parallel()

	_, found, err := testResolver(hosttest.New()).Resolve(context.Background(), pyversion.Requirement{Major: 3, Minor: 11})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if found {
		t.Error("Resolve reported a find on an empty host")
	}
}

func TestResolve_SkipsBrokenInterpreter(t *testing.T) {
	t.Parallel()

	// First candidate is a broken shim; the second one qualifies.
	candidates := host.PythonCandidates()
	if len(candidates) < 2 {
		t.Skip("platform has a single interpreter candidate")
	}

	fake := hosttest.New().
		WithExecutable(candidates[0], "/usr/bin/"+candidates[0]).
		WithExecutable(candidates[1], "/usr/bin/"+candidates[1]).
		Stub("/usr/bin/"+candidates[0]+" --version", host.RunResult{ExitCode: 127}).
		Stub("/usr/bin/"+candidates[1]+" --version", host.RunResult{Stdout: "Python 3.11.9\n"})

	desc, found, err := testResolver(fake).Resolve(context.Background(), pyversion.Requirement{Major: 3, Minor: 11})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if !found {
		t.Fatal("Resolve should fall through to the second candidate")
	}
	if desc.Path != "/usr/bin/"+candidates[1] {
		t.Errorf("Path = %q, want the second candidate", desc.Path)
	}
}

func TestParseVersionOutput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		output  string
		want    string
		wantErr bool
	}{
		{"plain banner", "Python 3.11.4", "3.11.4", false},
		{"stderr banner", "Python 2.7.18", "2.7.18", false},
		{"garbage", "command not found", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			v, err := ParseVersionOutput(tt.output)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseVersionOutput(%q) succeeded, want error", tt.output)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseVersionOutput(%q) failed: %v", tt.output, err)
			}
			if v.String() != tt.want {
				t.Errorf("ParseVersionOutput(%q) = %q, want %q", tt.output, v, tt.want)
			}
		})
	}
}

func TestOrigin_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		origin Origin
		want   bool
	}{
		{"system", OriginSystem, true},
		{"managed", OriginManaged, true},
		{"unknown", Origin("conda"), false},
		{"empty", Origin(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			isValid, errs := tt.origin.IsValid()
			if isValid != tt.want {
				t.Errorf("Origin(%q).IsValid() = %v, want %v", tt.origin, isValid, tt.want)
			}
			if !tt.want && len(errs) == 0 {
				t.Error("invalid origin should return errors")
			}
		})
	}
}
