// SPDX-License-Identifier: MPL-2.0

package pip

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"gamebox-setup/internal/host"
	"gamebox-setup/internal/testutil/hosttest"

	"github.com/charmbracelet/log"
)

func TestParseManifest(t *testing.T) {
	t.Parallel()

	input := `
# Gamebox server dependencies
requests>=2.0
pygame==2.5.2  # rendering
flask

windows-curses; sys_platform == "win32"
`

	entries, err := ParseManifest(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseManifest failed: %v", err)
	}

	want := []Entry{
		{Name: "requests", Raw: "requests>=2.0"},
		{Name: "pygame", Raw: "pygame==2.5.2"},
		{Name: "flask", Raw: "flask"},
		{Name: "windows-curses", Raw: `windows-curses; sys_platform == "win32"`},
	}

	if len(entries) != len(want) {
		t.Fatalf("ParseManifest returned %d entries, want %d: %+v", len(entries), len(want), entries)
	}
	for i, w := range want {
		if entries[i] != w {
			t.Errorf("entry %d = %+v, want %+v", i, entries[i], w)
		}
	}
}

func TestParseManifest_PreservesOrder(t *testing.T) {
	t.Parallel()

	entries, err := ParseManifest(strings.NewReader("zlib-ng\naaa\nmmm\n"))
	if err != nil {
		t.Fatalf("ParseManifest failed: %v", err)
	}

	var names []string
	for _, e := range entries {
		names = append(names, e.Name)
	}
	if got := strings.Join(names, ","); got != "zlib-ng,aaa,mmm" {
		t.Errorf("entry order = %s, want manifest order", got)
	}
}

func TestInstall_UpgradesPipFirst(t *testing.T) {
	t.Parallel()

	fake := hosttest.New()
	installer := NewInstaller(fake, log.New(io.Discard), io.Discard)

	entries := []Entry{{Name: "requests", Raw: "requests>=2.0"}}
	if err := installer.Install(context.Background(), ".venv/bin/python", entries); err != nil {
		t.Fatalf("Install failed: %v", err)
	}

	calls := fake.Calls()
	if len(calls) != 2 {
		t.Fatalf("expected 2 invocations (pip upgrade + 1 entry), got %v", calls)
	}
	if !strings.Contains(calls[0], "--upgrade pip") {
		t.Errorf("first call should upgrade pip, got %q", calls[0])
	}
	if !strings.Contains(calls[1], "requests>=2.0") {
		t.Errorf("second call should install the entry, got %q", calls[1])
	}
}

func TestInstall_StopsAtFirstFailure(t *testing.T) {
	t.Parallel()

	fake := hosttest.New().
		Stub(".venv/bin/python -m pip install broken-pkg==9.9", host.RunResult{ExitCode: 1})
	installer := NewInstaller(fake, log.New(io.Discard), io.Discard)

	entries := []Entry{
		{Name: "broken-pkg", Raw: "broken-pkg==9.9"},
		{Name: "requests", Raw: "requests>=2.0"},
	}

	err := installer.Install(context.Background(), ".venv/bin/python", entries)
	if err == nil {
		t.Fatal("Install succeeded despite a failing entry, want error")
	}
	if !errors.Is(err, ErrInstallFailed) {
		t.Errorf("error should wrap ErrInstallFailed, got %v", err)
	}

	var ie *InstallError
	if !errors.As(err, &ie) {
		t.Fatalf("error should be an InstallError, got %T", err)
	}
	if ie.Package != "broken-pkg" {
		t.Errorf("InstallError.Package = %q, want broken-pkg", ie.Package)
	}

	// All-or-nothing per run: the remaining entry must not be attempted.
	if calls := fake.CallsMatching("requests"); len(calls) != 0 {
		t.Errorf("entries after the failure must not be attempted: %v", calls)
	}
}

func TestInstall_NamesPipOnUpgradeFailure(t *testing.T) {
	t.Parallel()

	fake := hosttest.New().
		Stub(".venv/bin/python -m pip install --upgrade pip", host.RunResult{ExitCode: 1})
	installer := NewInstaller(fake, log.New(io.Discard), io.Discard)

	err := installer.Install(context.Background(), ".venv/bin/python", nil)
	if err == nil {
		t.Fatal("Install succeeded despite pip upgrade failure, want error")
	}

	var ie *InstallError
	if !errors.As(err, &ie) {
		t.Fatalf("error should be an InstallError, got %T", err)
	}
	if ie.Package != "pip" {
		t.Errorf("InstallError.Package = %q, want pip", ie.Package)
	}
}
