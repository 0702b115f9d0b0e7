// SPDX-License-Identifier: MPL-2.0

package venv

import (
	"context"
	"errors"
	"io"
	"testing"

	"gamebox-setup/internal/host"
	"gamebox-setup/internal/testutil/hosttest"

	"github.com/charmbracelet/log"
)

func testBuilder(h host.Host) *Builder {
	return NewBuilder(h, log.New(io.Discard))
}

func TestEnsure_CreatesFreshEnvironment(t *testing.T) {
	t.Parallel()

	fake := hosttest.New()

	state, err := testBuilder(fake).Ensure(context.Background(), "/usr/bin/python3", ".venv")
	if err != nil {
		t.Fatalf("Ensure failed: %v", err)
	}

	if !state.Created {
		t.Error("Created = false, want true for a fresh build")
	}
	if state.Path != ".venv" {
		t.Errorf("Path = %q, want .venv", state.Path)
	}
	if calls := fake.CallsMatching("-m venv .venv"); len(calls) != 1 {
		t.Errorf("expected one venv invocation, got %v", calls)
	}
}

func TestEnsure_SkipsExistingDirectory(t *testing.T) {
	t.Parallel()

	fake := hosttest.New().WithPath(".venv")

	state, err := testBuilder(fake).Ensure(context.Background(), "/usr/bin/python3", ".venv")
	if err != nil {
		t.Fatalf("Ensure failed: %v", err)
	}

	if state.Created {
		t.Error("Created = true for a pre-existing directory")
	}
	if calls := fake.Calls(); len(calls) != 0 {
		t.Errorf("no process should run when the directory exists, got %v", calls)
	}
}

func TestEnsure_CreateFailure(t *testing.T) {
	t.Parallel()

	fake := hosttest.New().
		Stub("/usr/bin/python3 -m venv .venv", host.RunResult{
			ExitCode: 1,
			Stderr:   "Error: [Errno 28] No space left on device",
		})

	_, err := testBuilder(fake).Ensure(context.Background(), "/usr/bin/python3", ".venv")
	if err == nil {
		t.Fatal("Ensure succeeded despite interpreter failure, want error")
	}
	if !errors.Is(err, ErrCreateFailed) {
		t.Errorf("error should wrap ErrCreateFailed, got %v", err)
	}

	var ce *CreateError
	if !errors.As(err, &ce) {
		t.Fatalf("error should be a CreateError, got %T", err)
	}
	if ce.Output == "" {
		t.Error("CreateError should carry the interpreter's diagnostic output")
	}
}
