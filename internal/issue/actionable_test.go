// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  *ActionableError
		want string
	}{
		{
			"operation only",
			&ActionableError{Operation: "resolve runtime"},
			"failed to resolve runtime",
		},
		{
			"operation and resource",
			&ActionableError{Operation: "read version pin", Resource: ".python-version"},
			"failed to read version pin: .python-version",
		},
		{
			"full context",
			&ActionableError{
				Operation: "create environment",
				Resource:  ".venv",
				Cause:     errors.New("no space left on device"),
			},
			"failed to create environment: .venv: no space left on device",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorContext_Build(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	err := NewErrorContext().
		WithOperation("install dependency").
		WithResource("requests").
		WithSuggestion("Re-run setup").
		Wrap(cause).
		Build()

	if err == nil {
		t.Fatal("Build() returned nil for populated context")
	}
	if !errors.Is(err, cause) {
		t.Error("built error should wrap its cause")
	}
	if len(err.Suggestions) != 1 {
		t.Errorf("Suggestions = %v, want one entry", err.Suggestions)
	}
}

func TestErrorContext_Build_RequiresOperation(t *testing.T) {
	t.Parallel()

	if got := NewErrorContext().WithResource("x").Build(); got != nil {
		t.Errorf("Build() without operation = %v, want nil", got)
	}
	if got := NewErrorContext().BuildError(); got != nil {
		t.Errorf("BuildError() without operation = %v, want nil", got)
	}
}

func TestActionableError_Format(t *testing.T) {
	t.Parallel()

	err := &ActionableError{
		Operation:   "install runtime",
		Resource:    "3.11.0",
		Suggestions: []string{"Check network connectivity", "Re-run setup"},
		Cause:       errors.New("download failed"),
	}

	plain := err.Format(false)
	if !strings.Contains(plain, "• Check network connectivity") {
		t.Errorf("Format(false) missing suggestion bullet: %q", plain)
	}
	if strings.Contains(plain, "Error chain") {
		t.Errorf("Format(false) should not include the error chain: %q", plain)
	}

	verbose := err.Format(true)
	if !strings.Contains(verbose, "Error chain:") {
		t.Errorf("Format(true) missing error chain: %q", verbose)
	}
}

func TestWrapWithOperation_NilPassthrough(t *testing.T) {
	t.Parallel()

	if got := WrapWithOperation(nil, "anything"); got != nil {
		t.Errorf("WrapWithOperation(nil) = %v, want nil", got)
	}
}

func TestGet_KnownIds(t *testing.T) {
	t.Parallel()

	ids := []Id{
		VersionManagerMissingId,
		RuntimeInstallFailedId,
		EnvironmentCreateFailedId,
		DependencyInstallFailedId,
		PinFileInvalidId,
		ManifestMissingId,
		ConfigLoadFailedId,
	}

	for _, id := range ids {
		if Get(id) == nil {
			t.Errorf("Get(%d) = nil, want catalog entry", id)
		}
	}

	if len(Values()) != len(ids) {
		t.Errorf("Values() has %d entries, want %d", len(Values()), len(ids))
	}
}
