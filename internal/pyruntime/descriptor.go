// SPDX-License-Identifier: MPL-2.0

// Package pyruntime decides which Python interpreter the provisioning
// workflow uses: a qualifying system installation when one exists, or a
// pyenv-managed installation otherwise.
package pyruntime

import (
	"errors"
	"fmt"

	"gamebox-setup/pkg/pyversion"
)

const (
	// OriginSystem marks an interpreter found on the host search path.
	OriginSystem Origin = "system"
	// OriginManaged marks an interpreter provisioned through pyenv.
	OriginManaged Origin = "managed"
)

// ErrInvalidOrigin is the sentinel error wrapped by InvalidOriginError.
var ErrInvalidOrigin = errors.New("invalid runtime origin")

type (
	// Origin records how an interpreter came to be available.
	Origin string

	// InvalidOriginError is returned when an Origin value is not recognized.
	// It wraps ErrInvalidOrigin for errors.Is() compatibility.
	InvalidOriginError struct {
		Value Origin
	}

	// Descriptor identifies a concrete, usable interpreter. It is computed
	// fresh on every run and never persisted; the host may change between
	// invocations.
	Descriptor struct {
		// Version is the interpreter's reported version.
		Version pyversion.Version
		// Path is the interpreter executable path.
		Path string
		// Origin records whether the interpreter is system or managed.
		Origin Origin
	}
)

// Error implements the error interface.
func (e *InvalidOriginError) Error() string {
	return fmt.Sprintf("invalid runtime origin %q (valid: system, managed)", e.Value)
}

// Unwrap returns ErrInvalidOrigin for errors.Is() compatibility.
func (e *InvalidOriginError) Unwrap() error { return ErrInvalidOrigin }

// IsValid returns whether the Origin is a recognized value, and a list of
// validation errors if it is not.
func (o Origin) IsValid() (bool, []error) {
	switch o {
	case OriginSystem, OriginManaged:
		return true, nil
	default:
		return false, []error{&InvalidOriginError{Value: o}}
	}
}

// String returns the string representation of the Origin.
func (o Origin) String() string { return string(o) }
