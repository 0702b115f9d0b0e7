// SPDX-License-Identifier: MPL-2.0

package provision

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gamebox-setup/pkg/pyversion"
)

// ErrPinFileInvalid is the sentinel error wrapped by PinFileError.
var ErrPinFileInvalid = errors.New("version pin file unusable")

// PinFileError is returned when the project's version pin file is missing,
// empty, or does not contain a parseable version.
type PinFileError struct {
	Path  string
	Cause error
}

// Error implements the error interface.
func (e *PinFileError) Error() string {
	return fmt.Sprintf("failed to read version pin file %s: %v", e.Path, e.Cause)
}

// Unwrap returns ErrPinFileInvalid for errors.Is() compatibility.
func (e *PinFileError) Unwrap() error { return ErrPinFileInvalid }

// ReadPinFile reads the exact pinned runtime version from the single-line
// pin file at path. The pin is an input owned by the project checkout; it
// is read once per run and never written by the workflow itself (the
// version manager rewrites it when pinning).
func ReadPinFile(path string) (pyversion.Version, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return pyversion.Version{}, &PinFileError{Path: path, Cause: err}
	}

	line, _, _ := strings.Cut(string(data), "\n")
	line = strings.TrimSpace(line)
	if line == "" {
		return pyversion.Version{}, &PinFileError{Path: path, Cause: errors.New("file is empty")}
	}

	pin, err := pyversion.Parse(line)
	if err != nil {
		return pyversion.Version{}, &PinFileError{Path: path, Cause: err}
	}
	return pin, nil
}
