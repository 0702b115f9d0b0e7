// SPDX-License-Identifier: MPL-2.0

package provision

import (
	"errors"
	"fmt"
)

const (
	// StepResolvingRuntime probes the host for a qualifying system runtime.
	StepResolvingRuntime Step = "resolving-runtime"
	// StepEnsuringManagedRuntime obtains the pinned runtime through the
	// version manager. Entered only when no system runtime qualifies.
	StepEnsuringManagedRuntime Step = "ensuring-managed-runtime"
	// StepBuildingEnvironment materializes the isolated environment.
	StepBuildingEnvironment Step = "building-environment"
	// StepInstallingDependencies applies the dependency manifest.
	StepInstallingDependencies Step = "installing-dependencies"
	// StepDone is the terminal success state.
	StepDone Step = "done"
	// StepFailed is the terminal failure state.
	StepFailed Step = "failed"
)

// ErrInvalidStep is the sentinel error wrapped by InvalidStepError.
var ErrInvalidStep = errors.New("invalid workflow step")

type (
	// Step identifies a stage of the provisioning workflow. The workflow
	// moves forward only; a failure at any stage transitions to StepFailed
	// and stops the run.
	Step string

	// InvalidStepError is returned when a Step value is not recognized.
	// It wraps ErrInvalidStep for errors.Is() compatibility.
	InvalidStepError struct {
		Value Step
	}
)

// Error implements the error interface.
func (e *InvalidStepError) Error() string {
	return fmt.Sprintf("invalid workflow step %q", e.Value)
}

// Unwrap returns ErrInvalidStep for errors.Is() compatibility.
func (e *InvalidStepError) Unwrap() error { return ErrInvalidStep }

// IsValid returns whether the Step is a recognized value, and a list of
// validation errors if it is not.
func (s Step) IsValid() (bool, []error) {
	switch s {
	case StepResolvingRuntime, StepEnsuringManagedRuntime, StepBuildingEnvironment,
		StepInstallingDependencies, StepDone, StepFailed:
		return true, nil
	default:
		return false, []error{&InvalidStepError{Value: s}}
	}
}

// String returns the string representation of the Step.
func (s Step) String() string { return string(s) }
