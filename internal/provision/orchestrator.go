// SPDX-License-Identifier: MPL-2.0

// Package provision drives the end-to-end provisioning workflow as a
// forward-only state machine: resolve a runtime, fall back to a managed
// install when the host has none, build the isolated environment, and apply
// the dependency manifest. Nothing about the host is cached between runs.
package provision

import (
	"context"
	"io"
	"path/filepath"

	"gamebox-setup/internal/hooks"
	"gamebox-setup/internal/host"
	"gamebox-setup/internal/pip"
	"gamebox-setup/internal/pyenv"
	"gamebox-setup/internal/pyruntime"
	"gamebox-setup/internal/venv"
	"gamebox-setup/pkg/pyversion"

	"github.com/charmbracelet/log"
)

// Fixed project-relative names the workflow operates on.
const (
	// PinFileName is the single-line version pin file at the project root.
	PinFileName = ".python-version"
	// ManifestName is the ordered dependency manifest at the project root.
	ManifestName = "requirements.txt"
	// VenvDirName is the isolated environment directory at the project root.
	VenvDirName = ".venv"
	// StateFileName records the outcome of the last successful run. It is
	// informational only and never read back to skip steps.
	StateFileName = ".gamebox-setup-state.toml"
)

// RuntimeRequirement is the minimum interpreter version the provisioned
// application needs. Patch level does not matter; any 3.11.x qualifies.
var RuntimeRequirement = pyversion.Requirement{Major: 3, Minor: 11}

type (
	// RuntimeResolver probes for a qualifying system interpreter.
	RuntimeResolver interface {
		Resolve(ctx context.Context, req pyversion.Requirement) (pyruntime.Descriptor, bool, error)
	}

	// VersionManager provisions the pinned runtime through an external
	// version-management tool.
	VersionManager interface {
		EnsureManaged(ctx context.Context, pin pyversion.Version) (pyruntime.Descriptor, error)
	}

	// EnvironmentBuilder materializes the isolated environment.
	EnvironmentBuilder interface {
		Ensure(ctx context.Context, pythonPath, targetDir string) (venv.State, error)
	}

	// DependencyInstaller applies manifest entries to the environment.
	DependencyInstaller interface {
		Install(ctx context.Context, envPython string, entries []pip.Entry) error
	}

	// HookRunner executes operator-defined post-setup snippets.
	HookRunner interface {
		Run(ctx context.Context, venvDir string, snippets []string) error
	}

	// Services bundles the workflow's collaborators so tests can substitute
	// any of them independently.
	Services struct {
		Resolver  RuntimeResolver
		Manager   VersionManager
		Builder   EnvironmentBuilder
		Installer DependencyInstaller
		Hooks     HookRunner
	}

	// Options configures a provisioning run.
	Options struct {
		// Dir is the project root holding the pin file and manifest.
		Dir string
		// Requirement overrides RuntimeRequirement when non-zero.
		Requirement pyversion.Requirement
		// PostSetupHooks are shell snippets run after a successful
		// provisioning, with the environment active.
		PostSetupHooks []string
	}

	// Orchestrator executes the provisioning state machine.
	Orchestrator struct {
		dir         string
		requirement pyversion.Requirement
		postSetup   []string
		services    Services
		logger      *log.Logger

		step Step
	}
)

// DefaultServices wires the production collaborators against the given
// host. output receives streamed output of long-running external tools;
// pass the process stderr in production.
func DefaultServices(h host.Host, logger *log.Logger, output io.Writer) Services {
	return Services{
		Resolver:  pyruntime.NewResolver(h, logger),
		Manager:   pyenv.NewBridge(h, logger, output),
		Builder:   venv.NewBuilder(h, logger),
		Installer: pip.NewInstaller(h, logger, output),
		Hooks:     hooks.NewRunner(logger, output, output),
	}
}

// New creates an Orchestrator for one provisioning run.
func New(opts Options, svcs Services, logger *log.Logger) *Orchestrator {
	req := opts.Requirement
	if req == (pyversion.Requirement{}) {
		req = RuntimeRequirement
	}
	return &Orchestrator{
		dir:         opts.Dir,
		requirement: req,
		postSetup:   opts.PostSetupHooks,
		services:    svcs,
		logger:      logger,
	}
}

// Step returns the workflow's current step.
func (o *Orchestrator) Step() Step { return o.step }

// Run executes the workflow to completion. On success the returned Report
// describes the provisioned environment and carries the launch
// instructions; on failure the error identifies the failed stage's cause
// and the workflow stops without attempting later stages.
func (o *Orchestrator) Run(ctx context.Context) (*Report, error) {
	// The pin and the manifest path are fixed inputs; read the pin up
	// front so a broken checkout fails before any host mutation.
	pin, err := ReadPinFile(filepath.Join(o.dir, PinFileName))
	if err != nil {
		return nil, o.fail(err)
	}

	o.transition(StepResolvingRuntime)
	runtime, found, err := o.services.Resolver.Resolve(ctx, o.requirement)
	if err != nil {
		return nil, o.fail(err)
	}

	if found {
		o.logger.Info("using system runtime",
			"version", runtime.Version, "path", runtime.Path)
	} else {
		o.transition(StepEnsuringManagedRuntime)
		o.logger.Info("no qualifying system runtime, provisioning managed runtime",
			"required", o.requirement, "pin", pin)
		runtime, err = o.services.Manager.EnsureManaged(ctx, pin)
		if err != nil {
			return nil, o.fail(err)
		}
	}

	o.transition(StepBuildingEnvironment)
	venvDir := filepath.Join(o.dir, VenvDirName)
	envState, err := o.services.Builder.Ensure(ctx, runtime.Path, venvDir)
	if err != nil {
		return nil, o.fail(err)
	}

	o.transition(StepInstallingDependencies)
	entries, err := pip.LoadManifest(filepath.Join(o.dir, ManifestName))
	if err != nil {
		return nil, o.fail(err)
	}
	// The manifest is always reapplied, even to a pre-existing
	// environment: presence of the directory says nothing about which
	// dependency versions it holds.
	if err := o.services.Installer.Install(ctx, host.VenvPython(venvDir), entries); err != nil {
		return nil, o.fail(err)
	}

	o.transition(StepDone)
	report := &Report{
		Runtime:      runtime,
		EnvPath:      envState.Path,
		EnvCreated:   envState.Created,
		Dependencies: len(entries),
	}

	if err := writeStateFile(o.dir, report); err != nil {
		o.logger.Warn("failed to record provisioning state", "error", err)
	}

	if len(o.postSetup) > 0 {
		o.logger.Info("running post-setup hooks", "count", len(o.postSetup))
		if err := o.services.Hooks.Run(ctx, venvDir, o.postSetup); err != nil {
			o.logger.Warn("post-setup hooks reported failures", "error", err)
		}
	}

	return report, nil
}

func (o *Orchestrator) transition(next Step) {
	o.logger.Debug("workflow step", "from", o.step, "to", next)
	o.step = next
}

func (o *Orchestrator) fail(err error) error {
	o.logger.Debug("workflow step", "from", o.step, "to", StepFailed)
	o.step = StepFailed
	return err
}
