// SPDX-License-Identifier: MPL-2.0

package provision

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// stateRecord is the TOML shape of the provisioning state file. The file
// is a breadcrumb for operators and support tooling; the workflow never
// reads it back, so a stale or deleted file changes nothing.
type stateRecord struct {
	PythonVersion string    `toml:"python_version"`
	RuntimeOrigin string    `toml:"runtime_origin"`
	RuntimePath   string    `toml:"runtime_path"`
	VenvPath      string    `toml:"venv_path"`
	Dependencies  int       `toml:"dependencies"`
	ProvisionedAt time.Time `toml:"provisioned_at"`
}

// writeStateFile records the outcome of a successful run next to the pin
// file and manifest.
func writeStateFile(dir string, report *Report) error {
	record := stateRecord{
		PythonVersion: report.Runtime.Version.String(),
		RuntimeOrigin: report.Runtime.Origin.String(),
		RuntimePath:   report.Runtime.Path,
		VenvPath:      report.EnvPath,
		Dependencies:  report.Dependencies,
		ProvisionedAt: time.Now().UTC(),
	}

	data, err := toml.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode provisioning state: %w", err)
	}

	path := filepath.Join(dir, StateFileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write provisioning state: %w", err)
	}
	return nil
}
