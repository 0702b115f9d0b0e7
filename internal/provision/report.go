// SPDX-License-Identifier: MPL-2.0

package provision

import (
	"gamebox-setup/internal/host"
	"gamebox-setup/internal/pyruntime"
)

// The application's entry points, launched in this order: the lobby server
// is a network client of the DB server and fails fast if started first.
const (
	DBServerScript    = "server/db_server.py"
	LobbyServerScript = "server/lobby_server.py"
)

// Report describes a completed provisioning run.
type Report struct {
	// Runtime is the interpreter the environment was built with.
	Runtime pyruntime.Descriptor
	// EnvPath is the isolated environment directory.
	EnvPath string
	// EnvCreated reports whether this run built the environment or found
	// it already present.
	EnvCreated bool
	// Dependencies is the number of manifest entries applied.
	Dependencies int
}

// Instructions returns the commands the operator runs next, in launch
// order: activate the environment, start the DB server, start the lobby
// server.
func (r *Report) Instructions() []string {
	return []string{
		host.ActivateCommand(VenvDirName),
		"python " + DBServerScript,
		"python " + LobbyServerScript,
	}
}
