// SPDX-License-Identifier: MPL-2.0

package host

import (
	"path/filepath"
	"runtime"
)

// OS name constants for runtime.GOOS comparisons.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
)

// PythonCandidates returns interpreter names to probe on PATH, in order of
// preference for the current platform. On Unix systems "python" often maps
// to Python 2 or is absent, so "python3" is tried first; the Windows
// installer ships plain "python".
func PythonCandidates() []string {
	if runtime.GOOS == Windows {
		return []string{"python", "python3"}
	}
	return []string{"python3", "python"}
}

// VersionManagerExecutable returns the name of the pyenv executable.
// pyenv-win installs a "pyenv" shim as well, so the name is uniform.
func VersionManagerExecutable() string {
	return "pyenv"
}

// VenvScriptsDir returns the name of the directory inside a virtual
// environment that holds its executables.
func VenvScriptsDir() string {
	if runtime.GOOS == Windows {
		return "Scripts"
	}
	return "bin"
}

// VenvPython returns the path of the interpreter inside venvDir.
func VenvPython(venvDir string) string {
	return filepath.Join(venvDir, VenvScriptsDir(), exeName("python"))
}

// ManagedPython returns the interpreter path for a pyenv-managed version
// under the given pyenv root.
func ManagedPython(pyenvRoot, version string) string {
	if runtime.GOOS == Windows {
		// pyenv-win lays versions out flat: <root>\versions\<v>\python.exe
		return filepath.Join(pyenvRoot, "versions", version, "python.exe")
	}
	return filepath.Join(pyenvRoot, "versions", version, "bin", "python")
}

// ActivateCommand returns the shell command an operator runs to activate
// the virtual environment at venvDir.
func ActivateCommand(venvDir string) string {
	if runtime.GOOS == Windows {
		return filepath.Join(venvDir, "Scripts", "activate")
	}
	return "source " + venvDir + "/bin/activate"
}

func exeName(name string) string {
	if runtime.GOOS == Windows {
		return name + ".exe"
	}
	return name
}
