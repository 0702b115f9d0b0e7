// SPDX-License-Identifier: EPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	VersionManagerMissingId Id = iota + 1
	RuntimeInstallFailedId
	EnvironmentCreateFailedId
	DependencyInstallFailedId
	PinFileInvalidId
	ManifestMissingId
	ConfigLoadFailedId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also: "
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "]"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	versionManagerMissingIssue = &Issue{
		id: VersionManagerMissingId,
		mdMsg: `
# pyenv not found!

No system Python meets the minimum version, and the pyenv version manager
is not installed, so a pinned interpreter cannot be provisioned.

## Things you can try (either one unblocks setup):
- Install pyenv and re-run setup:
  - Linux/macOS: https://github.com/pyenv/pyenv#installation
  - Windows: https://github.com/pyenv-win/pyenv-win
~~~
$ curl -fsSL https://pyenv.run | bash
~~~

- Or install a system-wide Python that meets the minimum version and
  re-run setup; the version manager is only used as a fallback.`,
		extLinks: []HttpLink{"https://github.com/pyenv/pyenv"},
	}

	runtimeInstallFailedIssue = &Issue{
		id: RuntimeInstallFailedId,
		mdMsg: `
# Python install failed!

pyenv could not install the pinned Python version. The tool's own output
above has the specific cause.

## Common causes:
- No network connectivity to the CPython download mirrors
- Missing build dependencies (pyenv compiles CPython from source)
- Insufficient disk space or permissions under the pyenv root

## Things you can try:
- Install the build prerequisites for your platform:
~~~
$ sudo apt install build-essential libssl-dev zlib1g-dev libreadline-dev
~~~

- Re-run setup once the underlying problem is fixed; completed steps are
  skipped automatically.`,
		extLinks: []HttpLink{"https://github.com/pyenv/pyenv/wiki/Common-build-problems"},
	}

	environmentCreateFailedIssue = &Issue{
		id: EnvironmentCreateFailedId,
		mdMsg: `
# Virtual environment creation failed!

The interpreter exited non-zero while materializing the .venv directory.

## Common causes:
- Insufficient disk space
- The project directory is not writable
- A broken or partial interpreter installation

## Things you can try:
- Check free space and directory permissions
- Remove a half-created environment and re-run setup:
~~~
$ rm -rf .venv
~~~`,
	}

	dependencyInstallFailedIssue = &Issue{
		id: DependencyInstallFailedId,
		mdMsg: `
# Dependency install failed!

pip could not install one of the packages listed in requirements.txt.
The failing package is named in the error above, and pip's own output has
the specific cause.

## Common causes:
- Transient network failure reaching the package index
- A version constraint that cannot be satisfied
- A package that needs system libraries to build

## Things you can try:
- Re-run setup; installation is idempotent and picks up where it left off
- Check the constraint for the named package in requirements.txt
- Try installing the package by hand inside the environment to see the
  full resolver output:
~~~
$ .venv/bin/python -m pip install <package>
~~~`,
	}

	pinFileInvalidIssue = &Issue{
		id: PinFileInvalidId,
		mdMsg: `
# Version pin file missing or invalid!

Setup needs a single-line .python-version file at the project root holding
the exact pinned interpreter version (e.g. 3.11.0).

## Things you can try:
- Scaffold the standard project files:
~~~
$ gamebox-setup init
~~~

- Or create the pin by hand:
~~~
$ echo "3.11.0" > .python-version
~~~`,
	}

	manifestMissingIssue = &Issue{
		id: ManifestMissingId,
		mdMsg: `
# Dependency manifest missing!

Setup needs a requirements.txt file at the project root listing the
packages to install into the environment.

## Things you can try:
- Scaffold the standard project files:
~~~
$ gamebox-setup init
~~~

- Or create a minimal manifest by hand:
~~~
$ echo "requests>=2.0" > requirements.txt
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Could not load the gamebox-setup configuration file.

## Configuration file locations:
- Linux: ~/.config/gamebox-setup/config.cue
- macOS: ~/Library/Application Support/gamebox-setup/config.cue
- Windows: %APPDATA%\gamebox-setup\config.cue

## Things you can try:
- Check the configuration syntax against the schema
- Show the effective configuration:
~~~
$ gamebox-setup config show
~~~

- Remove the config file to fall back to defaults

## Example configuration:
~~~cue
ui: {
  color_scheme: "auto"
  verbose: false
}

hooks: {
  post_setup: [
    "python --version",
  ]
}
~~~`,
	}

	issues = map[Id]*Issue{
		versionManagerMissingIssue.Id():   versionManagerMissingIssue,
		runtimeInstallFailedIssue.Id():    runtimeInstallFailedIssue,
		environmentCreateFailedIssue.Id(): environmentCreateFailedIssue,
		dependencyInstallFailedIssue.Id(): dependencyInstallFailedIssue,
		pinFileInvalidIssue.Id():          pinFileInvalidIssue,
		manifestMissingIssue.Id():         manifestMissingIssue,
		configLoadFailedIssue.Id():        configLoadFailedIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
