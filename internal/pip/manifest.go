// SPDX-License-Identifier: MPL-2.0

// Package pip installs the pinned dependency manifest into the isolated
// environment through the environment's own interpreter.
package pip

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Entry is one dependency manifest line: a package name plus an optional
// version constraint, kept verbatim for the installer.
type Entry struct {
	// Name is the bare package name.
	Name string
	// Raw is the full requirement line as written (e.g. "requests>=2.0").
	Raw string
}

// LoadManifest reads and parses the manifest file at path.
func LoadManifest(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dependency manifest: %w", err)
	}
	defer f.Close()

	entries, err := ParseManifest(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}

// ParseManifest parses requirements from r, preserving entry order.
// Blank lines and "#" comments are ignored; everything else passes through
// verbatim so the installer's own resolver interprets constraint syntax.
func ParseManifest(r io.Reader) ([]Entry, error) {
	var entries []Entry

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Strip a trailing inline comment.
		if idx := strings.Index(line, " #"); idx >= 0 {
			line = strings.TrimSpace(line[:idx])
		}

		name := packageName(line)
		if name == "" {
			return nil, fmt.Errorf("line %d: cannot determine package name from %q", lineNo, line)
		}

		entries = append(entries, Entry{Name: name, Raw: line})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	return entries, nil
}

// packageName extracts the bare package name from a requirement line by
// cutting at the first constraint, extras, or marker character.
func packageName(line string) string {
	if idx := strings.IndexAny(line, "=<>!~[; "); idx >= 0 {
		return strings.TrimSpace(line[:idx])
	}
	return strings.TrimSpace(line)
}
