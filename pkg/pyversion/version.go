// SPDX-License-Identifier: EPL-2.0

// Package pyversion parses and compares CPython version strings.
//
// Comparison is strictly numeric per component. This matters: the string
// "3.9" sorts after "3.11" lexically, which is exactly the bug class this
// package exists to avoid.
package pyversion

import (
	"fmt"
	"regexp"
	"strconv"
)

// Version is a parsed interpreter version.
type Version struct {
	Major    int
	Minor    int
	Patch    int
	Original string
}

// Requirement is a minimum (major, minor) version bound. Patch level is
// intentionally not part of the requirement.
type Requirement struct {
	Major int
	Minor int
}

// versionRegex matches version strings like "3", "3.11", "3.11.0", with an
// optional leading "v" and an optional suffix (e.g. "3.13.0rc1") that is
// ignored for comparison purposes.
var versionRegex = regexp.MustCompile(`^v?(\d+)(?:\.(\d+))?(?:\.(\d+))?([a-z][0-9a-z]*)?$`)

// Parse parses a version string into a Version.
func Parse(s string) (Version, error) {
	matches := versionRegex.FindStringSubmatch(s)
	if matches == nil {
		return Version{}, fmt.Errorf("invalid version format: %q", s)
	}

	v := Version{Original: s}

	var err error
	v.Major, err = strconv.Atoi(matches[1])
	if err != nil {
		return Version{}, fmt.Errorf("invalid major version: %w", err)
	}

	if matches[2] != "" {
		v.Minor, err = strconv.Atoi(matches[2])
		if err != nil {
			return Version{}, fmt.Errorf("invalid minor version: %w", err)
		}
	}

	if matches[3] != "" {
		v.Patch, err = strconv.Atoi(matches[3])
		if err != nil {
			return Version{}, fmt.Errorf("invalid patch version: %w", err)
		}
	}

	return v, nil
}

// String returns the original version string.
func (v Version) String() string {
	if v.Original != "" {
		return v.Original
	}
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Compare compares two versions numerically.
// Returns -1 if v < other, 0 if v == other, 1 if v > other.
func (v Version) Compare(other Version) int {
	if v.Major != other.Major {
		if v.Major < other.Major {
			return -1
		}
		return 1
	}

	if v.Minor != other.Minor {
		if v.Minor < other.Minor {
			return -1
		}
		return 1
	}

	if v.Patch != other.Patch {
		if v.Patch < other.Patch {
			return -1
		}
		return 1
	}

	return 0
}

// SatisfiedBy reports whether version v meets the requirement. Any patch
// level of the required (major, minor) qualifies, as do newer minors and
// majors.
func (r Requirement) SatisfiedBy(v Version) bool {
	if v.Major != r.Major {
		return v.Major > r.Major
	}
	return v.Minor >= r.Minor
}

// String returns the requirement as "major.minor".
func (r Requirement) String() string {
	return fmt.Sprintf("%d.%d", r.Major, r.Minor)
}
