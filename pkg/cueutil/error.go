// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"
	"strconv"
	"strings"

	"cuelang.org/go/cue/errors"
)

// DefaultMaxFileSize caps CUE input files at 1 MiB. Config files are tiny;
// anything larger is a mistake or an attack on the parser.
const DefaultMaxFileSize = 1 << 20

// FormatError formats a CUE error with JSON path prefixes for clear
// error messages.
//
// Error format: <json-path>: <message>, one line per underlying CUE error,
// prefixed by the file path.
//
// Example:
//
//	config.cue: ui.verbose: conflicting values true and "yes"
func FormatError(err error, filePath string) error {
	if err == nil {
		return nil
	}

	cueErrors := errors.Errors(err)
	if len(cueErrors) == 0 {
		// Not a CUE error, return as-is with file context.
		return fmt.Errorf("%s: %w", filePath, err)
	}

	var lines []string
	for _, e := range cueErrors {
		pathStr := formatPath(errors.Path(e))
		msg := e.Error()

		// CUE sometimes repeats the path inside the message itself.
		if pathStr != "" && strings.HasPrefix(msg, pathStr) {
			msg = strings.TrimPrefix(msg, pathStr)
			msg = strings.TrimPrefix(msg, ":")
			msg = strings.TrimSpace(msg)
		}

		if pathStr != "" {
			lines = append(lines, fmt.Sprintf("%s: %s", pathStr, msg))
		} else {
			lines = append(lines, msg)
		}
	}

	return fmt.Errorf("%s: %s", filePath, strings.Join(lines, "; "))
}

// CheckFileSize rejects inputs larger than maxSize bytes.
func CheckFileSize(data []byte, maxSize int, filePath string) error {
	if len(data) > maxSize {
		return fmt.Errorf("%s: file size %d exceeds maximum %d bytes", filePath, len(data), maxSize)
	}
	return nil
}

// formatPath renders a CUE error path as a JSON-ish dotted path, with
// numeric tokens shown as indices (e.g. "hooks.post_setup[0]").
func formatPath(path []string) string {
	var b strings.Builder
	for _, token := range path {
		if _, err := strconv.Atoi(token); err == nil {
			b.WriteString("[" + token + "]")
			continue
		}
		if b.Len() > 0 {
			b.WriteString(".")
		}
		b.WriteString(token)
	}
	return b.String()
}
