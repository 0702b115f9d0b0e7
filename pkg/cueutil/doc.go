// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides helpers for validating user-authored CUE files:
// size capping and error formatting with JSON-style value paths.
package cueutil
