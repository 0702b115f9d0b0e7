// SPDX-License-Identifier: MPL-2.0

// Package config loads the optional gamebox-setup configuration file:
// a CUE document validated against an embedded schema and merged into
// Viper over built-in defaults.
package config
