// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"gamebox-setup/internal/testutil"
)

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	cfgDir := t.TempDir()
	SetConfigDirOverride(cfgDir)
	t.Cleanup(Reset)

	cfg, _, err := loadWithOptions(context.Background(), LoadOptions{})
	if err != nil {
		t.Fatalf("loadWithOptions failed: %v", err)
	}

	if cfg.UI.Verbose {
		t.Error("default ui.verbose should be false")
	}
	if cfg.UI.ColorScheme != ColorSchemeAuto {
		t.Errorf("default ui.color_scheme = %q, want %q", cfg.UI.ColorScheme, ColorSchemeAuto)
	}
	if len(cfg.Hooks.PostSetup) != 0 {
		t.Errorf("default hooks.post_setup = %v, want empty", cfg.Hooks.PostSetup)
	}
}

func TestLoad_ReadsCUEFile(t *testing.T) {
	cfgDir := t.TempDir()
	testutil.MustWriteFile(t, filepath.Join(cfgDir, "config.cue"), `
ui: {
	verbose:      true
	color_scheme: "dark"
}

hooks: post_setup: ["python --version"]
`)

	cfg, resolved, err := loadWithOptions(context.Background(), LoadOptions{ConfigDirPath: cfgDir})
	if err != nil {
		t.Fatalf("loadWithOptions failed: %v", err)
	}

	if !cfg.UI.Verbose {
		t.Error("ui.verbose should be true")
	}
	if cfg.UI.ColorScheme != ColorSchemeDark {
		t.Errorf("ui.color_scheme = %q, want dark", cfg.UI.ColorScheme)
	}
	if len(cfg.Hooks.PostSetup) != 1 || cfg.Hooks.PostSetup[0] != "python --version" {
		t.Errorf("hooks.post_setup = %v", cfg.Hooks.PostSetup)
	}
	if resolved == "" {
		t.Error("resolved path should name the loaded file")
	}
}

func TestLoad_RejectsSchemaViolation(t *testing.T) {
	cfgDir := t.TempDir()
	testutil.MustWriteFile(t, filepath.Join(cfgDir, "config.cue"), `
ui: color_scheme: "solarized"
`)

	_, _, err := loadWithOptions(context.Background(), LoadOptions{ConfigDirPath: cfgDir})
	if err == nil {
		t.Fatal("loadWithOptions succeeded with out-of-schema value, want error")
	}
}

func TestLoad_ExplicitPathMustExist(t *testing.T) {
	t.Parallel()

	_, _, err := loadWithOptions(context.Background(), LoadOptions{
		ConfigFilePath: filepath.Join(t.TempDir(), "nope.cue"),
	})
	if err == nil {
		t.Fatal("loadWithOptions succeeded with missing explicit file, want error")
	}
}

func TestColorScheme_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		scheme ColorScheme
		want   bool
	}{
		{"auto", ColorSchemeAuto, true},
		{"dark", ColorSchemeDark, true},
		{"light", ColorSchemeLight, true},
		{"unknown", ColorScheme("solarized"), false},
		{"empty", ColorScheme(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			isValid, errs := tt.scheme.IsValid()
			if isValid != tt.want {
				t.Errorf("ColorScheme(%q).IsValid() = %v, want %v", tt.scheme, isValid, tt.want)
			}
			if !tt.want {
				if len(errs) == 0 {
					t.Fatal("invalid scheme should return errors")
				}
				if !errors.Is(errs[0], ErrInvalidColorScheme) {
					t.Errorf("error should wrap ErrInvalidColorScheme, got %v", errs[0])
				}
			}
		})
	}
}
