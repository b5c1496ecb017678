package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultYAMLMatchesDefaultConfig(t *testing.T) {
	cfg, err := parse(DefaultYAML())
	if err != nil {
		t.Fatalf("parse(DefaultYAML()) error = %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("embedded defaults = %+v, expected %+v", cfg, DefaultConfig())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, expected nil", err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("board:\n  rows: 4\nrules:\n  legacy_edge_scan: true\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Board.Rows != 4 {
		t.Errorf("Board.Rows = %d, expected 4", cfg.Board.Rows)
	}
	if cfg.Board.Cols != 15 {
		t.Errorf("Board.Cols = %d, expected default 15", cfg.Board.Cols)
	}
	if !cfg.Rules.LegacyEdgeScan {
		t.Error("Rules.LegacyEdgeScan = false, expected true")
	}
	if got := cfg.CoreRules(); got.ClearBonus != 1000 || !got.LegacyEdgeScan {
		t.Errorf("CoreRules() = %+v", got)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load(missing) = nil error, expected failure")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("board: [\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("Load(bad) = nil error, expected failure")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		valid  bool
	}{
		{"defaults", func(*Config) {}, true},
		{"zero rows", func(c *Config) { c.Board.Rows = 0 }, false},
		{"negative cols", func(c *Config) { c.Board.Cols = -1 }, false},
		{"zero min cluster", func(c *Config) { c.Rules.MinClusterSize = 0 }, false},
		{"negative bonus", func(c *Config) { c.Rules.ClearBonus = -5 }, false},
		{"negative step", func(c *Config) { c.Replay.StepMillis = -1 }, false},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, false},
		{"empty level", func(c *Config) { c.Log.Level = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.valid && err != nil {
				t.Errorf("Validate() = %v, expected nil", err)
			}
			if !tt.valid && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, expected ErrInvalidConfig", err)
			}
		})
	}
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset  RulesPreset
		minSize int
		legacy  bool
		bonus   int
	}{
		{"", 2, false, 1000},
		{PresetClassic, 2, false, 1000},
		{PresetLegacy, 2, true, 1000},
		{PresetStrict, 3, false, 1000},
		{PresetNoBonus, 2, false, 0},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		if err := ApplyPreset(&cfg, tt.preset); err != nil {
			t.Fatalf("ApplyPreset(%q) error = %v", tt.preset, err)
		}
		if cfg.Rules.MinClusterSize != tt.minSize || cfg.Rules.LegacyEdgeScan != tt.legacy || cfg.Rules.ClearBonus != tt.bonus {
			t.Errorf("ApplyPreset(%q) rules = %+v", tt.preset, cfg.Rules)
		}
	}

	cfg := DefaultConfig()
	if err := ApplyPreset(&cfg, "chaos"); err == nil {
		t.Error("ApplyPreset(chaos) = nil, expected error")
	}
}

func TestExpandHome(t *testing.T) {
	got, err := ExpandHome("/tmp/x.db")
	if err != nil || got != "/tmp/x.db" {
		t.Errorf("ExpandHome(abs) = %q, %v", got, err)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got, err = ExpandHome("~/scores.db")
	if err != nil {
		t.Fatalf("ExpandHome() error = %v", err)
	}
	if expected := filepath.Join(home, "scores.db"); got != expected {
		t.Errorf("ExpandHome() = %q, expected %q", got, expected)
	}
}
