package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := LoadMeltris("")
	if err != nil {
		t.Fatalf("LoadMeltris: %v", err)
	}
	if cfg != DefaultMeltrisConfig() {
		t.Errorf("embedded defaults differ from DefaultMeltrisConfig:\n%+v\n%+v", cfg, DefaultMeltrisConfig())
	}
}

func TestLoadCustomPathOverridesPartially(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("timing:\n  lock_delay: 250ms\n  next_queue: 5\nprogression:\n  lines_per_level: 5\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadMeltris(path)
	if err != nil {
		t.Fatalf("LoadMeltris: %v", err)
	}
	if cfg.Timing.LockDelay != 250*time.Millisecond {
		t.Errorf("LockDelay = %v, expected 250ms", cfg.Timing.LockDelay)
	}
	if cfg.Timing.NextQueue != 5 {
		t.Errorf("NextQueue = %d, expected 5", cfg.Timing.NextQueue)
	}
	if cfg.Progression.LinesPerLevel != 5 {
		t.Errorf("LinesPerLevel = %d, expected 5", cfg.Progression.LinesPerLevel)
	}
	// Untouched sections keep their defaults
	if cfg.Melt != DefaultMeltrisConfig().Melt {
		t.Errorf("Melt = %+v, expected defaults", cfg.Melt)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadMeltris(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("timing: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadMeltris(bad); err == nil {
		t.Error("expected error for malformed YAML")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("timing:\n  next_queue: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadMeltris(invalid)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*MeltrisConfig)
		valid  bool
	}{
		{"defaults", func(*MeltrisConfig) {}, true},
		{"empty next queue", func(c *MeltrisConfig) { c.Timing.NextQueue = 0 }, false},
		{"zero lock delay", func(c *MeltrisConfig) { c.Timing.LockDelay = 0 }, false},
		{"gravity base above one", func(c *MeltrisConfig) { c.Timing.Gravity.Base = 1.5 }, false},
		{"zero shift interval", func(c *MeltrisConfig) { c.Repeat.ShiftInterval = 0 }, false},
		{"start level zero", func(c *MeltrisConfig) { c.Progression.StartLevel = 0 }, false},
		{"negative melt range", func(c *MeltrisConfig) { c.Melt.IceToMiddle.Range = -time.Second }, false},
		{"melt disabled ignores melt values", func(c *MeltrisConfig) {
			c.Melt.Enabled = false
			c.Melt.LevelFactor = 0
		}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultMeltrisConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.valid && err != nil {
				t.Errorf("Validate() = %v, expected nil", err)
			}
			if !tc.valid && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, expected ErrInvalidConfig", err)
			}
		})
	}
}

func TestApplyMeltrisPreset(t *testing.T) {
	cfg := DefaultMeltrisConfig()
	ApplyMeltrisPreset(&cfg, DifficultyHard)
	if cfg.Progression.StartLevel != 5 {
		t.Errorf("hard StartLevel = %d, expected 5", cfg.Progression.StartLevel)
	}
	if cfg.Melt.IceToMiddle.Base != 10*time.Second {
		t.Errorf("hard IceToMiddle.Base = %v, expected 10s", cfg.Melt.IceToMiddle.Base)
	}

	cfg = DefaultMeltrisConfig()
	ApplyMeltrisPreset(&cfg, DifficultyFixed)
	if cfg.Progression.LinesPerLevel != 0 {
		t.Errorf("fixed LinesPerLevel = %d, expected 0", cfg.Progression.LinesPerLevel)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("fixed preset produced invalid config: %v", err)
	}
}

func TestParseDifficultyPreset(t *testing.T) {
	if p, ok := ParseDifficultyPreset("easy"); !ok || p != DifficultyEasy {
		t.Errorf("ParseDifficultyPreset(easy) = %q, %v", p, ok)
	}
	if _, ok := ParseDifficultyPreset("nightmare"); ok {
		t.Error("unknown preset should not parse")
	}
}
