package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const meltrisFile = "meltris.yaml"

// LoadMeltris loads the meltris configuration.
// Search order: customPath -> ~/.meltris/configs/meltris.yaml -> ./configs/meltris.yaml -> embedded default.
// Files are decoded over the defaults, so a partial file only overrides what it names.
func LoadMeltris(customPath string) (MeltrisConfig, error) {
	cfg := DefaultMeltrisConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then the local configs directory
	for _, path := range []string{userConfigPath(meltrisFile), filepath.Join("configs", meltrisFile)} {
		if path == "" {
			continue
		}
		if fileCfg, ok := readConfigFile(path); ok {
			return fileCfg, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultMeltrisYAML, &cfg); err != nil || cfg.Validate() != nil {
		return DefaultMeltrisConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// readConfigFile decodes path over the defaults. Missing, unparsable or
// invalid files are skipped so the next location can be tried.
func readConfigFile(path string) (MeltrisConfig, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return MeltrisConfig{}, false
	}
	cfg := DefaultMeltrisConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return MeltrisConfig{}, false
	}
	if cfg.Validate() != nil {
		return MeltrisConfig{}, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".meltris", "configs", filename)
}

// ApplyMeltrisPreset modifies the config based on a difficulty preset.
func ApplyMeltrisPreset(cfg *MeltrisConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Progression.LinesPerLevel = 0
		return
	}
	cfg.Progression.StartLevel = StartLevelForPreset(preset)

	// Adjust melting based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Melt.LevelFactor = 0.95
		cfg.Timing.LockDelay = 700 * time.Millisecond
	case DifficultyHard:
		cfg.Melt.LevelFactor = 0.8
		cfg.Melt.IceToMiddle.Base /= 2
		cfg.Melt.MiddleToWater.Base /= 2
	}
}
