// Package config provides YAML-based game configuration loading and
// difficulty management for meltris.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// MeltrisConfig contains all tunable parameters of a meltris round.
type MeltrisConfig struct {
	Timing      TimingConfig      `yaml:"timing"`
	Repeat      RepeatConfig      `yaml:"repeat"`
	Melt        MeltConfig        `yaml:"melt"`
	Progression ProgressionConfig `yaml:"progression"`
}

// TimingConfig defines piece timing.
type TimingConfig struct {
	LockDelay  time.Duration `yaml:"lock_delay"`
	NextQueue  int           `yaml:"next_queue"` // Number of upcoming pieces shown
	Gravity    GravityCurve  `yaml:"gravity"`
	MinGravity time.Duration `yaml:"min_gravity"` // Floor for the fall interval at high levels
}

// GravityCurve parameterizes the fall interval per level:
// (Base - (level-1)*Step)^(level-1) seconds.
type GravityCurve struct {
	Base float64 `yaml:"base"`
	Step float64 `yaml:"step"`
}

// RepeatConfig defines key auto-repeat for hosts that report key release.
type RepeatConfig struct {
	ShiftDelay       time.Duration `yaml:"shift_delay"`
	ShiftInterval    time.Duration `yaml:"shift_interval"`
	SoftDropInterval time.Duration `yaml:"soft_drop_interval"`
}

// MeltConfig defines the two-stage decay of settled blocks.
type MeltConfig struct {
	Enabled       bool          `yaml:"enabled"`
	IceToMiddle   MeltRange     `yaml:"ice_to_middle"`
	MiddleToWater MeltRange     `yaml:"middle_to_water"`
	LevelFactor   float64       `yaml:"level_factor"` // Applied once per level above 1
	Minimum       time.Duration `yaml:"minimum"`      // Floor for the scaled base
}

// MeltRange is a uniform duration window [Base, Base+Range).
type MeltRange struct {
	Base  time.Duration `yaml:"base"`
	Range time.Duration `yaml:"range"`
}

// ProgressionConfig defines level progression and the timed mode.
type ProgressionConfig struct {
	StartLevel    int           `yaml:"start_level"`
	LinesPerLevel int           `yaml:"lines_per_level"` // 0 = level never changes
	TimeLimit     time.Duration `yaml:"time_limit"`      // Countdown of the ultra mode
}

// Validate reports the first nonsensical value in the config.
func (c MeltrisConfig) Validate() error {
	switch {
	case c.Timing.NextQueue < 1:
		return fmt.Errorf("%w: next_queue must be at least 1, got %d", ErrInvalidConfig, c.Timing.NextQueue)
	case c.Timing.LockDelay <= 0:
		return fmt.Errorf("%w: lock_delay must be positive", ErrInvalidConfig)
	case c.Timing.Gravity.Base <= 0 || c.Timing.Gravity.Base > 1:
		return fmt.Errorf("%w: gravity base must be in (0, 1], got %g", ErrInvalidConfig, c.Timing.Gravity.Base)
	case c.Timing.Gravity.Step < 0:
		return fmt.Errorf("%w: gravity step must not be negative", ErrInvalidConfig)
	case c.Timing.MinGravity <= 0:
		return fmt.Errorf("%w: min_gravity must be positive", ErrInvalidConfig)
	case c.Repeat.ShiftInterval <= 0 || c.Repeat.SoftDropInterval <= 0:
		return fmt.Errorf("%w: repeat intervals must be positive", ErrInvalidConfig)
	case c.Repeat.ShiftDelay < 0:
		return fmt.Errorf("%w: shift_delay must not be negative", ErrInvalidConfig)
	case c.Progression.StartLevel < 1:
		return fmt.Errorf("%w: start_level must be at least 1, got %d", ErrInvalidConfig, c.Progression.StartLevel)
	case c.Progression.LinesPerLevel < 0:
		return fmt.Errorf("%w: lines_per_level must not be negative", ErrInvalidConfig)
	case c.Progression.TimeLimit < 0:
		return fmt.Errorf("%w: time_limit must not be negative", ErrInvalidConfig)
	}

	if c.Melt.Enabled {
		m := c.Melt
		switch {
		case m.IceToMiddle.Base <= 0 || m.MiddleToWater.Base <= 0:
			return fmt.Errorf("%w: melt base durations must be positive", ErrInvalidConfig)
		case m.IceToMiddle.Range < 0 || m.MiddleToWater.Range < 0:
			return fmt.Errorf("%w: melt ranges must not be negative", ErrInvalidConfig)
		case m.LevelFactor <= 0 || m.LevelFactor > 1:
			return fmt.Errorf("%w: melt level_factor must be in (0, 1], got %g", ErrInvalidConfig, m.LevelFactor)
		case m.Minimum <= 0:
			return fmt.Errorf("%w: melt minimum must be positive", ErrInvalidConfig)
		}
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParseDifficultyPreset maps a CLI flag value to a preset.
// Unknown values return false.
func ParseDifficultyPreset(s string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	default:
		return "", false
	}
}

// StartLevelForPreset returns the start level for a difficulty preset.
func StartLevelForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyHard:
		return 5
	default:
		return 1
	}
}

// IsFixedPreset returns true if the preset disables level progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
