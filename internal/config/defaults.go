package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/meltris.yaml
var defaultMeltrisYAML []byte

// DefaultMeltrisConfig returns the default meltris configuration.
// It mirrors defaults/meltris.yaml and is used when the embedded file cannot be parsed.
func DefaultMeltrisConfig() MeltrisConfig {
	return MeltrisConfig{
		Timing: TimingConfig{
			LockDelay: 500 * time.Millisecond,
			NextQueue: 3,
			Gravity: GravityCurve{
				Base: 0.8,
				Step: 0.007,
			},
			MinGravity: time.Millisecond,
		},
		Repeat: RepeatConfig{
			ShiftDelay:       300 * time.Millisecond,
			ShiftInterval:    50 * time.Millisecond,
			SoftDropInterval: 50 * time.Millisecond,
		},
		Melt: MeltConfig{
			Enabled: true,
			IceToMiddle: MeltRange{
				Base:  20 * time.Second,
				Range: 10 * time.Second,
			},
			MiddleToWater: MeltRange{
				Base:  10 * time.Second,
				Range: 5 * time.Second,
			},
			LevelFactor: 0.9,
			Minimum:     2 * time.Second,
		},
		Progression: ProgressionConfig{
			StartLevel:    1,
			LinesPerLevel: 10,
			TimeLimit:     3 * time.Minute,
		},
	}
}
