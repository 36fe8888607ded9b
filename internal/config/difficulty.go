package config

import (
	"math"
	"time"
)

// LevelCurve derives level-dependent game parameters from a config.
// All methods are pure functions of their arguments.
type LevelCurve struct {
	cfg MeltrisConfig
}

// NewLevelCurve creates a level curve for the given config.
func NewLevelCurve(cfg MeltrisConfig) *LevelCurve {
	return &LevelCurve{cfg: cfg}
}

// Level returns the level reached after clearing the given number of lines.
func (c *LevelCurve) Level(lines int) int {
	start := max(c.cfg.Progression.StartLevel, 1)
	per := c.cfg.Progression.LinesPerLevel
	if per <= 0 || lines <= 0 {
		return start
	}
	return start + lines/per
}

// GravityInterval returns how long the active piece waits between
// one-row falls at the given level.
func (c *LevelCurve) GravityInterval(level int) time.Duration {
	n := float64(max(level, 1) - 1)
	g := c.cfg.Timing.Gravity
	base := g.Base - n*g.Step
	interval := c.cfg.Timing.MinGravity
	if base > 0 {
		secs := math.Pow(base, n)
		interval = max(time.Duration(secs*float64(time.Second)), c.cfg.Timing.MinGravity)
	}
	return interval
}

// MeltTimes returns the two decay windows for blocks placed at the given
// level. Both base and range shrink by LevelFactor per level above 1;
// the base never drops below Minimum.
func (c *LevelCurve) MeltTimes(level int) (iceToMiddle, middleToWater MeltRange) {
	m := c.cfg.Melt
	scale := math.Pow(m.LevelFactor, float64(max(level, 1)-1))
	return scaleRange(m.IceToMiddle, scale, m.Minimum), scaleRange(m.MiddleToWater, scale, m.Minimum)
}

func scaleRange(r MeltRange, scale float64, floor time.Duration) MeltRange {
	return MeltRange{
		Base:  max(time.Duration(float64(r.Base)*scale), floor),
		Range: time.Duration(float64(r.Range) * scale),
	}
}
