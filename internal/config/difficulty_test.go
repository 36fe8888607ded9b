package config

import (
	"testing"
	"time"
)

func approx(a, b, tolerance time.Duration) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= tolerance
}

func TestLevelCurveLevel(t *testing.T) {
	c := NewLevelCurve(DefaultMeltrisConfig())

	tests := []struct {
		lines, level int
	}{
		{0, 1},
		{9, 1},
		{10, 2},
		{25, 3},
		{100, 11},
	}
	for _, tc := range tests {
		if got := c.Level(tc.lines); got != tc.level {
			t.Errorf("Level(%d) = %d, expected %d", tc.lines, got, tc.level)
		}
	}

	cfg := DefaultMeltrisConfig()
	cfg.Progression.StartLevel = 4
	cfg.Progression.LinesPerLevel = 0
	fixed := NewLevelCurve(cfg)
	if got := fixed.Level(500); got != 4 {
		t.Errorf("fixed Level(500) = %d, expected 4", got)
	}
}

func TestLevelCurveGravityInterval(t *testing.T) {
	c := NewLevelCurve(DefaultMeltrisConfig())

	if got := c.GravityInterval(1); got != time.Second {
		t.Errorf("GravityInterval(1) = %v, expected 1s", got)
	}
	if got := c.GravityInterval(2); !approx(got, 793*time.Millisecond, time.Microsecond) {
		t.Errorf("GravityInterval(2) = %v, expected 793ms", got)
	}

	// Monotonically faster, never below the floor
	prev := c.GravityInterval(1)
	for level := 2; level <= 30; level++ {
		cur := c.GravityInterval(level)
		if cur > prev {
			t.Errorf("GravityInterval(%d) = %v slower than level %d (%v)", level, cur, level-1, prev)
		}
		if cur < time.Millisecond {
			t.Errorf("GravityInterval(%d) = %v below floor", level, cur)
		}
		prev = cur
	}
}

func TestLevelCurveMeltTimes(t *testing.T) {
	c := NewLevelCurve(DefaultMeltrisConfig())

	ice, water := c.MeltTimes(1)
	if ice.Base != 20*time.Second || ice.Range != 10*time.Second {
		t.Errorf("level 1 ice = %+v", ice)
	}
	if water.Base != 10*time.Second || water.Range != 5*time.Second {
		t.Errorf("level 1 water = %+v", water)
	}

	ice, _ = c.MeltTimes(2)
	if !approx(ice.Base, 18*time.Second, time.Microsecond) || !approx(ice.Range, 9*time.Second, time.Microsecond) {
		t.Errorf("level 2 ice = %+v, expected 18s+9s", ice)
	}

	ice, water = c.MeltTimes(40)
	if ice.Base != 2*time.Second || water.Base != 2*time.Second {
		t.Errorf("level 40 bases = %v, %v, expected floor 2s", ice.Base, water.Base)
	}
}
