package engine

import (
	"time"

	"github.com/vovakirdan/meltris/internal/config"
)

// linePoints is the base score per number of rows cleared by one placement.
var linePoints = [...]int{0, 100, 300, 500, 800}

// NoCombo is the combo value when no clearing streak is running.
const NoCombo = -1

// Progression tracks the scoring state of a round.
type Progression struct {
	Score    int
	Level    int
	Lines    int
	Combo    int
	TimeLeft time.Duration // Zero unless the round is time-limited
}

// LineScore returns the points for clearing lines rows at level with the
// given combo value. The combo bonus applies from the second consecutive
// clearing placement on.
func LineScore(lines, level, combo int) int {
	score := 0
	if lines > 0 && lines < len(linePoints) {
		score = linePoints[lines] * level
	}
	if combo > 0 {
		score += combo * 50
	}
	return score
}

// Record applies one placement that cleared the given number of rows:
// the combo updates first, the score uses the level from before the
// placement, then lines and level advance. Returns the points gained.
func (p *Progression) Record(cleared int, curve *config.LevelCurve) int {
	if cleared > 0 {
		p.Combo++
	} else {
		p.Combo = NoCombo
	}
	gained := 0
	if cleared > 0 {
		gained = LineScore(cleared, p.Level, p.Combo)
	}
	p.Score += gained
	p.Lines += cleared
	p.Level = curve.Level(p.Lines)
	return gained
}
