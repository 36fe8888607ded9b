package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/meltris/internal/config"
)

func TestProgressionRecordCombo(t *testing.T) {
	curve := config.NewLevelCurve(config.DefaultMeltrisConfig())
	p := Progression{Level: 1, Combo: NoCombo}

	assert.Equal(t, 100, p.Record(1, curve))
	assert.Equal(t, 0, p.Combo)

	assert.Equal(t, 350, p.Record(2, curve), "second clearing placement earns the combo bonus")
	assert.Equal(t, 1, p.Combo)

	assert.Equal(t, 0, p.Record(0, curve))
	assert.Equal(t, NoCombo, p.Combo)

	assert.Equal(t, 450, p.Score)
	assert.Equal(t, 3, p.Lines)
}

func TestProgressionScoresWithLevelBeforeUpdate(t *testing.T) {
	cfg := config.DefaultMeltrisConfig()
	cfg.Progression.LinesPerLevel = 4
	curve := config.NewLevelCurve(cfg)
	p := Progression{Level: 1, Combo: NoCombo}

	assert.Equal(t, 800, p.Record(4, curve))
	assert.Equal(t, 2, p.Level)

	assert.Equal(t, 800*2+50, p.Record(4, curve))
	assert.Equal(t, 3, p.Level)
}
