package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/meltris/internal/config"
)

func newTestMachine(t *testing.T, timeLimit time.Duration) *Machine {
	t.Helper()
	cfg := config.DefaultMeltrisConfig()
	settings := Settings{Config: cfg, Seed: 3}
	if timeLimit > 0 {
		settings.TimeLimited = true
		settings.Config.Progression.TimeLimit = timeLimit
	}
	return NewMachine(settings)
}

func TestMachinePhases(t *testing.T) {
	m := newTestMachine(t, time.Second)
	assert.Equal(t, PhasePreparation, m.Phase())

	// No input is accepted before preparation completes.
	m.Activate()
	assert.Equal(t, PhasePreparation, m.Phase())

	require.NoError(t, m.Prepare())
	assert.Equal(t, PhaseStart, m.Phase())

	m.KeyDown(ActionHardDrop, false)
	assert.Equal(t, PhaseStart, m.Phase(), "gameplay keys do nothing on the start screen")

	m.Activate()
	assert.Equal(t, PhasePlaying, m.Phase())
	assert.Equal(t, 1, m.Rounds())

	var ended []RoundResult
	m.OnRoundEnd = func(r RoundResult) { ended = append(ended, r) }

	m.Advance(time.Second)
	assert.Equal(t, PhaseGameOver, m.Phase())
	require.Len(t, ended, 1)
	assert.Equal(t, EndTimeUp, ended[0].Reason)
	assert.Equal(t, 0, m.Clock().Pending(), "the finished round left no timers")

	last, ok := m.LastResult()
	require.True(t, ok)
	assert.Equal(t, ended[0], last)

	snap := m.Snapshot()
	require.NotNil(t, snap.Result)
	assert.Equal(t, EndTimeUp, snap.Result.Reason)
	assert.False(t, snap.HasPiece)

	m.KeyDown(ActionRestart, false)
	assert.Equal(t, PhasePlaying, m.Phase())
	assert.Equal(t, 2, m.Rounds())
	assert.Nil(t, m.Snapshot().Result)
}

func TestMachinePrepareRejectsInvalidConfig(t *testing.T) {
	settings := Settings{Config: config.DefaultMeltrisConfig()}
	settings.Config.Repeat.ShiftInterval = 0
	m := NewMachine(settings)

	err := m.Prepare()
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
	assert.Equal(t, PhasePreparation, m.Phase())
}

func TestMachinePauseFreezesTime(t *testing.T) {
	m := newTestMachine(t, 0)
	require.NoError(t, m.Prepare())
	m.Activate()

	y := m.Snapshot().Piece.Y
	m.TogglePause()
	require.True(t, m.Paused())

	m.Advance(10 * time.Second)
	m.KeyDown(ActionSoftDrop, false)
	snap := m.Snapshot()
	assert.True(t, snap.Paused)
	assert.Equal(t, y, snap.Piece.Y, "no gravity and no input while paused")
	assert.Equal(t, time.Duration(0), m.Clock().Now())

	m.TogglePause()
	m.Advance(time.Second)
	assert.Equal(t, y+1, m.Snapshot().Piece.Y)
}

func TestMachineRestartDiscardsRound(t *testing.T) {
	m := newTestMachine(t, 0)
	require.NoError(t, m.Prepare())
	m.Activate()

	m.KeyDown(ActionHardDrop, false)
	require.Greater(t, m.Clock().Pending(), 1)
	first := m.session

	m.KeyDown(ActionRestart, false)
	assert.Equal(t, PhasePlaying, m.Phase())
	assert.NotSame(t, first, m.session)
	assert.True(t, first.Over())

	// Only the new round's gravity is pending; the old melt timers are gone.
	assert.Equal(t, 1, m.Clock().Pending())
	_, ok := m.LastResult()
	assert.False(t, ok, "an abandoned round is not a finished round")
}

func TestMachineCloseReleasesRound(t *testing.T) {
	m := newTestMachine(t, 0)
	require.NoError(t, m.Prepare())
	m.Activate()
	m.Close()

	assert.Equal(t, 0, m.Clock().Pending())
	m.KeyDown(ActionLeft, false)
	m.Advance(time.Minute)
	assert.Equal(t, 0, m.Clock().Pending())
}

func TestMachineDeterminism(t *testing.T) {
	run := func() Snapshot {
		m := newTestMachine(t, 0)
		require.NoError(t, m.Prepare())
		m.Activate()
		for i := range 30 {
			a := ActionLeft + Action(i%7)
			m.KeyDown(a, false)
			m.KeyUp(a)
			m.Advance(time.Second / 3)
		}
		return m.Snapshot()
	}
	assert.Equal(t, run(), run())
}
