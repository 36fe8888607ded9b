// Package meltris adapts the meltris engine to the platform's Game interface.
// Two modes are registered: an endless marathon and a timed ultra round.
package meltris

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/meltris/internal/config"
	"github.com/vovakirdan/meltris/internal/core"
	"github.com/vovakirdan/meltris/internal/games/meltris/engine"
	"github.com/vovakirdan/meltris/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeMarathon Mode = "marathon"
	ModeUltra    Mode = "ultra"
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// logger receives engine debug output; discarded unless set via CLI
var logger = log.New(io.Discard)

// SetConfigPath sets a custom config file path.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown values are ignored.
func SetDifficultyPreset(preset string) {
	difficultyPreset, _ = config.ParseDifficultyPreset(preset)
}

// SetLogger routes engine logs to l.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// keyBindings maps platform actions to engine actions.
var keyBindings = []struct {
	platform core.Action
	engine   engine.Action
}{
	{core.ActionLeft, engine.ActionLeft},
	{core.ActionRight, engine.ActionRight},
	{core.ActionSoftDrop, engine.ActionSoftDrop},
	{core.ActionHardDrop, engine.ActionHardDrop},
	{core.ActionRotateCW, engine.ActionRotateCW},
	{core.ActionRotateCCW, engine.ActionRotateCCW},
	{core.ActionHold, engine.ActionHold},
	{core.ActionRestart, engine.ActionRestart},
}

// Game implements registry.Game on top of an engine.Machine.
type Game struct {
	mode    Mode
	machine *engine.Machine
	runtime core.RuntimeConfig
}

// New creates a marathon game.
func New() *Game {
	return &Game{mode: ModeMarathon}
}

// NewUltra creates a timed game.
func NewUltra() *Game {
	return &Game{mode: ModeUltra}
}

func init() {
	registry.Register("meltris", func() registry.Game {
		return New()
	})
	registry.Register("meltris_ultra", func() registry.Game {
		return NewUltra()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeUltra {
		return "meltris_ultra"
	}
	return "meltris"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeUltra {
		return "Meltris (Ultra)"
	}
	return "Meltris"
}

// Reset discards any running round and returns to the start screen.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	if g.machine != nil {
		g.machine.Close()
	}
	g.runtime = cfg

	settings := engine.Settings{
		Config:      loadConfig(cfg.Difficulty),
		TimeLimited: g.mode == ModeUltra,
		Seed:        cfg.Seed,
		Logger:      logger.With("mode", g.ID()),
	}
	g.machine = engine.NewMachine(settings)
	if err := g.machine.Prepare(); err != nil {
		// loadConfig validates, so only a bad preset combination lands here
		logger.Error("prepare failed, using defaults", "err", err)
		settings.Config = config.DefaultMeltrisConfig()
		g.machine = engine.NewMachine(settings)
		_ = g.machine.Prepare()
	}
}

// loadConfig resolves the config file and applies a difficulty preset.
// A preset named by the runtime config wins over the one set via CLI.
func loadConfig(preset string) config.MeltrisConfig {
	cfg, err := config.LoadMeltris(configPath)
	if err != nil {
		logger.Warn("config not loaded, using defaults", "err", err)
		cfg = config.DefaultMeltrisConfig()
	}
	p := difficultyPreset
	if parsed, ok := config.ParseDifficultyPreset(preset); ok {
		p = parsed
	}
	if p != "" {
		config.ApplyMeltrisPreset(&cfg, p)
	}
	return cfg
}

// Step feeds one frame of input to the machine and advances virtual time by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionPause) {
		g.machine.TogglePause()
	}
	if in.Has(core.ActionConfirm) {
		g.machine.Activate()
	}
	for _, b := range keyBindings {
		if in.Has(b.platform) {
			g.machine.KeyDown(b.engine, false)
		}
	}
	for _, b := range keyBindings {
		if in.WasReleased(b.platform) {
			g.machine.KeyUp(b.engine)
		}
	}

	g.machine.Advance(g.runtime.TickDuration())
	return core.StepResult{State: g.State()}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	snap := g.machine.Snapshot()
	state := core.GameState{
		Score:    snap.Progress.Score,
		Lines:    snap.Progress.Lines,
		Level:    snap.Progress.Level,
		Elapsed:  snap.Elapsed,
		Round:    g.machine.Rounds(),
		GameOver: snap.Phase == engine.PhaseGameOver,
		Paused:   snap.Paused,
	}
	if snap.Result != nil {
		state.Score = snap.Result.Score
		state.Lines = snap.Result.Lines
		state.Level = snap.Result.Level
		state.Elapsed = snap.Result.Elapsed
	}
	return state
}

// Snapshot returns the engine snapshot for determinism checks and tests.
func (g *Game) Snapshot() engine.Snapshot {
	return g.machine.Snapshot()
}

// Phase returns the current top-level phase.
func (g *Game) Phase() engine.Phase {
	return g.machine.Phase()
}

// Close releases the running round.
func (g *Game) Close() {
	if g.machine != nil {
		g.machine.Close()
	}
}
