package engine

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/meltris/internal/timer"
)

// Phase is a top-level state of the game.
type Phase uint8

const (
	PhasePreparation Phase = iota
	PhaseStart
	PhasePlaying
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhasePreparation:
		return "preparation"
	case PhaseStart:
		return "start"
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// handlers are the input subscriptions of one state. A state fills them
// on enter; the machine drops them before the next state enters.
type handlers struct {
	keyDown  func(a Action, isRepeat bool)
	keyUp    func(a Action)
	activate func()
}

type state interface {
	phase() Phase
	enter(m *Machine) error
	exit(m *Machine)
}

// Machine sequences Preparation -> Start -> Playing -> GameOver and
// creates a fresh Session for every round. It owns the clock all
// timers run on.
type Machine struct {
	settings Settings
	clock    *timer.Clock
	log      *log.Logger

	state   state
	input   handlers
	session *Session
	last    *RoundResult
	rounds  int
	paused  bool

	// OnRoundEnd is called when a round ends by itself.
	OnRoundEnd func(RoundResult)
}

// NewMachine creates a machine in the Preparation phase.
func NewMachine(settings Settings) *Machine {
	return &Machine{
		settings: settings,
		clock:    timer.NewClock(),
		log:      settings.logger(),
		state:    preparationState{},
	}
}

// Prepare validates the collaborators and moves to the start screen.
// It fails, leaving the machine in Preparation, on invalid configuration.
func (m *Machine) Prepare() error {
	if m.state.phase() != PhasePreparation {
		return nil
	}
	if err := m.settings.Config.Validate(); err != nil {
		return fmt.Errorf("engine: prepare: %w", err)
	}
	for _, p := range AllPieces {
		if _, err := CanonicalShape(p); err != nil {
			return fmt.Errorf("engine: prepare: %w", err)
		}
	}
	return m.transition(startState{})
}

func (m *Machine) transition(next state) error {
	m.state.exit(m)
	m.input = handlers{}
	m.log.Debug("phase", "from", m.state.phase(), "to", next.phase())
	m.state = next
	return next.enter(m)
}

// Phase returns the current top-level state.
func (m *Machine) Phase() Phase {
	return m.state.phase()
}

// Clock returns the clock driving every timer of the machine.
func (m *Machine) Clock() *timer.Clock {
	return m.clock
}

// Rounds returns how many rounds have been started.
func (m *Machine) Rounds() int {
	return m.rounds
}

// LastResult returns the result of the most recently finished round.
func (m *Machine) LastResult() (RoundResult, bool) {
	if m.last == nil {
		return RoundResult{}, false
	}
	return *m.last, true
}

// Advance moves virtual time forward, firing due timers. Nothing moves while paused.
func (m *Machine) Advance(d time.Duration) {
	if m.paused {
		return
	}
	m.clock.Advance(d)
}

// TogglePause pauses or resumes a running round.
func (m *Machine) TogglePause() {
	if m.Phase() != PhasePlaying {
		return
	}
	m.paused = !m.paused
}

// Paused reports whether the round is paused.
func (m *Machine) Paused() bool {
	return m.paused
}

// KeyDown forwards a key press to the current state's handlers.
func (m *Machine) KeyDown(a Action, isRepeat bool) {
	if m.paused || m.input.keyDown == nil {
		return
	}
	m.input.keyDown(a, isRepeat)
}

// KeyUp forwards a key release to the current state's handlers.
func (m *Machine) KeyUp(a Action) {
	if m.input.keyUp == nil {
		return
	}
	m.input.keyUp(a)
}

// Activate handles the start/confirm signal.
func (m *Machine) Activate() {
	if m.paused || m.input.activate == nil {
		return
	}
	m.input.activate()
}

// Restart abandons the running round, if any, and starts a new one.
func (m *Machine) Restart() error {
	switch m.Phase() {
	case PhasePlaying, PhaseGameOver, PhaseStart:
		m.paused = false
		return m.transition(&playingState{})
	}
	return nil
}

// Close releases the current state and its round.
func (m *Machine) Close() {
	m.state.exit(m)
	m.input = handlers{}
}

// Snapshot captures the state for rendering.
func (m *Machine) Snapshot() Snapshot {
	snap := Snapshot{Phase: m.Phase(), Paused: m.paused}
	if m.session != nil {
		m.session.fill(&snap)
	}
	if m.Phase() == PhaseGameOver && m.last != nil {
		r := *m.last
		snap.Result = &r
	}
	return snap
}

type preparationState struct{}

func (preparationState) phase() Phase         { return PhasePreparation }
func (preparationState) enter(*Machine) error { return nil }
func (preparationState) exit(*Machine)        {}

type startState struct{}

func (startState) phase() Phase { return PhaseStart }

func (startState) enter(m *Machine) error {
	m.input.activate = func() {
		if err := m.transition(&playingState{}); err != nil {
			m.log.Error("start round", "err", err)
		}
	}
	return nil
}

func (startState) exit(*Machine) {}

type playingState struct {
	session *Session
}

func (*playingState) phase() Phase { return PhasePlaying }

func (s *playingState) enter(m *Machine) error {
	m.rounds++
	settings := m.settings
	settings.Seed += int64(m.rounds - 1)

	session, err := NewSession(m.clock, settings, func(r RoundResult) {
		m.last = &r
		if m.OnRoundEnd != nil {
			m.OnRoundEnd(r)
		}
		if err := m.transition(gameOverState{}); err != nil {
			m.log.Error("end round", "err", err)
		}
	})
	if err != nil {
		return err
	}
	s.session = session
	m.session = session

	m.input.keyDown = func(a Action, isRepeat bool) {
		if a == ActionRestart {
			if !isRepeat {
				_ = m.Restart()
			}
			return
		}
		session.KeyDown(a, isRepeat)
	}
	m.input.keyUp = session.KeyUp

	session.Start()
	m.log.Debug("round", "number", m.rounds)
	return nil
}

func (s *playingState) exit(m *Machine) {
	if s.session != nil {
		s.session.Close()
	}
	m.paused = false
}

type gameOverState struct{}

func (gameOverState) phase() Phase { return PhaseGameOver }

func (gameOverState) enter(m *Machine) error {
	restart := func() {
		if err := m.transition(&playingState{}); err != nil {
			m.log.Error("restart round", "err", err)
		}
	}
	m.input.activate = restart
	m.input.keyDown = func(a Action, isRepeat bool) {
		if a == ActionRestart && !isRepeat {
			restart()
		}
	}
	return nil
}

func (gameOverState) exit(*Machine) {}
