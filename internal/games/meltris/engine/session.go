package engine

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/meltris/internal/config"
	"github.com/vovakirdan/meltris/internal/timer"
)

// EndReason tells why a round ended.
type EndReason uint8

const (
	EndNone EndReason = iota
	EndTopOut
	EndTimeUp
	EndAborted
)

func (r EndReason) String() string {
	switch r {
	case EndTopOut:
		return "top out"
	case EndTimeUp:
		return "time up"
	case EndAborted:
		return "aborted"
	default:
		return "none"
	}
}

// RoundResult is reported when a round ends.
type RoundResult struct {
	Score   int
	Lines   int
	Level   int
	Elapsed time.Duration
	Reason  EndReason
}

// Settings configures a session or machine.
type Settings struct {
	Config      config.MeltrisConfig
	TimeLimited bool  // End the round when Config.Progression.TimeLimit runs out
	Seed        int64 // Seeds piece order and melt durations
	Logger      *log.Logger
}

func (s Settings) logger() *log.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return log.New(io.Discard)
}

// Session is one round of play. Every timer it starts, including the
// melt timers of placed cells, belongs to one timer.Group that Close
// releases.
type Session struct {
	settings Settings
	curve    *config.LevelCurve
	timers   *timer.Group
	rng      *rand.Rand
	log      *log.Logger

	field    *Field
	bag      *Bag
	queue    *Queue
	hold     *Hold
	lock     *LockDelay
	progress Progression

	gravity   *timer.Timer
	countdown *timer.Timer
	shift     *timer.Repeater[Action]
	soft      *timer.Repeater[Action]

	startedAt time.Duration
	started   bool
	result    *RoundResult
	onEnd     func(RoundResult)
}

// NewSession prepares a round on clock. The round does not run until Start.
// onEnd, if set, is called once when the round ends by itself.
func NewSession(clock *timer.Clock, settings Settings, onEnd func(RoundResult)) (*Session, error) {
	cfg := settings.Config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("engine: new session: %w", err)
	}

	s := &Session{
		settings: settings,
		curve:    config.NewLevelCurve(cfg),
		timers:   timer.NewGroup(clock),
		rng:      rand.New(rand.NewSource(settings.Seed)),
		log:      settings.logger(),
		hold:     NewHold(),
		onEnd:    onEnd,
	}
	s.bag = NewBag(s.rng)
	s.field = NewField(NewGrid(s.timers, s.rng))
	s.lock = NewLockDelay(s.timers, cfg.Timing.LockDelay, s.reachBottom)
	s.shift = timer.NewRepeater(s.timers, cfg.Repeat.ShiftDelay, cfg.Repeat.ShiftInterval, s.repeat)
	s.soft = timer.NewRepeater(s.timers, 0, cfg.Repeat.SoftDropInterval, s.repeat)

	// The first active piece is drawn before the lookahead is filled.
	first, err := s.draw()
	if err != nil {
		return nil, err
	}
	initial := make([]*Tetromino, cfg.Timing.NextQueue)
	for i := range initial {
		if initial[i], err = s.draw(); err != nil {
			return nil, err
		}
	}
	if s.queue, err = NewQueue(initial); err != nil {
		return nil, err
	}
	s.field.Spawn(first)

	s.progress = Progression{
		Level: s.curve.Level(0),
		Combo: NoCombo,
	}
	if settings.TimeLimited {
		s.progress.TimeLeft = cfg.Progression.TimeLimit
	}
	return s, nil
}

func (s *Session) draw() (*Tetromino, error) {
	return NewTetromino(s.bag.Next())
}

// Start begins gravity and, for time-limited rounds, the countdown.
func (s *Session) Start() {
	if s.started || s.Over() {
		return
	}
	s.started = true
	s.startedAt = s.timers.Clock().Now()
	s.resetGravity()
	if s.settings.TimeLimited {
		s.countdown = s.timers.AfterFunc(s.settings.Config.Progression.TimeLimit, func() {
			s.end(EndTimeUp)
		})
	}
	s.lock.Check(s.field.CanDescend())
	s.log.Debug("round started", "level", s.progress.Level, "timed", s.settings.TimeLimited)
}

// Over reports whether the round has ended.
func (s *Session) Over() bool {
	return s.result != nil
}

// Result returns the round result once the round is over.
func (s *Session) Result() (RoundResult, bool) {
	if s.result == nil {
		return RoundResult{}, false
	}
	return *s.result, true
}

// Progress returns the current progression, with TimeLeft up to date.
func (s *Session) Progress() Progression {
	p := s.progress
	if s.countdown.Active() {
		p.TimeLeft = s.countdown.Remaining()
	}
	return p
}

// Elapsed returns the virtual time played so far.
func (s *Session) Elapsed() time.Duration {
	if s.result != nil {
		return s.result.Elapsed
	}
	if !s.started {
		return 0
	}
	return s.timers.Clock().Now() - s.startedAt
}

// Field returns the playing field.
func (s *Session) Field() *Field {
	return s.field
}

// Close ends the round if it is still running and cancels every timer
// the round owns. It does not call onEnd. Close is idempotent.
func (s *Session) Close() {
	if s.result == nil {
		s.finish(EndAborted)
	}
	s.timers.StopAll()
}

// KeyDown handles a key press. Moves and soft drop auto-repeat until the
// matching KeyUp; other actions fire once and ignore OS repeats.
func (s *Session) KeyDown(a Action, isRepeat bool) {
	if !s.started || s.Over() {
		return
	}
	switch a {
	case ActionLeft, ActionRight:
		s.shift.Press(a, isRepeat)
	case ActionSoftDrop:
		s.soft.Press(a, isRepeat)
	default:
		if !isRepeat {
			s.Apply(a)
		}
	}
}

// KeyUp handles a key release.
func (s *Session) KeyUp(a Action) {
	s.shift.Release(a)
	s.soft.Release(a)
}

func (s *Session) repeat(a Action, _ bool) {
	if !s.Over() {
		s.Apply(a)
	}
}

// Apply performs one action immediately. It reports whether the action
// changed the game.
func (s *Session) Apply(a Action) bool {
	if !s.started || s.Over() {
		return false
	}
	switch a {
	case ActionLeft:
		return s.moved(s.field.MoveTetromino(-1, 0))
	case ActionRight:
		return s.moved(s.field.MoveTetromino(1, 0))
	case ActionSoftDrop:
		return s.moved(s.field.MoveTetromino(0, 1))
	case ActionRotateCW:
		return s.moved(s.field.RotateTetromino(Clockwise))
	case ActionRotateCCW:
		return s.moved(s.field.RotateTetromino(CounterClockwise))
	case ActionHardDrop:
		s.field.Drop()
		s.reachBottom()
		return true
	case ActionHold:
		return s.holdPiece()
	}
	return false
}

// moved re-evaluates the lock delay after a successful move.
func (s *Session) moved(ok bool) bool {
	if ok {
		s.lock.Check(s.field.CanDescend())
	}
	return ok
}

func (s *Session) gravityTick() {
	s.moved(s.field.MoveTetromino(0, 1))
}

func (s *Session) resetGravity() {
	s.gravity.Stop()
	s.gravity = s.timers.Every(s.curve.GravityInterval(s.progress.Level), s.gravityTick)
}

func (s *Session) holdPiece() bool {
	current := s.field.Piece().Tetromino
	prev, ok := s.hold.Swap(current)
	if !ok {
		return false
	}
	s.lock.Cancel()
	if prev == nil {
		s.spawnNext()
	} else {
		s.field.Spawn(prev)
		s.lock.Check(s.field.CanDescend())
	}
	s.log.Debug("hold", "held", current.Type, "swapped", prev != nil)
	return true
}

// spawnNext makes the front of the next queue active and refills the queue.
func (s *Session) spawnNext() {
	fresh, err := s.draw()
	if err != nil {
		panic(fmt.Sprintf("engine: bag produced an invalid piece: %v", err))
	}
	next, err := s.queue.Shift(fresh)
	if err != nil {
		panic(fmt.Sprintf("engine: next queue drained during play: %v", err))
	}
	s.field.Spawn(next)
	s.lock.Check(s.field.CanDescend())
}

// reachBottom locks the active piece and runs the placement bookkeeping.
func (s *Session) reachBottom() {
	if s.Over() {
		return
	}
	s.lock.Cancel()

	level := s.progress.Level
	ice, water := s.curve.MeltTimes(level)
	p := s.field.Piece()
	s.field.Grid().Place(p.Tetromino, p.X, p.Y, MeltOptions{
		Enabled:       s.settings.Config.Melt.Enabled,
		IceToMiddle:   ice,
		MiddleToWater: water,
	})

	cleared := s.field.Grid().DeleteRows()
	gained := s.progress.Record(cleared, s.curve)
	if cleared > 0 {
		s.log.Debug("lines cleared", "rows", cleared, "points", gained, "combo", s.progress.Combo, "level", s.progress.Level)
	}

	if s.field.Grid().SpawnBlocked() {
		s.end(EndTopOut)
		return
	}

	s.hold.Activate()
	if s.progress.Level != level {
		s.log.Debug("level up", "level", s.progress.Level)
	}
	s.resetGravity()
	s.spawnNext()
}

// end finishes the round, releases its timers and notifies the owner.
func (s *Session) end(reason EndReason) {
	if s.Over() {
		return
	}
	s.finish(reason)
	s.timers.StopAll()
	s.log.Debug("round over", "reason", reason, "score", s.result.Score, "lines", s.result.Lines)
	if s.onEnd != nil {
		s.onEnd(*s.result)
	}
}

func (s *Session) finish(reason EndReason) {
	elapsed := time.Duration(0)
	if s.started {
		elapsed = s.timers.Clock().Now() - s.startedAt
	}
	if reason == EndTimeUp {
		s.progress.TimeLeft = 0
	} else if s.countdown.Active() {
		s.progress.TimeLeft = s.countdown.Remaining()
	}
	s.result = &RoundResult{
		Score:   s.progress.Score,
		Lines:   s.progress.Lines,
		Level:   s.progress.Level,
		Elapsed: elapsed,
		Reason:  reason,
	}
}
