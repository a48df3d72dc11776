package game

import (
	"errors"
	"fmt"
	"hash/maphash"
	"math/rand/v2"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cEvolve05/minesweeper/internal/config"
	"github.com/cEvolve05/minesweeper/internal/mines"
)

type Status int8

const (
	NotStarted Status = iota
	Running
	Won
	Lost
)

var statusNames = [...]string{"not_started", "running", "won", "lost"}

// Status implements [fmt.Stringer]
func (s Status) String() string {
	if 0 <= s && int(s) < len(statusNames) {
		return statusNames[s]
	}
	return fmt.Sprintf("status(%d)", int(s))
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s Status) Finished() bool {
	return s == Won || s == Lost
}

// MinePlacer lays out the mines of a freshly built board.
type MinePlacer func(b *mines.Board, r *rand.Rand) error

// Session is one playthrough, from configuration to a win or a loss. It is
// owned by a single goroutine and does no locking.
type Session struct {
	log      logrus.FieldLogger
	rnd      *rand.Rand
	timer    Timer
	reporter Reporter
	placer   MinePlacer
	player   string
	now      func() time.Time

	cfg            config.Game
	board          *mines.Board
	reveal         *mines.Reveal
	status         Status
	flagsRemaining int
	elapsed        int
}

type Option func(*Session)

func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Session) { s.log = log }
}

func WithRand(r *rand.Rand) Option {
	return func(s *Session) { s.rnd = r }
}

func WithTimer(t Timer) Option {
	return func(s *Session) { s.timer = t }
}

func WithReporter(r Reporter) Option {
	return func(s *Session) { s.reporter = r }
}

func WithPlacer(p MinePlacer) Option {
	return func(s *Session) { s.placer = p }
}

func WithPlayer(name string) Option {
	return func(s *Session) { s.player = name }
}

func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

func NewRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func NewSession(opts ...Option) *Session {
	s := &Session{
		log:      logrus.StandardLogger(),
		timer:    NopTimer{},
		reporter: nopReporter{},
		placer:   (*mines.Board).PlaceMines,
		now:      time.Now,
		status:   NotStarted,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rnd == nil {
		s.rnd = NewRand()
	}
	return s
}

// Configure starts a new game with cfg, dropping whatever game was in
// progress. If cfg is invalid the error is returned and the session is
// left exactly as it was.
func (s *Session) Configure(cfg config.Game) (err error) {
	defer recoverAssertion(&err)

	board, err := mines.NewBoard(cfg.Width, cfg.Height, cfg.MineCount)
	if err != nil {
		return err
	}
	if err := s.placer(board, s.rnd); err != nil {
		return fmt.Errorf("unable to place mines: %w", err)
	}
	if !board.MinesPlaced() {
		return fmt.Errorf("%w: placer left %s without mines", mines.ErrInvalidConfig, board)
	}

	s.timer.Stop()

	s.cfg = cfg
	s.board = board
	s.reveal = mines.NewReveal(board)
	s.status = NotStarted
	s.flagsRemaining = cfg.MineCount
	s.elapsed = 0
	board.Redraw()

	s.status = Running
	s.timer.Start(s.Tick)

	s.log.WithField("game", cfg.String()).Info("game started")
	return nil
}

// Restart is Configure under the name the renderer uses.
func (s *Session) Restart(cfg config.Game) error {
	return s.Configure(cfg)
}

// Open opens a cell, or chords it if it is already open. Moves on a game
// that is not running are ignored; coordinates outside the board are not.
func (s *Session) Open(x, y int) error {
	return s.move(x, y, s.openCell)
}

// Chord opens around an opened cell whose flags match its mine count.
func (s *Session) Chord(x, y int) error {
	return s.move(x, y, s.openAround)
}

func (s *Session) openCell(x, y int) (mines.Outcome, error) {
	return s.reveal.Open(x, y)
}

func (s *Session) openAround(x, y int) (mines.Outcome, error) {
	return s.reveal.OpenAround(x, y)
}

func (s *Session) move(
	x, y int, do func(x, y int) (mines.Outcome, error),
) (err error) {
	defer recoverAssertion(&err)

	if s.board == nil {
		return nil
	}
	if !s.board.InBounds(x, y) {
		return fmt.Errorf("%w: (%d, %d)", mines.ErrOutOfBounds, x, y)
	}
	if s.status.Finished() {
		return nil
	}

	outcome, err := do(x, y)
	if err != nil {
		return err
	}
	switch {
	case outcome == mines.MineTriggered:
		s.finish(Lost)
	case s.reveal.Cleared():
		s.finish(Won)
	}
	return nil
}

// ToggleFlag flags or unflags a closed cell. Flagging never ends the game.
func (s *Session) ToggleFlag(x, y int) (err error) {
	defer recoverAssertion(&err)

	if s.board == nil {
		return nil
	}
	if !s.board.InBounds(x, y) {
		return fmt.Errorf("%w: (%d, %d)", mines.ErrOutOfBounds, x, y)
	}
	if s.status.Finished() {
		return nil
	}

	delta, err := s.reveal.ToggleFlag(x, y)
	if err != nil {
		return err
	}
	s.flagsRemaining += delta
	return nil
}

// Tick advances the elapsed-time counter by one second while the game is
// running. Ticks arriving at any other time are dropped.
func (s *Session) Tick() {
	if s.status == Running {
		s.elapsed++
	}
}

func (s *Session) finish(status Status) {
	s.status = status
	s.timer.Stop()
	if status == Lost {
		s.reveal.RevealMines()
	}

	result := Result{
		Player:         s.player,
		Status:         status,
		Game:           s.cfg,
		ElapsedSeconds: s.elapsed,
		FinishedAt:     s.now().UTC(),
	}
	s.log.WithFields(logrus.Fields{
		"game":    s.cfg.String(),
		"status":  status.String(),
		"elapsed": s.elapsed,
	}).Info("game finished")
	s.log.Debug("final board\n" + s.board.States().ToString(s.board.Width()))

	s.reporter.Report(result)
}

func (s *Session) Status() Status      { return s.status }
func (s *Session) FlagsRemaining() int { return s.flagsRemaining }
func (s *Session) Elapsed() int        { return s.elapsed }
func (s *Session) Config() config.Game { return s.cfg }

// Updates drains the cell changes made since the previous call.
func (s *Session) Updates() []mines.CellUpdate {
	if s.board == nil {
		return nil
	}
	return s.board.Updates()
}

// View is everything a renderer needs to draw the game from scratch.
type View struct {
	Difficulty     config.Difficulty `json:"difficulty"`
	Width          int               `json:"width"`
	Height         int               `json:"height"`
	MineCount      int               `json:"mine_count"`
	Status         Status            `json:"status"`
	FlagsRemaining int               `json:"flags_remaining"`
	ElapsedSeconds int               `json:"elapsed_seconds"`
	Grid           mines.Grid        `json:"grid"`
}

func (s *Session) View() View {
	v := View{
		Difficulty:     s.cfg.Difficulty,
		Width:          s.cfg.Width,
		Height:         s.cfg.Height,
		MineCount:      s.cfg.MineCount,
		Status:         s.status,
		FlagsRemaining: s.flagsRemaining,
		ElapsedSeconds: s.elapsed,
	}
	if s.board != nil {
		v.Grid = s.board.States()
	}
	return v
}

func recoverAssertion(err *error) {
	if r := recover(); r != nil {
		var ae mines.AssertionError
		if e, ok := r.(error); ok && errors.As(e, &ae) {
			*err = ae
			return
		}
		panic(r)
	}
}
