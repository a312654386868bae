package engine

import (
	"fmt"
	"math/rand"
	"time"
)

// SpawnRow is the anchor row of a freshly spawned piece. The 4x4 box starts
// two rows above the board so that every piece enters touching row 0.
const SpawnRow = -2

// Options configures a Session. Start from DefaultOptions and override.
type Options struct {
	Width  int
	Height int

	// Seed feeds the randomizer when Rand is nil.
	Seed int64
	Rand *rand.Rand

	// Kicks is the ordered wall-kick list. It must start with {0, 0};
	// NoKicks disables kicking.
	Kicks []Offset

	Rules Rules
}

// DefaultOptions returns a 10x20 board with wall kicks and the default rules.
func DefaultOptions() Options {
	return Options{
		Width:  10,
		Height: 20,
		Kicks:  DefaultKicks,
		Rules:  DefaultRules(),
	}
}

// Stats counts pieces and clears over one game.
type Stats struct {
	Pieces   int
	Singles  int
	Doubles  int
	Triples  int
	Tetrises int
	// Bigger counts clears of more than four rows (wide boards only).
	Bigger int
}

// Session is one game of Tetris. It is not safe for concurrent use; hosts
// call Tick and the command methods from a single goroutine.
type Session struct {
	opts  Options
	seeds *rand.Rand

	board    *Board
	bag      *Bag
	piece    Piece
	hasPiece bool
	next     Kind

	score int
	lines int
	level int

	gameOver bool
	paused   bool
	softDrop bool

	dropTimer time.Duration
	stats     Stats
	events    []Event
}

// NewSession validates opts, builds the board and spawns the first piece.
func NewSession(opts Options) (*Session, error) {
	board, err := NewBoard(opts.Width, opts.Height)
	if err != nil {
		return nil, err
	}
	if err := opts.Rules.Validate(); err != nil {
		return nil, err
	}
	if len(opts.Kicks) == 0 {
		opts.Kicks = NoKicks
	}
	if opts.Kicks[0] != (Offset{}) {
		return nil, fmt.Errorf("%w: kick list must start with {0, 0}", ErrInvalidOptions)
	}
	opts.Kicks = append([]Offset(nil), opts.Kicks...)
	opts.Rules.LineScores = append([]int(nil), opts.Rules.LineScores...)

	seeds := opts.Rand
	if seeds == nil {
		seeds = rand.New(rand.NewSource(opts.Seed))
	}

	s := &Session{
		opts:  opts,
		seeds: seeds,
		board: board,
	}
	s.reset()
	return s, nil
}

// MustNewSession is NewSession for options known to be valid.
func MustNewSession(opts Options) *Session {
	s, err := NewSession(opts)
	if err != nil {
		panic(fmt.Sprintf("engine: %v", err))
	}
	return s
}

// reset puts every field back to its construction state. Each game draws
// a fresh randomizer stream from the session's seed source.
func (s *Session) reset() {
	s.board.Reset()
	s.bag = NewBag(rand.New(rand.NewSource(s.seeds.Int63())))
	s.piece = Piece{}
	s.hasPiece = false
	s.score = 0
	s.lines = 0
	s.level = 1
	s.gameOver = false
	s.paused = false
	s.softDrop = false
	s.dropTimer = 0
	s.stats = Stats{}
	s.events = nil

	s.next = s.bag.Next()
	s.spawnNext()
}

// Restart begins a new game, equivalent to constructing a new Session with
// the same options.
func (s *Session) Restart() {
	s.reset()
}

// spawnNext promotes the lookahead kind to the active piece. When the spawn
// position is blocked the game ends and no piece is placed.
func (s *Session) spawnNext() bool {
	k := s.next
	s.next = s.bag.Next()

	p := Piece{Kind: k, X: (s.board.width - 4) / 2, Y: SpawnRow}
	if !p.Fits(s.board) {
		s.hasPiece = false
		s.gameOver = true
		s.softDrop = false
		s.emit(Event{Type: EventGameOver, Kind: k})
		return false
	}

	s.piece = p
	s.hasPiece = true
	s.stats.Pieces++
	return true
}

// lock settles the active piece, clears rows, scores and spawns the next one.
func (s *Session) lock() {
	p := s.piece
	s.board.Lock(p.Kind, p.Rotation, p.X, p.Y)
	s.hasPiece = false
	s.dropTimer = 0
	s.emit(Event{Type: EventLock, Kind: p.Kind})

	if rows := s.board.ClearFullRows(); rows > 0 {
		points := s.opts.Rules.LineClearPoints(rows, s.level)
		s.score += points
		s.lines += rows
		s.countClear(rows)
		s.emit(Event{Type: EventLinesCleared, Kind: p.Kind, Rows: rows, Points: points})

		if lvl := s.opts.Rules.LevelFor(s.lines); lvl > s.level {
			s.level = lvl
			s.emit(Event{Type: EventLevelUp})
		}
	}

	s.spawnNext()
}

func (s *Session) countClear(rows int) {
	switch rows {
	case 1:
		s.stats.Singles++
	case 2:
		s.stats.Doubles++
	case 3:
		s.stats.Triples++
	case 4:
		s.stats.Tetrises++
	default:
		s.stats.Bigger++
	}
}

// live reports whether commands and gravity currently apply.
func (s *Session) live() bool {
	return s.hasPiece && !s.paused && !s.gameOver
}

// Tick advances gravity by elapsed. Every full drop interval moves the piece
// one row; a grounded piece is locked and the next one spawned. Tick reports
// whether the board or the active piece changed.
func (s *Session) Tick(elapsed time.Duration) bool {
	if !s.live() || elapsed <= 0 {
		return false
	}
	s.dropTimer += elapsed
	changed := false
	for {
		interval := s.DropInterval()
		if s.dropTimer < interval {
			return changed
		}
		s.dropTimer -= interval
		if !s.piece.Fall(s.board) {
			s.lock()
			return true
		}
		changed = true
	}
}

// DropInterval returns the gravity interval currently in effect.
func (s *Session) DropInterval() time.Duration {
	if s.softDrop {
		return s.opts.Rules.SoftDropInterval(s.level)
	}
	return s.opts.Rules.DropInterval(s.level)
}

// MoveLeft shifts the piece one column left.
func (s *Session) MoveLeft() bool {
	return s.live() && s.piece.Move(s.board, -1)
}

// MoveRight shifts the piece one column right.
func (s *Session) MoveRight() bool {
	return s.live() && s.piece.Move(s.board, 1)
}

// RotateCW rotates the piece clockwise, kicking if needed.
func (s *Session) RotateCW() bool {
	return s.live() && s.piece.Rotate(s.board, Clockwise, s.opts.Kicks)
}

// RotateCCW rotates the piece counter-clockwise, kicking if needed.
func (s *Session) RotateCCW() bool {
	return s.live() && s.piece.Rotate(s.board, CounterClockwise, s.opts.Kicks)
}

// SoftDrop moves the piece down one row. A grounded piece is locked
// instead, exactly as a gravity step would. It returns false only while
// paused or over.
func (s *Session) SoftDrop() bool {
	if !s.live() {
		return false
	}
	if s.piece.Fall(s.board) {
		s.dropTimer = 0
		return true
	}
	s.lock()
	return true
}

// SetSoftDrop holds or releases fast gravity.
func (s *Session) SetSoftDrop(on bool) {
	s.softDrop = on && !s.gameOver
}

// HardDrop drops the piece to its ghost row, awards the per-row bonus and
// locks it.
func (s *Session) HardDrop() bool {
	if !s.live() {
		return false
	}
	dist := s.piece.HardDrop(s.board)
	s.score += dist * s.opts.Rules.HardDropPerCell
	s.lock()
	return true
}

// TogglePause pauses or resumes the game. It has no effect after game over.
func (s *Session) TogglePause() bool {
	if s.gameOver {
		return false
	}
	s.paused = !s.paused
	return true
}

// Score returns the current score.
func (s *Session) Score() int { return s.score }

// Lines returns the total number of cleared lines.
func (s *Session) Lines() int { return s.lines }

// Level returns the current level, starting at 1.
func (s *Session) Level() int { return s.level }

// Next returns the lookahead kind.
func (s *Session) Next() Kind { return s.next }

// GameOver reports whether the game has ended.
func (s *Session) GameOver() bool { return s.gameOver }

// Paused reports whether the game is paused.
func (s *Session) Paused() bool { return s.paused }

// Active returns the falling piece, if any.
func (s *Session) Active() (Piece, bool) {
	return s.piece, s.hasPiece
}

// Stats returns the piece and clear counters of the current game.
func (s *Session) Stats() Stats { return s.stats }
