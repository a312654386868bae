// Package tetris adapts the engine to the platform's fixed-tick game
// interface: it turns input frames into session commands, advances gravity
// by one frame per Step and draws the session into a core.Screen.
package tetris

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/engine"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

// Mode selects the rotation rules.
type Mode int

const (
	ModeModern  Mode = iota // Wall kicks on
	ModeClassic             // Rotation fits in place or not at all
)

// softDropHold is how long a soft drop key press keeps fast gravity
// engaged. Terminals report key repeats but no releases.
const softDropHold = 150 * time.Millisecond

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset = config.DifficultyNormal

// logger receives engine events. Discarded unless SetLogger is called.
var logger = log.New(io.Discard)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names fall back
// to normal; the CLI validates them first.
func SetDifficultyPreset(preset string) {
	p, err := config.ParseDifficulty(preset)
	if err != nil {
		p = config.DifficultyNormal
	}
	difficultyPreset = p
}

// SetLogger sets the logger new games report to.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// Game implements registry.Game on top of an engine.Session.
type Game struct {
	mode    Mode
	cfg     config.TetrisConfig
	session *engine.Session
	log     *log.Logger

	runID    string
	runtime  core.RuntimeConfig
	frame    time.Duration
	ticks    uint64
	softHold int // frames of fast gravity left
	tooSmall bool
}

// New creates a game with wall kicks.
func New() *Game {
	return &Game{mode: ModeModern}
}

// NewClassic creates a game without wall kicks.
func NewClassic() *Game {
	return &Game{mode: ModeClassic}
}

func init() {
	registry.Register("tetris", func() registry.Game {
		return New()
	})
	registry.Register("tetris_classic", func() registry.Game {
		return NewClassic()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeClassic {
		return "tetris_classic"
	}
	return "tetris"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeClassic {
		return "Tetris (Classic)"
	}
	return "Tetris"
}

// Description returns a one-line summary for menus.
func (g *Game) Description() string {
	if g.mode == ModeClassic {
		return "No wall kicks: a blocked rotation is simply refused"
	}
	return "7-bag randomizer, wall kicks, ghost piece"
}

// Reset loads the rules and starts a new game. It builds a fresh session
// rather than calling Session.Restart so that edited config files, the
// runtime seed and a new run ID all take effect.
func (g *Game) Reset(rc core.RuntimeConfig) {
	if rc.TickRate <= 0 {
		rc.TickRate = core.DefaultConfig().TickRate
	}
	g.runtime = rc
	g.frame = time.Second / time.Duration(rc.TickRate)
	g.ticks = 0
	g.softHold = 0
	g.runID = uuid.NewString()
	g.log = logger.With("game", g.ID(), "run", g.runID)

	cfg, source, err := config.LoadTetris(configPath)
	if err != nil {
		g.log.Warn("falling back to default rules", "err", err)
		cfg, source = config.DefaultTetrisConfig(), config.SourceBuiltin
	}
	config.ApplyTetrisPreset(&cfg, difficultyPreset)
	if g.mode == ModeClassic {
		cfg.Rotation.WallKicks = false
	}
	g.cfg = cfg

	session, err := engine.NewSession(cfg.EngineOptions(rc.Seed))
	if err != nil {
		// Validate already ran, so this only trips on a preset bug.
		g.log.Error("invalid rules, using defaults", "err", err)
		opts := engine.DefaultOptions()
		opts.Seed = rc.Seed
		if g.mode == ModeClassic {
			opts.Kicks = engine.NoKicks
		}
		session = engine.MustNewSession(opts)
	}
	g.session = session
	g.checkScreenSize(rc.ScreenW, rc.ScreenH)

	g.log.Debug("game started",
		"config", source,
		"difficulty", difficultyPreset,
		"board", [2]int{cfg.Board.Width, cfg.Board.Height},
		"seed", rc.Seed,
	)
}

// Step applies one frame of input and advances gravity by one frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.session == nil {
		g.Reset(g.runtime)
	}
	g.ticks++
	s := g.session
	changed := false

	if in.Has(core.ActionPause) && s.TogglePause() {
		changed = true
		g.log.Debug("pause toggled", "paused", s.Paused())
	}

	if g.tooSmall || s.Paused() || s.GameOver() {
		g.releaseSoftDrop()
		return core.StepResult{State: g.State(), Changed: changed}
	}

	for i := 0; i < in.Count(core.ActionLeft); i++ {
		changed = s.MoveLeft() || changed
	}
	for i := 0; i < in.Count(core.ActionRight); i++ {
		changed = s.MoveRight() || changed
	}
	for i := 0; i < in.Count(core.ActionRotateCW); i++ {
		changed = s.RotateCW() || changed
	}
	for i := 0; i < in.Count(core.ActionRotateCCW); i++ {
		changed = s.RotateCCW() || changed
	}

	if in.Has(core.ActionSoftDrop) {
		if g.softHold == 0 {
			// First press moves at once; repeats only extend the hold.
			s.SoftDrop()
			changed = true
		}
		g.softHold = g.holdFrames()
		s.SetSoftDrop(true)
	} else if g.softHold > 0 {
		g.softHold--
		if g.softHold == 0 {
			s.SetSoftDrop(false)
		}
	}

	if in.Has(core.ActionHardDrop) {
		changed = s.HardDrop() || changed
	}

	changed = s.Tick(g.frame) || changed
	g.logEvents()

	return core.StepResult{State: g.State(), Changed: changed}
}

func (g *Game) holdFrames() int {
	n := int((softDropHold + g.frame - 1) / g.frame)
	return max(n, 1)
}

func (g *Game) releaseSoftDrop() {
	if g.softHold > 0 {
		g.softHold = 0
		g.session.SetSoftDrop(false)
	}
}

// logEvents drains the session's event queue into the logger.
func (g *Game) logEvents() {
	for _, e := range g.session.DrainEvents() {
		switch e.Type {
		case engine.EventLinesCleared:
			g.log.Debug("lines cleared", "rows", e.Rows, "points", e.Points, "score", e.Score)
		case engine.EventLevelUp:
			g.log.Info("level up", "level", e.Level)
		case engine.EventGameOver:
			st := g.session.Stats()
			g.log.Info("game over",
				"score", e.Score,
				"lines", g.session.Lines(),
				"level", e.Level,
				"pieces", st.Pieces,
				"tetrises", st.Tetrises,
				"duration", g.Duration().Round(time.Second),
			)
		default:
			g.log.Debug(e.Type.String(), "kind", e.Kind)
		}
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{Level: 1}
	}
	s := g.session
	return core.GameState{
		Score:    s.Score(),
		Lines:    s.Lines(),
		Level:    s.Level(),
		Pieces:   s.Stats().Pieces,
		GameOver: s.GameOver(),
		Paused:   s.Paused(),
	}
}

// RunID returns the UUID of the current game, used as its score record key.
func (g *Game) RunID() string {
	return g.runID
}

// Duration returns the simulated play time of the current game.
func (g *Game) Duration() time.Duration {
	return time.Duration(g.ticks) * g.frame
}

// Snapshot returns the engine snapshot for tests and screenshots.
func (g *Game) Snapshot() engine.Snapshot {
	return g.session.Snapshot()
}

// checkScreenSize records whether the board and side panel fit.
func (g *Game) checkScreenSize(w, h int) {
	minW, minH := g.minScreenSize()
	g.tooSmall = w < minW || h < minH
}

// Resize updates the screen size without restarting the game.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW, g.runtime.ScreenH = w, h
	g.checkScreenSize(w, h)
}
