package tetris

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/engine"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

// newTestGame starts a game with an isolated HOME so no user config leaks in.
func newTestGame(t *testing.T, g *Game, seed int64) *Game {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	cfg := core.DefaultConfig()
	cfg.Seed = seed
	g.Reset(cfg)
	return g
}

func frame(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func steps(g *Game, n int) {
	for i := 0; i < n; i++ {
		g.Step(core.NewInputFrame())
	}
}

func TestRegistered(t *testing.T) {
	for _, id := range []string{"tetris", "tetris_classic"} {
		g, err := registry.Create(id)
		require.NoError(t, err)
		assert.Equal(t, id, g.ID())
	}
	assert.Equal(t, "Tetris", New().Title())
	assert.Equal(t, "Tetris (Classic)", NewClassic().Title())
	assert.NotEmpty(t, NewClassic().Description())
}

func TestResetStartsFreshRun(t *testing.T) {
	g := newTestGame(t, New(), 1)

	st := g.State()
	assert.Equal(t, core.GameState{Level: 1, Pieces: 1}, st)

	first := g.RunID()
	_, err := uuid.Parse(first)
	require.NoError(t, err)

	g.Reset(core.DefaultConfig())
	assert.NotEqual(t, first, g.RunID())
	assert.Zero(t, g.Duration())
}

func TestClassicModeDisablesKicks(t *testing.T) {
	assert.True(t, newTestGame(t, New(), 1).cfg.Rotation.WallKicks)
	assert.False(t, newTestGame(t, NewClassic(), 1).cfg.Rotation.WallKicks)
}

func TestMoveCountsEveryPress(t *testing.T) {
	g := newTestGame(t, New(), 2)
	start := g.Snapshot().Piece

	g.Step(frame(core.ActionLeft, core.ActionLeft))
	assert.Equal(t, start.X-2, g.Snapshot().Piece.X)

	g.Step(frame(core.ActionRight))
	assert.Equal(t, start.X-1, g.Snapshot().Piece.X)
}

func TestRotateActions(t *testing.T) {
	g := newTestGame(t, New(), 2)

	g.Step(frame(core.ActionRotateCW))
	assert.Equal(t, 1, g.Snapshot().Piece.Rotation)

	g.Step(frame(core.ActionRotateCCW, core.ActionRotateCCW))
	assert.Equal(t, 3, g.Snapshot().Piece.Rotation)
}

func TestHardDropLocksAndScores(t *testing.T) {
	g := newTestGame(t, New(), 3)
	snap := g.Snapshot()
	dist := snap.GhostY - snap.Piece.Y

	res := g.Step(frame(core.ActionHardDrop))

	assert.True(t, res.Changed)
	assert.Equal(t, dist*2, res.State.Score)
	assert.Equal(t, 2, res.State.Pieces)
}

func TestGravityFollowsFrameTime(t *testing.T) {
	g := newTestGame(t, New(), 4)

	// 54 frames at 60 fps is just under the 900 ms level 1 interval.
	steps(g, 54)
	assert.Equal(t, engine.SpawnRow, g.Snapshot().Piece.Y)

	steps(g, 1)
	assert.Equal(t, engine.SpawnRow+1, g.Snapshot().Piece.Y)
	assert.InDelta(t, float64(55*time.Second/60), float64(g.Duration()), float64(time.Millisecond))
}

func TestPauseFreezesGravity(t *testing.T) {
	g := newTestGame(t, New(), 5)

	res := g.Step(frame(core.ActionPause))
	require.True(t, res.State.Paused)

	steps(g, 300)
	assert.Equal(t, engine.SpawnRow, g.Snapshot().Piece.Y)

	g.Step(frame(core.ActionLeft))
	assert.Equal(t, 3, g.Snapshot().Piece.X, "moves are ignored while paused")

	res = g.Step(frame(core.ActionPause))
	assert.False(t, res.State.Paused)
}

func TestSoftDropHoldWindow(t *testing.T) {
	g := newTestGame(t, New(), 6)

	g.Step(frame(core.ActionSoftDrop))
	snap := g.Snapshot()
	assert.True(t, snap.SoftDrop)
	assert.Greater(t, snap.Piece.Y, engine.SpawnRow, "first press moves immediately")

	// 150 ms at 60 fps is 9 frames; the press frame starts the count.
	steps(g, 8)
	assert.True(t, g.Snapshot().SoftDrop)
	steps(g, 1)
	assert.False(t, g.Snapshot().SoftDrop)
}

func TestSoftDropRepeatExtendsHold(t *testing.T) {
	g := newTestGame(t, New(), 6)

	g.Step(frame(core.ActionSoftDrop))
	y := g.Snapshot().Piece.Y
	g.Step(frame(core.ActionSoftDrop))
	assert.LessOrEqual(t, g.Snapshot().Piece.Y-y, 1, "repeats do not add extra manual drops")

	steps(g, 8)
	assert.True(t, g.Snapshot().SoftDrop)
}

func playToGameOver(t *testing.T, g *Game) {
	t.Helper()
	for i := 0; i < 500 && !g.State().GameOver; i++ {
		g.Step(frame(core.ActionHardDrop))
	}
	require.True(t, g.State().GameOver)
}

func TestGameOverStopsTheGame(t *testing.T) {
	g := newTestGame(t, New(), 7)
	playToGameOver(t, g)

	before := g.Snapshot()
	res := g.Step(frame(core.ActionLeft, core.ActionHardDrop, core.ActionPause))

	assert.False(t, res.Changed)
	assert.True(t, res.State.GameOver)
	assert.False(t, res.State.Paused)
	assert.Equal(t, before, g.Snapshot())
	assert.Positive(t, g.Duration())
}

func TestEventsAreLogged(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel}))
	t.Cleanup(func() { SetLogger(nil) })

	g := newTestGame(t, New(), 8)
	playToGameOver(t, g)

	out := buf.String()
	assert.Contains(t, out, "game started")
	assert.Contains(t, out, "lock")
	assert.Contains(t, out, "game over")
	assert.Contains(t, out, g.RunID())
}

func TestConfigPathAndDifficulty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wide.yaml")
	require.NoError(t, os.WriteFile(path, []byte("board:\n  width: 12\n"), 0o600))

	SetConfigPath(path)
	SetDifficultyPreset("hard")
	t.Cleanup(func() {
		SetConfigPath("")
		SetDifficultyPreset("normal")
	})

	g := newTestGame(t, New(), 9)
	assert.Equal(t, 12, g.Snapshot().Width)
	assert.Equal(t, 4, g.Snapshot().Piece.X)
	assert.Equal(t, 600*time.Millisecond, g.Snapshot().DropInterval)
}

func TestBrokenConfigFallsBackToDefaults(t *testing.T) {
	SetConfigPath(filepath.Join(t.TempDir(), "missing.yaml"))
	SetDifficultyPreset("bogus")
	t.Cleanup(func() {
		SetConfigPath("")
		SetDifficultyPreset("normal")
	})

	g := newTestGame(t, New(), 10)
	assert.Equal(t, 10, g.Snapshot().Width)
	assert.Equal(t, 900*time.Millisecond, g.Snapshot().DropInterval)
}

func TestSeededGamesAreDeterministic(t *testing.T) {
	a := newTestGame(t, New(), 42)
	b := newTestGame(t, New(), 42)
	script := []core.InputFrame{
		frame(core.ActionLeft),
		frame(core.ActionRotateCW),
		frame(),
		frame(core.ActionSoftDrop),
		frame(core.ActionHardDrop),
		frame(core.ActionRight, core.ActionRight),
	}
	for i := 0; i < 600; i++ {
		in := script[i%len(script)]
		a.Step(in)
		b.Step(in)
	}
	assert.Equal(t, a.Snapshot(), b.Snapshot())
	assert.NotEqual(t, a.RunID(), b.RunID())
}

func TestResizeFreezesWhenTooSmall(t *testing.T) {
	g := newTestGame(t, New(), 11)

	g.Resize(20, 10)
	steps(g, 120)
	assert.Equal(t, engine.SpawnRow, g.Snapshot().Piece.Y)

	g.Resize(80, 24)
	steps(g, 60)
	assert.Equal(t, engine.SpawnRow+1, g.Snapshot().Piece.Y)
}

func TestRender(t *testing.T) {
	g := newTestGame(t, New(), 12)
	g.Step(frame(core.ActionHardDrop))
	screen := core.NewScreen(80, 24)

	g.Render(screen)
	out := screen.String()

	assert.Contains(t, out, "Tetris")
	assert.Contains(t, out, "NEXT")
	assert.Contains(t, out, "SCORE")
	assert.Contains(t, out, "LEVEL")
	assert.Contains(t, out, "┌")

	// The locked piece is drawn in its kind's color.
	colored := 0
	for y := 0; y < screen.Height(); y++ {
		for x := 0; x < screen.Width(); x++ {
			c := screen.GetCell(x, y)
			if c.Rune == blockGlyph && c.Color != core.ColorDefault {
				colored++
			}
		}
	}
	// 4 settled cells + 4 for the next preview, two columns each, plus the
	// visible part of the new active piece.
	assert.GreaterOrEqual(t, colored, 16)
}

func TestRenderOverlays(t *testing.T) {
	g := newTestGame(t, New(), 13)
	screen := core.NewScreen(80, 24)

	g.Step(frame(core.ActionPause))
	g.Render(screen)
	assert.Contains(t, screen.String(), "PAUSED")

	g.Step(frame(core.ActionPause))
	playToGameOver(t, g)
	g.Render(screen)
	assert.Contains(t, screen.String(), "GAME OVER")
	assert.Contains(t, screen.String(), "r restart")
}

func TestRenderTooSmall(t *testing.T) {
	g := newTestGame(t, New(), 14)
	screen := core.NewScreen(30, 10)

	g.Render(screen)

	assert.True(t, strings.Contains(screen.String(), "Window too small"))
	assert.Contains(t, screen.String(), "Need 40x23")
}
