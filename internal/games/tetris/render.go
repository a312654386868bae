package tetris

import (
	"fmt"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/engine"
)

const (
	cellW      = 2  // screen columns per board cell
	panelW     = 18 // side panel width including the gap
	hudHeight  = 1  // title line above the board
	blockGlyph = '█'
	ghostGlyph = '░'
	emptyGlyph = '·'
)

var controls = []string{
	"←→  move",
	"↑ x rotate",
	"z   rotate ccw",
	"↓   soft drop",
	"spc hard drop",
	"p   pause",
	"b   menu",
}

func (g *Game) boardSize() (w, h int) {
	return g.cfg.Board.Width*cellW + 2, g.cfg.Board.Height + 2
}

func (g *Game) minScreenSize() (w, h int) {
	bw, bh := g.boardSize()
	return bw + panelW, bh + hudHeight
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.session == nil {
		return
	}

	g.checkScreenSize(dst.Width(), dst.Height())
	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	snap := g.session.Snapshot()
	bw, bh := g.boardSize()
	totalW := bw + panelW
	originX := (dst.Width() - totalW) / 2
	originY := (dst.Height() - bh - hudHeight) / 2
	board := core.NewRect(originX, originY+hudHeight, bw, bh)

	dst.DrawTextColored(board.X, originY, g.Title(), core.ColorBrightCyan)
	g.renderBoard(dst, board, snap)
	g.renderPanel(dst, board.Right()+2, board.Y, snap)
	g.renderOverlay(dst, board, snap)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	minW, minH := g.minScreenSize()
	y := dst.Height() / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d, have %dx%d", minW, minH, dst.Width(), dst.Height()))
}

// renderBoard draws the border, the settled cells, the ghost and the
// active piece.
func (g *Game) renderBoard(dst *core.Screen, r core.Rect, snap engine.Snapshot) {
	dst.DrawBoxColored(r, core.ColorGray)
	inner := core.NewRect(r.X+1, r.Y+1, snap.Width*cellW, snap.Height)

	drawCell := func(x, y int, glyph rune, c core.Color) {
		if y < 0 || y >= snap.Height {
			return
		}
		px := inner.X + x*cellW
		for i := 0; i < cellW; i++ {
			dst.SetColored(px+i, inner.Y+y, glyph, c)
		}
	}

	for y := 0; y < snap.Height; y++ {
		for x := 0; x < snap.Width; x++ {
			k := snap.Cell(x, y)
			if k == engine.KindNone {
				dst.SetColored(inner.X+x*cellW, inner.Y+y, ' ', core.ColorDefault)
				dst.SetColored(inner.X+x*cellW+1, inner.Y+y, emptyGlyph, core.ColorGray)
				continue
			}
			drawCell(x, y, blockGlyph, k.Color())
		}
	}

	if !snap.HasPiece {
		return
	}

	ghost := snap.Piece
	ghost.Y = snap.GhostY
	if ghost.Y != snap.Piece.Y {
		for _, c := range ghost.Cells() {
			drawCell(c.X, c.Y, ghostGlyph, core.ColorGray)
		}
	}
	for _, c := range snap.Piece.Cells() {
		drawCell(c.X, c.Y, blockGlyph, snap.Piece.Kind.Color())
	}
}

// renderPanel draws the next piece, the counters and the key help.
func (g *Game) renderPanel(dst *core.Screen, x, y int, snap engine.Snapshot) {
	dst.DrawTextColored(x, y, "NEXT", core.ColorWhite)
	preview := engine.Piece{Kind: snap.Next}
	for _, c := range preview.Cells() {
		// Spawn shapes use box rows 1-2, right under the label.
		for i := 0; i < cellW; i++ {
			dst.SetColored(x+c.X*cellW+i, y+c.Y, blockGlyph, snap.Next.Color())
		}
	}

	row := y + 5
	stats := []struct {
		label string
		value int
	}{
		{"SCORE", snap.Score},
		{"LINES", snap.Lines},
		{"LEVEL", snap.Level},
	}
	for _, st := range stats {
		dst.DrawTextColored(x, row, st.label, core.ColorWhite)
		dst.DrawTextColored(x+7, row, fmt.Sprintf("%d", st.value), core.ColorBrightYellow)
		row++
	}
	row++

	if g.mode == ModeClassic {
		dst.DrawTextColored(x, row, "no wall kicks", core.ColorGray)
		row++
	}
	if snap.SoftDrop {
		dst.DrawTextColored(x, row, "soft drop", core.ColorGray)
	}
	row++

	for _, line := range controls {
		if row >= y+snap.Height+1 {
			break
		}
		dst.DrawTextColored(x, row, line, core.ColorGray)
		row++
	}
}

// renderOverlay draws pause and game over boxes over the board.
func (g *Game) renderOverlay(dst *core.Screen, board core.Rect, snap engine.Snapshot) {
	var lines []string
	var color core.Color
	switch {
	case snap.GameOver:
		lines = []string{"GAME OVER", fmt.Sprintf("Score %d", snap.Score), "r restart", "b menu"}
		color = core.ColorBrightRed
	case snap.Paused:
		lines = []string{"PAUSED", "p resume"}
		color = core.ColorBrightYellow
	default:
		return
	}

	w := 0
	for _, l := range lines {
		w = max(w, len([]rune(l)))
	}
	w = min(w+4, board.W)
	h := len(lines) + 2
	box := core.NewRect(board.X+(board.W-w)/2, board.Y+(board.H-h)/2, w, h)

	dst.DrawRectColored(core.NewRect(box.X+1, box.Y+1, box.W-2, box.H-2), ' ', core.ColorDefault)
	dst.DrawBoxColored(box, color)
	for i, l := range lines {
		lx := box.X + (box.W-len([]rune(l)))/2
		c := core.ColorWhite
		if i == 0 {
			c = color
		}
		dst.DrawTextColored(lx, box.Y+1+i, l, c)
	}
}
