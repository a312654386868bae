package engine

import (
	"strings"
	"time"
)

// Snapshot is a read-only copy of everything a renderer or a test needs.
type Snapshot struct {
	Width  int
	Height int
	Grid   [][]Kind // [y][x], deep copy

	Piece    Piece
	HasPiece bool
	GhostY   int

	Next  Kind
	Score int
	Lines int
	Level int

	Paused   bool
	GameOver bool
	SoftDrop bool

	DropInterval time.Duration
	Stats        Stats
}

// Snapshot copies the current session state.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Width:        s.board.width,
		Height:       s.board.height,
		Grid:         s.board.Cells(),
		Piece:        s.piece,
		HasPiece:     s.hasPiece,
		Next:         s.next,
		Score:        s.score,
		Lines:        s.lines,
		Level:        s.level,
		Paused:       s.paused,
		GameOver:     s.gameOver,
		SoftDrop:     s.softDrop,
		DropInterval: s.DropInterval(),
		Stats:        s.stats,
	}
	if s.hasPiece {
		snap.GhostY = s.piece.GhostY(s.board)
	}
	return snap
}

// Cell returns the settled kind at (x, y), or KindNone outside the grid.
func (sn Snapshot) Cell(x, y int) Kind {
	if y < 0 || y >= len(sn.Grid) || x < 0 || x >= len(sn.Grid[y]) {
		return KindNone
	}
	return sn.Grid[y][x]
}

// String draws the grid with the active piece as letters, one row per line.
// Empty cells are dots. Used by tests and the debug log.
func (sn Snapshot) String() string {
	rows := make([][]byte, sn.Height)
	for y := range rows {
		rows[y] = make([]byte, sn.Width)
		for x := range rows[y] {
			rows[y][x] = sn.Cell(x, y).String()[0]
		}
	}
	if sn.HasPiece {
		letter := strings.ToLower(sn.Piece.Kind.String())[0]
		for _, c := range sn.Piece.Cells() {
			if c.Y >= 0 && c.Y < sn.Height && c.X >= 0 && c.X < sn.Width {
				rows[c.Y][c.X] = letter
			}
		}
	}

	var sb strings.Builder
	sb.Grow((sn.Width + 1) * sn.Height)
	for y, row := range rows {
		if y > 0 {
			sb.WriteByte('\n')
		}
		sb.Write(row)
	}
	return sb.String()
}
