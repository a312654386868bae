package engine

import (
	"errors"
	"fmt"
)

// ErrInvalidDimensions is returned when a board is requested with a
// non-positive width or height.
var ErrInvalidDimensions = errors.New("engine: board dimensions must be positive")

// Board is the grid of settled cells. Row 0 is the top of the visible
// playfield; rows grow downwards. The dimensions are fixed at construction.
type Board struct {
	width  int
	height int
	cells  [][]Kind
}

// NewBoard allocates an empty width x height board.
func NewBoard(width, height int) (*Board, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, width, height)
	}
	b := &Board{width: width, height: height}
	b.cells = make([][]Kind, height)
	for y := range b.cells {
		b.cells[y] = make([]Kind, width)
	}
	return b, nil
}

// Width returns the number of columns.
func (b *Board) Width() int {
	return b.width
}

// Height returns the number of rows.
func (b *Board) Height() int {
	return b.height
}

// At returns the kind settled at (x, y), or KindNone for empty and
// out-of-bounds cells.
func (b *Board) At(x, y int) Kind {
	if !b.inBounds(x, y) {
		return KindNone
	}
	return b.cells[y][x]
}

// Fits reports whether kind k in the given rotation can occupy the board
// with its anchor at (x, y). Cells above the board (y < 0) only have to be
// inside the side walls; every other cell must be in bounds and empty.
func (b *Board) Fits(k Kind, rotation, x, y int) bool {
	for _, off := range ShapeOf(k, rotation) {
		cx, cy := x+off.X, y+off.Y
		if cx < 0 || cx >= b.width || cy >= b.height {
			return false
		}
		if cy >= 0 && b.cells[cy][cx] != KindNone {
			return false
		}
	}
	return true
}

// Lock writes the piece into the grid. Cells above the board are dropped.
// The caller must have checked the placement with Fits.
func (b *Board) Lock(k Kind, rotation, x, y int) {
	for _, off := range ShapeOf(k, rotation) {
		cx, cy := x+off.X, y+off.Y
		if cy < 0 || !b.inBounds(cx, cy) {
			continue
		}
		b.cells[cy][cx] = k
	}
}

// RowFull reports whether every cell of row y is occupied.
func (b *Board) RowFull(y int) bool {
	if y < 0 || y >= b.height {
		return false
	}
	for _, c := range b.cells[y] {
		if c == KindNone {
			return false
		}
	}
	return true
}

// ClearFullRows removes every full row, shifts the rows above it down and
// refills the top with empty rows. It returns the number of rows removed.
func (b *Board) ClearFullRows() int {
	kept := make([][]Kind, 0, b.height)
	var removed [][]Kind
	for y := 0; y < b.height; y++ {
		if b.RowFull(y) {
			removed = append(removed, b.cells[y])
			continue
		}
		kept = append(kept, b.cells[y])
	}
	if len(removed) == 0 {
		return 0
	}

	// Reuse the removed row slices as the new empty rows on top.
	for _, row := range removed {
		for x := range row {
			row[x] = KindNone
		}
	}
	b.cells = append(removed, kept...)
	return len(removed)
}

// Reset empties every cell.
func (b *Board) Reset() {
	for y := range b.cells {
		for x := range b.cells[y] {
			b.cells[y][x] = KindNone
		}
	}
}

// Cells returns a deep copy of the grid, indexed [y][x].
func (b *Board) Cells() [][]Kind {
	out := make([][]Kind, b.height)
	for y, row := range b.cells {
		out[y] = append([]Kind(nil), row...)
	}
	return out
}

// filled returns the number of occupied cells.
func (b *Board) filled() int {
	n := 0
	for _, row := range b.cells {
		for _, c := range row {
			if c != KindNone {
				n++
			}
		}
	}
	return n
}

func (b *Board) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}
