package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fillRow occupies every cell of row y except the listed columns.
func fillRow(b *Board, y int, k Kind, except ...int) {
	skip := make(map[int]bool, len(except))
	for _, x := range except {
		skip[x] = true
	}
	for x := 0; x < b.width; x++ {
		if !skip[x] {
			b.cells[y][x] = k
		}
	}
}

func newTestBoard(t *testing.T) *Board {
	t.Helper()
	b, err := NewBoard(10, 20)
	require.NoError(t, err)
	return b
}

func TestNewBoardIsEmpty(t *testing.T) {
	b := newTestBoard(t)

	assert.Equal(t, 10, b.Width())
	assert.Equal(t, 20, b.Height())
	require.Len(t, b.cells, 20)
	for y, row := range b.cells {
		require.Len(t, row, 10, "row %d", y)
		for x, c := range row {
			assert.Equal(t, KindNone, c, "cell (%d, %d)", x, y)
		}
	}
	assert.Equal(t, 0, b.filled())
}

func TestNewBoardRejectsBadDimensions(t *testing.T) {
	tests := []struct {
		name string
		w, h int
	}{
		{"zero width", 0, 20},
		{"zero height", 10, 0},
		{"negative width", -1, 5},
		{"negative height", 5, -3},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b, err := NewBoard(tc.w, tc.h)
			assert.Nil(t, b)
			assert.ErrorIs(t, err, ErrInvalidDimensions)
		})
	}
}

func TestBoardFits(t *testing.T) {
	b := newTestBoard(t)
	b.cells[19][4] = KindZ

	tests := []struct {
		name     string
		kind     Kind
		rot      int
		x, y     int
		expected bool
	}{
		{"I flat at left wall", KindI, 0, 0, 5, true},
		{"I flat through left wall", KindI, 0, -1, 5, false},
		{"I flat at right wall", KindI, 0, 6, 5, true},
		{"I flat through right wall", KindI, 0, 7, 5, false},
		{"I upright mostly above board", KindI, 1, 0, -3, true},
		{"I upright fully above board", KindI, 1, 0, -10, true},
		{"I upright on the floor", KindI, 1, 0, 16, true},
		{"I upright through the floor", KindI, 1, 0, 17, false},
		{"above board still bounded by walls", KindI, 0, -1, -5, false},
		{"O onto occupied cell", KindO, 0, 3, 17, false},
		{"O next to occupied cell", KindO, 0, 4, 17, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, b.Fits(tc.kind, tc.rot, tc.x, tc.y))
		})
	}
}

func TestBoardLockDropsCellsAboveBoard(t *testing.T) {
	b := newTestBoard(t)

	// Upright I in column 2 spanning rows -2..1.
	b.Lock(KindI, 1, 0, -2)

	assert.Equal(t, 2, b.filled())
	assert.Equal(t, KindI, b.At(2, 0))
	assert.Equal(t, KindI, b.At(2, 1))
	assert.Equal(t, KindNone, b.At(2, 2))
}

func TestBoardLockWritesKind(t *testing.T) {
	b := newTestBoard(t)
	b.Lock(KindT, 0, 3, 17)

	// T spawn orientation: (1,1) (0,2) (1,2) (2,2)
	assert.Equal(t, KindT, b.At(4, 18))
	assert.Equal(t, KindT, b.At(3, 19))
	assert.Equal(t, KindT, b.At(4, 19))
	assert.Equal(t, KindT, b.At(5, 19))
	assert.Equal(t, 4, b.filled())
}

func TestClearFullRowsSingleBottomRow(t *testing.T) {
	b := newTestBoard(t)
	fillRow(b, 19, KindI)

	cleared := b.ClearFullRows()

	assert.Equal(t, 1, cleared)
	assert.Len(t, b.cells, 20)
	for x := 0; x < 10; x++ {
		assert.Equal(t, KindNone, b.At(x, 19), "column %d", x)
	}
	assert.Equal(t, 0, b.filled())
}

func TestClearFullRowsPreservesOrder(t *testing.T) {
	b := newTestBoard(t)
	b.cells[14][0] = KindS // marker above everything
	fillRow(b, 15, KindI)
	b.cells[16][1] = KindT // marker between full rows
	fillRow(b, 17, KindL)
	fillRow(b, 18, KindJ, 9)
	fillRow(b, 19, KindO)

	cleared := b.ClearFullRows()

	require.Equal(t, 3, cleared)
	assert.Len(t, b.cells, 20)
	assert.Equal(t, KindS, b.At(0, 17))
	assert.Equal(t, KindT, b.At(1, 18))
	assert.Equal(t, KindJ, b.At(0, 19))
	assert.Equal(t, KindNone, b.At(9, 19))
	for y := 0; y < 17; y++ {
		for x := 0; x < 10; x++ {
			assert.Equal(t, KindNone, b.At(x, y), "cell (%d, %d)", x, y)
		}
	}
}

func TestClearFullRowsNoneFull(t *testing.T) {
	b := newTestBoard(t)
	fillRow(b, 19, KindI, 5)
	before := b.Cells()

	assert.Equal(t, 0, b.ClearFullRows())
	assert.Equal(t, before, b.Cells())
}

func TestClearFullRowsIsNotCapped(t *testing.T) {
	b, err := NewBoard(3, 6)
	require.NoError(t, err)
	for y := 0; y < 6; y++ {
		fillRow(b, y, KindO)
	}

	assert.Equal(t, 6, b.ClearFullRows())
	assert.Equal(t, 0, b.filled())
	assert.Len(t, b.cells, 6)
}

func TestBoardCellsIsACopy(t *testing.T) {
	b := newTestBoard(t)
	cells := b.Cells()
	cells[0][0] = KindZ
	assert.Equal(t, KindNone, b.At(0, 0))
}

func TestBoardAtOutOfBounds(t *testing.T) {
	b := newTestBoard(t)
	assert.Equal(t, KindNone, b.At(-1, 0))
	assert.Equal(t, KindNone, b.At(10, 0))
	assert.Equal(t, KindNone, b.At(0, -1))
	assert.Equal(t, KindNone, b.At(0, 20))
	assert.False(t, b.RowFull(-1))
	assert.False(t, b.RowFull(20))
}
