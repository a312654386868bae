// Package engine implements the Tetris simulation: the piece catalog, the
// 7-bag randomizer, the settled-cell board, the rotation system and the game
// session that ties them together.
//
// The package has no rendering, timer or input dependencies. Hosts drive a
// Session by calling Tick with the elapsed time of each frame and the
// command methods on discrete input events, and read state back through
// Snapshot.
package engine

import "github.com/vovakirdan/tui-tetris/internal/core"

// Kind identifies a tetromino. The zero value KindNone marks an empty cell.
type Kind uint8

const (
	KindNone Kind = iota
	KindI
	KindO
	KindT
	KindS
	KindZ
	KindJ
	KindL
)

// kindCount is the number of playable kinds.
const kindCount = 7

// Offset is a cell position relative to a piece's anchor, or an absolute
// board position once the anchor has been added.
type Offset struct {
	X, Y int
}

// Shape is the set of four cells a piece occupies in one rotation state,
// relative to the top-left corner of its 4x4 bounding box.
type Shape [4]Offset

// catalog holds the four rotation states of every kind, clockwise from spawn.
// Index 0 (KindNone) is intentionally left zero.
var catalog = [kindCount + 1][4]Shape{
	KindI: {
		{{0, 2}, {1, 2}, {2, 2}, {3, 2}},
		{{2, 0}, {2, 1}, {2, 2}, {2, 3}},
		{{0, 1}, {1, 1}, {2, 1}, {3, 1}},
		{{1, 0}, {1, 1}, {1, 2}, {1, 3}},
	},
	KindO: {
		{{1, 1}, {2, 1}, {1, 2}, {2, 2}},
		{{1, 1}, {2, 1}, {1, 2}, {2, 2}},
		{{1, 1}, {2, 1}, {1, 2}, {2, 2}},
		{{1, 1}, {2, 1}, {1, 2}, {2, 2}},
	},
	KindT: {
		{{1, 1}, {0, 2}, {1, 2}, {2, 2}},
		{{1, 1}, {1, 2}, {2, 2}, {1, 3}},
		{{0, 2}, {1, 2}, {2, 2}, {1, 3}},
		{{1, 1}, {0, 2}, {1, 2}, {1, 3}},
	},
	KindS: {
		{{1, 1}, {2, 1}, {0, 2}, {1, 2}},
		{{1, 1}, {1, 2}, {2, 2}, {2, 3}},
		{{1, 2}, {2, 2}, {0, 3}, {1, 3}},
		{{0, 1}, {0, 2}, {1, 2}, {1, 3}},
	},
	KindZ: {
		{{0, 1}, {1, 1}, {1, 2}, {2, 2}},
		{{2, 1}, {1, 2}, {2, 2}, {1, 3}},
		{{0, 2}, {1, 2}, {1, 3}, {2, 3}},
		{{1, 1}, {0, 2}, {1, 2}, {0, 3}},
	},
	KindJ: {
		{{0, 1}, {0, 2}, {1, 2}, {2, 2}},
		{{1, 1}, {2, 1}, {1, 2}, {1, 3}},
		{{0, 2}, {1, 2}, {2, 2}, {2, 3}},
		{{1, 1}, {1, 2}, {0, 3}, {1, 3}},
	},
	KindL: {
		{{2, 1}, {0, 2}, {1, 2}, {2, 2}},
		{{1, 1}, {1, 2}, {1, 3}, {2, 3}},
		{{0, 2}, {1, 2}, {2, 2}, {0, 3}},
		{{0, 1}, {1, 1}, {1, 2}, {1, 3}},
	},
}

var kindColors = [kindCount + 1]core.Color{
	KindNone: core.ColorDefault,
	KindI:    core.ColorCyan,
	KindO:    core.ColorYellow,
	KindT:    core.ColorMagenta,
	KindS:    core.ColorGreen,
	KindZ:    core.ColorRed,
	KindJ:    core.ColorBlue,
	KindL:    core.ColorOrange,
}

// Kinds returns the seven playable kinds in catalog order.
func Kinds() []Kind {
	return []Kind{KindI, KindO, KindT, KindS, KindZ, KindJ, KindL}
}

// Valid reports whether k is one of the seven playable kinds.
func (k Kind) Valid() bool {
	return k >= KindI && k <= KindL
}

// Color returns the display color tag of the kind.
func (k Kind) Color() core.Color {
	if int(k) >= len(kindColors) {
		return core.ColorDefault
	}
	return kindColors[k]
}

// String returns the single-letter name of the kind.
func (k Kind) String() string {
	switch k {
	case KindI:
		return "I"
	case KindO:
		return "O"
	case KindT:
		return "T"
	case KindS:
		return "S"
	case KindZ:
		return "Z"
	case KindJ:
		return "J"
	case KindL:
		return "L"
	default:
		return "."
	}
}

// ShapeOf returns the cell offsets of kind k in the given rotation.
// Rotation is reduced mod 4, so negative values and values above 3 are
// accepted. Kinds outside the catalog yield the zero Shape.
func ShapeOf(k Kind, rotation int) Shape {
	if int(k) >= len(catalog) {
		return Shape{}
	}
	return catalog[k][normRotation(rotation)]
}

// normRotation maps any integer onto 0..3.
func normRotation(rotation int) int {
	r := rotation % 4
	if r < 0 {
		r += 4
	}
	return r
}
