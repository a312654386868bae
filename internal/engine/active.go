package engine

// Direction is a rotation direction.
type Direction int

const (
	Clockwise Direction = iota
	CounterClockwise
)

// DefaultKicks is the wall-kick list tried, in order, after a rotation. The
// first entry is the un-kicked placement.
var DefaultKicks = []Offset{{0, 0}, {1, 0}, {-1, 0}, {0, -1}, {2, 0}, {-2, 0}}

// NoKicks disables wall kicks: a rotation either fits in place or is rejected.
var NoKicks = []Offset{{0, 0}}

// Piece is the falling tetromino. X and Y anchor the top-left corner of its
// 4x4 bounding box; Y is negative while part of the box is above the board.
type Piece struct {
	Kind     Kind
	Rotation int
	X, Y     int
}

// Cells returns the absolute board coordinates of the piece's four cells.
func (p Piece) Cells() [4]Offset {
	var out [4]Offset
	for i, off := range ShapeOf(p.Kind, p.Rotation) {
		out[i] = Offset{X: p.X + off.X, Y: p.Y + off.Y}
	}
	return out
}

// Fits reports whether the piece fits on b where it stands.
func (p Piece) Fits(b *Board) bool {
	return b.Fits(p.Kind, p.Rotation, p.X, p.Y)
}

// Move shifts the piece dx columns if the new position fits.
func (p *Piece) Move(b *Board, dx int) bool {
	if !b.Fits(p.Kind, p.Rotation, p.X+dx, p.Y) {
		return false
	}
	p.X += dx
	return true
}

// Fall moves the piece one row down. It returns false, leaving the piece in
// place, when the piece is grounded.
func (p *Piece) Fall(b *Board) bool {
	if !b.Fits(p.Kind, p.Rotation, p.X, p.Y+1) {
		return false
	}
	p.Y++
	return true
}

// Rotate turns the piece a quarter turn in dir, trying each kick offset in
// order and keeping the first placement that fits. When none fits the piece
// is left untouched.
func (p *Piece) Rotate(b *Board, dir Direction, kicks []Offset) bool {
	step := 1
	if dir == CounterClockwise {
		step = -1
	}
	rot := normRotation(p.Rotation + step)
	for _, k := range kicks {
		if b.Fits(p.Kind, rot, p.X+k.X, p.Y+k.Y) {
			p.Rotation = rot
			p.X += k.X
			p.Y += k.Y
			return true
		}
	}
	return false
}

// GhostY returns the row the piece would come to rest on if dropped
// straight down. It does not modify the piece.
func (p Piece) GhostY(b *Board) int {
	y := p.Y
	for b.Fits(p.Kind, p.Rotation, p.X, y+1) {
		y++
	}
	return y
}

// HardDrop moves the piece to its ghost row and returns the number of rows
// it descended.
func (p *Piece) HardDrop(b *Board) int {
	gy := p.GhostY(b)
	dist := gy - p.Y
	p.Y = gy
	return dist
}
