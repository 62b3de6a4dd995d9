package engine

import "fmt"

// Position is a (row, column) pair. Row 0 is the black home rank and row 7 the
// white home rank.
type Position struct {
	Row int
	Col int
}

// Pos pos.
func Pos(row, col int) Position {
	return Position{Row: row, Col: col}
}

// Valid reports whether both axes lie in [0,7].
func (p Position) Valid() bool {
	return p.Row >= 0 && p.Row < 8 && p.Col >= 0 && p.Col < 8
}

// Add offsets the position by a direction.
func (p Position) Add(d Position) Position {
	return Position{Row: p.Row + d.Row, Col: p.Col + d.Col}
}

// Light reports whether the square is a light square.
func (p Position) Light() bool {
	return (p.Row+p.Col)%2 == 0
}

// String renders the square in algebraic form, a8 being (0,0).
func (p Position) String() string {
	if !p.Valid() {
		return fmt.Sprintf("[%d,%d]", p.Row, p.Col)
	}
	return fmt.Sprintf("%c%d", 'a'+p.Col, 8-p.Row)
}

var (
	orthogonalDirs = []Position{{-1, 0}, {0, -1}, {0, 1}, {1, 0}}
	diagonalDirs   = []Position{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	royalDirs      = append(append([]Position{}, orthogonalDirs...), diagonalDirs...)
	knightOffsets  = []Position{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	adjacentDirs   = []Position{{0, -1}, {0, 1}}
)
