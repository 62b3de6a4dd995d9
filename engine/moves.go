package engine

import "golang.org/x/exp/slices"

// Moves is the move cache of a single piece, split by move class. It is only
// valid until the next board mutation.
type Moves struct {
	Moves     []Position
	Captures  []Position
	Castling  []Position
	EnPassant []Position
}

// All returns the union of every move class.
func (m Moves) All() []Position {
	all := make([]Position, 0, len(m.Moves)+len(m.Captures)+len(m.Castling)+len(m.EnPassant))
	all = append(all, m.Moves...)
	all = append(all, m.Captures...)
	all = append(all, m.Castling...)
	return append(all, m.EnPassant...)
}

// ListAllCaptures returns captures and en passant targets, the squares the
// piece attacks.
func (m Moves) ListAllCaptures() []Position {
	all := make([]Position, 0, len(m.Captures)+len(m.EnPassant))
	all = append(all, m.Captures...)
	return append(all, m.EnPassant...)
}

// Contains reports whether pos is in any move class.
func (m Moves) Contains(pos Position) bool {
	return slices.Contains(m.Moves, pos) ||
		slices.Contains(m.Captures, pos) ||
		slices.Contains(m.Castling, pos) ||
		slices.Contains(m.EnPassant, pos)
}

// Attacks reports whether pos is in the capture or en passant class.
func (m Moves) Attacks(pos Position) bool {
	return slices.Contains(m.Captures, pos) || slices.Contains(m.EnPassant, pos)
}

func (m *Moves) add(g *grid, p Piece, target Position) bool {
	occupant := g.at(target)
	if occupant.Empty() {
		m.Moves = append(m.Moves, target)
		return true
	}
	if p.Enemy(occupant) {
		m.Captures = append(m.Captures, target)
	}
	return false
}
