package engine

import (
	"fmt"

	"github.com/apex/log"
)

type grid [8][8]Piece

func (g *grid) at(pos Position) Piece {
	return g[pos.Row][pos.Col]
}

func (g *grid) put(pos Position, p Piece) {
	p.Pos = pos
	g[pos.Row][pos.Col] = p
}

func (g *grid) clear(pos Position) {
	g[pos.Row][pos.Col] = emptyPiece(pos)
}

func movesForStepping(g *grid, p Piece, offsets []Position) Moves {
	var moves Moves
	for _, offset := range offsets {
		target := p.Pos.Add(offset)
		if !target.Valid() {
			continue
		}
		moves.add(g, p, target)
	}
	return moves
}

func movesForSliding(g *grid, p Piece, dirs []Position) Moves {
	var moves Moves
	for _, dir := range dirs {
		for target := p.Pos.Add(dir); target.Valid(); target = target.Add(dir) {
			if !moves.add(g, p, target) {
				break
			}
		}
	}
	return moves
}

func movesForKing(g *grid, p Piece) Moves {
	moves := movesForStepping(g, p, royalDirs)
	moves.Castling = castlingForKing(g, p)
	return moves
}

// castlingForKing returns the two-square king hops toward every unmoved home
// rook with a clear path. Attacked transit squares are handled by the
// legality evaluator.
func castlingForKing(g *grid, p Piece) []Position {
	home := p.Color.homeRow()
	if p.Moved || p.Pos != Pos(home, 4) {
		return nil
	}
	var castling []Position
	for _, rookCol := range []int{0, 7} {
		rook := g.at(Pos(home, rookCol))
		if rook.Kind != Rook || !p.Ally(rook) || rook.Moved {
			continue
		}
		step := 1
		if rookCol < p.Pos.Col {
			step = -1
		}
		clear := true
		for col := p.Pos.Col + step; col != rookCol; col += step {
			if !g.at(Pos(home, col)).Empty() {
				clear = false
				break
			}
		}
		if clear {
			castling = append(castling, Pos(home, p.Pos.Col+2*step))
		}
	}
	return castling
}

func movesForPawn(g *grid, p Piece, lastMove *Position) Moves {
	var moves Moves
	dir := p.Color.pawnDirection()
	one := p.Pos.Add(Pos(dir, 0))
	if one.Valid() && g.at(one).Empty() {
		moves.Moves = append(moves.Moves, one)
		two := one.Add(Pos(dir, 0))
		if !p.Moved && two.Valid() && g.at(two).Empty() {
			moves.Moves = append(moves.Moves, two)
		}
	}
	for _, side := range []int{-1, 1} {
		target := p.Pos.Add(Pos(dir, side))
		if target.Valid() && p.Enemy(g.at(target)) {
			moves.Captures = append(moves.Captures, target)
		}
	}
	moves.EnPassant = enPassantForPawn(g, p, lastMove)
	return moves
}

// enPassantForPawn requires the flagged pawn, an adjacent enemy pawn that made
// the last move and an empty landing square behind it.
func enPassantForPawn(g *grid, p Piece, lastMove *Position) []Position {
	if !p.EnPassant || lastMove == nil {
		return nil
	}
	if p.Pos.Row != p.Color.enPassantRow() {
		return nil
	}
	var targets []Position
	for _, dir := range adjacentDirs {
		enemyPos := p.Pos.Add(dir)
		if !enemyPos.Valid() || enemyPos != *lastMove {
			continue
		}
		enemy := g.at(enemyPos)
		if enemy.Kind != Pawn || !p.Enemy(enemy) {
			continue
		}
		landing := enemyPos.Add(Pos(p.Color.pawnDirection(), 0))
		if landing.Valid() && g.at(landing).Empty() {
			targets = append(targets, landing)
		}
	}
	return targets
}

// movesForPiece computes the move cache of p from the grid and last move.
func movesForPiece(g *grid, p Piece, lastMove *Position) Moves {
	switch p.Kind {
	case Empty:
		return Moves{}
	case King:
		return movesForKing(g, p)
	case Knight:
		return movesForStepping(g, p, knightOffsets)
	case Rook:
		return movesForSliding(g, p, orthogonalDirs)
	case Bishop:
		return movesForSliding(g, p, diagonalDirs)
	case Queen:
		return movesForSliding(g, p, royalDirs)
	case Pawn:
		return movesForPawn(g, p, lastMove)
	}
	err := fmt.Errorf("invalid piece kind %d", p.Kind)
	log.WithError(err).WithField("pos", p.Pos).Error("invalid piece")
	panic(err)
}

// movesForGrid is the derived move cache of every square.
func movesForGrid(g *grid, lastMove *Position) [8][8]Moves {
	var moves [8][8]Moves
	for row := range g {
		for col := range g[row] {
			moves[row][col] = movesForPiece(g, g[row][col], lastMove)
		}
	}
	return moves
}
