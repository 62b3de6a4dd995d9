package engine

import "golang.org/x/exp/slices"

// Check reports whether the king of color is attacked. It refreshes every
// move cache first.
func (board *Board) Check(color Color) bool {
	board.UpdateAllMoves()
	king := board.mustKingPos(color)
	for _, piece := range board.Pieces(color.Opponent()) {
		if board.Moves(piece.Pos).Attacks(king) {
			return true
		}
	}
	return false
}

// Checkmate reports whether color is in check with no legal move.
func (board *Board) Checkmate(color Color) bool {
	return board.Check(color) && !board.HasLegalMove(color)
}

// Stalemate reports whether color has no legal move while not in check.
func (board *Board) Stalemate(color Color) bool {
	return !board.Check(color) && !board.HasLegalMove(color)
}

// HasLegalMove reports whether any piece of color has a move that does not
// leave its king in check.
func (board *Board) HasLegalMove(color Color) bool {
	board.UpdateAllMoves()
	for _, piece := range board.Pieces(color) {
		for _, end := range board.Moves(piece.Pos).All() {
			if board.legal(color, piece.Pos, end) {
				return true
			}
		}
	}
	return false
}

// LegalMoves returns the destinations of the piece at pos that pass every
// legality test.
func (board *Board) LegalMoves(pos Position) []Position {
	piece, err := board.Get(pos)
	if err != nil || piece.Empty() {
		return nil
	}
	var legal []Position
	for _, end := range board.Moves(pos).All() {
		if board.legal(piece.Color, pos, end) {
			legal = append(legal, end)
		}
	}
	return legal
}

// KingCastlingCausesCheck reports whether the king of color would pass through
// or land on an attacked square for any of its castling moves.
func (board *Board) KingCastlingCausesCheck(color Color) bool {
	king := board.mustKingPos(color)
	for _, end := range board.Moves(king).Castling {
		if board.castlingPathAttacked(color, king, end) {
			return true
		}
	}
	return false
}

// InsufficientMaterial reports whether neither side can force mate: bare kings,
// kings with bishops all on one square color, or kings with a single knight.
func (board *Board) InsufficientMaterial() bool {
	var minor []Piece
	for _, piece := range board.Pieces(None) {
		if piece.Kind != King {
			minor = append(minor, piece)
		}
	}
	if len(minor) == 0 {
		return true
	}
	if len(minor) == 1 && minor[0].Kind == Knight {
		return true
	}
	light := minor[0].Pos.Light()
	for _, piece := range minor {
		if piece.Kind != Bishop || piece.Pos.Light() != light {
			return false
		}
	}
	return true
}

func (board *Board) legal(color Color, start, end Position) bool {
	if slices.Contains(board.Moves(start).Castling, end) {
		if board.Check(color) || board.castlingPathAttacked(color, start, end) {
			return false
		}
	}
	return !board.inCheckAfter(color, start, end)
}

// castlingPathAttacked tests every square the king crosses, destination
// included, with the king standing on it.
func (board *Board) castlingPathAttacked(color Color, king, end Position) bool {
	step := 1
	if end.Col < king.Col {
		step = -1
	}
	for col := king.Col + step; ; col += step {
		if board.inCheckAfter(color, king, Pos(king.Row, col)) {
			return true
		}
		if col == end.Col {
			return false
		}
	}
}

// inCheckAfter plays start to end without flipping Moved or moving a castling
// rook, tests check and rolls the board back, move caches included, on every
// exit path. An en passant victim is lifted for the test since it may be the
// piece giving or blocking check.
func (board *Board) inCheckAfter(color Color, start, end Position) bool {
	piece := board.grid.at(start)
	undo := board.grid.at(end)
	victim := end.Add(Pos(-piece.Color.pawnDirection(), 0))
	enPassant := slices.Contains(board.Moves(start).EnPassant, end)
	var captured Piece
	if enPassant {
		captured = board.grid.at(victim)
	}
	defer func() {
		board.grid[start.Row][start.Col] = piece
		board.grid[end.Row][end.Col] = undo
		if enPassant {
			board.grid[victim.Row][victim.Col] = captured
		}
		board.UpdateAllMoves()
	}()
	board.grid.clear(start)
	board.grid.put(end, piece)
	if enPassant {
		board.grid.clear(victim)
	}
	return board.Check(color)
}
