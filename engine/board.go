package engine

import (
	"fmt"
	"strings"

	"github.com/apex/log"
)

// Board is the canonical game state: an 8x8 grid in which every square holds
// exactly one Piece value, the end square of the last committed move and the
// move cache derived from both.
type Board struct {
	grid     grid
	moves    [8][8]Moves
	lastMove *Position
}

// NewEmptyBoard returns a board holding only empty squares.
func NewEmptyBoard() *Board {
	var board Board
	for row := range board.grid {
		for col := range board.grid[row] {
			board.grid.clear(Pos(row, col))
		}
	}
	return &board
}

// NewBoard returns the standard starting position.
func NewBoard() *Board {
	board := NewEmptyBoard()
	for _, color := range []Color{White, Black} {
		home := color.homeRow()
		pawns := home + color.pawnDirection()
		for col, kind := range backRow {
			board.grid.put(Pos(home, col), NewPiece(kind, color, Pos(home, col)))
			board.grid.put(Pos(pawns, col), NewPiece(Pawn, color, Pos(pawns, col)))
		}
	}
	board.UpdateAllMoves()
	return board
}

// Clone returns an independent copy of the board.
func (board *Board) Clone() *Board {
	clone := *board
	if board.lastMove != nil {
		lastMove := *board.lastMove
		clone.lastMove = &lastMove
	}
	return &clone
}

// Get returns the occupant of pos.
func (board *Board) Get(pos Position) (Piece, error) {
	if !pos.Valid() {
		return Piece{}, fmt.Errorf("%w: %s", ErrPosition, pos)
	}
	return board.grid.at(pos), nil
}

// Set places piece at pos and refreshes the move cache.
func (board *Board) Set(pos Position, piece Piece) error {
	if !pos.Valid() {
		return fmt.Errorf("%w: %s", ErrPosition, pos)
	}
	if piece.Empty() {
		board.grid.clear(pos)
	} else {
		board.grid.put(pos, piece)
	}
	board.UpdateAllMoves()
	return nil
}

// LastMove returns the end square of the last committed move.
func (board *Board) LastMove() (Position, bool) {
	if board.lastMove == nil {
		return Position{}, false
	}
	return *board.lastMove, true
}

// Moves returns the cached move set of the piece at pos.
func (board *Board) Moves(pos Position) Moves {
	if !pos.Valid() {
		return Moves{}
	}
	return board.moves[pos.Row][pos.Col]
}

// ListAllCaptures returns the attacked squares of the piece at pos.
func (board *Board) ListAllCaptures(pos Position) []Position {
	return board.Moves(pos).ListAllCaptures()
}

// UpdateAllMoves recomputes every piece's move cache.
func (board *Board) UpdateAllMoves() {
	board.moves = movesForGrid(&board.grid, board.lastMove)
}

// Pieces returns the pieces of color in board order. None selects every
// occupied square.
func (board *Board) Pieces(color Color) []Piece {
	pieces := make([]Piece, 0, 16)
	for row := range board.grid {
		for _, piece := range board.grid[row] {
			if piece.Empty() {
				continue
			}
			if color == None || piece.Color == color {
				pieces = append(pieces, piece)
			}
		}
	}
	return pieces
}

// Validate checks that each color has exactly one king.
func (board *Board) Validate() error {
	for _, color := range []Color{White, Black} {
		if _, err := board.kingPos(color); err != nil {
			return err
		}
	}
	return nil
}

func (board *Board) kingPos(color Color) (Position, error) {
	var kings []Position
	for _, piece := range board.Pieces(color) {
		if piece.Kind == King {
			kings = append(kings, piece.Pos)
		}
	}
	if len(kings) != 1 {
		return Position{}, fmt.Errorf("%w: %s has %d", ErrKingCount, color, len(kings))
	}
	return kings[0], nil
}

func (board *Board) mustKingPos(color Color) Position {
	pos, err := board.kingPos(color)
	if err != nil {
		log.WithError(err).WithField("color", color).Error("board invariant violated")
		panic(err)
	}
	return pos
}

// ValidateStartPos checks that pos holds a piece of the moving color.
func (board *Board) ValidateStartPos(color Color, pos Position) error {
	piece, err := board.Get(pos)
	if err != nil {
		return err
	}
	if piece.Empty() {
		return fmt.Errorf("%w: %s", ErrSquare, pos)
	}
	if piece.Color != color {
		return fmt.Errorf("%w: %s", ErrOpponent, pos)
	}
	return nil
}

// ValidateEndPos checks that end is a move of the piece at start which does not
// leave the king of color in check.
func (board *Board) ValidateEndPos(start, end Position, color Color) error {
	if !start.Valid() {
		return fmt.Errorf("%w: %s", ErrPosition, start)
	}
	if !end.Valid() {
		return fmt.Errorf("%w: %s", ErrPosition, end)
	}
	if !board.Moves(start).Contains(end) {
		return fmt.Errorf("%w: %s to %s", ErrMove, start, end)
	}
	if !board.legal(color, start, end) {
		return fmt.Errorf("%w: %s to %s", ErrCheck, start, end)
	}
	return nil
}

// MovePiece relocates the occupant of start to end and commits the move. Special
// move side effects are applied by ExecuteSpecialMove.
func (board *Board) MovePiece(start, end Position) error {
	piece, err := board.Get(start)
	if err != nil {
		return err
	}
	if !end.Valid() {
		return fmt.Errorf("%w: %s", ErrPosition, end)
	}
	if piece.Empty() {
		return fmt.Errorf("%w: %s", ErrSquare, start)
	}
	board.expireEnPassant(piece.Color)
	board.grid.clear(start)
	board.grid.put(end, board.update(piece, end))
	board.lastMove = &end
	board.UpdateAllMoves()
	log.WithFields(log.Fields{
		"piece": piece.Kind,
		"color": piece.Color,
		"start": start,
		"end":   end,
	}).Debug("move")
	return nil
}

// update marks the piece moved at its new square. A pawn double jump flags
// the adjacent enemy pawns as able to capture en passant.
func (board *Board) update(piece Piece, end Position) Piece {
	if piece.Kind == Pawn && !piece.Moved && abs(end.Row-piece.Pos.Row) == 2 {
		for _, dir := range adjacentDirs {
			pos := end.Add(dir)
			if !pos.Valid() {
				continue
			}
			neighbor := board.grid.at(pos)
			if neighbor.Kind == Pawn && piece.Enemy(neighbor) {
				neighbor.EnPassant = true
				board.grid.put(pos, neighbor)
			}
		}
	}
	piece.Pos = end
	piece.Moved = true
	return piece
}

// expireEnPassant clears the flags of color's pawns, which last for one ply.
func (board *Board) expireEnPassant(color Color) {
	for row := range board.grid {
		for col := range board.grid[row] {
			if piece := &board.grid[row][col]; piece.Color == color {
				piece.EnPassant = false
			}
		}
	}
}

func (board *Board) String() string {
	var b strings.Builder
	for row := range board.grid {
		fmt.Fprintf(&b, "%d ", 8-row)
		for _, piece := range board.grid[row] {
			if piece.Empty() {
				b.WriteRune('·')
			} else {
				b.WriteRune(piece.Symbol())
			}
			b.WriteByte(' ')
		}
		b.WriteByte('\n')
	}
	b.WriteString("  a b c d e f g h\n")
	return b.String()
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
