package engine

import (
	"fmt"

	"github.com/apex/log"
	"golang.org/x/exp/slices"
)

// Special classifies a move that needs side effects beyond relocating the
// moving piece.
type Special uint8

const (
	NoSpecial Special = iota
	EnPassant
	Castling
	Promotion
)

func (s Special) String() string {
	switch s {
	case EnPassant:
		return "en_passant"
	case Castling:
		return "castling"
	case Promotion:
		return "promotion"
	}
	return "none"
}

// SpecialMoveType classifies start to end from the moving piece's cache.
func (board *Board) SpecialMoveType(start, end Position) Special {
	piece, err := board.Get(start)
	if err != nil || !end.Valid() {
		return NoSpecial
	}
	moves := board.Moves(start)
	switch {
	case slices.Contains(moves.EnPassant, end):
		return EnPassant
	case slices.Contains(moves.Castling, end):
		return Castling
	}
	landed := piece
	landed.Pos = end
	if landed.Promotable() {
		return Promotion
	}
	return NoSpecial
}

// EnPassantMove removes the pawn captured by piece landing on end. The captured
// pawn stands one rank behind end in the capturing pawn's direction of travel.
func (board *Board) EnPassantMove(piece Piece, end Position) {
	board.grid.clear(end.Add(Pos(-piece.Color.pawnDirection(), 0)))
}

// castlingRook returns the corner and landing square of the rook for a king
// landing on end: column 6 castles kingside, column 2 queenside.
func castlingRook(end Position) (Position, Position) {
	if end.Col == 6 {
		return Pos(end.Row, 7), Pos(end.Row, 5)
	}
	return Pos(end.Row, 0), Pos(end.Row, 3)
}

// castlingReady reports whether king stands unmoved on its home square and
// the corner for end holds an unmoved allied rook.
func (board *Board) castlingReady(king Piece, end Position) bool {
	home := king.Color.homeRow()
	if king.Kind != King || king.Moved || king.Pos != Pos(home, 4) {
		return false
	}
	if end != Pos(home, 2) && end != Pos(home, 6) {
		return false
	}
	from, _ := castlingRook(end)
	rook := board.grid.at(from)
	return rook.Kind == Rook && !rook.Moved && king.Ally(rook)
}

// CastlingMove relocates the rook for a king landing on end. Nothing happens
// unless the corner holds an unmoved rook allied with the king on its row.
func (board *Board) CastlingMove(end Position) {
	if !end.Valid() {
		return
	}
	from, to := castlingRook(end)
	if !board.castlingReady(board.grid.at(Pos(end.Row, 4)), end) {
		return
	}
	rook := board.grid.at(from)
	board.grid.clear(from)
	board.grid.put(to, board.update(rook, to))
}

// validateSpecial checks everything the side effects of special rely on, so
// that ExecuteSpecialMove fails before touching the board.
func (board *Board) validateSpecial(special Special, start, end Position, choice Kind) error {
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
	switch special {
	case EnPassant:
		victimPos := end.Add(Pos(-piece.Color.pawnDirection(), 0))
		if piece.Kind != Pawn || !victimPos.Valid() {
			return fmt.Errorf("%w: en passant %s to %s", ErrMove, start, end)
		}
		if victim := board.grid.at(victimPos); victim.Kind != Pawn || !piece.Enemy(victim) {
			return fmt.Errorf("%w: en passant %s to %s", ErrMove, start, end)
		}
	case Castling:
		if !board.castlingReady(piece, end) {
			return fmt.Errorf("%w: castling %s to %s", ErrMove, start, end)
		}
	case Promotion:
		if piece.Kind != Pawn {
			return fmt.Errorf("%w: no pawn at %s", ErrPromotion, start)
		}
		if !slices.Contains(promotionChoices, choice) {
			return fmt.Errorf("%w: %s", ErrPromotion, choice)
		}
	}
	return nil
}

// PromotionMove replaces the pawn at pos with a new piece of kind choice.
func (board *Board) PromotionMove(pos Position, choice Kind) error {
	pawn, err := board.Get(pos)
	if err != nil {
		return err
	}
	if pawn.Kind != Pawn {
		return fmt.Errorf("%w: no pawn at %s", ErrPromotion, pos)
	}
	if !slices.Contains(promotionChoices, choice) {
		return fmt.Errorf("%w: %s", ErrPromotion, choice)
	}
	promoted := NewPiece(choice, pawn.Color, pos)
	promoted.Moved = true
	board.grid.put(pos, promoted)
	board.UpdateAllMoves()
	return nil
}

// ExecuteSpecialMove commits start to end along with the side effects of
// special. Rook relocation and en passant capture happen before the primary
// move; the promotion swap happens once the pawn has landed.
func (board *Board) ExecuteSpecialMove(special Special, start, end Position, choice Kind) error {
	if err := board.validateSpecial(special, start, end, choice); err != nil {
		return err
	}
	piece := board.grid.at(start)
	switch special {
	case EnPassant:
		board.EnPassantMove(piece, end)
	case Castling:
		board.CastlingMove(end)
	}
	if err := board.MovePiece(start, end); err != nil {
		return err
	}
	if special == Promotion {
		if err := board.PromotionMove(end, choice); err != nil {
			return err
		}
	}
	if special != NoSpecial {
		log.WithFields(log.Fields{
			"special": special,
			"color":   piece.Color,
			"start":   start,
			"end":     end,
		}).Debug("special move")
	}
	return nil
}

// Play validates and commits one ply for color. The board is left untouched
// when an error is returned.
func (board *Board) Play(color Color, start, end Position, choice Kind) (Special, error) {
	if err := board.ValidateStartPos(color, start); err != nil {
		return NoSpecial, err
	}
	if err := board.ValidateEndPos(start, end, color); err != nil {
		return NoSpecial, err
	}
	special := board.SpecialMoveType(start, end)
	if special == Promotion && !slices.Contains(promotionChoices, choice) {
		return NoSpecial, fmt.Errorf("%w: %s", ErrPromotion, choice)
	}
	return special, board.ExecuteSpecialMove(special, start, end, choice)
}
