// Package engine implements the rules of chess over a mailbox board: move
// generation, check detection and the special moves.
package engine

// Color of a piece. The empty square sentinel has no color.
type Color uint8

const (
	None Color = iota
	White
	Black
)

// Opponent opponent.
func (c Color) Opponent() Color {
	switch c {
	case White:
		return Black
	case Black:
		return White
	}
	return None
}

func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	}
	return "none"
}

// homeRow is the back rank of the color.
func (c Color) homeRow() int {
	if c == White {
		return 7
	}
	return 0
}

// pawnDirection is the row delta of a forward pawn step.
func (c Color) pawnDirection() int {
	if c == White {
		return -1
	}
	return 1
}

// enPassantRow is the only row an en passant capture can start from.
func (c Color) enPassantRow() int {
	if c == White {
		return 3
	}
	return 4
}

// Kind of a piece.
type Kind uint8

const (
	Empty Kind = iota
	King
	Queen
	Rook
	Bishop
	Knight
	Pawn
)

var kindNames = map[Kind]string{
	Empty:  "empty",
	King:   "king",
	Queen:  "queen",
	Rook:   "rook",
	Bishop: "bishop",
	Knight: "knight",
	Pawn:   "pawn",
}

func (k Kind) String() string {
	return kindNames[k]
}

var whiteSymbols = map[Kind]rune{
	King:   '♔',
	Queen:  '♕',
	Rook:   '♖',
	Bishop: '♗',
	Knight: '♘',
	Pawn:   '♙',
}

var blackSymbols = map[Kind]rune{
	King:   '♚',
	Queen:  '♛',
	Rook:   '♜',
	Bishop: '♝',
	Knight: '♞',
	Pawn:   '♟',
}

// Piece is a value occupying one square. A square without a piece holds the
// zero Kind (Empty) with color None.
type Piece struct {
	Kind  Kind
	Color Color
	Pos   Position
	Moved bool
	// EnPassant is set on a pawn whose adjacent enemy pawn has just double jumped.
	EnPassant bool
}

// NewPiece returns an unmoved piece.
func NewPiece(kind Kind, color Color, pos Position) Piece {
	return Piece{Kind: kind, Color: color, Pos: pos}
}

func emptyPiece(pos Position) Piece {
	return Piece{Kind: Empty, Color: None, Pos: pos}
}

// Empty reports whether the square holds no piece.
func (p Piece) Empty() bool {
	return p.Kind == Empty
}

// Enemy reports whether other is a piece of the opposing color. The sentinel is
// never an enemy.
func (p Piece) Enemy(other Piece) bool {
	return !p.Empty() && !other.Empty() && p.Color != other.Color
}

// Ally ally.
func (p Piece) Ally(other Piece) bool {
	return !p.Empty() && !other.Empty() && p.Color == other.Color
}

// Promotable reports whether a pawn stands on its farthest rank.
func (p Piece) Promotable() bool {
	return p.Kind == Pawn && p.Pos.Row == p.Color.Opponent().homeRow()
}

// Symbol returns the unicode glyph of the piece, or a space for the sentinel.
func (p Piece) Symbol() rune {
	switch p.Color {
	case White:
		return whiteSymbols[p.Kind]
	case Black:
		return blackSymbols[p.Kind]
	}
	return ' '
}

func (p Piece) String() string {
	if p.Empty() {
		return "empty " + p.Pos.String()
	}
	return p.Color.String() + " " + p.Kind.String() + " " + p.Pos.String()
}

var backRow = [8]Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// promotionChoices are the kinds a pawn may become.
var promotionChoices = []Kind{Rook, Knight, Bishop, Queen}
