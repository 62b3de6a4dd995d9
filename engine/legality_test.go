package engine

import (
	"errors"

	. "gopkg.in/check.v1"
)

type LegalitySuite struct{}

var _ = Suite(&LegalitySuite{})

func (s *LegalitySuite) TestValidateStartPos(c *C) {
	board := NewBoard()
	c.Assert(board.ValidateStartPos(White, Pos(6, 4)), IsNil)
	c.Assert(errors.Is(board.ValidateStartPos(White, Pos(4, 4)), ErrSquare), Equals, true)
	c.Assert(errors.Is(board.ValidateStartPos(White, Pos(1, 4)), ErrOpponent), Equals, true)
	c.Assert(errors.Is(board.ValidateStartPos(Black, Pos(-1, 4)), ErrPosition), Equals, true)
}

func (s *LegalitySuite) TestValidateEndPos(c *C) {
	board := NewBoard()
	c.Assert(board.ValidateEndPos(Pos(6, 4), Pos(4, 4), White), IsNil)
	c.Assert(errors.Is(board.ValidateEndPos(Pos(6, 4), Pos(3, 4), White), ErrMove), Equals, true)
	c.Assert(errors.Is(board.ValidateEndPos(Pos(6, 4), Pos(6, 8), White), ErrPosition), Equals, true)
	c.Assert(board.ValidateEndPos(Pos(6, 4), Pos(3, 4), White), ErrorMatches, "invalid move: e2 to e5")
}

func (s *LegalitySuite) TestValidateEndPosPinnedPiece(c *C) {
	board := layout(c,
		"....r..k",
		"........",
		"........",
		"........",
		"........",
		"........",
		"....B...",
		"....K...",
	)
	err := board.ValidateEndPos(Pos(6, 4), Pos(5, 3), White)
	c.Assert(errors.Is(err, ErrCheck), Equals, true)
	c.Assert(InputError(err), Equals, true)
	c.Assert(board.LegalMoves(Pos(6, 4)), HasLen, 0)
	c.Assert(board.Moves(Pos(6, 4)).Moves, HasLen, 9)
}

func (s *LegalitySuite) TestCheckSymmetry(c *C) {
	board := layout(c,
		"....k...",
		"........",
		"........",
		"........",
		"....R...",
		"........",
		"........",
		"K.......",
	)
	c.Assert(board.Check(Black), Equals, true)
	c.Assert(board.Check(White), Equals, false)
	c.Assert(board.ListAllCaptures(Pos(4, 4)), sameSquares, []Position{{0, 4}})
	for _, color := range []Color{White, Black} {
		king := board.mustKingPos(color)
		attacked := false
		for _, piece := range board.Pieces(color.Opponent()) {
			if containsPosition(board.ListAllCaptures(piece.Pos), king) {
				attacked = true
			}
		}
		c.Assert(board.Check(color), Equals, attacked)
	}
}

func (s *LegalitySuite) TestPawnGivesCheck(c *C) {
	board := layout(c,
		"........",
		"........",
		"........",
		"...k....",
		"....P...",
		"........",
		"........",
		"K.......",
	)
	c.Assert(board.Check(Black), Equals, true)
}

// The hypothetical move and rollback leave no trace on the board.
func (s *LegalitySuite) TestInCheckAfterRestoresBoard(c *C) {
	board := NewBoard()
	for _, m := range [][2]Position{
		{Pos(6, 4), Pos(4, 4)},
		{Pos(1, 4), Pos(3, 4)},
		{Pos(7, 6), Pos(5, 5)},
		{Pos(1, 3), Pos(3, 3)},
	} {
		c.Assert(board.MovePiece(m[0], m[1]), IsNil)
	}
	before := snapshot(board)
	for _, piece := range board.Pieces(None) {
		for _, end := range board.Moves(piece.Pos).All() {
			board.inCheckAfter(piece.Color, piece.Pos, end)
			assertUnchanged(c, before, board)
		}
	}
	c.Assert(board.HasLegalMove(White), Equals, true)
	assertUnchanged(c, before, board)
	board.Checkmate(Black)
	board.Stalemate(White)
	board.KingCastlingCausesCheck(White)
	assertUnchanged(c, before, board)
}

func (s *LegalitySuite) TestInCheckAfterRestoresOnPanic(c *C) {
	board := layout(c,
		"....k...",
		"........",
		"........",
		"........",
		"........",
		"........",
		"........",
		"R.......",
	)
	before := snapshot(board)
	c.Assert(func() { board.inCheckAfter(White, Pos(7, 0), Pos(6, 0)) }, PanicMatches, ".*white has 0")
	assertUnchanged(c, before, board)
}

func (s *LegalitySuite) TestFoolsMate(c *C) {
	board := NewBoard()
	for _, m := range []struct {
		color      Color
		start, end Position
	}{
		{White, Pos(6, 5), Pos(5, 5)},
		{Black, Pos(1, 4), Pos(3, 4)},
		{White, Pos(6, 6), Pos(4, 6)},
		{Black, Pos(0, 3), Pos(4, 7)},
	} {
		_, err := board.Play(m.color, m.start, m.end, Empty)
		c.Assert(err, IsNil)
	}
	c.Assert(board.Check(White), Equals, true)
	c.Assert(board.Checkmate(White), Equals, true)
	c.Assert(board.Stalemate(White), Equals, false)
	c.Assert(board.Checkmate(Black), Equals, false)
}

func (s *LegalitySuite) TestCheckWithEscape(c *C) {
	board := layout(c,
		"....k...",
		"........",
		"........",
		"........",
		"........",
		"........",
		"........",
		"....R..K",
	)
	c.Assert(board.Check(Black), Equals, true)
	c.Assert(board.Checkmate(Black), Equals, false)
	c.Assert(board.LegalMoves(Pos(0, 4)), sameSquares, []Position{
		{0, 3}, {0, 5}, {1, 3}, {1, 5},
	})
}

func (s *LegalitySuite) TestBackRankMate(c *C) {
	board := layout(c,
		"R.....k.",
		".....ppp",
		"........",
		"........",
		"........",
		"........",
		"........",
		"......K.",
	)
	c.Assert(board.Checkmate(Black), Equals, true)
	c.Assert(board.Checkmate(White), Equals, false)
}

func (s *LegalitySuite) TestStalemate(c *C) {
	board := layout(c,
		"k.......",
		"........",
		".Q......",
		"........",
		"........",
		"........",
		"........",
		"......K.",
	)
	c.Assert(board.Check(Black), Equals, false)
	c.Assert(board.HasLegalMove(Black), Equals, false)
	c.Assert(board.Stalemate(Black), Equals, true)
	c.Assert(board.Checkmate(Black), Equals, false)
	c.Assert(board.Stalemate(White), Equals, false)
}

// Checkmate is only reported for a side in check.
func (s *LegalitySuite) TestCheckmateImpliesCheck(c *C) {
	boards := []*Board{
		NewBoard(),
		layout(c, "k.......", "........", ".Q......", "........", "........", "........", "........", "......K."),
		layout(c, "R.....k.", ".....ppp", "........", "........", "........", "........", "........", "......K."),
		layout(c, "....k...", "........", "........", "........", "........", "........", "........", "....R..K"),
	}
	for _, board := range boards {
		for _, color := range []Color{White, Black} {
			if board.Checkmate(color) {
				c.Assert(board.Check(color), Equals, true)
			}
		}
	}
}

func (s *LegalitySuite) TestInsufficientMaterial(c *C) {
	board := layout(c,
		"....k...",
		"........",
		"........",
		"........",
		"........",
		"........",
		"........",
		"....K...",
	)
	c.Assert(board.InsufficientMaterial(), Equals, true)
	c.Assert(board.Set(Pos(4, 0), NewPiece(Pawn, White, Pos(4, 0))), IsNil)
	c.Assert(board.InsufficientMaterial(), Equals, false)
}

func (s *LegalitySuite) TestInsufficientMaterialMinorPieces(c *C) {
	for _, t := range []struct {
		rows     []string
		expected bool
	}{
		{[]string{"....k...", "........", "........", "........", "........", "........", "........", "..B.K..."}, true},
		{[]string{"....k...", "........", "........", "........", "........", "........", "........", "....K.N."}, true},
		{[]string{"....kn..", "........", "........", "........", "........", "........", "........", "....K.N."}, false},
		{[]string{"..b.k...", "........", "........", "........", "........", "........", "........", ".....BK."}, true},
		{[]string{".b..k...", "........", "........", "........", "........", "........", "........", ".....BK."}, false},
		{[]string{"....k...", "........", "........", "........", "........", "........", "........", "..B.K.N."}, false},
		{[]string{"....k...", "........", "........", "........", "........", "........", "........", "R...K..."}, false},
		{[]string{"....k...", "........", "........", "........", "........", "........", "........", "...QK..."}, false},
	} {
		board := layout(c, t.rows...)
		c.Assert(board.InsufficientMaterial(), Equals, t.expected, Commentf("%v", t.rows))
	}
}

func (s *LegalitySuite) TestKingCastlingCausesCheck(c *C) {
	board := layout(c,
		"....k..r",
		"........",
		"........",
		"........",
		"........",
		"........",
		"........",
		".....R.K",
	)
	c.Assert(board.KingCastlingCausesCheck(Black), Equals, true)
	err := board.ValidateEndPos(Pos(0, 4), Pos(0, 6), Black)
	c.Assert(errors.Is(err, ErrCheck), Equals, true)

	clear := layout(c,
		"....k..r",
		"........",
		"........",
		"........",
		"........",
		"........",
		"........",
		"...R...K",
	)
	c.Assert(clear.KingCastlingCausesCheck(Black), Equals, false)
	c.Assert(clear.ValidateEndPos(Pos(0, 4), Pos(0, 6), Black), IsNil)
}

func (s *LegalitySuite) TestKingCastlingCausesCheckMovedKing(c *C) {
	board := layout(c,
		"....k..r",
		"........",
		"........",
		"........",
		"........",
		"........",
		"........",
		".....R.K",
	)
	c.Assert(board.MovePiece(Pos(0, 4), Pos(0, 3)), IsNil)
	c.Assert(board.MovePiece(Pos(0, 3), Pos(0, 4)), IsNil)
	c.Assert(board.KingCastlingCausesCheck(Black), Equals, false)
}

func (s *LegalitySuite) TestCastlingAttackedByPawn(c *C) {
	board := layout(c,
		"....k..r",
		"......P.",
		"........",
		"........",
		"........",
		"........",
		"........",
		".......K",
	)
	c.Assert(board.Check(Black), Equals, false)
	c.Assert(board.KingCastlingCausesCheck(Black), Equals, true)
}

func (s *LegalitySuite) TestCastlingOutOfCheck(c *C) {
	board := layout(c,
		"....k..r",
		"........",
		"........",
		"........",
		"........",
		"........",
		"........",
		"....R..K",
	)
	c.Assert(board.KingCastlingCausesCheck(Black), Equals, false)
	err := board.ValidateEndPos(Pos(0, 4), Pos(0, 6), Black)
	c.Assert(errors.Is(err, ErrCheck), Equals, true)
}
