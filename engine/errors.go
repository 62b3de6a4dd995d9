package engine

import "errors"

var (
	ErrPosition  = errors.New("invalid position")
	ErrSquare    = errors.New("square is empty")
	ErrOpponent  = errors.New("square holds an opponent piece")
	ErrMove      = errors.New("invalid move")
	ErrCheck     = errors.New("move leaves king in check")
	ErrPromotion = errors.New("invalid promotion choice")
	ErrKingCount = errors.New("board must hold exactly one king per color")
)

// InputError reports whether err is a recoverable move input error, as
// opposed to an invariant violation.
func InputError(err error) bool {
	return errors.Is(err, ErrPosition) ||
		errors.Is(err, ErrSquare) ||
		errors.Is(err, ErrOpponent) ||
		errors.Is(err, ErrMove) ||
		errors.Is(err, ErrCheck) ||
		errors.Is(err, ErrPromotion)
}
