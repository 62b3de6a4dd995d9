package main

import (
	"fmt"
	"net/http"

	"github.com/apex/log"
	"github.com/labstack/echo/v4"
	uuid "github.com/satori/go.uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/maplefeline/nchess/engine"
)

const (
	statusActive       = "active"
	statusCheck        = "check"
	statusCheckmate    = "checkmate"
	statusStalemate    = "stalemate"
	statusInsufficient = "insufficient_material"
)

// Game game.
type Game struct {
	gorm.Model

	GameID    uuid.UUID `gorm:"<-:create;type:varchar;size:36;uniqueIndex"`
	Moves     moveList  `gorm:"type:text"`
	MoveCount int
	Turn      string
	Status    string
	End       bool
}

func makeGame() (*Game, error) {
	id := uuid.NewV4()
	game := Game{
		GameID: id,
		Moves:  moveList{},
		Turn:   engine.White.String(),
		Status: statusActive,
	}
	if err := db.Create(&game).Error; err != nil {
		return nil, err
	}
	log.WithField("game", id).Info("game created")
	return getGame(id)
}

func getGame(id uuid.UUID) (*Game, error) {
	var game Game
	if err := db.First(&game, Game{GameID: id}).Error; err != nil {
		return nil, err
	}
	return &game, nil
}

func getGames() ([]Game, error) {
	var games []Game
	if err := db.Order("created_at").Find(&games).Error; err != nil {
		return nil, err
	}
	return games, nil
}

// board replays the recorded moves onto the starting position and returns it
// with the side to move.
func (game Game) board() (*engine.Board, engine.Color, error) {
	board := engine.NewBoard()
	turn := engine.White
	for i, m := range game.Moves {
		if _, err := board.Play(turn, m.Start, m.End, m.Promotion); err != nil {
			return nil, engine.None, fmt.Errorf("replay move %d %s: %w", i+1, m, err)
		}
		turn = turn.Opponent()
	}
	return board, turn, nil
}

func gameStatus(board *engine.Board, turn engine.Color) string {
	switch {
	case board.Checkmate(turn):
		return statusCheckmate
	case board.Stalemate(turn):
		return statusStalemate
	case board.InsufficientMaterial():
		return statusInsufficient
	case board.Check(turn):
		return statusCheck
	}
	return statusActive
}

// legalPlays lists the legal moves of turn, limited to the piece on from when
// it is given. Promotions are expanded into one move per choice.
func legalPlays(board *engine.Board, turn engine.Color, from *engine.Position) []move {
	plays := []move{}
	for _, piece := range board.Pieces(turn) {
		if from != nil && piece.Pos != *from {
			continue
		}
		for _, end := range board.LegalMoves(piece.Pos) {
			if board.SpecialMoveType(piece.Pos, end) != engine.Promotion {
				plays = append(plays, move{Start: piece.Pos, End: end})
				continue
			}
			for _, choice := range []engine.Kind{engine.Queen, engine.Rook, engine.Bishop, engine.Knight} {
				plays = append(plays, move{Start: piece.Pos, End: end, Promotion: choice})
			}
		}
	}
	return plays
}

func (game Game) getPlays(from *engine.Position) ([]move, error) {
	if game.End {
		return []move{}, nil
	}
	board, turn, err := game.board()
	if err != nil {
		return nil, err
	}
	return legalPlays(board, turn, from), nil
}

// apply validates m against the replayed position and records it along with
// the turn, status and end of game that follow.
func (game *Game) apply(m move) (engine.Special, error) {
	if game.End {
		return engine.NoSpecial, echo.NewHTTPError(http.StatusBadRequest, "game is over")
	}
	board, turn, err := game.board()
	if err != nil {
		return engine.NoSpecial, err
	}
	special, err := board.Play(turn, m.Start, m.End, m.Promotion)
	if err != nil {
		return engine.NoSpecial, err
	}
	if special != engine.Promotion {
		m.Promotion = engine.Empty
	}
	game.Moves = append(game.Moves, m)
	game.MoveCount = len(game.Moves)
	game.Turn = turn.Opponent().String()
	game.Status = gameStatus(board, turn.Opponent())
	game.End = game.Status != statusActive && game.Status != statusCheck
	return special, nil
}

// play commits m for the side to move. The row is locked for the length of
// the transaction so concurrent moves on one game are serialized.
func (game *Game) play(m move) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(game, Game{GameID: game.GameID}).Error; err != nil {
			return err
		}
		special, err := game.apply(m)
		if err != nil {
			return err
		}
		log.WithFields(log.Fields{
			"game":    game.GameID,
			"move":    game.Moves[len(game.Moves)-1],
			"special": special,
			"status":  game.Status,
		}).Info("move played")
		return tx.Save(game).Error
	})
}
