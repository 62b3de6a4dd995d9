package main

import (
	"errors"
	"net/http"
	"path"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	uuid "github.com/satori/go.uuid"
	"gorm.io/gorm"

	"github.com/maplefeline/nchess/engine"
)

type playRequest struct {
	Move string
}

type indexResponse struct {
	Href  string
	Games string
}

type gameResponse struct {
	Href  string
	Game  Game
	Board string
}

type gamesResponse struct {
	Href  string
	Games []Game
}

type playsResponse struct {
	Href  string
	Moves []move
}

type statsResponse struct {
	Href     string
	Mobility mobility
}

func errToHTTP(err error) error {
	var httpError *echo.HTTPError
	switch {
	case errors.As(err, &httpError):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return echo.ErrNotFound
	case errors.Is(err, errNotation), errors.Is(err, engine.ErrPosition), errors.Is(err, engine.ErrPromotion):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case engine.InputError(err):
		return echo.NewHTTPError(http.StatusNotAcceptable, err.Error())
	}
	return err
}

func requestID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.FromString(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return id, nil
}

func requestGame(c echo.Context) (*Game, error) {
	id, err := requestID(c)
	if err != nil {
		return nil, err
	}
	return getGame(id)
}

func requestFrom(c echo.Context) (*engine.Position, error) {
	from := c.QueryParam("from")
	if from == "" {
		return nil, nil
	}
	pos, err := parseSquare(from)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return &pos, nil
}

func gameHref(game *Game, elem ...string) string {
	return path.Join(append([]string{"/games", game.GameID.String()}, elem...)...)
}

func responseGame(game *Game) (gameResponse, error) {
	board, _, err := game.board()
	if err != nil {
		return gameResponse{}, err
	}
	return gameResponse{Game: *game, Board: board.String(), Href: gameHref(game)}, nil
}

func responseGames(games []Game) gamesResponse {
	return gamesResponse{Games: games, Href: "/games"}
}

func responsePlays(game *Game, moves []move) playsResponse {
	return playsResponse{Moves: moves, Href: gameHref(game, "moves")}
}

func apiHandler() *echo.Echo {
	e := echo.New()

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, indexResponse{Href: "/", Games: "/games"})
	})
	e.GET("/games", func(c echo.Context) error {
		games, err := getGames()
		if err != nil {
			return errToHTTP(err)
		}
		return c.JSON(http.StatusOK, responseGames(games))
	})
	e.POST("/games", func(c echo.Context) error {
		game, err := makeGame()
		if err != nil {
			return errToHTTP(err)
		}
		response, err := responseGame(game)
		if err != nil {
			return errToHTTP(err)
		}
		return c.JSON(http.StatusCreated, response)
	})
	e.GET("/games/:id", func(c echo.Context) error {
		game, err := requestGame(c)
		if err != nil {
			return errToHTTP(err)
		}
		response, err := responseGame(game)
		if err != nil {
			return errToHTTP(err)
		}
		return c.JSON(http.StatusOK, response)
	})
	e.PUT("/games/:id", func(c echo.Context) error {
		id, err := requestID(c)
		if err != nil {
			return err
		}
		var request playRequest
		if err := c.Bind(&request); err != nil {
			return err
		}
		m, err := parseMove(request.Move)
		if err != nil {
			return errToHTTP(err)
		}
		game := &Game{GameID: id}
		if err := game.play(m); err != nil {
			return errToHTTP(err)
		}
		response, err := responseGame(game)
		if err != nil {
			return errToHTTP(err)
		}
		return c.JSON(http.StatusOK, response)
	})
	e.GET("/games/:id/moves", func(c echo.Context) error {
		id, err := requestID(c)
		if err != nil {
			return err
		}
		from, err := requestFrom(c)
		if err != nil {
			return err
		}
		game, err := getGame(id)
		if err != nil {
			return errToHTTP(err)
		}
		moves, err := game.getPlays(from)
		if err != nil {
			return errToHTTP(err)
		}
		return c.JSON(http.StatusOK, responsePlays(game, moves))
	})
	e.GET("/games/:id/stats", func(c echo.Context) error {
		game, err := requestGame(c)
		if err != nil {
			return errToHTTP(err)
		}
		summary, err := game.mobility()
		if err != nil {
			return errToHTTP(err)
		}
		return c.JSON(http.StatusOK, statsResponse{Mobility: *summary, Href: gameHref(game, "stats")})
	})

	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Gzip())
	e.Use(middleware.RequestID())
	e.Use(middleware.Secure())

	return e
}
