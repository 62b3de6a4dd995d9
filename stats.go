package main

import (
	"github.com/montanaflynn/stats"

	"github.com/maplefeline/nchess/engine"
)

// mobility summarizes how many legal moves the side to move had at each
// position of a game, the final position included.
type mobility struct {
	Plies        int
	Mean         float64
	Median       float64
	Max          float64
	Percentile80 float64
}

func moveCount(board *engine.Board, turn engine.Color) int {
	count := 0
	for _, piece := range board.Pieces(turn) {
		count += len(board.LegalMoves(piece.Pos))
	}
	return count
}

func (game Game) mobility() (*mobility, error) {
	board := engine.NewBoard()
	turn := engine.White
	counts := make([]int, 0, len(game.Moves)+1)
	for _, m := range game.Moves {
		counts = append(counts, moveCount(board, turn))
		if _, err := board.Play(turn, m.Start, m.End, m.Promotion); err != nil {
			return nil, err
		}
		turn = turn.Opponent()
	}
	counts = append(counts, moveCount(board, turn))
	return summarize(counts)
}

func summarize(counts []int) (*mobility, error) {
	data := stats.LoadRawData(counts)
	mean, err := stats.Mean(data)
	if err != nil {
		return nil, err
	}
	median, err := stats.Median(data)
	if err != nil {
		return nil, err
	}
	max, err := stats.Max(data)
	if err != nil {
		return nil, err
	}
	percentile, err := stats.Percentile(data, 80)
	if err != nil {
		return nil, err
	}
	return &mobility{
		Plies:        len(counts) - 1,
		Mean:         mean,
		Median:       median,
		Max:          max,
		Percentile80: percentile,
	}, nil
}
