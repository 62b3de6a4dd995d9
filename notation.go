package main

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/maplefeline/nchess/engine"
)

var errNotation = errors.New("invalid move format")

var promotionLetters = map[byte]engine.Kind{
	'q': engine.Queen,
	'r': engine.Rook,
	'b': engine.Bishop,
	'n': engine.Knight,
}

var promotionKinds = map[engine.Kind]byte{
	engine.Queen:  'q',
	engine.Rook:   'r',
	engine.Bishop: 'b',
	engine.Knight: 'n',
}

// move is a ply in coordinate notation: "e2e4", "e7e8q".
type move struct {
	Start     engine.Position
	End       engine.Position
	Promotion engine.Kind
}

func parseSquare(s string) (engine.Position, error) {
	if len(s) != 2 {
		return engine.Position{}, fmt.Errorf("%w: square %q", errNotation, s)
	}
	pos := engine.Pos(int('8')-int(s[1]), int(s[0])-int('a'))
	if !pos.Valid() {
		return engine.Position{}, fmt.Errorf("%w: %s", engine.ErrPosition, s)
	}
	return pos, nil
}

func parseMove(s string) (move, error) {
	var m move
	if len(s) != 4 && len(s) != 5 {
		return m, fmt.Errorf("%w %d %s", errNotation, len(s), s)
	}
	start, err := parseSquare(s[:2])
	if err != nil {
		return m, err
	}
	end, err := parseSquare(s[2:4])
	if err != nil {
		return m, err
	}
	m.Start, m.End = start, end
	if len(s) == 5 {
		kind, ok := promotionLetters[s[4]]
		if !ok {
			return m, fmt.Errorf("%w: promotion %q", errNotation, s[4:])
		}
		m.Promotion = kind
	}
	return m, nil
}

func (m *move) Scan(state fmt.ScanState, verb rune) error {
	token, err := state.Token(true, nil)
	if err != nil {
		return err
	}
	parsed, err := parseMove(string(token))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m move) String() string {
	s := m.Start.String() + m.End.String()
	if letter, ok := promotionKinds[m.Promotion]; ok {
		s += string(letter)
	}
	return s
}

func (m *move) UnmarshalJSON(bytes []byte) error {
	var state string
	if err := json.Unmarshal(bytes, &state); err != nil {
		return err
	}
	_, err := fmt.Sscan(state, m)
	return err
}

func (m move) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// moveList is the recorded game, stored as space separated moves.
type moveList []move

func (moves moveList) Value() (driver.Value, error) {
	fields := make([]string, 0, len(moves))
	for _, m := range moves {
		fields = append(fields, m.String())
	}
	return strings.Join(fields, " "), nil
}

func (moves *moveList) Scan(cell interface{}) error {
	var s string
	switch cell := cell.(type) {
	case string:
		s = cell
	case []byte:
		s = string(cell)
	case nil:
	default:
		return fmt.Errorf("invalid format scaning %#v", cell)
	}
	list := moveList{}
	for _, field := range strings.Fields(s) {
		m, err := parseMove(field)
		if err != nil {
			return err
		}
		list = append(list, m)
	}
	*moves = list
	return nil
}
