// Package wire implements the JSON encodings used to talk to remote
// players and tools.
//
// A cell is a bare height (2) or an occupied cell ("2one1"). A board is
// a list of rows of cells. A turn is [worker, EW, NS] for a winning move,
// or [worker, EW, NS, EW2, NS2] for a move followed by a build. A result
// is [winner, loser], with "irregular" appended when the loser cheated.
package wire

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/nelhage/santorini/santorini"
)

var (
	ErrBadCell   = errors.New("bad cell")
	ErrBadWorker = errors.New("bad worker")
)

// Cell wraps a santorini.Cell with its JSON encoding.
type Cell struct {
	santorini.Cell
}

func (c Cell) MarshalJSON() ([]byte, error) {
	if !c.Occupied() {
		return json.Marshal(c.Height)
	}
	return json.Marshal(c.String())
}

func (c *Cell) UnmarshalJSON(bs []byte) error {
	if len(bs) > 0 && bs[0] == '"' {
		var s string
		if err := json.Unmarshal(bs, &s); err != nil {
			return err
		}
		cell, err := ParseCell(s)
		if err != nil {
			return err
		}
		c.Cell = cell
		return nil
	}
	var h int
	if err := json.Unmarshal(bs, &h); err != nil {
		return fmt.Errorf("%w: %s", ErrBadCell, bs)
	}
	c.Cell = santorini.Terrain(h)
	return nil
}

// ParseCell parses the string form of a cell. A bare height is
// accepted as well as an occupied cell.
func ParseCell(s string) (santorini.Cell, error) {
	i := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsDigit(r) })
	if i == 0 {
		return santorini.Cell{}, fmt.Errorf("%w: %q: missing height", ErrBadCell, s)
	}
	if i < 0 {
		i = len(s)
	}
	h, err := strconv.Atoi(s[:i])
	if err != nil {
		return santorini.Cell{}, fmt.Errorf("%w: %q", ErrBadCell, s)
	}
	if i == len(s) {
		return santorini.Terrain(h), nil
	}
	w, err := ParseWorker(s[i:])
	if err != nil {
		return santorini.Cell{}, fmt.Errorf("%w: %q: %v", ErrBadCell, s, err)
	}
	return santorini.Occupied(h, w), nil
}

// ParseWorker parses "<owner><index>", e.g. "one1".
func ParseWorker(s string) (santorini.Worker, error) {
	name := strings.TrimRightFunc(s, unicode.IsDigit)
	if name == "" || !isName(name) {
		return santorini.Worker{}, fmt.Errorf("%w: %q", ErrBadWorker, s)
	}
	idx, err := strconv.Atoi(s[len(name):])
	if err != nil || idx < 1 {
		return santorini.Worker{}, fmt.Errorf("%w: %q", ErrBadWorker, s)
	}
	return santorini.Worker{Owner: name, Index: idx}, nil
}

// Board is the JSON form of a board.
type Board [][]Cell

func EncodeBoard(b *santorini.Board) Board {
	rows := b.Cells()
	out := make(Board, len(rows))
	for r, row := range rows {
		out[r] = make([]Cell, len(row))
		for c, cell := range row {
			out[r][c] = Cell{cell}
		}
	}
	return out
}

// Decode builds a board from its JSON form. The board's shape comes
// from the data; the rest of cfg applies as usual.
func (wb Board) Decode(cfg santorini.Config) (*santorini.Board, error) {
	cells := make([][]santorini.Cell, len(wb))
	for r, row := range wb {
		cells[r] = make([]santorini.Cell, len(row))
		for c, cell := range row {
			cells[r][c] = cell.Cell
		}
	}
	return santorini.FromCells(cfg, cells)
}

func MarshalBoard(b *santorini.Board) ([]byte, error) {
	return json.Marshal(EncodeBoard(b))
}

func UnmarshalBoard(cfg santorini.Config, bs []byte) (*santorini.Board, error) {
	var wb Board
	if err := json.Unmarshal(bs, &wb); err != nil {
		return nil, err
	}
	return wb.Decode(cfg)
}
