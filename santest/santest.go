// Package santest holds helpers for building boards and turns in tests.
// Every helper panics on malformed input.
package santest

import (
	"strings"

	"github.com/nelhage/santorini/santorini"
	"github.com/nelhage/santorini/wire"
)

func Worker(s string) santorini.Worker {
	w, e := wire.ParseWorker(s)
	if e != nil {
		panic(e)
	}
	return w
}

// Board parses one string per row, each a space-separated list of
// cells in wire form: "0 1one1 2".
func Board(rows ...string) *santorini.Board {
	return BoardConfig(santorini.Config{}, rows...)
}

func BoardConfig(cfg santorini.Config, rows ...string) *santorini.Board {
	cells := make([][]santorini.Cell, len(rows))
	for r, row := range rows {
		for _, bit := range strings.Fields(row) {
			c, e := wire.ParseCell(bit)
			if e != nil {
				panic(e)
			}
			cells[r] = append(cells[r], c)
		}
	}
	b, e := santorini.FromCells(cfg, cells)
	if e != nil {
		panic(e)
	}
	return b
}

// Turn parses a turn from its wire parts: "one1 EAST SOUTH PUT NORTH".
func Turn(s string) santorini.Turn {
	t, e := wire.DecodeTurn(strings.Fields(s))
	if e != nil {
		panic(e)
	}
	return t
}

func FormatTurn(t santorini.Turn) string {
	parts, e := wire.EncodeTurn(t)
	if e != nil {
		panic(e)
	}
	return strings.Join(parts, " ")
}

// Empty returns an empty rows x cols board with the given workers
// placed at the listed cells, in order.
func Empty(rows, cols int, placements ...Placement) *santorini.Board {
	b := santorini.New(santorini.Config{Rows: rows, Cols: cols})
	for _, p := range placements {
		b = b.Place(Worker(p.Worker), p.Row, p.Col)
	}
	return b
}

type Placement struct {
	Worker   string
	Row, Col int
}
