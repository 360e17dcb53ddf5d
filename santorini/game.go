package santorini

import (
	"errors"
	"fmt"
)

type Config struct {
	Rows      int
	Cols      int
	Workers   int
	WinHeight int
	MaxHeight int
}

const (
	defaultSize      = 6
	defaultWorkers   = 2
	defaultWinHeight = 3
	defaultMaxHeight = 4
)

func (c Config) withDefaults() Config {
	if c.Rows == 0 {
		c.Rows = defaultSize
	}
	if c.Cols == 0 {
		c.Cols = defaultSize
	}
	if c.Workers == 0 {
		c.Workers = defaultWorkers
	}
	if c.WinHeight == 0 {
		c.WinHeight = defaultWinHeight
	}
	if c.MaxHeight == 0 {
		c.MaxHeight = defaultMaxHeight
	}
	return c
}

// New returns an empty board: every cell is bare terrain at height 0.
func New(cfg Config) *Board {
	cfg = cfg.withDefaults()
	return &Board{
		cfg:   &cfg,
		cells: make([]Cell, cfg.Rows*cfg.Cols),
	}
}

// Board is a grid of cells. Boards are never modified once they are
// handed out; Apply and Place return fresh copies.
type Board struct {
	cfg   *Config
	cells []Cell
}

var (
	ErrBadShape     = errors.New("board rows have inconsistent lengths")
	ErrBadHeight    = errors.New("cell height out of range")
	ErrBadWorker    = errors.New("bad worker index")
	ErrDuplicateWkr = errors.New("worker appears twice")
)

// FromCells builds a board from a slice of rows. Rows and Cols in cfg
// are taken from the shape of cells.
func FromCells(cfg Config, cells [][]Cell) (*Board, error) {
	if len(cells) == 0 || len(cells[0]) == 0 {
		return nil, ErrBadShape
	}
	cfg.Rows = len(cells)
	cfg.Cols = len(cells[0])
	b := New(cfg)
	seen := make(map[Worker]bool)
	for r, row := range cells {
		if len(row) != b.cfg.Cols {
			return nil, fmt.Errorf("row %d: %w", r, ErrBadShape)
		}
		for c, cell := range row {
			if cell.Height < 0 || cell.Height > b.cfg.MaxHeight {
				return nil, fmt.Errorf("cell (%d,%d) height %d: %w", r, c, cell.Height, ErrBadHeight)
			}
			if cell.Occupied() {
				w := cell.Worker
				if w.Index < 1 || w.Index > b.cfg.Workers {
					return nil, fmt.Errorf("cell (%d,%d) %s: %w", r, c, w, ErrBadWorker)
				}
				if seen[w] {
					return nil, fmt.Errorf("%s: %w", w, ErrDuplicateWkr)
				}
				seen[w] = true
			}
			b.set(r, c, cell)
		}
	}
	return b, nil
}

func (b *Board) Config() Config {
	return *b.cfg
}

func (b *Board) Rows() int {
	return b.cfg.Rows
}

func (b *Board) Cols() int {
	return b.cfg.Cols
}

// NumWorkers is the number of workers each player places during setup.
func (b *Board) NumWorkers() int {
	return b.cfg.Workers
}

func (b *Board) OnGrid(row, col int) bool {
	return row >= 0 && row < b.cfg.Rows && col >= 0 && col < b.cfg.Cols
}

// At returns the cell at (row, col). It panics if the cell is off the
// grid.
func (b *Board) At(row, col int) Cell {
	if !b.OnGrid(row, col) {
		panic(fmt.Sprintf("At(%d,%d): off grid", row, col))
	}
	return b.cells[row*b.cfg.Cols+col]
}

func (b *Board) set(row, col int, c Cell) {
	b.cells[row*b.cfg.Cols+col] = c
}

// Find scans the grid for w.
func (b *Board) Find(w Worker) (row, col int, ok bool) {
	for i, c := range b.cells {
		if c.Worker == w {
			return i / b.cfg.Cols, i % b.cfg.Cols, true
		}
	}
	return 0, 0, false
}

// Workers returns the player's workers in row-major order.
func (b *Board) Workers(player string) []Worker {
	var out []Worker
	for _, c := range b.cells {
		if c.Occupied() && c.Worker.Owner == player {
			out = append(out, c.Worker)
		}
	}
	return out
}

// Players lists the owners present on the board, in the order their
// first worker is found scanning row-major.
func (b *Board) Players() []string {
	var out []string
	seen := make(map[string]bool)
	for _, c := range b.cells {
		if c.Occupied() && !seen[c.Worker.Owner] {
			seen[c.Worker.Owner] = true
			out = append(out, c.Worker.Owner)
		}
	}
	return out
}

// Opponent returns the first owner on the board other than player, or
// "" if there is none.
func (b *Board) Opponent(player string) string {
	for _, c := range b.cells {
		if c.Occupied() && c.Worker.Owner != player {
			return c.Worker.Owner
		}
	}
	return ""
}

func (b *Board) Equal(o *Board) bool {
	if *b.cfg != *o.cfg || len(b.cells) != len(o.cells) {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// Cells returns a copy of the grid as a slice of rows.
func (b *Board) Cells() [][]Cell {
	out := make([][]Cell, b.cfg.Rows)
	for r := range out {
		out[r] = make([]Cell, b.cfg.Cols)
		copy(out[r], b.cells[r*b.cfg.Cols:(r+1)*b.cfg.Cols])
	}
	return out
}

func (b *Board) clone() *Board {
	next := &Board{
		cfg:   b.cfg,
		cells: make([]Cell, len(b.cells)),
	}
	copy(next.cells, b.cells)
	return next
}
