package santorini

import (
	"fmt"
	"strings"
)

// Direction is a single step. EW is +1 for EAST (column+1) and -1 for
// WEST; NS is +1 for SOUTH (row+1) and -1 for NORTH.
type Direction struct {
	EW, NS int
}

var (
	North     = Direction{0, -1}
	NorthEast = Direction{1, -1}
	East      = Direction{1, 0}
	SouthEast = Direction{1, 1}
	South     = Direction{0, 1}
	SouthWest = Direction{-1, 1}
	West      = Direction{-1, 0}
	NorthWest = Direction{-1, -1}
)

// Directions holds the eight non-trivial directions.
var Directions = [8]Direction{
	North, NorthEast, East, SouthEast, South, SouthWest, West, NorthWest,
}

func (d Direction) Valid() bool {
	return d.EW >= -1 && d.EW <= 1 && d.NS >= -1 && d.NS <= 1
}

func (d Direction) EWLabel() string {
	switch d.EW {
	case 1:
		return "EAST"
	case -1:
		return "WEST"
	case 0:
		return "PUT"
	}
	return fmt.Sprintf("EW(%d)", d.EW)
}

func (d Direction) NSLabel() string {
	switch d.NS {
	case 1:
		return "SOUTH"
	case -1:
		return "NORTH"
	case 0:
		return "PUT"
	}
	return fmt.Sprintf("NS(%d)", d.NS)
}

func (d Direction) String() string {
	return d.EWLabel() + "," + d.NSLabel()
}

type ActionKind byte

const (
	MoveAction ActionKind = 1 + iota
	BuildAction
)

func (k ActionKind) String() string {
	switch k {
	case MoveAction:
		return "move"
	case BuildAction:
		return "build"
	default:
		return "invalid"
	}
}

type Action struct {
	Kind   ActionKind
	Worker Worker
	Dir    Direction
}

func Move(w Worker, d Direction) Action {
	return Action{Kind: MoveAction, Worker: w, Dir: d}
}

func Build(w Worker, d Direction) Action {
	return Action{Kind: BuildAction, Worker: w, Dir: d}
}

func (a Action) String() string {
	return fmt.Sprintf("%s(%s %s)", a.Kind, a.Worker, a.Dir)
}

// Turn is either [Move] (a winning move) or [Move, Build].
type Turn []Action

func (t Turn) String() string {
	bits := make([]string, len(t))
	for i, a := range t {
		bits[i] = a.String()
	}
	return "[" + strings.Join(bits, " ") + "]"
}

// Apply returns the board obtained by applying actions in order to a
// copy of b. It does not check legality; an action naming a worker not
// on the board, or stepping off the grid, is a programming error and
// panics.
func (b *Board) Apply(actions ...Action) *Board {
	next := b.clone()
	for _, a := range actions {
		next.apply(a)
	}
	return next
}

func (b *Board) apply(a Action) {
	r, c, ok := b.Find(a.Worker)
	if !ok {
		panic(fmt.Sprintf("apply %s: no such worker", a))
	}
	tr, tc := r+a.Dir.NS, c+a.Dir.EW
	if !b.OnGrid(tr, tc) {
		panic(fmt.Sprintf("apply %s: off grid", a))
	}
	switch a.Kind {
	case MoveAction:
		from := b.At(r, c)
		b.set(r, c, Terrain(from.Height))
		b.set(tr, tc, Occupied(b.At(tr, tc).Height, a.Worker))
	case BuildAction:
		to := b.At(tr, tc)
		to.Height++
		b.set(tr, tc, to)
	default:
		panic(fmt.Sprintf("apply: bad action kind %d", a.Kind))
	}
}

// Place returns a copy of b with w standing on (row, col). Like Apply,
// it trusts its caller: the cell must be on the grid.
func (b *Board) Place(w Worker, row, col int) *Board {
	next := b.clone()
	next.set(row, col, Occupied(next.At(row, col).Height, w))
	return next
}
