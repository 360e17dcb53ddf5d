package santorini

import "strconv"

// Worker identifies a piece by its owner and its index (1-based).
type Worker struct {
	Owner string
	Index int
}

var NoWorker = Worker{}

func (w Worker) String() string {
	return w.Owner + strconv.Itoa(w.Index)
}

// Cell is bare terrain when Worker is NoWorker, and occupied terrain
// otherwise.
type Cell struct {
	Height int
	Worker Worker
}

func Terrain(height int) Cell {
	return Cell{Height: height}
}

func Occupied(height int, w Worker) Cell {
	return Cell{Height: height, Worker: w}
}

func (c Cell) Occupied() bool {
	return c.Worker != NoWorker
}

func (c Cell) String() string {
	h := strconv.Itoa(c.Height)
	if !c.Occupied() {
		return h
	}
	return h + c.Worker.String()
}

// Reason records why a game ended.
type Reason byte

const (
	HeightWin Reason = 1 + iota
	ImmobileWin
	CheatWin
)

func (r Reason) String() string {
	switch r {
	case HeightWin:
		return "height"
	case ImmobileWin:
		return "immobilized"
	case CheatWin:
		return "irregular"
	default:
		return "unknown"
	}
}

// Result is the verdict of a completed game.
type Result struct {
	Winner       string
	Loser        string
	LoserCheated bool
	Reason       Reason
	Turns        int
}
