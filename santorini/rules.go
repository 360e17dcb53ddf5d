package santorini

import "errors"

var (
	ErrTurnShape      = errors.New("turn must be [move] or [move, build]")
	ErrWorkerMismatch = errors.New("move and build name different workers")
	ErrNoSuchWorker   = errors.New("worker is not on the board")
	ErrNotOwner       = errors.New("worker belongs to another player")
	ErrBadDirection   = errors.New("bad direction")
	ErrOffGrid        = errors.New("target is off the grid")
	ErrOccupied       = errors.New("target is occupied")
	ErrTooHigh        = errors.New("destination is more than one level up")
	ErrMaxHeight      = errors.New("target is at maximum height")
	ErrNotWinning     = errors.New("a bare move must win the game")
)

// CanPlace reports whether a worker may be placed on (row, col): the
// cell exists and is unoccupied. Height does not matter.
func (b *Board) CanPlace(row, col int) bool {
	return b.OnGrid(row, col) && !b.At(row, col).Occupied()
}

// IsStartLegal reports whether b is a legal position to begin play
// from: every listed player owns exactly NumWorkers workers, nobody
// else owns any, and nothing has been built.
func (b *Board) IsStartLegal(players ...string) bool {
	want := make(map[string]bool, len(players))
	for _, p := range players {
		want[p] = true
	}
	counts := make(map[string]int)
	for _, c := range b.cells {
		if c.Height != 0 {
			return false
		}
		if !c.Occupied() {
			continue
		}
		if !want[c.Worker.Owner] {
			return false
		}
		counts[c.Worker.Owner]++
	}
	for p := range want {
		if counts[p] != b.cfg.Workers {
			return false
		}
		for i := 1; i <= b.cfg.Workers; i++ {
			if _, _, ok := b.Find(Worker{p, i}); !ok {
				return false
			}
		}
	}
	return true
}

// IsTurnLegal reports whether player may play t on b.
func (b *Board) IsTurnLegal(t Turn, player string) bool {
	return b.CheckTurn(t, player) == nil
}

// CheckTurn returns nil if t is a legal turn for player, and otherwise
// the first rule it breaks.
func (b *Board) CheckTurn(t Turn, player string) error {
	switch len(t) {
	case 1:
		if t[0].Kind != MoveAction {
			return ErrTurnShape
		}
		if _, _, err := b.checkMove(t[0], player); err != nil {
			return err
		}
		if !b.Apply(t[0]).HasWon(player) {
			return ErrNotWinning
		}
		return nil
	case 2:
		mv, bd := t[0], t[1]
		if mv.Kind != MoveAction || bd.Kind != BuildAction {
			return ErrTurnShape
		}
		if mv.Worker != bd.Worker {
			return ErrWorkerMismatch
		}
		from, to, err := b.checkMove(mv, player)
		if err != nil {
			return err
		}
		return b.checkBuild(bd, from, to)
	default:
		return ErrTurnShape
	}
}

type point struct {
	row, col int
}

func (p point) step(d Direction) point {
	return point{p.row + d.NS, p.col + d.EW}
}

func (b *Board) checkMove(a Action, player string) (from, to point, err error) {
	if !a.Dir.Valid() {
		return from, to, ErrBadDirection
	}
	r, c, ok := b.Find(a.Worker)
	if !ok {
		return from, to, ErrNoSuchWorker
	}
	if a.Worker.Owner != player {
		return from, to, ErrNotOwner
	}
	from = point{r, c}
	to = from.step(a.Dir)
	if !b.OnGrid(to.row, to.col) {
		return from, to, ErrOffGrid
	}
	dst := b.At(to.row, to.col)
	if dst.Occupied() {
		return from, to, ErrOccupied
	}
	if dst.Height > b.At(r, c).Height+1 {
		return from, to, ErrTooHigh
	}
	return from, to, nil
}

// checkBuild checks a build made after a worker moved from `from` to
// `to`. The vacated cell counts as free and the worker's new cell as
// occupied.
func (b *Board) checkBuild(a Action, from, to point) error {
	if !a.Dir.Valid() {
		return ErrBadDirection
	}
	target := to.step(a.Dir)
	if !b.OnGrid(target.row, target.col) {
		return ErrOffGrid
	}
	cell := b.At(target.row, target.col)
	switch {
	case target == to:
		return ErrOccupied
	case target == from:
	case cell.Occupied():
		return ErrOccupied
	}
	if cell.Height >= b.cfg.MaxHeight {
		return ErrMaxHeight
	}
	return nil
}

func (b *Board) canMove(w Worker) bool {
	for _, d := range Directions {
		if _, _, err := b.checkMove(Move(w, d), w.Owner); err == nil {
			return true
		}
	}
	return false
}

// HasLost reports whether none of player's workers can move. A player
// with no workers on the board has lost.
func (b *Board) HasLost(player string) bool {
	for _, w := range b.Workers(player) {
		if b.canMove(w) {
			return false
		}
	}
	return true
}

// HasWon reports whether one of player's workers stands at the winning
// height.
func (b *Board) HasWon(player string) bool {
	for _, c := range b.cells {
		if c.Occupied() && c.Worker.Owner == player && c.Height == b.cfg.WinHeight {
			return true
		}
	}
	return false
}
