package ai

import (
	"sync/atomic"

	"github.com/nelhage/santorini/santorini"
)

// LegalTurns lists every legal turn for player on b: winning bare moves
// first for each move direction, followed by the legal move+build
// combinations for that direction.
func LegalTurns(player string, b *santorini.Board) []santorini.Turn {
	var out []santorini.Turn
	for _, w := range b.Workers(player) {
		for _, md := range santorini.Directions {
			mv := santorini.Move(w, md)
			if t := (santorini.Turn{mv}); b.IsTurnLegal(t, player) {
				out = append(out, t)
			}
			for _, bd := range santorini.Directions {
				t := santorini.Turn{mv, santorini.Build(w, bd)}
				if b.IsTurnLegal(t, player) {
					out = append(out, t)
				}
			}
		}
	}
	return out
}

type Mode byte

const (
	// Conservative takes the minimum at every ply: a line survives only
	// if every continuation survives.
	Conservative Mode = iota
	// Minimax takes the maximum over the searching player's own replies
	// and the minimum over the opponent's.
	Minimax
)

func (m Mode) String() string {
	switch m {
	case Conservative:
		return "conservative"
	case Minimax:
		return "minimax"
	default:
		return "unknown"
	}
}

type SearchConfig struct {
	Depth int
	Mode  Mode
}

type Stats struct {
	Visited  uint64
	Terminal uint64
	Cutoffs  uint64
}

// Searcher answers the stay-alive question. It is safe for concurrent
// use; Stats are accumulated atomically.
type Searcher struct {
	cfg SearchConfig

	visited  atomic.Uint64
	terminal atomic.Uint64
	cutoffs  atomic.Uint64
}

func NewSearcher(cfg SearchConfig) *Searcher {
	return &Searcher{cfg: cfg}
}

func (s *Searcher) Config() SearchConfig {
	return s.cfg
}

func (s *Searcher) Stats() Stats {
	return Stats{
		Visited:  s.visited.Load(),
		Terminal: s.terminal.Load(),
		Cutoffs:  s.cutoffs.Load(),
	}
}

// Score returns 1 if playing turn on b keeps its owner from losing for
// the configured depth, and 0 otherwise.
func (s *Searcher) Score(turn santorini.Turn, b *santorini.Board) int {
	return s.ScoreDepth(turn, b, s.cfg.Depth)
}

func (s *Searcher) ScoreDepth(turn santorini.Turn, b *santorini.Board, depth int) int {
	if len(turn) == 0 {
		return 0
	}
	player := turn[0].Worker.Owner
	opp := b.Opponent(player)
	if b.HasWon(player) || depth == 0 {
		return 1
	}
	if b.HasLost(player) || b.HasWon(opp) {
		return 0
	}
	if !b.IsTurnLegal(turn, player) {
		return 0
	}
	next := b.Apply(turn...)
	return s.CalcTree(player, opp, LegalTurns(opp, next), next, depth-1)
}

// CalcTree evaluates the position b, where mover is about to choose one
// of candidates, from player's point of view.
//
// Each candidate is applied in turn. A candidate after which the
// opponent has won makes the whole node 0. Otherwise, at depth 0 the
// candidate survives; above it the walk continues one ply down with the
// other side to move. The node's value combines the candidates
// according to the configured Mode.
func (s *Searcher) CalcTree(player, mover string, candidates []santorini.Turn, b *santorini.Board, depth int) int {
	opp := b.Opponent(player)
	if b.HasWon(player) {
		return 1
	}
	if mover == player && len(candidates) == 0 {
		return 0
	}
	if b.HasWon(opp) {
		return 0
	}

	stack := []frame{s.newFrame(player, mover, candidates, b, depth)}
	var ret int
	returning := false
	for {
		f := &stack[len(stack)-1]
		if returning {
			returning = false
			if f.absorb(ret) {
				s.cutoffs.Add(1)
				f.i = len(f.candidates)
			}
		}
		if f.i == len(f.candidates) {
			ret = f.value
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return ret
			}
			returning = true
			continue
		}

		c := f.candidates[f.i]
		f.i++
		s.visited.Add(1)
		next := f.board.Apply(c...)

		var v int
		switch {
		case next.HasWon(opp):
			s.terminal.Add(1)
			v = 0
		case next.HasWon(player) || f.depth == 0:
			v = 1
		default:
			nextMover := player
			if f.mover == player {
				nextMover = opp
			}
			replies := LegalTurns(nextMover, next)
			if nextMover == player && len(replies) == 0 {
				s.terminal.Add(1)
				v = 0
				break
			}
			stack = append(stack, s.newFrame(player, nextMover, replies, next, f.depth-1))
			continue
		}
		if f.absorb(v) {
			s.cutoffs.Add(1)
			f.i = len(f.candidates)
		}
	}
}

// frame is one node of the search; candidates[:i] have been evaluated
// and folded into value.
type frame struct {
	board      *santorini.Board
	mover      string
	candidates []santorini.Turn
	i          int
	depth      int
	maximize   bool
	value      int
}

func (s *Searcher) newFrame(player, mover string, candidates []santorini.Turn, b *santorini.Board, depth int) frame {
	f := frame{
		board:      b,
		mover:      mover,
		candidates: candidates,
		depth:      depth,
		value:      1,
	}
	if s.cfg.Mode == Minimax && mover == player {
		f.maximize = true
		f.value = 0
	}
	return f
}

// absorb folds v into the frame and reports whether the value can no
// longer change.
func (f *frame) absorb(v int) bool {
	if f.maximize {
		if v > f.value {
			f.value = v
		}
		return f.value == 1
	}
	if v < f.value {
		f.value = v
	}
	return f.value == 0
}

// Score and CalcTree run a Conservative search.
func Score(turn santorini.Turn, b *santorini.Board, depth int) int {
	return NewSearcher(SearchConfig{Depth: depth}).Score(turn, b)
}

func CalcTree(player, mover string, candidates []santorini.Turn, b *santorini.Board, depth int) int {
	return NewSearcher(SearchConfig{Depth: depth}).CalcTree(player, mover, candidates, b, depth)
}
