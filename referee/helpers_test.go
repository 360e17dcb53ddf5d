package referee

import (
	"context"
	"errors"

	"github.com/nelhage/santorini/santorini"
)

var errScriptDone = errors.New("script exhausted")

// scripted places on the first free cell and plays turns from a list.
// Its priority for game k is priorities[k % len(priorities)].
type scripted struct {
	name       string
	priorities []int
	turns      []santorini.Turn
	games      int
	seen       []santorini.Result
}

func (s *scripted) Name() string { return s.name }

func (s *scripted) Priority() int {
	if len(s.priorities) == 0 {
		return 0
	}
	p := s.priorities[s.games%len(s.priorities)]
	s.games++
	return p
}

func (s *scripted) PlaceWorker(ctx context.Context, b *santorini.Board) (int, int, error) {
	for r := 0; r < b.Rows(); r++ {
		for c := 0; c < b.Cols(); c++ {
			if b.CanPlace(r, c) {
				return r, c, nil
			}
		}
	}
	return 0, 0, errScriptDone
}

func (s *scripted) GetTurn(ctx context.Context, b *santorini.Board) (santorini.Turn, error) {
	if len(s.turns) == 0 {
		return nil, errScriptDone
	}
	t := s.turns[0]
	s.turns = s.turns[1:]
	return t, nil
}

func (s *scripted) GameOver(ctx context.Context, r santorini.Result) error {
	s.seen = append(s.seen, r)
	return nil
}

// stall blocks every call until its context is done.
type stall struct {
	name string
}

func (s *stall) Name() string  { return s.name }
func (s *stall) Priority() int { return 0 }

func (s *stall) PlaceWorker(ctx context.Context, b *santorini.Board) (int, int, error) {
	<-ctx.Done()
	return 0, 0, ctx.Err()
}

func (s *stall) GetTurn(ctx context.Context, b *santorini.Board) (santorini.Turn, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

// A 1x3 board with one worker each: whoever moves first is boxed in
// and loses.
var boxed = Config{Board: santorini.Config{Rows: 1, Cols: 3, Workers: 1}}
