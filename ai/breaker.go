package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/nelhage/santorini/santorini"
)

type Break byte

const (
	// BreakPlacement places on an occupied cell, or off the grid if
	// nothing is occupied yet.
	BreakPlacement Break = 1 + iota
	// BreakTurn moves a worker that belongs to the opponent.
	BreakTurn
	// BreakError fails the call outright.
	BreakError
)

var ErrBroken = errors.New("breaker: deliberate failure")

func ParseBreak(s string) (Break, error) {
	switch s {
	case "place":
		return BreakPlacement, nil
	case "turn":
		return BreakTurn, nil
	case "error":
		return BreakError, nil
	}
	return 0, fmt.Errorf("unknown break %q", s)
}

// Breaker wraps an honest player and misbehaves once it has played
// After honest turns. BreakPlacement fires on the first placement, and
// BreakError also fails placements when After is 0.
type Breaker struct {
	Player
	Kind  Break
	After int

	turns int
}

func (b *Breaker) PlaceWorker(ctx context.Context, board *santorini.Board) (int, int, error) {
	switch b.Kind {
	case BreakPlacement:
		for r := 0; r < board.Rows(); r++ {
			for c := 0; c < board.Cols(); c++ {
				if board.At(r, c).Occupied() {
					return r, c, nil
				}
			}
		}
		return -1, board.Cols(), nil
	case BreakError:
		if b.After == 0 {
			return 0, 0, ErrBroken
		}
	}
	return b.Player.PlaceWorker(ctx, board)
}

func (b *Breaker) GetTurn(ctx context.Context, board *santorini.Board) (santorini.Turn, error) {
	b.turns++
	if b.turns <= b.After {
		return b.Player.GetTurn(ctx, board)
	}
	switch b.Kind {
	case BreakTurn:
		if ws := board.Workers(board.Opponent(b.Name())); len(ws) > 0 {
			return santorini.Turn{santorini.Move(ws[0], santorini.North), santorini.Build(ws[0], santorini.South)}, nil
		}
		return santorini.Turn{}, nil
	case BreakError:
		return nil, ErrBroken
	}
	return b.Player.GetTurn(ctx, board)
}
