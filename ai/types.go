package ai

import (
	"context"

	"github.com/nelhage/santorini/santorini"
)

// Player is anything that can take a seat at the board: a local search,
// a remote process behind a relay, or a scripted test double.
//
// Players receive boards they may read but must not retain across the
// call for any purpose other than reading.
type Player interface {
	Name() string
	// Priority breaks the tie for who moves first; higher goes first.
	Priority() int
	PlaceWorker(ctx context.Context, b *santorini.Board) (row, col int, err error)
	GetTurn(ctx context.Context, b *santorini.Board) (santorini.Turn, error)
}

// Observer is implemented by players that want to hear the verdict.
type Observer interface {
	GameOver(ctx context.Context, r santorini.Result) error
}
