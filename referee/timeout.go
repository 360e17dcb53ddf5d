package referee

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nelhage/santorini/ai"
	"github.com/nelhage/santorini/santorini"
)

var ErrTimeout = errors.New("player timed out")

// TimeLimited wraps p so that every placement and turn request runs on
// its own goroutine and fails with ErrTimeout after limit. A call that
// overruns is abandoned, not interrupted, beyond cancelling its
// context.
func TimeLimited(p ai.Player, limit time.Duration) ai.Player {
	return &timeLimited{Player: p, limit: limit}
}

type timeLimited struct {
	ai.Player
	limit time.Duration
}

type reply[T any] struct {
	v   T
	err error
}

func within[T any](ctx context.Context, limit time.Duration, name string, f func(context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, limit)
	defer cancel()
	ch := make(chan reply[T], 1)
	go func() {
		v, err := f(ctx)
		ch <- reply[T]{v, err}
	}()
	select {
	case r := <-ch:
		return r.v, r.err
	case <-ctx.Done():
		var zero T
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return zero, fmt.Errorf("%s: %w after %s", name, ErrTimeout, limit)
		}
		return zero, ctx.Err()
	}
}

func (t *timeLimited) PlaceWorker(ctx context.Context, b *santorini.Board) (int, int, error) {
	rc, err := within(ctx, t.limit, t.Name(), func(ctx context.Context) ([2]int, error) {
		r, c, err := t.Player.PlaceWorker(ctx, b)
		return [2]int{r, c}, err
	})
	return rc[0], rc[1], err
}

func (t *timeLimited) GetTurn(ctx context.Context, b *santorini.Board) (santorini.Turn, error) {
	return within(ctx, t.limit, t.Name(), func(ctx context.Context) (santorini.Turn, error) {
		return t.Player.GetTurn(ctx, b)
	})
}

func (t *timeLimited) GameOver(ctx context.Context, r santorini.Result) error {
	o, ok := t.Player.(ai.Observer)
	if !ok {
		return nil
	}
	_, err := within(ctx, t.limit, t.Name(), func(ctx context.Context) (struct{}, error) {
		return struct{}{}, o.GameOver(ctx, r)
	})
	return err
}
