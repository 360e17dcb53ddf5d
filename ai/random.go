package ai

import (
	"context"
	"math/rand"

	"github.com/nelhage/santorini/santorini"
)

type RandomAI struct {
	name     string
	priority int
	r        *rand.Rand
}

// NewRandom returns a player that picks uniformly among free cells and
// legal turns. Its choices are a function of seed and the boards it is
// shown.
func NewRandom(name string, seed int64) *RandomAI {
	r := rand.New(rand.NewSource(seed))
	return &RandomAI{
		name:     name,
		priority: r.Int(),
		r:        r,
	}
}

func (r *RandomAI) Name() string  { return r.name }
func (r *RandomAI) Priority() int { return r.priority }

func (r *RandomAI) PlaceWorker(ctx context.Context, b *santorini.Board) (int, int, error) {
	var free [][2]int
	for row := 0; row < b.Rows(); row++ {
		for col := 0; col < b.Cols(); col++ {
			if b.CanPlace(row, col) {
				free = append(free, [2]int{row, col})
			}
		}
	}
	if len(free) == 0 {
		return 0, 0, ErrNoCells
	}
	c := free[r.r.Intn(len(free))]
	return c[0], c[1], nil
}

func (r *RandomAI) GetTurn(ctx context.Context, b *santorini.Board) (santorini.Turn, error) {
	turns := LegalTurns(r.name, b)
	if len(turns) == 0 {
		return nil, ErrNoTurns
	}
	return turns[r.r.Intn(len(turns))], nil
}
