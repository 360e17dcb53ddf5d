package ai

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nelhage/santorini/santest"
	"github.com/nelhage/santorini/santorini"
)

func TestStayAliveDefaults(t *testing.T) {
	p := NewStayAlive(StayAliveConfig{Name: "one", Priority: 3})
	assert.Equal(t, "one", p.Name())
	assert.Equal(t, 3, p.Priority())
	assert.Equal(t, 2, p.Searcher().Config().Depth)
	assert.Equal(t, Conservative, p.Searcher().Config().Mode)
}

func TestStayAliveFindsSurvivor(t *testing.T) {
	ctx := context.Background()
	b := santest.Board(dangerBoard...)
	want := santest.Turn("one1 PUT NORTH EAST NORTH")
	for _, threads := range []int{1, 4} {
		for _, mode := range []Mode{Conservative, Minimax} {
			p := NewStayAlive(StayAliveConfig{Name: "one", Depth: 1, Mode: mode, Threads: threads})
			got, err := p.GetTurn(ctx, b)
			require.NoError(t, err)
			assert.Equal(t, want, got, "threads=%d mode=%s", threads, mode)
		}
	}
}

func TestStayAliveFallsBack(t *testing.T) {
	// Whatever one does, two1 climbs to 3 next turn.
	b := santest.Board(
		"2two1 3 3",
		"0 3 0",
		"0one1 0 0",
	)
	p := NewStayAlive(StayAliveConfig{Name: "one", Depth: 1})
	got, err := p.GetTurn(context.Background(), b)
	require.NoError(t, err)
	assert.Equal(t, LegalTurns("one", b)[0], got)
}

func TestStayAliveNoTurns(t *testing.T) {
	b := santest.Board(
		"0one1 4",
		"4 4two1",
	)
	p := NewStayAlive(StayAliveConfig{Name: "one"})
	_, err := p.GetTurn(context.Background(), b)
	assert.ErrorIs(t, err, ErrNoTurns)
}

func TestStayAlivePlacement(t *testing.T) {
	p := NewStayAlive(StayAliveConfig{Name: "one"})
	b := santest.Board(
		"0two1 0",
		"0 0",
	)
	r, c, err := p.PlaceWorker(context.Background(), b)
	require.NoError(t, err)
	assert.Equal(t, [2]int{0, 1}, [2]int{r, c})

	full := santest.Board("0two1 0two2")
	_, _, err = p.PlaceWorker(context.Background(), full)
	assert.ErrorIs(t, err, ErrNoCells)
}

func TestStayAliveCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	b := santest.Board(dangerBoard...)
	for _, threads := range []int{1, 2} {
		p := NewStayAlive(StayAliveConfig{Name: "one", Threads: threads})
		_, err := p.GetTurn(ctx, b)
		assert.ErrorIs(t, err, context.Canceled)
	}
}

func TestRandomDeterministic(t *testing.T) {
	ctx := context.Background()
	b := santest.Board(dangerBoard...)
	a, c := NewRandom("one", 42), NewRandom("one", 42)
	assert.Equal(t, a.Priority(), c.Priority())
	for i := 0; i < 5; i++ {
		ta, err := a.GetTurn(ctx, b)
		require.NoError(t, err)
		tc, err := c.GetTurn(ctx, b)
		require.NoError(t, err)
		assert.Equal(t, ta, tc)
		assert.True(t, b.IsTurnLegal(ta, "one"))
	}
	r, col, err := a.PlaceWorker(ctx, santorini.New(santorini.Config{Rows: 2, Cols: 2}))
	require.NoError(t, err)
	assert.True(t, r >= 0 && r < 2 && col >= 0 && col < 2)
}

func TestBreaker(t *testing.T) {
	ctx := context.Background()
	b := santest.Board(dangerBoard...)

	place := &Breaker{Player: NewRandom("one", 1), Kind: BreakPlacement}
	r, c, err := place.PlaceWorker(ctx, b)
	require.NoError(t, err)
	assert.False(t, b.CanPlace(r, c))
	r, c, err = place.PlaceWorker(ctx, santorini.New(santorini.Config{}))
	require.NoError(t, err)
	assert.False(t, santorini.New(santorini.Config{}).CanPlace(r, c))

	turn := &Breaker{Player: NewRandom("one", 1), Kind: BreakTurn, After: 1}
	tn, err := turn.GetTurn(ctx, b)
	require.NoError(t, err)
	assert.True(t, b.IsTurnLegal(tn, "one"))
	tn, err = turn.GetTurn(ctx, b)
	require.NoError(t, err)
	assert.ErrorIs(t, b.CheckTurn(tn, "one"), santorini.ErrNotOwner)

	fail := &Breaker{Player: NewRandom("one", 1), Kind: BreakError}
	_, _, err = fail.PlaceWorker(ctx, b)
	assert.ErrorIs(t, err, ErrBroken)
	_, err = fail.GetTurn(ctx, b)
	assert.ErrorIs(t, err, ErrBroken)

	k, err := ParseBreak("turn")
	require.NoError(t, err)
	assert.Equal(t, BreakTurn, k)
	_, err = ParseBreak("sideways")
	assert.Error(t, err)
}
