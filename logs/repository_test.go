package logs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nelhage/santorini/referee"
	"github.com/nelhage/santorini/santorini"
)

func open(t *testing.T) *Repository {
	r, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(r.Close)
	return r
}

func TestRecordSeries(t *testing.T) {
	repo := open(t)
	when := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s := referee.Series{
		Winner: "one",
		Results: []santorini.Result{
			{Winner: "one", Loser: "two", Reason: santorini.HeightWin, Turns: 14},
			{Winner: "two", Loser: "one", Reason: santorini.ImmobileWin, Turns: 9},
			{Winner: "one", Loser: "two", LoserCheated: true, Reason: santorini.CheatWin, Turns: 3},
		},
	}
	id, err := repo.RecordSeries(when, "one", "two", 5, santorini.Config{}, s)
	require.NoError(t, err)

	got, err := repo.Series(id)
	require.NoError(t, err)
	assert.Equal(t, "one", got.Winner)
	assert.Equal(t, 5, got.Planned)
	assert.True(t, when.Equal(got.Started))

	games, err := repo.Games(id)
	require.NoError(t, err)
	require.Len(t, games, 3)
	assert.Equal(t, 1, games[0].Seq)
	assert.Equal(t, 6, games[0].Rows)
	assert.Equal(t, "immobilized", games[1].Reason)
	assert.True(t, games[2].Cheated)
	assert.False(t, games[0].Cheated)

	st, err := repo.Standings()
	require.NoError(t, err)
	assert.Equal(t, []Standing{
		{Player: "one", Wins: 2, Losses: 1, Forfeits: 0},
		{Player: "two", Wins: 1, Losses: 2, Forfeits: 1},
	}, st)
}

func TestInsertGames(t *testing.T) {
	repo := open(t)
	s := &Series{Started: time.Now(), Player1: "a", Player2: "b", Planned: 2}
	require.NoError(t, repo.InsertSeries(s))
	assert.NotZero(t, s.ID)

	cfg := santorini.Config{Rows: 4, Cols: 5}
	now := time.Now()
	require.NoError(t, repo.InsertGames([]*Game{
		FromResult(s.ID, 1, cfg, santorini.Result{Winner: "a", Loser: "b", Reason: santorini.HeightWin}, now),
		FromResult(s.ID, 2, cfg, santorini.Result{Winner: "a", Loser: "b", Reason: santorini.HeightWin}, now),
	}))
	games, err := repo.Games(s.ID)
	require.NoError(t, err)
	require.Len(t, games, 2)
	assert.Equal(t, 5, games[1].Cols)

	// (series, seq) is unique, and a failed batch leaves nothing behind.
	err = repo.InsertGames([]*Game{
		FromResult(s.ID, 3, cfg, santorini.Result{Winner: "b", Loser: "a"}, now),
		FromResult(s.ID, 1, cfg, santorini.Result{Winner: "b", Loser: "a"}, now),
	})
	assert.Error(t, err)
	games, err = repo.Games(s.ID)
	require.NoError(t, err)
	assert.Len(t, games, 2)

	require.NoError(t, repo.InsertGame(FromResult(s.ID, 3, cfg, santorini.Result{Winner: "b", Loser: "a"}, now)))
	st, err := repo.Standings()
	require.NoError(t, err)
	assert.Equal(t, "a", st[0].Player)
	assert.Equal(t, 2, st[0].Wins)
}
