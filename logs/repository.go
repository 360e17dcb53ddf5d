// Package logs keeps a sqlite record of finished games and series.
// Only results are stored, never the turns that led to them.
package logs

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // repository assumes sqlite

	"github.com/nelhage/santorini/referee"
	"github.com/nelhage/santorini/santorini"
)

type Repository struct {
	db *sqlx.DB
}

type Series struct {
	ID      int64     `db:"id"`
	Started time.Time `db:"started"`
	Player1 string    `db:"player1"`
	Player2 string    `db:"player2"`
	Planned int       `db:"planned"`
	Winner  string    `db:"winner"`
}

type Game struct {
	Series  int64     `db:"series"`
	Seq     int       `db:"seq"`
	Played  time.Time `db:"played"`
	Rows    int       `db:"grid_rows"`
	Cols    int       `db:"grid_cols"`
	Winner  string    `db:"winner"`
	Loser   string    `db:"loser"`
	Reason  string    `db:"reason"`
	Cheated bool      `db:"cheated"`
	Turns   int       `db:"turns"`
}

type Standing struct {
	Player   string `db:"player"`
	Wins     int    `db:"wins"`
	Losses   int    `db:"losses"`
	Forfeits int    `db:"forfeits"`
}

// Open opens (creating if needed) the database at path. ":memory:"
// works; the pool is limited to one connection so that it stays a
// single database.
func Open(path string) (*Repository, error) {
	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	for _, stmt := range []struct{ what, sql string }{
		{"series table", createSeriesTable},
		{"game table", createGameTable},
		{"player_games view", createPlayerView},
	} {
		if _, err := db.Exec(stmt.sql); err != nil {
			db.Close()
			return nil, fmt.Errorf("create %s: %w", stmt.what, err)
		}
	}
	return &Repository{db: db}, nil
}

// FromResult builds the row for the seq'th game of a series.
func FromResult(series int64, seq int, cfg santorini.Config, r santorini.Result, played time.Time) *Game {
	b := santorini.New(cfg)
	return &Game{
		Series:  series,
		Seq:     seq,
		Played:  played,
		Rows:    b.Rows(),
		Cols:    b.Cols(),
		Winner:  r.Winner,
		Loser:   r.Loser,
		Reason:  r.Reason.String(),
		Cheated: r.LoserCheated,
		Turns:   r.Turns,
	}
}

// InsertSeries stores s and sets s.ID.
func (r *Repository) InsertSeries(s *Series) error {
	res, err := r.db.NamedExec(insertSeries, s)
	if err != nil {
		return err
	}
	s.ID, err = res.LastInsertId()
	return err
}

func (r *Repository) InsertGame(g *Game) error {
	_, err := r.db.NamedExec(insertGame, g)
	return err
}

func (r *Repository) InsertGames(gs []*Game) error {
	txn, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer txn.Rollback()
	for _, g := range gs {
		if _, e := txn.NamedExec(insertGame, g); e != nil {
			return e
		}
	}
	return txn.Commit()
}

// RecordSeries stores a finished series and all of its games in one
// transaction and returns the series id.
func (r *Repository) RecordSeries(started time.Time, p1, p2 string, planned int, cfg santorini.Config, s referee.Series) (int64, error) {
	txn, err := r.db.Beginx()
	if err != nil {
		return 0, err
	}
	defer txn.Rollback()
	row := &Series{
		Started: started,
		Player1: p1,
		Player2: p2,
		Planned: planned,
		Winner:  s.Winner,
	}
	res, err := txn.NamedExec(insertSeries, row)
	if err != nil {
		return 0, fmt.Errorf("insert series: %w", err)
	}
	if row.ID, err = res.LastInsertId(); err != nil {
		return 0, err
	}
	for i, gr := range s.Results {
		g := FromResult(row.ID, i+1, cfg, gr, started)
		if _, err := txn.NamedExec(insertGame, g); err != nil {
			return 0, fmt.Errorf("insert game %d: %w", i+1, err)
		}
	}
	return row.ID, txn.Commit()
}

func (r *Repository) Series(id int64) (*Series, error) {
	var s Series
	if err := r.db.Get(&s, `SELECT * FROM series WHERE id = ?`, id); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *Repository) Games(series int64) ([]Game, error) {
	var gs []Game
	err := r.db.Select(&gs, selectGames, series)
	return gs, err
}

// Standings tallies every recorded game per player, best first.
func (r *Repository) Standings() ([]Standing, error) {
	var out []Standing
	err := r.db.Select(&out, selectStandings)
	return out, err
}

func (r *Repository) Close() {
	r.db.Close()
}
