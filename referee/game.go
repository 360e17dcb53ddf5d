// Package referee runs games between two ai.Players and reports the
// verdict.
package referee

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/nelhage/santorini/ai"
	"github.com/nelhage/santorini/santorini"
)

type Config struct {
	Board santorini.Config
	Log   zerolog.Logger
}

type State byte

const (
	Setup State = iota
	InProgress
	Terminal
)

func (s State) String() string {
	switch s {
	case Setup:
		return "setup"
	case InProgress:
		return "in progress"
	case Terminal:
		return "terminal"
	default:
		return "unknown"
	}
}

var (
	ErrNoName   = errors.New("player has no name")
	ErrSameName = errors.New("players share a name")
	ErrGameOver = errors.New("game is over")
)

// Game is a single game. It moves through Setup, InProgress and
// Terminal one Step at a time.
type Game struct {
	cfg     Config
	players [2]ai.Player
	board   *santorini.Board
	state   State

	placed int
	active int
	turns  int
	result santorini.Result
}

// NewGame seats p1 and p2. Each player's Priority is asked once; the
// higher moves first and a tie keeps the argument order.
func NewGame(cfg Config, p1, p2 ai.Player) (*Game, error) {
	if p1.Name() == "" || p2.Name() == "" {
		return nil, ErrNoName
	}
	if p1.Name() == p2.Name() {
		return nil, fmt.Errorf("%w: %q", ErrSameName, p1.Name())
	}
	g := &Game{
		cfg:     cfg,
		players: [2]ai.Player{p1, p2},
		board:   santorini.New(cfg.Board),
	}
	if p2.Priority() > p1.Priority() {
		g.players[0], g.players[1] = p2, p1
	}
	g.cfg.Log.Info().
		Str("first", g.players[0].Name()).
		Str("second", g.players[1].Name()).
		Int("rows", g.board.Rows()).
		Int("cols", g.board.Cols()).
		Msg("game start")
	return g, nil
}

func (g *Game) State() State {
	return g.state
}

func (g *Game) Board() *santorini.Board {
	return g.board
}

// Players returns the players in move order.
func (g *Game) Players() (first, second ai.Player) {
	return g.players[0], g.players[1]
}

// Result returns the verdict once the game is Terminal.
func (g *Game) Result() (santorini.Result, bool) {
	return g.result, g.state == Terminal
}

// Step performs one placement during Setup or one turn during
// InProgress. Player failures end the game; Step only returns an error
// if ctx is done or the game is already over.
func (g *Game) Step(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	switch g.state {
	case Setup:
		return g.place(ctx)
	case InProgress:
		return g.turn(ctx)
	default:
		return ErrGameOver
	}
}

func (g *Game) place(ctx context.Context) error {
	p, other := g.players[g.placed%2], g.players[1-g.placed%2]
	w := santorini.Worker{Owner: p.Name(), Index: g.placed/2 + 1}
	r, c, err := p.PlaceWorker(ctx, g.board)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		g.cfg.Log.Warn().Err(err).Str("player", p.Name()).Msg("placement failed")
		g.finish(other, p, santorini.CheatWin)
		return nil
	}
	if !g.board.CanPlace(r, c) {
		g.cfg.Log.Warn().
			Str("player", p.Name()).
			Int("row", r).Int("col", c).
			Msg("illegal placement")
		g.finish(other, p, santorini.CheatWin)
		return nil
	}
	g.board = g.board.Place(w, r, c)
	g.placed++
	if g.placed == 2*g.board.NumWorkers() {
		g.state = InProgress
	}
	return nil
}

func (g *Game) turn(ctx context.Context) error {
	active, waiting := g.players[g.active], g.players[1-g.active]
	switch {
	case g.board.HasWon(active.Name()):
		g.finish(active, waiting, santorini.HeightWin)
		return nil
	case g.board.HasLost(active.Name()):
		g.finish(waiting, active, santorini.ImmobileWin)
		return nil
	}

	t, err := active.GetTurn(ctx, g.board)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		g.cfg.Log.Warn().Err(err).Str("player", active.Name()).Msg("turn failed")
		g.finish(waiting, active, santorini.CheatWin)
		return nil
	}
	if err := g.board.CheckTurn(t, active.Name()); err != nil {
		g.cfg.Log.Warn().
			Err(err).
			Str("player", active.Name()).
			Stringer("turn", t).
			Msg("illegal turn")
		g.finish(waiting, active, santorini.CheatWin)
		return nil
	}

	g.turns++
	g.cfg.Log.Debug().
		Str("player", active.Name()).
		Int("turn", g.turns).
		Stringer("actions", t).
		Msg("turn")
	g.board = g.board.Apply(t[0])
	if g.board.HasWon(active.Name()) {
		g.finish(active, waiting, santorini.HeightWin)
		return nil
	}
	g.board = g.board.Apply(t[1])
	g.active = 1 - g.active
	return nil
}

func (g *Game) finish(winner, loser ai.Player, why santorini.Reason) {
	g.state = Terminal
	g.result = santorini.Result{
		Winner:       winner.Name(),
		Loser:        loser.Name(),
		LoserCheated: why == santorini.CheatWin,
		Reason:       why,
		Turns:        g.turns,
	}
	g.cfg.Log.Info().
		Str("winner", g.result.Winner).
		Str("loser", g.result.Loser).
		Stringer("reason", why).
		Int("turns", g.turns).
		Msg("game over")
}

// Run steps the game to completion and tells any player that is an
// ai.Observer how it ended.
func (g *Game) Run(ctx context.Context) (santorini.Result, error) {
	for g.state != Terminal {
		if err := g.Step(ctx); err != nil {
			return santorini.Result{}, err
		}
	}
	for _, p := range g.players {
		o, ok := p.(ai.Observer)
		if !ok {
			continue
		}
		if err := o.GameOver(ctx, g.result); err != nil {
			g.cfg.Log.Warn().Err(err).Str("player", p.Name()).Msg("could not deliver result")
		}
	}
	return g.result, nil
}

// Play runs a single fresh game between p1 and p2.
func Play(ctx context.Context, cfg Config, p1, p2 ai.Player) (santorini.Result, error) {
	g, err := NewGame(cfg, p1, p2)
	if err != nil {
		return santorini.Result{}, err
	}
	return g.Run(ctx)
}
