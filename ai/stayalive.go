package ai

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/nelhage/santorini/santorini"
)

var (
	ErrNoTurns = errors.New("no legal turns")
	ErrNoCells = errors.New("no free cells")
)

type StayAliveConfig struct {
	Name     string
	Priority int
	Depth    int
	Mode     Mode
	// Threads > 1 scores candidate turns concurrently.
	Threads int

	Log zerolog.Logger
}

// StayAlive plays the first turn it can prove survives Depth plies, and
// falls back to the first legal turn when none does.
type StayAlive struct {
	cfg StayAliveConfig
	s   *Searcher
}

func NewStayAlive(cfg StayAliveConfig) *StayAlive {
	if cfg.Depth == 0 {
		cfg.Depth = 2
	}
	return &StayAlive{
		cfg: cfg,
		s:   NewSearcher(SearchConfig{Depth: cfg.Depth, Mode: cfg.Mode}),
	}
}

func (p *StayAlive) Name() string {
	return p.cfg.Name
}

func (p *StayAlive) Priority() int {
	return p.cfg.Priority
}

func (p *StayAlive) Searcher() *Searcher {
	return p.s
}

// PlaceWorker takes the free cell nearest the top-left corner.
func (p *StayAlive) PlaceWorker(ctx context.Context, b *santorini.Board) (int, int, error) {
	return firstFree(b)
}

func firstFree(b *santorini.Board) (int, int, error) {
	for r := 0; r < b.Rows(); r++ {
		for c := 0; c < b.Cols(); c++ {
			if b.CanPlace(r, c) {
				return r, c, nil
			}
		}
	}
	return 0, 0, ErrNoCells
}

func (p *StayAlive) GetTurn(ctx context.Context, b *santorini.Board) (santorini.Turn, error) {
	turns := LegalTurns(p.cfg.Name, b)
	if len(turns) == 0 {
		return nil, ErrNoTurns
	}
	scores, err := p.score(ctx, turns, b)
	if err != nil {
		return nil, err
	}
	for i, sc := range scores {
		if sc == 1 {
			p.cfg.Log.Debug().
				Str("player", p.cfg.Name).
				Stringer("turn", turns[i]).
				Int("candidates", len(turns)).
				Msg("found surviving turn")
			return turns[i], nil
		}
	}
	p.cfg.Log.Debug().
		Str("player", p.cfg.Name).
		Int("candidates", len(turns)).
		Msg("no surviving turn")
	return turns[0], nil
}

// score returns one score per turn. Sequential scoring stops at the
// first survivor; the remaining entries are left at 0.
func (p *StayAlive) score(ctx context.Context, turns []santorini.Turn, b *santorini.Board) ([]int, error) {
	scores := make([]int, len(turns))
	if p.cfg.Threads <= 1 {
		for i, t := range turns {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			scores[i] = p.s.Score(t, b)
			if scores[i] == 1 {
				break
			}
		}
		return scores, nil
	}

	grp, ctx := errgroup.WithContext(ctx)
	grp.SetLimit(p.cfg.Threads)
	for i, t := range turns {
		grp.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			scores[i] = p.s.Score(t, b)
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}
	return scores, nil
}
