package referee

import (
	"context"

	"github.com/nelhage/santorini/ai"
	"github.com/nelhage/santorini/santorini"
)

// Series is the outcome of BestOfN. Winner is empty on a tie.
type Series struct {
	Winner  string
	Results []santorini.Result
	Wins    map[string]int
}

// BestOfN plays up to n fresh games between p1 and p2. A game lost by
// cheating ends the series at once in favour of that game's winner.
func BestOfN(ctx context.Context, cfg Config, p1, p2 ai.Player, n int) (Series, error) {
	s := Series{Wins: map[string]int{p1.Name(): 0, p2.Name(): 0}}
	for i := 0; i < n; i++ {
		r, err := Play(ctx, cfg, p1, p2)
		if err != nil {
			return s, err
		}
		s.Results = append(s.Results, r)
		s.Wins[r.Winner]++
		if r.LoserCheated {
			s.Winner = r.Winner
			cfg.Log.Info().
				Str("winner", r.Winner).
				Int("game", i+1).
				Msg("series forfeited")
			return s, nil
		}
	}
	switch a, b := s.Wins[p1.Name()], s.Wins[p2.Name()]; {
	case a > b:
		s.Winner = p1.Name()
	case b > a:
		s.Winner = p2.Name()
	}
	cfg.Log.Info().
		Str("winner", s.Winner).
		Int("games", len(s.Results)).
		Msg("series over")
	return s, nil
}
