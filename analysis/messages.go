package analysis

import (
	"github.com/nelhage/santorini/santorini"
	"github.com/nelhage/santorini/wire"
)

// Rules overrides the default ruleset. The board's shape always comes
// from the board itself.
type Rules struct {
	Workers   int `json:"workers,omitempty"`
	WinHeight int `json:"win_height,omitempty"`
	MaxHeight int `json:"max_height,omitempty"`
}

func (r Rules) config() santorini.Config {
	return santorini.Config{
		Workers:   r.Workers,
		WinHeight: r.WinHeight,
		MaxHeight: r.MaxHeight,
	}
}

type CheckTurnRequest struct {
	Board  wire.Board `json:"board"`
	Player string     `json:"player"`
	Turn   []string   `json:"turn"`
	Rules  Rules      `json:"rules"`
}

type CheckTurnResponse struct {
	Legal bool `json:"legal"`
	// Reason names the broken rule when Legal is false.
	Reason string `json:"reason,omitempty"`
	// Won reports whether the turn's move wins the game.
	Won bool `json:"won"`
}

type LegalTurnsRequest struct {
	Board  wire.Board `json:"board"`
	Player string     `json:"player"`
	Rules  Rules      `json:"rules"`
}

type LegalTurnsResponse struct {
	Turns [][]string `json:"turns"`
	Lost  bool       `json:"lost"`
}

type ScoreRequest struct {
	Board   wire.Board `json:"board"`
	Turn    []string   `json:"turn"`
	Depth   int        `json:"depth"`
	Minimax bool       `json:"minimax,omitempty"`
	Rules   Rules      `json:"rules"`
}

type ScoreResponse struct {
	Score   int    `json:"score"`
	Visited uint64 `json:"visited"`
}
