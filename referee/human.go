package referee

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/nelhage/santorini/ai"
	"github.com/nelhage/santorini/santorini"
	"github.com/nelhage/santorini/wire"
)

// NewHuman returns a player that shows the board on out and reads
// placements ("row col") and turns in wire form ("one1 EAST SOUTH PUT
// NORTH") from in. Lines that do not parse are re-prompted; parsed but
// illegal input is passed on to the referee.
func NewHuman(name string, out io.Writer, in *bufio.Reader) ai.Player {
	return &human{name, out, in}
}

type human struct {
	name string
	out  io.Writer
	in   *bufio.Reader
}

func (h *human) Name() string  { return h.name }
func (h *human) Priority() int { return 0 }

func (h *human) prompt(b *santorini.Board, what string) (string, error) {
	Render(h.out, b)
	fmt.Fprintf(h.out, "%s %s> ", h.name, what)
	line, err := h.in.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (h *human) PlaceWorker(ctx context.Context, b *santorini.Board) (int, int, error) {
	for {
		line, err := h.prompt(b, "place")
		if err != nil {
			return 0, 0, err
		}
		var r, c int
		if _, err := fmt.Sscanf(line, "%d %d", &r, &c); err != nil {
			fmt.Fprintln(h.out, "parse error:", err)
			continue
		}
		return r, c, nil
	}
}

func (h *human) GetTurn(ctx context.Context, b *santorini.Board) (santorini.Turn, error) {
	for {
		line, err := h.prompt(b, "turn")
		if err != nil {
			return nil, err
		}
		t, err := wire.DecodeTurn(strings.Fields(line))
		if err != nil {
			fmt.Fprintln(h.out, "parse error:", err)
			continue
		}
		return t, nil
	}
}

func (h *human) GameOver(ctx context.Context, r santorini.Result) error {
	fmt.Fprintf(h.out, "Game over! %s beats %s (%s) after %d turns.\n",
		r.Winner, r.Loser, r.Reason, r.Turns)
	return nil
}
