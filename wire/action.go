package wire

import (
	"errors"
	"fmt"

	"github.com/nelhage/santorini/santorini"
)

var (
	ErrBadTurn   = errors.New("bad turn")
	ErrBadLabel  = errors.New("bad direction label")
	ErrBadResult = errors.New("bad result")
)

// Irregular marks a result whose loser cheated.
const Irregular = "irregular"

// EncodeTurn renders a turn. Only the two legal turn shapes can be
// encoded; anything else is an error.
func EncodeTurn(t santorini.Turn) ([]string, error) {
	if len(t) == 0 || len(t) > 2 || t[0].Kind != santorini.MoveAction {
		return nil, fmt.Errorf("%w: %s", ErrBadTurn, t)
	}
	out := []string{t[0].Worker.String(), t[0].Dir.EWLabel(), t[0].Dir.NSLabel()}
	if len(t) == 2 {
		b := t[1]
		if b.Kind != santorini.BuildAction || b.Worker != t[0].Worker {
			return nil, fmt.Errorf("%w: %s", ErrBadTurn, t)
		}
		out = append(out, b.Dir.EWLabel(), b.Dir.NSLabel())
	}
	return out, nil
}

func DecodeTurn(parts []string) (santorini.Turn, error) {
	if len(parts) != 3 && len(parts) != 5 {
		return nil, fmt.Errorf("%w: %d elements", ErrBadTurn, len(parts))
	}
	w, err := ParseWorker(parts[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadTurn, err)
	}
	d, err := parseDirection(parts[1], parts[2])
	if err != nil {
		return nil, err
	}
	t := santorini.Turn{santorini.Move(w, d)}
	if len(parts) == 5 {
		d, err := parseDirection(parts[3], parts[4])
		if err != nil {
			return nil, err
		}
		t = append(t, santorini.Build(w, d))
	}
	return t, nil
}

func parseDirection(ew, ns string) (santorini.Direction, error) {
	var d santorini.Direction
	switch ew {
	case "EAST":
		d.EW = 1
	case "WEST":
		d.EW = -1
	case "PUT":
	default:
		return d, fmt.Errorf("%w: %q", ErrBadLabel, ew)
	}
	switch ns {
	case "SOUTH":
		d.NS = 1
	case "NORTH":
		d.NS = -1
	case "PUT":
	default:
		return d, fmt.Errorf("%w: %q", ErrBadLabel, ns)
	}
	return d, nil
}

func EncodeResult(r santorini.Result) []string {
	out := []string{r.Winner, r.Loser}
	if r.LoserCheated {
		out = append(out, Irregular)
	}
	return out
}

// DecodeResult parses a result. Only Winner, Loser and LoserCheated
// travel on the wire.
func DecodeResult(parts []string) (santorini.Result, error) {
	switch {
	case len(parts) == 2:
		return santorini.Result{Winner: parts[0], Loser: parts[1]}, nil
	case len(parts) == 3 && parts[2] == Irregular:
		return santorini.Result{
			Winner:       parts[0],
			Loser:        parts[1],
			LoserCheated: true,
			Reason:       santorini.CheatWin,
		}, nil
	}
	return santorini.Result{}, fmt.Errorf("%w: %q", ErrBadResult, parts)
}
