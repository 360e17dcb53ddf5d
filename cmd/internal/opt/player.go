package opt

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/nelhage/santorini/ai"
	"github.com/nelhage/santorini/referee"
)

// Players builds players from command-line specs:
//
//	stayalive[:DEPTH]
//	random[:SEED]
//	breaker:KIND[:AFTER]   (KIND is place, turn or error)
//	human
type Players struct {
	Depth   int
	Mode    string
	Threads int

	Log zerolog.Logger
	In  *bufio.Reader
	Out io.Writer
}

func (o *Players) AddFlags(flags *flag.FlagSet, e Env) {
	flags.IntVar(&o.Depth, "depth", e.Depth, "stay-alive search depth")
	flags.StringVar(&o.Mode, "mode", e.Mode, "search mode: conservative or minimax")
	flags.IntVar(&o.Threads, "threads", e.Threads, "goroutines scoring candidate turns")
}

func ParseMode(s string) (ai.Mode, error) {
	switch s {
	case "conservative", "":
		return ai.Conservative, nil
	case "minimax":
		return ai.Minimax, nil
	}
	return 0, fmt.Errorf("unknown search mode %q", s)
}

func (o *Players) stayAlive(name string, depth int) (ai.Player, error) {
	mode, err := ParseMode(o.Mode)
	if err != nil {
		return nil, err
	}
	return ai.NewStayAlive(ai.StayAliveConfig{
		Name:    name,
		Depth:   depth,
		Mode:    mode,
		Threads: o.Threads,
		Log:     o.Log,
	}), nil
}

func (o *Players) Parse(name, spec string) (ai.Player, error) {
	kind, arg, _ := strings.Cut(spec, ":")
	switch kind {
	case "stayalive":
		depth := o.Depth
		if arg != "" {
			d, err := strconv.Atoi(arg)
			if err != nil {
				return nil, fmt.Errorf("%s: depth: %w", spec, err)
			}
			depth = d
		}
		return o.stayAlive(name, depth)
	case "random":
		var seed int64
		if arg != "" {
			s, err := strconv.ParseInt(arg, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%s: seed: %w", spec, err)
			}
			seed = s
		}
		return ai.NewRandom(name, seed), nil
	case "breaker":
		how, after, _ := strings.Cut(arg, ":")
		k, err := ai.ParseBreak(how)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", spec, err)
		}
		b := &ai.Breaker{Kind: k}
		if after != "" {
			if b.After, err = strconv.Atoi(after); err != nil {
				return nil, fmt.Errorf("%s: after: %w", spec, err)
			}
		}
		if b.Player, err = o.stayAlive(name, o.Depth); err != nil {
			return nil, err
		}
		return b, nil
	case "human":
		if o.In == nil || o.Out == nil {
			return nil, fmt.Errorf("%s: no terminal", spec)
		}
		return referee.NewHuman(name, o.Out, o.In), nil
	}
	return nil, fmt.Errorf("unparseable player: %q", spec)
}
