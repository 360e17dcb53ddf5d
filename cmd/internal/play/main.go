package play

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/subcommands"

	"github.com/nelhage/santorini/ai"
	"github.com/nelhage/santorini/cmd/internal/opt"
	"github.com/nelhage/santorini/referee"
)

type Command struct {
	p1, p2   string
	name1    string
	name2    string
	limit    time.Duration
	logLevel string
	verbose  bool
	rules    opt.Rules
	players  opt.Players
}

func (*Command) Name() string     { return "play" }
func (*Command) Synopsis() string { return "Play a single game from the command line" }
func (*Command) Usage() string {
	return `play [flags]

Play one game between two players, human or AI. Players are given as
stayalive[:DEPTH], random[:SEED], breaker:KIND[:AFTER] or human.
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	env := opt.MustEnv()
	flags.StringVar(&c.p1, "p1", "human", "first player")
	flags.StringVar(&c.p2, "p2", "stayalive", "second player")
	flags.StringVar(&c.name1, "name1", "one", "first player's name")
	flags.StringVar(&c.name2, "name2", "two", "second player's name")
	flags.DurationVar(&c.limit, "limit", env.Timeout, "AI time limit per call (0 for none)")
	flags.StringVar(&c.logLevel, "log", env.LogLevel, "log level")
	flags.BoolVar(&c.verbose, "v", false, "show the board after every turn")
	c.rules.AddFlags(flags)
	c.players.AddFlags(flags, env)
}

func (c *Command) seat(name, spec string) ai.Player {
	p, err := c.players.Parse(name, spec)
	if err != nil {
		log.Fatal(err)
	}
	if spec != "human" && c.limit > 0 {
		p = referee.TimeLimited(p, c.limit)
	}
	return p
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	logger, err := opt.Logger(os.Stderr, c.logLevel)
	if err != nil {
		log.Println(err)
		return subcommands.ExitUsageError
	}
	c.players.Log = logger
	c.players.In = bufio.NewReader(os.Stdin)
	c.players.Out = os.Stdout

	g, err := referee.NewGame(
		referee.Config{Board: c.rules.Config(), Log: logger},
		c.seat(c.name1, c.p1),
		c.seat(c.name2, c.p2),
	)
	if err != nil {
		log.Println(err)
		return subcommands.ExitUsageError
	}
	for g.State() != referee.Terminal {
		if err := g.Step(ctx); err != nil {
			log.Println(err)
			return subcommands.ExitFailure
		}
		if c.verbose && g.State() == referee.InProgress {
			fmt.Println()
			referee.Render(os.Stdout, g.Board())
		}
	}
	r, err := g.Run(ctx)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	fmt.Println()
	referee.Render(os.Stdout, g.Board())
	fmt.Printf("%s beats %s (%s) after %d turns\n", r.Winner, r.Loser, r.Reason, r.Turns)
	return subcommands.ExitSuccess
}
