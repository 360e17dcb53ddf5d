package join

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/google/subcommands"

	"github.com/nelhage/santorini/cmd/internal/opt"
	"github.com/nelhage/santorini/relay"
	"github.com/nelhage/santorini/wire"
)

type Command struct {
	url      string
	name     string
	player   string
	logLevel string
	rules    opt.Rules
	players  opt.Players
}

func (*Command) Name() string     { return "join" }
func (*Command) Synopsis() string { return "Join a hosted game as a remote player" }
func (*Command) Usage() string {
	return `join [flags]

Connect to a host started with "santorini host" and play every game it
referees with the given player until the host hangs up.
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	env := opt.MustEnv()
	flags.StringVar(&c.url, "url", "ws://"+env.Addr, "host URL")
	flags.StringVar(&c.name, "name", "guest", "name to join as (letters only)")
	flags.StringVar(&c.player, "player", "stayalive", "player spec")
	flags.StringVar(&c.logLevel, "log", env.LogLevel, "log level")
	c.rules.AddFlags(flags)
	c.players.AddFlags(flags, env)
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	logger, err := opt.Logger(os.Stderr, c.logLevel)
	if err != nil {
		log.Println(err)
		return subcommands.ExitUsageError
	}
	name, err := wire.NormalizeName(c.name)
	if err != nil {
		log.Println(err)
		return subcommands.ExitUsageError
	}
	c.players.Log = logger
	p, err := c.players.Parse(name, c.player)
	if err != nil {
		log.Println(err)
		return subcommands.ExitUsageError
	}

	conn, err := relay.Dial(ctx, c.url, name)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	logger.Info().Str("url", c.url).Str("name", name).Msg("joined")
	err = relay.Serve(ctx, conn, p, relay.ClientConfig{Board: c.rules.Config(), Log: logger})
	if err != nil && !relay.IsClosed(err) {
		log.Println(err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
