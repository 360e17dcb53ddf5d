package host

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/google/subcommands"
	"github.com/rs/zerolog"

	"github.com/nelhage/santorini/ai"
	"github.com/nelhage/santorini/cmd/internal/opt"
	"github.com/nelhage/santorini/logs"
	"github.com/nelhage/santorini/referee"
	"github.com/nelhage/santorini/relay"
)

type Command struct {
	addr      string
	games     int
	local     string
	localName string
	limit     time.Duration
	db        string
	logLevel  string
	rules     opt.Rules
	players   opt.Players

	remote []*relay.Proxy
}

func (*Command) Name() string     { return "host" }
func (*Command) Synopsis() string { return "Referee a series for players joining over websockets" }
func (*Command) Usage() string {
	return `host [flags]

Listen for players on ws://ADDR/join/NAME and referee a best-of-N
series between the first two to join. With -local, one seat is taken
by a local AI and only one remote player is awaited.
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	env := opt.MustEnv()
	flags.StringVar(&c.addr, "addr", env.Addr, "listen address")
	flags.IntVar(&c.games, "games", 3, "games in the series")
	flags.StringVar(&c.local, "local", "", "local player spec")
	flags.StringVar(&c.localName, "local-name", "host", "local player's name")
	flags.DurationVar(&c.limit, "limit", env.Timeout, "time limit per player call (0 for none)")
	flags.StringVar(&c.db, "db", env.DB, "sqlite database to record results in")
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
	c.players.Log = logger

	hub := relay.NewHub(relay.HubConfig{Log: logger})
	defer hub.Close()
	srv := &http.Server{Addr: c.addr, Handler: hub}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()
	defer srv.Shutdown(context.Background())
	logger.Info().Str("addr", c.addr).Msg("waiting for players")

	seats, err := c.seat(ctx, hub, logger)
	defer func() {
		for _, p := range c.remote {
			p.Close()
		}
	}()
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	cfg := referee.Config{Board: c.rules.Config(), Log: logger}
	start := time.Now()
	s, err := referee.BestOfN(ctx, cfg, seats[0], seats[1], c.games)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	if c.db != "" {
		repo, err := logs.Open(c.db)
		if err != nil {
			log.Fatal(err)
		}
		defer repo.Close()
		if _, err := repo.RecordSeries(start, seats[0].Name(), seats[1].Name(), c.games, cfg.Board, s); err != nil {
			log.Println(err)
			return subcommands.ExitFailure
		}
	}
	winner := s.Winner
	if winner == "" {
		winner = "nobody (tie)"
	}
	fmt.Printf("%s wins the series %d-%d\n", winner,
		s.Wins[seats[0].Name()], s.Wins[seats[1].Name()])
	return subcommands.ExitSuccess
}

func (c *Command) seat(ctx context.Context, hub *relay.Hub, logger zerolog.Logger) ([2]ai.Player, error) {
	var seats [2]ai.Player
	n := 0
	if c.local != "" {
		p, err := c.players.Parse(c.localName, c.local)
		if err != nil {
			return seats, err
		}
		seats[n] = p
		n++
	}
	for ; n < 2; n++ {
		p, err := hub.Accept(ctx)
		if err != nil {
			return seats, err
		}
		c.remote = append(c.remote, p)
		var seat ai.Player = p
		if c.limit > 0 {
			seat = referee.TimeLimited(seat, c.limit)
		}
		seats[n] = seat
	}
	if seats[0].Name() == seats[1].Name() {
		return seats, fmt.Errorf("%w: %q", referee.ErrSameName, seats[0].Name())
	}
	logger.Info().
		Str("p1", seats[0].Name()).
		Str("p2", seats[1].Name()).
		Msg("seated")
	return seats, nil
}
