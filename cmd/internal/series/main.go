package series

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"github.com/google/subcommands"
	"golang.org/x/sync/errgroup"

	"github.com/nelhage/santorini/ai"
	"github.com/nelhage/santorini/cmd/internal/opt"
	"github.com/nelhage/santorini/logs"
	"github.com/nelhage/santorini/referee"
)

type Command struct {
	p1, p2   string
	name1    string
	name2    string
	games    int
	series   int
	parallel int
	limit    time.Duration
	db       string
	logLevel string
	rules    opt.Rules
	players  opt.Players
}

func (*Command) Name() string     { return "series" }
func (*Command) Synopsis() string { return "Play best-of-N series between two AIs and report results" }
func (*Command) Usage() string {
	return `series [flags]

Play -series independent best-of-N series between -p1 and -p2, several
at a time, optionally recording every result in a sqlite database.
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	env := opt.MustEnv()
	flags.StringVar(&c.p1, "p1", "stayalive", "first player")
	flags.StringVar(&c.p2, "p2", "random", "second player")
	flags.StringVar(&c.name1, "name1", "one", "first player's name")
	flags.StringVar(&c.name2, "name2", "two", "second player's name")
	flags.IntVar(&c.games, "games", 3, "games per series")
	flags.IntVar(&c.series, "series", 1, "number of series")
	flags.IntVar(&c.parallel, "parallel", 4, "series to run at once")
	flags.DurationVar(&c.limit, "limit", env.Timeout, "time limit per player call (0 for none)")
	flags.StringVar(&c.db, "db", env.DB, "sqlite database to record results in")
	flags.StringVar(&c.logLevel, "log", env.LogLevel, "log level")
	c.rules.AddFlags(flags)
	c.players.AddFlags(flags, env)
}

// seat builds fresh players for one series; players carry state
// between games but never across series.
func (c *Command) seat() (ai.Player, ai.Player, error) {
	var out [2]ai.Player
	for i, s := range [2][2]string{{c.name1, c.p1}, {c.name2, c.p2}} {
		p, err := c.players.Parse(s[0], s[1])
		if err != nil {
			return nil, nil, err
		}
		if c.limit > 0 {
			p = referee.TimeLimited(p, c.limit)
		}
		out[i] = p
	}
	return out[0], out[1], nil
}

type outcome struct {
	id     int64
	series referee.Series
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	logger, err := opt.Logger(os.Stderr, c.logLevel)
	if err != nil {
		log.Println(err)
		return subcommands.ExitUsageError
	}
	c.players.Log = logger
	if c.p1 == "human" || c.p2 == "human" {
		log.Println("series does not seat humans")
		return subcommands.ExitUsageError
	}

	var repo *logs.Repository
	if c.db != "" {
		if repo, err = logs.Open(c.db); err != nil {
			log.Fatal(err)
		}
		defer repo.Close()
	}

	cfg := referee.Config{Board: c.rules.Config(), Log: logger}
	out := make([]outcome, c.series)
	grp, ctx := errgroup.WithContext(ctx)
	grp.SetLimit(c.parallel)
	for i := range out {
		grp.Go(func() error {
			p1, p2, err := c.seat()
			if err != nil {
				return err
			}
			start := time.Now()
			s, err := referee.BestOfN(ctx, cfg, p1, p2, c.games)
			if err != nil {
				return fmt.Errorf("series %d: %w", i+1, err)
			}
			out[i].series = s
			if repo != nil {
				id, err := repo.RecordSeries(start, c.name1, c.name2, c.games, cfg.Board, s)
				if err != nil {
					return fmt.Errorf("record series %d: %w", i+1, err)
				}
				out[i].id = id
			}
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	tw := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "series\tid\t%s\t%s\tgames\twinner\n", c.name1, c.name2)
	var total [2]int
	for i, o := range out {
		w1, w2 := o.series.Wins[c.name1], o.series.Wins[c.name2]
		switch o.series.Winner {
		case c.name1:
			total[0]++
		case c.name2:
			total[1]++
		}
		winner := o.series.Winner
		if winner == "" {
			winner = "(tie)"
		}
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%d\t%s\n", i+1, o.id, w1, w2, len(o.series.Results), winner)
	}
	fmt.Fprintf(tw, "sum\t\t%d\t%d\t\t\n", total[0], total[1])
	tw.Flush()
	return subcommands.ExitSuccess
}
