package standings

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"github.com/google/subcommands"

	"github.com/nelhage/santorini/cmd/internal/opt"
	"github.com/nelhage/santorini/logs"
)

type Command struct {
	db     string
	series int64
}

func (*Command) Name() string     { return "standings" }
func (*Command) Synopsis() string { return "Summarize results recorded by series and host" }
func (*Command) Usage() string {
	return `standings [-db FILE] [-series ID]

Print per-player win/loss totals from a results database, or the games
of a single series.
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	flags.StringVar(&c.db, "db", opt.MustEnv().DB, "sqlite results database")
	flags.Int64Var(&c.series, "series", 0, "show the games of this series instead")
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.db == "" {
		log.Println("Must supply a database with -db or SANTORINI_DB")
		return subcommands.ExitUsageError
	}
	if _, err := os.Stat(c.db); err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	repo, err := logs.Open(c.db)
	if err != nil {
		log.Fatal(err)
	}
	defer repo.Close()

	tw := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	defer tw.Flush()
	if c.series != 0 {
		s, err := repo.Series(c.series)
		if err != nil {
			log.Println(err)
			return subcommands.ExitFailure
		}
		games, err := repo.Games(c.series)
		if err != nil {
			log.Println(err)
			return subcommands.ExitFailure
		}
		fmt.Fprintf(tw, "series %d: %s vs %s, winner %q\n", s.ID, s.Player1, s.Player2, s.Winner)
		fmt.Fprintf(tw, "game\twinner\tloser\treason\tturns\n")
		for _, g := range games {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\n", g.Seq, g.Winner, g.Loser, g.Reason, g.Turns)
		}
		return subcommands.ExitSuccess
	}

	st, err := repo.Standings()
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(tw, "player\twins\tlosses\tforfeits\n")
	for _, s := range st {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\n", s.Player, s.Wins, s.Losses, s.Forfeits)
	}
	return subcommands.ExitSuccess
}
