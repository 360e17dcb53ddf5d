package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"github.com/google/subcommands"

	"github.com/nelhage/santorini/cmd/internal/host"
	"github.com/nelhage/santorini/cmd/internal/join"
	"github.com/nelhage/santorini/cmd/internal/play"
	"github.com/nelhage/santorini/cmd/internal/serve"
	"github.com/nelhage/santorini/cmd/internal/series"
	"github.com/nelhage/santorini/cmd/internal/standings"
)

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")

	subcommands.Register(&play.Command{}, "")
	subcommands.Register(&series.Command{}, "")
	subcommands.Register(&standings.Command{}, "")

	subcommands.Register(&host.Command{}, "remote")
	subcommands.Register(&join.Command{}, "remote")
	subcommands.Register(&serve.Command{}, "remote")

	flag.Parse()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	status := subcommands.Execute(ctx)
	stop()
	os.Exit(int(status))
}
