package serve

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net"
	"os"

	"github.com/google/subcommands"
	"google.golang.org/grpc"

	"github.com/nelhage/santorini/analysis"
	"github.com/nelhage/santorini/cmd/internal/opt"
)

type Command struct {
	port     int
	maxDepth int
	logLevel string
}

func (*Command) Name() string     { return "serve" }
func (*Command) Synopsis() string { return "Serve rules and search RPCs via GRPC" }
func (*Command) Usage() string {
	return `serve
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	flags.IntVar(&c.port, "port", 55430, "bind port")
	flags.IntVar(&c.maxDepth, "max-depth", 3, "deepest Score request to accept")
	flags.StringVar(&c.logLevel, "log", opt.MustEnv().LogLevel, "log level")
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	logger, err := opt.Logger(os.Stderr, c.logLevel)
	if err != nil {
		log.Println(err)
		return subcommands.ExitUsageError
	}
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", c.port))
	if err != nil {
		log.Fatalf("failed to listen: %v", err)
	}
	logger.Info().Int("port", c.port).Msg("listening")
	grpcServer := grpc.NewServer(grpc.UnaryInterceptor(analysis.LogUnary(logger)))
	analysis.Register(grpcServer, &analysis.Server{MaxDepth: c.maxDepth})

	go func() {
		<-ctx.Done()
		grpcServer.GracefulStop()
	}()
	if err := grpcServer.Serve(lis); err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
