package opt

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"

	"github.com/nelhage/santorini/santorini"
)

// Env holds the defaults commands read from the environment. Flags
// override them.
type Env struct {
	Depth    int           `env:"SANTORINI_DEPTH" envDefault:"2"`
	Mode     string        `env:"SANTORINI_MODE" envDefault:"conservative"`
	Threads  int           `env:"SANTORINI_THREADS" envDefault:"1"`
	DB       string        `env:"SANTORINI_DB"`
	Addr     string        `env:"SANTORINI_ADDR" envDefault:"localhost:8080"`
	Timeout  time.Duration `env:"SANTORINI_TIMEOUT" envDefault:"30s"`
	LogLevel string        `env:"SANTORINI_LOG_LEVEL" envDefault:"info"`
}

func LoadEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return e, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}

// MustEnv is LoadEnv for use while setting flags, where there is no
// way to report an error.
func MustEnv() Env {
	e, err := LoadEnv()
	if err != nil {
		panic(err)
	}
	return e
}

// Logger returns a console logger at the named level.
func Logger(w io.Writer, level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), err
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).
		Level(lvl).
		With().Timestamp().
		Logger(), nil
}

type Rules struct {
	Rows, Cols, Workers int
}

func (r *Rules) AddFlags(flags *flag.FlagSet) {
	flags.IntVar(&r.Rows, "rows", 6, "board rows")
	flags.IntVar(&r.Cols, "cols", 6, "board columns")
	flags.IntVar(&r.Workers, "workers", 2, "workers per player")
}

func (r *Rules) Config() santorini.Config {
	return santorini.Config{Rows: r.Rows, Cols: r.Cols, Workers: r.Workers}
}
