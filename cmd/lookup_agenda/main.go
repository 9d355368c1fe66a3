// Command lookup_agenda prints the agenda sessions matching a query,
// followed by their subsessions.
//
// Usage:
//
//	lookup_agenda [-db path] [-log-level level] <column> <value...>
//
// column is one of date, time_start, time_end, title, location,
// description or speaker. The remaining arguments are joined with single
// spaces to form the value.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/andrewkroh/go-agenda/agenda"
	"github.com/andrewkroh/go-agenda/agendasql"
	"github.com/andrewkroh/go-agenda/internal/config"
	"github.com/andrewkroh/go-agenda/internal/logging"
)

var errArgCount = errors.New("Expected 2 or more additional arguments with column and value")

func main() {
	// A missing .env file is not an error.
	_ = godotenv.Load()

	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stdout, "Error occurred: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out, logOut io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("lookup_agenda", flag.ContinueOnError)
	fs.SetOutput(logOut)
	fs.StringVar(&cfg.Store.Path, "db", cfg.Store.Path, "Path to the agenda store")
	fs.StringVar(&cfg.Logging.Level, "log-level", cfg.Logging.Level, "Log level (debug, info, warn, error)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}

	if fs.NArg() < 2 {
		return errArgCount
	}
	column := fs.Arg(0)
	if err := agenda.ValidateColumn(column); err != nil {
		return err
	}
	value := strings.Join(fs.Args()[1:], " ")

	logger := logging.Setup(cfg.Logging.Level, cfg.Logging.Format, logOut)
	ctx, _ = logging.WithRun(logging.NewContext(ctx, logger), "lookup")

	tables, err := agendasql.OpenTables(ctx, cfg.Store.Path, agendasql.WithLogger(logging.FromContext(ctx)))
	if err != nil {
		return err
	}
	defer tables.Close()

	records, err := agenda.Lookup(ctx, tables, column, value)
	if err != nil {
		return err
	}
	return agenda.Render(out, records)
}
