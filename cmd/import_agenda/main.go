// Command import_agenda loads a conference agenda spreadsheet (.xls) into
// the agenda store.
//
// Usage:
//
//	import_agenda [-db path] [-log-level level] agenda.xls
//
// Settings are read from the environment (and a .env file in the working
// directory): AGENDA_DB_PATH, AGENDA_SKIP_ROWS, AGENDA_SHEET, LOG_LEVEL and
// LOG_FORMAT. Flags override the environment.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"

	"github.com/andrewkroh/go-agenda/agenda"
	"github.com/andrewkroh/go-agenda/agendareader"
	"github.com/andrewkroh/go-agenda/agendasql"
	"github.com/andrewkroh/go-agenda/internal/config"
	"github.com/andrewkroh/go-agenda/internal/logging"
)

var errArgCount = errors.New("Expected 1 additional argument with xls file path")

func main() {
	// A missing .env file is not an error.
	_ = godotenv.Load()

	if err := run(context.Background(), os.Args[1:], os.Stderr); err != nil {
		fmt.Fprintf(os.Stdout, "Error occurred: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, logOut io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("import_agenda", flag.ContinueOnError)
	fs.SetOutput(logOut)
	fs.StringVar(&cfg.Store.Path, "db", cfg.Store.Path, "Path to the agenda store")
	fs.StringVar(&cfg.Logging.Level, "log-level", cfg.Logging.Level, "Log level (debug, info, warn, error)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}

	if fs.NArg() != 1 {
		return errArgCount
	}
	path := fs.Arg(0)
	if err := agendareader.ValidatePath(path); err != nil {
		return err
	}

	logger := logging.Setup(cfg.Logging.Level, cfg.Logging.Format, logOut)
	ctx, runID := logging.WithRun(logging.NewContext(ctx, logger), "import")
	log := logging.FromContext(ctx)
	log.Info("import started", "file", path, "db", cfg.Store.Path)

	rows, err := agendareader.Read(path,
		agendareader.WithSkipRows(cfg.Reader.SkipRows),
		agendareader.WithSheet(cfg.Reader.Sheet))
	if err != nil {
		return err
	}
	log.Debug("read agenda rows", "rows", len(rows))

	tables, err := agendasql.OpenTables(ctx, cfg.Store.Path, agendasql.WithLogger(log))
	if err != nil {
		return err
	}
	defer tables.Close()

	res, err := agenda.Import(ctx, tables, rows)
	if err != nil {
		return err
	}

	log.Info("import finished",
		"run_id", runID,
		"sessions", res.Sessions,
		"speakers_created", res.SpeakersCreated,
		"speakers_reused", res.SpeakersReused,
		"links", res.Links)
	return nil
}
