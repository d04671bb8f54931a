// Command histload loads historical meter readings from a workbook into
// a TimescaleDB hypertable.
//
// Usage:
//
//	histload <workbook>
//
// Connection parameters come from TIMESCALE_* environment variables;
// see config.go for the full list and defaults.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	histload "github.com/LuisGuar/historical-data-to-timescaledb"
	"github.com/LuisGuar/historical-data-to-timescaledb/contrib/layouts"
	_ "github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/xerrors"
)

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "histload: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg := loadConfig()
	if len(os.Args) > 1 {
		cfg.WorkbookPath = os.Args[1]
	}

	if err := cfg.validate(); err != nil {
		return err
	}

	layout := layouts.WaterMeters()
	if cfg.Sheet != "" {
		layout.Sheet = cfg.Sheet
	}

	opts := []histload.Option{histload.WithLogLevel(cfg.LogLevel)}
	if cfg.Pretty {
		opts = append(opts, histload.WithPrettyLogging())
	}
	if cfg.SlackToken != "" {
		opts = append(opts, histload.WithNotifier(&histload.SlackNotifier{
			Token:   cfg.SlackToken,
			Channel: cfg.SlackChannel,
		}))
	}

	if cfg.DryRun {
		opts = append(opts, histload.WithDryRun())
	} else {
		db, err := sql.Open("pgx", cfg.dsn())
		if err != nil {
			return xerrors.Errorf("failed to open database: %w", err)
		}
		defer db.Close()

		loader := histload.NewTimescaleLoader(db, cfg.Schema, cfg.Table)
		if err := loader.Ping(ctx); err != nil {
			return err
		}

		opts = append(opts, histload.WithLoader(loader))
	}

	runner, err := histload.New(layout, parserFor(cfg.WorkbookPath, layout.Sheet), opts...)
	if err != nil {
		return err
	}

	report, err := runner.Run(ctx, histload.Source{Path: cfg.WorkbookPath})
	if report != nil {
		fmt.Print(report.Summary())
	}

	return err
}

// parserFor picks a parser from the workbook extension. The default is
// xlsx; legacy .xls exports and .csv dumps of the sheet also work.
func parserFor(path, sheet string) histload.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xls":
		return histload.XLSParser(sheet)
	case ".csv":
		return histload.CSVParser(nil)
	default:
		return histload.XLSXParser(sheet)
	}
}
