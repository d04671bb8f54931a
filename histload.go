package histload

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/xerrors"
)

// Runner runs the extract, validate, clean and load pipeline for one
// workbook layout. Execution is fully sequential; the column loop is
// the only place a per-meter failure is contained.
type Runner struct {
	layout    *Layout
	parser    Parser
	extractor Extractor
	loader    Loader
	notifier  Notifier

	dryRun        bool
	prettyLogging bool
	logLevel      zerolog.Level
	logger        zerolog.Logger
}

// New builds a Runner for the given layout and parser. A Loader is
// required unless WithDryRun is set.
func New(layout *Layout, parser Parser, opts ...Option) (*Runner, error) {
	if err := layout.validate(); err != nil {
		return nil, err
	}
	if parser == nil {
		return nil, xerrors.New("parser is required")
	}

	r := &Runner{
		layout:    layout,
		parser:    parser,
		extractor: NewFileExtractor(),
		logLevel:  zerolog.InfoLevel,
	}

	for _, o := range opts {
		if err := o.apply(r); err != nil {
			return nil, err
		}
	}

	if r.loader == nil && !r.dryRun {
		return nil, xerrors.New("loader is required unless running dry")
	}

	var w io.Writer = os.Stdout
	if r.prettyLogging {
		w = zerolog.ConsoleWriter{Out: os.Stdout}
	}
	r.logger = zerolog.New(w).Level(r.logLevel).With().Timestamp().Logger()

	return r, nil
}

// Run processes one workbook and returns the per-meter report. A header
// mismatch or garbled column skips that meter and continues; a missing
// workbook, an absent sheet or a write failure ends the run with an
// error. Meters committed before a write failure stay committed.
func (r *Runner) Run(ctx context.Context, src Source) (*Report, error) {
	ctx = withStartedTime(ctx)
	ctx = r.logger.WithContext(ctx)
	l := log.Ctx(ctx)

	l.Info().Str("workbook", src.Path).Str("sheet", r.layout.Sheet).Msg("run started")

	reader, closer, err := r.extractor.Extract(ctx, src)
	if err != nil {
		return nil, xerrors.Errorf("failed to extract: %w", err)
	}
	defer closer()

	table, err := r.parser(ctx, reader)
	if err != nil {
		return nil, xerrors.Errorf("failed to parse workbook: %w", err)
	}

	report := &Report{Source: src}

	for _, mc := range r.layout.Meters {
		if err := checkHeader(table, r.layout, mc); err != nil {
			l.Warn().Str("meter", mc.Meter).Msg(err.Error())
			report.Results = append(report.Results, ColumnResult{
				Meter:   mc.Meter,
				Skipped: true,
				Reason:  err.Error(),
			})
			continue
		}

		readings, dropped := cleanColumn(table, r.layout, mc)
		if dropped > 0 {
			l.Warn().Str("meter", mc.Meter).Int("dropped", dropped).Msg("dropped rows that failed cleaning")
		}

		if len(readings) == 0 {
			report.Results = append(report.Results, ColumnResult{
				Meter:   mc.Meter,
				Skipped: true,
				Reason:  "no rows left after cleaning",
			})
			continue
		}

		if r.dryRun {
			l.Info().Str("meter", mc.Meter).Int("rows", len(readings)).Msg("dry run, not inserting")
			report.Results = append(report.Results, ColumnResult{Meter: mc.Meter, Cleaned: len(readings)})
			continue
		}

		if err := r.loader.Load(ctx, mc.Meter, readings); err != nil {
			report.Results = append(report.Results, ColumnResult{
				Meter:   mc.Meter,
				Cleaned: len(readings),
				Skipped: true,
				Reason:  err.Error(),
			})
			r.notify(ctx, report)

			return report, xerrors.Errorf("failed to load %s: %w", mc.Meter, err)
		}

		l.Info().Str("meter", mc.Meter).Int("rows", len(readings)).Msg("loaded")
		report.Results = append(report.Results, ColumnResult{
			Meter:    mc.Meter,
			Cleaned:  len(readings),
			Inserted: len(readings),
		})
	}

	r.notify(ctx, report)

	if started, ok := startedTimeFrom(ctx); ok {
		l.Info().
			Dur("elapsed", time.Since(started)).
			Int("inserted", report.TotalInserted()).
			Int("skipped", len(report.SkippedMeters())).
			Msg("run finished")
	}

	return report, nil
}

func (r *Runner) notify(ctx context.Context, report *Report) {
	if r.notifier == nil {
		return
	}

	if err := r.notifier.Notify(ctx, report); err != nil {
		log.Ctx(ctx).Error().Msgf("failed to notify: %v", err)
	}
}
