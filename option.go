package histload

import (
	"github.com/rs/zerolog"
	"golang.org/x/xerrors"
)

// Option configures a Runner.
type Option interface {
	apply(*Runner) error
}

type optionFunc func(*Runner) error

func (f optionFunc) apply(r *Runner) error {
	return f(r)
}

// WithPrettyLogging configures the Runner to print human friendly logs.
func WithPrettyLogging() Option {
	return optionFunc(func(r *Runner) error {
		r.prettyLogging = true
		return nil
	})
}

// WithLogLevel sets the log level. Accepts zerolog level strings such
// as "debug", "info" or "warn".
func WithLogLevel(level string) Option {
	return optionFunc(func(r *Runner) error {
		l, err := zerolog.ParseLevel(level)
		if err != nil {
			return xerrors.Errorf("invalid log level %q: %w", level, err)
		}

		r.logLevel = l
		return nil
	})
}

// WithLoader sets the destination loader.
func WithLoader(l Loader) Option {
	return optionFunc(func(r *Runner) error {
		r.loader = l
		return nil
	})
}

// WithExtractor replaces the default filesystem extractor.
func WithExtractor(e Extractor) Option {
	return optionFunc(func(r *Runner) error {
		r.extractor = e
		return nil
	})
}

// WithNotifier attaches a run-report notifier.
func WithNotifier(n Notifier) Option {
	return optionFunc(func(r *Runner) error {
		r.notifier = n
		return nil
	})
}

// WithDryRun cleans and reports without writing to the database.
func WithDryRun() Option {
	return optionFunc(func(r *Runner) error {
		r.dryRun = true
		return nil
	})
}
