package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/dako7777777/rental-bidding-tool/internal/infrastructure/config"
)

// New builds the process logger from the logging section. The returned
// closer releases the log file when output is "file" and is a no-op otherwise.
func New(cfg config.LoggingConfig) (zerolog.Logger, io.Closer, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	out, closer, err := output(cfg)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, err
	}
	if cfg.Format == "text" {
		out = zerolog.ConsoleWriter{Out: out, NoColor: cfg.Output == "file"}
	}

	ctx := zerolog.New(out).Level(level).With().Timestamp()
	if cfg.IncludeCaller {
		ctx = ctx.Caller()
	}
	return ctx.Logger(), closer, nil
}

// NewWriter builds a logger writing to w, used by tests and embedded callers.
func NewWriter(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

func output(cfg config.LoggingConfig) (io.Writer, io.Closer, error) {
	switch cfg.Output {
	case "stdout":
		return os.Stdout, nopCloser{}, nil
	case "file":
		f, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		return f, f, nil
	default:
		return os.Stderr, nopCloser{}, nil
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
