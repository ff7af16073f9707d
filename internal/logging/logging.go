// Package logging builds the slog logger for each environment.
package logging

import (
	"io"
	"log/slog"
	"strings"

	"github.com/dom/whatnot-go/internal/config"
)

// New returns a text logger at debug level for local runs and a JSON logger
// otherwise. A non-empty level overrides the environment's default.
func New(env, level string, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if env == config.EnvLocal || env == config.EnvDev {
		opts.Level = slog.LevelDebug
	}

	if level != "" {
		var l slog.Level
		if err := l.UnmarshalText([]byte(strings.ToUpper(level))); err == nil {
			opts.Level = l
		}
	}

	switch env {
	case config.EnvDev, config.EnvProd:
		return slog.New(slog.NewJSONHandler(w, opts))
	default:
		return slog.New(slog.NewTextHandler(w, opts))
	}
}

// Discard drops everything. Used by tests and quiet CLI runs.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}
