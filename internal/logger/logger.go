// Package logger builds the diagnostic stream used for engine debug tracing.
//
// Output is discarded unless tracing is enabled; the engine keeps one logger
// per Engine and swaps it when tracing is toggled.
package logger

import (
	"io"
	"log/slog"
	"os"
)

// Discard is a logger that drops every record.
var Discard = slog.New(slog.DiscardHandler)

// Options configures a diagnostic logger.
type Options struct {
	Enabled bool         // If false, all output is discarded
	Writer  io.Writer    // Destination. Default: os.Stderr
	Level   slog.Leveler // Minimum level. Default: slog.LevelDebug
	JSON    bool         // Emit JSON records instead of key=value text
}

// New returns a logger for opts.
func New(opts Options) *slog.Logger {
	if !opts.Enabled {
		return Discard
	}

	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	var level slog.Leveler = slog.LevelDebug
	if opts.Level != nil {
		level = opts.Level
	}

	hopts := &slog.HandlerOptions{Level: level}
	if opts.JSON {
		return slog.New(slog.NewJSONHandler(w, hopts))
	}
	return slog.New(slog.NewTextHandler(w, hopts))
}
