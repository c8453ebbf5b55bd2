package beratools

import (
	"io"
	"log/slog"
	"sync/atomic"
)

// logger is shared by every package of the module. It starts out as a
// discarding logger, so library use is silent unless SetLogger is called.
var logger atomic.Pointer[slog.Logger]

var silent = slog.New(slog.DiscardHandler)

func init() { logger.Store(silent) }

// SetLogger installs l for all bera-tools packages; nil restores the silent
// default. Safe for concurrent use with Logger.
//
// Debug carries per-step pipeline diagnostics (grid sizes, skeleton parts,
// regeneration depth), Info the batch lifecycle and Warn per-feature
// fallbacks to the seed line.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silent
	}
	logger.Store(l)
}

// Logger returns the installed logger. Packages call it at log time rather
// than caching it.
func Logger() *slog.Logger { return logger.Load() }

// NewTextLogger returns a key=value logger writing to w at Info level, or
// Debug when verbose is set.
func NewTextLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
