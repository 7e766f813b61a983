package gradmesh

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// discard drops every record. Enabled reports false, so call sites never
// build their attributes.
type discard struct{}

func (discard) Enabled(context.Context, slog.Level) bool  { return false }
func (discard) Handle(context.Context, slog.Record) error { return nil }
func (d discard) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discard) WithGroup(string) slog.Handler           { return d }

// silent is the logger in effect until SetLogger installs another.
var silent = slog.New(discard{})

var current atomic.Pointer[slog.Logger]

func init() {
	current.Store(silent)
}

// SetLogger routes gradmesh log records to l. Passing nil restores the
// default, which discards everything. It may be called at any time,
// including while previews or exports are rendering.
//
// Levels:
//   - [slog.LevelDebug]: preview passes (trigger, display size, point count)
//   - [slog.LevelInfo]: completed exports and logical resolution changes
//   - [slog.LevelWarn]: rejected mutations and failed exports
//
// Example:
//
//	gradmesh.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silent
	}
	current.Store(l)
}

// Logger returns the logger installed by SetLogger. cmd/gradmesh logs
// through it too, so one call configures both.
func Logger() *slog.Logger {
	return current.Load()
}

// debugEnabled reports whether debug records would be kept. Preview passes
// run on every mutation, so they check this before formatting sizes.
func debugEnabled() bool {
	return Logger().Enabled(context.Background(), slog.LevelDebug)
}
