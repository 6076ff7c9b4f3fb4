// Package imageview hosts the shared logger for the image view packages.
//
// The widget itself lives in package widget, the Gio adapter in
// widget/material and the drawing surfaces in canvas and canvas/raster.
package imageview

import (
	"context"
	"sync/atomic"

	"golang.org/x/exp/slog"
)

// nopHandler discards every record. Enabled reports false so callers skip
// building attributes.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var logger atomic.Pointer[slog.Logger]

func init() {
	logger.Store(slog.New(nopHandler{}))
}

// SetLogger configures the logger used by all imageview packages.
// Logging is off by default. Pass nil to silence it again.
//
// Levels in use:
//   - slog.LevelDebug: measurement results, scaler cache misses, skipped paints
//   - slog.LevelWarn: host misconfiguration, such as a non-bitmap drawable
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	logger.Store(l)
}

// Logger returns the current logger.
func Logger() *slog.Logger {
	return logger.Load()
}
