package flow

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled reports false so callers skip building attributes entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger shared by flow and its sub-packages.
// Nothing is logged by default. Pass nil to restore the silent default.
//
// Every record carries a message prefixed with the package that emitted
// it:
//   - "state: delegate attached" (Debug): a delegate was swapped in and the
//     stack's entries were replayed onto it.
//   - "rastercache: rasterized" (Debug): content was rendered into an
//     image, with its key and device size.
//   - "rastercache: not caching" (Warn for ErrSurfaceTooLarge, Debug for
//     singular matrices and empty bounds): rasterization failed and the
//     entry will not be retried until it is evicted.
//   - "rastercache: sweep" (Debug): entries unused during the frame were
//     evicted.
//   - "layer: frame done" (Debug): a LayerTree finished a frame, with the
//     eviction count and the number of live cache entries.
//
// Per-frame records are Debug so a handler at Info or above stays quiet
// while animating:
//
//	flow.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the logger installed by SetLogger. The state, rastercache
// and layer packages read it at each log site, so a logger set mid-frame
// takes effect on the next record.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
