package textrun

import (
	"log/slog"

	"github.com/gogpu/textrun/internal/logx"
)

// SetLogger configures the logger for textrun and all its sub-packages.
// By default textrun produces no log output.
//
// SetLogger is safe for concurrent use. Pass nil to restore the default
// silent behavior.
//
// Log levels used by textrun:
//   - [slog.LevelDebug]: segmentation and shaping diagnostics (run counts,
//     synthesis decisions, face lifetimes)
//   - [slog.LevelWarn]: non-fatal issues (bidi failures, glyphs without
//     outline data)
//
// Example:
//
//	textrun.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	logx.Set(l)
}

// Logger returns the current logger used by textrun.
func Logger() *slog.Logger {
	return logx.L()
}
