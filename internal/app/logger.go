package app

import (
	"io"
	"log/slog"
)

// newLogger builds the generator's own logger from the -log-level and
// -log-format flags. Unknown levels fall back to info and any format other
// than "json" selects text. The global slog default is left untouched so
// parallel App instances in tests keep separate output.
func newLogger(levelStr, formatStr string, outW io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(levelStr)); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch formatStr {
	case "json":
		handler = slog.NewJSONHandler(outW, opts)
	default:
		handler = slog.NewTextHandler(outW, opts)
	}
	return slog.New(handler).With("app", "noisegridgo")
}
