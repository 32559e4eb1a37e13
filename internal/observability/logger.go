package observability

import (
	"io"
	"log/slog"
	"strings"

	"github.com/couchcryptid/bird-survey-dashboard/internal/config"
)

// NewLoggerTo builds a logger from LOG_LEVEL and LOG_FORMAT that writes to w.
// It follows the shared observability.NewLogger conventions, which always
// write to stdout; commands that own stdout log elsewhere through this.
func NewLoggerTo(w io.Writer, cfg *config.Config) *slog.Logger {
	return newLogger(w, cfg.LogLevel, cfg.LogFormat)
}

func newLogger(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	if strings.EqualFold(format, "text") {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
