// Package logging configures colored structured logging with tint.
//
//	logging.Setup(os.Getenv("LOG_LEVEL"))
//	logging.SetupWithLevel(slog.LevelDebug)
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Setup installs a tint handler on stderr as the default logger at the
// named level (debug, info, warn, error). Unknown names mean info.
func Setup(level string) {
	SetupWithLevel(ParseLevel(level))
}

// SetupWithLevel installs a tint handler on stderr at the given level.
func SetupWithLevel(level slog.Level) {
	slog.SetDefault(New(os.Stderr, level))
}

// New returns a tint logger writing to w. Color is disabled unless w is a
// terminal-backed *os.File.
func New(w io.Writer, level slog.Level) *slog.Logger {
	f, isFile := w.(*os.File)
	noColor := !isFile || os.Getenv("NO_COLOR") != ""
	if isFile && !noColor {
		if fi, err := f.Stat(); err != nil || fi.Mode()&os.ModeCharDevice == 0 {
			noColor = true
		}
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		AddSource:  level <= slog.LevelDebug,
		NoColor:    noColor,
	}))
}

// ParseLevel maps a level name to a slog.Level. Unknown names mean info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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
