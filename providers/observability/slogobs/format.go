package slogobs

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Format is the log output format.
type Format string

const (
	// FormatCompact prints one line per record with JSON-encoded attributes.
	FormatCompact Format = "compact"
	// FormatPretty prints attributes on indented lines below the message.
	FormatPretty Format = "pretty"
	// FormatJSON prints one JSON object per record.
	FormatJSON Format = "json"
)

// ParseFormat maps a case-insensitive name to a Format, defaulting to compact.
func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pretty":
		return FormatPretty
	case "json":
		return FormatJSON
	default:
		return FormatCompact
	}
}

// FormatFromEnv reads FLOWCANVAS_LOG_FORMAT, then LOG_FORMAT.
func FormatFromEnv() Format {
	if format := os.Getenv("FLOWCANVAS_LOG_FORMAT"); format != "" {
		return ParseFormat(format)
	}
	return ParseFormat(os.Getenv("LOG_FORMAT"))
}

// LevelFromEnv reads FLOWCANVAS_LOG_LEVEL, then LOG_LEVEL. Default INFO.
func LevelFromEnv() slog.Level {
	level := os.Getenv("FLOWCANVAS_LOG_LEVEL")
	if level == "" {
		level = os.Getenv("LOG_LEVEL")
	}
	if level == "" {
		return slog.LevelInfo
	}
	return ParseLevel(level)
}

// ParseLevel maps DEBUG, INFO, WARN/WARNING and ERROR (any case) to a
// slog.Level. Unknown values fall back to INFO with a warning on stderr.
func ParseLevel(level string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		fmt.Fprintf(os.Stderr, "Warning: unknown log level '%s', using INFO\n", level)
		return slog.LevelInfo
	}
}
