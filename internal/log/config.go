package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Level names the minimum severity a logger emits. Levels are string-backed
// so flag values round-trip without a lookup table.
type Level string

// Supported levels, lowest to highest severity
const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// ParseLevel maps a flag value onto a Level. The empty string means info.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return "", fmt.Errorf("unknown log level %q: use debug, info, warn, or error", s)
}

func (l Level) slogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Format selects the handler encoding
type Format string

// Supported formats
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat maps a flag value onto a Format. The empty string means text.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unknown log format %q: use text or json", s)
}

// Config holds the logger configuration
type Config struct {
	Level     Level
	Format    Format
	Output    io.Writer
	AddSource bool
}

// DefaultConfig logs at info level as text on stderr, keeping stdout free
// for command output
func DefaultConfig() Config {
	return Config{
		Level:  LevelInfo,
		Format: FormatText,
		Output: os.Stderr,
	}
}
