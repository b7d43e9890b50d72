// Package xlog builds a [log/slog] handler from CLI-configurable level and
// format strings, the same shape of problem Config.Parse's callers face when
// wiring up a command-line tool around the converter.
package xlog

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Format selects a slog handler implementation.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

var (
	ErrUnknownLevel  = errors.New("unknown log level")
	ErrUnknownFormat = errors.New("unknown log format")
)

// AllLevelStrings lists the level names accepted by GetLevel, in ascending
// severity order.
func AllLevelStrings() []string {
	return []string{"debug", "info", "warn", "error"}
}

// AllFormatStrings lists the format names accepted by GetFormat.
func AllFormatStrings() []string {
	return []string{string(FormatText), string(FormatJSON)}
}

// GetLevel parses a level name into its slog.Level.
func GetLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownLevel, level)
}

// GetFormat parses a format name into its Format.
func GetFormat(format string) (Format, error) {
	switch Format(strings.ToLower(format)) {
	case FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// NewHandler builds a slog.Handler writing to w at the given level and
// format.
func NewHandler(w io.Writer, level slog.Level, format Format) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	if format == FormatJSON {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// NewHandlerFromStrings parses level and format and delegates to NewHandler.
func NewHandlerFromStrings(w io.Writer, level, format string) (slog.Handler, error) {
	lvl, err := GetLevel(level)
	if err != nil {
		return nil, err
	}
	frmt, err := GetFormat(format)
	if err != nil {
		return nil, err
	}
	return NewHandler(w, lvl, frmt), nil
}
