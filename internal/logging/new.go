package logging

import (
	"io"
	"strings"
)

// Output formats accepted by New.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
	FormatText    = "text"
)

// New picks the backend for format: zerolog for "console" and "json",
// log/slog's key=value text handler for "text". Unknown formats fall back
// to console.
func New(w io.Writer, level, format string) Logger {
	switch strings.ToLower(format) {
	case FormatText:
		return NewSlog(w, level, FormatText)
	case FormatJSON:
		return NewZerolog(w, level, FormatJSON)
	default:
		return NewZerolog(w, level, FormatConsole)
	}
}
