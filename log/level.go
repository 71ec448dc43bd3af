package log

import (
	"fmt"
	"strings"
)

// Level is the minimum severity a Logger emits.
type Level uint

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = [...]string{
	LevelDebug: "debug",
	LevelInfo:  "info",
	LevelWarn:  "warn",
	LevelError: "error",
}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return fmt.Sprintf("Level(%d)", uint(l))
}

// ParseLevel parses a level name, ignoring case.
func ParseLevel(s string) (Level, error) {
	for l, name := range levelNames {
		if strings.EqualFold(s, name) {
			return Level(l), nil
		}
	}
	return 0, fmt.Errorf("log: unknown level %q", s)
}

// Format selects the encoding of emitted records.
type Format uint

const (
	FmtLogfmt Format = iota
	FmtJSON
)

var formatNames = [...]string{
	FmtLogfmt: "logfmt",
	FmtJSON:   "json",
}

func (f Format) String() string {
	if int(f) < len(formatNames) {
		return formatNames[f]
	}
	return fmt.Sprintf("Format(%d)", uint(f))
}

// ParseFormat parses a format name, ignoring case.
func ParseFormat(s string) (Format, error) {
	for f, name := range formatNames {
		if strings.EqualFold(s, name) {
			return Format(f), nil
		}
	}
	return 0, fmt.Errorf("log: unknown format %q", s)
}
