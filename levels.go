package quill

import (
	"strings"

	"github.com/pkg/errors"
)

// Level is the severity of a log message. Levels are totally ordered by
// urgency; LevelOff is a sentinel threshold meaning "never log".
type Level int32

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelCritical
	LevelOff
)

var levelNames = [...]string{
	LevelTrace:    "trace",
	LevelDebug:    "debug",
	LevelInfo:     "info",
	LevelWarn:     "warn",
	LevelError:    "error",
	LevelCritical: "critical",
	LevelOff:      "off",
}

var levelShortNames = [...]string{
	LevelTrace:    "T",
	LevelDebug:    "D",
	LevelInfo:     "I",
	LevelWarn:     "W",
	LevelError:    "E",
	LevelCritical: "C",
	LevelOff:      "O",
}

// String returns the lowercase name of the level.
func (l Level) String() string {
	if l < LevelTrace || l > LevelOff {
		return "unknown"
	}
	return levelNames[l]
}

// ShortString returns the single-letter name of the level.
func (l Level) ShortString() string {
	if l < LevelTrace || l > LevelOff {
		return "?"
	}
	return levelShortNames[l]
}

// ParseLevel converts a level name to a Level. Matching is
// case-insensitive.
func ParseLevel(name string) (Level, error) {
	for lvl, n := range levelNames {
		if strings.EqualFold(name, n) {
			return Level(lvl), nil
		}
	}
	return LevelOff, errors.Errorf("unknown level name: %q", name)
}

// shouldLog reports whether a message at level passes the given threshold.
// A threshold of LevelOff suppresses everything, including forced messages.
func shouldLog(threshold, level Level) bool {
	return threshold != LevelOff && level >= threshold
}
