package dispatcher

import (
	"fmt"

	"go.uber.org/zap/zapcore"

	"github.com/fyrsmithlabs/logfan/internal/logging"
)

// Level is a log severity. Values are the configuration ordinals.
type Level int

const (
	Trace Level = iota
	Debug
	Information
	Warning
	Error
	Critical
)

// LevelFromOrdinal converts a configuration ordinal. Out-of-range values
// select Trace.
func LevelFromOrdinal(n int) Level {
	return Level(n).normalize()
}

func (l Level) normalize() Level {
	if l < Trace || l > Critical {
		return Trace
	}
	return l
}

func (l Level) String() string {
	switch l.normalize() {
	case Debug:
		return "Debug"
	case Information:
		return "Information"
	case Warning:
		return "Warning"
	case Error:
		return "Error"
	case Critical:
		return "Critical"
	default:
		return "Trace"
	}
}

func (l Level) zapLevel() zapcore.Level {
	return logging.LevelFromOrdinal(int(l))
}

// ParseLevel parses a level name such as "info", "Information" or
// "WARNING".
func ParseLevel(s string) (Level, error) {
	zl, err := logging.LevelFromString(s)
	if err != nil {
		return Information, err
	}
	for l := Trace; l <= Critical; l++ {
		if l.zapLevel() == zl {
			return l, nil
		}
	}
	return Information, fmt.Errorf("unsupported level %q", s)
}
