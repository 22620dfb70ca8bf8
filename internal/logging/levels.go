// internal/logging/levels.go
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap/zapcore"
)

// TraceLevel is a custom level below Debug for ultra-verbose logging.
// Value: -2 (Debug is -1, Info is 0)
const TraceLevel = zapcore.Level(-2)

// CriticalLevel marks failures that need immediate operator attention.
// Loggers are never built in development mode, so it does not panic.
const CriticalLevel = zapcore.DPanicLevel

// ordinalLevels maps configuration ordinals 0-5 to levels.
var ordinalLevels = [...]zapcore.Level{
	TraceLevel,
	zapcore.DebugLevel,
	zapcore.InfoLevel,
	zapcore.WarnLevel,
	zapcore.ErrorLevel,
	CriticalLevel,
}

// LevelFromOrdinal converts a configuration ordinal (0=Trace .. 5=Critical)
// to a level. Out-of-range values select TraceLevel.
func LevelFromOrdinal(n int) zapcore.Level {
	if n < 0 || n >= len(ordinalLevels) {
		return TraceLevel
	}
	return ordinalLevels[n]
}

// LevelFromString parses a level name, case-insensitively. Accepts zap's
// names plus trace, information, warning and critical.
func LevelFromString(level string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return TraceLevel, nil
	case "information":
		return zapcore.InfoLevel, nil
	case "warning":
		return zapcore.WarnLevel, nil
	case "critical":
		return CriticalLevel, nil
	}
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return zapcore.InfoLevel, fmt.Errorf("unknown level %q: %w", level, err)
	}
	return l, nil
}

// LevelName returns the upper-case display name of a level.
func LevelName(l zapcore.Level) string {
	switch {
	case l <= TraceLevel:
		return "TRACE"
	case l == zapcore.DebugLevel:
		return "DEBUG"
	case l == zapcore.InfoLevel:
		return "INFO"
	case l == zapcore.WarnLevel:
		return "WARNING"
	case l == zapcore.ErrorLevel:
		return "ERROR"
	default:
		return "CRITICAL"
	}
}

// LevelEncoder encodes levels with LevelName.
func LevelEncoder(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(LevelName(l))
}
