// internal/logging/eventlog_core.go
package logging

import (
	"strings"

	"go.uber.org/zap/zapcore"

	"github.com/fyrsmithlabs/logfan/internal/eventlog"
)

// EntryTypeFor maps a level to the event-log entry type.
func EntryTypeFor(l zapcore.Level) eventlog.EntryType {
	switch {
	case l >= zapcore.ErrorLevel:
		return eventlog.Error
	case l == zapcore.WarnLevel:
		return eventlog.Warning
	default:
		return eventlog.Information
	}
}

// eventLogCore writes entries to the operating-system event log under a
// single source. Context fields are appended to the message as JSON.
type eventLogCore struct {
	zapcore.LevelEnabler
	enc    zapcore.Encoder
	writer eventlog.Writer
	source string
}

// newEventLogCore writes through enc, normally a RedactingEncoder wrapping
// newEventLogEncoder.
func newEventLogCore(writer eventlog.Writer, source string, enc zapcore.Encoder, enab zapcore.LevelEnabler) zapcore.Core {
	return &eventLogCore{
		LevelEnabler: enab,
		enc:          enc,
		writer:       writer,
		source:       source,
	}
}

func newEventLogEncoder() zapcore.Encoder {
	return zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		MessageKey:       "msg",
		LineEnding:       "\n",
		ConsoleSeparator: " ",
	})
}

func (c *eventLogCore) With(fields []zapcore.Field) zapcore.Core {
	clone := c.enc.Clone()
	for i := range fields {
		fields[i].AddTo(clone)
	}
	return &eventLogCore{
		LevelEnabler: c.LevelEnabler,
		enc:          clone,
		writer:       c.writer,
		source:       c.source,
	}
}

func (c *eventLogCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *eventLogCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	buf, err := c.enc.EncodeEntry(ent, fields)
	if err != nil {
		return err
	}
	msg := strings.TrimRight(buf.String(), "\n")
	buf.Free()
	return c.writer.WriteEntry(c.source, msg, EntryTypeFor(ent.Level))
}

func (c *eventLogCore) Sync() error {
	return nil
}
