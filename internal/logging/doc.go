// Package logging provides the structured logger behind every dispatcher.
//
// # Overview
//
// Logging package wraps Zap with:
//   - Trace (-2) and Critical levels matching the dispatcher severities
//   - Console, operating-system event log and OpenTelemetry outputs
//   - Trace correlation fields (trace_id, span_id) from context
//   - Field redaction at the encoder
//   - Optional level-aware sampling (errors never sampled)
//
// # Usage
//
// A process builds one Factory, then one Logger per application name:
//
//	factory, err := logging.Shared(cfg)
//	logger := factory.Logger(logging.LoggerOptions{
//	    Name:     "Orders",
//	    Level:    logging.LevelFromOrdinal(2),
//	    Source:   "Orders",
//	    EventLog: store,
//	})
//	logger.Info(ctx, "order placed", zap.String("order", id))
//
// Shared initializes at most once per process. Later calls return the
// same Factory and ignore their config, so per-logger settings (level,
// event source) belong in LoggerOptions rather than Config.
//
// # Event Log Output
//
// When Output.EventLog is set and LoggerOptions.EventLog is non-nil, each
// entry at or above the logger level is written under LoggerOptions.Source.
// Levels map to entry types: Warning for Warn, Error for Error and above,
// Information otherwise. Write failures are reported to the error output
// and never reach the caller.
//
// # Redaction
//
// Structured fields are redacted by key (password, token, ...) and by
// value pattern. The default patterns are the message redaction rules from
// package redact, so an email in a field is hidden the same way it is in a
// dispatcher message.
//
// # Testing
//
// Use TestLogger for test assertions:
//
//	tl := logging.NewTestLogger()
//	tl.Info(ctx, "test message", zap.String("key", "value"))
//	tl.AssertLogged(t, zapcore.InfoLevel, "test message")
//	tl.AssertNoSecrets(t)
package logging
