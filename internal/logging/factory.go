// internal/logging/factory.go
package logging

import (
	"fmt"
	"os"
	"sync"

	"go.opentelemetry.io/otel/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/fyrsmithlabs/logfan/internal/eventlog"
)

// Factory builds Loggers sharing one output configuration.
// A Factory is read-only after construction and safe for concurrent use.
type Factory struct {
	cfg      *Config
	console  zapcore.WriteSyncer
	errOut   zapcore.WriteSyncer
	provider log.LoggerProvider
}

// FactoryOption configures a Factory.
type FactoryOption func(*Factory)

// WithConsoleWriter replaces stdout as the console destination.
func WithConsoleWriter(ws zapcore.WriteSyncer) FactoryOption {
	return func(f *Factory) {
		f.console = ws
	}
}

// WithErrorOutput sets where internal logger errors are reported.
// Defaults to stderr.
func WithErrorOutput(ws zapcore.WriteSyncer) FactoryOption {
	return func(f *Factory) {
		f.errOut = ws
	}
}

// WithLoggerProvider enables the OTEL output when Output.OTEL is set.
func WithLoggerProvider(p log.LoggerProvider) FactoryOption {
	return func(f *Factory) {
		f.provider = p
	}
}

// NewFactory creates a Factory from cfg.
func NewFactory(cfg *Config, opts ...FactoryOption) (*Factory, error) {
	if cfg == nil {
		cfg = NewDefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	// Compile redaction rules once up front so Logger cannot fail later.
	if _, err := NewRedactingEncoder(newEncoder(cfg.Format), cfg.Redaction); err != nil {
		return nil, fmt.Errorf("failed to create redacting encoder: %w", err)
	}

	f := &Factory{
		cfg:     cfg,
		console: zapcore.Lock(os.Stdout),
		errOut:  zapcore.Lock(os.Stderr),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

var (
	sharedOnce    sync.Once
	sharedFactory *Factory
	sharedErr     error
)

// Shared returns the process-wide Factory, creating it from cfg on the first
// call. Later calls return the same Factory and ignore their arguments.
// An invalid cfg falls back to NewDefaultConfig; the validation error is
// returned on every call alongside the usable Factory.
func Shared(cfg *Config, opts ...FactoryOption) (*Factory, error) {
	sharedOnce.Do(func() {
		sharedFactory, sharedErr = NewFactory(cfg, opts...)
		if sharedErr != nil {
			sharedFactory, _ = NewFactory(NewDefaultConfig(), opts...)
		}
	})
	return sharedFactory, sharedErr
}

// LoggerOptions selects the per-logger part of the output configuration.
type LoggerOptions struct {
	// Name is the logger name, usually the application name.
	Name string

	// Level is the minimum level for every output.
	Level zapcore.Level

	// Source is the event source entries are written under.
	Source string

	// EventLog receives entries when Output.EventLog is set.
	// Nil disables the event-log output.
	EventLog eventlog.Writer
}

// Logger builds a Logger writing to the configured outputs at opts.Level.
func (f *Factory) Logger(opts LoggerOptions) *Logger {
	level := zap.NewAtomicLevelAt(opts.Level)
	cfg := f.cfg

	var cores []zapcore.Core
	if cfg.Output.Stdout {
		// Validated in NewFactory.
		enc, _ := NewRedactingEncoder(newEncoder(cfg.Format), cfg.Redaction)
		cores = append(cores, zapcore.NewCore(enc, f.console, level))
	}
	if cfg.Output.EventLog && opts.EventLog != nil {
		// Validated in NewFactory.
		enc, _ := NewRedactingEncoder(newEventLogEncoder(), cfg.Redaction)
		cores = append(cores, newEventLogCore(opts.EventLog, opts.Source, enc, level))
	}
	if cfg.Output.OTEL {
		if c := newOTELCore(f.provider, level); c != nil {
			cores = append(cores, c)
		}
	}

	zopts := []zap.Option{zap.ErrorOutput(f.errOut)}
	if cfg.Caller.Enabled {
		zopts = append(zopts, zap.AddCaller(), zap.AddCallerSkip(cfg.Caller.Skip))
	}
	if cfg.Stacktrace.Level != 0 {
		zopts = append(zopts, zap.AddStacktrace(cfg.Stacktrace.Level))
	}

	zapLogger := zap.New(newCore(cfg, cores...), zopts...)
	if opts.Name != "" {
		zapLogger = zapLogger.Named(opts.Name)
	}
	if len(cfg.Fields) > 0 {
		fields := make([]zap.Field, 0, len(cfg.Fields))
		for k, v := range cfg.Fields {
			fields = append(fields, zap.String(k, v))
		}
		zapLogger = zapLogger.With(fields...)
	}

	return &Logger{zap: zapLogger}
}
