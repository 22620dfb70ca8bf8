package logging

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/noop"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"

	"github.com/fyrsmithlabs/logfan/internal/eventlog"
)

func newTestFactory(t *testing.T, cfg *Config, opts ...FactoryOption) (*Factory, *zaptest.Buffer) {
	t.Helper()
	console := &zaptest.Buffer{}
	f, err := NewFactory(cfg, append([]FactoryOption{WithConsoleWriter(console)}, opts...)...)
	require.NoError(t, err)
	return f, console
}

func TestNewFactory_DefaultConfig(t *testing.T) {
	f, err := NewFactory(nil)

	require.NoError(t, err)
	assert.Equal(t, NewDefaultConfig(), f.cfg)
}

func TestNewFactory_InvalidConfig(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Format = "xml"

	f, err := NewFactory(cfg)

	require.Error(t, err)
	assert.Nil(t, f)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestFactory_ConsoleOutput(t *testing.T) {
	f, console := newTestFactory(t, NewDefaultConfig())
	logger := f.Logger(LoggerOptions{Name: "Orders", Level: zapcore.InfoLevel})

	logger.Info(context.Background(), "order placed", zap.String("order", "42"))

	lines := console.Lines()
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], `"level":"INFO"`)
	assert.Contains(t, lines[0], `"logger":"Orders"`)
	assert.Contains(t, lines[0], `"msg":"order placed"`)
	assert.Contains(t, lines[0], `"order":"42"`)
	assert.Contains(t, lines[0], `"service":"logfan"`)
}

func TestFactory_LevelFiltering(t *testing.T) {
	f, console := newTestFactory(t, NewDefaultConfig())
	logger := f.Logger(LoggerOptions{Level: zapcore.WarnLevel})
	ctx := context.Background()

	logger.Trace(ctx, "trace")
	logger.Debug(ctx, "debug")
	logger.Info(ctx, "info")
	logger.Warn(ctx, "warn")
	logger.Error(ctx, "error")
	logger.Critical(ctx, "critical")

	lines := console.Lines()
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], `"level":"WARNING"`)
	assert.Contains(t, lines[1], `"level":"ERROR"`)
	assert.Contains(t, lines[2], `"level":"CRITICAL"`)
}

func TestFactory_LoggersHaveIndependentLevels(t *testing.T) {
	f, console := newTestFactory(t, NewDefaultConfig())
	verbose := f.Logger(LoggerOptions{Name: "verbose", Level: TraceLevel})
	quiet := f.Logger(LoggerOptions{Name: "quiet", Level: zapcore.ErrorLevel})

	verbose.Debug(context.Background(), "from verbose")
	quiet.Debug(context.Background(), "from quiet")

	lines := console.Lines()
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "from verbose")
}

func TestFactory_EventLogOutput(t *testing.T) {
	store := eventlog.NewMemoryStore()
	store.Register("Orders", "Application")
	f, _ := newTestFactory(t, NewDefaultConfig())
	logger := f.Logger(LoggerOptions{Name: "Orders", Level: zapcore.InfoLevel, Source: "Orders", EventLog: store})
	ctx := context.Background()

	logger.Debug(ctx, "filtered")
	logger.Info(ctx, "started")
	logger.Warn(ctx, "slow")
	logger.Critical(ctx, "down")

	entries := store.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, eventlog.Information, entries[0].Type)
	assert.Equal(t, eventlog.Warning, entries[1].Type)
	assert.Equal(t, eventlog.Error, entries[2].Type)
	for _, e := range entries {
		assert.Equal(t, "Orders", e.Source)
	}
	assert.Contains(t, entries[0].Message, "started")
	assert.Contains(t, entries[0].Message, `"service": "logfan"`)
}

func TestFactory_EventLogDisabled(t *testing.T) {
	store := eventlog.NewMemoryStore()
	store.Register("Orders", "Application")
	cfg := NewDefaultConfig()
	cfg.Output.EventLog = false
	f, console := newTestFactory(t, cfg)

	f.Logger(LoggerOptions{Level: zapcore.InfoLevel, Source: "Orders", EventLog: store}).
		Info(context.Background(), "console only")

	assert.Empty(t, store.Entries())
	assert.Len(t, console.Lines(), 1)
}

func TestFactory_EventLogFailureDoesNotStopConsole(t *testing.T) {
	store := eventlog.NewMemoryStore()
	errOut := &zaptest.Buffer{}
	f, console := newTestFactory(t, NewDefaultConfig(), WithErrorOutput(errOut))
	logger := f.Logger(LoggerOptions{Level: zapcore.InfoLevel, Source: "Ghost", EventLog: store})

	assert.NotPanics(t, func() {
		logger.Error(context.Background(), "unregistered source")
	})

	assert.Len(t, console.Lines(), 1)
	assert.Contains(t, errOut.String(), "write error")
}

func TestFactory_OTELOutput(t *testing.T) {
	provider := &recordingProvider{logger: &recordingLogger{}}
	cfg := NewDefaultConfig()
	cfg.Output.OTEL = true
	f, _ := newTestFactory(t, cfg, WithLoggerProvider(provider))
	logger := f.Logger(LoggerOptions{Level: zapcore.WarnLevel})

	logger.Info(context.Background(), "below level")
	logger.Error(context.Background(), "exported")

	assert.Equal(t, []string{"exported"}, provider.logger.bodies())
}

func TestFactory_OTELWithoutProvider(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Output.OTEL = true
	f, console := newTestFactory(t, cfg)

	f.Logger(LoggerOptions{Level: zapcore.InfoLevel}).Info(context.Background(), "still logged")

	assert.Len(t, console.Lines(), 1)
}

func TestShared_InitializesOnce(t *testing.T) {
	first, err := Shared(nil, WithConsoleWriter(&zaptest.Buffer{}))
	require.NoError(t, err)

	other := NewDefaultConfig()
	other.Format = "console"
	second, err := Shared(other)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, "json", second.cfg.Format)
}

// recordingProvider hands out a single recordingLogger.
type recordingProvider struct {
	noop.LoggerProvider
	logger *recordingLogger
}

func (p *recordingProvider) Logger(string, ...log.LoggerOption) log.Logger {
	return p.logger
}

type recordingLogger struct {
	noop.Logger
	mu      sync.Mutex
	records []string
}

func (l *recordingLogger) Emit(_ context.Context, r log.Record) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, r.Body().AsString())
}

func (l *recordingLogger) Enabled(context.Context, log.EnabledParameters) bool {
	return true
}

func (l *recordingLogger) bodies() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.records...)
}
