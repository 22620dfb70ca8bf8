package logging

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/fyrsmithlabs/logfan/internal/config"
	"github.com/fyrsmithlabs/logfan/internal/redact"
)

func TestConfig_Defaults(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.Equal(t, zapcore.InfoLevel, cfg.Level)
	assert.Equal(t, "json", cfg.Format)
	assert.True(t, cfg.Output.Stdout)
	assert.True(t, cfg.Output.EventLog)
	assert.False(t, cfg.Output.OTEL)
	assert.False(t, cfg.Sampling.Enabled)
	assert.Equal(t, time.Second, cfg.Sampling.Tick.Duration())
	assert.False(t, cfg.Caller.Enabled)
	assert.Equal(t, CriticalLevel, cfg.Stacktrace.Level)
	assert.Equal(t, "logfan", cfg.Fields["service"])
	assert.True(t, cfg.Redaction.Enabled)
	assert.Len(t, cfg.Redaction.Patterns, len(redact.Rules()))
	require.NoError(t, cfg.Validate())
}

func TestLevelSamplingConfig_Defaults(t *testing.T) {
	defaults := DefaultLevelSamplingConfig()

	assert.Equal(t, LevelSamplingConfig{Initial: 1, Thereafter: 0}, defaults[TraceLevel])
	assert.Equal(t, LevelSamplingConfig{Initial: 10, Thereafter: 0}, defaults[zapcore.DebugLevel])
	assert.Equal(t, LevelSamplingConfig{Initial: 100, Thereafter: 10}, defaults[zapcore.InfoLevel])
	assert.Equal(t, LevelSamplingConfig{Initial: 100, Thereafter: 100}, defaults[zapcore.WarnLevel])

	// Error+ never sampled (not in map)
	_, exists := defaults[zapcore.ErrorLevel]
	assert.False(t, exists)
}

func TestConfig_Validate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Level:  zapcore.InfoLevel,
			Format: "json",
			Output: OutputConfig{Stdout: true},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{
			name:   "minimal config",
			mutate: func(*Config) {},
		},
		{
			name:   "console format",
			mutate: func(c *Config) { c.Format = "console" },
		},
		{
			name:   "invalid format",
			mutate: func(c *Config) { c.Format = "xml" },
			errMsg: "format must be 'json' or 'console'",
		},
		{
			name:   "event log only",
			mutate: func(c *Config) { c.Output = OutputConfig{EventLog: true} },
		},
		{
			name:   "no output enabled",
			mutate: func(c *Config) { c.Output = OutputConfig{} },
			errMsg: "at least one output must be enabled",
		},
		{
			name: "invalid sampling tick",
			mutate: func(c *Config) {
				c.Sampling = SamplingConfig{Enabled: true, Tick: config.Duration(0)}
			},
			errMsg: "sampling tick must be > 0",
		},
		{
			name:   "caller disabled ignores skip",
			mutate: func(c *Config) { c.Caller = CallerConfig{Enabled: false, Skip: -1} },
		},
		{
			name:   "negative caller skip",
			mutate: func(c *Config) { c.Caller = CallerConfig{Enabled: true, Skip: -1} },
			errMsg: "caller skip must be >= 0",
		},
		{
			name: "redaction disabled skips pattern checks",
			mutate: func(c *Config) {
				c.Redaction = RedactionConfig{Enabled: false, Patterns: []string{"[invalid("}}
			},
		},
		{
			name: "invalid redaction pattern",
			mutate: func(c *Config) {
				c.Redaction = RedactionConfig{Enabled: true, Patterns: []string{"(?P<incomplete)"}}
			},
			errMsg: "invalid redaction pattern",
		},
		{
			name: "redaction pattern too long",
			mutate: func(c *Config) {
				c.Redaction = RedactionConfig{Enabled: true, Patterns: []string{strings.Repeat("a", maxPatternLength+1)}}
			},
			errMsg: "pattern too long",
		},
		{
			name:   "empty field key",
			mutate: func(c *Config) { c.Fields = map[string]string{"": "value"} },
			errMsg: "field key cannot be empty",
		},
		{
			name:   "empty field value",
			mutate: func(c *Config) { c.Fields = map[string]string{"key": ""} },
			errMsg: "empty value",
		},
		{
			name: "valid fields",
			mutate: func(c *Config) {
				c.Fields = map[string]string{"service": "orders", "environment": "production"}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
