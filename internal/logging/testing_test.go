package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestTestLogger_AssertLogged(t *testing.T) {
	tl := NewTestLogger()

	tl.Info(context.Background(), "test message", zap.String("key", "value"))

	tl.AssertLogged(t, zapcore.InfoLevel, "test message")
	tl.AssertNotLogged(t, zapcore.ErrorLevel, "test message")
	tl.AssertField(t, "test message", "key", "value")
}

func TestTestLogger_Reset(t *testing.T) {
	tl := NewTestLogger()
	tl.Trace(context.Background(), "first")

	tl.Reset()

	assert.Empty(t, tl.All())
}

func TestTestLogger_AssertNoSecrets(t *testing.T) {
	tl := NewTestLogger()

	tl.Info(context.Background(), "safe", zap.String("username", "alice"))

	tl.AssertNoSecrets(t)
}

func TestTestLogger_AssertNoSecrets_DetectsSecrets(t *testing.T) {
	tl := NewTestLogger()
	tl.Info(context.Background(), "mail ops@example.com")

	probe := &recordingTB{TB: t}
	tl.AssertNoSecrets(probe)

	assert.True(t, probe.failed)
}

// recordingTB records failures instead of failing the test.
type recordingTB struct {
	testing.TB
	failed bool
}

func (r *recordingTB) Helper() {}

func (r *recordingTB) Errorf(string, ...any) {
	r.failed = true
}
