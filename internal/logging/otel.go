// internal/logging/otel.go
package logging

import (
	"go.opentelemetry.io/contrib/bridges/otelzap"
	"go.opentelemetry.io/otel/log"
	"go.uber.org/zap/zapcore"
)

// instrumentationScope names the OTEL logger used by the bridge.
const instrumentationScope = "github.com/fyrsmithlabs/logfan"

// newOTELCore bridges entries at or above enab to an OTEL logger provider.
// Returns nil when provider is nil.
func newOTELCore(provider log.LoggerProvider, enab zapcore.LevelEnabler) zapcore.Core {
	if provider == nil {
		return nil
	}
	return &levelFilterCore{
		Core: otelzap.NewCore(instrumentationScope, otelzap.WithLoggerProvider(provider)),
		enab: enab,
	}
}

// newCore tees the configured outputs and wraps them with sampling.
func newCore(cfg *Config, cores ...zapcore.Core) zapcore.Core {
	active := make([]zapcore.Core, 0, len(cores))
	for _, c := range cores {
		if c != nil {
			active = append(active, c)
		}
	}

	var core zapcore.Core
	switch len(active) {
	case 0:
		core = zapcore.NewNopCore()
	case 1:
		core = active[0]
	default:
		core = zapcore.NewTee(active...)
	}

	return newSampledCore(core, cfg.Sampling)
}
