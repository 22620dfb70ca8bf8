package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/fyrsmithlabs/logfan/internal/eventlog"
	"github.com/fyrsmithlabs/logfan/internal/filesink"
	"github.com/fyrsmithlabs/logfan/internal/logging"
	"github.com/fyrsmithlabs/logfan/internal/redact"
	"github.com/fyrsmithlabs/logfan/internal/sanitize"
)

// ErrConfiguration is returned by New for options that cannot be used.
var ErrConfiguration = errors.New("invalid dispatcher configuration")

// UnknownCaller prefixes structured-logger messages when Options carries
// no CallerIdentity.
const UnknownCaller = "UnknownCaller"

// Options configures a Dispatcher. The Dispatcher keeps a copy; changing
// Options after New has no effect.
type Options struct {
	// ApplicationName names the log file and the event source. Required,
	// and must be usable as a file name.
	ApplicationName string

	// LogName is the event log the source is bound to (default: Application).
	LogName string

	// MinimumLevel filters the structured logger. The file sink ignores it.
	MinimumLevel Level

	// FileLogging enables the file sink.
	FileLogging bool

	// FileFolderPath holds the log files. Empty selects the per-user
	// default folder, which is created if missing. A configured folder must
	// already exist and may not contain "..".
	FileFolderPath string

	// RedactSensitiveData hides emails, passwords and key-like tokens
	// before any sink sees the message.
	RedactSensitiveData bool

	// CallerIdentity prefixes structured-logger messages (default: UnknownCaller).
	CallerIdentity string

	// WriteTestEntry writes one entry to the event log when the source is
	// created, and prefixes reconciliation advisories with "[TEST] ".
	WriteTestEntry bool

	// EventLogRegistryDir is the source registry of the journal back-end.
	// Ignored on Windows.
	EventLogRegistryDir string

	// MachineIdentifier fills the machine column of file records
	// (default: host name).
	MachineIdentifier string

	// Logging configures the process-wide logger factory. Only the first
	// Dispatcher created in a process applies it.
	Logging *logging.Config

	// LoggerProvider receives structured entries through the OTEL bridge.
	// Setting it turns on the OTEL output. Like Logging, only the first
	// Dispatcher created in a process applies it.
	LoggerProvider log.LoggerProvider
}

// Dispatcher dispatches log calls to the configured sinks. It is safe for
// concurrent use.
type Dispatcher struct {
	opts    Options
	id      string
	caller  string
	machine string
	folder  string
	state   eventlog.State
	sink    *filesink.Sink
	logger  *logging.Logger
	metrics *Metrics
}

// deps are the collaborators New resolves from the process environment.
type deps struct {
	store   eventlog.Store
	factory *logging.Factory
	sink    *filesink.Sink
}

// New creates a Dispatcher and reconciles its event source. The only error
// is ErrConfiguration for an empty or path-unsafe ApplicationName or
// FileFolderPath.
func New(opts Options) (*Dispatcher, error) {
	if _, err := validate(opts); err != nil {
		return nil, err
	}
	cfg, factoryOpts := factoryArgs(opts)
	factory, factoryErr := logging.Shared(cfg, factoryOpts...)
	if factoryErr != nil {
		// Console and OTEL only; the event source is not reconciled yet.
		factory.Logger(logging.LoggerOptions{Name: opts.ApplicationName, Level: zapcore.WarnLevel}).
			Warn(context.Background(), "logging config rejected, using defaults", zap.Error(factoryErr))
	}
	return newDispatcher(opts, deps{
		store:   eventlog.NewPlatformStore(opts.EventLogRegistryDir),
		factory: factory,
	})
}

// factoryArgs derives the shared factory configuration from opts.
func factoryArgs(opts Options) (*logging.Config, []logging.FactoryOption) {
	if opts.LoggerProvider == nil {
		return opts.Logging, nil
	}
	cfg := logging.NewDefaultConfig()
	if opts.Logging != nil {
		c := *opts.Logging
		cfg = &c
	}
	cfg.Output.OTEL = true
	return cfg, []logging.FactoryOption{logging.WithLoggerProvider(opts.LoggerProvider)}
}

// validate checks opts and returns the cleaned FileFolderPath.
func validate(opts Options) (string, error) {
	if err := sanitize.ValidateName(opts.ApplicationName); err != nil {
		return "", fmt.Errorf("%w: application name %q: %w", ErrConfiguration, opts.ApplicationName, err)
	}
	if opts.FileFolderPath == "" {
		return "", nil
	}
	folder, err := sanitize.ValidatePath(opts.FileFolderPath, "")
	if err != nil {
		return "", fmt.Errorf("%w: file folder %q: %w", ErrConfiguration, opts.FileFolderPath, err)
	}
	return folder, nil
}

func newDispatcher(opts Options, dp deps) (*Dispatcher, error) {
	folder, err := validate(opts)
	if err != nil {
		return nil, err
	}
	if opts.LogName == "" {
		opts.LogName = eventlog.DefaultLogName
	}
	opts.MinimumLevel = opts.MinimumLevel.normalize()

	d := &Dispatcher{
		opts:    opts,
		id:      uuid.NewString(),
		caller:  opts.CallerIdentity,
		machine: opts.MachineIdentifier,
		folder:  folder,
		sink:    dp.sink,
		metrics: NewMetrics(),
	}
	if d.caller == "" {
		d.caller = UnknownCaller
	}
	if d.machine == "" {
		d.machine, _ = os.Hostname()
	}
	if d.folder == "" {
		d.folder = defaultFolder()
	}
	if d.sink == nil {
		d.sink = filesink.New()
	}

	reconciler := eventlog.NewReconciler(dp.store, d.sink, eventlog.WithMachineIdentifier(d.machine))
	d.state = reconciler.EnsureSource(opts.ApplicationName, opts.LogName, opts.WriteTestEntry, d.folder)

	loggerOpts := logging.LoggerOptions{
		Name:   opts.ApplicationName,
		Level:  opts.MinimumLevel.zapLevel(),
		Source: opts.ApplicationName,
	}
	if d.state.Usable() {
		loggerOpts.EventLog = dp.store
	}
	d.logger = dp.factory.Logger(loggerOpts).With(zap.String("dispatcher.id", d.id))

	return d, nil
}

func defaultFolder() string {
	if folder, err := filesink.DefaultFolder(); err == nil {
		return folder
	}
	return os.TempDir()
}

// Log dispatches message at level. Out-of-range levels are treated as Trace.
func (d *Dispatcher) Log(ctx context.Context, level Level, message string) {
	if d == nil {
		return
	}
	level = level.normalize()

	if d.opts.RedactSensitiveData {
		message = redact.String(message)
	}
	d.metrics.EntriesTotal.WithLabelValues(level.String()).Inc()

	if d.opts.FileLogging {
		isolate(func() {
			d.sink.WriteEntry(&filesink.Entry{
				Message:           "[" + logging.LevelName(level.zapLevel()) + "] " + message,
				ApplicationName:   d.opts.ApplicationName,
				MachineIdentifier: d.machine,
				Folder:            d.folder,
			})
		})
	}

	isolate(func() {
		d.logger.Log(ctx, level.zapLevel(), d.caller+": "+message)
	})
}

// isolate runs fn and swallows any panic so one sink cannot break another.
func isolate(fn func()) {
	defer func() {
		_ = recover()
	}()
	fn()
}

func (d *Dispatcher) LogTrace(message string) {
	d.Log(context.Background(), Trace, message)
}

func (d *Dispatcher) LogDebug(message string) {
	d.Log(context.Background(), Debug, message)
}

func (d *Dispatcher) LogInfo(message string) {
	d.Log(context.Background(), Information, message)
}

func (d *Dispatcher) LogWarning(message string) {
	d.Log(context.Background(), Warning, message)
}

func (d *Dispatcher) LogError(message string) {
	d.Log(context.Background(), Error, message)
}

func (d *Dispatcher) LogCritical(message string) {
	d.Log(context.Background(), Critical, message)
}

// ID returns the instance id attached to structured entries as dispatcher.id.
func (d *Dispatcher) ID() string {
	return d.id
}

// Options returns the effective options, defaults applied.
func (d *Dispatcher) Options() Options {
	return d.opts
}

// CallerIdentity returns the structured-logger message prefix.
func (d *Dispatcher) CallerIdentity() string {
	return d.caller
}

// EventSourceState returns the outcome of the construction-time
// reconciliation.
func (d *Dispatcher) EventSourceState() eventlog.State {
	return d.state
}

// LogFilePath returns the current log file path.
func (d *Dispatcher) LogFilePath() string {
	return filesink.LogPath(d.folder, d.opts.ApplicationName)
}

// Sync flushes the structured logger.
func (d *Dispatcher) Sync() error {
	return d.logger.Sync()
}
