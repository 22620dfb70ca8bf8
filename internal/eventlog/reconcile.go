package eventlog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/fyrsmithlabs/logfan/internal/filesink"
	"github.com/fyrsmithlabs/logfan/internal/sanitize"
)

// DefaultLogName is the log a source is bound to when none is configured.
const DefaultLogName = "Application"

// PrivilegesMessage is written when the store refuses access.
const PrivilegesMessage = "Administrator privileges are required to create or modify event log sources.\n" +
	"Run the application as Administrator (Windows) or root and try again."

// TestEntryMessage is written to the event log after a source is created
// with a test entry requested.
const TestEntryMessage = "Event source created successfully."

const (
	testPrefix = "[TEST] "

	// fallbackAdvisoryName names the advisory file when the log name cannot
	// be used as a file name.
	fallbackAdvisoryName = "logfan"
)

// State is the outcome of a reconciliation.
type State int

const (
	StateCreated State = iota
	StateMatching
	StateMismatched
	StatePermissionDenied
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateMatching:
		return "matching"
	case StateMismatched:
		return "mismatched"
	case StatePermissionDenied:
		return "permission_denied"
	default:
		return "failed"
	}
}

// Usable reports whether entries can be written under the source.
func (s State) Usable() bool {
	return s == StateCreated || s == StateMatching
}

// ReconcilerOption configures a Reconciler.
type ReconcilerOption func(*Reconciler)

// WithMachineIdentifier sets the machine column of advisory records.
// Defaults to the host name.
func WithMachineIdentifier(id string) ReconcilerOption {
	return func(r *Reconciler) {
		r.machine = id
	}
}

// Reconciler ensures event sources exist and are bound to the right log.
type Reconciler struct {
	store   Store
	sink    *filesink.Sink
	machine string
	metrics *Metrics
}

// NewReconciler creates a Reconciler writing advisories through sink.
func NewReconciler(store Store, sink *filesink.Sink, opts ...ReconcilerOption) *Reconciler {
	host, _ := os.Hostname()
	r := &Reconciler{
		store:   store,
		sink:    sink,
		machine: host,
		metrics: NewMetrics(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// request carries one EnsureSource call.
type request struct {
	source  string
	logName string
	isTest  bool
	folder  string
}

// EnsureSource makes sure source exists and is bound to logName. It never
// returns an error and never changes an existing binding. Advisories are
// written to the "{logName}Log.txt" file in fallbackFolder; an empty
// folder selects filesink.DefaultFolder.
func (r *Reconciler) EnsureSource(source, logName string, writeTestEntry bool, fallbackFolder string) (state State) {
	if logName == "" {
		logName = DefaultLogName
	}
	req := request{
		source:  source,
		logName: logName,
		isTest:  writeTestEntry,
		folder:  advisoryFolder(fallbackFolder),
	}

	defer func() {
		if p := recover(); p != nil {
			state = r.fail(req, fmt.Errorf("panic: %v", p))
		}
		r.metrics.ReconciliationsTotal.WithLabelValues(state.String()).Inc()
	}()

	exists, err := r.store.SourceExists(source)
	if err != nil {
		return r.fail(req, err)
	}
	if exists {
		return r.handleExisting(req)
	}
	return r.create(req)
}

func (r *Reconciler) handleExisting(req request) State {
	current, err := r.store.LogNameFromSourceName(req.source)
	if err != nil {
		return r.fail(req, err)
	}

	if strings.EqualFold(current, req.logName) {
		r.advise(req, fmt.Sprintf("Source '%s' is already correctly registered in log '%s'.", req.source, req.logName), true)
		return StateMatching
	}

	r.advise(req, fmt.Sprintf("Source '%s' exists in log '%s', not '%s'. "+
		"Delete the existing source or use a different name.", req.source, current, req.logName), true)
	return StateMismatched
}

func (r *Reconciler) create(req request) State {
	if err := r.store.CreateEventSource(req.source, req.logName); err != nil {
		return r.fail(req, err)
	}
	r.advise(req, fmt.Sprintf("Source '%s' created and linked to log '%s'.", req.source, req.logName), true)

	if req.isTest {
		if err := r.store.WriteEntry(req.source, TestEntryMessage, Information); err != nil {
			r.advise(req, "Test entry could not be written: "+err.Error(), true)
		} else {
			r.advise(req, fmt.Sprintf("Test log entry written to '%s' with source '%s'.", req.logName, req.source), true)
		}
	}
	return StateCreated
}

func (r *Reconciler) fail(req request, err error) State {
	if errors.Is(err, fs.ErrPermission) {
		r.advise(req, PrivilegesMessage, false)
		return StatePermissionDenied
	}
	r.advise(req, "Unexpected error: "+err.Error(), true)
	return StateFailed
}

// advise writes an operator message through the file sink. Messages marked
// prefixable carry the test prefix when a test entry was requested.
func (r *Reconciler) advise(req request, message string, prefixable bool) {
	if prefixable && req.isTest {
		message = testPrefix + message
	}
	name := req.logName
	if sanitize.ValidateName(name) != nil {
		name = fallbackAdvisoryName
	}
	r.sink.WriteEntry(&filesink.Entry{
		Message:           message,
		ApplicationName:   name,
		MachineIdentifier: r.machine,
		Folder:            req.folder,
	})
}

func advisoryFolder(folder string) string {
	if strings.TrimSpace(folder) != "" {
		return folder
	}
	if def, err := filesink.DefaultFolder(); err == nil {
		return def
	}
	return os.TempDir()
}
