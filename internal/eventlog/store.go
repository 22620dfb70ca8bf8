package eventlog

import "errors"

// EntryType is the event-log severity of an entry.
type EntryType int

const (
	Information EntryType = iota
	Warning
	Error
)

// String returns the event-log name of the entry type.
func (t EntryType) String() string {
	switch t {
	case Warning:
		return "Warning"
	case Error:
		return "Error"
	default:
		return "Information"
	}
}

var (
	// ErrSourceNotFound indicates the source is not registered with any log.
	ErrSourceNotFound = errors.New("event source not found")

	// ErrSourceExists indicates a create call for an already registered source.
	ErrSourceExists = errors.New("event source already exists")

	// ErrUnavailable indicates the operating-system event log cannot be reached.
	ErrUnavailable = errors.New("event log unavailable")
)

// Writer writes entries under a registered source.
type Writer interface {
	WriteEntry(source, message string, entryType EntryType) error
}

// Store is the operating-system event log.
type Store interface {
	Writer

	// SourceExists reports whether source is registered with any log.
	SourceExists(source string) (bool, error)

	// CreateEventSource registers source and binds it to logName.
	CreateEventSource(source, logName string) error

	// LogNameFromSourceName returns the log source is bound to.
	// Returns ErrSourceNotFound if source is not registered.
	LogNameFromSourceName(source string) (string, error)
}
