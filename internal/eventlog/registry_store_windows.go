//go:build windows

package eventlog

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"
	"golang.org/x/sys/windows/svc/eventlog"

	"github.com/fyrsmithlabs/logfan/internal/sanitize"
)

const (
	eventLogKey = `SYSTEM\CurrentControlSet\Services\EventLog`

	// EventCreate.exe carries a generic message table, so entries render
	// without a custom message DLL.
	messageFile = `%SystemRoot%\System32\EventCreate.exe`

	eventID = 1000
)

// RegistryStore is a Store backed by the Windows event log.
type RegistryStore struct {
	mu      sync.Mutex
	handles map[string]*eventlog.Log
}

// NewRegistryStore creates a RegistryStore.
func NewRegistryStore() *RegistryStore {
	return &RegistryStore{handles: make(map[string]*eventlog.Log)}
}

func (s *RegistryStore) SourceExists(source string) (bool, error) {
	_, err := s.LogNameFromSourceName(source)
	if errors.Is(err, ErrSourceNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// LogNameFromSourceName searches every log key for a source subkey.
func (s *RegistryStore) LogNameFromSourceName(source string) (string, error) {
	if err := sanitize.ValidateName(source); err != nil {
		return "", fmt.Errorf("invalid source name %q: %w", source, err)
	}

	root, err := registry.OpenKey(registry.LOCAL_MACHINE, eventLogKey, registry.ENUMERATE_SUB_KEYS)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", eventLogKey, err)
	}
	defer root.Close()

	logs, err := root.ReadSubKeyNames(-1)
	if err != nil {
		return "", fmt.Errorf("failed to list event logs: %w", err)
	}

	for _, logName := range logs {
		k, err := registry.OpenKey(registry.LOCAL_MACHINE, eventLogKey+`\`+logName+`\`+source, registry.QUERY_VALUE)
		if err == nil {
			k.Close()
			return logName, nil
		}
		if errors.Is(err, registry.ErrNotExist) {
			continue
		}
		// Security log and friends refuse enumeration to non-admins.
		if errors.Is(err, windows.ERROR_ACCESS_DENIED) {
			continue
		}
		return "", fmt.Errorf("failed to open source key %q: %w", source, err)
	}
	return "", fmt.Errorf("%w: %q", ErrSourceNotFound, source)
}

// CreateEventSource registers source under logName, creating the log key
// when it does not exist yet.
func (s *RegistryStore) CreateEventSource(source, logName string) error {
	if err := sanitize.ValidateName(source); err != nil {
		return fmt.Errorf("invalid source name %q: %w", source, err)
	}
	if err := sanitize.ValidateName(logName); err != nil {
		return fmt.Errorf("invalid log name %q: %w", logName, err)
	}

	logKey, _, err := registry.CreateKey(registry.LOCAL_MACHINE, eventLogKey+`\`+logName, registry.CREATE_SUB_KEY)
	if err != nil {
		return fmt.Errorf("failed to open log %q: %w", logName, err)
	}
	defer logKey.Close()

	sk, existed, err := registry.CreateKey(logKey, source, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("failed to create source %q: %w", source, err)
	}
	defer sk.Close()
	if existed {
		return fmt.Errorf("%w: %q", ErrSourceExists, source)
	}

	if err := sk.SetExpandStringValue("EventMessageFile", messageFile); err != nil {
		return fmt.Errorf("failed to configure source %q: %w", source, err)
	}
	if err := sk.SetDWordValue("TypesSupported", eventlog.Error|eventlog.Warning|eventlog.Info); err != nil {
		return fmt.Errorf("failed to configure source %q: %w", source, err)
	}
	if err := sk.SetDWordValue("CustomSource", 1); err != nil {
		return fmt.Errorf("failed to configure source %q: %w", source, err)
	}
	return nil
}

func (s *RegistryStore) WriteEntry(source, message string, entryType EntryType) error {
	l, err := s.handle(source)
	if err != nil {
		return err
	}
	switch entryType {
	case Error:
		return l.Error(eventID, message)
	case Warning:
		return l.Warning(eventID, message)
	default:
		return l.Info(eventID, message)
	}
}

func (s *RegistryStore) handle(source string) (*eventlog.Log, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l, ok := s.handles[source]; ok {
		return l, nil
	}
	l, err := eventlog.Open(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	s.handles[source] = l
	return l, nil
}

// Close releases every open event log handle.
func (s *RegistryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var errs []error
	for source, l := range s.handles {
		if err := l.Close(); err != nil {
			errs = append(errs, err)
		}
		delete(s.handles, source)
	}
	return errors.Join(errs...)
}
