package eventlog

import (
	"fmt"
	"sync"
)

// Entry is a record kept by MemoryStore.
type Entry struct {
	Source  string
	LogName string
	Message string
	Type    EntryType
}

// MemoryStore is an in-process Store.
type MemoryStore struct {
	mu      sync.Mutex
	sources map[string]string
	entries []Entry
	fail    error
	creates int
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sources: make(map[string]string)}
}

// Register binds source to logName without counting as a create call.
func (m *MemoryStore) Register(source, logName string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sources[source] = logName
}

// FailWith makes every subsequent operation return err. Pass nil to clear.
func (m *MemoryStore) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fail = err
}

// Entries returns a copy of the written entries.
func (m *MemoryStore) Entries() []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Creates returns the number of successful CreateEventSource calls.
func (m *MemoryStore) Creates() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.creates
}

func (m *MemoryStore) SourceExists(source string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return false, m.fail
	}
	_, ok := m.sources[source]
	return ok, nil
}

func (m *MemoryStore) CreateEventSource(source, logName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	if existing, ok := m.sources[source]; ok {
		return fmt.Errorf("%w: %q is bound to %q", ErrSourceExists, source, existing)
	}
	m.sources[source] = logName
	m.creates++
	return nil
}

func (m *MemoryStore) LogNameFromSourceName(source string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return "", m.fail
	}
	logName, ok := m.sources[source]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrSourceNotFound, source)
	}
	return logName, nil
}

func (m *MemoryStore) WriteEntry(source, message string, entryType EntryType) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	logName, ok := m.sources[source]
	if !ok {
		return fmt.Errorf("%w: %q", ErrSourceNotFound, source)
	}
	m.entries = append(m.entries, Entry{Source: source, LogName: logName, Message: message, Type: entryType})
	return nil
}
