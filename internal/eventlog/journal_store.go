//go:build !windows

package eventlog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/coreos/go-systemd/v22/journal"

	"github.com/fyrsmithlabs/logfan/internal/sanitize"
)

// DefaultRegistryDir holds source bindings for JournalStore. Writing here
// needs root, which mirrors the administrator requirement on Windows.
const DefaultRegistryDir = "/etc/logfan/sources"

const (
	sourceFileSuffix = ".source"
	logNameField     = "LOGFAN_LOG_NAME"
)

// JournalStore is a Store backed by the systemd journal.
type JournalStore struct {
	dir string

	mu    sync.RWMutex
	cache map[string]string // source -> log name

	send    func(message string, priority journal.Priority, vars map[string]string) error
	enabled func() bool
}

// NewJournalStore creates a store keeping source bindings in dir.
// An empty dir selects DefaultRegistryDir.
func NewJournalStore(dir string) *JournalStore {
	if dir == "" {
		dir = DefaultRegistryDir
	}
	return &JournalStore{
		dir:     dir,
		cache:   make(map[string]string),
		send:    journal.Send,
		enabled: journal.Enabled,
	}
}

// Dir returns the registry directory.
func (s *JournalStore) Dir() string {
	return s.dir
}

func (s *JournalStore) sourcePath(source string) (string, error) {
	if err := sanitize.ValidateName(source); err != nil {
		return "", fmt.Errorf("invalid source name %q: %w", source, err)
	}
	return filepath.Join(s.dir, source+sourceFileSuffix), nil
}

func (s *JournalStore) SourceExists(source string) (bool, error) {
	_, err := s.LogNameFromSourceName(source)
	if errors.Is(err, ErrSourceNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *JournalStore) CreateEventSource(source, logName string) error {
	if err := sanitize.ValidateName(logName); err != nil {
		return fmt.Errorf("invalid log name %q: %w", logName, err)
	}
	path, err := s.sourcePath(source)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create registry directory %s: %w", s.dir, err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("%w: %q", ErrSourceExists, source)
	}
	if err != nil {
		return fmt.Errorf("failed to register source %q: %w", source, err)
	}
	if _, err := f.WriteString(logName + "\n"); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return fmt.Errorf("failed to register source %q: %w", source, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to register source %q: %w", source, err)
	}

	s.mu.Lock()
	s.cache[source] = logName
	s.mu.Unlock()
	return nil
}

func (s *JournalStore) LogNameFromSourceName(source string) (string, error) {
	path, err := s.sourcePath(source)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %q", ErrSourceNotFound, source)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read source %q: %w", source, err)
	}

	logName := strings.TrimSpace(string(data))
	s.mu.Lock()
	s.cache[source] = logName
	s.mu.Unlock()
	return logName, nil
}

// WriteEntry sends message to the journal with source as SYSLOG_IDENTIFIER.
func (s *JournalStore) WriteEntry(source, message string, entryType EntryType) error {
	if !s.enabled() {
		return ErrUnavailable
	}

	s.mu.RLock()
	logName, ok := s.cache[source]
	s.mu.RUnlock()
	if !ok {
		var err error
		if logName, err = s.LogNameFromSourceName(source); err != nil {
			return err
		}
	}

	vars := map[string]string{
		"SYSLOG_IDENTIFIER": source,
		logNameField:        logName,
	}
	if err := s.send(message, journalPriority(entryType), vars); err != nil {
		return fmt.Errorf("journal send: %w", err)
	}
	return nil
}

func journalPriority(t EntryType) journal.Priority {
	switch t {
	case Error:
		return journal.PriErr
	case Warning:
		return journal.PriWarning
	default:
		return journal.PriInfo
	}
}
