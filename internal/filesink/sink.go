package filesink

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const (
	// TimestampLayout formats the leading column of every record.
	TimestampLayout = "2006/01/02 15:04:05"

	// BackupDateLayout formats the date prefix of rotated files.
	BackupDateLayout = "20060102"

	newline = "\r\n"
)

// Separator closes every record.
var Separator = strings.Repeat("-", 119)

// Entry is a single record handed to the sink.
type Entry struct {
	Message           string
	ApplicationName   string
	MachineIdentifier string
	Folder            string

	// BackupTime is set to the start of the current day when this write
	// rotated the previous file.
	BackupTime time.Time
}

// Option configures a Sink.
type Option func(*Sink)

// WithClock overrides the time source. Used by tests to move "today".
func WithClock(now func() time.Time) Option {
	return func(s *Sink) {
		s.now = now
	}
}

// Sink writes entries to disk. The zero value is not usable; call New.
type Sink struct {
	now     func() time.Time
	metrics *Metrics
}

// New creates a Sink.
func New(opts ...Option) *Sink {
	s := &Sink{
		now:     time.Now,
		metrics: NewMetrics(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LogPath returns the current log file for an application.
func LogPath(folder, applicationName string) string {
	return filepath.Join(folder, applicationName+"Log.txt")
}

// ErrorLogPath returns the file that receives diverted records.
func ErrorLogPath(folder, applicationName string) string {
	return filepath.Join(folder, applicationName+"ErrorLog.txt")
}

// BackupPath returns the rotated file name for the given last-modified time.
func BackupPath(folder, applicationName string, modified time.Time) string {
	return filepath.Join(folder, modified.Format(BackupDateLayout)+"_"+applicationName+"Log.txt")
}

// WriteEntry rotates the current file if it belongs to an earlier day and
// appends e. Failures are diverted to the error file and never surface.
func (s *Sink) WriteEntry(e *Entry) {
	if e == nil {
		return
	}
	if err := s.writePrimary(e); err != nil {
		if derr := s.writeDiverted(e, err); derr != nil {
			s.metrics.WritesTotal.WithLabelValues(resultDropped).Inc()
			return
		}
		s.metrics.WritesTotal.WithLabelValues(resultDiverted).Inc()
		return
	}
	s.metrics.WritesTotal.WithLabelValues(resultOK).Inc()
}

func (s *Sink) writePrimary(e *Entry) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("file sink panic: %v", r)
		}
	}()

	path := LogPath(e.Folder, e.ApplicationName)
	mu := lockFor(path)
	mu.Lock()
	defer mu.Unlock()

	now := s.now()
	if err := s.rotate(path, e, now); err != nil {
		return fmt.Errorf("rotate %s: %w", path, err)
	}
	return appendFile(path, formatRecord(now, e.MachineIdentifier, e.Message))
}

func (s *Sink) writeDiverted(e *Entry, cause error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("file sink panic: %v", r)
		}
	}()

	path := ErrorLogPath(e.Folder, e.ApplicationName)
	mu := lockFor(path)
	mu.Lock()
	defer mu.Unlock()

	record := formatRecord(s.now(), e.MachineIdentifier, e.Message) +
		cause.Error() + newline + Separator + newline
	return appendFile(path, record)
}

// rotate moves an earlier day's file aside. Caller holds the path lock.
func (s *Sink) rotate(path string, e *Entry, now time.Time) error {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}

	modified := info.ModTime().In(now.Location())
	if !startOfDay(modified).Before(startOfDay(now)) {
		return nil
	}

	backup := BackupPath(e.Folder, e.ApplicationName, modified)
	if err := copyFile(path, backup); err != nil {
		return err
	}
	e.BackupTime = startOfDay(now)
	if err := os.Remove(path); err != nil {
		return err
	}
	s.metrics.RotationsTotal.Inc()
	return nil
}

func formatRecord(ts time.Time, machine, message string) string {
	var b strings.Builder
	b.WriteString(ts.Format(TimestampLayout))
	b.WriteByte('\t')
	if machine != "" {
		b.WriteString(machine)
		b.WriteByte('\t')
	}
	b.WriteString(message)
	b.WriteString(newline)
	b.WriteString(Separator)
	b.WriteString(newline)
	return b.String()
}

func appendFile(path, content string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(content); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// copyFile copies src over dst, truncating dst if it already exists.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

var fileLocks sync.Map // absolute path -> *sync.Mutex

func lockFor(path string) *sync.Mutex {
	key := path
	if abs, err := filepath.Abs(path); err == nil {
		key = abs
	}
	mu, _ := fileLocks.LoadOrStore(key, &sync.Mutex{})
	return mu.(*sync.Mutex)
}
