// Package follow streams records appended to a log file written by the
// file sink, across daily rotations.
//
// The follower watches the file's directory rather than the file itself:
// rotation removes the current file and the next write recreates it.
package follow

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/logfan/internal/filesink"
)

// ErrWatcherFailed indicates the filesystem watcher could not be set up.
var ErrWatcherFailed = errors.New("failed to initialize filesystem watcher")

const lineEnding = "\r\n"

// Option configures a Follower.
type Option func(*Follower)

// FromStart emits records already in the file when the Follower is created.
// By default only records appended afterwards are emitted.
func FromStart() Option {
	return func(f *Follower) {
		f.fromStart = true
	}
}

// WithLogger sets the logger for watcher errors. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(f *Follower) {
		f.logger = l
	}
}

// Follower tails one log file. It is not safe for concurrent use; call Run
// from a single goroutine.
type Follower struct {
	path      string
	fromStart bool
	logger    *zap.Logger
	watcher   *fsnotify.Watcher

	file    *os.File
	offset  int64
	pending []byte
	record  []string
}

// New starts watching path. The file does not need to exist yet, but its
// directory does.
func New(path string, opts ...Option) (*Follower, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	f := &Follower{
		path:   abs,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWatcherFailed, err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("%w: watch %s: %w", ErrWatcherFailed, filepath.Dir(abs), err)
	}
	f.watcher = w

	if err := f.open(!f.fromStart); err != nil {
		_ = w.Close()
		return nil, err
	}
	return f, nil
}

// Path returns the followed file.
func (f *Follower) Path() string {
	return f.path
}

// Run calls emit for every complete record until ctx is done. A record is
// the lines before a separator line, joined with "\n". Run closes the
// Follower on return.
func (f *Follower) Run(ctx context.Context, emit func(record string)) error {
	defer f.close()

	// Records present before New returned.
	if err := f.drain(emit); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-f.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != f.path {
				continue
			}
			if err := f.handle(ev, emit); err != nil {
				return err
			}

		case err, ok := <-f.watcher.Errors:
			if !ok {
				return nil
			}
			f.logger.Warn("watcher error", zap.String("path", f.path), zap.Error(err))
		}
	}
}

func (f *Follower) handle(ev fsnotify.Event, emit func(string)) error {
	switch {
	case ev.Has(fsnotify.Create):
		// Rotation recreated the file. Finish the old handle first.
		if err := f.drain(emit); err != nil {
			return err
		}
		if f.isCurrent() {
			return nil
		}
		f.closeFile()
		if err := f.open(false); err != nil {
			return err
		}
		return f.drain(emit)

	case ev.Has(fsnotify.Write):
		if f.file == nil {
			if err := f.open(false); err != nil {
				return err
			}
		}
		return f.drain(emit)

	case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
		if err := f.drain(emit); err != nil {
			return err
		}
		f.closeFile()
	}
	return nil
}

// open opens the followed file, at its end when seekEnd is set. A missing
// file is not an error.
func (f *Follower) open(seekEnd bool) error {
	file, err := os.Open(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("open %s: %w", f.path, err)
	}
	var offset int64
	if seekEnd {
		offset, err = file.Seek(0, io.SeekEnd)
		if err != nil {
			_ = file.Close()
			return fmt.Errorf("seek %s: %w", f.path, err)
		}
	}
	f.file = file
	f.offset = offset
	f.pending = f.pending[:0]
	return nil
}

// drain reads to EOF and emits completed records.
func (f *Follower) drain(emit func(string)) error {
	if f.file == nil {
		return nil
	}
	if info, err := f.file.Stat(); err == nil && info.Size() < f.offset {
		// Truncated in place.
		if _, err := f.file.Seek(0, io.SeekStart); err != nil {
			return fmt.Errorf("seek %s: %w", f.path, err)
		}
		f.offset = 0
		f.pending = f.pending[:0]
	}

	data, err := io.ReadAll(f.file)
	if err != nil {
		return fmt.Errorf("read %s: %w", f.path, err)
	}
	f.offset += int64(len(data))
	f.pending = append(f.pending, data...)

	for {
		i := bytes.Index(f.pending, []byte(lineEnding))
		if i < 0 {
			break
		}
		line := string(f.pending[:i])
		f.pending = f.pending[i+len(lineEnding):]

		if line == filesink.Separator {
			emit(strings.Join(f.record, "\n"))
			f.record = f.record[:0]
			continue
		}
		f.record = append(f.record, line)
	}
	return nil
}

// isCurrent reports whether the open handle still refers to the file at path.
// Create events can arrive after the new file was already opened.
func (f *Follower) isCurrent() bool {
	if f.file == nil {
		return false
	}
	open, err := f.file.Stat()
	if err != nil {
		return false
	}
	onDisk, err := os.Stat(f.path)
	if err != nil {
		return false
	}
	return os.SameFile(open, onDisk)
}

func (f *Follower) closeFile() {
	if f.file != nil {
		_ = f.file.Close()
		f.file = nil
	}
}

func (f *Follower) close() {
	f.closeFile()
	_ = f.watcher.Close()
}
