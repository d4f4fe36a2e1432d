// Package storage reads and writes the line-based task file.
package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/nibzard/taskline/internal/task"
)

// Storage persists a task list to a single file. Every save rewrites the
// whole file.
type Storage struct {
	path   string
	logger *log.Logger
}

// Option configures a Storage.
type Option func(*Storage)

// WithLogger sets the logger used by the lenient Load and Save.
func WithLogger(logger *log.Logger) Option {
	return func(s *Storage) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New returns a Storage for path.
func New(path string, opts ...Option) *Storage {
	s := &Storage{
		path:   path,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the file path.
func (s *Storage) Path() string {
	return s.path
}

// Load reads the file leniently. A missing or unreadable file yields an
// empty list; malformed lines are skipped. Problems are logged, never
// returned.
func (s *Storage) Load() *task.List {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Debug("task file not found, starting empty", "path", s.path)
		} else {
			s.logger.Warn("Failed to load state", "path", s.path, "err", err)
		}
		return task.NewList()
	}
	defer f.Close()

	tasks, skipped, err := DecodeLenient(f)
	for _, sk := range skipped {
		s.logger.Warn("skipping task line", "path", s.path, "line", sk.Line, "reason", sk.Reason, "content", sk.Raw)
	}
	if err != nil {
		s.logger.Warn("Failed to load state", "path", s.path, "err", err)
	}
	s.logger.Debug("loaded tasks", "path", s.path, "count", len(tasks), "skipped", len(skipped))
	return task.NewList(tasks...)
}

// LoadStrict reads the file and fails on any problem. An unreadable file is
// an ErrStorageLoad error; malformed content is ErrInvalidStorageFormat.
func (s *Storage) LoadStrict() (*task.List, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, task.WrapError(task.ErrStorageLoad, err, "Failed to load state: "+err.Error())
	}
	defer f.Close()

	tasks, err := DecodeStrict(f)
	if err != nil {
		return nil, err
	}
	return task.NewList(tasks...), nil
}

// Save rewrites the file. A failure is logged instead of returned, so the
// error is always nil.
func (s *Storage) Save(tasks *task.List) error {
	if err := s.SaveStrict(tasks); err != nil {
		s.logger.Error("Failed to save state", "path", s.path, "err", err)
		return nil
	}
	s.logger.Debug("saved tasks", "path", s.path, "count", tasks.Size())
	return nil
}

// SaveStrict rewrites the file. Any failure, including a path that is a
// directory, is an ErrStorageSave error.
func (s *Storage) SaveStrict(tasks *task.List) error {
	if err := s.write(tasks); err != nil {
		return task.WrapError(task.ErrStorageSave, err, "Failed to save state: "+err.Error())
	}
	return nil
}

func (s *Storage) write(tasks *task.List) error {
	target, mode, err := resolveTarget(s.path)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := Encode(&buf, tasks.Tasks()); err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}

	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create task dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(target)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	_, writeErr := tmp.Write(buf.Bytes())
	closeErr := tmp.Close()
	if err := errors.Join(writeErr, closeErr); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, target); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace task file: %w", err)
	}
	return nil
}

// resolveTarget returns the file a save replaces and the permissions it
// must keep. A symlinked task file is written through to its target so the
// link survives; a new file gets 0644.
func resolveTarget(path string) (string, os.FileMode, error) {
	info, err := os.Lstat(path)
	if errors.Is(err, os.ErrNotExist) {
		return path, 0644, nil
	}
	if err != nil {
		return "", 0, fmt.Errorf("stat task file: %w", err)
	}

	target := path
	if info.Mode()&os.ModeSymlink != 0 {
		target, err = filepath.EvalSymlinks(path)
		if err != nil {
			return "", 0, fmt.Errorf("resolve task file link: %w", err)
		}
		info, err = os.Stat(target)
		if err != nil {
			return "", 0, fmt.Errorf("stat task file: %w", err)
		}
	}
	if info.IsDir() {
		return "", 0, fmt.Errorf("%s is a directory", path)
	}
	return target, info.Mode().Perm(), nil
}
