package quill

import (
	"fmt"
	"os"
	"sync/atomic"

	"github.com/pkg/errors"
)

// RotatingFileSink writes to a file and rolls it over once the
// cumulative size would exceed maxFileSize. Rolled files are numbered
// path.1 (newest) through path.N (oldest) with at most maxFiles
// retained; the oldest is evicted first.
type RotatingFileSink struct {
	backend       *fileBackend
	maxFileSize   int64
	maxFiles      int
	rotationCount atomic.Uint64
}

// NewRotatingFileSink creates an unlocked rotating file sink.
// maxFileSize must be positive and maxFiles must be at least 1.
func NewRotatingFileSink(path string, maxFileSize int64, maxFiles int, forceFlush bool) (*RotatingFileSink, error) {
	if maxFileSize <= 0 {
		return nil, errors.Errorf("max file size must be positive, got %d", maxFileSize)
	}
	if maxFiles < 1 {
		return nil, errors.Errorf("max files must be at least 1, got %d", maxFiles)
	}

	backend, err := openFileBackend(path, forceFlush)
	if err != nil {
		return nil, err
	}

	return &RotatingFileSink{
		backend:     backend,
		maxFileSize: maxFileSize,
		maxFiles:    maxFiles,
	}, nil
}

// NewRotatingFileSinkMT creates a rotating file sink that is safe to
// share across goroutines.
func NewRotatingFileSinkMT(path string, maxFileSize int64, maxFiles int, forceFlush bool) (Sink, error) {
	s, err := NewRotatingFileSink(path, maxFileSize, maxFiles, forceFlush)
	if err != nil {
		return nil, err
	}
	return NewLockedSink(s), nil
}

// Consume writes one record, rolling the file over first when the write
// would cross maxFileSize. A rotation failure is returned as the
// Consume error, never swallowed.
func (s *RotatingFileSink) Consume(p []byte) error {
	if s.backend.size+int64(len(p)) > s.maxFileSize {
		if err := s.rotate(); err != nil {
			return err
		}
	}
	return s.backend.write(p)
}

// Flush pushes buffered records through to the file.
func (s *RotatingFileSink) Flush() error {
	return s.backend.flush()
}

// Close flushes and closes the active file.
func (s *RotatingFileSink) Close() error {
	return s.backend.close()
}

// RotationCount returns how many rollovers have occurred.
func (s *RotatingFileSink) RotationCount() uint64 {
	return s.rotationCount.Load()
}

// rotate shifts path.i to path.i+1 for every retained file, evicting
// the oldest, then renames the active file to path.1 and reopens a
// fresh one. The flock is held across the whole rename window.
func (s *RotatingFileSink) rotate() error {
	b := s.backend

	if err := b.lock.Lock(); err != nil {
		return errors.Wrap(err, "acquiring file lock for rotation")
	}
	defer b.lock.Unlock()

	if err := b.closeCurrent(); err != nil {
		return err
	}

	oldest := s.rotatedName(s.maxFiles)
	if err := os.Remove(oldest); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "removing oldest rotated log")
	}

	for i := s.maxFiles - 1; i >= 1; i-- {
		src := s.rotatedName(i)
		if _, err := os.Stat(src); os.IsNotExist(err) {
			continue
		}
		if err := os.Rename(src, s.rotatedName(i+1)); err != nil {
			return errors.Wrapf(err, "rolling %s", src)
		}
	}

	if err := os.Rename(b.path, s.rotatedName(1)); err != nil {
		return errors.Wrap(err, "rotating current log")
	}

	if err := b.open(); err != nil {
		return err
	}

	s.rotationCount.Add(1)
	return nil
}

func (s *RotatingFileSink) rotatedName(index int) string {
	return fmt.Sprintf("%s.%d", s.backend.path, index)
}
