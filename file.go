package quill

import (
	"bufio"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/pkg/errors"
)

// fileBackend is the shared open/write/flush/close machinery behind the
// file-based sinks. Rotation is layered on top by RotatingFileSink and
// DailyFileSink. A flock guards the open and rename windows so two
// processes rotating the same path cannot interleave.
type fileBackend struct {
	path       string
	file       *os.File
	writer     *bufio.Writer
	size       int64
	forceFlush bool
	lock       *flock.Flock
}

func openFileBackend(path string, forceFlush bool) (*fileBackend, error) {
	if path == "" {
		return nil, errors.New("file sink path cannot be empty")
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(err, "creating log directory")
	}

	b := &fileBackend{
		path:       path,
		forceFlush: forceFlush,
		lock:       flock.New(path + ".lock"),
	}

	if err := b.lock.Lock(); err != nil {
		return nil, errors.Wrap(err, "acquiring file lock")
	}
	defer b.lock.Unlock()

	if err := b.open(); err != nil {
		return nil, err
	}
	return b, nil
}

// open opens the active file for appending and records its current size.
// Callers hold the flock.
func (b *fileBackend) open() error {
	file, err := os.OpenFile(b.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return errors.Wrap(err, "opening log file")
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return errors.Wrap(err, "getting file info")
	}

	b.file = file
	b.writer = bufio.NewWriterSize(file, defaultBufferSize)
	b.size = info.Size()
	return nil
}

func (b *fileBackend) write(p []byte) error {
	if b.writer == nil {
		return errors.New("file sink is closed")
	}
	n, err := b.writer.Write(p)
	b.size += int64(n)
	if err != nil {
		return errors.Wrap(err, "writing to log file")
	}
	if b.forceFlush {
		return errors.Wrap(b.writer.Flush(), "flushing log file")
	}
	return nil
}

func (b *fileBackend) flush() error {
	if b.writer == nil {
		return errors.New("file sink is closed")
	}
	return errors.Wrap(b.writer.Flush(), "flushing log file")
}

// closeCurrent flushes and closes the active file without touching the
// lock, as part of a rotation or a final close.
func (b *fileBackend) closeCurrent() error {
	if b.writer == nil || b.file == nil {
		return nil
	}
	if err := b.writer.Flush(); err != nil {
		return errors.Wrap(err, "flushing current log")
	}
	if err := b.file.Close(); err != nil {
		return errors.Wrap(err, "closing current log")
	}
	return nil
}

func (b *fileBackend) close() error {
	err := b.closeCurrent()
	b.file = nil
	b.writer = nil
	return err
}
