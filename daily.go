package quill

import (
	"os"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
)

// dailyNameFormat names rotated files by the calendar day they cover.
const dailyNameFormat = "2006-01-02"

// DailyFileSink writes to a file and rolls it over when the wall-clock
// day advances past the day the file was opened on. The finished file
// is renamed path.YYYY-MM-DD and a fresh active file is opened.
type DailyFileSink struct {
	backend       *fileBackend
	openDay       time.Time
	rotationCount atomic.Uint64

	// now is swapped in tests to step the clock.
	now func() time.Time
}

// NewDailyFileSink creates an unlocked daily file sink.
func NewDailyFileSink(path string, forceFlush bool) (*DailyFileSink, error) {
	backend, err := openFileBackend(path, forceFlush)
	if err != nil {
		return nil, err
	}

	s := &DailyFileSink{
		backend: backend,
		now:     time.Now,
	}
	s.openDay = truncateToDay(s.now())
	return s, nil
}

// NewDailyFileSinkMT creates a daily file sink that is safe to share
// across goroutines.
func NewDailyFileSinkMT(path string, forceFlush bool) (Sink, error) {
	s, err := NewDailyFileSink(path, forceFlush)
	if err != nil {
		return nil, err
	}
	return NewLockedSink(s), nil
}

// Consume writes one record, rolling the file over first if the day has
// advanced since the file was opened.
func (s *DailyFileSink) Consume(p []byte) error {
	if day := truncateToDay(s.now()); day.After(s.openDay) {
		if err := s.rotate(day); err != nil {
			return err
		}
	}
	return s.backend.write(p)
}

// Flush pushes buffered records through to the file.
func (s *DailyFileSink) Flush() error {
	return s.backend.flush()
}

// Close flushes and closes the active file.
func (s *DailyFileSink) Close() error {
	return s.backend.close()
}

// RotationCount returns how many rollovers have occurred.
func (s *DailyFileSink) RotationCount() uint64 {
	return s.rotationCount.Load()
}

// rotate renames the finished file after the day it covered and opens a
// fresh active file for the new day.
func (s *DailyFileSink) rotate(day time.Time) error {
	b := s.backend

	if err := b.lock.Lock(); err != nil {
		return errors.Wrap(err, "acquiring file lock for rotation")
	}
	defer b.lock.Unlock()

	if err := b.closeCurrent(); err != nil {
		return err
	}

	rotated := b.path + "." + s.openDay.Format(dailyNameFormat)
	if err := os.Rename(b.path, rotated); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "rotating daily log")
	}

	if err := b.open(); err != nil {
		return err
	}

	s.openDay = day
	s.rotationCount.Add(1)
	return nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
