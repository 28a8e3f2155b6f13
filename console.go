package quill

import (
	"bufio"
	"io"
	"os"

	"github.com/pkg/errors"
)

// ConsoleSink writes formatted records to an output stream through a
// buffer. With force flush enabled every record is pushed through to the
// stream immediately.
type ConsoleSink struct {
	out        io.Writer
	writer     *bufio.Writer
	forceFlush bool
}

// NewConsoleSink creates an unlocked sink around an arbitrary writer.
func NewConsoleSink(w io.Writer, forceFlush bool) *ConsoleSink {
	return &ConsoleSink{
		out:        w,
		writer:     bufio.NewWriterSize(w, defaultBufferSize),
		forceFlush: forceFlush,
	}
}

// NewStdoutSink creates an unlocked sink writing to standard output.
func NewStdoutSink() *ConsoleSink {
	return NewConsoleSink(os.Stdout, false)
}

// NewStderrSink creates an unlocked sink writing to standard error.
// Stderr records are flushed per message so diagnostics are never stuck
// in a buffer.
func NewStderrSink() *ConsoleSink {
	return NewConsoleSink(os.Stderr, true)
}

// NewStdoutSinkMT creates a stdout sink that is safe to share across
// goroutines.
func NewStdoutSinkMT() Sink {
	return NewLockedSink(NewStdoutSink())
}

// NewStderrSinkMT creates a stderr sink that is safe to share across
// goroutines.
func NewStderrSinkMT() Sink {
	return NewLockedSink(NewStderrSink())
}

// Consume writes one record to the stream.
func (s *ConsoleSink) Consume(p []byte) error {
	if _, err := s.writer.Write(p); err != nil {
		return errors.Wrap(err, "writing to console")
	}
	if s.forceFlush {
		return errors.Wrap(s.writer.Flush(), "flushing console")
	}
	return nil
}

// Flush pushes buffered records through to the stream.
func (s *ConsoleSink) Flush() error {
	return errors.Wrap(s.writer.Flush(), "flushing console")
}
