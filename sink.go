package quill

import (
	"io"
	"sync"
)

// Sink is a destination that accepts fully formatted log output. A sink
// is not safe for concurrent use unless wrapped by NewLockedSink; the
// unlocked form avoids mutex overhead when exactly one goroutine touches
// it, such as the worker of an async logger.
type Sink interface {
	// Consume writes one formatted record to the destination. Side
	// effects such as file rollover happen inside Consume, so a
	// rollover failure surfaces as a Consume error.
	Consume(p []byte) error

	// Flush forces any buffered data out to the destination.
	Flush() error
}

// lockedSink serializes Consume and Flush with a mutex, making any sink
// safe to share across goroutines and loggers.
type lockedSink struct {
	mu   sync.Mutex
	base Sink
}

// NewLockedSink wraps a sink so that Consume and Flush are serialized
// internally. Use it for any sink shared by more than one goroutine or
// attached to more than one logger.
func NewLockedSink(base Sink) Sink {
	return &lockedSink{base: base}
}

func (s *lockedSink) Consume(p []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.base.Consume(p)
}

func (s *lockedSink) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.base.Flush()
}

// Close closes the underlying sink if it is closeable.
func (s *lockedSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return closeSink(s.base)
}

// closeSink closes a sink when it holds resources that need closing.
func closeSink(s Sink) error {
	if c, ok := s.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
