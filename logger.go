package quill

import (
	"sync"
	"sync/atomic"
	"time"
)

// Logger binds a name, a severity threshold, a formatter, and an
// ordered list of sinks. A synchronous logger formats and fans out on
// the calling goroutine; an async logger hands an owned Message to its
// dedicated queue and worker.
//
// The sink list is fixed at construction. The threshold is read with
// relaxed consistency: a SetLevel racing an in-flight Log may let that
// one message through under the old threshold, which is accepted.
type Logger struct {
	name      string
	level     atomic.Int32
	formatter atomic.Pointer[formatterHolder]
	sinks     []Sink
	ownsSinks bool

	// Async state; queue is nil for a synchronous logger.
	queue    *asyncQueue
	workerWg sync.WaitGroup

	closed    atomic.Bool
	closeOnce sync.Once

	errorHandler atomic.Pointer[ErrorHandler]
	errorCount   atomic.Uint64
	logged       [LevelCritical + 1]atomic.Uint64
	bytesWritten atomic.Uint64
}

// NewLogger creates a synchronous logger with the default level and
// pattern. Callers sharing a sink across loggers or goroutines must
// pass its locked variant.
func NewLogger(name string, sinks ...Sink) *Logger {
	l := &Logger{name: name, sinks: sinks}
	l.level.Store(int32(LevelInfo))
	l.formatter.Store(&formatterHolder{f: defaultFormatter()})
	return l
}

// formatterHolder keeps the formatter behind one pointer so differently
// typed formatters can be swapped atomically.
type formatterHolder struct {
	f Formatter
}

// NewAsyncLogger creates a logger with a dedicated queue and worker
// goroutine. queueSize is rounded up to a power of two; zero or
// negative selects the default. The warmup callback, when non-nil, runs
// once on the worker goroutine before the first message is consumed.
func NewAsyncLogger(name string, queueSize int, policy OverflowPolicy, warmup func(), sinks ...Sink) *Logger {
	l := NewLogger(name, sinks...)
	l.queue = newAsyncQueue(queueSize, policy)
	l.startWorker(warmup)
	return l
}

// Name returns the logger's name.
func (l *Logger) Name() string {
	return l.name
}

// Level returns the current severity threshold.
func (l *Logger) Level() Level {
	return Level(l.level.Load())
}

// SetLevel atomically replaces the severity threshold.
func (l *Logger) SetLevel(level Level) {
	l.level.Store(int32(level))
}

// SetFormatter replaces the formatter used for subsequent messages.
func (l *Logger) SetFormatter(f Formatter) {
	l.formatter.Store(&formatterHolder{f: f})
}

// SetPattern replaces the formatter with a compiled pattern formatter.
func (l *Logger) SetPattern(pattern string) {
	l.SetFormatter(NewPatternFormatter(pattern))
}

// Sinks returns a copy of the ordered sink list.
func (l *Logger) Sinks() []Sink {
	out := make([]Sink, len(l.sinks))
	copy(out, l.sinks)
	return out
}

// Log gates the message on the severity threshold, then dispatches it.
// For a synchronous logger the returned error is the last sink failure;
// an async logger always returns nil once the message is handed to the
// queue (or dropped by the overflow policy).
func (l *Logger) Log(level Level, format string, args ...interface{}) error {
	if !shouldLog(l.Level(), level) {
		return nil
	}
	return l.submit(level, format, args)
}

// ForceLog dispatches regardless of the threshold. A threshold of
// LevelOff still suppresses the message.
func (l *Logger) ForceLog(level Level, format string, args ...interface{}) error {
	if l.Level() == LevelOff {
		return nil
	}
	return l.submit(level, format, args)
}

// Tracef logs at trace level.
func (l *Logger) Tracef(format string, args ...interface{}) error {
	return l.Log(LevelTrace, format, args...)
}

// Debugf logs at debug level.
func (l *Logger) Debugf(format string, args ...interface{}) error {
	return l.Log(LevelDebug, format, args...)
}

// Infof logs at info level.
func (l *Logger) Infof(format string, args ...interface{}) error {
	return l.Log(LevelInfo, format, args...)
}

// Warnf logs at warn level.
func (l *Logger) Warnf(format string, args ...interface{}) error {
	return l.Log(LevelWarn, format, args...)
}

// Errorf logs at error level.
func (l *Logger) Errorf(format string, args ...interface{}) error {
	return l.Log(LevelError, format, args...)
}

// Criticalf logs at critical level.
func (l *Logger) Criticalf(format string, args ...interface{}) error {
	return l.Log(LevelCritical, format, args...)
}

func (l *Logger) submit(level Level, format string, args []interface{}) error {
	if l.closed.Load() {
		return ErrLoggerClosed
	}

	m := Message{
		Name:      l.name,
		Level:     level,
		Format:    format,
		Args:      args,
		Timestamp: time.Now(),
	}

	if l.queue != nil {
		l.queue.push(m)
		return nil
	}
	return l.deliver(&m)
}

// deliver renders the message and fans it out to every sink in
// registration order. Sink failures go to the error handler; the last
// one is also returned so the synchronous path can surface it. A failed
// sink never prevents delivery to the remaining sinks.
func (l *Logger) deliver(m *Message) error {
	payload := l.currentFormatter().Format(m)

	if m.Level >= LevelTrace && m.Level <= LevelCritical {
		l.logged[m.Level].Add(1)
	}
	l.bytesWritten.Add(uint64(len(payload)))

	var lastErr error
	for _, s := range l.sinks {
		if err := s.Consume(payload); err != nil {
			l.reportError("consume", err)
			lastErr = err
		}
	}
	return lastErr
}

func (l *Logger) currentFormatter() Formatter {
	return l.formatter.Load().f
}

// Flush forces every bound sink to flush.
func (l *Logger) Flush() error {
	return l.flushSinks()
}

func (l *Logger) flushSinks() error {
	var lastErr error
	for _, s := range l.sinks {
		if err := s.Flush(); err != nil {
			l.reportError("flush", err)
			lastErr = err
		}
	}
	return lastErr
}

// Close shuts the logger down. For an async logger the terminate
// sentinel is enqueued behind every pending message and the worker is
// joined, so nothing enqueued before Close is lost. Sinks constructed
// by the convenience constructors are closed; explicitly supplied sinks
// stay open because they may be shared with other loggers.
func (l *Logger) Close() error {
	var err error
	l.closeOnce.Do(func() {
		l.closed.Store(true)
		if l.queue != nil {
			l.queue.push(Message{kind: msgTerminate})
			l.workerWg.Wait()
		} else {
			err = l.flushSinks()
		}
		if l.ownsSinks {
			for _, s := range l.sinks {
				if cerr := closeSink(s); cerr != nil && err == nil {
					err = cerr
				}
			}
		}
	})
	return err
}
