package quill

import (
	"sync"

	"github.com/pkg/errors"
)

// Config holds process-wide construction defaults: pattern, level, and
// sync/async mode. A logger snapshots the config at construction time;
// later mutations affect only loggers constructed afterwards. Existing
// async workers are never migrated.
type Config struct {
	mu        sync.Mutex
	formatter Formatter
	level     Level
	async     bool
	queueSize int
	overflow  OverflowPolicy
	warmup    func()
}

// configSnapshot is the immutable view a logger is constructed from.
type configSnapshot struct {
	formatter Formatter
	level     Level
	async     bool
	queueSize int
	overflow  OverflowPolicy
	warmup    func()
}

// NewConfig returns a config in its initial state: synchronous mode,
// level info, builtin pattern.
func NewConfig() *Config {
	return &Config{
		formatter: defaultFormatter(),
		level:     LevelInfo,
		queueSize: defaultQueueSize,
	}
}

// SetPattern sets the default formatting pattern for loggers
// constructed after this call.
func (c *Config) SetPattern(pattern string) {
	c.SetFormatter(NewPatternFormatter(pattern))
}

// SetFormatter sets the default formatter for loggers constructed after
// this call.
func (c *Config) SetFormatter(f Formatter) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.formatter = f
}

// SetLevel sets the default severity threshold for loggers constructed
// after this call.
func (c *Config) SetLevel(level Level) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.level = level
}

// SetAsyncMode makes subsequently constructed loggers asynchronous.
// Each such logger pre-allocates its own queue of queueSize entries
// (rounded up to a power of two) and its own worker goroutine. The
// warmup callback, when non-nil, runs once on each worker at start.
func (c *Config) SetAsyncMode(queueSize int, policy OverflowPolicy, warmup func()) error {
	if queueSize <= 0 {
		return errors.Errorf("async queue size must be positive, got %d", queueSize)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.async = true
	c.queueSize = queueSize
	c.overflow = policy
	c.warmup = warmup
	return nil
}

// SetSyncMode makes subsequently constructed loggers synchronous.
// Loggers already running async keep their queue and worker.
func (c *Config) SetSyncMode() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.async = false
}

func (c *Config) snapshot() configSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return configSnapshot{
		formatter: c.formatter,
		level:     c.level,
		async:     c.async,
		queueSize: c.queueSize,
		overflow:  c.overflow,
		warmup:    c.warmup,
	}
}

// build constructs a logger from this snapshot.
func (snap configSnapshot) build(name string, ownsSinks bool, sinks []Sink) *Logger {
	var l *Logger
	if snap.async {
		l = NewAsyncLogger(name, snap.queueSize, snap.overflow, snap.warmup, sinks...)
	} else {
		l = NewLogger(name, sinks...)
	}
	l.SetLevel(snap.level)
	l.SetFormatter(snap.formatter)
	l.ownsSinks = ownsSinks
	return l
}
