package quill

import (
	"fmt"
	"os"
	"time"
)

// LogError describes a failure inside the logging pipeline. Failures on
// the worker goroutine of an async logger cannot be returned to any
// caller, so they are delivered through the logger's ErrorHandler
// instead of being silently dropped.
type LogError struct {
	Time   time.Time
	Logger string
	Source string // "consume", "flush", "worker"
	Err    error
}

// Error returns the string representation of the LogError.
func (le LogError) Error() string {
	return fmt.Sprintf("[%s] %s error in logger %q: %v",
		le.Time.Format("2006-01-02 15:04:05"),
		le.Source, le.Logger, le.Err)
}

// ErrorHandler handles logging failures. Handlers must not call back
// into the logger that produced the error.
type ErrorHandler func(LogError)

// StderrErrorHandler writes errors to stderr. It is the default
// handler.
func StderrErrorHandler(err LogError) {
	fmt.Fprintf(os.Stderr, "%s\n", err.Error())
}

// SilentErrorHandler discards all errors.
func SilentErrorHandler(LogError) {}

// ChannelErrorHandler returns an error handler that sends errors to a
// channel without blocking; when the channel is full the error falls
// back to stderr.
func ChannelErrorHandler(ch chan<- LogError) ErrorHandler {
	return func(err LogError) {
		select {
		case ch <- err:
		default:
			StderrErrorHandler(err)
		}
	}
}

// reportError routes a pipeline failure to the logger's error handler
// and bumps the error counter.
func (l *Logger) reportError(source string, err error) {
	if err == nil {
		return
	}
	l.errorCount.Add(1)

	handler := l.errorHandler.Load()
	if handler == nil {
		StderrErrorHandler(LogError{Time: time.Now(), Logger: l.name, Source: source, Err: err})
		return
	}
	(*handler)(LogError{Time: time.Now(), Logger: l.name, Source: source, Err: err})
}

// SetErrorHandler replaces the handler that receives pipeline failures.
// Passing nil restores the stderr default.
func (l *Logger) SetErrorHandler(handler ErrorHandler) {
	if handler == nil {
		l.errorHandler.Store(nil)
		return
	}
	l.errorHandler.Store(&handler)
}
