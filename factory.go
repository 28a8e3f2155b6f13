package quill

// Convenience constructors mirroring the common sink arrangements. The
// MT variants build internally locked sinks safe to reach from many
// goroutines in synchronous mode; the ST variants skip the lock and
// rely on a single accessing goroutine (one producer in sync mode, or
// the worker in async mode). Sinks built here are owned by the logger
// and closed when it is dropped.

// NewRotatingLogger creates and registers a logger over a thread-safe
// rotating file sink.
func (r *Registry) NewRotatingLogger(name, path string, maxFileSize int64, maxFiles int, forceFlush bool) (*Logger, error) {
	sink, err := NewRotatingFileSinkMT(path, maxFileSize, maxFiles, forceFlush)
	if err != nil {
		return nil, err
	}
	return r.create(name, true, []Sink{sink})
}

// NewRotatingLoggerST is the single-threaded variant of
// NewRotatingLogger.
func (r *Registry) NewRotatingLoggerST(name, path string, maxFileSize int64, maxFiles int, forceFlush bool) (*Logger, error) {
	sink, err := NewRotatingFileSink(path, maxFileSize, maxFiles, forceFlush)
	if err != nil {
		return nil, err
	}
	return r.create(name, true, []Sink{sink})
}

// NewDailyLogger creates and registers a logger over a thread-safe
// daily file sink that rolls at midnight.
func (r *Registry) NewDailyLogger(name, path string, forceFlush bool) (*Logger, error) {
	sink, err := NewDailyFileSinkMT(path, forceFlush)
	if err != nil {
		return nil, err
	}
	return r.create(name, true, []Sink{sink})
}

// NewDailyLoggerST is the single-threaded variant of NewDailyLogger.
func (r *Registry) NewDailyLoggerST(name, path string, forceFlush bool) (*Logger, error) {
	sink, err := NewDailyFileSink(path, forceFlush)
	if err != nil {
		return nil, err
	}
	return r.create(name, true, []Sink{sink})
}

// NewStdoutLogger creates and registers a logger over a thread-safe
// stdout sink.
func (r *Registry) NewStdoutLogger(name string) (*Logger, error) {
	return r.create(name, true, []Sink{NewStdoutSinkMT()})
}

// NewStdoutLoggerST is the single-threaded variant of NewStdoutLogger.
func (r *Registry) NewStdoutLoggerST(name string) (*Logger, error) {
	return r.create(name, true, []Sink{NewStdoutSink()})
}

// NewStderrLogger creates and registers a logger over a thread-safe
// stderr sink.
func (r *Registry) NewStderrLogger(name string) (*Logger, error) {
	return r.create(name, true, []Sink{NewStderrSinkMT()})
}

// NewStderrLoggerST is the single-threaded variant of NewStderrLogger.
func (r *Registry) NewStderrLoggerST(name string) (*Logger, error) {
	return r.create(name, true, []Sink{NewStderrSink()})
}

// NewSyslogLogger creates and registers a logger shipping to a syslog
// daemon.
func (r *Registry) NewSyslogLogger(name, address, tag string) (*Logger, error) {
	sink, err := NewSyslogSinkMT(address, tag)
	if err != nil {
		return nil, err
	}
	return r.create(name, true, []Sink{sink})
}

// Package-level forms over the default registry.

// NewRotatingLogger creates and registers a rotating file logger in the
// default registry.
func NewRotatingLogger(name, path string, maxFileSize int64, maxFiles int, forceFlush bool) (*Logger, error) {
	return defaultRegistry.NewRotatingLogger(name, path, maxFileSize, maxFiles, forceFlush)
}

// NewRotatingLoggerST creates and registers a single-threaded rotating
// file logger in the default registry.
func NewRotatingLoggerST(name, path string, maxFileSize int64, maxFiles int, forceFlush bool) (*Logger, error) {
	return defaultRegistry.NewRotatingLoggerST(name, path, maxFileSize, maxFiles, forceFlush)
}

// NewDailyLogger creates and registers a daily file logger in the
// default registry.
func NewDailyLogger(name, path string, forceFlush bool) (*Logger, error) {
	return defaultRegistry.NewDailyLogger(name, path, forceFlush)
}

// NewDailyLoggerST creates and registers a single-threaded daily file
// logger in the default registry.
func NewDailyLoggerST(name, path string, forceFlush bool) (*Logger, error) {
	return defaultRegistry.NewDailyLoggerST(name, path, forceFlush)
}

// NewStdoutLogger creates and registers a stdout logger in the default
// registry.
func NewStdoutLogger(name string) (*Logger, error) {
	return defaultRegistry.NewStdoutLogger(name)
}

// NewStderrLogger creates and registers a stderr logger in the default
// registry.
func NewStderrLogger(name string) (*Logger, error) {
	return defaultRegistry.NewStderrLogger(name)
}

// NewSyslogLogger creates and registers a syslog logger in the default
// registry.
func NewSyslogLogger(name, address, tag string) (*Logger, error) {
	return defaultRegistry.NewSyslogLogger(name, address, tag)
}
