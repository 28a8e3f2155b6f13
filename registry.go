package quill

import (
	"sync"

	"github.com/pkg/errors"
)

// Registry is a named table of loggers plus the construction Config
// they snapshot. Most programs use the package-level default registry;
// an explicit Registry keeps logger namespaces and construction
// defaults isolated, which the tests lean on heavily.
type Registry struct {
	mu      sync.Mutex
	loggers map[string]*Logger
	config  *Config
}

// NewRegistry creates an empty registry with a fresh Config.
func NewRegistry() *Registry {
	return &Registry{
		loggers: make(map[string]*Logger),
		config:  NewConfig(),
	}
}

// Config returns the construction config consulted by this registry's
// constructors.
func (r *Registry) Config() *Config {
	return r.config
}

// Register adds an externally constructed logger to the registry.
func (r *Registry) Register(l *Logger) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.loggers[l.Name()]; ok {
		return errors.Wrap(ErrDuplicateLogger, l.Name())
	}
	r.loggers[l.Name()] = l
	return nil
}

// Get returns the logger registered under name, or nil.
func (r *Registry) Get(name string) *Logger {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loggers[name]
}

// Drop removes the named logger and closes it: an async logger's
// terminate sentinel is enqueued behind its pending messages and the
// worker is joined before Drop returns.
func (r *Registry) Drop(name string) {
	r.mu.Lock()
	l, ok := r.loggers[name]
	delete(r.loggers, name)
	r.mu.Unlock()

	if ok {
		l.Close()
	}
}

// DropAll removes and closes every registered logger.
func (r *Registry) DropAll() {
	r.mu.Lock()
	dropped := make([]*Logger, 0, len(r.loggers))
	for _, l := range r.loggers {
		dropped = append(dropped, l)
	}
	r.loggers = make(map[string]*Logger)
	r.mu.Unlock()

	for _, l := range dropped {
		l.Close()
	}
}

// New constructs a logger over the given sinks using the current config
// snapshot and registers it. The caller keeps ownership of the sinks; a
// sink attached to several loggers must be a locked variant.
func (r *Registry) New(name string, sinks ...Sink) (*Logger, error) {
	return r.create(name, false, sinks)
}

// create builds a logger under the registry lock so a duplicate name
// never leaks a spawned worker.
func (r *Registry) create(name string, ownsSinks bool, sinks []Sink) (*Logger, error) {
	snap := r.config.snapshot()

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.loggers[name]; ok {
		if ownsSinks {
			for _, s := range sinks {
				closeSink(s)
			}
		}
		return nil, errors.Wrap(ErrDuplicateLogger, name)
	}

	l := snap.build(name, ownsSinks, sinks)
	r.loggers[name] = l
	return l, nil
}

// defaultRegistry backs the package-level convenience surface.
var defaultRegistry = NewRegistry()

// Default returns the package-level registry.
func Default() *Registry {
	return defaultRegistry
}

// Get returns the logger registered under name in the default registry,
// or nil.
func Get(name string) *Logger {
	return defaultRegistry.Get(name)
}

// Drop removes and closes the named logger in the default registry.
func Drop(name string) {
	defaultRegistry.Drop(name)
}

// DropAll removes and closes every logger in the default registry.
func DropAll() {
	defaultRegistry.DropAll()
}

// SetPattern sets the default pattern for loggers constructed through
// the default registry after this call.
func SetPattern(pattern string) {
	defaultRegistry.Config().SetPattern(pattern)
}

// SetFormatter sets the default formatter for loggers constructed
// through the default registry after this call.
func SetFormatter(f Formatter) {
	defaultRegistry.Config().SetFormatter(f)
}

// SetLevel sets the default threshold for loggers constructed through
// the default registry after this call.
func SetLevel(level Level) {
	defaultRegistry.Config().SetLevel(level)
}

// SetAsyncMode switches the default registry to async construction.
func SetAsyncMode(queueSize int, policy OverflowPolicy, warmup func()) error {
	return defaultRegistry.Config().SetAsyncMode(queueSize, policy, warmup)
}

// SetSyncMode switches the default registry back to synchronous
// construction.
func SetSyncMode() {
	defaultRegistry.Config().SetSyncMode()
}

// New constructs and registers a logger in the default registry.
func New(name string, sinks ...Sink) (*Logger, error) {
	return defaultRegistry.New(name, sinks...)
}
