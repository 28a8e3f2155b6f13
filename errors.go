package quill

import (
	"github.com/pkg/errors"
)

// Sentinel errors surfaced by the registry and logger lifecycle. Wrap
// sites add context with pkg/errors, so compare with errors.Is /
// errors.Cause rather than equality on the returned value.
var (
	// ErrDuplicateLogger is returned when registering a logger under a
	// name that is already taken.
	ErrDuplicateLogger = errors.New("logger name already registered")

	// ErrLoggerClosed is returned when logging through a logger that
	// has been dropped or closed.
	ErrLoggerClosed = errors.New("logger is closed")
)
