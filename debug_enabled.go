//go:build quill_debug

package quill

import "runtime"

// Debugf logs through ForceLog, bypassing the runtime threshold, and
// attaches the call site. Built only under the quill_debug tag; without
// it the call compiles to a no-op.
func Debugf(l *Logger, format string, args ...interface{}) {
	if _, file, line, ok := runtime.Caller(1); ok {
		format += " (%s #%d)"
		args = append(args, file, line)
	}
	l.ForceLog(LevelDebug, format, args...)
}
