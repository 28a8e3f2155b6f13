//go:build quill_trace

package quill

import "runtime"

// Tracef logs through ForceLog, bypassing the runtime threshold, and
// attaches the call site. Built only under the quill_trace tag; without
// it the call compiles to a no-op.
func Tracef(l *Logger, format string, args ...interface{}) {
	if _, file, line, ok := runtime.Caller(1); ok {
		format += " (%s #%d)"
		args = append(args, file, line)
	}
	l.ForceLog(LevelTrace, format, args...)
}
