//go:build !quill_trace

package quill

// Tracef is a no-op unless built with the quill_trace tag.
func Tracef(*Logger, string, ...interface{}) {}
