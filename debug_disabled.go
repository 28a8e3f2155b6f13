//go:build !quill_debug

package quill

// Debugf is a no-op unless built with the quill_debug tag.
func Debugf(*Logger, string, ...interface{}) {}
