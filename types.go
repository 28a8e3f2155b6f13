package quill

import (
	"time"
)

// OverflowPolicy selects the behavior of a full async queue.
type OverflowPolicy int

const (
	// OverflowBlock blocks the producer until the worker frees a slot.
	// No message is ever lost, at the cost of backpressure onto the
	// caller.
	OverflowBlock OverflowPolicy = iota

	// OverflowDropNewest returns immediately and discards the message.
	// Drops are counted and visible through Metrics, never reported to
	// the caller.
	OverflowDropNewest
)

// String returns the string representation of the policy.
func (p OverflowPolicy) String() string {
	switch p {
	case OverflowBlock:
		return "block"
	case OverflowDropNewest:
		return "drop_newest"
	default:
		return "unknown"
	}
}

// msgKind distinguishes regular log messages from the worker terminate
// sentinel inside an async queue.
type msgKind uint8

const (
	msgLog msgKind = iota
	msgTerminate
)

// Message is a single log record owned by the queue once enqueued. The
// format string and argument slice are captured at the call site so the
// producer goroutine need not outlive the record.
type Message struct {
	Name      string
	Level     Level
	Format    string
	Args      []interface{}
	Timestamp time.Time

	kind msgKind
}
