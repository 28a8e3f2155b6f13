package quill

// Metrics is a point-in-time snapshot of a logger's counters. Dropped
// messages are invisible to callers by design, so this snapshot is the
// only place they show up.
type Metrics struct {
	MessagesLogged   map[Level]uint64 `json:"messages_logged"`
	MessagesDropped  uint64           `json:"messages_dropped"`
	QueueDepth       int              `json:"queue_depth"`
	QueueCapacity    int              `json:"queue_capacity"`
	QueueUtilization float64          `json:"queue_utilization"`
	RotationCount    uint64           `json:"rotation_count"`
	BytesWritten     uint64           `json:"bytes_written"`
	ErrorCount       uint64           `json:"error_count"`
}

// rotationCounter is implemented by the file sinks that roll files
// over.
type rotationCounter interface {
	RotationCount() uint64
}

// Metrics returns the logger's current counters. Rotation counts are
// summed across any bound sinks that rotate; a locked sink wrapper is
// unwrapped for counting.
func (l *Logger) Metrics() Metrics {
	m := Metrics{
		MessagesLogged: make(map[Level]uint64),
		BytesWritten:   l.bytesWritten.Load(),
		ErrorCount:     l.errorCount.Load(),
	}

	for lvl := LevelTrace; lvl <= LevelCritical; lvl++ {
		if n := l.logged[lvl].Load(); n > 0 {
			m.MessagesLogged[lvl] = n
		}
	}

	if l.queue != nil {
		m.MessagesDropped = l.queue.droppedCount()
		m.QueueDepth = l.queue.len()
		m.QueueCapacity = l.queue.capacity()
		if m.QueueCapacity > 0 {
			m.QueueUtilization = float64(m.QueueDepth) / float64(m.QueueCapacity)
		}
	}

	for _, s := range l.sinks {
		if ls, ok := s.(*lockedSink); ok {
			s = ls.base
		}
		if rc, ok := s.(rotationCounter); ok {
			m.RotationCount += rc.RotationCount()
		}
	}

	return m
}
