package quill

import (
	"strings"
	"sync"
)

// memorySink records everything consumed so tests can assert on
// delivery order, content, and flush behavior. failWith, when set,
// makes every Consume and Flush fail.
type memorySink struct {
	mu       sync.Mutex
	records  []string
	flushes  int
	failWith error
}

func (s *memorySink) Consume(p []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	s.records = append(s.records, string(p))
	return nil
}

func (s *memorySink) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	s.flushes++
	return nil
}

func (s *memorySink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

func (s *memorySink) record(i int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.records[i]
}

func (s *memorySink) flushCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flushes
}

func (s *memorySink) contains(substr string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.records {
		if strings.Contains(r, substr) {
			return true
		}
	}
	return false
}
