package quill

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
)

func TestQueueCapacityRounding(t *testing.T) {
	cases := []struct {
		size int
		want int
	}{
		{1, 1},
		{2, 2},
		{3, 4},
		{4, 4},
		{5, 8},
		{1000, 1024},
	}

	for _, tc := range cases {
		q := newAsyncQueue(tc.size, OverflowBlock)
		if q.capacity() != tc.want {
			t.Errorf("size %d: capacity %d, want %d", tc.size, q.capacity(), tc.want)
		}
	}
}

func TestQueueDefaultSize(t *testing.T) {
	q := newAsyncQueue(0, OverflowBlock)
	if q.capacity() != defaultQueueSize {
		t.Errorf("capacity %d, want default %d", q.capacity(), defaultQueueSize)
	}
}

func TestQueueRoundTrip(t *testing.T) {
	const k = 16
	q := newAsyncQueue(k, OverflowBlock)

	for i := 0; i < k; i++ {
		q.push(Message{Format: strconv.Itoa(i)})
	}
	if q.len() != k {
		t.Fatalf("queue length %d after %d pushes", q.len(), k)
	}

	for i := 0; i < k; i++ {
		m := q.pop()
		if m.Format != strconv.Itoa(i) {
			t.Errorf("pop %d: got %q", i, m.Format)
		}
	}
	if q.len() != 0 {
		t.Errorf("queue not empty after drain: %d", q.len())
	}
}

func TestQueueDiscardPolicy(t *testing.T) {
	// Push 6 into a capacity-4 queue with no consumer: exactly 4 stay
	// queued, 2 are counted as dropped, and nothing blocks.
	q := newAsyncQueue(4, OverflowDropNewest)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 6; i++ {
			q.push(Message{Format: strconv.Itoa(i)})
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("push blocked under discard policy")
	}

	if q.len() != 4 {
		t.Errorf("queue length %d, want 4", q.len())
	}
	if q.droppedCount() != 2 {
		t.Errorf("dropped %d, want 2", q.droppedCount())
	}

	// The retained messages are the oldest four.
	for i := 0; i < 4; i++ {
		if m := q.pop(); m.Format != strconv.Itoa(i) {
			t.Errorf("pop %d: got %q", i, m.Format)
		}
	}
}

func TestQueueBlockPolicy(t *testing.T) {
	q := newAsyncQueue(2, OverflowBlock)
	q.push(Message{Format: "0"})
	q.push(Message{Format: "1"})

	var inserted atomic.Bool
	unblocked := make(chan struct{})
	go func() {
		q.push(Message{Format: "2"})
		inserted.Store(true)
		close(unblocked)
	}()

	// The producer must stay blocked while the queue is full.
	time.Sleep(50 * time.Millisecond)
	if inserted.Load() {
		t.Fatal("push into a full queue did not block")
	}

	// Freeing one slot unblocks it.
	if m := q.pop(); m.Format != "0" {
		t.Fatalf("pop: got %q", m.Format)
	}
	select {
	case <-unblocked:
	case <-time.After(2 * time.Second):
		t.Fatal("producer did not unblock after consumer freed a slot")
	}

	// Nothing was lost: total enqueued equals total dequeued.
	if m := q.pop(); m.Format != "1" {
		t.Errorf("pop: got %q", m.Format)
	}
	if m := q.pop(); m.Format != "2" {
		t.Errorf("pop: got %q", m.Format)
	}
	if q.droppedCount() != 0 {
		t.Errorf("dropped %d under block policy", q.droppedCount())
	}
}

func TestQueueTerminateDrainsFirst(t *testing.T) {
	q := newAsyncQueue(8, OverflowBlock)
	for i := 0; i < 3; i++ {
		q.push(Message{Format: strconv.Itoa(i)})
	}
	q.push(Message{kind: msgTerminate})

	for i := 0; i < 3; i++ {
		m := q.pop()
		if m.kind != msgLog {
			t.Fatalf("terminate surfaced before message %d", i)
		}
	}
	if m := q.pop(); m.kind != msgTerminate {
		t.Fatal("terminate sentinel not delivered last")
	}
}

func TestQueueTerminateIgnoresDropPolicy(t *testing.T) {
	q := newAsyncQueue(2, OverflowDropNewest)
	q.push(Message{Format: "0"})
	q.push(Message{Format: "1"})

	delivered := make(chan struct{})
	go func() {
		q.push(Message{kind: msgTerminate})
		close(delivered)
	}()

	// The sentinel must wait for room rather than be discarded.
	time.Sleep(50 * time.Millisecond)
	select {
	case <-delivered:
		t.Fatal("terminate sentinel did not block on a full queue")
	default:
	}

	q.pop()
	select {
	case <-delivered:
	case <-time.After(2 * time.Second):
		t.Fatal("terminate sentinel never inserted")
	}
	if q.droppedCount() != 0 {
		t.Errorf("terminate sentinel was counted as dropped")
	}
}

func TestAsyncLoggerShutdownDrains(t *testing.T) {
	const k = 200
	sink := &memorySink{}
	l := NewAsyncLogger("drain", 16, OverflowBlock, nil, sink)

	for i := 0; i < k; i++ {
		if err := l.Infof("message %d", i); err != nil {
			t.Fatalf("log %d: %v", i, err)
		}
	}
	if err := l.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	if sink.count() != k {
		t.Fatalf("delivered %d messages, want %d", sink.count(), k)
	}
	for i := 0; i < k; i++ {
		want := fmt.Sprintf("message %d", i)
		if !strings.Contains(sink.record(i), want) {
			t.Fatalf("record %d out of order: %q", i, sink.record(i))
		}
	}
	if sink.flushCount() == 0 {
		t.Error("worker exited without flushing sinks")
	}
}

func TestAsyncLoggerPerProducerOrder(t *testing.T) {
	const producers = 4
	const perProducer = 100

	sink := &memorySink{}
	l := NewAsyncLogger("mpsc", 64, OverflowBlock, nil, sink)

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				l.Infof("p%d seq %d", p, i)
			}
		}(p)
	}
	wg.Wait()
	l.Close()

	if sink.count() != producers*perProducer {
		t.Fatalf("delivered %d, want %d", sink.count(), producers*perProducer)
	}

	// Per-producer FIFO: each producer's sequence numbers appear in
	// increasing order even though producers interleave.
	next := make([]int, producers)
	for i := 0; i < sink.count(); i++ {
		var p, seq int
		line := sink.record(i)
		idx := strings.LastIndex(line, "p")
		if _, err := fmt.Sscanf(line[idx:], "p%d seq %d", &p, &seq); err != nil {
			t.Fatalf("unparseable record %q: %v", line, err)
		}
		if seq != next[p] {
			t.Fatalf("producer %d: got seq %d, want %d", p, seq, next[p])
		}
		next[p]++
	}
}

func TestAsyncWorkerWarmup(t *testing.T) {
	var warmedUp atomic.Bool
	sink := &memorySink{}

	warmup := func() {
		// Give producers a chance to race ahead; delivery must still
		// wait for warmup to finish.
		time.Sleep(10 * time.Millisecond)
		warmedUp.Store(true)
	}

	check := &warmupCheckSink{inner: sink, warmedUp: &warmedUp}
	l := NewAsyncLogger("warm", 16, OverflowBlock, warmup, check)
	l.Infof("first")
	l.Close()

	if !warmedUp.Load() {
		t.Fatal("warmup callback never ran")
	}
	if check.violated.Load() {
		t.Fatal("message delivered before warmup completed")
	}
	if sink.count() != 1 {
		t.Fatalf("delivered %d, want 1", sink.count())
	}
}

type warmupCheckSink struct {
	inner    *memorySink
	warmedUp *atomic.Bool
	violated atomic.Bool
}

func (s *warmupCheckSink) Consume(p []byte) error {
	if !s.warmedUp.Load() {
		s.violated.Store(true)
	}
	return s.inner.Consume(p)
}

func (s *warmupCheckSink) Flush() error { return s.inner.Flush() }

func TestAsyncWorkerSinkFailureContinues(t *testing.T) {
	failing := &memorySink{failWith: errors.New("disk gone")}
	healthy := &memorySink{}

	var handlerErrs atomic.Uint64
	l := NewAsyncLogger("fail", 16, OverflowBlock, nil, failing, healthy)
	l.SetErrorHandler(func(LogError) { handlerErrs.Add(1) })

	for i := 0; i < 3; i++ {
		l.Infof("msg %d", i)
	}
	l.Close()

	if healthy.count() != 3 {
		t.Fatalf("healthy sink got %d messages, want 3", healthy.count())
	}
	if handlerErrs.Load() < 3 {
		t.Errorf("error handler saw %d errors, want at least 3", handlerErrs.Load())
	}
	if l.Metrics().ErrorCount < 3 {
		t.Errorf("error count %d, want at least 3", l.Metrics().ErrorCount)
	}
}

func TestAsyncLoggerMetrics(t *testing.T) {
	sink := &memorySink{}
	l := NewAsyncLogger("metrics", 16, OverflowBlock, nil, sink)

	l.Infof("a")
	l.Warnf("b")
	l.Close()

	m := l.Metrics()
	if m.QueueCapacity != 16 {
		t.Errorf("queue capacity %d, want 16", m.QueueCapacity)
	}
	if m.MessagesLogged[LevelInfo] != 1 || m.MessagesLogged[LevelWarn] != 1 {
		t.Errorf("per-level counts wrong: %v", m.MessagesLogged)
	}
	if m.BytesWritten == 0 {
		t.Error("bytes written not counted")
	}
}

func TestLogAfterClose(t *testing.T) {
	sink := &memorySink{}
	l := NewAsyncLogger("closed", 16, OverflowBlock, nil, sink)
	l.Close()

	if err := l.Infof("late"); !errors.Is(err, ErrLoggerClosed) {
		t.Fatalf("log after close: got %v, want ErrLoggerClosed", err)
	}
	if err := l.Close(); err != nil {
		t.Fatalf("double close: %v", err)
	}
}
