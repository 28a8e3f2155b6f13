package quill

import (
	"sync"
	"sync/atomic"
)

// asyncQueue is a bounded multi-producer/single-consumer ring buffer of
// messages. Capacity is rounded up to a power of two at construction
// and never changes, so slot indices wrap with a mask. head and tail
// advance monotonically; tail-head is the live count.
//
// Messages from one producer are dequeued in the order they were
// enqueued. Across producers the only guarantee is some linearization
// of the push calls. The terminate sentinel obeys the same FIFO
// discipline, so the worker sees it strictly after everything enqueued
// before it.
type asyncQueue struct {
	mu       sync.Mutex
	notFull  *sync.Cond
	notEmpty *sync.Cond
	buf      []Message
	mask     uint64
	head     uint64
	tail     uint64
	policy   OverflowPolicy
	dropped  atomic.Uint64
}

func newAsyncQueue(size int, policy OverflowPolicy) *asyncQueue {
	if size <= 0 {
		size = defaultQueueSize
	}
	capacity := nextPowerOfTwo(uint64(size))
	q := &asyncQueue{
		buf:    make([]Message, capacity),
		mask:   capacity - 1,
		policy: policy,
	}
	q.notFull = sync.NewCond(&q.mu)
	q.notEmpty = sync.NewCond(&q.mu)
	return q
}

func nextPowerOfTwo(n uint64) uint64 {
	c := uint64(1)
	for c < n {
		c <<= 1
	}
	return c
}

// push inserts a message. When the queue is full, OverflowBlock waits
// on the not-full condition until the worker frees a slot;
// OverflowDropNewest returns immediately and counts the drop. The
// terminate sentinel always blocks so a clean shutdown is never lost to
// the drop policy.
func (q *asyncQueue) push(m Message) {
	q.mu.Lock()
	for q.tail-q.head == uint64(len(q.buf)) {
		if q.policy == OverflowDropNewest && m.kind != msgTerminate {
			q.dropped.Add(1)
			q.mu.Unlock()
			return
		}
		q.notFull.Wait()
	}
	q.buf[q.tail&q.mask] = m
	q.tail++
	q.mu.Unlock()
	q.notEmpty.Signal()
}

// pop removes the oldest message, blocking while the queue is empty.
// Only the worker goroutine calls pop.
func (q *asyncQueue) pop() Message {
	q.mu.Lock()
	for q.tail == q.head {
		q.notEmpty.Wait()
	}
	slot := &q.buf[q.head&q.mask]
	m := *slot
	*slot = Message{} // let captured args be collected
	q.head++
	q.mu.Unlock()
	q.notFull.Signal()
	return m
}

func (q *asyncQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return int(q.tail - q.head)
}

func (q *asyncQueue) capacity() int {
	return len(q.buf)
}

func (q *asyncQueue) droppedCount() uint64 {
	return q.dropped.Load()
}

// startWorker launches the single consumer goroutine for an async
// logger. The optional warmup callback runs once on the worker
// goroutine before the loop, for things like pinning or priority
// tweaks. The loop exits on the terminate sentinel after flushing every
// bound sink; sink failures are routed to the error handler and never
// stop the loop.
func (l *Logger) startWorker(warmup func()) {
	l.workerWg.Add(1)
	go func() {
		defer l.workerWg.Done()
		if warmup != nil {
			warmup()
		}
		for {
			m := l.queue.pop()
			if m.kind == msgTerminate {
				l.flushSinks()
				return
			}
			l.deliver(&m)
		}
	}()
}
