package container

import (
	"sync/atomic"

	"github.com/teleios/teleios/internal/alloc"
	"github.com/teleios/teleios/internal/logx"
	"github.com/teleios/teleios/internal/threadx"
	"github.com/teleios/teleios/internal/trace"
)

// Queue is a fixed-capacity ring-buffer queue.
type Queue[T any] struct {
	a        alloc.Allocator
	mu       *threadx.Mutex
	notFull  *threadx.Condition
	buf      []T
	head     int
	count    int
	modCount atomic.Uint64
}

// NewQueue creates a queue with the given fixed capacity (clamped to at
// least 1). When threadSafe is true, Push blocks on an internal condition
// variable while the queue is full; otherwise Push on a full queue is
// FATAL (see Push).
func NewQueue[T any](a alloc.Allocator, capacity int, threadSafe bool) *Queue[T] {
	defer trace.Enter("NewQueue(capacity=%d, threadSafe=%v)", capacity, threadSafe)()

	if capacity < 1 {
		capacity = 1
	}

	q := &Queue[T]{a: a, buf: make([]T, capacity)}

	if threadSafe {
		q.mu = threadx.NewMutex()
		q.notFull = threadx.NewCondition(q.mu)
	}

	if a != nil {
		a.Track(alloc.TagContainerQueue, capacity*elemSize[T]())
	}

	return q
}

func (q *Queue[T]) lock() {
	if q.mu != nil {
		q.mu.Lock()
	}
}

func (q *Queue[T]) unlock() {
	if q.mu != nil {
		q.mu.Unlock()
	}
}

func (q *Queue[T]) tailIndex() int {
	return (q.head + q.count) % len(q.buf)
}

// Offer appends v without blocking. Returns false when the queue is full.
func (q *Queue[T]) Offer(v T) bool {
	defer trace.Enter("Queue.Offer()")()

	q.lock()
	defer q.unlock()

	if q.count == len(q.buf) {
		return false
	}

	q.buf[q.tailIndex()] = v
	q.count++
	q.modCount.Add(1)

	return true
}

// Push appends v, blocking while the queue is full until a slot frees up.
// In single-threaded mode (no internal condition variable) a full queue can
// never drain on its own, so blocking here would deadlock forever: that
// case is fatal instead.
func (q *Queue[T]) Push(v T) {
	defer trace.Enter("Queue.Push()")()

	q.lock()

	for q.count == len(q.buf) {
		if q.notFull == nil {
			q.unlock()
			logx.Fatalf("container: blocking push on a full single-threaded queue would deadlock")

			return
		}

		q.notFull.Wait()
	}

	q.buf[q.tailIndex()] = v
	q.count++
	q.modCount.Add(1)
	q.unlock()
}

// Pop removes and returns the front element. ok is false when empty.
func (q *Queue[T]) Pop() (T, bool) {
	defer trace.Enter("Queue.Pop()")()

	q.lock()
	defer q.unlock()

	var zero T

	if q.count == 0 {
		return zero, false
	}

	v := q.buf[q.head]
	q.buf[q.head] = zero
	q.head = (q.head + 1) % len(q.buf)
	q.count--
	q.modCount.Add(1)

	if q.notFull != nil {
		q.notFull.Broadcast()
	}

	return v, true
}

// Peek returns the front element without removing it.
func (q *Queue[T]) Peek() (T, bool) {
	defer trace.Enter("Queue.Peek()")()

	q.lock()
	defer q.unlock()

	var zero T

	if q.count == 0 {
		return zero, false
	}

	return q.buf[q.head], true
}

// Len returns the number of queued elements.
func (q *Queue[T]) Len() int {
	q.lock()
	defer q.unlock()

	return q.count
}

// Cap returns the queue's fixed capacity.
func (q *Queue[T]) Cap() int { return len(q.buf) }

// Clear rewinds head/count to empty and wakes any blocked Push callers.
func (q *Queue[T]) Clear() {
	defer trace.Enter("Queue.Clear()")()

	q.lock()
	defer q.unlock()

	var zero T
	for i := 0; i < q.count; i++ {
		q.buf[(q.head+i)%len(q.buf)] = zero
	}

	q.head = 0
	q.count = 0
	q.modCount.Add(1)

	if q.notFull != nil {
		q.notFull.Broadcast()
	}
}

// Iterator snapshots the queue's current elements front-to-back.
func (q *Queue[T]) Iterator() *Iterator[T] {
	defer trace.Enter("Queue.Iterator()")()

	q.lock()
	snapshot := make([]T, q.count)

	for i := 0; i < q.count; i++ {
		snapshot[i] = q.buf[(q.head+i)%len(q.buf)]
	}

	q.unlock()

	return newIterator(q.a, alloc.TagContainerQueue, snapshot, nil)
}
