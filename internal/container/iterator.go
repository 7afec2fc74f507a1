// Package container implements a generic container family: a dynamic
// array, ring-buffer queue, doubly-linked list, fixed-slot object pool, and
// multi-value hash map, all sharing a uniform snapshot iterator and an
// optional internal mutex.
//
// Each container stores elements as ordinary Go values via generics, with
// an allocator-tracked tag per container kind and an optional
// threadx.Mutex for thread-safe mode.
package container

import (
	"sync/atomic"
	"unsafe"

	"github.com/teleios/teleios/internal/alloc"
	"github.com/teleios/teleios/internal/logx"
	"github.com/teleios/teleios/internal/trace"
)

// Iterator is a snapshot view taken under the source container's lock at
// creation time. Iteration afterward is lock-free and never observes later
// mutations to the source container.
type Iterator[T any] struct {
	a        alloc.Allocator
	tag      alloc.Tag
	items    []T
	pos      int
	modCheck func() uint64 // non-nil only for map-keys iterators
	expected uint64
	done     bool
}

func newIterator[T any](a alloc.Allocator, tag alloc.Tag, snapshot []T, modCheck func() uint64) *Iterator[T] {
	defer trace.Enter("newIterator(tag=%s, len=%d)", tag, len(snapshot))()

	it := &Iterator[T]{a: a, tag: tag, items: snapshot, modCheck: modCheck}

	if modCheck != nil {
		it.expected = modCheck()
	}

	if a != nil {
		a.Track(alloc.TagContainerIterator, len(snapshot)*elemSize[T]())
	}

	return it
}

func elemSize[T any]() int {
	var zero T

	return int(unsafe.Sizeof(zero))
}

// HasNext reports whether Next has any more elements to yield.
func (it *Iterator[T]) HasNext() bool {
	return it.pos < len(it.items)
}

// Next returns the next snapshot element. For a map-keys iterator, a
// structural modification to the source map observed since iterator
// creation is fatal.
func (it *Iterator[T]) Next() (T, bool) {
	defer trace.Enter("Iterator.Next()")()

	var zero T

	if it.modCheck != nil && it.modCheck() != it.expected {
		logx.Fatalf("container: iterator observed concurrent structural modification")

		return zero, false
	}

	if it.pos >= len(it.items) {
		return zero, false
	}

	v := it.items[it.pos]
	it.pos++

	return v, true
}

// Rewind resets iteration to the beginning of the snapshot.
func (it *Iterator[T]) Rewind() { it.pos = 0 }

// Size returns the number of elements captured in the snapshot.
func (it *Iterator[T]) Size() int { return len(it.items) }

// Destroy releases the iterator's tag accounting. Single-shot: a second call
// is a no-op.
func (it *Iterator[T]) Destroy() {
	defer trace.Enter("Iterator.Destroy()")()

	if it.done {
		return
	}

	it.done = true

	if it.a != nil {
		it.a.Untrack(alloc.TagContainerIterator, len(it.items)*elemSize[T]())
	}

	it.items = nil
}

func modCountSnapshot(c *atomic.Uint64) func() uint64 {
	return func() uint64 { return c.Load() }
}
