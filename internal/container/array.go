package container

import (
	"sync/atomic"

	"github.com/teleios/teleios/internal/alloc"
	"github.com/teleios/teleios/internal/logx"
	"github.com/teleios/teleios/internal/threadx"
	"github.com/teleios/teleios/internal/trace"
)

// Array is a dynamic array that grows by roughly ×1.75 + 1 when its backing
// slice is exhausted, an amortized-growth factor that avoids the memory
// overshoot of doubling while staying sublinear in the number of copies.
type Array[T any] struct {
	a        alloc.Allocator
	mu       *threadx.Mutex
	buf      []T
	modCount atomic.Uint64
}

// NewArray creates an empty array. When threadSafe is true, every method
// serializes on an internal mutex; otherwise the array runs lock-free.
func NewArray[T any](a alloc.Allocator, threadSafe bool) *Array[T] {
	arr := &Array[T]{a: a}

	if threadSafe {
		arr.mu = threadx.NewMutex()
	}

	return arr
}

func (r *Array[T]) lock() {
	if r.mu != nil {
		r.mu.Lock()
	}
}

func (r *Array[T]) unlock() {
	if r.mu != nil {
		r.mu.Unlock()
	}
}

func growArrayCap(capNow int) int {
	return int(float64(capNow)*1.75) + 1
}

// Push appends v, growing the backing slice when full. Amortized O(1).
func (r *Array[T]) Push(v T) {
	defer trace.Enter("Array.Push()")()

	r.lock()
	defer r.unlock()

	if len(r.buf) == cap(r.buf) {
		nb := make([]T, len(r.buf), growArrayCap(cap(r.buf)))
		copy(nb, r.buf)
		r.buf = nb
	}

	r.buf = append(r.buf, v)
	r.modCount.Add(1)

	if r.a != nil {
		r.a.Track(alloc.TagContainerArray, elemSize[T]())
	}
}

// Pop removes and returns the last element. ok is false when empty.
func (r *Array[T]) Pop() (T, bool) {
	defer trace.Enter("Array.Pop()")()

	r.lock()
	defer r.unlock()

	var zero T

	n := len(r.buf)
	if n == 0 {
		return zero, false
	}

	v := r.buf[n-1]
	r.buf[n-1] = zero
	r.buf = r.buf[:n-1]
	r.modCount.Add(1)

	if r.a != nil {
		r.a.Untrack(alloc.TagContainerArray, elemSize[T]())
	}

	return v, true
}

// Get returns the element at index i. ok is false when out of range.
func (r *Array[T]) Get(i int) (T, bool) {
	defer trace.Enter("Array.Get(i=%d)", i)()

	r.lock()
	defer r.unlock()

	var zero T

	if i < 0 || i >= len(r.buf) {
		logx.Errorf("container: array get(%d) out of range for length %d", i, len(r.buf))

		return zero, false
	}

	return r.buf[i], true
}

// Set replaces the element at index i. Returns false when out of range.
func (r *Array[T]) Set(i int, v T) bool {
	defer trace.Enter("Array.Set(i=%d)", i)()

	r.lock()
	defer r.unlock()

	if i < 0 || i >= len(r.buf) {
		logx.Errorf("container: array set(%d) out of range for length %d", i, len(r.buf))

		return false
	}

	r.buf[i] = v

	return true
}

// Insert shifts the tail right and inserts v at index i.
func (r *Array[T]) Insert(i int, v T) bool {
	defer trace.Enter("Array.Insert(i=%d)", i)()

	r.lock()
	defer r.unlock()

	if i < 0 || i > len(r.buf) {
		logx.Errorf("container: array insert(%d) out of range for length %d", i, len(r.buf))

		return false
	}

	var zero T

	r.buf = append(r.buf, zero)
	copy(r.buf[i+1:], r.buf[i:])
	r.buf[i] = v
	r.modCount.Add(1)

	if r.a != nil {
		r.a.Track(alloc.TagContainerArray, elemSize[T]())
	}

	return true
}

// RemoveAt shifts the tail left, removing the element at index i.
func (r *Array[T]) RemoveAt(i int) bool {
	defer trace.Enter("Array.RemoveAt(i=%d)", i)()

	r.lock()
	defer r.unlock()

	if i < 0 || i >= len(r.buf) {
		logx.Errorf("container: array remove(%d) out of range for length %d", i, len(r.buf))

		return false
	}

	var zero T

	copy(r.buf[i:], r.buf[i+1:])
	r.buf[len(r.buf)-1] = zero
	r.buf = r.buf[:len(r.buf)-1]
	r.modCount.Add(1)

	if r.a != nil {
		r.a.Untrack(alloc.TagContainerArray, elemSize[T]())
	}

	return true
}

// Len returns the number of stored elements.
func (r *Array[T]) Len() int {
	r.lock()
	defer r.unlock()

	return len(r.buf)
}

// Clear resets the length to 0 without shrinking capacity.
func (r *Array[T]) Clear() {
	defer trace.Enter("Array.Clear()")()

	r.lock()
	defer r.unlock()

	var zero T
	for i := range r.buf {
		r.buf[i] = zero
	}

	if r.a != nil && len(r.buf) > 0 {
		r.a.Untrack(alloc.TagContainerArray, len(r.buf)*elemSize[T]())
	}

	r.buf = r.buf[:0]
	r.modCount.Add(1)
}

// Iterator snapshots the array's current elements in insertion order.
func (r *Array[T]) Iterator() *Iterator[T] {
	defer trace.Enter("Array.Iterator()")()

	r.lock()
	snapshot := make([]T, len(r.buf))
	copy(snapshot, r.buf)
	r.unlock()

	return newIterator(r.a, alloc.TagContainerArray, snapshot, nil)
}

// RemoveValue removes the first element equal to v by value identity,
// shifting the tail left. Reports whether an element was removed.
func RemoveValue[T comparable](r *Array[T], v T) bool {
	defer trace.Enter("RemoveValue()")()

	r.lock()

	idx := -1

	for i, x := range r.buf {
		if x == v {
			idx = i

			break
		}
	}

	r.unlock()

	if idx < 0 {
		return false
	}

	return r.RemoveAt(idx)
}
