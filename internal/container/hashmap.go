package container

import (
	"sync/atomic"
	"unsafe"

	"github.com/teleios/teleios/internal/alloc"
	"github.com/teleios/teleios/internal/threadx"
	"github.com/teleios/teleios/internal/trace"
	"github.com/teleios/teleios/internal/tstring"
)

// mapLoadFactor is the soft load-factor target that LoadFactor's ratio is
// measured against; no dynamic rehashing is performed when it is exceeded.
const mapLoadFactor = 0.75

type mapBucket[T any] struct {
	key    tstring.String
	values *List[T]
}

// Map is an open-chained, multi-value hash map keyed by tstring.String. Put
// appends to the key's value list rather than overwriting; the map owns
// every key it stores, destroying them on Remove/Clear.
type Map[T any] struct {
	a        alloc.Allocator
	mu       *threadx.Mutex
	buckets  [][]*mapBucket[T]
	size     int
	modCount atomic.Uint64
}

func nextPow2AtLeast16(requested int) int {
	n := 16
	for n < requested {
		n *= 2
	}

	return n
}

// NewMap creates a map whose effective capacity is the next power of two at
// least max(16, requestedCap).
func NewMap[T any](a alloc.Allocator, requestedCap int, threadSafe bool) *Map[T] {
	defer trace.Enter("NewMap(requestedCap=%d, threadSafe=%v)", requestedCap, threadSafe)()

	m := &Map[T]{a: a, buckets: make([][]*mapBucket[T], nextPow2AtLeast16(requestedCap))}

	if threadSafe {
		m.mu = threadx.NewMutex()
	}

	if a != nil {
		a.Track(alloc.TagContainerMap, len(m.buckets)*int(unsafe.Sizeof(uintptr(0))))
	}

	return m
}

func (m *Map[T]) lock() {
	if m.mu != nil {
		m.mu.Lock()
	}
}

func (m *Map[T]) unlock() {
	if m.mu != nil {
		m.mu.Unlock()
	}
}

func fnv1a(b []byte) uint64 {
	const (
		offsetBasis = 14695981039346656037
		prime       = 1099511628211
	)

	h := uint64(offsetBasis)

	for _, c := range b {
		h ^= uint64(c)
		h *= prime
	}

	return h
}

func (m *Map[T]) bucketIndex(key tstring.String) int {
	return int(fnv1a(key.Bytes()) & uint64(len(m.buckets)-1))
}

func (m *Map[T]) findLocked(idx int, key tstring.String) *mapBucket[T] {
	for _, b := range m.buckets[idx] {
		if b.key.Equals(key) {
			return b
		}
	}

	return nil
}

// GetOrCreate returns key's value list, creating an empty one (and copying
// the key into the map's ownership) if absent. Always non-nil.
func (m *Map[T]) GetOrCreate(key tstring.String) *List[T] {
	defer trace.Enter("Map.GetOrCreate()")()

	m.lock()
	defer m.unlock()

	idx := m.bucketIndex(key)
	if b := m.findLocked(idx, key); b != nil {
		return b.values
	}

	b := &mapBucket[T]{key: key.Copy(m.a), values: NewList[T](m.a, false)}
	m.buckets[idx] = append(m.buckets[idx], b)
	m.size++
	m.modCount.Add(1)

	return b.values
}

// Put appends value to key's value list, creating the list (and taking
// ownership of a copy of key) if this is the first value for that key.
func (m *Map[T]) Put(key tstring.String, value T) {
	m.GetOrCreate(key).PushBack(value)
}

// Get returns key's value list. ok is false when the key is absent.
func (m *Map[T]) Get(key tstring.String) (*List[T], bool) {
	defer trace.Enter("Map.Get()")()

	m.lock()
	defer m.unlock()

	b := m.findLocked(m.bucketIndex(key), key)
	if b == nil {
		return nil, false
	}

	return b.values, true
}

// Contains reports whether key is present. A key created by GetOrCreate
// is present even while its value list is empty.
func (m *Map[T]) Contains(key tstring.String) bool {
	_, ok := m.Get(key)

	return ok
}

// Remove detaches key and transfers ownership of its value list to the
// caller. ok is false when the key was absent.
func (m *Map[T]) Remove(key tstring.String) (*List[T], bool) {
	defer trace.Enter("Map.Remove()")()

	m.lock()
	defer m.unlock()

	idx := m.bucketIndex(key)
	bucket := m.buckets[idx]

	for i, b := range bucket {
		if b.key.Equals(key) {
			m.buckets[idx] = append(bucket[:i:i], bucket[i+1:]...)
			b.key.Destroy()
			m.size--
			m.modCount.Add(1)

			return b.values, true
		}
	}

	return nil, false
}

// Size returns the number of distinct keys stored.
func (m *Map[T]) Size() int {
	m.lock()
	defer m.unlock()

	return m.size
}

// Capacity returns the number of buckets (a power of two).
func (m *Map[T]) Capacity() int { return len(m.buckets) }

// IsEmpty reports whether the map has no keys.
func (m *Map[T]) IsEmpty() bool { return m.Size() == 0 }

// LoadFactor reports the current size/capacity ratio, to be read against
// the 0.75 soft target; a ratio above it never triggers a rehash.
func (m *Map[T]) LoadFactor() float64 {
	m.lock()
	defer m.unlock()

	return float64(m.size) / float64(len(m.buckets))
}

// Clear removes every key, destroying the map's owned copies.
func (m *Map[T]) Clear() {
	defer trace.Enter("Map.Clear()")()

	m.lock()
	defer m.unlock()

	for i := range m.buckets {
		for _, b := range m.buckets[i] {
			b.key.Destroy()
		}

		m.buckets[i] = nil
	}

	m.size = 0
	m.modCount.Add(1)
}

// Keys returns a snapshot iterator over the map's current keys in
// bucket order. The iterator is fatal on Next if the map is structurally
// modified (Put of a new key, Remove, Clear) after the snapshot is taken.
func (m *Map[T]) Keys() *Iterator[tstring.String] {
	defer trace.Enter("Map.Keys()")()

	m.lock()
	snapshot := make([]tstring.String, 0, m.size)

	for _, bucket := range m.buckets {
		for _, b := range bucket {
			snapshot = append(snapshot, b.key.View())
		}
	}

	m.unlock()

	return newIterator(m.a, alloc.TagContainerMap, snapshot, modCountSnapshot(&m.modCount))
}
