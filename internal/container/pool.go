package container

import (
	"sync/atomic"
	"unsafe"

	"github.com/teleios/teleios/internal/alloc"
	"github.com/teleios/teleios/internal/logx"
	"github.com/teleios/teleios/internal/threadx"
	"github.com/teleios/teleios/internal/trace"
)

// ObjectPool is a fixed-capacity pool of uniformly sized slots. Acquire
// returns a pointer into the pool's backing block; Release marks the slot
// free without moving the round-robin acquire cursor, so slots are not
// reused LIFO and wear spreads evenly across the block.
type ObjectPool[T any] struct {
	a        alloc.Allocator
	mu       *threadx.Mutex
	slots     []T
	free      []bool
	next      int
	inUse     int
	highWater int
	modCount  atomic.Uint64
}

// NewObjectPool creates a pool with the given fixed capacity (clamped to at
// least 1).
func NewObjectPool[T any](a alloc.Allocator, capacity int, threadSafe bool) *ObjectPool[T] {
	defer trace.Enter("NewObjectPool(capacity=%d, threadSafe=%v)", capacity, threadSafe)()

	if capacity < 1 {
		capacity = 1
	}

	p := &ObjectPool[T]{
		a:     a,
		slots: make([]T, capacity),
		free:  make([]bool, capacity),
	}

	for i := range p.free {
		p.free[i] = true
	}

	if threadSafe {
		p.mu = threadx.NewMutex()
	}

	if a != nil {
		a.Track(alloc.TagContainerPool, capacity*elemSize[T]())
	}

	return p
}

func (p *ObjectPool[T]) lock() {
	if p.mu != nil {
		p.mu.Lock()
	}
}

func (p *ObjectPool[T]) unlock() {
	if p.mu != nil {
		p.mu.Unlock()
	}
}

// Acquire returns a pointer to the next free slot, starting its search at
// the round-robin cursor. ok is false when the pool is fully acquired.
func (p *ObjectPool[T]) Acquire() (*T, bool) {
	defer trace.Enter("ObjectPool.Acquire()")()

	p.lock()
	defer p.unlock()

	for i := 0; i < len(p.slots); i++ {
		idx := (p.next + i) % len(p.slots)
		if p.free[idx] {
			p.free[idx] = false
			p.next = (idx + 1) % len(p.slots)
			p.inUse++

			if p.inUse > p.highWater {
				p.highWater = p.inUse
			}

			p.modCount.Add(1)

			return &p.slots[idx], true
		}
	}

	return nil, false
}

func (p *ObjectPool[T]) indexOf(ptr *T) int {
	if len(p.slots) == 0 || ptr == nil {
		return -1
	}

	base := uintptr(unsafe.Pointer(&p.slots[0]))
	target := uintptr(unsafe.Pointer(ptr))
	elemSz := unsafe.Sizeof(p.slots[0])

	if target < base {
		return -1
	}

	offset := target - base
	if offset%elemSz != 0 {
		return -1
	}

	idx := int(offset / elemSz)
	if idx < 0 || idx >= len(p.slots) {
		return -1
	}

	return idx
}

// Release marks ptr's slot free. A misaligned or out-of-range pointer is
// fatal; releasing an already-free slot logs a warning and is otherwise a
// no-op.
func (p *ObjectPool[T]) Release(ptr *T) {
	defer trace.Enter("ObjectPool.Release(ptr=%p)", ptr)()

	p.lock()

	idx := p.indexOf(ptr)
	if idx < 0 {
		p.unlock()
		logx.Fatalf("container: release of misaligned or out-of-range pool pointer")

		return
	}

	if p.free[idx] {
		p.unlock()
		logx.Warnf("container: release of an already-free pool slot %d", idx)

		return
	}

	p.free[idx] = true
	p.inUse--
	p.modCount.Add(1)
	p.unlock()
}

// Reset marks every slot free and rewinds the acquire cursor. The
// high-water mark is a lifetime statistic and survives Reset.
func (p *ObjectPool[T]) Reset() {
	defer trace.Enter("ObjectPool.Reset()")()

	p.lock()
	defer p.unlock()

	for i := range p.free {
		p.free[i] = true
	}

	p.next = 0
	p.inUse = 0
	p.modCount.Add(1)
}

// Cap returns the pool's fixed capacity.
func (p *ObjectPool[T]) Cap() int { return len(p.slots) }

// Stats reports the number of slots currently acquired, the pool's total
// capacity, and the highest in-use count observed since creation.
func (p *ObjectPool[T]) Stats() (inUse, capacity, highWaterMark int) {
	p.lock()
	defer p.unlock()

	return p.inUse, len(p.slots), p.highWater
}
