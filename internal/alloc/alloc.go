// Package alloc implements a tagged multi-strategy allocator: a linear
// arena growing in fixed pages, and a tracked heap with per-tag
// live-allocation accounting. Both strategies sit behind the same
// Allocator interface so every higher foundation layer (strings, containers,
// config) can be written once against it.
package alloc

import (
	"sync"
	"unsafe"

	"github.com/teleios/teleios/internal/logx"
	"github.com/teleios/teleios/internal/trace"
)

// Strategy selects which of the two allocation strategies an Allocator uses.
type Strategy int

const (
	// StrategyLinear is a bump arena composed of fixed-size pages. No
	// individual free; Reset rewinds every page to offset 0.
	StrategyLinear Strategy = iota
	// StrategyTrackedHeap is a plain heap that records every live
	// allocation with its tag and size (in a map keyed by pointer), so
	// Destroy can report leaks grouped by tag.
	StrategyTrackedHeap
)

// MaxPages bounds a linear allocator to at most 255 pages.
const MaxPages = 255

// Allocator is the tagged multi-strategy handle both allocation strategies
// implement. Alloc/Free/Reset/Destroy are the raw-byte-buffer contract;
// TaggedCount/TaggedSize expose the per-tag live-allocation bookkeeping.
// Track/Untrack adjust that same bookkeeping for Go-native values that
// never flow through Alloc/Free (container backing slices, owned string
// byte buffers, thread-primitive state), so callers that store elements as
// ordinary Go values rather than raw byte buffers still get accurate
// per-tag accounting.
type Allocator interface {
	// Alloc returns bytes zero-initialized, sized bytes, charged to tag.
	// Never returns nil: a request that cannot be satisfied is FATAL.
	Alloc(tag Tag, bytes int) unsafe.Pointer
	// Free releases ptr. Linear: a warned no-op. Tracked heap: detaches
	// the record; a double free is FATAL.
	Free(ptr unsafe.Pointer)
	// Reset rewinds a linear allocator to empty. FATAL on tracked heap.
	Reset()
	// Destroy releases all allocator state. Tracked heap logs one WARN
	// line per tag with remaining live allocations before freeing them.
	Destroy()
	// TaggedCount/TaggedSize report live allocation count/bytes for tag.
	TaggedCount(tag Tag) uint64
	TaggedSize(tag Tag) uint64
	// Track/Untrack adjust the same per-tag bookkeeping for Go-native
	// values that never flow through Alloc/Free (container backing
	// slices, owned string byte buffers, thread-primitive state).
	Track(tag Tag, bytes int)
	Untrack(tag Tag, bytes int)
}

type tagStats struct {
	mu    sync.Mutex
	count [tagCount]uint64
	size  [tagCount]uint64
}

func (s *tagStats) add(tag Tag, bytes int) {
	if tag < 0 || int(tag) >= len(s.count) {
		return
	}

	s.mu.Lock()
	s.count[tag]++
	s.size[tag] += uint64(bytes)
	s.mu.Unlock()
}

func (s *tagStats) remove(tag Tag, bytes int) {
	if tag < 0 || int(tag) >= len(s.count) {
		return
	}

	s.mu.Lock()
	if s.count[tag] > 0 {
		s.count[tag]--
	}

	if s.size[tag] >= uint64(bytes) {
		s.size[tag] -= uint64(bytes)
	} else {
		s.size[tag] = 0
	}
	s.mu.Unlock()
}

func (s *tagStats) get(tag Tag) (count, size uint64) {
	if tag < 0 || int(tag) >= len(s.count) {
		return 0, 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.count[tag], s.size[tag]
}

func (s *tagStats) snapshot() (counts, sizes [tagCount]uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.count, s.size
}

// New creates an Allocator using the given strategy. For StrategyLinear,
// sizeHint is the page size and must be > 0. For StrategyTrackedHeap,
// sizeHint is ignored and must be 0. Violating either is a programming
// error and is FATAL.
func New(strategy Strategy, sizeHint int) Allocator {
	defer trace.Enter("alloc.New(strategy=%d, sizeHint=%d)", int(strategy), sizeHint)()

	switch strategy {
	case StrategyLinear:
		if sizeHint <= 0 {
			logx.Fatalf("alloc: linear allocator page size must be > 0, got %d", sizeHint)
		}

		return newLinearAllocator(sizeHint)
	case StrategyTrackedHeap:
		if sizeHint != 0 {
			logx.Fatalf("alloc: tracked heap allocator ignores size hint, got %d (must be 0)", sizeHint)
		}

		return newTrackedHeapAllocator()
	default:
		logx.Fatalf("alloc: unknown allocator strategy %d", int(strategy))

		return nil
	}
}
