package alloc

import (
	"sync"
	"unsafe"

	"github.com/teleios/teleios/internal/logx"
	"github.com/teleios/teleios/internal/trace"
)

// page is one fixed-size bump region: a []byte buffer bumped by an offset,
// handed out as unsafe.Pointer so callers get real pointer identity.
type page struct {
	buf    []byte
	offset int
}

type linearAllocator struct {
	mu       sync.Mutex
	pageSize int
	pages    []*page
	active   int // index of the page currently being bumped
	stats    *tagStats
}

func newLinearAllocator(pageSize int) *linearAllocator {
	return &linearAllocator{pageSize: pageSize, stats: &tagStats{}}
}

func (a *linearAllocator) Alloc(tag Tag, bytes int) unsafe.Pointer {
	defer trace.Enter("linearAllocator.Alloc(tag=%s, bytes=%d)", tag, bytes)()

	if bytes <= 0 {
		logx.Fatalf("alloc: linear alloc request must be > 0 bytes, got %d", bytes)
	}

	if bytes > a.pageSize {
		logx.Fatalf("alloc: request of %d bytes exceeds page size %d; linear allocations never span pages", bytes, a.pageSize)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if len(a.pages) == 0 || a.pages[a.active].offset+bytes > a.pageSize {
		if len(a.pages) > 0 && a.active+1 < len(a.pages) {
			a.active++
		} else {
			if len(a.pages) >= MaxPages {
				logx.Fatalf("alloc: linear allocator exceeded %d pages", MaxPages)
			}

			a.pages = append(a.pages, &page{buf: make([]byte, a.pageSize)})
			a.active = len(a.pages) - 1
		}
	}

	p := a.pages[a.active]
	for i := p.offset; i < p.offset+bytes; i++ {
		p.buf[i] = 0
	}

	ptr := unsafe.Pointer(&p.buf[p.offset])
	p.offset += bytes

	a.stats.add(tag, bytes)

	return ptr
}

// Free is a no-op for the linear strategy: individual free is unsupported.
// Callers reaching this path get a WARN, not a FATAL, because calling Free
// on a linear allocator is a caller mistake with a harmless outcome.
func (a *linearAllocator) Free(unsafe.Pointer) {
	defer trace.Enter("linearAllocator.Free()")()

	logx.Warnf("alloc: linear allocator does not support individual free; ignoring")
}

// Reset rewinds every page to offset 0 and re-zeros it, so the next alloc
// sequence reproduces the same pointer sequence a fresh allocator would
// give.
func (a *linearAllocator) Reset() {
	defer trace.Enter("linearAllocator.Reset()")()

	a.mu.Lock()
	defer a.mu.Unlock()

	for _, p := range a.pages {
		p.offset = 0

		for i := range p.buf {
			p.buf[i] = 0
		}
	}

	a.active = 0
	a.stats = &tagStats{}
}

// Destroy frees every page. Linear allocators never report leaks: there is
// nothing to double-free or forget to free in a bump arena.
func (a *linearAllocator) Destroy() {
	defer trace.Enter("linearAllocator.Destroy()")()

	a.mu.Lock()
	a.pages = nil
	a.stats = &tagStats{}
	a.mu.Unlock()
}

func (a *linearAllocator) TaggedCount(tag Tag) uint64 {
	c, _ := a.stats.get(tag)

	return c
}

func (a *linearAllocator) TaggedSize(tag Tag) uint64 {
	_, s := a.stats.get(tag)

	return s
}

func (a *linearAllocator) Track(tag Tag, bytes int) {
	defer trace.Enter("linearAllocator.Track(tag=%s, bytes=%d)", tag, bytes)()

	a.stats.add(tag, bytes)
}

func (a *linearAllocator) Untrack(tag Tag, bytes int) {
	defer trace.Enter("linearAllocator.Untrack(tag=%s, bytes=%d)", tag, bytes)()

	a.stats.remove(tag, bytes)
}

// PageCount reports how many pages are currently live. Exposed for tests
// exercising the "at most 255 pages" invariant without forcing a caller to
// allocate gigabytes.
func (a *linearAllocator) PageCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	return len(a.pages)
}
