package alloc

import (
	"sync"
	"unsafe"

	"github.com/teleios/teleios/internal/logx"
	"github.com/teleios/teleios/internal/trace"
)

// heapRecord is the allocation header: tag, size, and the backing buffer.
// A map keyed by pointer gives the same live-allocation lookup an
// intrusive linked list would, without hand-rolling one.
type heapRecord struct {
	tag  Tag
	size int
	data []byte
}

type trackedHeapAllocator struct {
	mu      sync.Mutex
	records map[unsafe.Pointer]*heapRecord
	stats   *tagStats
}

func newTrackedHeapAllocator() *trackedHeapAllocator {
	return &trackedHeapAllocator{
		records: make(map[unsafe.Pointer]*heapRecord),
		stats:   &tagStats{},
	}
}

func (h *trackedHeapAllocator) Alloc(tag Tag, bytes int) unsafe.Pointer {
	defer trace.Enter("trackedHeapAllocator.Alloc(tag=%s, bytes=%d)", tag, bytes)()

	if bytes <= 0 {
		logx.Fatalf("alloc: tracked heap alloc request must be > 0 bytes, got %d", bytes)
	}

	buf := make([]byte, bytes)
	ptr := unsafe.Pointer(&buf[0])

	h.mu.Lock()
	h.records[ptr] = &heapRecord{tag: tag, size: bytes, data: buf}
	h.mu.Unlock()

	h.stats.add(tag, bytes)

	return ptr
}

// Free detaches ptr's allocation record and releases it. A pointer that was
// never allocated by this heap, or was already freed, is a double free and
// is FATAL.
func (h *trackedHeapAllocator) Free(ptr unsafe.Pointer) {
	defer trace.Enter("trackedHeapAllocator.Free(ptr=%p)", ptr)()

	h.mu.Lock()
	rec, ok := h.records[ptr]

	if ok {
		delete(h.records, ptr)
	}
	h.mu.Unlock()

	if !ok {
		logx.Fatalf("alloc: double free (or invalid pointer) on tracked heap")

		return
	}

	h.stats.remove(rec.tag, rec.size)
}

// Reset is forbidden on a tracked heap.
func (h *trackedHeapAllocator) Reset() {
	defer trace.Enter("trackedHeapAllocator.Reset()")()

	logx.Fatalf("alloc: reset is not supported on a tracked heap allocator")
}

// Destroy walks the remaining live records, logs one WARN per non-empty tag,
// then frees them all.
func (h *trackedHeapAllocator) Destroy() {
	defer trace.Enter("trackedHeapAllocator.Destroy()")()

	h.mu.Lock()
	remaining := make([]*heapRecord, 0, len(h.records))
	for _, rec := range h.records {
		remaining = append(remaining, rec)
	}

	h.records = make(map[unsafe.Pointer]*heapRecord)
	h.mu.Unlock()

	var leakCount [tagCount]uint64

	var leakSize [tagCount]uint64

	for _, rec := range remaining {
		if rec.tag >= 0 && int(rec.tag) < len(leakCount) {
			leakCount[rec.tag]++
			leakSize[rec.tag] += uint64(rec.size)
		}
	}

	for t := Tag(0); int(t) < len(leakCount); t++ {
		if leakCount[t] > 0 {
			logx.Warnf("alloc: tracked heap destroyed with %d leaked allocation(s) tagged %s (%d bytes)",
				leakCount[t], t, leakSize[t])
		}
	}

	h.stats = &tagStats{}
}

func (h *trackedHeapAllocator) TaggedCount(tag Tag) uint64 {
	c, _ := h.stats.get(tag)

	return c
}

func (h *trackedHeapAllocator) TaggedSize(tag Tag) uint64 {
	_, s := h.stats.get(tag)

	return s
}

func (h *trackedHeapAllocator) Track(tag Tag, bytes int) {
	defer trace.Enter("trackedHeapAllocator.Track(tag=%s, bytes=%d)", tag, bytes)()

	h.stats.add(tag, bytes)
}

func (h *trackedHeapAllocator) Untrack(tag Tag, bytes int) {
	defer trace.Enter("trackedHeapAllocator.Untrack(tag=%s, bytes=%d)", tag, bytes)()

	h.stats.remove(tag, bytes)
}

// LiveCount reports how many allocation records are currently outstanding,
// across all tags.
func (h *trackedHeapAllocator) LiveCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.records)
}
