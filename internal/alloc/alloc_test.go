package alloc

import (
	"testing"
	"unsafe"
)

func TestLinearArenaBump(t *testing.T) {
	a := New(StrategyLinear, 256)

	p1 := a.Alloc(TagBlock, 64)
	p2 := a.Alloc(TagBlock, 64)

	d := uintptr(p2) - uintptr(p1)
	if d != 64 {
		t.Fatalf("expected p2-p1 == 64, got %d", d)
	}

	if got := a.TaggedCount(TagBlock); got != 2 {
		t.Fatalf("expected tagged count 2, got %d", got)
	}

	if got := a.TaggedSize(TagBlock); got != 128 {
		t.Fatalf("expected tagged size 128, got %d", got)
	}

	a.Reset()

	p1b := a.Alloc(TagBlock, 64)
	if p1b != p1 {
		t.Fatalf("expected reset to reproduce the same first pointer, got %p want %p", p1b, p1)
	}
}

func TestLinearAllocatorZeroesMemory(t *testing.T) {
	a := New(StrategyLinear, 64)

	p := a.Alloc(TagBlock, 32)
	buf := unsafe.Slice((*byte)(p), 32)

	for i, b := range buf {
		if b != 0 {
			t.Fatalf("expected zeroed memory at %d, got %d", i, b)
		}
	}
}

func TestLinearAllocatorNewPageOnOverflow(t *testing.T) {
	a := New(StrategyLinear, 64).(*linearAllocator)

	a.Alloc(TagBlock, 40)
	if a.PageCount() != 1 {
		t.Fatalf("expected 1 page, got %d", a.PageCount())
	}

	a.Alloc(TagBlock, 40) // doesn't fit remaining 24 bytes, new page
	if a.PageCount() != 2 {
		t.Fatalf("expected 2 pages after overflow, got %d", a.PageCount())
	}
}

func TestTrackedHeapPutRemoveAccounting(t *testing.T) {
	h := New(StrategyTrackedHeap, 0)

	p1 := h.Alloc(TagString, 16)
	p2 := h.Alloc(TagString, 32)

	if got := h.TaggedSize(TagString); got != 48 {
		t.Fatalf("expected tagged size 48, got %d", got)
	}

	h.Free(p1)

	if got := h.TaggedSize(TagString); got != 32 {
		t.Fatalf("expected tagged size 32 after free, got %d", got)
	}

	h.Free(p2)

	if got := h.TaggedCount(TagString); got != 0 {
		t.Fatalf("expected tagged count 0, got %d", got)
	}
}

func TestTrackedHeapDoubleFreeIsFatal(t *testing.T) {
	h := New(StrategyTrackedHeap, 0)

	p := h.Alloc(TagString, 8)
	h.Free(p)

	var fataled bool

	logxSetExitFuncForTest(t, func(code int) { fataled = true })

	done := make(chan struct{})

	go func() {
		defer close(done)
		h.Free(p)
	}()

	<-done

	if !fataled {
		t.Fatalf("expected double free to trigger FATAL")
	}
}

func TestLinearResetForbiddenOnHeap(t *testing.T) {
	h := New(StrategyTrackedHeap, 0)

	var fataled bool

	logxSetExitFuncForTest(t, func(code int) { fataled = true })

	done := make(chan struct{})

	go func() {
		defer close(done)
		h.Reset()
	}()

	<-done

	if !fataled {
		t.Fatalf("expected Reset on tracked heap to be FATAL")
	}
}
