package container

import "testing"

func TestObjectPoolAcquireExhausts(t *testing.T) {
	p := NewObjectPool[int](nil, 2, false)

	a, ok := p.Acquire()
	if !ok {
		t.Fatalf("expected first acquire to succeed")
	}

	_, ok = p.Acquire()
	if !ok {
		t.Fatalf("expected second acquire to succeed")
	}

	if _, ok = p.Acquire(); ok {
		t.Fatalf("expected acquire on an exhausted pool to fail")
	}

	*a = 42
}

func TestObjectPoolReleaseDoesNotReorderNextFree(t *testing.T) {
	p := NewObjectPool[int](nil, 3, false)

	s0, _ := p.Acquire()
	s1, _ := p.Acquire()
	_, _ = p.Acquire()

	p.Release(s0)
	p.Release(s1)

	acquired, capacity, highWater := p.Stats()
	if acquired != 1 || capacity != 3 {
		t.Fatalf("expected 1 acquired of 3, got %d of %d", acquired, capacity)
	}

	if highWater != 3 {
		t.Fatalf("expected high-water mark 3, got %d", highWater)
	}

	next, ok := p.Acquire()
	if !ok {
		t.Fatalf("expected an acquire to succeed after releases")
	}

	if next != s0 {
		t.Fatalf("expected round-robin cursor to reacquire slot 0 next, not LIFO slot 1")
	}
}

func TestObjectPoolReleaseOutOfRangeIsFatal(t *testing.T) {
	p := NewObjectPool[int](nil, 2, false)

	var fataled bool

	logxSetExitFuncForTest(t, func(code int) { fataled = true })

	done := make(chan struct{})

	go func() {
		defer close(done)

		var stray int
		p.Release(&stray)
	}()

	<-done

	if !fataled {
		t.Fatalf("expected out-of-range release to trigger FATAL")
	}
}

func TestObjectPoolReset(t *testing.T) {
	p := NewObjectPool[int](nil, 2, false)
	p.Acquire()
	p.Acquire()
	p.Reset()

	acquired, _, highWater := p.Stats()
	if acquired != 0 {
		t.Fatalf("expected 0 acquired after reset, got %d", acquired)
	}

	if highWater != 2 {
		t.Fatalf("expected high-water mark to survive reset at 2, got %d", highWater)
	}
}
