package container

import "testing"

func TestArrayPushPopOrder(t *testing.T) {
	a := NewArray[int](nil, false)

	a.Push(1)
	a.Push(2)
	a.Push(3)

	v, ok := a.Pop()
	if !ok || v != 3 {
		t.Fatalf("expected 3, got %d ok=%v", v, ok)
	}

	if a.Len() != 2 {
		t.Fatalf("expected length 2, got %d", a.Len())
	}
}

func TestArrayPopEmpty(t *testing.T) {
	a := NewArray[string](nil, false)

	_, ok := a.Pop()
	if ok {
		t.Fatalf("expected Pop on empty array to report ok=false")
	}
}

func TestArrayGetSetBounds(t *testing.T) {
	a := NewArray[int](nil, false)
	a.Push(10)

	if _, ok := a.Get(5); ok {
		t.Fatalf("expected out-of-range Get to report ok=false")
	}

	if a.Set(5, 99) {
		t.Fatalf("expected out-of-range Set to report false")
	}

	if !a.Set(0, 20) {
		t.Fatalf("expected in-range Set to succeed")
	}

	v, _ := a.Get(0)
	if v != 20 {
		t.Fatalf("expected 20, got %d", v)
	}
}

func TestArrayInsertShiftsTail(t *testing.T) {
	a := NewArray[int](nil, false)
	a.Push(1)
	a.Push(3)
	a.Insert(1, 2)

	for i, want := range []int{1, 2, 3} {
		v, _ := a.Get(i)
		if v != want {
			t.Fatalf("index %d: expected %d, got %d", i, want, v)
		}
	}
}

func TestArrayRemoveValueByIdentity(t *testing.T) {
	a := NewArray[int](nil, false)
	a.Push(1)
	a.Push(2)
	a.Push(3)

	if !RemoveValue(a, 2) {
		t.Fatalf("expected RemoveValue to find and remove 2")
	}

	if a.Len() != 2 {
		t.Fatalf("expected length 2 after removal, got %d", a.Len())
	}

	v0, _ := a.Get(0)
	v1, _ := a.Get(1)

	if v0 != 1 || v1 != 3 {
		t.Fatalf("expected [1,3], got [%d,%d]", v0, v1)
	}
}

func TestArrayClearKeepsCapacity(t *testing.T) {
	a := NewArray[int](nil, false)
	for i := 0; i < 10; i++ {
		a.Push(i)
	}

	capBefore := cap(a.buf)

	a.Clear()

	if a.Len() != 0 {
		t.Fatalf("expected length 0 after clear, got %d", a.Len())
	}

	if cap(a.buf) != capBefore {
		t.Fatalf("expected capacity %d kept after clear, got %d", capBefore, cap(a.buf))
	}
}

func TestArrayIteratorSnapshot(t *testing.T) {
	a := NewArray[int](nil, false)
	a.Push(1)
	a.Push(2)

	it := a.Iterator()
	a.Push(3) // must not be visible to the already-created iterator

	if it.Size() != 2 {
		t.Fatalf("expected snapshot size 2, got %d", it.Size())
	}

	var got []int
	for it.HasNext() {
		v, _ := it.Next()
		got = append(got, v)
	}

	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("unexpected snapshot contents: %v", got)
	}

	it.Destroy()
}
