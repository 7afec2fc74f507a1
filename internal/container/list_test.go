package container

import "testing"

func TestListPushFrontBack(t *testing.T) {
	l := NewList[int](nil, false)
	l.PushBack(2)
	l.PushFront(1)
	l.PushBack(3)

	front, _ := l.Front()
	back, _ := l.Back()

	if front != 1 || back != 3 {
		t.Fatalf("expected front=1 back=3, got front=%d back=%d", front, back)
	}

	if l.Size() != 3 {
		t.Fatalf("expected size 3, got %d", l.Size())
	}
}

func TestListPopFrontBack(t *testing.T) {
	l := NewList[int](nil, false)
	l.PushBack(1)
	l.PushBack(2)
	l.PushBack(3)

	v, ok := l.PopFront()
	if !ok || v != 1 {
		t.Fatalf("expected 1, got %d ok=%v", v, ok)
	}

	v, ok = l.PopBack()
	if !ok || v != 3 {
		t.Fatalf("expected 3, got %d ok=%v", v, ok)
	}

	if l.Size() != 1 {
		t.Fatalf("expected size 1, got %d", l.Size())
	}
}

func TestListNodeIdentityStableUntilRemoved(t *testing.T) {
	l := NewList[string](nil, false)
	mid := l.PushBack("a")
	l.PushBack("b")

	inserted := l.InsertAfter(mid, "a.5")
	if inserted.Value() != "a.5" {
		t.Fatalf("expected inserted node value a.5, got %q", inserted.Value())
	}

	l.Remove(mid)

	if l.Size() != 2 {
		t.Fatalf("expected size 2 after removing mid, got %d", l.Size())
	}

	front, _ := l.Front()
	if front != "a.5" {
		t.Fatalf("expected new front a.5, got %q", front)
	}
}

func TestListInsertBefore(t *testing.T) {
	l := NewList[int](nil, false)
	tail := l.PushBack(3)
	l.InsertBefore(tail, 1)
	l.InsertBefore(tail, 2)

	var got []int

	it := l.Iterator()
	for it.HasNext() {
		v, _ := it.Next()
		got = append(got, v)
	}

	it.Destroy()

	if len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Fatalf("unexpected order: %v", got)
	}
}

func TestListClear(t *testing.T) {
	l := NewList[int](nil, false)
	l.PushBack(1)
	l.PushBack(2)
	l.Clear()

	if !l.IsEmpty() {
		t.Fatalf("expected list empty after clear")
	}

	if _, ok := l.Front(); ok {
		t.Fatalf("expected no front element after clear")
	}
}
