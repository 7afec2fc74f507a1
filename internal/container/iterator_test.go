package container

import "testing"

func TestIteratorRewind(t *testing.T) {
	a := NewArray[int](nil, false)
	a.Push(1)
	a.Push(2)
	a.Push(3)

	it := a.Iterator()

	var first []int
	for it.HasNext() {
		v, _ := it.Next()
		first = append(first, v)
	}

	it.Rewind()

	var second []int
	for it.HasNext() {
		v, _ := it.Next()
		second = append(second, v)
	}

	if len(first) != len(second) {
		t.Fatalf("expected rewind to replay the same snapshot")
	}

	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("index %d: expected %d, got %d", i, first[i], second[i])
		}
	}

	it.Destroy()
}

func TestIteratorDestroyIsIdempotent(t *testing.T) {
	a := NewArray[int](nil, false)
	a.Push(1)

	it := a.Iterator()
	it.Destroy()
	it.Destroy()
}

func TestIteratorNextExhausted(t *testing.T) {
	q := NewQueue[int](nil, 2, false)
	it := q.Iterator()

	if it.HasNext() {
		t.Fatalf("expected empty queue iterator to have no elements")
	}

	_, ok := it.Next()
	if ok {
		t.Fatalf("expected Next on exhausted iterator to report ok=false")
	}
}
