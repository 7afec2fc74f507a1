package container

import (
	"sync/atomic"

	"github.com/teleios/teleios/internal/alloc"
	"github.com/teleios/teleios/internal/threadx"
	"github.com/teleios/teleios/internal/trace"
)

// Node is a doubly-linked list node. Its identity is stable across the
// list's lifetime until the node is removed.
type Node[T any] struct {
	value      T
	prev, next *Node[T]
}

// Value returns the node's stored element.
func (n *Node[T]) Value() T { return n.value }

// SetValue replaces the node's stored element in place.
func (n *Node[T]) SetValue(v T) { n.value = v }

// List is a doubly-linked list.
type List[T any] struct {
	a          alloc.Allocator
	mu         *threadx.Mutex
	head, tail *Node[T]
	length     int
	modCount   atomic.Uint64
}

// NewList creates an empty doubly-linked list.
func NewList[T any](a alloc.Allocator, threadSafe bool) *List[T] {
	l := &List[T]{a: a}

	if threadSafe {
		l.mu = threadx.NewMutex()
	}

	return l
}

func (l *List[T]) lock() {
	if l.mu != nil {
		l.mu.Lock()
	}
}

func (l *List[T]) unlock() {
	if l.mu != nil {
		l.mu.Unlock()
	}
}

func (l *List[T]) trackNode() {
	if l.a != nil {
		l.a.Track(alloc.TagContainerList, elemSize[T]())
	}
}

func (l *List[T]) untrackNode() {
	if l.a != nil {
		l.a.Untrack(alloc.TagContainerList, elemSize[T]())
	}
}

// PushFront inserts v as the new head and returns its node.
func (l *List[T]) PushFront(v T) *Node[T] {
	defer trace.Enter("List.PushFront()")()

	l.lock()
	defer l.unlock()

	n := &Node[T]{value: v, next: l.head}
	if l.head != nil {
		l.head.prev = n
	} else {
		l.tail = n
	}

	l.head = n
	l.length++
	l.modCount.Add(1)
	l.trackNode()

	return n
}

// PushBack inserts v as the new tail and returns its node.
func (l *List[T]) PushBack(v T) *Node[T] {
	defer trace.Enter("List.PushBack()")()

	l.lock()
	defer l.unlock()

	n := &Node[T]{value: v, prev: l.tail}
	if l.tail != nil {
		l.tail.next = n
	} else {
		l.head = n
	}

	l.tail = n
	l.length++
	l.modCount.Add(1)
	l.trackNode()

	return n
}

func (l *List[T]) detach(n *Node[T]) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		l.head = n.next
	}

	if n.next != nil {
		n.next.prev = n.prev
	} else {
		l.tail = n.prev
	}

	n.prev, n.next = nil, nil
	l.length--
	l.modCount.Add(1)
	l.untrackNode()
}

// PopFront removes and returns the head element. ok is false when empty.
func (l *List[T]) PopFront() (T, bool) {
	defer trace.Enter("List.PopFront()")()

	l.lock()
	defer l.unlock()

	var zero T

	if l.head == nil {
		return zero, false
	}

	n := l.head
	l.detach(n)

	return n.value, true
}

// PopBack removes and returns the tail element. ok is false when empty.
func (l *List[T]) PopBack() (T, bool) {
	defer trace.Enter("List.PopBack()")()

	l.lock()
	defer l.unlock()

	var zero T

	if l.tail == nil {
		return zero, false
	}

	n := l.tail
	l.detach(n)

	return n.value, true
}

// Front returns the head element without removing it.
func (l *List[T]) Front() (T, bool) {
	l.lock()
	defer l.unlock()

	var zero T
	if l.head == nil {
		return zero, false
	}

	return l.head.value, true
}

// Back returns the tail element without removing it.
func (l *List[T]) Back() (T, bool) {
	l.lock()
	defer l.unlock()

	var zero T
	if l.tail == nil {
		return zero, false
	}

	return l.tail.value, true
}

// InsertAfter inserts v immediately after node and returns the new node.
func (l *List[T]) InsertAfter(node *Node[T], v T) *Node[T] {
	defer trace.Enter("List.InsertAfter()")()

	l.lock()
	defer l.unlock()

	n := &Node[T]{value: v, prev: node, next: node.next}
	if node.next != nil {
		node.next.prev = n
	} else {
		l.tail = n
	}

	node.next = n
	l.length++
	l.modCount.Add(1)
	l.trackNode()

	return n
}

// InsertBefore inserts v immediately before node and returns the new node.
func (l *List[T]) InsertBefore(node *Node[T], v T) *Node[T] {
	defer trace.Enter("List.InsertBefore()")()

	l.lock()
	defer l.unlock()

	n := &Node[T]{value: v, prev: node.prev, next: node}
	if node.prev != nil {
		node.prev.next = n
	} else {
		l.head = n
	}

	node.prev = n
	l.length++
	l.modCount.Add(1)
	l.trackNode()

	return n
}

// Remove detaches node from the list.
func (l *List[T]) Remove(node *Node[T]) {
	defer trace.Enter("List.Remove()")()

	l.lock()
	defer l.unlock()

	l.detach(node)
}

// Size returns the number of nodes in the list.
func (l *List[T]) Size() int {
	l.lock()
	defer l.unlock()

	return l.length
}

// IsEmpty reports whether the list has no nodes.
func (l *List[T]) IsEmpty() bool { return l.Size() == 0 }

// Clear removes every node.
func (l *List[T]) Clear() {
	defer trace.Enter("List.Clear()")()

	l.lock()
	defer l.unlock()

	if l.a != nil && l.length > 0 {
		l.a.Untrack(alloc.TagContainerList, l.length*elemSize[T]())
	}

	l.head, l.tail = nil, nil
	l.length = 0
	l.modCount.Add(1)
}

// Iterator snapshots the list's current elements from front to back.
func (l *List[T]) Iterator() *Iterator[T] {
	defer trace.Enter("List.Iterator()")()

	l.lock()
	snapshot := make([]T, 0, l.length)

	for n := l.head; n != nil; n = n.next {
		snapshot = append(snapshot, n.value)
	}

	l.unlock()

	return newIterator(l.a, alloc.TagContainerList, snapshot, nil)
}
