// Package threadx provides minimal cross-platform thread, mutex, and
// condition-variable wrappers: the primitives the container family
// (internal/container) needs when running in thread-safe mode.
package threadx

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/teleios/teleios/internal/trace"
)

// ID identifies a logical thread. Go has no OS thread identity to expose
// (goroutines are multiplexed onto OS threads by the scheduler), so ID is a
// best-effort per-goroutine value: assigned once per goroutine on first use
// and cached in a goroutine-local slot emulated through runtime.Stack's
// goroutine header.
type ID uint64

var idMu sync.Mutex
var idByGoroutine = make(map[uint64]ID)
var nextID uint64

func goroutineNum() uint64 {
	var buf [64]byte

	n := runtime.Stack(buf[:], false)

	line := buf[:n]
	// line looks like "goroutine 123 [running]:..."
	var num uint64

	i := len("goroutine ")
	if i >= len(line) {
		return 0
	}

	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		num = num*10 + uint64(line[i]-'0')
		i++
	}

	return num
}

// CurrentID returns a stable identifier for the calling goroutine.
func CurrentID() ID {
	g := goroutineNum()

	idMu.Lock()
	defer idMu.Unlock()

	if id, ok := idByGoroutine[g]; ok {
		return id
	}

	nextID++
	id := ID(nextID)
	idByGoroutine[g] = id

	return id
}

// Sleep suspends the calling goroutine for the given duration in
// milliseconds.
func Sleep(ms int) {
	if ms <= 0 {
		return
	}

	time.Sleep(time.Duration(ms) * time.Millisecond)
}

// Mutex is a non-recursive mutual-exclusion lock.
type Mutex struct {
	mu     sync.Mutex
	locked int32
	owner  ID
}

// NewMutex creates an unlocked mutex.
func NewMutex() *Mutex {
	defer trace.Enter("threadx.NewMutex()")()

	return &Mutex{}
}

// Lock/Unlock/TryLock/IsLocked and the Condition wait/wake primitives below
// are deliberately not wrapped with trace.Enter: they sit on the hot path of
// every other foundation operation's locking, so instrumenting them would
// both blow the tracer's frame budget in ordinary nested calls and defeat
// the point of a lock primitive being cheap. Spawn/Join/Detach and the
// NewMutex/NewCondition constructors are coarser-grained and are traced.

// Lock acquires the mutex, blocking until it is available.
func (m *Mutex) Lock() {
	m.mu.Lock()
	atomic.StoreInt32(&m.locked, 1)
	m.owner = CurrentID()
}

// Unlock releases the mutex.
func (m *Mutex) Unlock() {
	m.owner = 0
	atomic.StoreInt32(&m.locked, 0)
	m.mu.Unlock()
}

// TryLock attempts to acquire the mutex without blocking.
func (m *Mutex) TryLock() bool {
	if !m.mu.TryLock() {
		return false
	}

	atomic.StoreInt32(&m.locked, 1)
	m.owner = CurrentID()

	return true
}

// IsLocked reports whether the mutex is currently held.
func (m *Mutex) IsLocked() bool {
	return atomic.LoadInt32(&m.locked) == 1
}

// Condition is a condition variable bound to a Mutex. Unlike sync.Cond, it
// supports a timed wait, implemented by swapping in a fresh broadcast
// channel on every wake so a timed-out waiter never blocks a later
// Signal/Broadcast.
type Condition struct {
	m *Mutex

	chMu sync.Mutex
	ch   chan struct{}
}

// NewCondition creates a condition variable whose Wait/WaitTimeout release
// and reacquire m around the blocking portion of the call, matching pthread
// condition-variable semantics: the caller must hold m before calling Wait.
func NewCondition(m *Mutex) *Condition {
	defer trace.Enter("threadx.NewCondition()")()

	return &Condition{m: m, ch: make(chan struct{})}
}

func (c *Condition) currentChan() chan struct{} {
	c.chMu.Lock()
	defer c.chMu.Unlock()

	return c.ch
}

// Wait releases m, blocks until Signal or Broadcast is called, then
// reacquires m.
func (c *Condition) Wait() {
	ch := c.currentChan()
	c.m.Unlock()
	<-ch
	c.m.Lock()
}

// WaitTimeout is Wait bounded by ms milliseconds. Returns true if woken by
// Signal/Broadcast, false on timeout.
func (c *Condition) WaitTimeout(ms int) bool {
	ch := c.currentChan()
	c.m.Unlock()

	var signaled bool

	select {
	case <-ch:
		signaled = true
	case <-time.After(time.Duration(ms) * time.Millisecond):
		signaled = false
	}

	c.m.Lock()

	return signaled
}

// Signal wakes at least one waiter. Go's channel-based condition variable
// cannot cheaply wake exactly one goroutine while remaining allocation-free,
// so Signal is implemented as Broadcast; both satisfy "release some blocked
// waiter(s)", differing only in efficiency.
func (c *Condition) Signal() {
	c.Broadcast()
}

// Broadcast wakes every waiter blocked in Wait/WaitTimeout.
func (c *Condition) Broadcast() {
	c.chMu.Lock()
	old := c.ch
	c.ch = make(chan struct{})
	c.chMu.Unlock()

	close(old)
}

// Thread wraps a goroutine with a join handle.
type Thread struct {
	done   chan struct{}
	result int
}

// Spawn runs fn in a new goroutine and returns a handle to join it.
func Spawn(fn func() int) *Thread {
	defer trace.Enter("threadx.Spawn()")()

	t := &Thread{done: make(chan struct{})}

	go func() {
		defer close(t.done)
		t.result = fn()
	}()

	return t
}

// Join blocks until the thread finishes and returns its result.
func (t *Thread) Join() int {
	defer trace.Enter("Thread.Join()")()

	<-t.done

	return t.result
}

// Detach releases interest in the thread's completion without blocking.
func (t *Thread) Detach() {
	defer trace.Enter("Thread.Detach()")()

	go func() {
		<-t.done
	}()
}
