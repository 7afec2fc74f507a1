package trace

import (
	"sync"

	"github.com/teleios/teleios/internal/clock"
)

// MaxProfilerSlots is the profiler's slot table capacity.
const MaxProfilerSlots = 255

type profSlot struct {
	name        string
	startMicros uint64
	running     bool
	ticks       uint64
}

var (
	profMu    sync.Mutex
	profSlots = make(map[string]*profSlot, 64)
	profOrder []string // insertion order, bounds the 255-slot table
	warnOnce  = map[string]bool{}
)

// warnHandler is set by internal/logx the same way fatalHandler is, so the
// profiler can log a WARN (not a FATAL) when its slot table is full. A
// profiler slot shortage is treated like an exhausted fixed-capacity pool:
// non-fatal, logged, and the caller gets a neutral outcome (no measurement).
// It is guarded by its own mutex because warnf runs while profMu is held.
var (
	warnMu      sync.Mutex
	warnHandler func(format string, args ...any)
)

// RegisterWarnHandler wires the profiler's WARN path to internal/logx.
func RegisterWarnHandler(h func(format string, args ...any)) {
	warnMu.Lock()
	warnHandler = h
	warnMu.Unlock()
}

func warnf(format string, args ...any) {
	warnMu.Lock()
	h := warnHandler
	warnMu.Unlock()

	if h != nil {
		h(format, args...)
	}
}

func getSlot(name string) *profSlot {
	s, ok := profSlots[name]
	if ok {
		return s
	}

	if len(profOrder) >= MaxProfilerSlots {
		if !warnOnce[name] {
			warnOnce[name] = true
			warnf("profiler slot table full (%d), dropping measurement for %s", MaxProfilerSlots, name)
		}

		return nil
	}

	s = &profSlot{name: name}
	profSlots[name] = s
	profOrder = append(profOrder, name)

	return s
}

// profilerStart is called by Push for the pushed frame's function name.
func profilerStart(name string) {
	profMu.Lock()
	defer profMu.Unlock()

	s := getSlot(name)
	if s == nil {
		return
	}

	if s.running {
		warnf("profiler: concurrent measurement for %s is not supported", name)

		return
	}

	s.running = true
	s.startMicros = clock.EpochMicros()
}

// profilerStop is called by Pop for the popped frame's function name.
func profilerStop(name string) {
	profMu.Lock()
	defer profMu.Unlock()

	s, ok := profSlots[name]
	if !ok || !s.running {
		return
	}

	s.running = false
}

// Elapsed reports now - start for name without closing the measurement.
// Returns 0 if name has no open measurement.
func Elapsed(name string) uint64 {
	profMu.Lock()
	defer profMu.Unlock()

	s, ok := profSlots[name]
	if !ok || !s.running {
		return 0
	}

	now := clock.EpochMicros()
	if now < s.startMicros {
		return 0
	}

	return now - s.startMicros
}

// Tick increments name's tick counter, creating a slot for it if needed.
func Tick(name string) {
	profMu.Lock()
	defer profMu.Unlock()

	s := getSlot(name)
	if s == nil {
		return
	}

	s.ticks++
}

// Ticks reads name's tick counter.
func Ticks(name string) uint64 {
	profMu.Lock()
	defer profMu.Unlock()

	s, ok := profSlots[name]
	if !ok {
		return 0
	}

	return s.ticks
}

// ResetFunction clears the elapsed timer and tick counter for a single
// function without touching the rest of the profiler table.
func ResetFunction(name string) {
	profMu.Lock()
	defer profMu.Unlock()

	s, ok := profSlots[name]
	if !ok {
		return
	}

	s.running = false
	s.startMicros = 0
	s.ticks = 0
}

// ResetAll clears the whole profiler table. Intended for tests.
func ResetAll() {
	profMu.Lock()
	profSlots = make(map[string]*profSlot, 64)
	profOrder = nil
	warnOnce = map[string]bool{}
	profMu.Unlock()
}
