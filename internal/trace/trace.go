// Package trace implements a process-wide stack-frame tracer and
// per-function profiler. Every foundation call wraps itself with Push/Pop
// (or the Enter convenience wrapper) so that a FATAL log can print the
// full call stack with argument snapshots.
//
// The tracer and profiler are process-wide singletons, expressed as state
// behind this package rather than threaded as a Runtime object through
// every call site.
package trace

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/teleios/teleios/internal/clock"
)

// RunID identifies this process instance, stamped into every FATAL stack
// dump so crash reports from concurrent runs (e.g. parallel test shards)
// can be told apart.
var RunID = uuid.New().String()

// MaxDepth bounds the tracer's frame stack.
const MaxDepth = 10

// MaxArgsBytes bounds a single frame's formatted-argument snapshot.
const MaxArgsBytes = 1024

// Frame is one slot on the tracer's push/pop stack.
type Frame struct {
	File            string
	Line            int
	Function        string
	Args            string
	TimestampMicros uint64
}

// String renders a frame the way the fatal stack dump wants it:
// "… at <file>:<line> <fn>(<args>)".
func (f Frame) String() string {
	return fmt.Sprintf("at %s:%d %s(%s)", f.File, f.Line, f.Function, f.Args)
}

var (
	mu    sync.Mutex
	stack []Frame
)

// fatalHandler is injected by internal/logx so trace never imports logx
// directly (logx imports trace to print the FATAL stack dump; injecting the
// handler the other way breaks that cycle).
var fatalHandler func(format string, args ...any)

// RegisterFatalHandler is called once, from logx's init, to wire the two
// singletons together without an import cycle.
func RegisterFatalHandler(h func(format string, args ...any)) {
	mu.Lock()
	fatalHandler = h
	mu.Unlock()
}

func fatalf(format string, args ...any) {
	mu.Lock()
	h := fatalHandler
	mu.Unlock()

	if h != nil {
		h(format, args...)

		return
	}
	// No logger registered yet (e.g. during very early init / tests):
	// fall back to panicking so the invariant violation is still loud.
	panic(fmt.Sprintf(format, args...))
}

func truncateArgs(args string) string {
	if len(args) <= MaxArgsBytes {
		return args
	}

	const marker = "..."
	cut := MaxArgsBytes - len(marker)
	if cut < 0 {
		cut = 0
	}

	return args[:cut] + marker
}

// Push records a new call frame. file is normally derived from a Go
// build-time basename (see Basename, which internal/logx shares);
// callers pass an already-formatted argument string.
func Push(file string, line int, function string, args string) {
	mu.Lock()
	overflowed := len(stack) >= MaxDepth
	mu.Unlock()

	if overflowed {
		fatalf("tracer stack depth exceeded %d while pushing %s", MaxDepth, function)

		return
	}

	mu.Lock()
	defer mu.Unlock()

	stack = append(stack, Frame{
		File:            file,
		Line:            line,
		Function:        function,
		Args:            truncateArgs(args),
		TimestampMicros: clock.EpochMicros(),
	})

	profilerStart(function)
}

// Pop ends the profiler measurement for the innermost frame's function and
// removes that frame. Every Push must be matched by exactly one Pop on every
// exit path, including early returns, typically via `defer trace.Pop()`.
func Pop() {
	mu.Lock()
	defer mu.Unlock()

	if len(stack) == 0 {
		return
	}

	top := stack[len(stack)-1]
	stack = stack[:len(stack)-1]

	profilerStop(top.Function)
}

// Depth reports the current stack depth; mostly useful for tests.
func Depth() int {
	mu.Lock()
	defer mu.Unlock()

	return len(stack)
}

// Dump returns the current stack, top (innermost) first, formatted for a
// FATAL log's stack dump.
func Dump() []string {
	mu.Lock()
	defer mu.Unlock()

	out := make([]string, len(stack))
	for i, f := range stack {
		out[len(stack)-1-i] = f.String()
	}

	return out
}

// Reset clears the tracer stack. Intended for tests; production code never
// needs it because Push/Pop are always balanced.
func Reset() {
	mu.Lock()
	stack = nil
	mu.Unlock()
}
