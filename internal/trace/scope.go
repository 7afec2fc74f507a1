package trace

import (
	"fmt"
	"runtime"
	"strings"
)

// Basename returns the trailing path segment of a source file: the last
// path separator plus one, platform-aware (a Windows path may arrive with
// backslashes even when built elsewhere, e.g. embedded in test fixtures).
func Basename(path string) string {
	if i := strings.LastIndexAny(path, "/\\"); i >= 0 {
		return path[i+1:]
	}

	return path
}

// Enter captures the caller's file/line/function, pushes a tracer frame
// with a formatted argument snapshot, and returns a function that pops it.
// Callers write
//
//	defer trace.Enter("opening %s", path)()
//
// so the frame pops on every exit path, including panics recovered higher
// up the stack.
func Enter(format string, args ...any) func() {
	pc, file, line, ok := runtime.Caller(1)

	fn := "unknown"
	if ok {
		if f := runtime.FuncForPC(pc); f != nil {
			fn = shortFuncName(f.Name())
		}
	} else {
		file = "unknown"
	}

	Push(Basename(file), line, fn, fmt.Sprintf(format, args...))

	return Pop
}

// shortFuncName trims the package path prefix Go's runtime includes,
// keeping only "pkg.Function" the way a C function name would read.
func shortFuncName(full string) string {
	if i := strings.LastIndex(full, "/"); i >= 0 {
		full = full[i+1:]
	}

	return full
}
