// Package logx implements a synchronous, level-filtered, colorized
// single-line logger. It is the only component that writes to stdout, and
// the only component allowed to terminate the process: FATAL records dump
// the tracer stack (internal/trace) and then exit(99), the recovery policy
// for unrecoverable programming errors.
package logx

import (
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/teleios/teleios/internal/clock"
	"github.com/teleios/teleios/internal/threadx"
	"github.com/teleios/teleios/internal/trace"
)

// Level is a logger severity, ordered from least to most urgent.
type Level int

const (
	Verbose Level = iota
	Trace
	Debug
	Info
	Warn
	Error
	Fatal
)

var levelNames = [...]string{
	Verbose: "VERBOSE",
	Trace:   "TRACE",
	Debug:   "DEBUG",
	Info:    "INFO",
	Warn:    "WARN",
	Error:   "ERROR",
	Fatal:   "FATAL",
}

// String returns the level's canonical name, left-padded to 8 bytes.
func (l Level) String() string {
	name := "UNKNOWN"
	if l >= Verbose && l <= Fatal {
		name = levelNames[l]
	}

	return fmt.Sprintf("%-8s", name)
}

// ParseLevel maps an enum name such as "verbose".."fatal" (any case) to a
// Level. ok is false for an unrecognized name.
func ParseLevel(s string) (Level, bool) {
	switch upper(s) {
	case "VERBOSE":
		return Verbose, true
	case "TRACE":
		return Trace, true
	case "DEBUG":
		return Debug, true
	case "INFO":
		return Info, true
	case "WARN":
		return Warn, true
	case "ERROR":
		return Error, true
	case "FATAL":
		return Fatal, true
	default:
		return Info, false
	}
}

func upper(s string) string {
	b := make([]byte, len(s))

	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}

		b[i] = c
	}

	return string(b)
}

// ansiForLevel returns the SGR escape sequence prefixing a record of this
// level, and the reset sequence that must follow it.
func ansiForLevel(l Level) (prefix, reset string) {
	const resetSeq = "\x1b[0m"

	switch l {
	case Verbose:
		return "\x1b[90m", resetSeq // bright black / gray
	case Trace:
		return "\x1b[36m", resetSeq // cyan
	case Debug:
		return "\x1b[34m", resetSeq // blue
	case Info:
		return "\x1b[32m", resetSeq // green
	case Warn:
		return "\x1b[33m", resetSeq // yellow
	case Error:
		return "\x1b[31m", resetSeq // red
	case Fatal:
		return "\x1b[1;31m", resetSeq // bold red
	default:
		return "", resetSeq
	}
}

var (
	mu        sync.Mutex
	threshold = Info
	out       = os.Stdout
	fatalOnce sync.Once
	osExit    = os.Exit
)

func init() {
	// Break the logx <-> trace import cycle by injecting handlers into
	// trace instead of trace importing logx.
	trace.RegisterFatalHandler(func(format string, args ...any) {
		Fatalf(format, args...)
	})
	trace.RegisterWarnHandler(func(format string, args ...any) {
		Warnf(format, args...)
	})
}

// SetThreshold sets the minimum level that will be emitted. Messages below
// threshold are dropped before formatting.
func SetThreshold(l Level) {
	mu.Lock()
	threshold = l
	mu.Unlock()
}

// Threshold returns the current minimum emitted level.
func Threshold() Level {
	mu.Lock()
	defer mu.Unlock()

	return threshold
}

// SetOutput redirects log output, for tests. Production code never calls
// this; the core writer is fixed to stdout.
func SetOutput(w *os.File) {
	mu.Lock()
	out = w
	mu.Unlock()
}

// ResetForTest clears the fatal-once guard and exit hook. Test-only.
func ResetForTest() {
	mu.Lock()
	fatalOnce = sync.Once{}
	osExit = os.Exit
	mu.Unlock()
}

// SetExitFuncForTest overrides the function called on FATAL, so tests can
// observe a FATAL without actually terminating the test binary.
func SetExitFuncForTest(f func(code int)) {
	mu.Lock()
	osExit = f
	mu.Unlock()
}

// fileBasename truncates/pads a basename to exactly 20 bytes for the
// record layout's fixed-width file column.
func fileBasename(file string) string {
	name := trace.Basename(file)
	if len(name) > 20 {
		return name[:20]
	}

	return fmt.Sprintf("%-20s", name)
}

func emit(level Level, file string, line int, format string, args ...any) {
	mu.Lock()
	below := level < threshold
	mu.Unlock()

	if below {
		return
	}

	msg := fmt.Sprintf(format, args...)
	dt := clock.Now()
	micros := clock.EpochMicros() % 1_000_000
	prefix, reset := ansiForLevel(level)

	line1 := fmt.Sprintf(
		"%s%04d-%02d-%02d %02d:%02d:%02d,%06d <%12d> %s:%-4d %s %s%s\n",
		prefix,
		dt.Year, dt.Month, dt.Day, dt.Hour, dt.Minute, dt.Second, micros,
		threadx.CurrentID(),
		fileBasename(file), line,
		level.String(),
		msg,
		reset,
	)

	mu.Lock()
	fmt.Fprint(out, line1)
	mu.Unlock()

	if level == Fatal {
		dumpStackAndExit()
	}
}

// logAt resolves the call site skip frames above it and dispatches to emit.
// skip=2 from a package-level Xxxf function lands on that function's caller.
func logAt(skip int, level Level, format string, args ...any) {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		file, line = "unknown", 0
	}

	emit(level, file, line, format, args...)
}

func dumpStackAndExit() {
	fatalOnce.Do(func() {
		fmt.Fprintf(out, "fatal: run %s\n", trace.RunID)

		for _, frame := range trace.Dump() {
			fmt.Fprintf(out, "  %s\n", frame)
		}

		osExit(99)
	})
	// Fatalf never returns. os.Exit itself never returns either, so this
	// only fires when a test has substituted osExit with a function that
	// merely records the call; runtime.Goexit then unwinds the calling
	// goroutine (running its deferred cleanups) instead of falling through
	// into code that assumed the process had already terminated.
	runtime.Goexit()
}

// Verbosef, Tracef, Debugf, Infof, Warnf and Errorf log at their named
// level. Errorf does not terminate the process; see Fatalf for that.
func Verbosef(format string, args ...any) { logAt(2, Verbose, format, args...) }
func Tracef(format string, args ...any)   { logAt(2, Trace, format, args...) }
func Debugf(format string, args ...any)   { logAt(2, Debug, format, args...) }
func Infof(format string, args ...any)    { logAt(2, Info, format, args...) }
func Warnf(format string, args ...any)    { logAt(2, Warn, format, args...) }
func Errorf(format string, args ...any)   { logAt(2, Error, format, args...) }

// Fatalf logs at FATAL, dumps the tracer stack, and terminates the process
// with status 99. It never returns. FATAL from any goroutine takes the
// same path, guarded by a single sync.Once so only the first call dumps
// and exits.
func Fatalf(format string, args ...any) {
	logAt(2, Fatal, format, args...)
}
