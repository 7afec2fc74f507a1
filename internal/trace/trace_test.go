package trace

import (
	"strings"
	"testing"
)

func TestPushPopBalances(t *testing.T) {
	Reset()
	defer Reset()

	Push("foo.go", 10, "pkg.Foo", "a=1")
	if Depth() != 1 {
		t.Fatalf("expected depth 1, got %d", Depth())
	}

	Pop()
	if Depth() != 0 {
		t.Fatalf("expected depth 0 after pop, got %d", Depth())
	}
}

func TestDumpOrdersInnermostFirst(t *testing.T) {
	Reset()
	defer Reset()

	Push("a.go", 1, "pkg.A", "")
	Push("b.go", 2, "pkg.B", "")

	dump := Dump()
	if len(dump) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(dump))
	}

	if !strings.Contains(dump[0], "pkg.B") {
		t.Fatalf("expected innermost frame first, got %v", dump)
	}

	Pop()
	Pop()
}

func TestArgsTruncatedAt1024Bytes(t *testing.T) {
	Reset()
	defer Reset()

	huge := strings.Repeat("x", MaxArgsBytes*2)
	Push("f.go", 1, "pkg.F", huge)

	dump := Dump()
	if len(dump) != 1 {
		t.Fatalf("expected 1 frame")
	}

	if len(dump[0]) > MaxArgsBytes+64 {
		t.Fatalf("frame string unexpectedly long: %d bytes", len(dump[0]))
	}

	if !strings.Contains(dump[0], "...") {
		t.Fatalf("expected truncation marker in %q", dump[0])
	}

	Pop()
}

func TestDepthOverflowIsFatal(t *testing.T) {
	Reset()
	defer Reset()

	var fataled bool

	RegisterFatalHandler(func(format string, args ...any) {
		fataled = true
	})
	defer RegisterFatalHandler(nil)

	for i := 0; i < MaxDepth; i++ {
		Push("f.go", i, "pkg.F", "")
	}

	Push("f.go", MaxDepth, "pkg.Overflow", "")

	if !fataled {
		t.Fatalf("expected fatal handler to fire on depth overflow")
	}

	for i := 0; i < MaxDepth; i++ {
		Pop()
	}
}

func TestProfilerElapsedAndTicks(t *testing.T) {
	ResetAll()
	defer ResetAll()

	Tick("pkg.Hot")
	Tick("pkg.Hot")

	if Ticks("pkg.Hot") != 2 {
		t.Fatalf("expected 2 ticks, got %d", Ticks("pkg.Hot"))
	}

	Push("f.go", 1, "pkg.Timed", "")

	if Elapsed("pkg.Timed") > 1_000_000 {
		t.Fatalf("elapsed suspiciously large")
	}

	Pop()

	ResetFunction("pkg.Hot")
	if Ticks("pkg.Hot") != 0 {
		t.Fatalf("expected ticks cleared after ResetFunction")
	}
}

func TestEnterPopsOnReturn(t *testing.T) {
	Reset()
	defer Reset()

	func() {
		defer Enter("value=%d", 42)()

		if Depth() != 1 {
			t.Fatalf("expected depth 1 inside scope, got %d", Depth())
		}
	}()

	if Depth() != 0 {
		t.Fatalf("expected depth 0 after scope exit, got %d", Depth())
	}
}
