package tstring

import (
	"testing"

	"github.com/teleios/teleios/internal/alloc"
)

func TestLengthMatchesCStringTerminator(t *testing.T) {
	a := alloc.New(alloc.StrategyTrackedHeap, 0)
	s := Create(a, "hello")

	cstr := s.CString()
	if cstr[s.Length()] != 0 {
		t.Fatalf("expected trailing NUL at index %d", s.Length())
	}

	if s.Length() != len("hello") {
		t.Fatalf("expected length 5, got %d", s.Length())
	}
}

func TestUpperIdempotent(t *testing.T) {
	a := alloc.New(alloc.StrategyTrackedHeap, 0)
	s := Create(a, "MixedCase")

	once := s.ToUpper(a)
	twice := once.ToUpper(a)

	if !once.Equals(twice) {
		t.Fatalf("expected ToUpper to be idempotent: %q vs %q", once, twice)
	}
}

func TestTrimIdempotent(t *testing.T) {
	a := alloc.New(alloc.StrategyTrackedHeap, 0)
	s := Create(a, "  padded  ")

	once := s.Trim(a)
	twice := once.Trim(a)

	if !once.Equals(twice) {
		t.Fatalf("expected Trim to be idempotent: %q vs %q", once, twice)
	}

	if once.String() != "padded" {
		t.Fatalf("expected \"padded\", got %q", once.String())
	}
}

func TestSplitAndDestroy(t *testing.T) {
	a := alloc.New(alloc.StrategyTrackedHeap, 0)
	s := Create(a, "a,bb,ccc")

	parts := Split(a, s, ',')
	if len(parts) != 3 {
		t.Fatalf("expected 3 parts, got %d", len(parts))
	}

	if parts[0].String() != "a" || parts[1].String() != "bb" || parts[2].String() != "ccc" {
		t.Fatalf("unexpected split result: %v", parts)
	}

	SplitDestroy(parts)
}

func TestViewSharesBuffer(t *testing.T) {
	a := alloc.New(alloc.StrategyTrackedHeap, 0)
	owner := Create(a, "owner")
	view := owner.View()

	if !view.IsView() {
		t.Fatalf("expected View() to produce a view")
	}

	if !view.Equals(owner) {
		t.Fatalf("expected view to equal owner's content")
	}
}

func TestRadixRoundTrip(t *testing.T) {
	a := alloc.New(alloc.StrategyTrackedHeap, 0)

	for base := 2; base <= 36; base++ {
		for _, v := range []int64{0, 1, -1, 42, -42, 123456789} {
			s := FromI64(a, v, base)

			got, ok := ToI64(s, base)
			if !ok || got != v {
				t.Fatalf("round trip failed for %d base %d: got %d ok=%v", v, base, got, ok)
			}
		}
	}
}

func TestRadixKnownValues(t *testing.T) {
	a := alloc.New(alloc.StrategyTrackedHeap, 0)

	if got := FromI64(a, -42, 10).String(); got != "-42" {
		t.Fatalf("expected -42, got %q", got)
	}

	if got := FromI64(a, 255, 16).String(); got != "ff" {
		t.Fatalf("expected ff, got %q", got)
	}

	if got := FromI64(a, 10, 2).String(); got != "1010" {
		t.Fatalf("expected 1010, got %q", got)
	}

	v, ok := ToI64(Create(a, "deadbeef"), 16)
	if !ok || v != 0xDEADBEEF {
		t.Fatalf("expected 0xDEADBEEF, got %d ok=%v", v, ok)
	}
}

func TestToI64RejectsTrailingGarbage(t *testing.T) {
	a := alloc.New(alloc.StrategyTrackedHeap, 0)
	s := Create(a, "30fps")

	_, ok := ToI64(s, 10)
	if ok {
		t.Fatalf("expected trailing garbage to be rejected")
	}
}

func TestBuilderBuildConsumes(t *testing.T) {
	a := alloc.New(alloc.StrategyTrackedHeap, 0)
	b := NewBuilder(a, 8)

	b.AppendCStr("hello, ")
	b.AppendCStr("world")
	b.AppendChar('!')

	s := b.Build()
	if s.String() != "hello, world!" {
		t.Fatalf("unexpected build result: %q", s.String())
	}
}
