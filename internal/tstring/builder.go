package tstring

import (
	"github.com/teleios/teleios/internal/alloc"
	"github.com/teleios/teleios/internal/logx"
	"github.com/teleios/teleios/internal/trace"
)

// Builder is a growing byte buffer bound to an allocator. Build consumes
// the builder and yields an owned String; the builder must not be reused
// afterward.
type Builder struct {
	a    alloc.Allocator
	buf  []byte
	done bool
}

// NewBuilder creates a builder with the given initial capacity hint.
func NewBuilder(a alloc.Allocator, initialCap int) *Builder {
	defer trace.Enter("tstring.NewBuilder(initialCap=%d)", initialCap)()

	if initialCap < 0 {
		initialCap = 0
	}

	return &Builder{a: a, buf: make([]byte, 0, initialCap)}
}

// Append appends s's bytes.
func (b *Builder) Append(s String) *Builder {
	b.buf = append(b.buf, s.bytes...)

	return b
}

// AppendCStr appends a Go string's bytes.
func (b *Builder) AppendCStr(s string) *Builder {
	b.buf = append(b.buf, s...)

	return b
}

// AppendChar appends a single byte.
func (b *Builder) AppendChar(c byte) *Builder {
	b.buf = append(b.buf, c)

	return b
}

// Clear empties the builder without releasing its capacity.
func (b *Builder) Clear() {
	b.buf = b.buf[:0]
}

// Len reports the number of bytes accumulated so far.
func (b *Builder) Len() int { return len(b.buf) }

// Build consumes the builder and returns a new owned String. Calling Build
// again afterward is a programming error and is FATAL, since the builder's
// buffer has already transferred ownership. The Append*, Clear and Len
// methods do not check whether the builder was already built.
func (b *Builder) Build() String {
	defer trace.Enter("Builder.Build()")()

	if b.done {
		logx.Fatalf("tstring: Builder.Build called twice")

		return String{}
	}

	b.done = true
	out := fromBytes(b.a, b.buf)
	b.buf = nil

	return out
}

// Destroy discards the builder's accumulated bytes without producing a
// String, for callers that abandon a builder mid-construction.
func (b *Builder) Destroy() {
	defer trace.Enter("Builder.Destroy()")()

	b.done = true
	b.buf = nil
}
