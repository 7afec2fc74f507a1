// Package tstring implements an immutable owned string / view type: the
// canonical key type used across the rest of the foundation (container
// keys, config paths). Every transformation returns a new owned String;
// only View/Wrap produce non-owning views that share another owned
// string's backing bytes and must not outlive it.
//
// Transformations are hand-rolled byte loops rather than calls into the
// standard library's strings package mid-algorithm, so every allocation
// flows through the owning allocator and view bookkeeping stays explicit.
package tstring

import (
	"github.com/teleios/teleios/internal/alloc"
	"github.com/teleios/teleios/internal/logx"
	"github.com/teleios/teleios/internal/trace"
)

// String is an immutable, UTF-8-clean (ASCII in practice) byte sequence,
// optionally a non-owning view of another String's buffer.
type String struct {
	a      alloc.Allocator
	bytes  []byte
	isView bool
}

// Create copies s's bytes into a new owned String tracked against a under
// TagString.
func Create(a alloc.Allocator, s string) String {
	defer trace.Enter("tstring.Create(len=%d)", len(s))()

	buf := make([]byte, len(s))
	copy(buf, s)

	if a != nil {
		a.Track(alloc.TagString, len(buf))
	}

	return String{a: a, bytes: buf}
}

// Wrap creates a view String over a copy of s's bytes (Go's string to
// []byte conversion copies). The view has no owning allocator and is never
// tracked/untracked.
func Wrap(s string) String {
	return String{bytes: []byte(s), isView: true}
}

// fromBytes builds a new owned String that takes ownership of buf directly
// (no copy), used internally by transformations that already allocated a
// fresh buffer.
func fromBytes(a alloc.Allocator, buf []byte) String {
	if a != nil {
		a.Track(alloc.TagString, len(buf))
	}

	return String{a: a, bytes: buf}
}

// Destroy releases this owned string's tag accounting. Views are no-ops:
// they never owned memory. Idempotent.
func (s *String) Destroy() {
	defer trace.Enter("String.Destroy()")()

	if s.isView || s.a == nil || s.bytes == nil {
		return
	}

	s.a.Untrack(alloc.TagString, len(s.bytes))
	s.bytes = nil
}

// IsView reports whether s is a non-owning view.
func (s String) IsView() bool { return s.isView }

// Length returns the byte length of s.
func (s String) Length() int { return len(s.bytes) }

// IsEmpty reports whether s has zero length.
func (s String) IsEmpty() bool { return len(s.bytes) == 0 }

// Bytes exposes the raw bytes. Callers must not mutate the returned slice:
// Strings are immutable by contract even though Go cannot enforce that at
// the type level without a copy on every read.
func (s String) Bytes() []byte { return s.bytes }

// String implements fmt.Stringer.
func (s String) String() string { return string(s.bytes) }

// CString returns a copy of s's bytes with a trailing NUL appended, for
// interop boundaries that expect a C-style terminator. It also demonstrates
// the testable property "bytes(S)[length] == 0": CString()[s.Length()] is
// always 0.
func (s String) CString() []byte {
	out := make([]byte, len(s.bytes)+1)
	copy(out, s.bytes)

	return out
}

// CharAt returns the byte at index i. ok is false when out of range.
func (s String) CharAt(i int) (byte, bool) {
	if i < 0 || i >= len(s.bytes) {
		return 0, false
	}

	return s.bytes[i], true
}

// Equals reports byte-for-byte equality.
func (s String) Equals(other String) bool {
	if len(s.bytes) != len(other.bytes) {
		return false
	}

	for i := range s.bytes {
		if s.bytes[i] != other.bytes[i] {
			return false
		}
	}

	return true
}

func asciiLower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}

	return b
}

func asciiUpper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - ('a' - 'A')
	}

	return b
}

// EqualsIgnoreCase reports ASCII case-insensitive equality.
func (s String) EqualsIgnoreCase(other String) bool {
	if len(s.bytes) != len(other.bytes) {
		return false
	}

	for i := range s.bytes {
		if asciiLower(s.bytes[i]) != asciiLower(other.bytes[i]) {
			return false
		}
	}

	return true
}

// StartsWithCStr reports whether s begins with prefix.
func (s String) StartsWithCStr(prefix string) bool {
	if len(prefix) > len(s.bytes) {
		return false
	}

	for i := 0; i < len(prefix); i++ {
		if s.bytes[i] != prefix[i] {
			return false
		}
	}

	return true
}

// EndsWithCStr reports whether s ends with suffix.
func (s String) EndsWithCStr(suffix string) bool {
	if len(suffix) > len(s.bytes) {
		return false
	}

	off := len(s.bytes) - len(suffix)
	for i := 0; i < len(suffix); i++ {
		if s.bytes[off+i] != suffix[i] {
			return false
		}
	}

	return true
}

// ContainsCStr reports whether needle occurs anywhere in s.
func (s String) ContainsCStr(needle string) bool {
	if len(needle) == 0 {
		return true
	}

	if len(needle) > len(s.bytes) {
		return false
	}

	for i := 0; i+len(needle) <= len(s.bytes); i++ {
		match := true

		for j := 0; j < len(needle); j++ {
			if s.bytes[i+j] != needle[j] {
				match = false

				break
			}
		}

		if match {
			return true
		}
	}

	return false
}

// IndexOfChar returns the first index of ch, or -1 if absent.
func (s String) IndexOfChar(ch byte) int {
	for i, b := range s.bytes {
		if b == ch {
			return i
		}
	}

	return -1
}

// LastIndexOfChar returns the last index of ch, or -1 if absent.
func (s String) LastIndexOfChar(ch byte) int {
	for i := len(s.bytes) - 1; i >= 0; i-- {
		if s.bytes[i] == ch {
			return i
		}
	}

	return -1
}

// Copy returns a new owned String with the same content as s.
func (s String) Copy(a alloc.Allocator) String {
	defer trace.Enter("String.Copy()")()

	buf := make([]byte, len(s.bytes))
	copy(buf, s.bytes)

	return fromBytes(a, buf)
}

// View returns a non-owning view sharing s's backing bytes.
func (s String) View() String {
	return String{bytes: s.bytes, isView: true}
}

// Substring returns bytes [begin, endExclusive) as a new owned String. An
// out-of-range or inverted range is a caller mistake on a query-shaped
// operation, so it returns an empty String rather than FATAL.
func (s String) Substring(a alloc.Allocator, begin, endExclusive int) String {
	defer trace.Enter("String.Substring(begin=%d, end=%d)", begin, endExclusive)()

	if begin < 0 || endExclusive > len(s.bytes) || begin > endExclusive {
		logx.Errorf("tstring: substring(%d,%d) out of range for length %d", begin, endExclusive, len(s.bytes))

		return fromBytes(a, []byte{})
	}

	buf := make([]byte, endExclusive-begin)
	copy(buf, s.bytes[begin:endExclusive])

	return fromBytes(a, buf)
}

// Slice returns length bytes starting at offset as a new owned String.
func (s String) Slice(a alloc.Allocator, offset, length int) String {
	return s.Substring(a, offset, offset+length)
}

// ToUpper returns a new owned String with ASCII letters upper-cased.
func (s String) ToUpper(a alloc.Allocator) String {
	defer trace.Enter("String.ToUpper()")()

	buf := make([]byte, len(s.bytes))
	for i, b := range s.bytes {
		buf[i] = asciiUpper(b)
	}

	return fromBytes(a, buf)
}

// ToLower returns a new owned String with ASCII letters lower-cased.
func (s String) ToLower(a alloc.Allocator) String {
	defer trace.Enter("String.ToLower()")()

	buf := make([]byte, len(s.bytes))
	for i, b := range s.bytes {
		buf[i] = asciiLower(b)
	}

	return fromBytes(a, buf)
}

func isASCIISpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	default:
		return false
	}
}

// Trim returns a new owned String with leading/trailing ASCII whitespace
// removed.
func (s String) Trim(a alloc.Allocator) String {
	defer trace.Enter("String.Trim()")()

	start := 0
	for start < len(s.bytes) && isASCIISpace(s.bytes[start]) {
		start++
	}

	end := len(s.bytes)
	for end > start && isASCIISpace(s.bytes[end-1]) {
		end--
	}

	buf := make([]byte, end-start)
	copy(buf, s.bytes[start:end])

	return fromBytes(a, buf)
}

// Concat returns a new owned String equal to s followed by other.
func (s String) Concat(a alloc.Allocator, other String) String {
	defer trace.Enter("String.Concat()")()

	buf := make([]byte, len(s.bytes)+len(other.bytes))
	copy(buf, s.bytes)
	copy(buf[len(s.bytes):], other.bytes)

	return fromBytes(a, buf)
}

// ConcatCStr returns a new owned String equal to s followed by suffix.
func (s String) ConcatCStr(a alloc.Allocator, suffix string) String {
	defer trace.Enter("String.ConcatCStr()")()

	buf := make([]byte, len(s.bytes)+len(suffix))
	copy(buf, s.bytes)
	copy(buf[len(s.bytes):], suffix)

	return fromBytes(a, buf)
}

// ReplaceChar returns a new owned String with every occurrence of old
// replaced by next.
func (s String) ReplaceChar(a alloc.Allocator, old, next byte) String {
	defer trace.Enter("String.ReplaceChar()")()

	buf := make([]byte, len(s.bytes))

	for i, b := range s.bytes {
		if b == old {
			buf[i] = next
		} else {
			buf[i] = b
		}
	}

	return fromBytes(a, buf)
}

// Duplicate returns a new owned String identical to s, equivalent to Copy.
func (s String) Duplicate(a alloc.Allocator) String {
	return s.Copy(a)
}

// Split splits s on every occurrence of sep, returning owned pieces (empty
// pieces included, the same way a naive byte-split would).
func Split(a alloc.Allocator, s String, sep byte) []String {
	defer trace.Enter("tstring.Split(len=%d)", len(s.bytes))()

	var out []String

	start := 0

	for i := 0; i < len(s.bytes); i++ {
		if s.bytes[i] == sep {
			buf := make([]byte, i-start)
			copy(buf, s.bytes[start:i])
			out = append(out, fromBytes(a, buf))
			start = i + 1
		}
	}

	buf := make([]byte, len(s.bytes)-start)
	copy(buf, s.bytes[start:])
	out = append(out, fromBytes(a, buf))

	return out
}

// SplitDestroy destroys every piece produced by Split, releasing their tag
// accounting.
func SplitDestroy(pieces []String) {
	defer trace.Enter("tstring.SplitDestroy(count=%d)", len(pieces))()

	for i := range pieces {
		pieces[i].Destroy()
	}
}
