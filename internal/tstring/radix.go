package tstring

import (
	"strconv"

	"github.com/teleios/teleios/internal/alloc"
	"github.com/teleios/teleios/internal/logx"
	"github.com/teleios/teleios/internal/trace"
)

// FromI64 renders v in base (2..36, lowercase digits) as a new owned
// String.
func FromI64(a alloc.Allocator, v int64, base int) String {
	return Create(a, strconv.FormatInt(v, base))
}

// FromU64 renders v in base (2..36) as a new owned String.
func FromU64(a alloc.Allocator, v uint64, base int) String {
	return Create(a, strconv.FormatUint(v, base))
}

// FromI8/FromI16/FromI32 and FromU8/FromU16/FromU32 are sized convenience
// wrappers over FromI64/FromU64.
func FromI8(a alloc.Allocator, v int8, base int) String   { return FromI64(a, int64(v), base) }
func FromI16(a alloc.Allocator, v int16, base int) String { return FromI64(a, int64(v), base) }
func FromI32(a alloc.Allocator, v int32, base int) String { return FromI64(a, int64(v), base) }
func FromU8(a alloc.Allocator, v uint8, base int) String   { return FromU64(a, uint64(v), base) }
func FromU16(a alloc.Allocator, v uint16, base int) String { return FromU64(a, uint64(v), base) }
func FromU32(a alloc.Allocator, v uint32, base int) String { return FromU64(a, uint64(v), base) }

// ToI64 parses s in base (base 10 when base==0, the strtol default).
// Trailing garbage after a valid numeric prefix, e.g. "30fps", is rejected
// rather than silently truncated: ok is false and the returned value is 0.
func ToI64(s String, base int) (int64, bool) {
	defer trace.Enter("tstring.ToI64(base=%d)", base)()

	if base == 0 {
		base = 10
	}

	v, err := strconv.ParseInt(string(s.bytes), base, 64)
	if err != nil {
		logx.Errorf("tstring: failed to parse %q as base-%d integer: %v", s.bytes, base, err)

		return 0, false
	}

	return v, true
}

// ToU64 is ToI64's unsigned counterpart.
func ToU64(s String, base int) (uint64, bool) {
	defer trace.Enter("tstring.ToU64(base=%d)", base)()

	if base == 0 {
		base = 10
	}

	v, err := strconv.ParseUint(string(s.bytes), base, 64)
	if err != nil {
		logx.Errorf("tstring: failed to parse %q as base-%d unsigned integer: %v", s.bytes, base, err)

		return 0, false
	}

	return v, true
}

// ToF64 parses s as a floating-point number using the platform's
// strtod-equivalent semantics (strconv.ParseFloat).
func ToF64(s String) (float64, bool) {
	defer trace.Enter("tstring.ToF64()")()

	v, err := strconv.ParseFloat(string(s.bytes), 64)
	if err != nil {
		logx.Errorf("tstring: failed to parse %q as float64: %v", s.bytes, err)

		return 0, false
	}

	return v, true
}

// ToF32 is ToF64 narrowed to float32, using strtof-equivalent semantics.
func ToF32(s String) (float32, bool) {
	defer trace.Enter("tstring.ToF32()")()

	v, err := strconv.ParseFloat(string(s.bytes), 32)
	if err != nil {
		logx.Errorf("tstring: failed to parse %q as float32: %v", s.bytes, err)

		return 0, false
	}

	return float32(v), true
}
