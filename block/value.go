package block

import (
	"fmt"

	"github.com/joshuapare/blockkit/internal/buf"
)

// Value is a resolved field value. Every Value knows its encoded size and
// bytes; sizes and bytes never change once the value exists.
type Value interface {
	// Type returns the declared type the value was built for.
	Type() Type
	// Len returns the encoded size in bytes.
	Len() int
	// AppendTo appends the encoded bytes to dst.
	AppendTo(dst []byte) []byte
	// Bytes returns the encoded bytes in a new slice.
	Bytes() []byte
}

// Int is a resolved fixed-width integer.
type Int struct {
	typ *Integer
	// u holds the value sign-extended to 64 bits; encoding keeps the low
	// typ.width bytes, which yields two's complement for negatives.
	u   uint64
	neg bool
}

func (v *Int) Type() Type { return v.typ }
func (v *Int) Len() int   { return v.typ.width }

func (v *Int) AppendTo(dst []byte) []byte {
	return buf.AppendUint(dst, v.u, v.typ.width)
}

func (v *Int) Bytes() []byte { return v.AppendTo(make([]byte, 0, v.typ.width)) }

// Int returns the value as int64. Unsigned 64-bit values above MaxInt64 wrap;
// use Uint for those.
func (v *Int) Int() int64 { return int64(v.u) }

// Uint returns the value as uint64. Negative values return their 64-bit two's
// complement.
func (v *Int) Uint() uint64 { return v.u }

// Negative reports whether the value was given as a negative number.
func (v *Int) Negative() bool { return v.neg }

func (v *Int) String() string {
	if v.neg {
		return fmt.Sprintf("%d", int64(v.u))
	}
	return fmt.Sprintf("%d (0x%x)", v.u, v.u)
}

// ByteSeq is a resolved variable-length value: raw bytes, encoded text with its
// terminator, file contents, alignment padding or custom-encoded data.
type ByteSeq struct {
	typ  Type
	data []byte
}

func (v *ByteSeq) Type() Type { return v.typ }
func (v *ByteSeq) Len() int   { return len(v.data) }

func (v *ByteSeq) AppendTo(dst []byte) []byte { return append(dst, v.data...) }

func (v *ByteSeq) Bytes() []byte { return v.AppendTo(make([]byte, 0, len(v.data))) }

// Array is a resolved Array[T]: one element per item of the raw sequence.
type Array struct {
	typ   *arrayType
	at    site
	elems []Value
}

func (a *Array) Type() Type { return a.typ }

// Len returns the sum of the element sizes; 0 for an empty array.
func (a *Array) Len() int {
	n := 0
	for _, e := range a.elems {
		n += e.Len()
	}
	return n
}

func (a *Array) AppendTo(dst []byte) []byte {
	for _, e := range a.elems {
		dst = e.AppendTo(dst)
	}
	return dst
}

func (a *Array) Bytes() []byte { return a.AppendTo(make([]byte, 0, a.Len())) }

// Count returns the number of elements.
func (a *Array) Count() int { return len(a.elems) }

// Elem returns element i.
func (a *Array) Elem(i int) Value { return a.elems[i] }

// Elements returns the elements in layout order.
func (a *Array) Elements() []Value {
	out := make([]Value, len(a.elems))
	copy(out, a.elems)
	return out
}

// offsetOf returns the offset of element i relative to the array start.
// Elements before i are always built by the time i is asked for.
func (a *Array) offsetOf(i int) int {
	off := 0
	for _, e := range a.elems[:min(i, len(a.elems))] {
		off += e.Len()
	}
	return off
}
