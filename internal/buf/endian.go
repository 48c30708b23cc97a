// Package buf contains helpers for the fixed-width integer encoding used by
// every built file and for overflow-safe offset arithmetic.
package buf

import "github.com/joshuapare/blockkit/internal/format"

// AppendUint appends the low width bytes of v to dst in the project byte
// order. Width must be one of format.Width8/16/32/64; other widths append
// nothing.
//
// Example:
//
//	AppendUint(nil, 0x13, 2) -> []byte{0x00, 0x13}
func AppendUint(dst []byte, v uint64, width int) []byte {
	switch width {
	case format.Width8:
		return append(dst, byte(v))
	case format.Width16:
		return format.ByteOrder.AppendUint16(dst, uint16(v))
	case format.Width32:
		return format.ByteOrder.AppendUint32(dst, uint32(v))
	case format.Width64:
		return format.ByteOrder.AppendUint64(dst, v)
	default:
		return dst
	}
}

// Uint decodes b as an unsigned integer in the project byte order. Returns 0
// when b is not one of the supported widths.
func Uint(b []byte) uint64 {
	switch len(b) {
	case format.Width8:
		return uint64(b[0])
	case format.Width16:
		return uint64(format.ByteOrder.Uint16(b))
	case format.Width32:
		return uint64(format.ByteOrder.Uint32(b))
	case format.Width64:
		return format.ByteOrder.Uint64(b)
	default:
		return 0
	}
}

// Int decodes b as a two's complement signed integer in the project byte
// order. Returns 0 when b is not one of the supported widths.
func Int(b []byte) int64 {
	switch len(b) {
	case format.Width8:
		return int64(int8(b[0]))
	case format.Width16:
		return int64(int16(format.ByteOrder.Uint16(b)))
	case format.Width32:
		return int64(int32(format.ByteOrder.Uint32(b)))
	case format.Width64:
		return int64(format.ByteOrder.Uint64(b))
	default:
		return 0
	}
}
