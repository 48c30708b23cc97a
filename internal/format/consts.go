// Package format holds the project-wide encoding constants used when turning
// resolved values into bytes. None of them are configurable.
package format

import "encoding/binary"

// ByteOrder is the byte order used for every fixed-width integer.
//
// Example:
//
//	U16(0x0013) -> []byte{0x00, 0x13}
//	U32(0x01020304) -> []byte{0x01, 0x02, 0x03, 0x04}
var ByteOrder = binary.BigEndian

const (
	// Terminator is appended once to every byte sequence built from text,
	// regardless of the text encoding in use.
	Terminator byte = 0x00

	// TerminatorSize is the number of bytes Terminator occupies.
	TerminatorSize = 1

	// DefaultMaxDepth bounds how deep containers may nest during a build.
	DefaultMaxDepth = 64
)

// Supported fixed integer widths in bytes.
const (
	Width8  = 1
	Width16 = 2
	Width32 = 4
	Width64 = 8
)

// ValidWidth reports whether w is one of the supported integer widths.
func ValidWidth(w int) bool {
	switch w {
	case Width8, Width16, Width32, Width64:
		return true
	default:
		return false
	}
}
