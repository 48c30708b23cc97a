package format

// Alignment utilities for Align[T] fields.
// The padding is derived from the absolute offset of the align field and the
// width of T.

// Pad returns the number of zero bytes needed to move offset up to the next
// multiple of boundary. A boundary below 2 never needs padding.
//
// Example:
//
//	Pad(0, 2) = 0
//	Pad(5, 2) = 1
//	Pad(5, 4) = 3
//	Pad(8, 4) = 0
func Pad(offset, boundary int) int {
	if boundary <= 1 {
		return 0
	}
	rem := offset % boundary
	if rem < 0 {
		rem += boundary
	}
	return (boundary - rem) % boundary
}
