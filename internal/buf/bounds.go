package buf

import "math"

// AddOverflowSafe adds a and b, returning ok = false when the result would overflow int.
func AddOverflowSafe(a, b int) (int, bool) {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return 0, false
	case b < 0 && a < math.MinInt-b:
		return 0, false
	default:
		return a + b, true
	}
}

// SumSafe adds every element of sizes, stopping with ok = false on overflow.
func SumSafe(sizes ...int) (int, bool) {
	total := 0
	for _, s := range sizes {
		var ok bool
		if total, ok = AddOverflowSafe(total, s); !ok {
			return 0, false
		}
	}
	return total, true
}
