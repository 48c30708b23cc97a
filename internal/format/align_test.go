package format

import "testing"

func TestPad(t *testing.T) {
	cases := []struct {
		offset, boundary, want int
	}{
		{0, 2, 0},
		{1, 2, 1},
		{2, 2, 0},
		{5, 4, 3},
		{8, 4, 0},
		{9, 8, 7},
		{3, 1, 0},
		{3, 0, 0},
	}
	for _, c := range cases {
		if got := Pad(c.offset, c.boundary); got != c.want {
			t.Fatalf("Pad(%d, %d) = %d, want %d", c.offset, c.boundary, got, c.want)
		}
	}
}

func TestValidWidth(t *testing.T) {
	for _, w := range []int{1, 2, 4, 8} {
		if !ValidWidth(w) {
			t.Fatalf("width %d should be valid", w)
		}
	}
	for _, w := range []int{0, 3, 16} {
		if ValidWidth(w) {
			t.Fatalf("width %d should be invalid", w)
		}
	}
}

func TestByteOrderIsBigEndian(t *testing.T) {
	buf := make([]byte, 2)
	ByteOrder.PutUint16(buf, 0x0013)
	if buf[0] != 0x00 || buf[1] != 0x13 {
		t.Fatalf("unexpected encoding % x", buf)
	}
}
