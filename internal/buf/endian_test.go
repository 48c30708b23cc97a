package buf

import (
	"bytes"
	"testing"
)

func TestAppendUint(t *testing.T) {
	cases := []struct {
		v     uint64
		width int
		want  []byte
	}{
		{0x03, 1, []byte{0x03}},
		{0x13, 2, []byte{0x00, 0x13}},
		{0x01020304, 4, []byte{0x01, 0x02, 0x03, 0x04}},
		{0x0102030405060708, 8, []byte{1, 2, 3, 4, 5, 6, 7, 8}},
		{0xFFFF, 1, []byte{0xFF}},
	}
	for _, c := range cases {
		if got := AppendUint(nil, c.v, c.width); !bytes.Equal(got, c.want) {
			t.Fatalf("AppendUint(0x%x, %d) = % x, want % x", c.v, c.width, got, c.want)
		}
	}
	if got := AppendUint([]byte{0xAA}, 1, 3); !bytes.Equal(got, []byte{0xAA}) {
		t.Fatalf("unsupported width should append nothing, got % x", got)
	}
}

func TestUintAndInt(t *testing.T) {
	if got := Uint([]byte{0x00, 0x13}); got != 0x13 {
		t.Fatalf("Uint = 0x%x, want 0x13", got)
	}
	if got := Uint([]byte{1, 2, 3}); got != 0 {
		t.Fatalf("Uint of odd width = %d, want 0", got)
	}
	if got := Int([]byte{0xFF}); got != -1 {
		t.Fatalf("Int(ff) = %d, want -1", got)
	}
	if got := Int([]byte{0xFF, 0xFE}); got != -2 {
		t.Fatalf("Int(fffe) = %d, want -2", got)
	}
	if got := Int([]byte{0x7F, 0xFF, 0xFF, 0xFF}); got != 0x7FFFFFFF {
		t.Fatalf("Int = %d", got)
	}
}
