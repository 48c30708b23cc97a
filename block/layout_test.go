package block

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAlign_PadsToBoundary(t *testing.T) {
	s := MustSchema("Padded",
		Field("lead", Bytes),
		Field("pad", Align(U16)),
		Field("tail", U16),
	)
	for k := 0; k < 6; k++ {
		b := New(s, map[string]any{"lead": make([]byte, k), "tail": 0xbeef}, nil)
		out, err := b.Build()
		require.NoError(t, err)

		pad, err := b.SizeOf("pad")
		require.NoError(t, err)
		require.Equal(t, (2-k%2)%2, pad, "lead of %d bytes", k)

		off, err := b.OffsetOf("tail")
		require.NoError(t, err)
		require.Zero(t, off%2)
		require.Equal(t, []byte{0xbe, 0xef}, out[off:])
	}
}

func TestAlign_UsesAbsoluteOffset(t *testing.T) {
	inner := MustSchema("Inner",
		Field("pad", Align(U32)),
		Field("v", U32),
	)
	s := MustSchema("Outer",
		Field("tag", U8),
		Field("inner", inner),
	)
	out, err := Build(s, map[string]any{"tag": 9, "inner": map[string]any{"v": 1}}, nil)
	require.NoError(t, err)
	require.Equal(t, []byte{9, 0, 0, 0, 0, 0, 0, 1}, out)
}

func TestAlign_InsideArrayElements(t *testing.T) {
	entry := MustSchema("Entry",
		Field("name", Bytes),
		Field("pad", Align(U16)),
	)
	s := MustSchema("Table", Field("entries", ArrayOf(entry)))
	b := New(s, map[string]any{"entries": []any{
		map[string]any{"name": "ab"}, // 3 bytes + 1 pad
		map[string]any{"name": "c"},  // 2 bytes at offset 4, no pad
	}}, nil)
	out, err := b.Build()
	require.NoError(t, err)
	require.Equal(t, []byte{'a', 'b', 0, 0, 'c', 0}, out)

	v, err := b.Resolve("entries")
	require.NoError(t, err)
	second := v.(*Array).Elem(1).(*Block)
	require.Equal(t, 1, second.Index())
	off, err := second.Offset()
	require.NoError(t, err)
	require.Equal(t, 4, off)
	global, err := second.GlobalOffset()
	require.NoError(t, err)
	require.Equal(t, 4, global)
}

func TestArray_SizeLaw(t *testing.T) {
	s := MustSchema("Samples", Field("values", ArrayOf(U16)))

	b := New(s, map[string]any{"values": []int{60, 180, 320, 400}}, nil)
	v, err := b.Resolve("values")
	require.NoError(t, err)
	arr := v.(*Array)
	require.Equal(t, 4, arr.Count())
	require.Equal(t, 8, arr.Len())
	require.Equal(t, []byte{0x00, 0x3c, 0x00, 0xb4, 0x01, 0x40, 0x01, 0x90}, arr.Bytes())

	empty := New(s, map[string]any{"values": []any{}}, nil)
	n, err := empty.SizeOf("values")
	require.NoError(t, err)
	require.Zero(t, n)
	out, err := empty.Build()
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestOffsetOf_StaticPredecessorsNotResolved(t *testing.T) {
	calls := 0
	s := MustSchema("Lazy",
		Field("v", U32).WithProducer(func(*Block, any) (any, error) {
			calls++
			return 1, nil
		}),
		Field("w", U8),
	)
	b := New(s, map[string]any{"w": 1}, nil)
	off, err := b.OffsetOf("w")
	require.NoError(t, err)
	require.Equal(t, 4, off)
	require.Zero(t, calls)

	n, err := b.SizeOf("v")
	require.NoError(t, err)
	require.Equal(t, 4, n)
	require.Equal(t, 1, calls)
}

func TestOffsetOf_PastFieldInProgress(t *testing.T) {
	s := MustSchema("Record",
		Field("body_offset", U16).WithProducer(func(b *Block, _ any) (any, error) {
			return b.OffsetOf("body")
		}),
		Field("kind", U8),
		Field("body", Bytes),
		Field("end", U8).WithProducer(func(b *Block, _ any) (any, error) {
			return b.OffsetOf("end")
		}),
	)
	out, err := Build(s, map[string]any{"kind": 7, "body": []byte{0xaa}}, nil)
	require.NoError(t, err)
	require.Equal(t, []byte{0x00, 0x03, 0x07, 0xaa, 0x04}, out)
}

func TestSchema_StaticLayout(t *testing.T) {
	s := MustSchema("Header",
		Field("magic", U32),
		Field("version", U16),
		Field("flags", U8),
	)
	size, ok := s.StaticSize()
	require.True(t, ok)
	require.Equal(t, 7, size)
	off, ok := s.OffsetOf("flags")
	require.True(t, ok)
	require.Equal(t, 6, off)

	_, ok = MustSchema("Var", Field("name", Bytes)).StaticSize()
	require.False(t, ok)
}
