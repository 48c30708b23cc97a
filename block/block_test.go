package block

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func levelSchema(t *testing.T) *Schema {
	t.Helper()
	s, err := NewSchema("Level",
		Field("level_id", U8),
		Field("setting", U8),
		Field("name_length", U8).WithProducer(func(b *Block, _ any) (any, error) {
			return b.SizeOf("name")
		}),
		Field("name", Bytes),
	)
	require.NoError(t, err)
	return s
}

func levelInput() map[string]any {
	return map[string]any{"level_id": 3, "setting": 2, "name": "Example Level"}
}

func TestBuild_LevelWithNameLength(t *testing.T) {
	out, err := Build(levelSchema(t), levelInput(), nil)
	require.NoError(t, err)
	require.Equal(t, []byte{
		0x03, 0x02, 0x0e,
		0x45, 0x78, 0x61, 0x6d, 0x70, 0x6c, 0x65, 0x20, 0x4c, 0x65, 0x76, 0x65, 0x6c,
		0x00,
	}, out)
}

func TestBuild_Deterministic(t *testing.T) {
	s := levelSchema(t)
	first, err := Build(s, levelInput(), nil)
	require.NoError(t, err)
	second, err := Build(s, levelInput(), nil)
	require.NoError(t, err)
	require.Equal(t, first, second)

	b := New(s, levelInput(), nil)
	a1, err := b.Build()
	require.NoError(t, err)
	a2, err := b.Build()
	require.NoError(t, err)
	require.Equal(t, a1, a2)
	require.True(t, b.Built())
}

func nestedLevel(t *testing.T) *Schema {
	t.Helper()
	header := MustSchema("LevelHeader",
		Field("magic", U32),
		Field("version", U16),
		Field("title", Bytes),
	)
	data := MustSchema("LevelData",
		Field("count", U8).WithProducer(func(b *Block, _ any) (any, error) {
			v, err := b.Resolve("samples")
			if err != nil {
				return nil, err
			}
			return v.(*Array).Count(), nil
		}),
		Field("samples", ArrayOf(U16)),
	)
	return MustSchema("Level",
		Field("data_offset", U16).WithProducer(func(b *Block, _ any) (any, error) {
			return b.GlobalOffsetOf("data")
		}),
		Field("header", header),
		Field("data", data),
	)
}

func nestedInput() map[string]any {
	return map[string]any{
		"header": map[string]any{
			"magic":   0x4c56_4c31,
			"version": 1,
			"title":   "ABCDEFGHIJ", // 10 bytes + terminator: header is 0x11 bytes
		},
		"data": map[string]any{
			"samples": []any{60, 180, 320, 400},
		},
	}
}

func TestResolve_GlobalOffsetIndependentOfOrder(t *testing.T) {
	t.Run("offset first", func(t *testing.T) {
		b := New(nestedLevel(t), nestedInput(), nil)
		off, err := b.IntOf("data_offset")
		require.NoError(t, err)
		require.Equal(t, int64(0x13), off)
	})

	t.Run("header and data first", func(t *testing.T) {
		b := New(nestedLevel(t), nestedInput(), nil)
		hdr, err := b.Resolve("header")
		require.NoError(t, err)
		require.Equal(t, 0x11, hdr.Len())
		_, err = b.Resolve("data")
		require.NoError(t, err)
		off, err := b.IntOf("data_offset")
		require.NoError(t, err)
		require.Equal(t, int64(0x13), off)
	})

	t.Run("data first", func(t *testing.T) {
		b := New(nestedLevel(t), nestedInput(), nil)
		_, err := b.Resolve("data")
		require.NoError(t, err)
		off, err := b.IntOf("data_offset")
		require.NoError(t, err)
		require.Equal(t, int64(0x13), off)
		global, err := b.GlobalOffsetOf("data")
		require.NoError(t, err)
		require.Equal(t, 0x13, global)
	})

	t.Run("serialized", func(t *testing.T) {
		out, err := Build(nestedLevel(t), nestedInput(), nil)
		require.NoError(t, err)
		require.Equal(t, []byte{0x00, 0x13}, out[:2])
		require.Equal(t, byte(4), out[0x13])
		require.Len(t, out, 0x13+1+8)
	})
}

func TestBlock_NestedAccessors(t *testing.T) {
	b := New(nestedLevel(t), nestedInput(), nil)
	_, err := b.Build()
	require.NoError(t, err)

	v, err := b.Resolve("data")
	require.NoError(t, err)
	data := v.(*Block)
	require.Same(t, b, data.Parent())
	require.Same(t, b, data.Root())
	require.Equal(t, 1, data.Depth())
	require.Equal(t, "data", data.FieldName())
	require.Equal(t, -1, data.Index())

	off, err := data.Offset()
	require.NoError(t, err)
	require.Equal(t, 0x13, off)
	global, err := data.GlobalOffsetOf("samples")
	require.NoError(t, err)
	require.Equal(t, 0x14, global)

	rootOff, err := b.GlobalOffsetOf("data_offset")
	require.NoError(t, err)
	require.Equal(t, 0, rootOff)
}

func TestBlock_RawAndHas(t *testing.T) {
	b := New(levelSchema(t), levelInput(), nil)
	require.True(t, b.Has("name"))
	require.False(t, b.Has("name_length"))
	raw, ok := b.Raw("level_id")
	require.True(t, ok)
	require.Equal(t, 3, raw)
}

func TestBlock_LayoutInvariant(t *testing.T) {
	b := New(nestedLevel(t), nestedInput(), nil)
	_, err := b.Build()
	require.NoError(t, err)

	fields := b.Schema().Fields()
	for i := 1; i < len(fields); i++ {
		prevOff, err := b.OffsetOf(fields[i-1].Name)
		require.NoError(t, err)
		prevSize, err := b.SizeOf(fields[i-1].Name)
		require.NoError(t, err)
		off, err := b.OffsetOf(fields[i].Name)
		require.NoError(t, err)
		require.Equal(t, prevOff+prevSize, off, "field %s", fields[i].Name)
	}

	first, err := b.GlobalOffsetOf(fields[0].Name)
	require.NoError(t, err)
	require.Zero(t, first)
}

func TestBlock_ProducerCalledOnce(t *testing.T) {
	calls := 0
	s := MustSchema("Counted",
		Field("size", U8).WithProducer(func(b *Block, _ any) (any, error) {
			return b.SizeOf("body")
		}),
		Field("body", Bytes).WithProducer(func(b *Block, raw any) (any, error) {
			calls++
			return raw, nil
		}),
	)
	b := New(s, map[string]any{"body": []byte{1, 2, 3}}, nil)
	_, err := b.Resolve("body")
	require.NoError(t, err)
	out, err := b.Build()
	require.NoError(t, err)
	require.Equal(t, []byte{3, 1, 2, 3}, out)
	require.Equal(t, 1, calls)
}

func TestBlock_ProducerSeesParent(t *testing.T) {
	child := MustSchema("Entry",
		Field("base", U8).WithProducer(func(b *Block, _ any) (any, error) {
			return b.Parent().IntOf("origin")
		}),
	)
	s := MustSchema("Table",
		Field("origin", U8),
		Field("entry", child),
	)
	out, err := Build(s, map[string]any{"origin": 7, "entry": map[string]any{}}, nil)
	require.NoError(t, err)
	require.Equal(t, []byte{7, 7}, out)
}

func TestBlock_Tree(t *testing.T) {
	b := New(nestedLevel(t), nestedInput(), nil)
	root, err := b.Tree()
	require.NoError(t, err)
	require.Equal(t, "Level", root.Type)
	require.Equal(t, 0x13+1+8, root.Size)
	require.Len(t, root.Children, 3)

	data := root.Children[2]
	require.Equal(t, "data", data.Name)
	require.Equal(t, 0x13, data.GlobalOffset)

	samples := data.Children[1]
	require.Equal(t, "Array[U16]", samples.Type)
	require.Len(t, samples.Children, 4)
	require.Equal(t, 2, samples.Children[1].Offset)
	require.Equal(t, 0x14+2, samples.Children[1].GlobalOffset)
	require.Equal(t, []byte{0x00, 0xb4}, samples.Children[1].Data)
}

func TestBuild_LogsResolvedFields(t *testing.T) {
	var logs bytes.Buffer
	opts := &Options{Logger: slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))}

	_, err := Build(levelSchema(t), levelInput(), opts)
	require.NoError(t, err)
	require.Contains(t, logs.String(), "resolved field")
	require.Contains(t, logs.String(), "field=name_length")
	require.Contains(t, logs.String(), "invoking producer")
}
