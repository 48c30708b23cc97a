package printer

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/blockkit/block"
	"github.com/joshuapare/blockkit/pkg/types"
)

func levelTree(t *testing.T) types.Node {
	t.Helper()
	header := block.MustSchema("LevelHeader",
		block.Field("magic", block.U32),
		block.Field("version", block.U16),
		block.Field("title", block.Bytes),
	)
	data := block.MustSchema("LevelData",
		block.Field("count", block.U8),
		block.Field("samples", block.ArrayOf(block.U16)),
	)
	level := block.MustSchema("Level",
		block.Field("data_offset", block.U16).WithProducer(func(b *block.Block, _ any) (any, error) {
			return b.GlobalOffsetOf("data")
		}),
		block.Field("header", header),
		block.Field("nothing", block.Empty),
		block.Field("data", data),
	)
	b := block.New(level, map[string]any{
		"header": map[string]any{"magic": 1, "version": 2, "title": "ABCDEFGHIJ"},
		"data":   map[string]any{"count": 4, "samples": []any{60, 180, 320, 400}},
	}, nil)
	root, err := b.Tree()
	require.NoError(t, err)
	return root
}

func TestPrinter_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf, DefaultOptions()).Print(levelTree(t)))

	want := "" +
		"0x0 (0x0) data_offset: U16\n" +
		"0x2 (0x2) header: LevelHeader\n" +
		"    0x2 (0x0) magic: U32\n" +
		"    0x6 (0x4) version: U16\n" +
		"    0x8 (0x6) title: Bytes\n" +
		"0x13 (0x13) data: LevelData\n" +
		"    0x13 (0x0) count: U8\n" +
		"    0x14 (0x1) samples: Array[U16] (4)\n" +
		"        0x14 ...\n"
	require.Equal(t, want, buf.String())
}

func TestPrinter_TextExpanded(t *testing.T) {
	opts := DefaultOptions()
	opts.CollapseArrays = false
	opts.ShowValues = true
	opts.ShowEmpty = true
	opts.IndentSize = 2

	var buf bytes.Buffer
	require.NoError(t, New(&buf, opts).Print(levelTree(t)))
	out := buf.String()

	require.Contains(t, out, "0x0 (0x0) data_offset: U16 = 0x13 (19)\n")
	require.Contains(t, out, "0x13 (0x13) nothing: Empty = <empty>\n")
	require.Contains(t, out, "    0x16 (0x2) U16 = 0xb4 (180)\n")
	require.Contains(t, out, "  0x8 (0x6) title: Bytes = 4142434445464748494A00\n")
}

func TestPrinter_TextMaxDepth(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxDepth = 1

	var buf bytes.Buffer
	require.NoError(t, New(&buf, opts).Print(levelTree(t)))
	require.Equal(t, "0x0 (0x0) data_offset: U16\n0x2 (0x2) header: LevelHeader\n0x13 (0x13) data: LevelData\n", buf.String())
}

func TestPrinter_TruncatesValues(t *testing.T) {
	opts := DefaultOptions()
	opts.ShowValues = true
	opts.MaxValueBytes = 2

	var buf bytes.Buffer
	require.NoError(t, New(&buf, opts).Print(levelTree(t)))
	require.Contains(t, buf.String(), "title: Bytes = 4142 (truncated, 11 total bytes)")
}

func TestPrinter_JSON(t *testing.T) {
	opts := DefaultOptions()
	opts.Format = FormatJSON
	opts.ShowValues = true

	var buf bytes.Buffer
	require.NoError(t, New(&buf, opts).Print(levelTree(t)))

	var doc struct {
		Type     string `json:"type"`
		Size     int    `json:"size"`
		Children []struct {
			Name         string `json:"name"`
			GlobalOffset int    `json:"global_offset"`
			Value        any    `json:"value"`
			Data         string `json:"data"`
		} `json:"children"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	require.Equal(t, "Level", doc.Type)
	require.Equal(t, 0x13+1+8, doc.Size)
	require.Len(t, doc.Children, 3) // Empty is skipped
	require.Equal(t, "data_offset", doc.Children[0].Name)
	require.EqualValues(t, 19, doc.Children[0].Value)
	require.Equal(t, "0013", doc.Children[0].Data)
	require.Equal(t, 0x13, doc.Children[2].GlobalOffset)
}

func TestPrinter_UnknownFormat(t *testing.T) {
	opts := DefaultOptions()
	opts.Format = "xml"
	require.Error(t, New(&bytes.Buffer{}, opts).Print(types.Node{}))
}
