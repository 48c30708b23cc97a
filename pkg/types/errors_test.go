package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorTraceIsRootFirst(t *testing.T) {
	err := Errorf(ErrKindMissingField, "no value found for %q", "name")
	err.AddFrame("LevelHeader -> name")
	err.AddFrame("Level -> header")

	require.Equal(t, []string{"Level -> header", "LevelHeader -> name"}, err.Trace())
	require.Equal(t, `no value found for "name"`, err.Error())
	require.Equal(t, "no value found for \"name\"\n  Level -> header\n  LevelHeader -> name", err.Report())
}

func TestAddFrameForKeepsOneFramePerOwner(t *testing.T) {
	level, header := new(int), new(int)
	err := Errorf(ErrKindTypeMismatch, "expected bytes")
	err.AddFrameFor(level, "Level -> name")
	err.AddFrameFor(level, "Level -> name_length")
	err.AddFrame("Array[Level] -> (element 0)")
	err.AddFrameFor(header, "Header -> levels")
	err.AddFrameFor(level, "Level -> back")

	require.Equal(t, []string{
		"Level -> back",
		"Header -> levels",
		"Array[Level] -> (element 0)",
		"Level -> name",
	}, err.Trace())

	wrapped := From(fmt.Errorf("outer: %w", err))
	wrapped.AddFrameFor(level, "Level -> again")
	require.Len(t, wrapped.Trace(), 4)
}

func TestErrorIsMatchesKind(t *testing.T) {
	err := Errorf(ErrKindCircular, "cycle")
	require.True(t, errors.Is(err, ErrCircular))
	require.False(t, errors.Is(err, ErrMissingField))

	wrapped := fmt.Errorf("outer: %w", err)
	require.True(t, errors.Is(wrapped, ErrCircular))
}

func TestFromPreservesForeignMessage(t *testing.T) {
	cause := errors.New("disk on fire")
	e := From(cause)

	require.Equal(t, ErrKindProducer, e.Kind)
	require.Equal(t, "disk on fire", e.Error())
	require.ErrorIs(t, e, cause)
}

func TestFromKeepsInnerKindAndFrames(t *testing.T) {
	inner := Errorf(ErrKindCircular, "cycle")
	inner.Cycle = []string{"a", "b"}
	inner.AddFrame("Level -> b")

	e := From(fmt.Errorf("size of b: %w", inner))
	require.Equal(t, ErrKindCircular, e.Kind)
	require.Equal(t, []string{"a", "b"}, e.Cycle)
	require.Equal(t, []string{"Level -> b"}, e.Trace())
	require.Equal(t, "size of b: cycle", e.Error())
}

func TestFromReturnsSameError(t *testing.T) {
	e := New(ErrKindIO, "boom")
	require.Same(t, e, From(e))
	require.Nil(t, From(nil))
}

func TestWrapMessage(t *testing.T) {
	e := Wrap(ErrKindIO, errors.New("no such file"), "file read error: a.bin")
	require.Equal(t, "file read error: a.bin: no such file", e.Error())

	e = Wrap(ErrKindIO, errors.New("no such file"), "")
	require.Equal(t, "no such file", e.Error())
}

func TestKindOf(t *testing.T) {
	k, ok := KindOf(fmt.Errorf("x: %w", New(ErrKindRange, "too big")))
	require.True(t, ok)
	require.Equal(t, ErrKindRange, k)
	require.Equal(t, "range", k.String())

	_, ok = KindOf(errors.New("plain"))
	require.False(t, ok)
}

func TestNodeWalk(t *testing.T) {
	root := Node{
		Type: "Level", Kind: KindBlock, Index: -1,
		Children: []Node{
			{Name: "a", Type: "U8", Kind: KindInt, Index: -1},
			{Name: "b", Type: "Array[U8]", Kind: KindArray, Index: -1, Children: []Node{
				{Type: "U8", Kind: KindInt, Index: 0},
			}},
		},
	}

	var seen []string
	root.Walk(func(n Node, depth int) bool {
		seen = append(seen, fmt.Sprintf("%d:%s", depth, n.Type))
		return true
	})
	require.Equal(t, []string{"0:Level", "1:U8", "1:Array[U8]", "2:U8"}, seen)
	require.False(t, root.IsLeaf())
	require.True(t, root.Children[0].IsLeaf())
}
