package mmfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "payload.bin")
	want := []byte{0xde, 0xad, 0xbe, 0xef, 0x42}
	require.NoError(t, os.WriteFile(path, want, 0o644))

	got, err := ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, want, got)

	// The copy stays valid after the mapping is gone.
	got[0] = 0
	again, err := ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, want, again)
}

func TestReadFileEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.bin")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	got, err := ReadFile(path)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestMapUnmapTwice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "twice.bin")
	require.NoError(t, os.WriteFile(path, []byte("abc"), 0o644))

	data, unmap, err := Map(path)
	require.NoError(t, err)
	require.Equal(t, []byte("abc"), data)
	require.NoError(t, unmap())
	require.NoError(t, unmap())
}
