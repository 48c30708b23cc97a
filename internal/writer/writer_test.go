package writer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileWriter_WritesAtomically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.bin")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o600))

	w := &FileWriter{Path: path}
	require.NoError(t, w.WriteBlock([]byte{0x03, 0x02, 0x0e}))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, []byte{0x03, 0x02, 0x0e}, got)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp file left behind")
}

func TestFileWriter_Mode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.bin")
	w := &FileWriter{Path: path, Mode: 0o600, FullSync: true}
	require.NoError(t, w.WriteBlock(nil))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Zero(t, info.Size())
	if os.PathSeparator == '/' {
		require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	}
}

func TestFileWriter_MissingDir(t *testing.T) {
	w := &FileWriter{Path: filepath.Join(t.TempDir(), "nope", "out.bin")}
	require.Error(t, w.WriteBlock([]byte{1}))
}

func TestMemWriter(t *testing.T) {
	var w Writer = &MemWriter{}
	src := []byte{1, 2, 3}
	require.NoError(t, w.WriteBlock(src))
	src[0] = 9
	require.Equal(t, []byte{1, 2, 3}, w.(*MemWriter).Buf)
}
