//go:build darwin

package writer

import (
	"os"

	"golang.org/x/sys/unix"
)

// syncFile flushes file data to disk.
//
// On macOS, if fullsync is true, use F_FULLFSYNC so the data survives power
// loss. Otherwise, use regular fsync.
func syncFile(f *os.File, fullsync bool) error {
	if fullsync {
		_, err := unix.FcntlInt(f.Fd(), unix.F_FULLFSYNC, 0)
		return err
	}
	return unix.Fsync(int(f.Fd()))
}
