//go:build linux || freebsd

package writer

import (
	"os"

	"golang.org/x/sys/unix"
)

// syncFile flushes file data to disk.
//
// On Linux/FreeBSD, fdatasync() provides sufficient guarantees.
// The fullsync parameter is ignored.
func syncFile(f *os.File, _ bool) error {
	return unix.Fdatasync(int(f.Fd()))
}
