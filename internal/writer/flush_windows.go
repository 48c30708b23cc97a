//go:build windows

package writer

import (
	"os"

	"golang.org/x/sys/windows"
)

// syncFile flushes file data and metadata with FlushFileBuffers.
// The fullsync parameter is ignored on Windows.
func syncFile(f *os.File, _ bool) error {
	return windows.FlushFileBuffers(windows.Handle(f.Fd()))
}
