// Package writer exposes sinks for built files.
package writer

import (
	"fmt"
	"os"
	"path/filepath"
)

// Writer receives the bytes of a finished build. A build that fails never
// reaches a Writer, so sinks only ever see complete output.
type Writer interface {
	WriteBlock(buf []byte) error
}

// FileWriter writes build output to a filesystem path atomically.
type FileWriter struct {
	Path string

	// Mode is applied to the written file.
	// Default: 0o644
	Mode os.FileMode

	// FullSync requests F_FULLFSYNC on macOS so the data reaches the
	// physical disk and not only the drive cache. Ignored elsewhere.
	FullSync bool
}

// WriteBlock writes buf to the configured path atomically via temp file +
// durable sync + rename. The previous file, if any, is untouched on failure.
func (w *FileWriter) WriteBlock(buf []byte) error {
	// Create temp file in same directory to ensure atomic rename
	dir := filepath.Dir(w.Path)
	tmpFile, err := os.CreateTemp(dir, ".blockkit-tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	// Clean up temp file on error
	defer func() {
		if tmpFile != nil {
			_ = tmpFile.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, writeErr := tmpFile.Write(buf); writeErr != nil {
		return fmt.Errorf("write temp file: %w", writeErr)
	}

	mode := w.Mode
	if mode == 0 {
		mode = 0o644
	}
	if chmodErr := tmpFile.Chmod(mode); chmodErr != nil {
		return fmt.Errorf("chmod temp file: %w", chmodErr)
	}

	if syncErr := syncFile(tmpFile, w.FullSync); syncErr != nil {
		return fmt.Errorf("sync temp file: %w", syncErr)
	}

	// Close before rename
	if closeErr := tmpFile.Close(); closeErr != nil {
		return fmt.Errorf("close temp file: %w", closeErr)
	}
	tmpFile = nil // Don't clean up in defer

	if renameErr := os.Rename(tmpPath, w.Path); renameErr != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", renameErr)
	}

	return nil
}
