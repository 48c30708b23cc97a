package writer

// MemWriter captures build output in memory.
type MemWriter struct {
	Buf []byte
}

// WriteBlock replaces Buf with a copy of buf.
func (w *MemWriter) WriteBlock(buf []byte) error {
	w.Buf = append(w.Buf[:0], buf...)
	return nil
}
