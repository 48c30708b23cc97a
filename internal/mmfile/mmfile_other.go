//go:build !unix

package mmfile

// Map reads the whole file where mapping is not wired up.
func Map(path string) ([]byte, func() error, error) {
	return readAll(path)
}
