// Package mmfile reads the payload files embedded by File fields.
package mmfile

import "os"

// ReadFile returns a private copy of the file at path. Where the platform
// supports it the contents are memory-mapped and copied once, so large
// payloads are not read through an intermediate buffer.
func ReadFile(path string) ([]byte, error) {
	data, unmap, err := Map(path)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(data))
	copy(out, data)
	if err := unmap(); err != nil {
		return nil, err
	}
	return out, nil
}

func readAll(path string) ([]byte, func() error, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	return data, func() error { return nil }, nil
}
