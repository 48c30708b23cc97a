// Package source loads the raw input of a build from JSON, TOML, YAML or HCL
// files and normalizes it into the nested map[string]any that block.New
// expects.
//
// Example:
//
//	doc, err := source.Load("levels/level1.toml")
//	if err != nil {
//	    return err
//	}
//	out, err := block.Build(level, doc.Data, &block.Options{BaseDir: doc.BaseDir})
package source

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Format names an input syntax.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatHCL  Format = "hcl"
)

// ErrUnsupportedFormat is returned for unknown formats and file extensions.
var ErrUnsupportedFormat = errors.New("source: unsupported format")

// Document is a decoded input file.
type Document struct {
	// Path is the absolute path of the file, empty for readers.
	Path string
	// BaseDir is the directory of Path. File fields in the input are
	// resolved against it.
	BaseDir string
	Format  Format
	Data    map[string]any
}

// FormatFor picks the format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".hcl":
		return FormatHCL, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// ParseFormat validates a user-supplied format name.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(name)); f {
	case FormatJSON, FormatTOML, FormatYAML, FormatHCL:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
}

// Load reads and decodes path using the format implied by its extension.
func Load(path string) (*Document, error) {
	f, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	return LoadAs(path, f)
}

// LoadAs reads and decodes path as format f.
func LoadAs(path string, f Format) (*Document, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	m, err := Parse(data, abs, f)
	if err != nil {
		return nil, err
	}
	return &Document{Path: abs, BaseDir: filepath.Dir(abs), Format: f, Data: m}, nil
}

// Decode reads all of r and decodes it as format f.
func Decode(r io.Reader, f Format) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	m, err := Parse(data, "<input>", f)
	if err != nil {
		return nil, err
	}
	return &Document{Format: f, Data: m}, nil
}

// Parse decodes data as format f. filename is only used in diagnostics.
func Parse(data []byte, filename string, f Format) (map[string]any, error) {
	var (
		m   map[string]any
		err error
	)
	switch f {
	case FormatJSON:
		m, err = parseJSON(data)
	case FormatTOML:
		m, err = parseTOML(data)
	case FormatYAML:
		m, err = parseYAML(data)
	case FormatHCL:
		m, err = parseHCL(data, filename)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s %s: %w", f, filename, err)
	}
	if m == nil {
		m = map[string]any{}
	}
	return normalizeMap(m), nil
}
