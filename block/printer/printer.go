// Package printer renders the tree of a built block as indented text or as
// JSON.
package printer

import (
	"fmt"
	"io"

	"github.com/joshuapare/blockkit/pkg/types"
)

const (
	DefaultIndentSize    = 4
	DefaultMaxDepth      = 0
	DefaultMaxValueBytes = 16
)

// Format specifies the output format for printing.
type Format string

const (
	// FormatText outputs one line per value: absolute offset, relative
	// offset, name and type.
	FormatText Format = "text"

	// FormatJSON outputs the tree as a JSON document.
	FormatJSON Format = "json"
)

// Options controls printing behavior.
type Options struct {
	// Format specifies output format (text, json).
	// Default: FormatText
	Format Format

	// IndentSize is the number of spaces per nesting level (text format only).
	// Default: 4
	IndentSize int

	// MaxDepth limits how many nesting levels are printed (0 = unlimited).
	// Default: 0 (unlimited)
	MaxDepth int

	// ShowValues appends the encoded value of leaves.
	// Default: false
	ShowValues bool

	// MaxValueBytes limits how many bytes of a leaf are shown.
	// Longer values are truncated. Set to 0 for no limit.
	// Default: 16
	MaxValueBytes int

	// CollapseArrays prints arrays of integers as a single "..." line
	// instead of one line per element (text format only).
	// Default: true
	CollapseArrays bool

	// ShowEmpty includes zero-sized values (Empty fields, zero padding,
	// empty arrays).
	// Default: false
	ShowEmpty bool
}

// DefaultOptions returns sensible defaults for printing.
func DefaultOptions() Options {
	return Options{
		Format:         FormatText,
		IndentSize:     DefaultIndentSize,
		MaxDepth:       DefaultMaxDepth,
		ShowValues:     false,
		MaxValueBytes:  DefaultMaxValueBytes,
		CollapseArrays: true,
		ShowEmpty:      false,
	}
}

// Printer writes block trees to an io.Writer.
type Printer struct {
	opts   Options
	writer io.Writer
}

// New creates a new Printer.
//
// Example:
//
//	root, _ := b.Tree()
//	p := printer.New(os.Stdout, printer.DefaultOptions())
//	p.Print(root)
func New(w io.Writer, opts Options) *Printer {
	return &Printer{
		writer: w,
		opts:   opts,
	}
}

// Print writes the fields of root and everything below them.
func (p *Printer) Print(root types.Node) error {
	switch p.opts.Format {
	case FormatJSON:
		return p.printJSON(root)
	case FormatText, "":
		return p.printText(root.Children, 0)
	default:
		return fmt.Errorf("unknown format %q", p.opts.Format)
	}
}

func (p *Printer) skip(n types.Node) bool {
	return n.Size == 0 && !p.opts.ShowEmpty
}

func (p *Printer) truncate(data []byte) ([]byte, bool) {
	if p.opts.MaxValueBytes <= 0 || len(data) <= p.opts.MaxValueBytes {
		return data, false
	}
	return data[:p.opts.MaxValueBytes], true
}
