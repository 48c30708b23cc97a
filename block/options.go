package block

import (
	"io"
	"log/slog"

	"github.com/joshuapare/blockkit/internal/format"
	"github.com/joshuapare/blockkit/internal/mmfile"
)

// Options configures a build.
type Options struct {
	// Logger receives Debug records for every resolved field, producer call
	// and file read.
	// Default: a logger that discards everything
	Logger *slog.Logger

	// BaseDir is joined with relative paths given to File fields. Loaders in
	// pkg/source set it to the directory of the input file.
	// Default: "" (relative to the working directory)
	BaseDir string

	// ReadFile materializes the contents of File fields.
	// Default: a memory-mapped read of the file
	ReadFile func(path string) ([]byte, error)

	// MaxDepth limits how deep containers may nest.
	// Default: 64
	MaxDepth int
}

// DefaultOptions returns the options used when nil is passed to New or Build.
func DefaultOptions() *Options {
	return &Options{
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		ReadFile: mmfile.ReadFile,
		MaxDepth: format.DefaultMaxDepth,
	}
}

// withDefaults returns a copy of opts with every unset field filled in.
func (o *Options) withDefaults() *Options {
	def := DefaultOptions()
	if o == nil {
		return def
	}
	out := *o
	if out.Logger == nil {
		out.Logger = def.Logger
	}
	if out.ReadFile == nil {
		out.ReadFile = def.ReadFile
	}
	if out.MaxDepth <= 0 {
		out.MaxDepth = def.MaxDepth
	}
	return &out
}
