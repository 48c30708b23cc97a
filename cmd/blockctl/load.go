package main

import (
	"fmt"
	"io"

	"github.com/joshuapare/blockkit/block"
	"github.com/joshuapare/blockkit/pkg/schemafile"
	"github.com/joshuapare/blockkit/pkg/source"
)

var (
	rootName    string
	inputFormat string
)

// loadSchema parses the schema file and picks the schema to build: the one
// named by --root, else the file's root.
func loadSchema(path string) (*schemafile.File, *block.Schema, error) {
	f, err := schemafile.Load(path)
	if err != nil {
		return nil, nil, err
	}
	if rootName != "" {
		s, ok := f.Schema(rootName)
		if !ok {
			return nil, nil, fmt.Errorf("block %q is not declared in %s", rootName, path)
		}
		return f, s, nil
	}
	s, err := f.RootSchema()
	if err != nil {
		return nil, nil, err
	}
	return f, s, nil
}

// loadInput decodes the input file, honouring --format.
func loadInput(path string) (*source.Document, error) {
	if inputFormat == "" {
		return source.Load(path)
	}
	f, err := source.ParseFormat(inputFormat)
	if err != nil {
		return nil, err
	}
	return source.LoadAs(path, f)
}

// buildBlock resolves every field of the schema against the input and
// returns the root block together with its bytes.
func buildBlock(stderr io.Writer, schemaPath, inputPath string) (*block.Block, []byte, error) {
	printVerbose(stderr, "Loading schema: %s\n", schemaPath)
	_, s, err := loadSchema(schemaPath)
	if err != nil {
		return nil, nil, err
	}

	printVerbose(stderr, "Loading input: %s\n", inputPath)
	doc, err := loadInput(inputPath)
	if err != nil {
		return nil, nil, err
	}

	b := block.New(s, doc.Data, &block.Options{
		Logger:  newLogger(stderr),
		BaseDir: doc.BaseDir,
	})
	out, err := b.Build()
	if err != nil {
		return nil, nil, err
	}
	return b, out, nil
}
