package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/blockkit/block/printer"
	"github.com/joshuapare/blockkit/internal/writer"
)

var (
	buildOutput   string
	buildTree     bool
	buildFullSync bool
)

func init() {
	cmd := newBuildCmd()
	cmd.Flags().StringVarP(&buildOutput, "output", "o", "", "Output file (default: input name with .bin extension)")
	cmd.Flags().StringVar(&rootName, "root", "", "Block to build (default: the schema file's root)")
	cmd.Flags().StringVar(&inputFormat, "format", "", "Input format: json, toml, yaml, hcl (default: from extension)")
	cmd.Flags().BoolVar(&buildTree, "tree", false, "Print the layout after building")
	cmd.Flags().BoolVar(&buildFullSync, "full-sync", false, "Use F_FULLFSYNC on macOS when writing")
	rootCmd.AddCommand(cmd)
}

func newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build <schema.hcl> <input>",
		Short: "Build a binary file",
		Long: `The build command resolves every field of the root block against the input
and writes the result. Nothing is written when any field fails.

Example:
  blockctl build level.hcl level1.toml -o level1.bin
  blockctl build level.hcl level1.json --root LevelHeader --tree`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd.OutOrStdout(), cmd.ErrOrStderr(), args)
		},
	}
	return cmd
}

func runBuild(stdout, stderr io.Writer, args []string) error {
	schemaPath, inputPath := args[0], args[1]

	b, out, err := buildBlock(stderr, schemaPath, inputPath)
	if err != nil {
		return err
	}

	outPath := buildOutput
	if outPath == "" {
		outPath = strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".bin"
	}
	w := &writer.FileWriter{Path: outPath, FullSync: buildFullSync}
	if err := w.WriteBlock(out); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}

	if jsonOut {
		return printJSON(stdout, map[string]any{
			"output": outPath,
			"size":   len(out),
			"root":   b.Schema().Name(),
		})
	}
	printInfo(stdout, "Wrote %d bytes to %s\n", len(out), outPath)

	if buildTree && !quiet {
		root, err := b.Tree()
		if err != nil {
			return err
		}
		return printer.New(stdout, printer.DefaultOptions()).Print(root)
	}
	return nil
}
