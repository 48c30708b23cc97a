package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/joshuapare/blockkit/block/printer"
)

var (
	treeDepth  int
	treeValues bool
	treeExpand bool
	treeEmpty  bool
)

func init() {
	cmd := newTreeCmd()
	cmd.Flags().IntVar(&treeDepth, "depth", 0, "Maximum depth (0 = unlimited)")
	cmd.Flags().BoolVar(&treeValues, "values", false, "Show encoded values")
	cmd.Flags().BoolVar(&treeExpand, "expand", false, "Print every array element instead of collapsing integer arrays")
	cmd.Flags().BoolVar(&treeEmpty, "empty", false, "Show zero-sized fields")
	cmd.Flags().StringVar(&rootName, "root", "", "Block to build (default: the schema file's root)")
	cmd.Flags().StringVar(&inputFormat, "format", "", "Input format: json, toml, yaml, hcl (default: from extension)")
	rootCmd.AddCommand(cmd)
}

func newTreeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree <schema.hcl> <input>",
		Short: "Display the layout of a build",
		Long: `The tree command builds the input in memory and prints one line per field:
absolute offset, offset within its container, name and type.

Example:
  blockctl tree level.hcl level1.toml
  blockctl tree level.hcl level1.toml --values --depth 2
  blockctl tree level.hcl level1.toml --json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTree(cmd.OutOrStdout(), cmd.ErrOrStderr(), args)
		},
	}
	return cmd
}

func runTree(stdout, stderr io.Writer, args []string) error {
	b, _, err := buildBlock(stderr, args[0], args[1])
	if err != nil {
		return err
	}
	root, err := b.Tree()
	if err != nil {
		return err
	}

	opts := printer.DefaultOptions()
	opts.MaxDepth = treeDepth
	opts.ShowValues = treeValues
	opts.CollapseArrays = !treeExpand
	opts.ShowEmpty = treeEmpty
	if jsonOut {
		opts.Format = printer.FormatJSON
	}
	return printer.New(stdout, opts).Print(root)
}
