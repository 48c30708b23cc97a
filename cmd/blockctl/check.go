package main

import (
	"io"
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newCheckCmd())
}

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <schema.hcl>",
		Short: "Validate a schema file",
		Long: `The check command parses a schema file, validates every block and lists
them with their static size when every field has one.

Example:
  blockctl check level.hcl
  blockctl check level.hcl --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.OutOrStdout(), args)
		},
	}
	return cmd
}

type blockInfo struct {
	Name       string `json:"name"`
	Fields     int    `json:"fields"`
	StaticSize *int   `json:"static_size,omitempty"`
	Root       bool   `json:"root,omitempty"`
}

func runCheck(stdout io.Writer, args []string) error {
	f, _, err := loadSchema(args[0])
	if err != nil {
		return err
	}

	infos := make([]blockInfo, 0, len(f.Names()))
	for _, name := range f.Names() {
		s, _ := f.Schema(name)
		info := blockInfo{Name: name, Fields: s.Len(), Root: name == f.Root}
		if n, ok := s.StaticSize(); ok {
			info.StaticSize = &n
		}
		infos = append(infos, info)
	}

	if jsonOut {
		return printJSON(stdout, infos)
	}
	for _, info := range infos {
		size := "variable size"
		if info.StaticSize != nil {
			size = formatSize(*info.StaticSize)
		}
		marker := ""
		if info.Root {
			marker = " (root)"
		}
		printInfo(stdout, "%s%s: %d fields, %s\n", info.Name, marker, info.Fields, size)
	}
	printInfo(stdout, "OK\n")
	return nil
}

func formatSize(n int) string {
	if n == 1 {
		return "1 byte"
	}
	return strconv.Itoa(n) + " bytes"
}
