package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
	quiet   bool
	jsonOut bool
	noColor bool
)

var rootCmd = &cobra.Command{
	Use:   "blockctl",
	Short: "Build binary files from declarative block schemas",
	Long: `blockctl builds binary files from HCL schema files and structured input
(JSON, TOML, YAML or HCL). Fields are resolved on demand, so sizes and
offsets of later fields can be written into earlier ones.`,
	Version:       "0.1.0",
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, renderError(err))
		os.Exit(1)
	}
}

// newLogger returns the logger handed to builds. Resolution details are
// logged at Debug level and only shown with --verbose.
func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if verbose && !quiet {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// printInfo prints an info message if not in quiet mode
func printInfo(w io.Writer, format string, args ...any) {
	if !quiet {
		fmt.Fprintf(w, format, args...)
	}
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(w io.Writer, format string, args ...any) {
	if verbose && !quiet {
		fmt.Fprintf(w, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
