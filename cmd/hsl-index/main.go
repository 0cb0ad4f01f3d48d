package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagFormat   string
	flagLogLevel string
	flagStd      string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "hsl-index",
	Short:         "Symbol indexing and cross-reference queries for HSL workspaces",
	Long:          "hsl-index scans HSL source files with line-oriented lexical analysis, builds an in-memory symbol index, and answers hover, definition, completion and inlay-hint queries against it.",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return validateFormat(flagFormat)
	},
	// No Run; prints help by default.
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "json", "output format: json|text")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "log level: debug|info|warn|error")
	rootCmd.PersistentFlags().StringVar(&flagStd, "std", "", "standard-library directory")

	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(diagnosticsCmd)
	rootCmd.AddCommand(watchCmd)
}

func validateFormat(format string) error {
	switch format {
	case "json", "text":
		return nil
	default:
		return fmt.Errorf("invalid format %q (want json or text)", format)
	}
}
