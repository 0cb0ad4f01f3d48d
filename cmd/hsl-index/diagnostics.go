package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/housing-studio/hsl-index/internal/diagnostics"
)

var (
	flagRuntime string
	flagJar     string
	flagTimeout int
)

var diagnosticsCmd = &cobra.Command{
	Use:   "diagnostics <file>",
	Short: "Run the HSL compiler for diagnostics",
	Long:  "Invokes the compiler jar from the file's project root (found via the manifest, or a scratch project) and prints its diagnostics. Failures degrade to an empty report.",
	Args:  cobra.ExactArgs(1),
	RunE:  runDiagnostics,
}

func init() {
	diagnosticsCmd.Flags().StringVar(&flagRuntime, "runtime", "java", "JVM launcher binary")
	diagnosticsCmd.Flags().StringVar(&flagJar, "jar", "", "path to the compiler jar")
	diagnosticsCmd.Flags().IntVar(&flagTimeout, "timeout", 10, "compiler timeout in seconds")
}

func runDiagnostics(cmd *cobra.Command, args []string) error {
	file, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolving file path %q: %w", args[0], err)
	}

	runner := &diagnostics.Runner{
		Runtime:  flagRuntime,
		Artifact: flagJar,
		Timeout:  time.Duration(flagTimeout) * time.Second,
		Logger:   newLogger(),
	}
	diags := runner.Run(context.Background(), file)

	if flagFormat == "json" {
		return outputJSON(diags)
	}
	for _, d := range diags {
		for _, r := range d.Ranges {
			fmt.Printf("%s %s:%d:%d-%d %s\n", d.Severity, file, r.Line, r.StartChar, r.EndChar, d.Title)
		}
		if len(d.Ranges) == 0 {
			fmt.Printf("%s %s\n", d.Severity, d.Title)
		}
	}
	return nil
}
