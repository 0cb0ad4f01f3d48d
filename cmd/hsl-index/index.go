package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/housing-studio/hsl-index/internal/store"
)

var flagDB string

var indexCmd = &cobra.Command{
	Use:   "index [path]",
	Short: "Index an HSL workspace",
	Long:  "Scans every .hsl file under the given directory, builds the symbol index, and prints a summary. With --db, also writes a SQLite snapshot of the symbols.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runIndex,
}

func init() {
	indexCmd.Flags().StringVar(&flagDB, "db", "", "write a SQLite symbol snapshot to this path")
}

func runIndex(cmd *cobra.Command, args []string) error {
	start := time.Now()

	targetDir, err := resolveTargetDir(args)
	if err != nil {
		return err
	}

	engine, fileCount, err := buildEngine(context.Background(), targetDir)
	if err != nil {
		return fmt.Errorf("indexing: %w", err)
	}

	byFile := engine.Declarations()
	symbolCount := 0
	for _, decls := range byFile {
		symbolCount += len(decls)
	}

	if flagDB != "" {
		s, err := store.NewStore(flagDB)
		if err != nil {
			return fmt.Errorf("opening snapshot database: %w", err)
		}
		defer s.Close()
		if err := s.Migrate(); err != nil {
			return fmt.Errorf("migrating snapshot database: %w", err)
		}
		if err := s.WriteSnapshot(byFile); err != nil {
			return fmt.Errorf("writing snapshot: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Snapshot: %s\n", flagDB)
	}

	fmt.Fprintf(os.Stderr, "Indexed %d files, %d symbols in %s\n",
		fileCount, symbolCount, time.Since(start).Round(time.Millisecond))
	return outputSummary(fileCount, symbolCount, byFile)
}
