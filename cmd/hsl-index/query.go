package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query the symbol index",
	Long:  "Run position-based queries against an HSL workspace. All line and column numbers are 0-based; columns are UTF-16 offsets.",
}

func init() {
	queryCmd.AddCommand(hoverCmd)
	queryCmd.AddCommand(definitionCmd)
	queryCmd.AddCommand(completeCmd)
	queryCmd.AddCommand(hintsCmd)
}

var hoverCmd = &cobra.Command{
	Use:   "hover <file> <line> <col>",
	Short: "Documentation and signature of the symbol at a position",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, line, col, err := positionArgs(args)
		if err != nil {
			return err
		}
		engine, _, err := buildEngine(context.Background(), filepath.Dir(file))
		if err != nil {
			return err
		}
		return outputHover(engine.Hover(file, line, col))
	},
}

var definitionCmd = &cobra.Command{
	Use:   "definition <file> <line> <col>",
	Short: "Definition location of the symbol at a position",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, line, col, err := positionArgs(args)
		if err != nil {
			return err
		}
		engine, _, err := buildEngine(context.Background(), filepath.Dir(file))
		if err != nil {
			return err
		}
		return outputLocation(engine.Definition(file, line, col))
	},
}

var completeCmd = &cobra.Command{
	Use:   "complete <file> <line> <col>",
	Short: "Completion candidates at a position",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, line, col, err := positionArgs(args)
		if err != nil {
			return err
		}
		engine, _, err := buildEngine(context.Background(), filepath.Dir(file))
		if err != nil {
			return err
		}
		return outputCompletions(engine.Completions(file, line, col))
	},
}

var hintsCmd = &cobra.Command{
	Use:   "hints <file> <startLine> <endLine>",
	Short: "Inlay parameter hints for a line range",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, lo, hi, err := positionArgs(args)
		if err != nil {
			return err
		}
		engine, _, err := buildEngine(context.Background(), filepath.Dir(file))
		if err != nil {
			return err
		}
		return outputHints(engine.InlayHints(file, lo, hi))
	},
}

// positionArgs parses the common <file> <line> <col> argument triple.
func positionArgs(args []string) (string, int, int, error) {
	file, err := filepath.Abs(args[0])
	if err != nil {
		return "", 0, 0, fmt.Errorf("resolving file path %q: %w", args[0], err)
	}
	line, err := strconv.Atoi(args[1])
	if err != nil {
		return "", 0, 0, fmt.Errorf("invalid line %q", args[1])
	}
	col, err := strconv.Atoi(args[2])
	if err != nil {
		return "", 0, 0, fmt.Errorf("invalid column %q", args[2])
	}
	return file, line, col, nil
}
