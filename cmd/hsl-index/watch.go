package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	hslindex "github.com/housing-studio/hsl-index"
	"github.com/housing-studio/hsl-index/internal/watch"
)

var flagDebounce int

var watchCmd = &cobra.Command{
	Use:   "watch [path]",
	Short: "Watch a workspace and keep the index current",
	Long:  "Indexes the workspace, then watches it (and the standard-library directory, if set) for changes, re-indexing changed files until interrupted.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().IntVar(&flagDebounce, "debounce", 500, "quiet period in milliseconds before re-indexing")
}

func runWatch(cmd *cobra.Command, args []string) error {
	targetDir, err := resolveTargetDir(args)
	if err != nil {
		return err
	}

	logger := newLogger()
	stdDir := resolveStdDir(targetDir)
	engine, fileCount, err := buildEngine(context.Background(), targetDir)
	if err != nil {
		return fmt.Errorf("initial index: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Indexed %d files, watching %s\n", fileCount, targetDir)

	handler := func(events []watch.Event) {
		for _, ev := range events {
			logger.Info("change", "type", ev.Type.String(), "path", ev.Path)
			engine.ApplyEvent(ev, stdDir)
		}
	}

	w, err := watch.New(hslindex.SourceSuffix,
		time.Duration(flagDebounce)*time.Millisecond, logger, handler)
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(targetDir); err != nil {
		return fmt.Errorf("watching %s: %w", targetDir, err)
	}
	if stdDir != "" {
		if err := w.Add(stdDir); err != nil {
			return fmt.Errorf("watching standard library: %w", err)
		}
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	fmt.Fprintln(os.Stderr, "Stopping")
	return nil
}
