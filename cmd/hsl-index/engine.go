package main

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	hslindex "github.com/housing-studio/hsl-index"
	"github.com/housing-studio/hsl-index/internal/project"
	"github.com/housing-studio/hsl-index/internal/slogutil"
)

// newLogger builds the CLI logger from --log-level, writing to stderr.
func newLogger() *slog.Logger {
	return slogutil.NewLogger(os.Stderr, slogutil.LevelFromString(flagLogLevel))
}

// collectSources walks root and returns every HSL source file, skipping
// hidden directories.
func collectSources(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(path, hslindex.SourceSuffix) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return paths, nil
}

// resolveStdDir returns the standard-library directory for a workspace:
// --std when set, otherwise the std entry of the project manifest found by
// walking up from dir, resolved against the project root. Empty when neither
// names one.
func resolveStdDir(dir string) string {
	if flagStd != "" {
		return flagStd
	}
	root, ok := project.FindRoot(dir)
	if !ok {
		return ""
	}
	m, err := project.Load(filepath.Join(root, project.ManifestFile))
	if err != nil || m.Std == "" {
		return ""
	}
	if filepath.IsAbs(m.Std) {
		return m.Std
	}
	return filepath.Join(root, m.Std)
}

// buildEngine indexes the workspace rooted at dir, loading the standard
// library first when one is configured.
func buildEngine(ctx context.Context, dir string) (*hslindex.Engine, int, error) {
	engine := hslindex.New(hslindex.WithLogger(newLogger()))

	if std := resolveStdDir(dir); std != "" {
		if err := engine.LoadStandardLibrary(std); err != nil {
			return nil, 0, fmt.Errorf("loading standard library: %w", err)
		}
	}

	paths, err := collectSources(dir)
	if err != nil {
		return nil, 0, err
	}
	if err := engine.ReindexWorkspace(ctx, paths); err != nil {
		return nil, 0, err
	}
	return engine, len(paths), nil
}

// resolveTargetDir returns the absolute path of the directory to index.
func resolveTargetDir(args []string) (string, error) {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving path %q: %w", dir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("directory not found: %s", abs)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("not a directory: %s", abs)
	}
	return abs, nil
}
