// Package project locates and describes HSL projects. A project root is any
// directory containing the manifest file; files outside a project are
// checked inside a throwaway scratch project instead.
package project

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ManifestFile is the fixed manifest filename marking a project root.
const ManifestFile = "hsl.yaml"

// Manifest is the parsed project manifest.
type Manifest struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	// Std optionally points at a standard-library directory override.
	Std string `yaml:"std,omitempty"`
}

// Load reads and parses a manifest file.
func Load(path string) (*Manifest, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(content, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	return &m, nil
}

// Save writes a manifest file.
func Save(path string, m *Manifest) error {
	content, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// FindRoot walks upward from start (a file or directory) until a directory
// containing the manifest file is found.
func FindRoot(start string) (string, bool) {
	dir := start
	if info, err := os.Stat(start); err != nil || !info.IsDir() {
		dir = filepath.Dir(start)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, ManifestFile)); err == nil {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// Scratch materializes a temporary single-file project for a source file
// that lives outside any project: a fresh directory holding a minimal
// manifest and a copy of the file. The caller removes the directory when
// done.
func Scratch(sourcePath string) (string, error) {
	dir, err := os.MkdirTemp("", "hsl-scratch-*")
	if err != nil {
		return "", fmt.Errorf("create scratch dir: %w", err)
	}
	m := &Manifest{Name: "scratch", Version: "0.0.0"}
	if err := Save(filepath.Join(dir, ManifestFile), m); err != nil {
		os.RemoveAll(dir)
		return "", err
	}
	content, err := os.ReadFile(sourcePath)
	if err != nil {
		os.RemoveAll(dir)
		return "", fmt.Errorf("read source: %w", err)
	}
	dst := filepath.Join(dir, filepath.Base(sourcePath))
	if err := os.WriteFile(dst, content, 0o644); err != nil {
		os.RemoveAll(dir)
		return "", fmt.Errorf("copy source: %w", err)
	}
	return dir, nil
}
