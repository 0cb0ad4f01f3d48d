package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/housing-studio/hsl-index/internal/project"
)

func TestResolveStdDir(t *testing.T) {
	t.Cleanup(func() { flagStd = "" })

	root := t.TempDir()
	require.NoError(t, project.Save(filepath.Join(root, project.ManifestFile),
		&project.Manifest{Name: "p", Std: "lib"}))
	nested := filepath.Join(root, "src")
	require.NoError(t, os.Mkdir(nested, 0o755))

	// The manifest's relative std entry resolves against the project root,
	// from the root itself and from nested directories.
	flagStd = ""
	assert.Equal(t, filepath.Join(root, "lib"), resolveStdDir(root))
	assert.Equal(t, filepath.Join(root, "lib"), resolveStdDir(nested))

	// --std wins over the manifest.
	flagStd = "/opt/hsl/std"
	assert.Equal(t, "/opt/hsl/std", resolveStdDir(root))
}

func TestResolveStdDir_AbsoluteManifestEntry(t *testing.T) {
	t.Cleanup(func() { flagStd = "" })
	flagStd = ""

	root := t.TempDir()
	std := filepath.Join(t.TempDir(), "std")
	require.NoError(t, project.Save(filepath.Join(root, project.ManifestFile),
		&project.Manifest{Name: "p", Std: std}))

	assert.Equal(t, std, resolveStdDir(root))
}

func TestResolveStdDir_NoProject(t *testing.T) {
	t.Cleanup(func() { flagStd = "" })
	flagStd = ""
	assert.Empty(t, resolveStdDir(t.TempDir()))
}

func TestResolveStdDir_ManifestWithoutStd(t *testing.T) {
	t.Cleanup(func() { flagStd = "" })
	flagStd = ""

	root := t.TempDir()
	require.NoError(t, project.Save(filepath.Join(root, project.ManifestFile),
		&project.Manifest{Name: "p"}))
	assert.Empty(t, resolveStdDir(root))
}
