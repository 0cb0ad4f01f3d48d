package diagnostics

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/housing-studio/hsl-index/internal/project"
	"github.com/housing-studio/hsl-index/internal/slogutil"
)

// fakeCompiler writes an executable script standing in for the JVM launcher
// and returns its path alongside a dummy artifact.
func fakeCompiler(t *testing.T, script string) (runtimePath, artifact string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake compiler scripts need a POSIX shell")
	}
	dir := t.TempDir()
	runtimePath = filepath.Join(dir, "fake-java")
	require.NoError(t, os.WriteFile(runtimePath, []byte("#!/bin/sh\n"+script), 0o755))
	artifact = filepath.Join(dir, "compiler.jar")
	require.NoError(t, os.WriteFile(artifact, []byte("jar"), 0o644))
	return runtimePath, artifact
}

func projectFile(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, project.Save(filepath.Join(root, project.ManifestFile), &project.Manifest{Name: "p"}))
	path := filepath.Join(root, "game.hsl")
	require.NoError(t, os.WriteFile(path, []byte("fn A() { }"), 0o644))
	return path
}

func TestRunner_DecodesDiagnostics(t *testing.T) {
	rt, jar := fakeCompiler(t, `echo '[{"type":"WARNING","code":7,"title":"w"}]'`)
	r := &Runner{Runtime: rt, Artifact: jar, Logger: slogutil.NewDiscardLogger()}

	diags := r.Run(context.Background(), projectFile(t))
	require.Len(t, diags, 1)
	assert.Equal(t, SeverityWarning, diags[0].Severity)
	assert.Equal(t, "7", diags[0].Code)
}

func TestRunner_CleanReportMeansNoDiagnostics(t *testing.T) {
	rt, jar := fakeCompiler(t, `echo '[]'`)
	r := &Runner{Runtime: rt, Artifact: jar, Logger: slogutil.NewDiscardLogger()}
	assert.Empty(t, r.Run(context.Background(), projectFile(t)))
}

func TestRunner_DegradesOnMissingArtifact(t *testing.T) {
	r := &Runner{Runtime: "java", Artifact: "", Logger: slogutil.NewDiscardLogger()}
	assert.Nil(t, r.Run(context.Background(), projectFile(t)))

	r.Artifact = filepath.Join(t.TempDir(), "missing.jar")
	assert.Nil(t, r.Run(context.Background(), projectFile(t)))
}

func TestRunner_DegradesOnCompilerFailure(t *testing.T) {
	rt, jar := fakeCompiler(t, `echo boom >&2; exit 3`)
	r := &Runner{Runtime: rt, Artifact: jar, Logger: slogutil.NewDiscardLogger()}
	assert.Nil(t, r.Run(context.Background(), projectFile(t)))
}

func TestRunner_DegradesOnGarbageOutput(t *testing.T) {
	rt, jar := fakeCompiler(t, `echo 'not json'`)
	r := &Runner{Runtime: rt, Artifact: jar, Logger: slogutil.NewDiscardLogger()}
	assert.Nil(t, r.Run(context.Background(), projectFile(t)))
}

func TestRunner_DegradesOnTimeout(t *testing.T) {
	rt, jar := fakeCompiler(t, `sleep 5`)
	r := &Runner{
		Runtime:  rt,
		Artifact: jar,
		Timeout:  100 * time.Millisecond,
		Logger:   slogutil.NewDiscardLogger(),
	}

	start := time.Now()
	assert.Nil(t, r.Run(context.Background(), projectFile(t)))
	assert.Less(t, time.Since(start), 3*time.Second)
}

func TestRunner_ScratchProjectForLooseFile(t *testing.T) {
	// The loose file has no manifest anywhere above it; the runner builds a
	// scratch project and still reports cleanly.
	rt, jar := fakeCompiler(t, `echo '[]'`)
	r := &Runner{Runtime: rt, Artifact: jar, Logger: slogutil.NewDiscardLogger()}

	loose := filepath.Join(t.TempDir(), "loose.hsl")
	require.NoError(t, os.WriteFile(loose, []byte("fn A() { }"), 0o644))
	assert.Empty(t, r.Run(context.Background(), loose))
}
