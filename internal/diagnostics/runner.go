package diagnostics

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"time"

	"github.com/housing-studio/hsl-index/internal/project"
)

// DefaultTimeout bounds a compiler invocation; past it the subprocess is
// killed and treated as producing zero diagnostics.
const DefaultTimeout = 10 * time.Second

// Runner invokes the compiler artifact for diagnostics.
type Runner struct {
	// Runtime is the JVM launcher binary. Defaults to "java".
	Runtime string
	// Artifact is the path to the compiler jar.
	Artifact string
	// Timeout bounds each invocation. Defaults to DefaultTimeout.
	Timeout time.Duration

	Logger *slog.Logger
}

// Run checks the project containing sourcePath and returns its diagnostics.
// The compiler runs from the project root, found by walking upward to the
// manifest; a file outside any project is checked in a scratch project.
// Every failure (missing compiler, spawn error, timeout, non-JSON output)
// is logged and degrades to zero diagnostics.
func (r *Runner) Run(ctx context.Context, sourcePath string) []Diagnostic {
	diags, err := r.run(ctx, sourcePath)
	if err != nil {
		r.logger().Warn("compiler diagnostics unavailable", "path", sourcePath, "error", err)
		return nil
	}
	return diags
}

func (r *Runner) run(ctx context.Context, sourcePath string) ([]Diagnostic, error) {
	if r.Artifact == "" {
		return nil, fmt.Errorf("no compiler artifact configured")
	}
	if _, err := os.Stat(r.Artifact); err != nil {
		return nil, fmt.Errorf("compiler artifact: %w", err)
	}

	root, ok := project.FindRoot(sourcePath)
	if !ok {
		scratch, err := project.Scratch(sourcePath)
		if err != nil {
			return nil, fmt.Errorf("scratch project: %w", err)
		}
		defer os.RemoveAll(scratch)
		root = scratch
	}

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	runtime := r.Runtime
	if runtime == "" {
		runtime = "java"
	}

	cmd := exec.CommandContext(ctx, runtime, "-jar", r.Artifact, "diagnostics")
	cmd.Dir = root
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("compiler timed out after %s", timeout)
		}
		return nil, fmt.Errorf("compiler run: %w (stderr: %s)", err, stderr.String())
	}

	diags, err := decodeReport(stdout.Bytes())
	if err != nil {
		return nil, err
	}
	return diags, nil
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}
