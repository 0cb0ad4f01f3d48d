package hslindex

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/housing-studio/hsl-index/internal/scan"
	"github.com/housing-studio/hsl-index/internal/slogutil"
	"github.com/housing-studio/hsl-index/internal/symbol"
	"github.com/housing-studio/hsl-index/internal/watch"
)

// Well-known standard-library catalog file names.
const (
	ActionsFile    = "actions.hsl"
	ConditionsFile = "conditions.hsl"
)

// SourceSuffix is the file extension of HSL source files.
const SourceSuffix = ".hsl"

// Engine owns the workspace symbol index, the type index, and the
// standard-library catalogs, and answers position-based queries against
// them. All mutation runs behind a single mutex; queries take a read lock.
type Engine struct {
	mu      sync.RWMutex
	index   *symbol.Index
	types   *symbol.TypeIndex
	catalog *symbol.Catalog

	// sources holds the line split of every indexed buffer; queries need the
	// raw line text for token resolution and scope disambiguation.
	sources map[string][]string

	// stdFiles holds standard-library file contents so the type index can be
	// rebuilt from scratch after a workspace file removal.
	stdFiles map[string]string

	logger   *slog.Logger
	parallel bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the Engine's logger. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithParallel controls concurrent file reads during ReindexWorkspace.
// Index mutation is always serialized regardless.
func WithParallel(parallel bool) Option {
	return func(e *Engine) { e.parallel = parallel }
}

// New creates an empty Engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		index:    symbol.NewIndex(),
		types:    symbol.NewTypeIndex(),
		catalog:  symbol.NewCatalog(),
		sources:  make(map[string][]string),
		stdFiles: make(map[string]string),
		logger:   slogutil.NewDiscardLogger(),
		parallel: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// IndexFile parses text and replaces every symbol path previously
// contributed. Insertion fully completes before the call returns.
func (e *Engine) IndexFile(path, text string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.indexFileLocked(path, text)
}

func (e *Engine) indexFileLocked(path, text string) {
	e.index.IndexFile(path, text)
	e.sources[path] = scan.Lines(text)
	// A merge of the new text alone would leave types the edit deleted, so
	// the type index is recomputed like on removal.
	e.rebuildTypesLocked()
}

// RemoveFile retracts everything path contributed. No-op for unknown paths.
func (e *Engine) RemoveFile(path string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.sources[path]; !ok && e.index.File(path) == nil {
		return
	}
	e.index.RemoveFile(path)
	delete(e.sources, path)
	e.rebuildTypesLocked()
}

// ReindexWorkspace clears the index and indexes every given file from
// scratch. File reads may run concurrently; unreadable files are logged and
// contribute no symbols. Commit order follows read completion, so running
// two reindexes concurrently leaves each file reflecting whichever run's
// insert happened last, never a mix within one file.
func (e *Engine) ReindexWorkspace(ctx context.Context, paths []string) error {
	texts := make([]string, len(paths))
	ok := make([]bool, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	if e.parallel {
		g.SetLimit(runtime.NumCPU())
	} else {
		g.SetLimit(1)
	}
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			content, err := os.ReadFile(path)
			if err != nil {
				e.logger.Warn("read file", "path", path, "error", err)
				return nil // no symbols contributed
			}
			texts[i], ok[i] = string(content), true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("reindex workspace: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.index = symbol.NewIndex()
	e.sources = make(map[string][]string)
	for i, path := range paths {
		if ok[i] {
			e.index.IndexFile(path, texts[i])
			e.sources[path] = scan.Lines(texts[i])
		}
	}
	e.rebuildTypesLocked()
	return nil
}

// LoadStandardLibrary rebuilds the action/condition catalogs from the
// well-known catalog files under dir (when present) and rescans the whole
// directory tree for enum and struct declarations. Rebuilds are wholesale;
// the tables are small and change at file-save granularity.
func (e *Engine) LoadStandardLibrary(dir string) error {
	files := make(map[string]string)
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, SourceSuffix) {
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			e.logger.Warn("read std file", "path", path, "error", err)
			return nil
		}
		files[path] = string(content)
		return nil
	})
	if err != nil {
		return fmt.Errorf("load standard library: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.stdFiles = files
	e.catalog = symbol.NewCatalog()
	for path, text := range files {
		switch filepath.Base(path) {
		case ActionsFile:
			e.catalog.LoadActions(path, text)
		case ConditionsFile:
			e.catalog.LoadConditions(path, text)
		}
	}
	e.rebuildTypesLocked()
	return nil
}

// rebuildTypesLocked recomputes the type index from the standard library
// plus every indexed workspace buffer. Callers hold e.mu.
func (e *Engine) rebuildTypesLocked() {
	all := make(map[string]string, len(e.stdFiles)+len(e.sources))
	for path, text := range e.stdFiles {
		all[path] = text
	}
	for path, lines := range e.sources {
		all[path] = strings.Join(lines, "\n")
	}
	e.types.Scan(all)
}

// ApplyEvent dispatches a normalized file-watch event to the matching
// mutation entry point. Standard-library paths trigger a catalog reload
// instead when stdDir is non-empty and contains the path.
func (e *Engine) ApplyEvent(ev watch.Event, stdDir string) {
	if stdDir != "" && within(stdDir, ev.Path) {
		if err := e.LoadStandardLibrary(stdDir); err != nil {
			e.logger.Warn("reload standard library", "error", err)
		}
		return
	}
	switch ev.Type {
	case watch.Created, watch.Modified:
		content, err := os.ReadFile(ev.Path)
		if err != nil {
			// Vanished between the watch event and the read.
			e.logger.Warn("read changed file", "path", ev.Path, "error", err)
			return
		}
		e.IndexFile(ev.Path, string(content))
	case watch.Deleted:
		e.RemoveFile(ev.Path)
	}
}

// FileSet returns the declarations path contributed, or nil.
func (e *Engine) FileSet(path string) *FileSet {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.index.File(path)
}

// Declarations returns every workspace declaration grouped by file,
// including enum/struct types. Used by snapshot export.
func (e *Engine) Declarations() map[string][]*Declaration {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make(map[string][]*Declaration)
	for _, path := range e.index.Files() {
		out[path] = e.index.File(path).All()
	}
	for _, d := range e.types.Types() {
		out[d.File] = append(out[d.File], d)
	}
	return out
}

// line returns the raw text of one indexed line, or false when the path is
// unknown or the line is out of range.
func (e *Engine) line(path string, line int) (string, bool) {
	lines, ok := e.sources[path]
	if !ok || line < 0 || line >= len(lines) {
		return "", false
	}
	return lines[line], true
}

// within reports whether path sits under dir.
func within(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
