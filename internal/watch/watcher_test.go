package watch

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/housing-studio/hsl-index/internal/slogutil"
)

// collector gathers delivered batches behind a lock.
type collector struct {
	mu     sync.Mutex
	events []Event
}

func (c *collector) handle(batch []Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, batch...)
}

func (c *collector) snapshot() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Event(nil), c.events...)
}

func (c *collector) find(path string) (Event, bool) {
	for _, ev := range c.snapshot() {
		if ev.Path == path {
			return ev, true
		}
	}
	return Event{}, false
}

func newTestWatcher(t *testing.T, dir string) (*Watcher, *collector) {
	t.Helper()
	c := &collector{}
	w, err := New(".hsl", 20*time.Millisecond, slogutil.NewDiscardLogger(), c.handle)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })
	require.NoError(t, w.Add(dir))
	return w, c
}

func TestWatcher_CreateModifyDelete(t *testing.T) {
	dir := t.TempDir()
	_, c := newTestWatcher(t, dir)

	path := filepath.Join(dir, "game.hsl")
	require.NoError(t, os.WriteFile(path, []byte("fn A() { }"), 0o644))

	require.Eventually(t, func() bool {
		_, ok := c.find(path)
		return ok
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, os.Remove(path))
	require.Eventually(t, func() bool {
		ev, ok := c.find(path)
		return ok && ev.Type == Deleted
	}, 2*time.Second, 10*time.Millisecond)
}

func TestWatcher_SuffixFilter(t *testing.T) {
	dir := t.TempDir()
	_, c := newTestWatcher(t, dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	path := filepath.Join(dir, "real.hsl")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	require.Eventually(t, func() bool {
		_, ok := c.find(path)
		return ok
	}, 2*time.Second, 10*time.Millisecond)

	for _, ev := range c.snapshot() {
		assert.NotEqual(t, filepath.Join(dir, "notes.txt"), ev.Path)
	}
}

func TestWatcher_NewSubdirectoryIsWatched(t *testing.T) {
	dir := t.TempDir()
	_, c := newTestWatcher(t, dir)

	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))
	// Give the watcher a moment to register the new directory.
	time.Sleep(100 * time.Millisecond)

	path := filepath.Join(sub, "nested.hsl")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	require.Eventually(t, func() bool {
		_, ok := c.find(path)
		return ok
	}, 2*time.Second, 10*time.Millisecond)
}

func TestWatcher_FlushCoalescesPerPath(t *testing.T) {
	c := &collector{}
	w := &Watcher{handler: c.handle}
	w.pending = []Event{
		{Type: Created, Path: "a.hsl"},
		{Type: Modified, Path: "a.hsl"},
		{Type: Modified, Path: "b.hsl"},
		{Type: Deleted, Path: "a.hsl"},
	}
	w.flush()

	got := c.snapshot()
	require.Len(t, got, 2)
	assert.Equal(t, "b.hsl", got[0].Path)
	assert.Equal(t, "a.hsl", got[1].Path)
	assert.Equal(t, Deleted, got[1].Type)

	// Nothing pending means the handler does not run again.
	w.flush()
	assert.Len(t, c.snapshot(), 2)
}

func TestEventType_String(t *testing.T) {
	assert.Equal(t, "created", Created.String())
	assert.Equal(t, "modified", Modified.String())
	assert.Equal(t, "deleted", Deleted.String())
	assert.Equal(t, "unknown", EventType(42).String())
}
