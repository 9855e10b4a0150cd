package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventTypeString(t *testing.T) {
	assert.Equal(t, "created", EventTypeCreated.String())
	assert.Equal(t, "modified", EventTypeModified.String())
	assert.Equal(t, "deleted", EventTypeDeleted.String())
	assert.Equal(t, "renamed", EventTypeRenamed.String())
	assert.Equal(t, "unknown", EventType(99).String())
}

func TestNoiseFilter(t *testing.T) {
	rejected := []string{
		"styles/.DS_Store",
		"Thumbs.db",
		"desktop.ini",
		"template/index.html.swp",
		"config/resume.config.json.tmp",
		"notes.bak",
		"template/index.html~",
		"config/.#resume.config.json",
		".git/HEAD",
		"node_modules/left-pad/index.js",
		"dist/index.html",
	}
	for _, path := range rejected {
		assert.False(t, NoiseFilter(filepath.FromSlash(path)), path)
	}

	accepted := []string{
		"config/resume.config.json",
		"template/index.html",
		"styles/main.css",
		"scripts/app.js",
		"images/profile.jpg",
	}
	for _, path := range accepted {
		assert.True(t, NoiseFilter(filepath.FromSlash(path)), path)
	}
}

func TestOutputFilter(t *testing.T) {
	filter := OutputFilter("dist")

	assert.False(t, filter(filepath.FromSlash("dist/index.html")))
	assert.False(t, filter(filepath.FromSlash("dist/css/main.css")))
	assert.False(t, filter("dist"))
	assert.True(t, filter(filepath.FromSlash("template/index.html")))
	// A sibling whose name shares the prefix is not inside the output tree.
	assert.True(t, filter(filepath.FromSlash("distribution/readme.md")))
}

// Two changes inside the quiet window must produce exactly one handler
// batch, not two.
func TestDebounceCoalescesRapidChanges(t *testing.T) {
	dir := t.TempDir()

	fw, err := New(100*time.Millisecond, nil)
	require.NoError(t, err)
	defer fw.Stop()

	var batches int32
	fw.AddHandler(func(events []ChangeEvent) error {
		atomic.AddInt32(&batches, 1)
		return nil
	})
	require.NoError(t, fw.AddRecursive(dir))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	fw.Start(ctx)

	// Let the watch goroutines come up before generating events.
	time.Sleep(50 * time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.css"), []byte("a"), 0o644))
	time.Sleep(20 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.css"), []byte("b"), 0o644))

	// Wait well past the debounce window.
	time.Sleep(500 * time.Millisecond)

	assert.Equal(t, int32(1), atomic.LoadInt32(&batches))
}

func TestDebouncedBatchDeduplicatesPaths(t *testing.T) {
	dir := t.TempDir()

	fw, err := New(100*time.Millisecond, nil)
	require.NoError(t, err)
	defer fw.Stop()

	batch := make(chan []ChangeEvent, 1)
	fw.AddHandler(func(events []ChangeEvent) error {
		select {
		case batch <- events:
		default:
		}
		return nil
	})
	require.NoError(t, fw.AddRecursive(dir))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	fw.Start(ctx)
	time.Sleep(50 * time.Millisecond)

	target := filepath.Join(dir, "main.css")
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(target, []byte("v"), 0o644))
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case events := <-batch:
		paths := map[string]int{}
		for _, event := range events {
			paths[event.Path]++
		}
		assert.Equal(t, 1, paths[target], "same path must appear once per batch")
	case <-time.After(2 * time.Second):
		t.Fatal("no batch delivered")
	}
}

func TestFilterSuppressesEvents(t *testing.T) {
	dir := t.TempDir()

	fw, err := New(50*time.Millisecond, nil)
	require.NoError(t, err)
	defer fw.Stop()

	var batches int32
	fw.AddFilter(func(string) bool { return false })
	fw.AddHandler(func([]ChangeEvent) error {
		atomic.AddInt32(&batches, 1)
		return nil
	})
	require.NoError(t, fw.AddRecursive(dir))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	fw.Start(ctx)
	time.Sleep(50 * time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "x.css"), []byte("x"), 0o644))
	time.Sleep(300 * time.Millisecond)

	assert.Equal(t, int32(0), atomic.LoadInt32(&batches))
}

func TestOnRawEventFiresBeforeDebounce(t *testing.T) {
	dir := t.TempDir()

	fw, err := New(200*time.Millisecond, nil)
	require.NoError(t, err)
	defer fw.Stop()

	raw := make(chan struct{}, 8)
	fw.OnRawEvent(func() {
		select {
		case raw <- struct{}{}:
		default:
		}
	})
	fw.AddHandler(func([]ChangeEvent) error { return nil })
	require.NoError(t, fw.AddRecursive(dir))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	fw.Start(ctx)
	time.Sleep(50 * time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.css"), []byte("a"), 0o644))

	// The raw hook fires immediately, long before the 200ms window closes.
	select {
	case <-raw:
	case <-time.After(150 * time.Millisecond):
		t.Fatal("raw event hook did not fire within the debounce window")
	}
}

func TestAddRecursivePrunesIgnoredDirs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "dist", "css"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "styles"), 0o755))

	fw, err := New(50*time.Millisecond, nil)
	require.NoError(t, err)
	defer fw.Stop()

	var batches int32
	fw.AddHandler(func([]ChangeEvent) error {
		atomic.AddInt32(&batches, 1)
		return nil
	})
	require.NoError(t, fw.AddRecursive(dir))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	fw.Start(ctx)
	time.Sleep(50 * time.Millisecond)

	// Writes under dist/ are invisible: the directory was never watched.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dist", "css", "out.css"), []byte("x"), 0o644))
	time.Sleep(300 * time.Millisecond)

	assert.Equal(t, int32(0), atomic.LoadInt32(&batches))
}
