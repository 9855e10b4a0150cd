// Package watcher monitors the project tree for changes and drives
// debounced rebuilds in development mode.
package watcher

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/vitaforge/vitae/internal/logging"
)

// FileWatcher watches for file changes with debouncing.
type FileWatcher struct {
	watcher   *fsnotify.Watcher
	debouncer *debouncer
	filters   []FileFilter
	handlers  []ChangeHandler
	onRaw     func()
	log       logging.Logger
	mutex     sync.RWMutex
}

// ChangeEvent represents a single file change.
type ChangeEvent struct {
	Type EventType
	Path string
}

// EventType represents the type of file change.
type EventType int

const (
	EventTypeCreated EventType = iota
	EventTypeModified
	EventTypeDeleted
	EventTypeRenamed
)

// String returns the string representation of the EventType.
func (e EventType) String() string {
	switch e {
	case EventTypeCreated:
		return "created"
	case EventTypeModified:
		return "modified"
	case EventTypeDeleted:
		return "deleted"
	case EventTypeRenamed:
		return "renamed"
	default:
		return "unknown"
	}
}

// FileFilter reports whether a path may trigger a rebuild. All filters must
// accept a path for it to pass.
type FileFilter func(path string) bool

// ChangeHandler receives one debounced batch of change events.
type ChangeHandler func(events []ChangeEvent) error

// debouncer coalesces rapid changes into one batch per quiet window.
type debouncer struct {
	delay   time.Duration
	events  chan ChangeEvent
	output  chan []ChangeEvent
	timer   *time.Timer
	pending []ChangeEvent
	mutex   sync.Mutex
}

// New creates a file watcher with the given debounce window.
func New(debounceDelay time.Duration, log logging.Logger) (*FileWatcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logging.Discard()
	}

	return &FileWatcher{
		watcher: fsWatcher,
		debouncer: &debouncer{
			delay:  debounceDelay,
			events: make(chan ChangeEvent, 100),
			output: make(chan []ChangeEvent, 10),
		},
		log: log.WithComponent("watcher"),
	}, nil
}

// AddFilter adds a file filter.
func (fw *FileWatcher) AddFilter(filter FileFilter) {
	fw.mutex.Lock()
	defer fw.mutex.Unlock()
	fw.filters = append(fw.filters, filter)
}

// AddHandler adds a change handler.
func (fw *FileWatcher) AddHandler(handler ChangeHandler) {
	fw.mutex.Lock()
	defer fw.mutex.Unlock()
	fw.handlers = append(fw.handlers, handler)
}

// OnRawEvent registers a hook invoked for every accepted change before
// debouncing, so callers can observe the debouncing phase.
func (fw *FileWatcher) OnRawEvent(hook func()) {
	fw.mutex.Lock()
	defer fw.mutex.Unlock()
	fw.onRaw = hook
}

// AddRecursive adds a directory and all its subdirectories to the watch set.
// Ignored directories are pruned so the watcher never reacts to its own
// build output.
func (fw *FileWatcher) AddRecursive(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		if isIgnoredDir(filepath.Base(path)) {
			return filepath.SkipDir
		}
		return fw.watcher.Add(path)
	})
}

// AddPath adds a single file or directory to the watch set.
func (fw *FileWatcher) AddPath(path string) error {
	return fw.watcher.Add(path)
}

// Start launches the watch goroutines. They exit when ctx is cancelled.
func (fw *FileWatcher) Start(ctx context.Context) {
	go fw.debouncer.run(ctx)
	go fw.dispatch(ctx)
	go fw.watchLoop(ctx)
}

// Stop stops the file watcher and releases its resources.
func (fw *FileWatcher) Stop() error {
	fw.debouncer.mutex.Lock()
	if fw.debouncer.timer != nil {
		fw.debouncer.timer.Stop()
	}
	fw.debouncer.mutex.Unlock()
	return fw.watcher.Close()
}

func (fw *FileWatcher) watchLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			fw.handleEvent(event)
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.log.Warn("watch error", "error", err.Error())
		}
	}
}

func (fw *FileWatcher) handleEvent(event fsnotify.Event) {
	fw.mutex.RLock()
	filters := fw.filters
	fw.mutex.RUnlock()

	for _, filter := range filters {
		if !filter(event.Name) {
			return
		}
	}

	fw.mutex.RLock()
	onRaw := fw.onRaw
	fw.mutex.RUnlock()
	if onRaw != nil {
		onRaw()
	}

	var eventType EventType
	switch {
	case event.Op.Has(fsnotify.Create):
		eventType = EventTypeCreated
	case event.Op.Has(fsnotify.Remove):
		eventType = EventTypeDeleted
	case event.Op.Has(fsnotify.Rename):
		eventType = EventTypeRenamed
	default:
		eventType = EventTypeModified
	}

	select {
	case fw.debouncer.events <- ChangeEvent{Type: eventType, Path: event.Name}:
	default:
		// Channel full; the pending batch already guarantees a rebuild.
	}
}

func (fw *FileWatcher) dispatch(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case events := <-fw.debouncer.output:
			fw.mutex.RLock()
			handlers := fw.handlers
			fw.mutex.RUnlock()

			for _, handler := range handlers {
				if err := handler(events); err != nil {
					fw.log.Error(err, "change handler failed")
				}
			}
		}
	}
}

func (d *debouncer) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-d.events:
			d.add(event)
		}
	}
}

func (d *debouncer) add(event ChangeEvent) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	d.pending = append(d.pending, event)

	// Every new event restarts the quiet window.
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.flush)
}

func (d *debouncer) flush() {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if len(d.pending) == 0 {
		return
	}

	seen := make(map[string]ChangeEvent, len(d.pending))
	for _, event := range d.pending {
		seen[event.Path] = event
	}
	events := make([]ChangeEvent, 0, len(seen))
	for _, event := range seen {
		events = append(events, event)
	}

	select {
	case d.output <- events:
	default:
	}
	d.pending = d.pending[:0]
}

// ignoredDirs are directory names that never trigger rebuilds: VCS state,
// dependency caches and the default output tree.
var ignoredDirs = map[string]bool{
	".git":         true,
	".hg":          true,
	".svn":         true,
	"node_modules": true,
	"vendor":       true,
	"dist":         true,
}

func isIgnoredDir(name string) bool {
	return ignoredDirs[name]
}

// NoiseFilter rejects paths that live in ignored directories or are OS
// metadata and editor swap/backup files.
func NoiseFilter(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if ignoredDirs[part] {
			return false
		}
	}

	base := filepath.Base(path)
	switch base {
	case ".DS_Store", "Thumbs.db", "desktop.ini":
		return false
	}
	switch filepath.Ext(base) {
	case ".swp", ".swx", ".tmp", ".bak":
		return false
	}
	if strings.HasSuffix(base, "~") || strings.HasPrefix(base, ".#") {
		return false
	}
	return true
}

// OutputFilter rejects anything under the build output directory, so a
// build can never retrigger itself.
func OutputFilter(outputDir string) FileFilter {
	abs, err := filepath.Abs(outputDir)
	if err != nil {
		abs = outputDir
	}
	return func(path string) bool {
		p, err := filepath.Abs(path)
		if err != nil {
			p = path
		}
		return p != abs && !strings.HasPrefix(p, abs+string(filepath.Separator))
	}
}
