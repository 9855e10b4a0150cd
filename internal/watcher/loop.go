package watcher

import (
	"sync"

	"github.com/vitaforge/vitae/internal/logging"
)

// State is the watch loop's build state. The loop owns the state value;
// there is no free-floating "is building" flag anywhere else.
type State int

const (
	// StateIdle means no build is running and no events are pending.
	StateIdle State = iota
	// StateDebouncing means change events arrived and the quiet-window timer
	// is running.
	StateDebouncing
	// StateBuilding means a build is in progress.
	StateBuilding
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDebouncing:
		return "debouncing"
	case StateBuilding:
		return "building"
	default:
		return "unknown"
	}
}

// BuildLoop serializes build invocations. A trigger that lands while a build
// is running is not dropped: it parks in a single pending slot and runs once
// the active build finishes. One slot is enough because rebuilds are
// idempotent and only the latest input matters.
type BuildLoop struct {
	build   func() error
	log     logging.Logger
	mutex   sync.Mutex
	state   State
	pending bool
}

// NewBuildLoop creates a loop around the given build function.
func NewBuildLoop(build func() error, log logging.Logger) *BuildLoop {
	if log == nil {
		log = logging.Discard()
	}
	return &BuildLoop{build: build, log: log.WithComponent("buildloop")}
}

// State returns the current state.
func (l *BuildLoop) State() State {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	return l.state
}

// MarkDebouncing records that raw change events arrived and the debounce
// timer is running. A build in progress keeps its state.
func (l *BuildLoop) MarkDebouncing() {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	if l.state == StateIdle {
		l.state = StateDebouncing
	}
}

// Trigger requests a build. It runs the build synchronously unless one is
// already in progress, in which case the request is coalesced into the
// pending slot and executed immediately after the active build completes.
// A failed build leaves the loop watching; the error is reported, not fatal.
func (l *BuildLoop) Trigger() {
	l.mutex.Lock()
	if l.state == StateBuilding {
		l.pending = true
		l.mutex.Unlock()
		return
	}
	l.state = StateBuilding
	l.mutex.Unlock()

	for {
		if err := l.build(); err != nil {
			l.log.Error(err, "rebuild failed, still watching")
		}

		l.mutex.Lock()
		if l.pending {
			l.pending = false
			l.mutex.Unlock()
			continue
		}
		l.state = StateIdle
		l.mutex.Unlock()
		return
	}
}
