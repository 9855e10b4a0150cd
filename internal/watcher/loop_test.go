package watcher

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoopStateStrings(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "debouncing", StateDebouncing.String())
	assert.Equal(t, "building", StateBuilding.String())
	assert.Equal(t, "unknown", State(99).String())
}

func TestLoopTriggerRunsBuild(t *testing.T) {
	var builds int32
	loop := NewBuildLoop(func() error {
		atomic.AddInt32(&builds, 1)
		return nil
	}, nil)

	loop.Trigger()

	assert.Equal(t, int32(1), atomic.LoadInt32(&builds))
	assert.Equal(t, StateIdle, loop.State())
}

func TestLoopMarkDebouncing(t *testing.T) {
	loop := NewBuildLoop(func() error { return nil }, nil)

	assert.Equal(t, StateIdle, loop.State())
	loop.MarkDebouncing()
	assert.Equal(t, StateDebouncing, loop.State())

	// Debouncing resolves back to idle once the build runs.
	loop.Trigger()
	assert.Equal(t, StateIdle, loop.State())
}

func TestLoopCoalescesConcurrentTriggers(t *testing.T) {
	var builds int32
	release := make(chan struct{})
	started := make(chan struct{}, 1)

	loop := NewBuildLoop(func() error {
		if atomic.AddInt32(&builds, 1) == 1 {
			started <- struct{}{}
			<-release
		}
		return nil
	}, nil)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		loop.Trigger()
	}()

	<-started
	assert.Equal(t, StateBuilding, loop.State())

	// Several triggers while the first build is blocked collapse into one
	// pending rebuild.
	loop.Trigger()
	loop.Trigger()
	loop.Trigger()

	close(release)
	wg.Wait()

	assert.Equal(t, int32(2), atomic.LoadInt32(&builds))
	assert.Equal(t, StateIdle, loop.State())
}

func TestLoopSurvivesBuildFailure(t *testing.T) {
	var builds int32
	loop := NewBuildLoop(func() error {
		atomic.AddInt32(&builds, 1)
		return errors.New("template not found")
	}, nil)

	loop.Trigger()
	assert.Equal(t, StateIdle, loop.State())

	// The loop keeps accepting triggers after a failure.
	loop.Trigger()
	assert.Equal(t, int32(2), atomic.LoadInt32(&builds))
}

func TestLoopPendingRunsAfterActiveBuild(t *testing.T) {
	order := make(chan string, 4)
	release := make(chan struct{})
	started := make(chan struct{}, 1)
	first := true

	loop := NewBuildLoop(func() error {
		if first {
			first = false
			order <- "first"
			started <- struct{}{}
			<-release
			return nil
		}
		order <- "second"
		return nil
	}, nil)

	done := make(chan struct{})
	go func() {
		loop.Trigger()
		close(done)
	}()

	<-started
	loop.Trigger()
	close(release)

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("loop did not finish")
	}

	assert.Equal(t, "first", <-order)
	assert.Equal(t, "second", <-order)
}
