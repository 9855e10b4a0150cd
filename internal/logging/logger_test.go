package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextLoggerWritesFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: "debug", Format: "text", Output: &buf})

	log.Info("build complete", "files", 7)

	out := buf.String()
	assert.Contains(t, out, "build complete")
	assert.Contains(t, out, "files=7")
}

func TestJSONLoggerCarriesComponentAndError(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Format: "json", Output: &buf}).WithComponent("watcher")

	log.Error(errors.New("boom"), "rebuild failed")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "watcher", entry["component"])
	assert.Equal(t, "boom", entry["error"])
	assert.Equal(t, "rebuild failed", entry["msg"])
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: "warn", Output: &buf})

	log.Debug("hidden")
	log.Info("hidden too")
	log.Warn("visible")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "visible")
}

func TestDiscardDropsEverything(t *testing.T) {
	// Must be safe to call with any arguments.
	log := Discard()
	log.Info("gone", "key", "value")
	log.Error(errors.New("gone"), "gone")
	log.With("k", "v").WithComponent("x").Debug("gone")
}
