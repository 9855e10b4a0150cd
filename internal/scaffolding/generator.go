// Package scaffolding creates the starter project files for a new resume
// site: template, stylesheet, script and the resume config written by the
// setup wizard.
package scaffolding

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vitaforge/vitae/internal/config"
	"github.com/vitaforge/vitae/internal/resume"
)

// Generator writes starter files into a project laid out by the tool
// configuration.
type Generator struct {
	paths config.PathsConfig
}

// NewGenerator creates a generator for the given path layout.
func NewGenerator(paths config.PathsConfig) *Generator {
	return &Generator{paths: paths}
}

// ScaffoldProject writes the starter template, stylesheet and script,
// skipping any file that already exists. It returns the list of files it
// created.
func (g *Generator) ScaffoldProject() ([]string, error) {
	starters := []struct {
		path    string
		content string
	}{
		{g.paths.Template, StarterTemplate},
		{filepath.Join(g.paths.Styles, "main.css"), StarterStylesheet},
		{filepath.Join(g.paths.Scripts, "main.js"), StarterScript},
	}

	var created []string
	for _, starter := range starters {
		if _, err := os.Stat(starter.path); err == nil {
			continue
		}
		if err := os.MkdirAll(filepath.Dir(starter.path), 0o755); err != nil {
			return created, fmt.Errorf("creating %s: %w", filepath.Dir(starter.path), err)
		}
		if err := os.WriteFile(starter.path, []byte(starter.content), 0o644); err != nil {
			return created, fmt.Errorf("writing %s: %w", starter.path, err)
		}
		created = append(created, starter.path)
	}
	return created, nil
}

// WriteResumeConfig writes cfg as indented JSON to the configured data path.
// An existing file is first backed up to a timestamped .bak sibling, never
// silently destroyed.
func (g *Generator) WriteResumeConfig(cfg *resume.Config) (backup string, err error) {
	path := g.paths.Data

	if _, statErr := os.Stat(path); statErr == nil {
		backup = fmt.Sprintf("%s.bak-%s", path, time.Now().Format("20060102-150405"))
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			return "", fmt.Errorf("reading existing config for backup: %w", readErr)
		}
		if writeErr := os.WriteFile(backup, data, 0o644); writeErr != nil {
			return "", fmt.Errorf("writing backup %s: %w", backup, writeErr)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return backup, fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return backup, fmt.Errorf("encoding resume config: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return backup, fmt.Errorf("writing %s: %w", path, err)
	}
	return backup, nil
}
