// Package site orchestrates a full build of the resume site: load the
// resume config, render the template, write the page atomically, copy static
// assets and generate the derived artifacts (sitemap, robots, CNAME).
//
// Each build is self-contained: the config is re-read from disk, the render
// context is rebuilt and the output tree is fully regenerated. Whole files
// are written atomically so an interrupted build never leaves a partially
// written page behind.
package site

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/natefinch/atomic"

	"github.com/vitaforge/vitae/internal/config"
	"github.com/vitaforge/vitae/internal/logging"
	"github.com/vitaforge/vitae/internal/render"
	"github.com/vitaforge/vitae/internal/resume"
	"github.com/vitaforge/vitae/internal/validation"
)

// ErrTemplateNotFound is returned when the HTML template is missing. This is
// fatal before rendering begins.
var ErrTemplateNotFound = errors.New("template not found")

// Builder runs the build pipeline against one tool configuration.
type Builder struct {
	cfg *config.Config
	log logging.Logger
}

// Options tweak a single build run.
type Options struct {
	// CheckHTML parses the rendered page and records structural problems as
	// warnings.
	CheckHTML bool
}

// Summary describes one successful build for human-readable reporting.
type Summary struct {
	Name            string
	Title           string
	EnabledSections int
	Experience      int
	Projects        int
	SkillCategories int
	OutputBytes     int64
	FileCount       int
	Duration        time.Duration
	Warnings        []string
}

// NewBuilder creates a builder. A nil logger discards all output.
func NewBuilder(cfg *config.Config, log logging.Logger) *Builder {
	if log == nil {
		log = logging.Discard()
	}
	return &Builder{cfg: cfg, log: log.WithComponent("build")}
}

// Run executes one full build. Fatal conditions abort with an error before
// claiming success; non-fatal conditions (missing asset roots, missing
// profile image) are collected as warnings on the summary.
func (b *Builder) Run(opts Options) (*Summary, error) {
	start := time.Now()
	summary := &Summary{}

	// Config is read fresh on every invocation; nothing is cached across
	// builds.
	doc, err := resume.Load(b.cfg.Paths.Data)
	if err != nil {
		return nil, err
	}
	cfg := doc.Config

	if warn := validation.CheckProfileImage(cfg.Personal.ProfileImage, b.cfg.Paths.Images); warn != "" {
		b.log.Warn(warn)
		summary.Warnings = append(summary.Warnings, warn)
	}
	if cfg.Experience != nil && len(cfg.Experience) == 0 {
		summary.Warnings = append(summary.Warnings, "experience section is empty")
	}
	if cfg.Education != nil && len(cfg.Education) == 0 {
		summary.Warnings = append(summary.Warnings, "education section is empty")
	}

	source, err := os.ReadFile(b.cfg.Paths.Template)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, b.cfg.Paths.Template)
		}
		return nil, fmt.Errorf("reading template %s: %w", b.cfg.Paths.Template, err)
	}

	tmpl, err := render.Parse(string(source), nil)
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", b.cfg.Paths.Template, err)
	}

	buildTime := time.Now()
	page := tmpl.Render(render.BuildContext(doc, buildTime))

	if opts.CheckHTML {
		for _, problem := range CheckHTML(page) {
			b.log.Warn("html check", "problem", problem)
			summary.Warnings = append(summary.Warnings, "html: "+problem)
		}
	}

	out := b.cfg.Paths.Output
	if err := os.MkdirAll(out, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	if err := atomic.WriteFile(filepath.Join(out, "index.html"), strings.NewReader(page)); err != nil {
		return nil, fmt.Errorf("writing index.html: %w", err)
	}

	if err := b.copyAssets(summary); err != nil {
		return nil, err
	}

	if err := atomic.WriteFile(filepath.Join(out, "sitemap.xml"), strings.NewReader(Sitemap(cfg, buildTime))); err != nil {
		return nil, fmt.Errorf("writing sitemap.xml: %w", err)
	}
	if err := atomic.WriteFile(filepath.Join(out, "robots.txt"), strings.NewReader(Robots(cfg))); err != nil {
		return nil, fmt.Errorf("writing robots.txt: %w", err)
	}
	if _, err := WriteDomainPointer(out, cfg); err != nil {
		return nil, err
	}

	summary.Name = cfg.Personal.Name
	summary.Title = cfg.Personal.Title
	summary.EnabledSections = cfg.EnabledSectionCount()
	summary.Experience = len(cfg.Experience)
	summary.Projects = len(cfg.Projects)
	summary.SkillCategories = len(cfg.Skills.Categories)
	summary.OutputBytes, summary.FileCount = measureTree(out)
	summary.Duration = time.Since(start)

	b.log.Info("build complete",
		"files", summary.FileCount,
		"bytes", summary.OutputBytes,
		"duration", summary.Duration)
	return summary, nil
}

// copyAssets copies the three asset categories into their output names. A
// missing source root is a warning, not a failure: not every resume ships
// every category.
func (b *Builder) copyAssets(summary *Summary) error {
	categories := []struct {
		src, dst string
	}{
		{b.cfg.Paths.Styles, "css"},
		{b.cfg.Paths.Scripts, "js"},
		{b.cfg.Paths.Images, "images"},
	}
	for _, cat := range categories {
		copied, err := CopyTree(cat.src, filepath.Join(b.cfg.Paths.Output, cat.dst))
		if err != nil {
			return err
		}
		if !copied {
			warn := fmt.Sprintf("asset source %s missing, skipped", cat.src)
			b.log.Warn(warn)
			summary.Warnings = append(summary.Warnings, warn)
		}
	}
	return nil
}

func measureTree(root string) (bytes int64, files int) {
	_ = filepath.Walk(root, func(_ string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		bytes += info.Size()
		files++
		return nil
	})
	return bytes, files
}
