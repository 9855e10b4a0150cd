package site

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitaforge/vitae/internal/config"
	"github.com/vitaforge/vitae/internal/logging"
	"github.com/vitaforge/vitae/internal/resume"
)

const testResumeConfig = `{
  "personal": {
    "name": "Ada Lovelace",
    "title": "Software Engineer",
    "email": "ada@example.com",
    "profileImage": "profile.jpg"
  },
  "summary": {"professional": "Engineer."},
  "experience": [
    {"title": "Engineer", "company": "Acme", "startDate": "2020-01", "endDate": "Present"}
  ],
  "education": [
    {"degree": "Maths", "institution": "Tutors"}
  ],
  "skills": {"categories": [{"name": "Langs", "items": ["Go"]}]},
  "projects": [],
  "settings": {
    "sectionsEnabled": {"summary": true, "experience": true},
    "colors": {"primary": "#ff6600"},
    "seo": {"title": "Ada", "canonicalUrl": "https://ada.example.com"},
    "customDomain": "ada.example.com"
  }
}`

const testTemplate = `<!DOCTYPE html>
<html>
<head><title>{{personal.name}}</title>{{{customColorStyles}}}</head>
<body>
<h1>{{personal.name}}</h1>
{{#each experience}}<p>{{title}} at {{company}}, since {{formatDate startDate}}</p>{{/each}}
<footer>{{currentYear}}</footer>
</body>
</html>`

// testProject lays out a full project tree in a temp dir and returns the
// matching tool config.
func testProject(t *testing.T, resumeJSON string) *config.Config {
	t.Helper()
	root := t.TempDir()

	cfg := config.Default()
	cfg.Paths.Data = filepath.Join(root, "config", "resume.config.json")
	cfg.Paths.Template = filepath.Join(root, "template", "index.html")
	cfg.Paths.Styles = filepath.Join(root, "styles")
	cfg.Paths.Scripts = filepath.Join(root, "scripts")
	cfg.Paths.Images = filepath.Join(root, "images")
	cfg.Paths.Output = filepath.Join(root, "dist")

	writeFile(t, cfg.Paths.Data, resumeJSON)
	writeFile(t, cfg.Paths.Template, testTemplate)
	writeFile(t, filepath.Join(cfg.Paths.Styles, "main.css"), "body{}")
	writeFile(t, filepath.Join(cfg.Paths.Images, "profile.jpg"), "jpeg")
	return cfg
}

func TestBuildProducesFullOutputTree(t *testing.T) {
	cfg := testProject(t, testResumeConfig)
	builder := NewBuilder(cfg, logging.Discard())

	summary, err := builder.Run(Options{})
	require.NoError(t, err)

	page, err := os.ReadFile(filepath.Join(cfg.Paths.Output, "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(page), "<h1>Ada Lovelace</h1>")
	assert.Contains(t, string(page), "Engineer at Acme, since Jan 2020")
	assert.Contains(t, string(page), "--color-primary: #ff6600;")
	assert.NotContains(t, string(page), "{{")

	for _, name := range []string{"sitemap.xml", "robots.txt", "CNAME", "css/main.css", "images/profile.jpg"} {
		_, err := os.Stat(filepath.Join(cfg.Paths.Output, filepath.FromSlash(name)))
		assert.NoError(t, err, name)
	}

	cname, err := os.ReadFile(filepath.Join(cfg.Paths.Output, "CNAME"))
	require.NoError(t, err)
	assert.Equal(t, "ada.example.com", string(cname))

	assert.Equal(t, "Ada Lovelace", summary.Name)
	assert.Equal(t, 2, summary.EnabledSections)
	assert.Equal(t, 1, summary.Experience)
	assert.Positive(t, summary.FileCount)
	assert.Positive(t, summary.OutputBytes)
}

func TestBuildMissingTemplate(t *testing.T) {
	cfg := testProject(t, testResumeConfig)
	require.NoError(t, os.Remove(cfg.Paths.Template))

	_, err := NewBuilder(cfg, nil).Run(Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestBuildMissingResumeConfig(t *testing.T) {
	cfg := testProject(t, testResumeConfig)
	require.NoError(t, os.Remove(cfg.Paths.Data))

	_, err := NewBuilder(cfg, nil).Run(Options{})
	require.Error(t, err)
	assert.True(t, resume.IsNotFound(err))
}

func TestBuildMissingAssetRootIsWarning(t *testing.T) {
	cfg := testProject(t, testResumeConfig)
	// scripts/ was never created by testProject.

	summary, err := NewBuilder(cfg, nil).Run(Options{})
	require.NoError(t, err)

	found := false
	for _, warn := range summary.Warnings {
		if warn == "asset source "+cfg.Paths.Scripts+" missing, skipped" {
			found = true
		}
	}
	assert.True(t, found, "warnings: %v", summary.Warnings)
}

func TestBuildRemovesStaleCNAME(t *testing.T) {
	cfg := testProject(t, testResumeConfig)
	_, err := NewBuilder(cfg, nil).Run(Options{})
	require.NoError(t, err)

	// Drop the custom domain and rebuild: the pointer must disappear.
	noDomain := mutateJSON(t, testResumeConfig, func(raw map[string]any) {
		delete(raw["settings"].(map[string]any), "customDomain")
	})
	writeFile(t, cfg.Paths.Data, noDomain)

	_, err = NewBuilder(cfg, nil).Run(Options{})
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(cfg.Paths.Output, "CNAME"))
	assert.True(t, os.IsNotExist(err))
}

func TestBuildIsDeterministic(t *testing.T) {
	cfg := testProject(t, testResumeConfig)
	builder := NewBuilder(cfg, nil)

	_, err := builder.Run(Options{})
	require.NoError(t, err)
	first, err := os.ReadFile(filepath.Join(cfg.Paths.Output, "index.html"))
	require.NoError(t, err)

	_, err = builder.Run(Options{})
	require.NoError(t, err)
	second, err := os.ReadFile(filepath.Join(cfg.Paths.Output, "index.html"))
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

func TestBuildWithHTMLCheckIsCleanForValidTemplate(t *testing.T) {
	cfg := testProject(t, testResumeConfig)

	summary, err := NewBuilder(cfg, nil).Run(Options{CheckHTML: true})
	require.NoError(t, err)

	for _, warn := range summary.Warnings {
		assert.NotContains(t, warn, "html:")
	}
}

func TestCheckHTML(t *testing.T) {
	assert.Empty(t, CheckHTML("<!DOCTYPE html><html><head></head><body>ok</body></html>"))

	problems := CheckHTML("text with a leftover {{tag}}")
	assert.NotEmpty(t, problems)
	assert.Contains(t, problems[0], "unexpanded template tag")
}

func mutateJSON(t *testing.T, source string, change func(map[string]any)) string {
	t.Helper()
	var raw map[string]any
	require.NoError(t, json.Unmarshal([]byte(source), &raw))
	change(raw)
	out, err := json.Marshal(raw)
	require.NoError(t, err)
	return string(out)
}
