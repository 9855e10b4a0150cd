// Package validation checks resume configurations without building anything.
//
// The standalone validator produces two independent lists: errors are
// structural violations that should block a build (missing required fields,
// wrong types), warnings are soft issues (format problems, empty sections)
// that degrade the output but do not block. It performs no mutation and has
// no side effect beyond reporting.
package validation

import (
	"fmt"

	playground "github.com/go-playground/validator/v10"

	"github.com/vitaforge/vitae/internal/resume"
)

// Issue is a single finding, attached to a dotted field path.
type Issue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.Field, i.Message)
}

// Report is the outcome of validating one config.
type Report struct {
	Errors   []Issue `json:"errors"`
	Warnings []Issue `json:"warnings"`
}

// OK reports whether the config has no blocking errors. Warnings alone still
// pass.
func (r *Report) OK() bool {
	return len(r.Errors) == 0
}

// Clean reports whether nothing at all was found.
func (r *Report) Clean() bool {
	return len(r.Errors) == 0 && len(r.Warnings) == 0
}

func (r *Report) addError(field, format string, args ...any) {
	r.Errors = append(r.Errors, Issue{Field: field, Message: fmt.Sprintf(format, args...)})
}

func (r *Report) addWarning(field, format string, args ...any) {
	r.Warnings = append(r.Warnings, Issue{Field: field, Message: fmt.Sprintf(format, args...)})
}

// fieldChecker wraps go-playground/validator for single-value format checks
// (email, url, hexcolor) so the rule patterns stay out of this package.
var fieldChecker = playground.New()

func validFormat(value, tag string) bool {
	return fieldChecker.Var(value, tag) == nil
}

// Validate runs every structural and format check against a parsed config.
// The raw document is consulted for presence checks that the typed struct
// cannot distinguish (absent vs zero-valued fields, null vs empty arrays).
func Validate(doc *resume.Document) *Report {
	report := &Report{}
	cfg := doc.Config
	raw := doc.Raw

	validatePersonal(report, cfg, raw)
	validateSummary(report, raw)
	validateSequences(report, cfg, raw)
	validateSkills(report, cfg, raw)
	validateProjects(report, cfg)
	validateSettings(report, cfg, raw)

	return report
}

func rawSection(raw map[string]any, key string) (any, bool) {
	v, ok := raw[key]
	return v, ok
}

func validatePersonal(report *Report, cfg *resume.Config, raw map[string]any) {
	section, ok := rawSection(raw, "personal")
	if !ok || section == nil {
		report.addError("personal", "required section is missing")
		return
	}
	if _, isObj := section.(map[string]any); !isObj {
		report.addError("personal", "must be an object")
		return
	}

	obj := section.(map[string]any)
	for _, field := range []string{"name", "title", "email"} {
		if !hasNonEmptyString(obj, field) {
			report.addError("personal."+field, "required field is missing or empty")
		}
	}

	if cfg.Personal.Email != "" && !validFormat(cfg.Personal.Email, "email") {
		report.addWarning("personal.email", "%q does not look like an email address", cfg.Personal.Email)
	}
	if cfg.Personal.Website != "" && !validFormat(cfg.Personal.Website, "url") {
		report.addWarning("personal.website", "%q is not a well-formed URL", cfg.Personal.Website)
	}
	for name, url := range cfg.Personal.Social {
		if url != "" && !validFormat(url, "url") {
			report.addWarning("personal.social."+name, "%q is not a well-formed URL", url)
		}
	}
	if cfg.Personal.Location.Primary == "" {
		report.addWarning("personal.location.primary", "location is empty")
	}
}

func validateSummary(report *Report, raw map[string]any) {
	section, ok := rawSection(raw, "summary")
	if !ok || section == nil {
		report.addError("summary", "required section is missing")
		return
	}
	obj, isObj := section.(map[string]any)
	if !isObj {
		report.addError("summary", "must be an object")
		return
	}
	if !hasNonEmptyString(obj, "professional") {
		report.addWarning("summary.professional", "professional summary is empty")
	}
}

// validateSequences covers experience and education: required, must be
// arrays, may be empty (warning only).
func validateSequences(report *Report, cfg *resume.Config, raw map[string]any) {
	for _, key := range []string{"experience", "education"} {
		section, ok := rawSection(raw, key)
		if !ok || section == nil {
			report.addError(key, "required section is missing")
			continue
		}
		seq, isSeq := section.([]any)
		if !isSeq {
			report.addError(key, "must be an array")
			continue
		}
		if len(seq) == 0 {
			report.addWarning(key, "section is empty")
		}
	}

	for i, job := range cfg.Experience {
		prefix := fmt.Sprintf("experience[%d]", i)
		if job.Title == "" {
			report.addError(prefix+".title", "required field is missing or empty")
		}
		if job.Company == "" {
			report.addError(prefix+".company", "required field is missing or empty")
		}
		if job.StartDate == "" {
			report.addError(prefix+".startDate", "required field is missing or empty")
		}
	}
}

func validateSkills(report *Report, cfg *resume.Config, raw map[string]any) {
	section, ok := rawSection(raw, "skills")
	if !ok || section == nil {
		report.addError("skills", "required section is missing")
		return
	}
	if _, isObj := section.(map[string]any); !isObj {
		report.addError("skills", "must be an object")
		return
	}
	for i, cat := range cfg.Skills.Categories {
		if cat.Name == "" {
			report.addWarning(fmt.Sprintf("skills.categories[%d].name", i), "category has no name")
		}
		if len(cat.Items) == 0 {
			report.addWarning(fmt.Sprintf("skills.categories[%d].items", i), "category has no items")
		}
	}
}

func validateProjects(report *Report, cfg *resume.Config) {
	for i, project := range cfg.Projects {
		prefix := fmt.Sprintf("projects[%d]", i)
		if project.Title == "" {
			report.addError(prefix+".title", "required field is missing or empty")
		}
		if project.URL != "" && !validFormat(project.URL, "url") {
			report.addWarning(prefix+".url", "%q is not a well-formed URL", project.URL)
		}
	}
}

func validateSettings(report *Report, cfg *resume.Config, raw map[string]any) {
	section, ok := rawSection(raw, "settings")
	if !ok || section == nil {
		report.addError("settings", "required section is missing")
		return
	}
	obj, isObj := section.(map[string]any)
	if !isObj {
		report.addError("settings", "must be an object")
		return
	}

	seo, ok := obj["seo"]
	if !ok || seo == nil {
		report.addError("settings.seo", "required section is missing")
	} else if _, isObj := seo.(map[string]any); !isObj {
		report.addError("settings.seo", "must be an object")
	}

	if cfg.Settings.SEO.CanonicalURL != "" && !validFormat(cfg.Settings.SEO.CanonicalURL, "url") {
		report.addWarning("settings.seo.canonicalUrl", "%q is not a well-formed URL", cfg.Settings.SEO.CanonicalURL)
	}

	if colors := cfg.Settings.Colors; colors != nil {
		checkColor(report, "settings.colors.primary", colors.Primary)
		checkColor(report, "settings.colors.secondary", colors.Secondary)
		checkColor(report, "settings.colors.accent", colors.Accent)
	}
}

// checkColor enforces #-prefixed hex colors via the hexcolor rule in
// go-playground/validator (3, 4, 6 or 8 hex digits).
func checkColor(report *Report, field, value string) {
	if value == "" {
		return
	}
	if !validFormat(value, "hexcolor") {
		report.addWarning(field, "%q is not a valid hex color", value)
	}
}

func hasNonEmptyString(obj map[string]any, key string) bool {
	v, ok := obj[key]
	if !ok {
		return false
	}
	s, isStr := v.(string)
	return isStr && s != ""
}
