package scaffolding

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/vitaforge/vitae/internal/resume"
)

// Wizard collects the minimal resume fields interactively. It only gathers
// input; writing files is the Generator's job.
type Wizard struct {
	reader *bufio.Reader
	out    io.Writer
}

// NewWizard creates a wizard reading prompts from in and writing to out.
func NewWizard(in io.Reader, out io.Writer) *Wizard {
	return &Wizard{reader: bufio.NewReader(in), out: out}
}

// Run walks the user through the minimal fields and returns a config ready
// to render, with every section present so the generated site builds
// immediately.
func (w *Wizard) Run() (*resume.Config, error) {
	fmt.Fprintln(w.out, "🧙 Resume Setup Wizard")
	fmt.Fprintln(w.out, "======================")
	fmt.Fprintln(w.out, "A few questions and you'll have a working resume site.")
	fmt.Fprintln(w.out)

	cfg := &resume.Config{
		Experience: []resume.Job{},
		Education:  []resume.Degree{},
		Skills:     resume.Skills{Categories: []resume.SkillCategory{}},
	}

	cfg.Personal.Name = w.askRequired("Full name")
	cfg.Personal.Title = w.askRequired("Professional title")
	cfg.Personal.Email = w.askRequired("Email address")
	cfg.Personal.Phone = w.askString("Phone number", "")
	cfg.Personal.Location.Primary = w.askString("Location (city)", "")
	cfg.Personal.Location.Secondary = w.askString("Location (country)", "")
	cfg.Summary.Professional = w.askString("One-line professional summary", "")

	if w.askBool("Add a first job now", true) {
		job := resume.Job{
			Title:     w.askRequired("  Job title"),
			Company:   w.askRequired("  Company"),
			StartDate: w.askRequired("  Start date (YYYY-MM)"),
			EndDate:   w.askString("  End date (YYYY-MM or Present)", "Present"),
		}
		cfg.Experience = append(cfg.Experience, job)
	}

	if skills := w.askString("Core skills (comma-separated)", ""); skills != "" {
		category := resume.SkillCategory{Name: "Core"}
		for _, item := range strings.Split(skills, ",") {
			if item = strings.TrimSpace(item); item != "" {
				category.Items = append(category.Items, item)
			}
		}
		cfg.Skills.Categories = append(cfg.Skills.Categories, category)
	}

	cfg.Settings.SEO.Title = fmt.Sprintf("%s — %s", cfg.Personal.Name, cfg.Personal.Title)
	cfg.Settings.SEO.Description = cfg.Summary.Professional
	cfg.Settings.SEO.CanonicalURL = w.askString("Site URL (for sitemap)", "")
	cfg.Settings.CustomDomain = w.askString("Custom domain (blank for none)", "")
	cfg.Settings.SectionsEnabled = map[string]bool{
		"summary":    true,
		"experience": true,
		"education":  true,
		"skills":     true,
		"projects":   true,
	}

	fmt.Fprintln(w.out)
	return cfg, nil
}

func (w *Wizard) askString(prompt, defaultValue string) string {
	if defaultValue != "" {
		fmt.Fprintf(w.out, "%s [%s]: ", prompt, defaultValue)
	} else {
		fmt.Fprintf(w.out, "%s: ", prompt)
	}

	input, err := w.reader.ReadString('\n')
	if err != nil {
		return defaultValue
	}
	input = strings.TrimSpace(input)
	if input == "" {
		return defaultValue
	}
	return input
}

func (w *Wizard) askRequired(prompt string) string {
	for {
		if value := w.askString(prompt, ""); value != "" {
			return value
		}
		fmt.Fprintln(w.out, "❌ This field is required.")
	}
}

func (w *Wizard) askBool(prompt string, defaultValue bool) bool {
	defaultStr := "n"
	if defaultValue {
		defaultStr = "y"
	}
	input := strings.ToLower(w.askString(fmt.Sprintf("%s [%s]", prompt, defaultStr), defaultStr))
	return input == "y" || input == "yes" || input == "true"
}
