// Package resume defines the resume configuration document and its loader.
//
// The configuration is a single JSON file describing one person's resume
// content plus site settings. It is read fresh from disk on every build so
// that the watch loop always renders the latest content.
package resume

// Config is the root resume document.
type Config struct {
	Personal       Personal         `json:"personal"`
	Summary        Summary          `json:"summary"`
	Experience     []Job            `json:"experience"`
	Education      []Degree         `json:"education"`
	Skills         Skills           `json:"skills"`
	Projects       []Project        `json:"projects,omitempty"`
	Certifications []Certification  `json:"certifications,omitempty"`
	Articles       []Article        `json:"articles,omitempty"`
	Testimonials   []map[string]any `json:"testimonials,omitempty"`
	Settings       Settings         `json:"settings"`
}

// Personal holds identity and contact information.
type Personal struct {
	Name         string            `json:"name"`
	Title        string            `json:"title"`
	Email        string            `json:"email"`
	Phone        string            `json:"phone,omitempty"`
	Website      string            `json:"website,omitempty"`
	Location     Location          `json:"location"`
	ProfileImage string            `json:"profileImage,omitempty"`
	Social       map[string]string `json:"social,omitempty"`
}

// Location is a primary/secondary pair, e.g. city and country.
type Location struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary,omitempty"`
}

// Summary holds the free-text introduction sections.
type Summary struct {
	Professional string `json:"professional"`
	About        string `json:"about,omitempty"`
}

// Job is one experience entry. EndDate may be the literal "Present".
type Job struct {
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	Location     string   `json:"location,omitempty"`
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate,omitempty"`
	Achievements []string `json:"achievements,omitempty"`
}

// Degree is one education entry.
type Degree struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Location    string `json:"location,omitempty"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

// Skills groups skill items into ordered named categories.
type Skills struct {
	Categories []SkillCategory `json:"categories"`
}

// SkillCategory is a named ordered list of skill items.
type SkillCategory struct {
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

// Project is an optional portfolio entry.
type Project struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies,omitempty"`
	URL          string   `json:"url,omitempty"`
}

// Certification is an optional credential entry.
type Certification struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer,omitempty"`
	Date   string `json:"date,omitempty"`
	URL    string `json:"url,omitempty"`
}

// Article is an optional publication entry.
type Article struct {
	Title string `json:"title"`
	URL   string `json:"url,omitempty"`
	Date  string `json:"date,omitempty"`
}

// Settings holds site-level options that are not resume content.
type Settings struct {
	Theme           string          `json:"theme,omitempty"`
	SectionsEnabled map[string]bool `json:"sectionsEnabled,omitempty"`
	Colors          *Colors         `json:"colors,omitempty"`
	SEO             SEO             `json:"seo"`
	CustomDomain    string          `json:"customDomain,omitempty"`
}

// Colors overrides the theme palette. Each field is an optional hex string;
// missing fields fall back to built-in defaults at render time.
type Colors struct {
	Primary   string `json:"primary,omitempty"`
	Secondary string `json:"secondary,omitempty"`
	Accent    string `json:"accent,omitempty"`
}

// SEO holds metadata for the generated page and derived artifacts.
type SEO struct {
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	Keywords     string `json:"keywords,omitempty"`
	CanonicalURL string `json:"canonicalUrl,omitempty"`
}

// EnabledSectionCount returns how many sections are switched on in
// settings.sectionsEnabled.
func (c *Config) EnabledSectionCount() int {
	count := 0
	for _, enabled := range c.Settings.SectionsEnabled {
		if enabled {
			count++
		}
	}
	return count
}
