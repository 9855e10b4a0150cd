package render

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/vitaforge/vitae/internal/resume"
)

// HelperFunc is a pure function from a resolved template value to output
// text. Helpers must be total: any input yields a string, never a panic.
type HelperFunc func(value any) string

// Registry maps helper names to functions. The set is closed: templates can
// only call helpers registered here, which keeps the renderer testable in
// isolation and keeps scripting out of templates.
type Registry map[string]HelperFunc

// DefaultHelpers returns the built-in helper set.
func DefaultHelpers() Registry {
	return Registry{
		"formatDate": func(value any) string {
			return FormatDate(Stringify(value))
		},
	}
}

// monthAbbrevs is the fixed 12-entry month table used by FormatDate,
// 1-indexed by calendar month.
var monthAbbrevs = [...]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// genericLayouts are tried in order for inputs that match none of the
// explicit date shapes.
var genericLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"January 2, 2006",
	"Jan 2, 2006",
	"January 2006",
	"Jan 2006",
	"2006/01/02",
	"01/02/2006",
}

// FormatDate renders a date-like string for display. Rules are evaluated in
// order, first match wins:
//
//  1. empty input or the literal "Present" -> "Present"
//  2. "YYYY"        -> unchanged
//  3. "YYYY-MM"     -> "Mon YYYY" (month must be 1..12, else falls through)
//  4. "YYYY-MM-DD"  -> "Mon YYYY" (day dropped)
//  5. anything else -> generic parse to "Mon YYYY", or the input unchanged
//
// It never fails: unparseable input comes back verbatim.
func FormatDate(input string) string {
	if input == "" || input == "Present" {
		return "Present"
	}

	if isYear(input) {
		return input
	}

	if year, month, ok := splitYearMonth(input); ok {
		return fmt.Sprintf("%s %s", monthAbbrevs[month-1], year)
	}

	if t, err := time.ParseInLocation("2006-01-02", input, time.Local); err == nil {
		return fmt.Sprintf("%s %d", monthAbbrevs[t.Month()-1], t.Year())
	}

	for _, layout := range genericLayouts {
		if t, err := time.ParseInLocation(layout, input, time.Local); err == nil {
			return fmt.Sprintf("%s %d", monthAbbrevs[t.Month()-1], t.Year())
		}
	}
	return input
}

func isYear(s string) bool {
	if len(s) != 4 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// splitYearMonth matches the exact "YYYY-MM" shape with a month in [1,12].
// Out-of-range months fall through to generic parsing.
func splitYearMonth(s string) (year string, month int, ok bool) {
	if len(s) != 7 || s[4] != '-' {
		return "", 0, false
	}
	if !isYear(s[:4]) {
		return "", 0, false
	}
	m, err := strconv.Atoi(s[5:])
	if err != nil || m < 1 || m > 12 {
		return "", 0, false
	}
	return s[:4], m, true
}

// Built-in palette used when settings.colors omits a field.
const (
	DefaultPrimaryColor   = "#2563eb"
	DefaultSecondaryColor = "#64748b"
	DefaultAccentColor    = "#f59e0b"
)

// ColorStyleBlock produces the <style> fragment injected as
// {{{customColorStyles}}}. A nil colors config yields an empty fragment, so
// the theme stylesheet's own defaults stay in effect.
func ColorStyleBlock(colors *resume.Colors) string {
	if colors == nil {
		return ""
	}

	primary := colors.Primary
	if primary == "" {
		primary = DefaultPrimaryColor
	}
	secondary := colors.Secondary
	if secondary == "" {
		secondary = DefaultSecondaryColor
	}
	accent := colors.Accent
	if accent == "" {
		accent = DefaultAccentColor
	}

	var sb strings.Builder
	sb.WriteString("<style>\n:root {\n")
	fmt.Fprintf(&sb, "  --color-primary: %s;\n", primary)
	fmt.Fprintf(&sb, "  --color-secondary: %s;\n", secondary)
	fmt.Fprintf(&sb, "  --color-accent: %s;\n", accent)
	sb.WriteString("}\n</style>")
	return sb.String()
}
