package site

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/natefinch/atomic"

	"github.com/vitaforge/vitae/internal/resume"
)

// PlaceholderDomain is used for sitemap/robots URLs when no canonical URL is
// configured.
const PlaceholderDomain = "https://example.com"

// CanonicalURL returns the configured canonical URL or the placeholder,
// without a trailing slash.
func CanonicalURL(cfg *resume.Config) string {
	url := strings.TrimSpace(cfg.Settings.SEO.CanonicalURL)
	if url == "" {
		url = PlaceholderDomain
	}
	return strings.TrimRight(url, "/")
}

// Sitemap renders a single-URL sitemap document. The page never changes
// shape, so change frequency and priority are fixed.
func Sitemap(cfg *resume.Config, buildTime time.Time) string {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	sb.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">` + "\n")
	sb.WriteString("  <url>\n")
	fmt.Fprintf(&sb, "    <loc>%s/</loc>\n", CanonicalURL(cfg))
	fmt.Fprintf(&sb, "    <lastmod>%s</lastmod>\n", buildTime.Format("2006-01-02"))
	sb.WriteString("    <changefreq>monthly</changefreq>\n")
	sb.WriteString("    <priority>1.0</priority>\n")
	sb.WriteString("  </url>\n")
	sb.WriteString("</urlset>\n")
	return sb.String()
}

// Robots renders an allow-all robots policy pointing at the sitemap.
func Robots(cfg *resume.Config) string {
	var sb strings.Builder
	sb.WriteString("User-agent: *\n")
	sb.WriteString("Allow: /\n\n")
	fmt.Fprintf(&sb, "Sitemap: %s/sitemap.xml\n", CanonicalURL(cfg))
	return sb.String()
}

// WriteDomainPointer maintains the CNAME pointer file in outputDir. A
// configured domain is written verbatim; when no domain is configured a
// leftover pointer from a prior build is removed so the output tree never
// carries a stale custom-domain declaration.
func WriteDomainPointer(outputDir string, cfg *resume.Config) (wrote bool, err error) {
	path := filepath.Join(outputDir, "CNAME")
	domain := strings.TrimSpace(cfg.Settings.CustomDomain)

	if domain == "" {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return false, fmt.Errorf("removing stale CNAME: %w", err)
		}
		return false, nil
	}

	if err := atomic.WriteFile(path, strings.NewReader(domain)); err != nil {
		return false, fmt.Errorf("writing CNAME: %w", err)
	}
	return true, nil
}
