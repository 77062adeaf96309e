// Package exporter writes the catalog out as a static page or a spreadsheet.
package exporter

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nikbrunner/folio/internal/model"
)

// DefaultExportPath returns the default export file path for format.
// Format: ~/Downloads/portfolio-export-YYYY-MM-DD.<format>
func DefaultExportPath(format string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("portfolio-export-%s.%s", time.Now().Format("2006-01-02"), format)
	return filepath.Join(home, "Downloads", filename), nil
}

// ExportHTML renders the catalog as a static portfolio page. Project cards
// use the same markup importer.ParseProjects reads.
func ExportHTML(catalog *model.Catalog) string {
	var b strings.Builder

	title := catalog.Profile.Name
	if title == "" {
		title = "Portfolio"
	}

	// Header
	b.WriteString("<!DOCTYPE html>\n")
	b.WriteString("<html lang=\"en\">\n<head>\n")
	b.WriteString("<meta charset=\"UTF-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(title))
	b.WriteString("</head>\n<body>\n")
	b.WriteString("<main class=\"main-content\">\n")
	b.WriteString("<div class=\"main-content-inner\" id=\"mainContentInner\">\n")

	writeProfile(&b, catalog.Profile)

	b.WriteString("<section class=\"projects-section\">\n")
	b.WriteString("<div class=\"projects-gallery\" id=\"projectsGallery\">\n")
	for _, p := range catalog.Ordered() {
		writeProject(&b, p)
	}
	b.WriteString("</div>\n")
	b.WriteString("<div class=\"gallery-indicators\" id=\"galleryIndicators\"></div>\n")
	b.WriteString("</section>\n")

	writeContact(&b, catalog.Profile)

	// Footer
	b.WriteString("</div>\n</main>\n</body>\n</html>\n")

	return b.String()
}

func writeProfile(b *strings.Builder, p model.Profile) {
	if p.Name == "" && p.Headline == "" && p.About == "" {
		return
	}
	b.WriteString("<header class=\"profile\">\n")
	if p.Name != "" {
		fmt.Fprintf(b, "    <h1>%s</h1>\n", html.EscapeString(p.Name))
	}
	if p.Headline != "" {
		fmt.Fprintf(b, "    <h2 class=\"headline\">%s</h2>\n", html.EscapeString(p.Headline))
	}
	for _, para := range strings.Split(p.About, "\n\n") {
		if para = strings.TrimSpace(para); para != "" {
			fmt.Fprintf(b, "    <div class=\"about\">%s</div>\n", html.EscapeString(para))
		}
	}
	b.WriteString("</header>\n")
}

func writeProject(b *strings.Builder, p model.Project) {
	attrs := ""
	if p.Year > 0 {
		attrs += fmt.Sprintf(" data-year=\"%d\"", p.Year)
	}
	if p.Featured {
		attrs += " data-featured=\"true\""
	}

	fmt.Fprintf(b, "    <article class=\"project-card\"%s>\n", attrs)
	fmt.Fprintf(b, "        <h3>%s</h3>\n", html.EscapeString(p.Title))
	if p.Summary != "" {
		fmt.Fprintf(b, "        <p>%s</p>\n", html.EscapeString(p.Summary))
	}
	if p.Description != "" {
		fmt.Fprintf(b, "        <div class=\"project-description\">%s</div>\n", html.EscapeString(p.Description))
	}
	if len(p.Tags) > 0 {
		b.WriteString("        <div class=\"project-tags\">")
		for _, tag := range p.Tags {
			fmt.Fprintf(b, "<span class=\"tag\">%s</span>", html.EscapeString(tag))
		}
		b.WriteString("</div>\n")
	}
	if p.URL != "" {
		fmt.Fprintf(b, "        <a class=\"project-link\" href=\"%s\">Visit</a>\n", html.EscapeString(p.URL))
	}
	if p.Repo != "" {
		fmt.Fprintf(b, "        <a class=\"project-repo\" href=\"%s\">Source</a>\n", html.EscapeString(p.Repo))
	}
	b.WriteString("    </article>\n")
}

func writeContact(b *strings.Builder, p model.Profile) {
	if p.Email == "" && len(p.Links) == 0 {
		return
	}
	b.WriteString("<section class=\"contact\">\n")
	if p.Email != "" {
		email := html.EscapeString(p.Email)
		b.WriteString("    <div class=\"contact-card contact-card-email\">\n")
		fmt.Fprintf(b, "        <span class=\"contact-value\" data-email=\"%s\">%s</span>\n", email, email)
		b.WriteString("    </div>\n")
	}
	for _, l := range p.Links {
		fmt.Fprintf(b, "    <div class=\"contact-card\"><a href=\"%s\">%s</a></div>\n",
			html.EscapeString(l.URL), html.EscapeString(l.Label))
	}
	b.WriteString("</section>\n")
}
