// Package importer reads portfolio content out of rendered site HTML.
package importer

import (
	"io"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/nikbrunner/folio/internal/model"
)

// ParseProjects parses portfolio HTML and returns one project per .project-card.
// Relative links are resolved against base, which may be empty.
func ParseProjects(r io.Reader, base string) ([]model.Project, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	baseURL, err := url.Parse(base)
	if err != nil {
		return nil, err
	}

	var projects []model.Project
	doc.Find(".project-card").Each(func(_ int, card *goquery.Selection) {
		title := first(card.Find("h3"))
		if title == "" {
			// Skip cards without a title
			return
		}

		p := model.Project{
			ID:          model.GenerateUUID(),
			Title:       title,
			Summary:     first(card.Find("p")),
			Description: first(card.Find(".project-description")),
			CreatedAt:   time.Now(),
		}

		var tags []string
		card.Find(".tag").Each(func(_ int, tag *goquery.Selection) {
			tags = append(tags, condense(tag.Text()))
		})
		p.Tags = model.NormalizeTags(tags)

		// Prefer explicit link classes, fall back to the first anchor.
		link := card.Find("a.project-link[href]")
		if link.Length() == 0 {
			link = card.Find("a[href]").Not(".project-repo")
		}
		p.URL = href(link, baseURL)
		p.Repo = href(card.Find("a.project-repo[href]"), baseURL)

		if year, ok := card.Attr("data-year"); ok {
			if n, err := strconv.Atoi(year); err == nil {
				p.Year = n
			}
		}
		if featured, ok := card.Attr("data-featured"); ok {
			p.Featured, _ = strconv.ParseBool(featured)
		}

		projects = append(projects, p)
	})

	return projects, nil
}

// ParseContact parses a contact page and returns the profile fields it shows:
// the email (data-email attribute or the element text) and the external links.
func ParseContact(r io.Reader) (model.Profile, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return model.Profile{}, err
	}

	var profile model.Profile

	emailCard := doc.Find(".contact-card-email .contact-value").First()
	if emailCard.Length() == 0 {
		emailCard = doc.Find("[data-email]").First()
	}
	if email, ok := emailCard.Attr("data-email"); ok && email != "" {
		profile.Email = strings.TrimSpace(email)
	} else {
		profile.Email = condense(emailCard.Text())
	}

	doc.Find(".contact-card a[href]").Each(func(_ int, a *goquery.Selection) {
		u, _ := a.Attr("href")
		if u == "" || strings.HasPrefix(u, "mailto:") {
			return
		}
		label := condense(a.Text())
		if label == "" {
			label = u
		}
		profile.Links = append(profile.Links, model.Link{Label: label, URL: u})
	})

	return profile, nil
}

func first(sel *goquery.Selection) string {
	if sel.Length() == 0 {
		return ""
	}
	return condense(sel.First().Text())
}

func href(sel *goquery.Selection, base *url.URL) string {
	if sel.Length() == 0 {
		return ""
	}
	ref, _ := sel.First().Attr("href")
	if ref == "" {
		return ""
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return base.ResolveReference(u).String()
}

// condense collapses runs of whitespace into single spaces.
func condense(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
