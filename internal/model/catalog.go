package model

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nikbrunner/folio/internal/validate"
)

// Catalog holds the portfolio content: the owner's profile and the projects.
type Catalog struct {
	Profile  Profile   `json:"profile" yaml:"profile"`
	Projects []Project `json:"projects" yaml:"projects"`
}

// NewCatalog creates an empty Catalog with initialized slices.
func NewCatalog() *Catalog {
	return &Catalog{
		Projects: []Project{},
	}
}

// ProjectByID finds a project by ID, returns nil if not found.
func (c *Catalog) ProjectByID(id string) *Project {
	for i := range c.Projects {
		if c.Projects[i].ID == id {
			return &c.Projects[i]
		}
	}
	return nil
}

// HasProjectURL reports whether a project with the given URL exists.
func (c *Catalog) HasProjectURL(url string) bool {
	if url == "" {
		return false
	}
	for _, p := range c.Projects {
		if p.URL == url {
			return true
		}
	}
	return false
}

// hasProjectTitle reports whether a project with the given title exists, ignoring case.
func (c *Catalog) hasProjectTitle(title string) bool {
	for _, p := range c.Projects {
		if strings.EqualFold(p.Title, title) {
			return true
		}
	}
	return false
}

// Tags returns all tags used by projects, lowercased, unique and sorted.
func (c *Catalog) Tags() []string {
	seen := make(map[string]bool)
	var tags []string
	for _, p := range c.Projects {
		for _, t := range NormalizeTags(p.Tags) {
			if !seen[t] {
				seen[t] = true
				tags = append(tags, t)
			}
		}
	}
	sort.Strings(tags)
	return tags
}

// Ordered returns the projects in gallery order: featured first, then newest
// year first. Projects that compare equal keep catalog order.
func (c *Catalog) Ordered() []Project {
	out := make([]Project, len(c.Projects))
	copy(out, c.Projects)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Featured != out[j].Featured {
			return out[i].Featured
		}
		return out[i].Year > out[j].Year
	})
	return out
}

// ImportMerge adds projects that are not already in the catalog. A project is
// a duplicate when its URL matches, or, for projects without a URL, when its
// title matches ignoring case. Returns the number added and skipped.
func (c *Catalog) ImportMerge(projects []Project) (added, skipped int) {
	for _, p := range projects {
		duplicate := c.HasProjectURL(p.URL)
		if p.URL == "" {
			duplicate = c.hasProjectTitle(p.Title)
		}
		if duplicate {
			skipped++
			continue
		}
		if p.ID == "" {
			p.ID = GenerateUUID()
		}
		p.Tags = NormalizeTags(p.Tags)
		c.Projects = append(c.Projects, p)
		added++
	}
	return added, skipped
}

// MergeProfile fills empty profile fields from other.
func (c *Catalog) MergeProfile(other Profile) {
	if c.Profile.Name == "" {
		c.Profile.Name = other.Name
	}
	if c.Profile.Headline == "" {
		c.Profile.Headline = other.Headline
	}
	if c.Profile.About == "" {
		c.Profile.About = other.About
	}
	if c.Profile.Email == "" {
		c.Profile.Email = other.Email
	}
	if len(c.Profile.Links) == 0 {
		c.Profile.Links = other.Links
	}
}

// Validate checks the profile and every project.
func (c *Catalog) Validate() error {
	if err := validate.Struct(c.Profile); err != nil {
		return fmt.Errorf("profile: %w", err)
	}
	ids := make(map[string]bool)
	for _, p := range c.Projects {
		if err := validate.Struct(p); err != nil {
			return fmt.Errorf("project %q: %w", p.Title, err)
		}
		if ids[p.ID] {
			return fmt.Errorf("project %q: duplicate id %s", p.Title, p.ID)
		}
		ids[p.ID] = true
	}
	return nil
}
