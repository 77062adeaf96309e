package model

import (
	"strings"
	"time"
)

// Project is one card in the portfolio gallery.
type Project struct {
	ID          string    `json:"id" yaml:"id" validate:"required,uuid"`
	Title       string    `json:"title" yaml:"title" validate:"required"`
	Summary     string    `json:"summary" yaml:"summary"`
	Description string    `json:"description" yaml:"description"`
	URL         string    `json:"url" yaml:"url" validate:"omitempty,url"`
	Repo        string    `json:"repo" yaml:"repo" validate:"omitempty,url"`
	Tags        []string  `json:"tags" yaml:"tags"`
	Year        int       `json:"year" yaml:"year" validate:"omitempty,gte=1970,lte=2100"`
	Featured    bool      `json:"featured" yaml:"featured"`
	CreatedAt   time.Time `json:"createdAt" yaml:"createdAt"`
}

// NewProjectParams holds parameters for creating a new Project.
type NewProjectParams struct {
	Title   string
	Summary string
	URL     string
	Tags    []string
}

// NewProject creates a Project with generated UUID and timestamp.
func NewProject(params NewProjectParams) Project {
	return Project{
		ID:        GenerateUUID(),
		Title:     params.Title,
		Summary:   params.Summary,
		URL:       params.URL,
		Tags:      NormalizeTags(params.Tags),
		CreatedAt: time.Now(),
	}
}

// HasTag reports whether the project carries tag, ignoring case.
func (p Project) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// Link returns the project's primary link: its URL, or the repo if it has none.
func (p Project) Link() string {
	if p.URL != "" {
		return p.URL
	}
	return p.Repo
}

// NormalizeTags lowercases, trims and dedupes tags, keeping first-seen order.
// Never returns nil.
func NormalizeTags(tags []string) []string {
	out := []string{}
	seen := make(map[string]bool)
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
