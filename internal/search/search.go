// Package search filters portfolio projects by tag and fuzzy text.
package search

import (
	"strings"

	"github.com/nikbrunner/folio/internal/model"
	"github.com/sahilm/fuzzy"
)

// SearchResult represents a fuzzy search match.
type SearchResult struct {
	Project        *model.Project
	MatchedIndexes []int
	Score          int
}

// projectTitles implements fuzzy.Source for a project slice.
type projectTitles []*model.Project

func (pt projectTitles) String(i int) string {
	return pt[i].Title
}

func (pt projectTitles) Len() int {
	return len(pt)
}

// FuzzySearchProjects searches all projects by title using fuzzy matching.
// Returns results sorted by match score (best first).
func FuzzySearchProjects(catalog *model.Catalog, query string) []SearchResult {
	if query == "" {
		return nil
	}

	projects := make(projectTitles, len(catalog.Projects))
	for i := range catalog.Projects {
		projects[i] = &catalog.Projects[i]
	}

	matches := fuzzy.FindFrom(query, projects)

	results := make([]SearchResult, len(matches))
	for i, m := range matches {
		results[i] = SearchResult{
			Project:        projects[m.Index],
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}

	return results
}

// Criteria narrows the gallery. Zero value matches everything.
type Criteria struct {
	Tag   string
	Query string
}

// IsZero reports whether c filters nothing out.
func (c Criteria) IsZero() bool {
	return c.Tag == "" && strings.TrimSpace(c.Query) == ""
}

// haystacks implements fuzzy.Source over title, tags and summary.
type haystacks []string

func (h haystacks) String(i int) string { return h[i] }
func (h haystacks) Len() int            { return len(h) }

// Visible returns one flag per project: true when it matches the tag (if
// set) and fuzzily matches the query (if set).
func Visible(projects []model.Project, c Criteria) []bool {
	mask := make([]bool, len(projects))
	query := strings.TrimSpace(c.Query)

	var text haystacks
	var index []int
	for i, p := range projects {
		if c.Tag != "" && !p.HasTag(c.Tag) {
			continue
		}
		if query == "" {
			mask[i] = true
			continue
		}
		text = append(text, p.Title+" "+strings.Join(p.Tags, " ")+" "+p.Summary)
		index = append(index, i)
	}

	if query != "" {
		for _, m := range fuzzy.FindFrom(query, text) {
			mask[index[m.Index]] = true
		}
	}

	return mask
}

// Count returns the number of true entries in mask.
func Count(mask []bool) int {
	n := 0
	for _, v := range mask {
		if v {
			n++
		}
	}
	return n
}
