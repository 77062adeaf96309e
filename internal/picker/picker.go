// Package picker is a one-shot selector for project search results.
package picker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/nikbrunner/folio/internal/model"
	"github.com/nikbrunner/folio/internal/search"
)

var (
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	matchStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Underline(true)

	detailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Italic(true)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("99")).
			Bold(true).
			MarginBottom(1)
)

// keyMap binds the picker's keys.
type keyMap struct {
	Down   key.Binding
	Up     key.Binding
	Open   key.Binding
	Cancel key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Down:   key.NewBinding(key.WithKeys("j", "down", "ctrl+n")),
		Up:     key.NewBinding(key.WithKeys("k", "up", "ctrl+p")),
		Open:   key.NewBinding(key.WithKeys("enter")),
		Cancel: key.NewBinding(key.WithKeys("q", "esc", "ctrl+c")),
	}
}

// Picker lists project search results and returns the chosen one.
type Picker struct {
	results   []search.SearchResult
	query     string
	keys      keyMap
	cursor    int
	selected  bool
	cancelled bool
}

// New creates a Picker over results.
func New(results []search.SearchResult, query string) Picker {
	return Picker{
		results: results,
		query:   query,
		keys:    defaultKeyMap(),
	}
}

// Init implements tea.Model.
func (p Picker) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	switch {
	case key.Matches(keyMsg, p.keys.Cancel):
		p.cancelled = true
		return p, tea.Quit
	case key.Matches(keyMsg, p.keys.Open):
		p.selected = len(p.results) > 0
		return p, tea.Quit
	case key.Matches(keyMsg, p.keys.Down):
		p.cursor = min(p.cursor+1, max(len(p.results)-1, 0))
	case key.Matches(keyMsg, p.keys.Up):
		p.cursor = max(p.cursor-1, 0)
	}
	return p, nil
}

// View implements tea.Model.
func (p Picker) View() string {
	lines := []string{
		headerStyle.Render(fmt.Sprintf("Search: %s (%d results)", p.query, len(p.results))),
		"",
	}
	for i, result := range p.results {
		lines = append(lines, p.renderResult(result, i == p.cursor)...)
	}
	lines = append(lines, "", detailStyle.Render("j/k: move  enter: open  q/esc: cancel"))
	return strings.Join(lines, "\n")
}

// renderResult renders a result as its highlighted title over its link and tags.
func (p Picker) renderResult(r search.SearchResult, current bool) []string {
	marker, style := "  ", normalStyle
	if current {
		marker, style = "> ", selectedStyle
	}

	var detail []string
	if link := r.Project.Link(); link != "" {
		detail = append(detail, link)
	}
	if len(r.Project.Tags) > 0 {
		detail = append(detail, "#"+strings.Join(r.Project.Tags, " #"))
	}

	return []string{
		marker + highlight(r.Project.Title, r.MatchedIndexes, style),
		"   " + detailStyle.Render(strings.Join(detail, "  ")),
	}
}

// highlight renders title with the fuzzy-matched characters emphasised.
func highlight(title string, matched []int, base lipgloss.Style) string {
	if len(matched) == 0 {
		return base.Render(title)
	}
	isMatch := make(map[int]bool, len(matched))
	for _, idx := range matched {
		isMatch[idx] = true
	}

	var b strings.Builder
	for i, r := range title {
		if isMatch[i] {
			b.WriteString(matchStyle.Inherit(base).Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}
	return b.String()
}

// SelectedProject returns the selected project, or nil if cancelled.
func (p Picker) SelectedProject() *model.Project {
	if p.cancelled || !p.selected {
		return nil
	}
	return p.results[p.cursor].Project
}

// Cancelled returns true if the user cancelled the selection.
func (p Picker) Cancelled() bool {
	return p.cancelled
}
