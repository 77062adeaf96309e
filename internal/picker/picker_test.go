package picker

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/nikbrunner/folio/internal/model"
	"github.com/nikbrunner/folio/internal/search"
	"gotest.tools/v3/assert"
)

func testResults() []search.SearchResult {
	return []search.SearchResult{
		{Project: &model.Project{ID: "p1", Title: "Weather", URL: "https://weather.example.com", Tags: []string{"go"}}, MatchedIndexes: []int{0}},
		{Project: &model.Project{ID: "p2", Title: "Wiki", Repo: "https://github.com/jack/wiki"}, MatchedIndexes: []int{0}},
	}
}

func update(p Picker, msg tea.Msg) (Picker, tea.Cmd) {
	m, cmd := p.Update(msg)
	return m.(Picker), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestPicker_InitialState(t *testing.T) {
	p := New(testResults(), "w")

	assert.Equal(t, p.cursor, 0)
	assert.Equal(t, len(p.results), 2)
}

func TestPicker_Navigate(t *testing.T) {
	p := New(testResults(), "w")

	p, _ = update(p, runes("j"))
	assert.Equal(t, p.cursor, 1)

	// Stays at last
	p, _ = update(p, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, p.cursor, 1)

	p, _ = update(p, runes("k"))
	assert.Equal(t, p.cursor, 0)

	// Stays at first
	p, _ = update(p, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, p.cursor, 0)
}

func TestPicker_Select(t *testing.T) {
	p := New(testResults(), "w")
	p, _ = update(p, runes("j"))

	p, cmd := update(p, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Assert(t, cmd != nil)

	selected := p.SelectedProject()
	assert.Assert(t, selected != nil)
	assert.Equal(t, selected.ID, "p2")
	assert.Assert(t, !p.Cancelled())
}

func TestPicker_Cancel(t *testing.T) {
	for _, msg := range []tea.Msg{tea.KeyMsg{Type: tea.KeyEsc}, runes("q")} {
		p := New(testResults(), "w")
		p, cmd := update(p, msg)

		assert.Assert(t, cmd != nil)
		assert.Assert(t, p.Cancelled())
		assert.Assert(t, p.SelectedProject() == nil)
	}
}

func TestPicker_NotSelectedYet(t *testing.T) {
	p := New(testResults(), "w")
	assert.Assert(t, p.SelectedProject() == nil)
}

func TestPicker_View(t *testing.T) {
	p := New(testResults(), "w")
	view := ansi.Strip(p.View())

	assert.Assert(t, strings.Contains(view, "Search: w (2 results)"))
	assert.Assert(t, strings.Contains(view, "> Weather"))
	assert.Assert(t, strings.Contains(view, "https://weather.example.com  #go"))
	// Repo is used when the project has no URL
	assert.Assert(t, strings.Contains(view, "https://github.com/jack/wiki"))
}

func TestPicker_EmacsKeys(t *testing.T) {
	p := New(testResults(), "w")

	p, _ = update(p, tea.KeyMsg{Type: tea.KeyCtrlN})
	assert.Equal(t, p.cursor, 1)

	p, _ = update(p, tea.KeyMsg{Type: tea.KeyCtrlP})
	assert.Equal(t, p.cursor, 0)
}

func TestPicker_EnterWithoutResults(t *testing.T) {
	p := New(nil, "zzz")

	p, _ = update(p, runes("j"))
	assert.Equal(t, p.cursor, 0)

	p, cmd := update(p, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Assert(t, cmd != nil)
	assert.Assert(t, p.SelectedProject() == nil)
	assert.Assert(t, !p.Cancelled())
}
