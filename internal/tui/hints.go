package tui

import (
	"strings"

	"github.com/nikbrunner/folio/internal/transition"
)

// Hint represents a single keybind hint for display.
type Hint struct {
	Key  string // Display key (e.g., "h/l", "enter")
	Desc string // Short description (e.g., "page", "flip")
}

// renderHint renders a single hint as "key:desc" with styling.
func (a App) renderHint(h Hint) string {
	return a.styles.HintKey.Render(h.Key) + ":" + a.styles.HintDesc.Render(h.Desc)
}

// renderHints renders hints in horizontal format for bottom bar: "h/l:page H/L:card enter:flip"
func (a App) renderHints(hints HintSet) string {
	allHints := hints.All()
	if len(allHints) == 0 {
		return ""
	}

	parts := make([]string, len(allHints))
	for i, h := range allHints {
		parts[i] = a.renderHint(h)
	}
	return strings.Join(parts, " ")
}

// renderHintsInline renders hints in inline format for overlays: "?/esc close  q quit"
func (a App) renderHintsInline(hints []Hint) string {
	if len(hints) == 0 {
		return ""
	}

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = a.styles.HintKey.Render(h.Key) + " " + a.styles.HintDesc.Render(h.Desc)
	}
	return strings.Join(parts, "  ")
}

// HintSet is an ordered collection of hints by group.
type HintSet struct {
	Nav    []Hint // Navigation hints (h/l, H/L, etc.)
	Action []Hint // Action hints (enter, o, y, etc.)
	System []Hint // System hints (?, q, tab)
}

// All returns all hints flattened in display order: Nav + Action + System.
func (h HintSet) All() []Hint {
	result := make([]Hint, 0, len(h.Nav)+len(h.Action)+len(h.System))
	result = append(result, h.Nav...)
	result = append(result, h.Action...)
	result = append(result, h.System...)
	return result
}

// getContextualHints returns the appropriate hints for the current mode and page.
func (a App) getContextualHints() HintSet {
	switch a.mode {
	case ModeFilter:
		return a.getFilterModeHints()
	case ModeHelp:
		return HintSet{
			System: []Hint{{Key: "?/esc", Desc: "close"}},
		}
	}

	if a.nav.active != nil {
		return HintSet{}
	}

	switch a.nav.route {
	case transition.Projects:
		return a.getProjectsHints()
	case transition.About:
		return a.getAboutHints()
	case transition.Contact:
		return a.getContactHints()
	default:
		return HintSet{}
	}
}

func systemHints() []Hint {
	return []Hint{
		{Key: "tab", Desc: "page"},
		{Key: "?", Desc: "help"},
		{Key: "q", Desc: "quit"},
	}
}

// getProjectsHints returns hints for the gallery.
func (a App) getProjectsHints() HintSet {
	hints := HintSet{
		Nav: []Hint{
			{Key: "h/l", Desc: "page"},
			{Key: "H/L", Desc: "card"},
		},
		Action: []Hint{
			{Key: "enter", Desc: "flip"},
			{Key: "o", Desc: "open"},
			{Key: "y", Desc: "yank"},
			{Key: "/", Desc: "filter"},
			{Key: "t", Desc: "tag"},
		},
		System: systemHints(),
	}
	if summary := filterSummary(a.gallery.criteria); summary != "" {
		hints.Action = append(hints.Action, Hint{Key: "esc", Desc: "clear " + summary})
	}
	return hints
}

// getAboutHints returns hints for the about page.
func (a App) getAboutHints() HintSet {
	return HintSet{
		Nav: []Hint{
			{Key: "j/k", Desc: "scroll"},
		},
		System: systemHints(),
	}
}

// getContactHints returns hints for the contact page.
func (a App) getContactHints() HintSet {
	return HintSet{
		Action: []Hint{
			{Key: "c", Desc: "copy email"},
		},
		System: systemHints(),
	}
}

// getFilterModeHints returns hints for ModeFilter (free-text filter active).
func (a App) getFilterModeHints() HintSet {
	return HintSet{
		Nav: []Hint{
			{Key: "type", Desc: "filter"},
		},
		Action: []Hint{
			{Key: "enter", Desc: "apply"},
		},
		System: []Hint{
			{Key: "esc", Desc: "clear"},
		},
	}
}
