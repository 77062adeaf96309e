package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds all lipgloss styles for the TUI.
type Styles struct {
	App            lipgloss.Style
	Title          lipgloss.Style
	Tab            lipgloss.Style
	TabActive      lipgloss.Style
	Headline       lipgloss.Style
	Card           lipgloss.Style
	CardFocused    lipgloss.Style
	CardTitle      lipgloss.Style
	CardBack       lipgloss.Style
	URL            lipgloss.Style
	Tag            lipgloss.Style
	TagActive      lipgloss.Style
	Date           lipgloss.Style
	Button         lipgloss.Style
	ButtonDisabled lipgloss.Style
	Dot            lipgloss.Style
	DotActive      lipgloss.Style
	Label          lipgloss.Style
	Copied         lipgloss.Style
	Help           lipgloss.Style
	Empty          lipgloss.Style
	HintKey        lipgloss.Style // Key portion of hints (e.g., "h/l", "enter")
	HintDesc       lipgloss.Style // Description portion of hints (e.g., "page", "flip")
}

// DefaultStyles returns the default style configuration.
// Industrial design: grayscale with single desaturated teal accent.
func DefaultStyles() Styles {
	primary := lipgloss.AdaptiveColor{Light: "#505050", Dark: "#A0A0A0"} // main text
	subtle := lipgloss.AdaptiveColor{Light: "#888888", Dark: "#606060"}  // secondary text
	accent := lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}  // desaturated teal
	border := lipgloss.AdaptiveColor{Light: "#888888", Dark: "#505050"}  // inactive borders

	return Styles{
		App: lipgloss.NewStyle().
			PaddingTop(1).
			PaddingLeft(2).
			PaddingRight(2),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),

		Tab: lipgloss.NewStyle().
			Foreground(subtle),

		TabActive: lipgloss.NewStyle().
			Bold(true).
			Underline(true).
			Foreground(accent),

		Headline: lipgloss.NewStyle().
			Foreground(subtle),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1),

		CardFocused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1),

		CardTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary),

		CardBack: lipgloss.NewStyle().
			Foreground(primary),

		URL: lipgloss.NewStyle().
			Foreground(accent).
			Underline(true),

		Tag: lipgloss.NewStyle().
			Foreground(subtle),

		TagActive: lipgloss.NewStyle().
			Background(accent).
			Foreground(lipgloss.Color("#1A1A1A")),

		Date: lipgloss.NewStyle().
			Foreground(subtle),

		Button: lipgloss.NewStyle().
			Foreground(accent),

		ButtonDisabled: lipgloss.NewStyle().
			Foreground(border),

		Dot: lipgloss.NewStyle().
			Foreground(subtle),

		DotActive: lipgloss.NewStyle().
			Foreground(accent),

		Label: lipgloss.NewStyle().
			Foreground(subtle).
			Width(8),

		Copied: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#338833", Dark: "#66CC66"}),

		Help: lipgloss.NewStyle().
			Foreground(subtle).
			Padding(1, 0),

		Empty: lipgloss.NewStyle().
			Foreground(subtle),

		HintKey: lipgloss.NewStyle().
			Foreground(subtle),

		HintDesc: lipgloss.NewStyle().
			Foreground(subtle),
	}
}
