package tui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/nikbrunner/folio/internal/model"
	"github.com/nikbrunner/folio/internal/search"
	"github.com/nikbrunner/folio/internal/transition"
	"github.com/nikbrunner/folio/internal/tui/layout"
)

const (
	tabSeparatorWidth  = 2
	controlButtonWidth = 6
	contactEmailRow    = 2 // page-relative row of the email line
)

func routeLabels() []string {
	routes := transition.Routes()
	labels := make([]string, len(routes))
	for i, r := range routes {
		labels[i] = r.String()
	}
	return labels
}

// wrapText word-wraps s to width columns.
func wrapText(s string, width int) string {
	if width <= 0 {
		return s
	}
	return ansi.Wrap(s, width, "")
}

// fitBlock cuts or pads s to exactly width x height cells.
func fitBlock(s string, width, height int) string {
	lines := strings.Split(s, "\n")
	out := make([]string, height)
	for i := range out {
		var line string
		if i < len(lines) {
			line = lines[i]
		}
		out[i] = layout.Window(line, 0, width)
	}
	return strings.Join(out, "\n")
}

// renderView creates the complete view: header, active page, help bar.
func (a App) renderView() string {
	if a.mode == ModeHelp {
		return a.renderHelpOverlay()
	}

	page := layout.CalculatePage(a.width, a.height, a.layoutConfig)

	content := a.styles.App.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			a.renderHeader(page.Width),
			a.renderBody(page),
			a.renderHelpBar(page.Width),
		),
	)

	// Use Place to ensure exact terminal dimensions and prevent overflow
	return lipgloss.Place(a.width, a.height, lipgloss.Left, lipgloss.Top, content)
}

// renderHeader renders the nav tabs with the owner's name on the right, and
// the headline below.
func (a App) renderHeader(width int) string {
	var tabs []string
	for i, label := range routeLabels() {
		style := a.styles.Tab
		if transition.Route(i) == a.nav.route {
			style = a.styles.TabActive
		}
		tabs = append(tabs, style.Render(label))
	}
	line := strings.Join(tabs, strings.Repeat(" ", tabSeparatorWidth))

	if name := a.catalog.Profile.Name; name != "" {
		gap := width - layout.VisibleLength(line) - layout.VisibleLength(name)
		if gap >= 2 {
			line += strings.Repeat(" ", gap) + a.styles.Title.Render(name)
		}
	}

	headline := layout.TruncateANSIAware(a.catalog.Profile.Headline, width, a.layoutConfig.Text)
	return line + "\n" + a.styles.Headline.Render(headline)
}

// renderBody renders the active page, or both pages sliding while a
// transition runs.
func (a App) renderBody(page layout.PageLayout) string {
	if t := a.nav.active; t != nil {
		current := a.renderPage(t.From, page)
		next := a.renderPage(t.To, page)
		offCurrent, offNext := t.Offsets(page.Width)
		return layout.Slide(current, next, page.Width, offCurrent, offNext)
	}
	return a.renderPage(a.nav.route, page)
}

func (a App) renderPage(route transition.Route, page layout.PageLayout) string {
	var s string
	switch route {
	case transition.Projects:
		s = a.renderProjects(page)
	case transition.About:
		s = a.renderAbout()
	case transition.Contact:
		s = a.renderContact(page.Width)
	}
	return fitBlock(s, page.Width, page.Height)
}

func (a App) renderProjects(page layout.PageLayout) string {
	gl := layout.CalculateGallery(a.width, a.height, a.layoutConfig)
	gc := a.layoutConfig.Gallery

	lines := []string{a.renderFilterBar(page.Width)}
	for i := 1; i < gc.FilterLines; i++ {
		lines = append(lines, "")
	}
	lines = append(lines, a.renderStrip(gl)...)
	for i := 0; i < gc.ControlsGap; i++ {
		lines = append(lines, "")
	}
	lines = append(lines, a.renderControls(page.Width))
	return strings.Join(lines, "\n")
}

// renderFilterBar renders the query, the tag chips and the page counter.
func (a App) renderFilterBar(width int) string {
	g := a.gallery

	var query string
	switch {
	case a.mode == ModeFilter:
		query = a.filterInput.View()
	case g.criteria.Query != "":
		query = "/ " + g.criteria.Query
	default:
		query = a.styles.Empty.Render("/ filter")
	}

	chips := []string{a.renderChip("all", g.criteria.Tag == "")}
	for _, tag := range g.tags {
		chips = append(chips, a.renderChip(tag, g.criteria.Tag == tag))
	}
	left := query + "   " + strings.Join(chips, " ")

	counter := a.styles.Date.Render(fmt.Sprintf("%d/%d · page %d/%d",
		len(g.visible), len(g.projects), g.engine.CurrentPage()+1, max(g.engine.TotalPages(), 1)))

	gap := width - layout.VisibleLength(left) - layout.VisibleLength(counter)
	if gap < 2 {
		return layout.TruncateANSIAware(left, width, a.layoutConfig.Text)
	}
	return left + strings.Repeat(" ", gap) + counter
}

func (a App) renderChip(label string, active bool) string {
	if active {
		return a.styles.TagActive.Render(label)
	}
	return a.styles.Tag.Render(label)
}

// renderStrip renders the visible cards laid out at inset + k*pitch and cut
// to the viewport at the current scroll offset.
func (a App) renderStrip(gl layout.GalleryLayout) []string {
	g := a.gallery
	gc := a.layoutConfig.Gallery
	rows := make([]string, gl.CardHeight)

	if len(g.visible) == 0 {
		msg := "No projects match the filter"
		if len(g.projects) == 0 {
			msg = "No projects yet"
		}
		rows[gl.CardHeight/2] = lipgloss.PlaceHorizontal(gl.Page.Width, lipgloss.Center, a.styles.Empty.Render(msg))
		return rows
	}

	focused := g.focused()
	cards := make([][]string, len(g.visible))
	for k := range g.visible {
		p := g.project(k)
		cards[k] = strings.Split(a.renderCard(*p, k == focused, g.flipped[p.ID], gc.CardWidth, gl.CardHeight), "\n")
	}

	offset := int(math.Round(g.viewport.ScrollOffset()))
	inset := strings.Repeat(" ", gc.Inset)
	gap := strings.Repeat(" ", gc.CardGap)

	for r := range rows {
		var b strings.Builder
		b.WriteString(inset)
		for k, card := range cards {
			if k > 0 {
				b.WriteString(gap)
			}
			var line string
			if r < len(card) {
				line = card[r]
			}
			b.WriteString(layout.PadRight(line, gc.CardWidth))
		}
		b.WriteString(inset)
		rows[r] = layout.Window(b.String(), offset, gl.Page.Width)
	}
	return rows
}

// renderCard renders one card. The front shows the summary and the link; the
// back shows the description and the repo. The last inner row is always the
// link row.
func (a App) renderCard(p model.Project, focused, flipped bool, width, height int) string {
	inner := max(width-4, 1)
	bodyRows := max(height-2, 3)
	cfg := a.layoutConfig.Text

	var top []string
	var bottom string
	if flipped {
		top = append(top, a.styles.CardTitle.Render("Details"), "")
		text := p.Description
		if text == "" {
			text = p.Summary
		}
		for _, line := range strings.Split(wrapText(text, inner), "\n") {
			top = append(top, a.styles.CardBack.Render(line))
		}
		if p.Repo != "" {
			bottom = a.styles.URL.Render(displayLink(p.Repo))
		}
	} else {
		top = append(top, a.styles.CardTitle.Render(p.Title))
		var meta []string
		if p.Year > 0 {
			meta = append(meta, strconv.Itoa(p.Year))
		}
		if p.Featured {
			meta = append(meta, "★ featured")
		}
		top = append(top, a.styles.Date.Render(strings.Join(meta, " · ")), "")
		top = append(top, strings.Split(wrapText(p.Summary, inner), "\n")...)
		if link := p.Link(); link != "" {
			bottom = a.styles.URL.Render("↗ " + displayLink(link))
		}
	}

	tags := make([]string, len(p.Tags))
	for i, t := range p.Tags {
		tags[i] = "#" + t
	}

	rows := make([]string, bodyRows)
	for i := 0; i < bodyRows-2 && i < len(top); i++ {
		rows[i] = top[i]
	}
	rows[bodyRows-2] = a.styles.Tag.Render(strings.Join(tags, " "))
	rows[bodyRows-1] = bottom
	for i, row := range rows {
		rows[i] = layout.PadRight(layout.TruncateANSIAware(row, inner, cfg), inner)
	}

	style := a.styles.Card
	if focused {
		style = a.styles.CardFocused
	}
	return style.Render(strings.Join(rows, "\n"))
}

// displayLink drops the scheme and trailing slash from a URL.
func displayLink(url string) string {
	url = strings.TrimPrefix(url, "https://")
	url = strings.TrimPrefix(url, "http://")
	return strings.TrimSuffix(url, "/")
}

// renderControls renders the prev button, the indicator dots and the next button.
func (a App) renderControls(width int) string {
	g := a.gallery
	c := layout.CalculateControls(0, width, g.dots.n, controlButtonWidth)

	dots := make([]string, g.dots.n)
	for i := range dots {
		if i == g.dots.active {
			dots[i] = a.styles.DotActive.Render("●")
		} else {
			dots[i] = a.styles.Dot.Render("○")
		}
	}
	dotStr := strings.Join(dots, " ")
	if room := c.NextStart - 1 - c.DotsStart; layout.VisibleLength(dotStr) > room {
		dotStr = layout.Window(dotStr, 0, max(room, 0))
	}

	line := a.renderButton("‹ prev", g.prev.disabled)
	line = layout.PadRight(line, c.DotsStart) + dotStr
	line = layout.PadRight(line, c.NextStart) + a.renderButton("next ›", g.next.disabled)
	return line
}

func (a App) renderButton(label string, disabled bool) string {
	if disabled {
		return a.styles.ButtonDisabled.Render(label)
	}
	return a.styles.Button.Render(label)
}

func (a App) renderAbout() string {
	title := a.styles.Title.Render("About")
	if a.about.loading {
		title += a.styles.Empty.Render(" · loading…")
	}
	if a.about.text() == "" {
		return title + "\n\n" + a.styles.Empty.Render("Nothing here yet")
	}
	return title + "\n\n" + a.about.vp.View()
}

func (a App) renderContact(width int) string {
	profile := a.catalog.Profile
	lines := []string{a.styles.Title.Render("Contact"), ""}

	if profile.Email == "" {
		lines = append(lines, a.styles.Empty.Render("No email configured"))
	} else {
		copyButton := a.styles.Button.Render("[ copy ]")
		if a.notify.copied {
			copyButton = a.styles.Copied.Render("[ copied ✓ ]")
		}
		lines = append(lines, a.styles.Label.Render("Email")+profile.Email+"  "+copyButton)
	}

	if len(profile.Links) > 0 {
		lines = append(lines, "")
		for _, link := range profile.Links {
			line := a.styles.Label.Render(link.Label) + a.styles.URL.Render(link.URL)
			lines = append(lines, layout.TruncateANSIAware(line, width, a.layoutConfig.Text))
		}
	}
	return strings.Join(lines, "\n")
}

func (a App) renderHelpBar(width int) string {
	var lines []string

	// Line 1: Empty spacer OR message (message replaces the gap)
	if a.notify.text != "" {
		lines = append(lines, a.renderMessageLine())
	} else {
		lines = append(lines, "")
	}

	// Line 2: contextual keyboard hints
	lines = append(lines, a.renderHints(a.getContextualHints()))

	for i, line := range lines {
		lines[i] = layout.TruncateANSIAware(line, width, a.layoutConfig.Text)
	}
	return strings.Join(lines, "\n")
}

// renderMessageLine renders the styled message with prefix icon based on type.
func (a App) renderMessageLine() string {
	var msgStyle lipgloss.Style
	var prefix string

	switch a.notify.kind {
	case MessageError:
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#CC3333", Dark: "#FF6666"}).
			Bold(true)
		prefix = "✗ "
	case MessageSuccess:
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#338833", Dark: "#66CC66"}).
			Bold(true)
		prefix = "✓ "
	default: // MessageInfo
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}).
			Bold(true)
	}

	return msgStyle.Render(prefix + a.notify.text)
}

// renderHelpOverlay renders the help overlay.
func (a App) renderHelpOverlay() string {
	// Brutalist style: no border, just raw columns
	modalStyle := lipgloss.NewStyle().
		Padding(1, 2)

	var left strings.Builder
	left.WriteString(a.styles.Title.Render("gallery") + "\n")
	left.WriteString("h/l  prev/next page\n")
	left.WriteString("H/L  prev/next card\n")
	left.WriteString("1-9  jump to card\n")
	left.WriteString("drag scroll strip\n")
	left.WriteString("\n")
	left.WriteString(a.styles.Title.Render("card") + "\n")
	left.WriteString("enter flip\n")
	left.WriteString("o    open link\n")
	left.WriteString("y    yank link\n")

	var right strings.Builder
	right.WriteString(a.styles.Title.Render("filter") + "\n")
	right.WriteString("/    search\n")
	right.WriteString("t    cycle tag\n")
	right.WriteString("esc  clear\n")
	right.WriteString("\n")
	right.WriteString(a.styles.Title.Render("pages") + "\n")
	right.WriteString("tab  next page\n")
	right.WriteString("j/k  scroll about\n")
	right.WriteString("c    copy email\n")
	right.WriteString("\n")
	right.WriteString(a.renderHintsInline([]Hint{
		{Key: "?/esc", Desc: "close"},
		{Key: "q", Desc: "quit"},
	}))

	modalWidth := layout.CalculateModalWidth(a.width, a.layoutConfig.Modal.DefaultWidthPercent, a.layoutConfig.Modal)
	leftWidth := min(a.layoutConfig.Modal.HelpLeftColumnWidth, modalWidth/2)
	rightWidth := min(a.layoutConfig.Modal.HelpRightColumnWidth, modalWidth-leftWidth)

	leftCol := lipgloss.NewStyle().Width(leftWidth).Render(left.String())
	rightCol := lipgloss.NewStyle().Width(rightWidth).Render(right.String())
	cols := lipgloss.JoinHorizontal(lipgloss.Top, leftCol, "  ", rightCol)

	// Top-left aligned, brutalist style
	return lipgloss.Place(
		a.width,
		a.height,
		lipgloss.Left,
		lipgloss.Top,
		modalStyle.Render(cols),
	)
}

// filterSummary describes the active filter for the footer.
func filterSummary(c search.Criteria) string {
	var parts []string
	if c.Tag != "" {
		parts = append(parts, "#"+c.Tag)
	}
	if c.Query != "" {
		parts = append(parts, strconv.Quote(c.Query))
	}
	return strings.Join(parts, " ")
}
