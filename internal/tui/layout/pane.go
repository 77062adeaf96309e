package layout

// PageLayout holds the content area shared by all pages.
type PageLayout struct {
	Left   int // first content column
	Top    int // first content row, below the header
	Width  int
	Height int
}

// CalculatePage computes the page content area for a terminal size.
// Width and Height are never negative.
func CalculatePage(terminalWidth, terminalHeight int, cfg LayoutConfig) PageLayout {
	f := cfg.Frame
	top := f.PaddingTop + f.HeaderLines
	return PageLayout{
		Left:   f.PaddingLeft,
		Top:    top,
		Width:  max(terminalWidth-2*f.PaddingLeft, 0),
		Height: max(terminalHeight-top-f.FooterLines, 0),
	}
}

// GalleryLayout holds the screen geometry of the projects page.
type GalleryLayout struct {
	Page        PageLayout
	FilterTop   int
	StripTop    int
	CardHeight  int
	ControlsTop int
}

// CalculateGallery places the filter bar, card strip and controls row.
// The card height shrinks to fit short terminals but not below MinCardHeight.
func CalculateGallery(terminalWidth, terminalHeight int, cfg LayoutConfig) GalleryLayout {
	page := CalculatePage(terminalWidth, terminalHeight, cfg)
	g := cfg.Gallery

	stripTop := page.Top + g.FilterLines
	available := page.Height - g.FilterLines - g.ControlsGap - 1
	cardHeight := g.CardHeight
	if available < cardHeight {
		cardHeight = available
	}
	if cardHeight < g.MinCardHeight {
		cardHeight = g.MinCardHeight
	}

	return GalleryLayout{
		Page:        page,
		FilterTop:   page.Top,
		StripTop:    stripTop,
		CardHeight:  cardHeight,
		ControlsTop: stripTop + cardHeight + g.ControlsGap,
	}
}

// InStrip reports whether screen row y falls on the card strip.
func (l GalleryLayout) InStrip(y int) bool {
	return y >= l.StripTop && y < l.StripTop+l.CardHeight
}

// LinkRow returns the screen row of the card link line, just above the bottom border.
func (l GalleryLayout) LinkRow() int {
	return l.StripTop + l.CardHeight - 2
}

// CardAt maps a content column to the index of the card under it. Columns in
// the inset or in the gap between cards return false.
func CardAt(contentX, inset, cardWidth, gap, count int) (int, bool) {
	pitch := cardWidth + gap
	if pitch <= 0 || contentX < inset {
		return 0, false
	}
	rel := contentX - inset
	idx := rel / pitch
	if idx >= count || rel%pitch >= cardWidth {
		return 0, false
	}
	return idx, true
}

// ControlsLayout holds the column spans of the prev/next controls and indicator dots.
type ControlsLayout struct {
	PrevStart, PrevEnd int
	NextStart, NextEnd int
	DotsStart          int
	DotCount           int
}

// CalculateControls lays out "‹ prev", the dots and "next ›" across a row of
// the given width starting at column left. Dots are one column wide with one
// column between them.
func CalculateControls(left, width, dots, buttonWidth int) ControlsLayout {
	dotsWidth := 0
	if dots > 0 {
		dotsWidth = 2*dots - 1
	}
	return ControlsLayout{
		PrevStart: left,
		PrevEnd:   left + buttonWidth,
		NextStart: left + max(width-buttonWidth, buttonWidth),
		NextEnd:   left + max(width, 2*buttonWidth),
		DotsStart: left + max((width-dotsWidth)/2, buttonWidth+1),
		DotCount:  dots,
	}
}

// DotAt returns the indicator index at screen column x.
func (c ControlsLayout) DotAt(x int) (int, bool) {
	rel := x - c.DotsStart
	if rel < 0 || rel%2 != 0 {
		return 0, false
	}
	idx := rel / 2
	if idx >= c.DotCount {
		return 0, false
	}
	return idx, true
}

// OnPrev reports whether column x hits the prev control.
func (c ControlsLayout) OnPrev(x int) bool {
	return x >= c.PrevStart && x < c.PrevEnd
}

// OnNext reports whether column x hits the next control.
func (c ControlsLayout) OnNext(x int) bool {
	return x >= c.NextStart && x < c.NextEnd
}

// TabAt returns the index of the nav tab under column x. Tabs are laid out
// from column left, each label followed by sep columns.
func TabAt(x, left, sep int, labels []string) (int, bool) {
	col := left
	for i, label := range labels {
		w := VisibleLength(label)
		if x >= col && x < col+w {
			return i, true
		}
		col += w + sep
	}
	return 0, false
}
