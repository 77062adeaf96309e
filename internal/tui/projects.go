package tui

import (
	"github.com/nikbrunner/folio/internal/gallery"
	"github.com/nikbrunner/folio/internal/model"
	"github.com/nikbrunner/folio/internal/search"
	"github.com/nikbrunner/folio/internal/timer"
	"github.com/sirupsen/logrus"
)

// galleryHost owns the projects page: the card strip, its controls and the
// paging engine. The engine is rebuilt on every arrival at the page and on
// resizes that change the page count.
type galleryHost struct {
	projects []model.Project
	tags     []string
	viewport *stripViewport
	prev     button
	next     button
	dots     dots
	filter   gallery.Signal
	engine   *gallery.Engine
	sched    timer.Scheduler
	timings  gallery.Timings
	log      logrus.FieldLogger

	criteria search.Criteria
	visible  []int // project index of each visible card
	focus    int   // visible index
	flipped  map[string]bool
	reloads  int
}

type galleryParams struct {
	Projects  []model.Project
	Tags      []string
	Scheduler timer.Scheduler
	Timings   gallery.Timings
	CardWidth int
	Gap       int
	Inset     int
	Logger    logrus.FieldLogger
}

func newGalleryHost(p galleryParams) *galleryHost {
	h := &galleryHost{
		projects: p.Projects,
		tags:     p.Tags,
		viewport: newStripViewport(p.Scheduler, float64(p.CardWidth), float64(p.Gap), float64(p.Inset)),
		sched:    p.Scheduler,
		timings:  p.Timings,
		log:      p.Logger,
		flipped:  make(map[string]bool),
	}
	h.viewport.onScroll = func() { h.engine.OnNativeScroll() }
	h.setMask(search.Visible(h.projects, h.criteria))
	return h
}

// build replaces the engine with a fresh one.
func (h *galleryHost) build() {
	h.engine.Close()
	h.engine = gallery.New(gallery.Params{
		Viewport:   h.viewport,
		Prev:       &h.prev,
		Next:       &h.next,
		Indicators: &h.dots,
		Scheduler:  h.sched,
		Gap:        h.viewport.gap,
		Timings:    &h.timings,
		Filter:     &h.filter,
		OnReload:   h.reload,
		Logger:     h.log,
	})
	h.focus = 0
}

func (h *galleryHost) reload() {
	h.reloads++
	h.build()
}

// close tears the engine down when the page is left.
func (h *galleryHost) close() {
	h.engine.Close()
	h.engine = nil
	h.viewport.frame.Stop()
}

func (h *galleryHost) setMask(mask []bool) {
	hidden := make([]bool, len(mask))
	h.visible = h.visible[:0]
	for i, ok := range mask {
		hidden[i] = !ok
		if ok {
			h.visible = append(h.visible, i)
		}
	}
	h.viewport.SetHidden(hidden)
	h.focus = 0
}

// applyFilter hides non-matching cards and signals the engine.
func (h *galleryHost) applyFilter(c search.Criteria) {
	if c == h.criteria {
		return
	}
	h.criteria = c
	h.setMask(search.Visible(h.projects, c))
	h.log.WithFields(logrus.Fields{
		"tag":     c.Tag,
		"query":   c.Query,
		"visible": len(h.visible),
	}).Debug("filter changed")
	h.filter.Emit()
}

// cycleTag advances the tag filter through all tags and back to none.
func (h *galleryHost) cycleTag() {
	next := ""
	if len(h.tags) > 0 {
		i := -1
		for j, tag := range h.tags {
			if tag == h.criteria.Tag {
				i = j
				break
			}
		}
		if i+1 < len(h.tags) {
			next = h.tags[i+1]
		}
	}
	h.applyFilter(search.Criteria{Tag: next, Query: h.criteria.Query})
}

func (h *galleryHost) resize(width int) {
	if float64(width) == h.viewport.width {
		return
	}
	h.viewport.SetWidth(float64(width))
	h.engine.OnResize()
}

// scrollBy is a native scroll from the wheel.
func (h *galleryHost) scrollBy(dx float64) {
	h.viewport.ScrollBy(dx)
	h.engine.OnNativeScroll()
}

// focused returns the visible index of the focused card, or -1 when no card
// is visible. Focus falls back to the first card of the current page when the
// focused card has scrolled off it.
func (h *galleryHost) focused() int {
	n := len(h.visible)
	if n == 0 {
		return -1
	}
	f := min(max(h.focus, 0), n-1)
	if h.engine == nil {
		return f
	}
	l := h.engine.Layout()
	if page := h.engine.CurrentPage(); l.PageOf(f) != page {
		f = min(page*l.CardsPerView, n-1)
	}
	return f
}

func (h *galleryHost) moveFocus(delta int) {
	f := h.focused()
	if f < 0 {
		return
	}
	f = min(max(f+delta, 0), len(h.visible)-1)
	h.focus = f
	h.engine.GoToCard(f)
}

func (h *galleryHost) setFocus(i int) {
	if i >= 0 && i < len(h.visible) {
		h.focus = i
	}
}

// selectDot clicks indicator i.
func (h *galleryHost) selectDot(i int) {
	if i < 0 || i >= h.dots.n {
		return
	}
	h.setFocus(i)
	h.dots.Select(i)
}

func (h *galleryHost) prevPage() { h.engine.Prev() }
func (h *galleryHost) nextPage() { h.engine.Next() }

// project returns the project behind visible card i.
func (h *galleryHost) project(i int) *model.Project {
	if i < 0 || i >= len(h.visible) {
		return nil
	}
	return &h.projects[h.visible[i]]
}

func (h *galleryHost) focusedProject() *model.Project {
	return h.project(h.focused())
}

func (h *galleryHost) toggleFlip() {
	if p := h.focusedProject(); p != nil {
		h.flipped[p.ID] = !h.flipped[p.ID]
	}
}
