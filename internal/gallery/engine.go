// Package gallery implements paging for a horizontally scrolling card strip.
//
// An Engine keeps the scroll offset, the current page, the prev/next control
// state and the indicator highlight consistent under three triggers: control
// clicks, free scrolling or dragging, and filter changes. While the engine is
// animating its own scroll it ignores native scroll observations.
package gallery

import (
	"time"

	"github.com/nikbrunner/folio/internal/timer"
	"github.com/sirupsen/logrus"
)

// Viewport is the scroll container.
type Viewport interface {
	Width() float64
	Inset() float64
	ScrollOffset() float64
	SetScrollOffset(x float64)
	SmoothScrollTo(x float64)
	Cards() []Card
}

// Control is a prev or next button.
type Control interface {
	SetDisabled(disabled bool)
}

// Indicators is the strip of per-card markers.
type Indicators interface {
	Reset(n int, onSelect func(index int))
	SetActive(index int)
}

// Timings holds the engine's delays.
type Timings struct {
	SettleWindow   time.Duration // programmatic scroll assumed finished after this
	ScrollDebounce time.Duration
	ResizeDebounce time.Duration
	LayoutRetry    time.Duration
}

// DefaultTimings returns the standard delays.
func DefaultTimings() Timings {
	return Timings{
		SettleWindow:   600 * time.Millisecond,
		ScrollDebounce: 100 * time.Millisecond,
		ResizeDebounce: 250 * time.Millisecond,
		LayoutRetry:    100 * time.Millisecond,
	}
}

// Params holds parameters for creating an Engine.
type Params struct {
	Viewport   Viewport
	Prev       Control
	Next       Control
	Indicators Indicators // optional
	Scheduler  timer.Scheduler
	Gap        float64  // space between cards, added to card width to get the pitch
	Timings    *Timings // optional, uses DefaultTimings if nil
	Filter     *Signal  // optional, OnFilterChange runs on every emit
	OnReload   func()   // optional, called when a resize changes the page count
	Logger     logrus.FieldLogger
}

// Engine is the gallery paging state machine. All methods must be called from
// the event loop that delivers Scheduler callbacks. Methods on a nil *Engine
// are no-ops.
type Engine struct {
	viewport   Viewport
	prev       Control
	next       Control
	indicators Indicators
	gap        float64
	timings    Timings
	onReload   func()
	log        logrus.FieldLogger

	layout      Layout
	laidOut     bool
	currentPage int
	activeCard  int
	scrolling   bool // programmatic scroll in progress

	settle       *timer.Timer
	scrollDebnce *timer.Timer
	resizeDebnce *timer.Timer
	layoutRetry  *timer.Timer

	drag        dragState
	unsubscribe func()
}

// New creates an Engine and initialises it: indicators are built, layout is
// computed (or deferred until the container is laid out) and the strip snaps
// to the first visible card. Returns nil when the viewport, either control or
// the scheduler is missing.
func New(p Params) *Engine {
	if p.Viewport == nil || p.Prev == nil || p.Next == nil || p.Scheduler == nil {
		return nil
	}

	timings := DefaultTimings()
	if p.Timings != nil {
		timings = *p.Timings
	}

	log := p.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	e := &Engine{
		viewport:     p.Viewport,
		prev:         p.Prev,
		next:         p.Next,
		indicators:   p.Indicators,
		gap:          p.Gap,
		timings:      timings,
		onReload:     p.OnReload,
		log:          log.WithField("component", "gallery"),
		settle:       timer.New(p.Scheduler),
		scrollDebnce: timer.New(p.Scheduler),
		resizeDebnce: timer.New(p.Scheduler),
		layoutRetry:  timer.New(p.Scheduler),
	}

	if p.Filter != nil {
		e.unsubscribe = p.Filter.Subscribe(e.OnFilterChange)
	}

	e.rebuildIndicators()
	e.updateButtons()
	if e.computeLayout() {
		e.snapToFirstCard()
	} else {
		e.log.Debug("container not laid out, deferring layout")
		e.layoutRetry.Reset(e.timings.LayoutRetry, func() {
			if !e.computeLayout() {
				e.log.Debug("container still not laid out, using clamped layout")
			}
			e.snapToFirstCard()
		})
	}

	return e
}

// Close cancels pending timers and detaches from the filter signal.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	e.settle.Stop()
	e.scrollDebnce.Stop()
	e.resizeDebnce.Stop()
	e.layoutRetry.Stop()
	if e.unsubscribe != nil {
		e.unsubscribe()
		e.unsubscribe = nil
	}
}

// CurrentPage returns the current page index.
func (e *Engine) CurrentPage() int {
	if e == nil {
		return 0
	}
	return e.currentPage
}

// TotalPages returns the number of pages.
func (e *Engine) TotalPages() int {
	if e == nil {
		return 0
	}
	return e.layout.TotalPages
}

// CardsPerView returns the number of cards per page.
func (e *Engine) CardsPerView() int {
	if e == nil {
		return 0
	}
	return e.layout.CardsPerView
}

// Layout returns the current paging geometry.
func (e *Engine) Layout() Layout {
	if e == nil {
		return Layout{}
	}
	return e.layout
}

// ActiveCard returns the index, among visible cards, of the highlighted indicator.
func (e *Engine) ActiveCard() int {
	if e == nil {
		return 0
	}
	return e.activeCard
}

// LaidOut reports whether the last layout pass measured real geometry.
func (e *Engine) LaidOut() bool {
	return e != nil && e.laidOut
}

// Scrolling reports whether a programmatic scroll is inside its settle window.
func (e *Engine) Scrolling() bool {
	return e != nil && e.scrolling
}

// computeLayout measures the container and visible cards. Returns false when
// the container or the first visible card has no width yet; the layout is
// still updated with clamped values so the engine stays usable.
func (e *Engine) computeLayout() bool {
	visible := Visible(e.viewport.Cards())
	width := e.viewport.Width()

	pitch := 0.0
	ready := width > 0
	if len(visible) > 0 {
		pitch = visible[0].Width + e.gap
		ready = ready && visible[0].Width > 0
	}

	e.layout = ComputeLayout(width, e.viewport.Inset(), pitch, len(visible))
	e.laidOut = ready
	e.currentPage = e.layout.ClampPage(e.currentPage)
	return ready
}

// GoToPage smooth-scrolls to page n, clamped to the valid range. Calling it
// with the current page does nothing.
func (e *Engine) GoToPage(n int) {
	if e == nil {
		return
	}

	target := e.layout.ClampPage(n)
	if target == e.currentPage {
		return
	}
	e.currentPage = target

	// Native scroll reactions queued before this call would fight the animation.
	e.scrollDebnce.Stop()
	e.scrolling = true
	e.viewport.SmoothScrollTo(e.viewport.Inset() + float64(target*e.layout.CardsPerView)*e.layout.Pitch)
	e.updateButtons()

	e.settle.Reset(e.timings.SettleWindow, func() {
		e.scrolling = false
		e.refreshIndicators()
	})
}

// GoToCard goes to the page containing the visible card at index.
func (e *Engine) GoToCard(index int) {
	if e == nil {
		return
	}
	e.GoToPage(e.layout.PageOf(index))
}

// Prev handles a click on the prev control.
func (e *Engine) Prev() {
	if e == nil || e.scrolling || e.currentPage <= 0 {
		return
	}
	e.GoToPage(e.currentPage - 1)
}

// Next handles a click on the next control.
func (e *Engine) Next() {
	if e == nil || e.scrolling || e.currentPage >= e.layout.TotalPages-1 {
		return
	}
	e.GoToPage(e.currentPage + 1)
}

// OnNativeScroll observes a scroll event. It is ignored while a programmatic
// scroll is settling; otherwise the page is reconciled once scrolling pauses.
func (e *Engine) OnNativeScroll() {
	if e == nil || e.scrolling {
		return
	}
	e.scrollDebnce.Reset(e.timings.ScrollDebounce, e.reconcileScroll)
}

func (e *Engine) reconcileScroll() {
	if e.scrolling {
		e.log.Debug("scroll reconcile suppressed during programmatic scroll")
		return
	}

	active := e.computeActiveCard()
	page := e.layout.ClampPage(e.layout.PageOf(active))
	if page != e.currentPage {
		e.currentPage = page
		e.updateButtons()
	}
	e.refreshIndicators()
}

// OnFilterChange rebuilds indicators for the new visible set, resets to page
// 0 and snaps to the first visible card without animation.
func (e *Engine) OnFilterChange() {
	if e == nil {
		return
	}

	e.scrollDebnce.Stop()
	e.settle.Stop()
	e.scrolling = false
	e.drag = dragState{}

	e.rebuildIndicators()
	e.computeLayout()
	e.currentPage = 0
	e.snapToFirstCard()
}

// OnResize observes a container resize. After the resize debounce the layout
// is recomputed; if the page count changed the host's reload callback runs.
func (e *Engine) OnResize() {
	if e == nil {
		return
	}
	e.resizeDebnce.Reset(e.timings.ResizeDebounce, func() {
		before := e.layout.TotalPages
		e.computeLayout()
		if e.layout.TotalPages != before {
			e.log.WithFields(logrus.Fields{
				"pages_before": before,
				"pages_after":  e.layout.TotalPages,
			}).Debug("page count changed on resize, reloading")
			if e.onReload != nil {
				e.onReload()
			}
			return
		}
		e.updateButtons()
		e.refreshIndicators()
	})
}

// snapToFirstCard resets the scroll offset to the start of the first visible card.
func (e *Engine) snapToFirstCard() {
	offset := 0.0
	if visible := Visible(e.viewport.Cards()); len(visible) > 0 {
		offset = visible[0].Left
	}
	e.viewport.SetScrollOffset(offset)
	e.updateButtons()
	e.refreshIndicators()
}

func (e *Engine) updateButtons() {
	e.prev.SetDisabled(e.currentPage == 0)
	e.next.SetDisabled(e.currentPage >= e.layout.TotalPages-1)
}

func (e *Engine) rebuildIndicators() {
	e.activeCard = 0
	if e.indicators == nil {
		return
	}
	n := len(Visible(e.viewport.Cards()))
	e.indicators.Reset(n, e.GoToCard)
}

func (e *Engine) computeActiveCard() int {
	visible := Visible(e.viewport.Cards())
	return ActiveCard(visible, e.viewport.ScrollOffset(), e.viewport.Width())
}

func (e *Engine) refreshIndicators() {
	e.activeCard = e.computeActiveCard()
	if e.indicators != nil {
		e.indicators.SetActive(e.activeCard)
	}
}
