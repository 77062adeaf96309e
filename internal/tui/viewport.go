package tui

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
	"github.com/nikbrunner/folio/internal/gallery"
	"github.com/nikbrunner/folio/internal/timer"
)

const (
	scrollFPS       = 60
	scrollFrequency = 18.0
	scrollDamping   = 1.0
	scrollEpsilon   = 0.5 // columns
)

// stripViewport is the horizontally scrolling card strip. Units are terminal
// columns. It implements gallery.Viewport.
type stripViewport struct {
	width     float64
	inset     float64
	cardWidth float64
	gap       float64
	hidden    []bool
	offset    float64

	spring   harmonica.Spring
	target   float64
	velocity float64
	frame    *timer.Timer
	onScroll func()
}

func newStripViewport(sched timer.Scheduler, cardWidth, gap, inset float64) *stripViewport {
	return &stripViewport{
		inset:     inset,
		cardWidth: cardWidth,
		gap:       gap,
		spring:    harmonica.NewSpring(harmonica.FPS(scrollFPS), scrollFrequency, scrollDamping),
		frame:     timer.New(sched),
	}
}

func (v *stripViewport) Width() float64        { return v.width }
func (v *stripViewport) Inset() float64        { return v.inset }
func (v *stripViewport) ScrollOffset() float64 { return v.offset }

// SetScrollOffset jumps to x and cancels any running animation.
func (v *stripViewport) SetScrollOffset(x float64) {
	v.frame.Stop()
	v.velocity = 0
	v.offset = v.clamp(x)
	v.target = v.offset
}

// SmoothScrollTo animates towards x. Every frame counts as a native scroll.
func (v *stripViewport) SmoothScrollTo(x float64) {
	v.target = v.clamp(x)
	if !v.frame.Pending() {
		v.frame.Reset(time.Second/scrollFPS, v.step)
	}
}

func (v *stripViewport) step() {
	v.offset, v.velocity = v.spring.Update(v.offset, v.velocity, v.target)
	// Settled once within half a column and moving less than that per frame.
	if math.Abs(v.target-v.offset) < scrollEpsilon && math.Abs(v.velocity) < scrollEpsilon*scrollFPS {
		v.offset = v.target
		v.velocity = 0
	} else {
		v.frame.Reset(time.Second/scrollFPS, v.step)
	}
	if v.onScroll != nil {
		v.onScroll()
	}
}

// Animating reports whether a smooth scroll is in flight.
func (v *stripViewport) Animating() bool {
	return v.frame.Pending()
}

// ScrollBy moves the strip by dx columns, as a wheel or trackpad would.
func (v *stripViewport) ScrollBy(dx float64) {
	v.SetScrollOffset(v.offset + dx)
}

// Cards lays visible cards out at inset + k*pitch. Hidden cards have no geometry.
func (v *stripViewport) Cards() []gallery.Card {
	cards := make([]gallery.Card, len(v.hidden))
	pitch := v.cardWidth + v.gap
	k := 0
	for i, hidden := range v.hidden {
		if hidden {
			cards[i] = gallery.Card{Hidden: true}
			continue
		}
		cards[i] = gallery.Card{Left: v.inset + float64(k)*pitch, Width: v.cardWidth}
		k++
	}
	return cards
}

// SetHidden applies a filter mask. hidden[i] is true for filtered-out cards.
func (v *stripViewport) SetHidden(hidden []bool) {
	v.hidden = append(v.hidden[:0:0], hidden...)
	v.offset = v.clamp(v.offset)
	v.target = v.clamp(v.target)
}

func (v *stripViewport) SetWidth(width float64) {
	v.width = max(width, 0)
	v.offset = v.clamp(v.offset)
	v.target = v.clamp(v.target)
}

func (v *stripViewport) visibleCount() int {
	n := 0
	for _, hidden := range v.hidden {
		if !hidden {
			n++
		}
	}
	return n
}

// contentWidth is the scrollable width: both insets plus the visible cards.
func (v *stripViewport) contentWidth() float64 {
	n := v.visibleCount()
	if n == 0 {
		return 2 * v.inset
	}
	return 2*v.inset + float64(n)*(v.cardWidth+v.gap) - v.gap
}

func (v *stripViewport) clamp(x float64) float64 {
	limit := max(v.contentWidth()-v.width, 0)
	return math.Max(0, math.Min(x, limit))
}
