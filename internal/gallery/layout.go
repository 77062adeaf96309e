package gallery

import "math"

// Card is the measured geometry of one gallery card. Left is the card's offset
// within the scroll container's content. Hidden cards are ignored by layout.
type Card struct {
	Left   float64
	Width  float64
	Hidden bool
}

// Center returns the horizontal center of the card in content coordinates.
func (c Card) Center() float64 {
	return c.Left + c.Width/2
}

// Layout is the derived paging geometry for the visible cards.
type Layout struct {
	CardsPerView int
	TotalPages   int
	Pitch        float64 // card width plus gap
	Inset        float64
}

// ComputeLayout derives cards-per-view and page count. Widths that are zero or
// negative clamp to one card per view.
func ComputeLayout(containerWidth, inset, pitch float64, visibleCount int) Layout {
	perView := 1
	if pitch > 0 {
		visibleWidth := containerWidth - inset*2
		if n := int(math.Floor(visibleWidth / pitch)); n > 1 {
			perView = n
		}
	}

	pages := 1
	if visibleCount > 0 {
		pages = (visibleCount + perView - 1) / perView
	}

	return Layout{
		CardsPerView: perView,
		TotalPages:   pages,
		Pitch:        pitch,
		Inset:        inset,
	}
}

// PageOffset returns the scroll offset at which page n starts.
func (l Layout) PageOffset(n int) float64 {
	return l.Inset + float64(n*l.CardsPerView)*l.Pitch
}

// PageOf returns the page containing the card at index.
func (l Layout) PageOf(index int) int {
	if index < 0 || l.CardsPerView < 1 {
		return 0
	}
	return index / l.CardsPerView
}

// ClampPage clamps n to [0, TotalPages-1].
func (l Layout) ClampPage(n int) int {
	if n < 0 {
		return 0
	}
	if last := l.TotalPages - 1; n > last {
		return max(last, 0)
	}
	return n
}

// Visible returns the cards that are not hidden, in order.
func Visible(cards []Card) []Card {
	out := make([]Card, 0, len(cards))
	for _, c := range cards {
		if !c.Hidden {
			out = append(out, c)
		}
	}
	return out
}

// ActiveCard returns the index of the last card whose center is at or before
// the viewport midpoint. When the viewport sits exactly between two cards the
// earlier one wins. Returns 0 when no card qualifies.
func ActiveCard(visible []Card, scroll, viewportWidth float64) int {
	midpoint := scroll + viewportWidth/2
	active := 0
	for i, c := range visible {
		if c.Center() <= midpoint {
			active = i
		}
	}
	return active
}
