package gallery

// dragMultiplier scales pointer displacement into scroll displacement.
const dragMultiplier = 2

type dragState struct {
	active      bool
	startX      float64
	startScroll float64
}

// PointerDown starts drag tracking at x unless the press landed on an
// interactive element inside a card.
func (e *Engine) PointerDown(x float64, interactive bool) {
	if e == nil || interactive {
		return
	}
	e.drag = dragState{
		active:      true,
		startX:      x,
		startScroll: e.viewport.ScrollOffset(),
	}
}

// PointerMove scrolls the strip while a drag is active. The resulting offset
// change is observed like any native scroll.
func (e *Engine) PointerMove(x float64) {
	if e == nil || !e.drag.active {
		return
	}
	walk := (x - e.drag.startX) * dragMultiplier
	e.viewport.SetScrollOffset(e.drag.startScroll - walk)
	e.OnNativeScroll()
}

// PointerUp ends the drag.
func (e *Engine) PointerUp() {
	if e == nil {
		return
	}
	e.drag.active = false
}

// PointerLeave ends the drag when the pointer leaves the container.
func (e *Engine) PointerLeave() {
	e.PointerUp()
}

// Dragging reports whether a drag is in progress.
func (e *Engine) Dragging() bool {
	return e != nil && e.drag.active
}
