package tui

// button is a prev or next control. It implements gallery.Control.
type button struct {
	disabled bool
}

func (b *button) SetDisabled(disabled bool) {
	b.disabled = disabled
}

// dots is the indicator strip under the gallery, one dot per visible card.
// It implements gallery.Indicators.
type dots struct {
	n        int
	active   int
	onSelect func(index int)
}

func (d *dots) Reset(n int, onSelect func(index int)) {
	d.n = n
	d.active = 0
	d.onSelect = onSelect
}

func (d *dots) SetActive(index int) {
	d.active = index
}

// Select clicks dot i.
func (d *dots) Select(i int) {
	if i < 0 || i >= d.n || d.onSelect == nil {
		return
	}
	d.onSelect(i)
}
