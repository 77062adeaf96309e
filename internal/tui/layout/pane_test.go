package layout

import "testing"

func TestCalculatePage(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name          string
		width, height int
		want          PageLayout
	}{
		{"standard", 80, 24, PageLayout{Left: 2, Top: 3, Width: 76, Height: 19}},
		{"wide", 200, 50, PageLayout{Left: 2, Top: 3, Width: 196, Height: 45}},
		{"not sized yet", 0, 0, PageLayout{Left: 2, Top: 3, Width: 0, Height: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculatePage(tt.width, tt.height, cfg)
			if got != tt.want {
				t.Errorf("CalculatePage(%d, %d) = %+v, want %+v", tt.width, tt.height, got, tt.want)
			}
		})
	}
}

func TestCalculateGallery(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name            string
		width, height   int
		wantStripTop    int
		wantCardHeight  int
		wantControlsTop int
	}{
		{"room for full cards", 80, 24, 5, 12, 18},
		{"short terminal shrinks cards", 80, 18, 5, 9, 15},
		{"very short clamps to min", 80, 10, 5, 7, 13},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateGallery(tt.width, tt.height, cfg)
			if got.StripTop != tt.wantStripTop || got.CardHeight != tt.wantCardHeight || got.ControlsTop != tt.wantControlsTop {
				t.Errorf("CalculateGallery(%d, %d) = strip %d, card %d, controls %d; want %d, %d, %d",
					tt.width, tt.height, got.StripTop, got.CardHeight, got.ControlsTop,
					tt.wantStripTop, tt.wantCardHeight, tt.wantControlsTop)
			}
		})
	}
}

func TestGalleryLayout_Rows(t *testing.T) {
	l := CalculateGallery(80, 24, DefaultConfig())

	if !l.InStrip(5) || !l.InStrip(16) {
		t.Error("expected rows 5 and 16 to be on the strip")
	}
	if l.InStrip(4) || l.InStrip(17) {
		t.Error("expected rows 4 and 17 to be off the strip")
	}
	if got := l.LinkRow(); got != 15 {
		t.Errorf("LinkRow() = %d, want 15", got)
	}
}

func TestCardAt(t *testing.T) {
	tests := []struct {
		name    string
		x       int
		wantIdx int
		wantOK  bool
	}{
		{"inset", 3, 0, false},
		{"first card start", 4, 0, true},
		{"first card end", 33, 0, true},
		{"gap", 34, 0, false},
		{"second card", 36, 1, true},
		{"past last card", 100, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, ok := CardAt(tt.x, 4, 30, 2, 3)
			if idx != tt.wantIdx || ok != tt.wantOK {
				t.Errorf("CardAt(%d) = (%d, %v), want (%d, %v)", tt.x, idx, ok, tt.wantIdx, tt.wantOK)
			}
		})
	}
}

func TestCalculateControls(t *testing.T) {
	c := CalculateControls(2, 76, 4, 6)

	if !c.OnPrev(2) || !c.OnPrev(7) || c.OnPrev(8) {
		t.Error("prev span should be columns 2-7")
	}
	if !c.OnNext(72) || !c.OnNext(77) || c.OnNext(71) {
		t.Error("next span should be columns 72-77")
	}

	dots := []struct {
		x       int
		wantIdx int
		wantOK  bool
	}{
		{36, 0, true},
		{37, 0, false},
		{38, 1, true},
		{42, 3, true},
		{44, 0, false},
		{35, 0, false},
	}
	for _, tt := range dots {
		idx, ok := c.DotAt(tt.x)
		if idx != tt.wantIdx || ok != tt.wantOK {
			t.Errorf("DotAt(%d) = (%d, %v), want (%d, %v)", tt.x, idx, ok, tt.wantIdx, tt.wantOK)
		}
	}
}

func TestTabAt(t *testing.T) {
	labels := []string{"Projects", "About", "Contact"}

	tests := []struct {
		x       int
		wantIdx int
		wantOK  bool
	}{
		{2, 0, true},
		{9, 0, true},
		{10, 0, false},
		{12, 1, true},
		{19, 2, true},
		{26, 0, false},
	}
	for _, tt := range tests {
		idx, ok := TabAt(tt.x, 2, 2, labels)
		if idx != tt.wantIdx || ok != tt.wantOK {
			t.Errorf("TabAt(%d) = (%d, %v), want (%d, %v)", tt.x, idx, ok, tt.wantIdx, tt.wantOK)
		}
	}
}
