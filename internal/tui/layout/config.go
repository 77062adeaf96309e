package layout

// LayoutConfig holds all layout-related configuration values.
type LayoutConfig struct {
	Frame   FrameConfig
	Gallery GalleryConfig
	Modal   ModalConfig
	Input   InputConfig
	Text    TextConfig
}

// FrameConfig holds the fixed rows and padding around page content.
type FrameConfig struct {
	// PaddingTop and PaddingLeft match the App style padding.
	PaddingTop  int
	PaddingLeft int

	// HeaderLines: nav tabs (1) + gap (1) = 2
	HeaderLines int

	// FooterLines: message line (1) + hints (1) = 2
	FooterLines int
}

// GalleryConfig holds the card strip geometry, in terminal columns and rows.
type GalleryConfig struct {
	CardWidth int
	CardGap   int
	Inset     int

	// CardHeight is the preferred card height including borders.
	CardHeight int

	// MinCardHeight is used when the terminal is too short for CardHeight.
	MinCardHeight int

	// FilterLines: filter bar (1) + gap (1) = 2
	FilterLines int

	// ControlsGap separates the strip from the prev/next row.
	ControlsGap int
}

// ModalConfig holds modal dialog configuration.
type ModalConfig struct {
	// DefaultWidthPercent is the standard modal width as percentage of terminal width.
	DefaultWidthPercent int

	// MinWidth is the minimum modal width in characters.
	MinWidth int

	// MaxWidth is the maximum modal width in characters.
	MaxWidth int

	// HelpLeftColumnWidth: width for help overlay left column.
	HelpLeftColumnWidth int

	// HelpRightColumnWidth: width for help overlay right column.
	HelpRightColumnWidth int
}

// InputConfig holds text input configuration.
type InputConfig struct {
	FilterCharLimit int
	FilterWidth     int
}

// TextConfig holds text truncation configuration.
type TextConfig struct {
	// Ellipsis is the string used to indicate truncation.
	Ellipsis string
}

// DefaultConfig returns the default layout configuration.
func DefaultConfig() LayoutConfig {
	return LayoutConfig{
		Frame: FrameConfig{
			PaddingTop:  1,
			PaddingLeft: 2,
			HeaderLines: 2,
			FooterLines: 2,
		},
		Gallery: GalleryConfig{
			CardWidth:     30,
			CardGap:       2,
			Inset:         4,
			CardHeight:    12,
			MinCardHeight: 7,
			FilterLines:   2,
			ControlsGap:   1,
		},
		Modal: ModalConfig{
			DefaultWidthPercent:  40,
			MinWidth:             40,
			MaxWidth:             80,
			HelpLeftColumnWidth:  22,
			HelpRightColumnWidth: 24,
		},
		Input: InputConfig{
			FilterCharLimit: 50,
			FilterWidth:     30,
		},
		Text: TextConfig{
			Ellipsis: "…",
		},
	}
}
