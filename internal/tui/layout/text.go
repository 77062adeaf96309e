package layout

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
)

// StripANSI removes ANSI escape codes from a string.
func StripANSI(s string) string {
	return ansi.Strip(s)
}

// VisibleLength returns the display width of a string (excluding ANSI codes).
func VisibleLength(s string) int {
	return ansi.StringWidth(s)
}

// TruncateText truncates text to maxWidth with ellipsis.
// Handles edge cases where text is shorter than maxWidth or maxWidth is very small.
// Returns the truncated text and whether truncation occurred.
func TruncateText(text string, maxWidth int, cfg TextConfig) (string, bool) {
	if maxWidth <= 0 {
		return "", true
	}

	ellipsisLen := utf8.RuneCountInString(cfg.Ellipsis)
	textLen := utf8.RuneCountInString(text)

	if textLen <= maxWidth {
		return text, false
	}

	// Need space for ellipsis
	if maxWidth <= ellipsisLen {
		// Not enough room for any text + ellipsis, just return truncated ellipsis
		runes := []rune(cfg.Ellipsis)
		return string(runes[:maxWidth]), true
	}

	runes := []rune(text)
	truncLen := maxWidth - ellipsisLen
	return string(runes[:truncLen]) + cfg.Ellipsis, true
}

// TruncateANSIAware truncates styled text to maxWidth display columns,
// preserving ANSI codes.
func TruncateANSIAware(styledText string, maxWidth int, cfg TextConfig) string {
	if maxWidth <= 0 {
		return ""
	}
	return ansi.Truncate(styledText, maxWidth, cfg.Ellipsis)
}

// PadRight pads line with spaces to width display columns.
func PadRight(line string, width int) string {
	if gap := width - VisibleLength(line); gap > 0 {
		return line + strings.Repeat(" ", gap)
	}
	return line
}

// Window returns the columns [left, left+width) of a styled line, padded to
// exactly width columns.
func Window(line string, left, width int) string {
	if width <= 0 {
		return ""
	}
	if left < 0 {
		pad := min(-left, width)
		return strings.Repeat(" ", pad) + Window(line, 0, width-pad)
	}
	return PadRight(ansi.Cut(line, left, left+width), width)
}

// Slide composes two full-width panels that are shifted horizontally by
// offA and offB columns, as during a page transition. Panels must not overlap.
func Slide(a, b string, width, offA, offB int) string {
	linesA := strings.Split(a, "\n")
	linesB := strings.Split(b, "\n")
	rows := max(len(linesA), len(linesB))

	out := make([]string, rows)
	for i := range rows {
		var la, lb string
		if i < len(linesA) {
			la = linesA[i]
		}
		if i < len(linesB) {
			lb = linesB[i]
		}
		out[i] = slideLine(la, lb, width, offA, offB)
	}
	return strings.Join(out, "\n")
}

func slideLine(a, b string, width, offA, offB int) string {
	// Order panels left to right.
	left, right, offLeft, offRight := a, b, offA, offB
	if offB < offA {
		left, right, offLeft, offRight = b, a, offB, offA
	}

	// Screen columns [0, offRight) come from the left panel, the rest from the right.
	split := min(max(offRight, 0), width)
	leftPart := Window(left, -offLeft, split)
	rightPart := Window(right, split-offRight, width-split)
	return leftPart + rightPart
}
