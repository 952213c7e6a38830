package display

import (
	"math"

	"github.com/muesli/reflow/wordwrap"
)

const (
	DefaultWidth = 80
	MinWidth     = 10
)

// Wrap word-wraps text to DefaultWidth, preserving ANSI escape sequences.
func Wrap(text string) string {
	return wordwrap.String(text, DefaultWidth)
}

// WrapScaled word-wraps text for the given text size. Larger text fits fewer
// characters on a line.
func WrapScaled(text string, textSize float64) string {
	return wordwrap.String(text, ScaledWidth(textSize))
}

// ScaledWidth returns the line width for textSize, never below MinWidth.
// Sizes that are not positive use DefaultWidth.
func ScaledWidth(textSize float64) int {
	if textSize <= 0 || math.IsNaN(textSize) || math.IsInf(textSize, 0) {
		return DefaultWidth
	}
	w := int(math.Floor(DefaultWidth / textSize))
	if w < MinWidth {
		return MinWidth
	}
	return w
}
