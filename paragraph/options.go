package paragraph

import (
	"fmt"
	"math"

	"github.com/npillmayer/textlayout"
	"github.com/npillmayer/textlayout/linebreak"
)

// Constraints restrict the size of a layout. Width must be positive and may be
// +Inf, which disables wrapping. A MaxHeight of 0 means unrestricted.
type Constraints struct {
	Width     float64
	MinHeight float64
	MaxHeight float64
}

// Validate checks constraints for invalid values, returning
// textlayout.ErrInvalidArgument.
func (c Constraints) Validate() error {
	if math.IsNaN(c.Width) || c.Width <= 0 {
		return fmt.Errorf("constraint width must be positive, is %g: %w", c.Width, textlayout.ErrInvalidArgument)
	}
	if c.MinHeight < 0 || c.MaxHeight < 0 || math.IsNaN(c.MinHeight) || math.IsNaN(c.MaxHeight) {
		return fmt.Errorf("height constraints must not be negative: %w", textlayout.ErrInvalidArgument)
	}
	return nil
}

// DefaultCursorWidth is the width of cursor rectangles.
const DefaultCursorWidth = 4.0

// Ellipsis is the text shown in place of truncated text.
const Ellipsis = "\u2026"

type config struct {
	softWrap    bool
	maxLines    int // 0 for unlimited
	overflow    linebreak.Overflow
	cursorWidth float64
	fillWidth   bool
}

func defaultConfig() config {
	return config{
		softWrap:    true,
		cursorWidth: DefaultCursorWidth,
	}
}

// Option configures a layout.
type Option func(*config) error

// SoftWrap enables or disables wrapping at break opportunities. Without soft
// wrapping, lines are broken at hard line separators only. Default is true.
func SoftWrap(b bool) Option {
	return func(c *config) error {
		c.softWrap = b
		return nil
	}
}

// MaxLines limits the number of lines. n must be positive.
func MaxLines(n int) Option {
	return func(c *config) error {
		if n <= 0 {
			return fmt.Errorf("max lines must be positive, is %d: %w", n, textlayout.ErrInvalidArgument)
		}
		c.maxLines = n
		return nil
	}
}

// Overflow sets the policy for text not fitting into the layout.
func Overflow(o linebreak.Overflow) Option {
	return func(c *config) error {
		c.overflow = o
		return nil
	}
}

// CursorWidth sets the width of cursor rectangles.
func CursorWidth(w float64) Option {
	return func(c *config) error {
		if w < 0 || math.IsNaN(w) {
			return fmt.Errorf("cursor width must not be negative: %w", textlayout.ErrInvalidArgument)
		}
		c.cursorWidth = w
		return nil
	}
}

// FillWidth makes a layout as wide as the constraint width, if it is finite.
// Lines are aligned within this width. Without it, a layout is as wide as its
// widest line.
func FillWidth() Option {
	return func(c *config) error {
		c.fillWidth = true
		return nil
	}
}
