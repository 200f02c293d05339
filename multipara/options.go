package multipara

import (
	"fmt"
	"math"

	"github.com/guiguan/caster"
	"github.com/npillmayer/textlayout"
	"github.com/npillmayer/textlayout/linebreak"
	"github.com/npillmayer/textlayout/metrics"
	"github.com/npillmayer/textlayout/paragraph"
)

type config struct {
	provider    metrics.Provider
	maxLines    int
	softWrap    bool
	overflow    linebreak.Overflow
	cursorWidth float64
	workers     int
	progress    *caster.Caster
}

func defaultConfig() config {
	return config{
		softWrap:    true,
		cursorWidth: paragraph.DefaultCursorWidth,
		workers:     1,
	}
}

// Option configures a multi-paragraph layout.
type Option func(*config) error

// Provider sets the metrics provider. Without it, a metrics.FaceProvider
// without registered fonts is used.
func Provider(p metrics.Provider) Option {
	return func(c *config) error {
		if p == nil {
			return fmt.Errorf("metrics provider must not be nil: %w", textlayout.ErrInvalidArgument)
		}
		c.provider = p
		return nil
	}
}

// MaxLines limits the number of lines of all paragraphs taken together.
func MaxLines(n int) Option {
	return func(c *config) error {
		if n <= 0 {
			return fmt.Errorf("max lines must be positive, is %d: %w", n, textlayout.ErrInvalidArgument)
		}
		c.maxLines = n
		return nil
	}
}

// SoftWrap enables or disables wrapping of lines at the layout width.
func SoftWrap(b bool) Option {
	return func(c *config) error {
		c.softWrap = b
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

// Concurrent lays out paragraphs on up to workers goroutines. Paragraphs
// sharing a line budget (see MaxLines) are measured concurrently but broken
// into lines one after the other.
func Concurrent(workers int) Option {
	return func(c *config) error {
		if workers <= 0 {
			return fmt.Errorf("number of workers must be positive, is %d: %w", workers, textlayout.ErrInvalidArgument)
		}
		c.workers = workers
		return nil
	}
}

// Progress publishes a ProgressEvent to cast for every paragraph laid out.
// Events may arrive out of paragraph order with concurrent layout. The caster
// is not closed by the layout.
func Progress(cast *caster.Caster) Option {
	return func(c *config) error {
		c.progress = cast
		return nil
	}
}

// ProgressEvent reports a finished paragraph.
type ProgressEvent struct {
	Paragraph int              // index of the paragraph
	Range     textlayout.Range // global text range of the paragraph
	Lines     int              // number of lines of the paragraph
	Total     int              // number of paragraphs of the text
}

func (e ProgressEvent) String() string {
	return fmt.Sprintf("paragraph %d/%d %v: %d lines", e.Paragraph+1, e.Total, e.Range, e.Lines)
}
