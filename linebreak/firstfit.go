package linebreak

import (
	"fmt"
	"math"

	"github.com/npillmayer/textlayout"
)

// Overflow is the policy for content not fitting into the available space.
type Overflow uint8

// Overflow policies. Clip and Visible result in identical line spans; they
// differ only for renderers.
const (
	OverflowClip Overflow = iota
	OverflowEllipsis
	OverflowVisible
)

func (o Overflow) String() string {
	switch o {
	case OverflowEllipsis:
		return "ellipsis"
	case OverflowVisible:
		return "visible"
	}
	return "clip"
}

// Params configures line breaking.
type Params struct {
	Width         float64  // available width, may be +Inf
	SoftWrap      bool     // wrap at break opportunities
	MaxLines      int      // 0 for unlimited
	Overflow      Overflow // overflow policy
	EllipsisWidth float64  // advance of the ellipsis glyph
	FirstIndent   float64  // indent of the first line
	RestIndent    float64  // indent of all subsequent lines
}

func (p Params) indent(line int) float64 {
	if line == 0 {
		return p.FirstIndent
	}
	return p.RestIndent
}

// Span is a line of text as produced by the line breaker.
type Span struct {
	textlayout.Range         // logical extent of the line, including trailing whitespace
	Width            float64 // visual width, excluding hanging whitespace and indent
	Indent           float64 // indent of this line
	Hard             bool    // line is terminated by a hard line separator
	VisibleEnd       int     // end of the line without trailing whitespace and separators
	EllipsisAt       int     // position where an ellipsis replaces the text, or -1
}

// IsEllipsized is true if part of the line's text is replaced by an ellipsis.
func (s Span) IsEllipsized() bool {
	return s.EllipsisAt >= 0
}

func (s Span) String() string {
	h := ""
	if s.Hard {
		h = "⏎"
	}
	return fmt.Sprintf("%v%s w=%.2f", s.Range, h, s.Width)
}

// Result is the outcome of line breaking.
type Result struct {
	Lines             []Span
	DidExceedMaxLines bool
}

const epsilon = 1e-6

// exceeds is true if w is wider than avail, tolerating floating point noise.
func exceeds(w, avail float64) bool {
	return w > avail+epsilon*math.Max(1, math.Abs(avail))
}

// Break breaks a paragraph of text into lines, using greedy first-fit.
//
// advances holds the advance width for every text position (UTF-16 code unit).
// Lines are broken at line break opportunities as soon as the next piece of
// text does not fit. If a single word is wider than the available width, it
// is broken between grapheme clusters. Trailing whitespace of a line hangs:
// it is part of the line's range but does not contribute to its width.
// Hard line separators always break a line. A separator at the end of the text
// starts a final empty line.
//
// If MaxLines is set and exceeded, lines are truncated and
// Result.DidExceedMaxLines is set. With OverflowEllipsis, the last line is
// shortened at a grapheme cluster boundary to make room for the ellipsis. Without
// soft wrapping, OverflowEllipsis also shortens every line wider than the
// available width.
func Break(b *Boundaries, advances []float64, p Params) (*Result, error) {
	if math.IsNaN(p.Width) || p.Width <= 0 {
		return nil, fmt.Errorf("line width must be positive, is %g: %w", p.Width, textlayout.ErrInvalidArgument)
	}
	if p.MaxLines < 0 {
		return nil, fmt.Errorf("max lines must not be negative, is %d: %w", p.MaxLines, textlayout.ErrInvalidArgument)
	}
	if len(advances) != b.Len() {
		return nil, fmt.Errorf("have %d advances for %d text positions: %w",
			len(advances), b.Len(), textlayout.ErrInvalidArgument)
	}
	res := &Result{}
	n, start := b.Len(), 0
	for {
		if p.MaxLines > 0 && len(res.Lines) == p.MaxLines {
			res.DidExceedMaxLines = true
			break
		}
		indent := p.indent(len(res.Lines))
		end, hard := b.fitLine(advances, start, p.Width-indent, p.SoftWrap)
		res.Lines = append(res.Lines, b.span(advances, start, end, indent, hard))
		start = end
		if start >= n && !hard {
			break
		}
	}
	if p.Overflow == OverflowEllipsis {
		for i := range res.Lines {
			l := &res.Lines[i]
			last := i == len(res.Lines)-1 && res.DidExceedMaxLines
			if last || (!p.SoftWrap && exceeds(l.Width, p.Width-l.Indent)) {
				b.ellipsize(l, advances, p.Width-l.Indent, p.EllipsisWidth)
			}
		}
	}
	tracer().Debugf("broke %d positions into %d lines, exceeded=%v", n, len(res.Lines), res.DidExceedMaxLines)
	return res, nil
}

// fitLine finds the end of a line starting at start. A line always contains at
// least one grapheme cluster, if there is any text left.
func (b *Boundaries) fitLine(advances []float64, start int, avail float64, soft bool) (end int, hard bool) {
	w, brk := 0.0, -1
	for i := start; i < b.n; {
		j := b.NextCluster(i)
		if b.sep[i] {
			return j, true
		}
		cw := sum(advances[i:j])
		if soft && i > start && !b.space[i] && exceeds(w+cw, avail) {
			if brk > start {
				return brk, false
			}
			return i, false
		}
		w += cw
		if b.brk[j] == CanBreak {
			brk = j
		}
		i = j
	}
	return b.n, false
}

func (b *Boundaries) span(advances []float64, start, end int, indent float64, hard bool) Span {
	vis := end
	for vis > start && b.space[vis-1] {
		vis--
	}
	return Span{
		Range:      textlayout.Range{Start: start, End: end},
		Width:      sum(advances[start:vis]),
		Indent:     indent,
		Hard:       hard,
		VisibleEnd: vis,
		EllipsisAt: -1,
	}
}

// ellipsize cuts the visible part of a line at a grapheme cluster boundary to
// make room for an ellipsis. Whitespace in front of the ellipsis is dropped.
func (b *Boundaries) ellipsize(l *Span, advances []float64, avail, ellipsis float64) {
	limit := avail - ellipsis
	cut, w := l.Start, 0.0
	for i := l.Start; i < l.VisibleEnd; {
		j := b.NextCluster(i)
		cw := sum(advances[i:j])
		if exceeds(w+cw, limit) {
			break
		}
		w += cw
		cut, i = j, j
	}
	for cut > l.Start && b.space[cut-1] {
		cut--
		w -= advances[cut]
	}
	l.EllipsisAt = cut
	l.VisibleEnd = cut
	l.Width = w + ellipsis
	tracer().Debugf("line %v ellipsized at %d", l.Range, cut)
}

// --- Intrinsics ------------------------------------------------------------

// MinIntrinsicWidth returns the width of the widest piece of text between line
// break opportunities, including its trailing whitespace. It is the narrowest
// width a paragraph can be wrapped to without breaking words.
func MinIntrinsicWidth(b *Boundaries, advances []float64) float64 {
	var widest, w float64
	for i := 0; i < b.n; i++ {
		if b.brk[i] != NoBreak {
			widest, w = math.Max(widest, w), 0
		}
		if !b.sep[i] {
			w += advances[i]
		}
	}
	return math.Max(widest, w)
}

// MaxIntrinsicWidth returns the width of the widest line if the text is
// broken at hard line separators only. Trailing whitespace is not counted.
func MaxIntrinsicWidth(b *Boundaries, advances []float64) float64 {
	var widest float64
	for start := 0; start < b.n; {
		end, _ := b.fitLine(advances, start, math.Inf(1), false)
		widest = math.Max(widest, b.span(advances, start, end, 0, false).Width)
		start = end
	}
	return widest
}

func sum(a []float64) (s float64) {
	for _, x := range a {
		s += x
	}
	return
}
