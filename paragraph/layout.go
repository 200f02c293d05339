package paragraph

import (
	"fmt"
	"math"
	"slices"

	"github.com/npillmayer/textlayout"
	"github.com/npillmayer/textlayout/bidirun"
	"github.com/npillmayer/textlayout/linebreak"
	"github.com/npillmayer/textlayout/metrics"
	"github.com/npillmayer/textlayout/styled"
)

// Line is a line of a paragraph layout. Vertical positions are absolute,
// measured from the top of the paragraph.
type Line struct {
	textlayout.Range                   // logical extent, including trailing whitespace and separators
	VisibleEnd       int               // end of the visible text, without trailing whitespace
	Runs             []bidirun.Run     // directional runs of the visible text, in visual order
	Direction        bidirun.Direction // base direction, used for start/end alignment
	Left             float64           // x position of the left edge of the content
	Width            float64           // width of the content, hanging whitespace excluded
	Indent           float64
	Top              float64
	Height           float64
	Baseline         float64
	Ascent           float64
	Descent          float64
	Hard             bool    // line ends with a hard line separator
	EllipsisAt       int     // text position replaced by an ellipsis, or -1
	EllipsisLeft     float64 // x position of the ellipsis, if any
}

// Right returns the x position of the right edge of the line's content.
func (l Line) Right() float64 {
	return l.Left + l.Width
}

// Bottom returns the y position of the bottom of the line.
func (l Line) Bottom() float64 {
	return l.Top + l.Height
}

// IsEllipsized is true if part of the line's text is replaced by an ellipsis.
func (l Line) IsEllipsized() bool {
	return l.EllipsisAt >= 0
}

func (l Line) String() string {
	return fmt.Sprintf("line%v x=%.2f w=%.2f y=%.2f h=%.2f", l.Range, l.Left, l.Width, l.Top, l.Height)
}

// Layout is a paragraph broken into lines, with every character placed.
// A Layout is immutable.
type Layout struct {
	in       *Intrinsics
	cfg      config
	c        Constraints
	lines    []Line
	xs       []float64 // left edge of every text position
	ws       []float64 // width of every text position
	levels   []uint8   // embedding level of every text position, after rule L1
	lineOf   []int32   // line index of every text position
	width    float64
	height   float64
	exceeded bool
}

// Layout breaks the paragraph into lines for given constraints and places
// every character.
//
// Width is the width of the widest line including indentation, unless option
// FillWidth is set. Lines are aligned within this width. Height is the sum of
// line heights, subject to the height constraints.
func (in *Intrinsics) Layout(c Constraints, opts ...Option) (*Layout, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	res, err := linebreak.Break(in.bounds, in.advances, linebreak.Params{
		Width:         c.Width,
		SoftWrap:      cfg.softWrap,
		MaxLines:      cfg.maxLines,
		Overflow:      cfg.overflow,
		EllipsisWidth: in.ellipsis,
		FirstIndent:   in.firstIndent(),
		RestIndent:    in.restIndent(),
	})
	if err != nil {
		return nil, err
	}
	n := in.ix.Len()
	l := &Layout{
		in:       in,
		cfg:      cfg,
		c:        c,
		lines:    make([]Line, len(res.Lines)),
		xs:       make([]float64, n),
		ws:       make([]float64, n),
		levels:   make([]uint8, n),
		lineOf:   make([]int32, n),
		exceeded: res.DidExceedMaxLines,
	}
	for _, span := range res.Lines {
		l.width = max(l.width, span.Indent+span.Width)
	}
	if cfg.fillWidth && !math.IsInf(c.Width, 1) {
		l.width = c.Width
	}
	for i := range l.lineOf {
		l.lineOf[i] = -1
	}
	y := 0.0
	for k, span := range res.Lines {
		l.placeLine(k, span, k == len(res.Lines)-1)
		l.setVertical(k, y)
		y += l.lines[k].Height
	}
	l.placeTruncated()
	l.height = max(y, c.MinHeight)
	if c.MaxHeight > 0 {
		l.height = min(l.height, c.MaxHeight)
	}
	tracer().Debugf("paragraph layout: %d lines, %.2f × %.2f, exceeded=%v", len(l.lines), l.width, l.height, l.exceeded)
	return l, nil
}

// placeLine computes the horizontal position of every character of a line.
// Characters are placed in visual order; characters of right-to-left runs
// are placed from right to left.
func (l *Layout) placeLine(k int, span linebreak.Span, last bool) {
	in := l.in
	line := &l.lines[k]
	*line = Line{
		Range:      span.Range,
		VisibleEnd: span.VisibleEnd,
		Direction:  in.bidi.LineDirection(span.Start),
		Width:      span.Width,
		Indent:     span.Indent,
		Hard:       span.Hard,
		EllipsisAt: span.EllipsisAt,
	}
	shown := span.End
	if span.IsEllipsized() {
		shown = span.EllipsisAt
	}
	line.Runs = in.bidi.Reorder(textlayout.Range{Start: span.Start, End: shown})
	align := resolveAlignment(in.pstyle.Align, line.Direction)
	var extra float64 // added to every inner space for justification
	if in.pstyle.Align == styled.AlignJustify && !last && !span.IsEllipsized() && !math.IsInf(l.width, 1) {
		spaces := 0
		for i := span.Start; i < span.VisibleEnd; i++ {
			if l.isInnerSpace(i) {
				spaces++
			}
		}
		if slack := l.width - line.Indent - line.Width; spaces > 0 && slack > 0 {
			extra = slack / float64(spaces)
			line.Width += slack
		}
	}
	x := 0.0
	place := func(i int, level uint8) {
		w := in.advances[i]
		if extra > 0 && i < span.VisibleEnd && l.isInnerSpace(i) {
			w += extra
		}
		l.xs[i], l.ws[i], l.levels[i], l.lineOf[i] = x, w, level, int32(k)
		x += w
	}
	for _, run := range line.Runs {
		if run.Direction() == bidirun.RightToLeft {
			for i := run.End - 1; i >= run.Start; i-- {
				place(i, run.Level)
			}
		} else {
			for i := run.Start; i < run.End; i++ {
				place(i, run.Level)
			}
		}
	}
	if span.IsEllipsized() { // hidden text collapses into the ellipsis
		line.EllipsisLeft = x
		if line.Direction == bidirun.RightToLeft {
			for i := span.Start; i < shown; i++ {
				l.xs[i] += in.ellipsis
			}
			line.EllipsisLeft = 0
		}
		for i := shown; i < span.End; i++ {
			l.xs[i], l.ws[i], l.levels[i], l.lineOf[i] = line.EllipsisLeft, 0, line.Direction.Level(), int32(k)
		}
	}
	left := math.Inf(1)
	for i := span.Start; i < line.VisibleEnd; i++ {
		left = min(left, l.xs[i])
	}
	if span.IsEllipsized() {
		left = min(left, line.EllipsisLeft)
	}
	if math.IsInf(left, 1) {
		left = 0
		if line.Direction == bidirun.RightToLeft { // only hanging whitespace, placed left of the origin
			left = x
		}
	}
	line.Left = l.alignOffset(line, align)
	shift := line.Left - left
	for i := span.Start; i < span.End; i++ {
		l.xs[i] += shift
	}
	line.EllipsisLeft += shift
}

// isInnerSpace is true for whitespace which may be stretched for justification.
func (l *Layout) isInnerSpace(i int) bool {
	return l.in.bounds.IsSpace(i) && !l.in.bounds.IsSeparator(i)
}

// resolveAlignment maps start/end alignment to left/right, depending on the
// direction of a line. Justified lines are start aligned.
func resolveAlignment(a styled.Alignment, dir bidirun.Direction) styled.Alignment {
	switch a {
	case styled.AlignLeft, styled.AlignRight, styled.AlignCenter:
		return a
	case styled.AlignEnd:
		if dir == bidirun.RightToLeft {
			return styled.AlignLeft
		}
		return styled.AlignRight
	}
	if dir == bidirun.RightToLeft {
		return styled.AlignRight
	}
	return styled.AlignLeft
}

// alignOffset returns the x position of a line's content. Indentation is on the
// leading side of a line.
func (l *Layout) alignOffset(line *Line, align styled.Alignment) float64 {
	lo, hi := line.Indent, l.width
	if line.Direction == bidirun.RightToLeft {
		lo, hi = 0, l.width-line.Indent
	}
	switch align {
	case styled.AlignRight:
		return hi - line.Width
	case styled.AlignCenter:
		return lo + (hi-lo-line.Width)/2
	}
	return lo
}

// setVertical computes the vertical metrics of a line from the styles of its
// text. Empty lines use the style at their position.
func (l *Layout) setVertical(k int, top float64) {
	in := l.in
	line := &l.lines[k]
	m := in.vmetrics[in.timeline.StyleIndex(line.Start)]
	for i := line.Start + 1; i < line.End; i++ {
		m = m.Max(in.vmetrics[in.timeline.StyleIndex(i)])
	}
	line.Top, line.Ascent, line.Descent = top, m.Ascent, m.Descent
	line.Height = m.Height()
	line.Baseline = top + m.Ascent
	if lh := in.pstyle.LineHeight; lh > 0 { // fixed height, content centered
		line.Height = lh
		line.Baseline = top + (lh-m.Ascent-m.Descent)/2 + m.Ascent
	}
}

// placeTruncated assigns text cut off by a line limit to the end of the last line.
func (l *Layout) placeTruncated() {
	last := &l.lines[len(l.lines)-1]
	x := last.Right()
	if last.IsEllipsized() {
		x = last.EllipsisLeft
	} else if last.Direction == bidirun.RightToLeft {
		x = last.Left
	}
	for i := range l.lineOf {
		if l.lineOf[i] < 0 {
			l.xs[i], l.ws[i], l.levels[i] = x, 0, last.Direction.Level()
			l.lineOf[i] = int32(len(l.lines) - 1)
		}
	}
}

// --- Accessors -------------------------------------------------------------

// Width returns the width of the layout.
func (l *Layout) Width() float64 {
	return l.width
}

// Height returns the height of the layout.
func (l *Layout) Height() float64 {
	return l.height
}

// DidExceedMaxLines is true if lines have been cut off because of a line limit.
func (l *Layout) DidExceedMaxLines() bool {
	return l.exceeded
}

// FirstBaseline returns the baseline of the first line.
func (l *Layout) FirstBaseline() float64 {
	return l.lines[0].Baseline
}

// LastBaseline returns the baseline of the last line.
func (l *Layout) LastBaseline() float64 {
	return l.lines[len(l.lines)-1].Baseline
}

// Lines returns the lines of the layout. There is always at least one line.
func (l *Layout) Lines() []Line {
	return slices.Clone(l.lines)
}

// Len returns the length of the text in UTF-16 code units.
func (l *Layout) Len() int {
	return l.in.ix.Len()
}

// Intrinsics returns the width-independent measurements the layout has been
// computed from.
func (l *Layout) Intrinsics() *Intrinsics {
	return l.in
}

// Constraints returns the constraints the layout has been computed for.
func (l *Layout) Constraints() Constraints {
	return l.c
}

// StyleAt returns the resolved style at text position i.
func (l *Layout) StyleAt(i int) *styled.Resolved {
	return l.in.timeline.At(i)
}

// LineMetricsAt returns the vertical metrics of the style at position i.
func (l *Layout) LineMetricsAt(i int) metrics.LineMetrics {
	return l.in.vmetrics[l.in.timeline.StyleIndex(i)]
}
