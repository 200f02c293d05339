package paragraph

import (
	"fmt"
	"math"
	"sort"

	"github.com/npillmayer/textlayout"
	"github.com/npillmayer/textlayout/bidirun"
	"github.com/npillmayer/textlayout/styled"
)

// checkOffset validates a text position. If inclusive is set, the position
// one past the end of the text is valid.
func (l *Layout) checkOffset(i int, inclusive bool) error {
	n := l.Len()
	if i < 0 || i > n || (i == n && !inclusive) {
		return fmt.Errorf("text position %d for text of length %d: %w", i, n, textlayout.ErrIndexOutOfRange)
	}
	return nil
}

func (l *Layout) checkLine(k int) error {
	if k < 0 || k >= len(l.lines) {
		return fmt.Errorf("line %d of %d: %w", k, len(l.lines), textlayout.ErrIndexOutOfRange)
	}
	return nil
}

// caretLine returns the line a caret at position i is displayed on.
// The caret at the end of the text is on the last line.
func (l *Layout) caretLine(i int) int {
	if i >= l.Len() {
		return len(l.lines) - 1
	}
	return int(l.lineOf[i])
}

// --- Character queries -----------------------------------------------------

// LineForOffset returns the index of the line containing text position i,
// which must be in [0, Len()).
func (l *Layout) LineForOffset(i int) (int, error) {
	if err := l.checkOffset(i, false); err != nil {
		return 0, err
	}
	return int(l.lineOf[i]), nil
}

// BoundingBox returns the box of the character at position i, which must be
// in [0, Len()). The box spans the full height of the character's line.
// Characters hidden by an ellipsis or cut off by a line limit have an empty box.
func (l *Layout) BoundingBox(i int) (textlayout.Rect, error) {
	if err := l.checkOffset(i, false); err != nil {
		return textlayout.Rect{}, err
	}
	line := &l.lines[l.lineOf[i]]
	return textlayout.Rect{Left: l.xs[i], Top: line.Top, Right: l.xs[i] + l.ws[i], Bottom: line.Bottom()}, nil
}

// PrimaryHorizontal returns the x position of a caret at position i, which
// must be in [0, Len()].
//
// At the boundary of two runs with different embedding levels, a caret
// position has two candidate x positions. The primary one belongs to the run
// with the lower level, i.e. the run closer to the paragraph direction.
// Everywhere else, primary and secondary position are identical.
func (l *Layout) PrimaryHorizontal(i int) (float64, error) {
	if err := l.checkOffset(i, true); err != nil {
		return 0, err
	}
	return l.horizontal(i, true), nil
}

// SecondaryHorizontal returns the alternative x position of a caret at
// position i, which must be in [0, Len()]. See PrimaryHorizontal.
func (l *Layout) SecondaryHorizontal(i int) (float64, error) {
	if err := l.checkOffset(i, true); err != nil {
		return 0, err
	}
	return l.horizontal(i, false), nil
}

func (l *Layout) horizontal(i int, primary bool) float64 {
	line := &l.lines[l.caretLine(i)]
	prev, next := -1, -1
	if i > line.Start {
		prev = i - 1
	}
	if i < line.End {
		next = i
	}
	switch {
	case prev < 0 && next < 0:
		if line.Direction == bidirun.RightToLeft {
			return line.Right()
		}
		return line.Left
	case prev < 0:
		return l.leadingEdge(next)
	case next < 0:
		return l.trailingEdge(prev)
	}
	lp, ln := l.levels[prev], l.levels[next]
	if lp == ln || primary == (ln < lp) {
		return l.leadingEdge(next)
	}
	return l.trailingEdge(prev)
}

// leadingEdge is the edge of a character where reading starts.
func (l *Layout) leadingEdge(i int) float64 {
	if l.levels[i]&1 == 1 {
		return l.xs[i] + l.ws[i]
	}
	return l.xs[i]
}

func (l *Layout) trailingEdge(i int) float64 {
	if l.levels[i]&1 == 1 {
		return l.xs[i]
	}
	return l.xs[i] + l.ws[i]
}

// CursorRect returns the rectangle of a caret at position i, which must be
// in [0, Len()]. It is centered at the primary horizontal position.
func (l *Layout) CursorRect(i int) (textlayout.Rect, error) {
	if err := l.checkOffset(i, true); err != nil {
		return textlayout.Rect{}, err
	}
	x := l.horizontal(i, true)
	line := &l.lines[l.caretLine(i)]
	w := l.cfg.cursorWidth / 2
	return textlayout.Rect{Left: x - w, Top: line.Top, Right: x + w, Bottom: line.Bottom()}, nil
}

// OffsetForPosition returns the caret position closest to point (x, y).
// Points outside the layout are clamped to the nearest line and character.
// A point on the leading half of a character maps to the position before it,
// a point on its trailing half to the position after it; for right-to-left
// characters the halves are mirrored.
func (l *Layout) OffsetForPosition(x, y float64) int {
	k := l.LineForVerticalPosition(y)
	line := &l.lines[k]
	end := line.End
	if line.IsEllipsized() {
		end = line.EllipsisAt
	}
	b := l.in.bounds
	hit, first, last := -1, -1, -1
	minL, maxR := math.Inf(1), math.Inf(-1)
	for i := line.Start; i < end; i = b.NextCluster(i) {
		if b.IsSeparator(i) {
			continue
		}
		cl, cr := l.clusterExtent(i)
		if cr <= cl {
			continue
		}
		if x >= cl && x < cr {
			hit = i
			break
		}
		if cl < minL {
			minL, first = cl, i
		}
		if cr > maxR {
			maxR, last = cr, i
		}
	}
	if hit < 0 {
		switch {
		case first < 0:
			return line.Start
		case x < minL:
			hit = first
		default:
			hit = last
		}
	}
	cl, cr := l.clusterExtent(hit)
	after := x >= (cl+cr)/2
	if l.levels[hit]&1 == 1 {
		after = !after
	}
	off := hit
	if after {
		off = b.NextCluster(hit)
	}
	if off >= line.End && k < len(l.lines)-1 { // stay on this line
		off = b.PrevCluster(line.End)
	}
	return off
}

// clusterExtent returns the horizontal extent of the grapheme cluster
// starting at position i.
func (l *Layout) clusterExtent(i int) (left, right float64) {
	left, right = math.Inf(1), math.Inf(-1)
	for j := i; j < l.in.bounds.NextCluster(i); j++ {
		left = min(left, l.xs[j])
		right = max(right, l.xs[j]+l.ws[j])
	}
	return
}

// PathForRange returns the selection highlight for the text in [start, end).
// Every directional run of a line intersecting the range contributes one
// rectangle spanning the height of the line; rectangles are ordered by line
// and, within a line, from left to right. Text hidden by an ellipsis is not
// part of the path. The path for an empty range is empty.
func (l *Layout) PathForRange(start, end int) ([]textlayout.Rect, error) {
	if err := l.checkOffset(start, true); err != nil {
		return nil, err
	}
	if err := l.checkOffset(end, true); err != nil {
		return nil, err
	}
	if start > end {
		return nil, fmt.Errorf("selection [%d,%d): %w", start, end, textlayout.ErrInvalidRange)
	}
	path := []textlayout.Rect{}
	sel := textlayout.Range{Start: start, End: end}
	for k := range l.lines {
		line := &l.lines[k]
		lr := line.Range.Intersect(sel)
		if lr.IsEmpty() {
			continue
		}
		for _, run := range line.Runs {
			r := run.Range.Intersect(lr)
			if r.IsEmpty() {
				continue
			}
			rect := textlayout.Rect{Left: math.Inf(1), Top: line.Top, Right: math.Inf(-1), Bottom: line.Bottom()}
			for i := r.Start; i < r.End; i++ {
				rect.Left = min(rect.Left, l.xs[i])
				rect.Right = max(rect.Right, l.xs[i]+l.ws[i])
			}
			path = append(path, rect)
		}
	}
	return path, nil
}

// WordBoundary returns the range of the word at position i, which must be in
// [0, Len()]. Words are found by Unicode word segmentation, independent of
// line breaks. Outside of words, the range is empty.
func (l *Layout) WordBoundary(i int) (textlayout.Range, error) {
	if err := l.checkOffset(i, true); err != nil {
		return textlayout.Range{}, err
	}
	return l.in.bounds.WordAt(i), nil
}

// ParagraphDirection returns the base direction of the line block containing
// position i, which must be in [0, Len()].
func (l *Layout) ParagraphDirection(i int) (bidirun.Direction, error) {
	if err := l.checkOffset(i, true); err != nil {
		return bidirun.LeftToRight, err
	}
	return l.in.bidi.LineDirection(i), nil
}

// BidiRunDirection returns the visual direction of the character at
// position i, which must be in [0, Len()).
func (l *Layout) BidiRunDirection(i int) (bidirun.Direction, error) {
	if err := l.checkOffset(i, false); err != nil {
		return bidirun.LeftToRight, err
	}
	return l.in.bidi.DirectionAt(i), nil
}

// --- Line queries ----------------------------------------------------------

// LineCount returns the number of lines. It is at least 1.
func (l *Layout) LineCount() int {
	return len(l.lines)
}

// LineForVerticalPosition returns the line at vertical position y.
// Positions above the first line or below the last one are clamped.
func (l *Layout) LineForVerticalPosition(y float64) int {
	for k := range l.lines {
		if y < l.lines[k].Bottom() {
			return k
		}
	}
	return len(l.lines) - 1
}

// LineStart returns the first text position of line k.
func (l *Layout) LineStart(k int) (int, error) {
	if err := l.checkLine(k); err != nil {
		return 0, err
	}
	return l.lines[k].Start, nil
}

// LineEnd returns the end of line k. If visibleEnd is set, trailing whitespace
// and text hidden by an ellipsis are excluded.
func (l *Layout) LineEnd(k int, visibleEnd bool) (int, error) {
	if err := l.checkLine(k); err != nil {
		return 0, err
	}
	if visibleEnd {
		return l.lines[k].VisibleEnd, nil
	}
	return l.lines[k].End, nil
}

// LineTop returns the top of line k.
func (l *Layout) LineTop(k int) (float64, error) {
	if err := l.checkLine(k); err != nil {
		return 0, err
	}
	return l.lines[k].Top, nil
}

// LineBottom returns the bottom of line k.
func (l *Layout) LineBottom(k int) (float64, error) {
	if err := l.checkLine(k); err != nil {
		return 0, err
	}
	return l.lines[k].Bottom(), nil
}

// LineBaseline returns the baseline of line k.
func (l *Layout) LineBaseline(k int) (float64, error) {
	if err := l.checkLine(k); err != nil {
		return 0, err
	}
	return l.lines[k].Baseline, nil
}

// LineLeft returns the left edge of the content of line k.
func (l *Layout) LineLeft(k int) (float64, error) {
	if err := l.checkLine(k); err != nil {
		return 0, err
	}
	return l.lines[k].Left, nil
}

// LineRight returns the right edge of the content of line k.
func (l *Layout) LineRight(k int) (float64, error) {
	if err := l.checkLine(k); err != nil {
		return 0, err
	}
	return l.lines[k].Right(), nil
}

// LineWidth returns the width of the content of line k.
func (l *Layout) LineWidth(k int) (float64, error) {
	if err := l.checkLine(k); err != nil {
		return 0, err
	}
	return l.lines[k].Width, nil
}

// LineHeight returns the height of line k.
func (l *Layout) LineHeight(k int) (float64, error) {
	if err := l.checkLine(k); err != nil {
		return 0, err
	}
	return l.lines[k].Height, nil
}

// IsLineEllipsized is true if part of line k is replaced by an ellipsis.
func (l *Layout) IsLineEllipsized(k int) (bool, error) {
	if err := l.checkLine(k); err != nil {
		return false, err
	}
	return l.lines[k].IsEllipsized(), nil
}

// --- Drawing ---------------------------------------------------------------

// Segment is a piece of a line which may be drawn in one go: text of uniform
// style and direction, or the ellipsis.
type Segment struct {
	textlayout.Range
	Style    *styled.Resolved
	RTL      bool
	Ellipsis bool // segment is the ellipsis, its range is empty
	X        float64
	Width    float64
}

func (s Segment) String() string {
	return fmt.Sprintf("segment%v x=%.2f w=%.2f rtl=%v", s.Range, s.X, s.Width, s.RTL)
}

// Segments returns the visible segments of line k from left to right.
// Hanging whitespace and line separators are not part of any segment.
func (l *Layout) Segments(k int) ([]Segment, error) {
	if err := l.checkLine(k); err != nil {
		return nil, err
	}
	line := &l.lines[k]
	tl := l.in.timeline
	visible := textlayout.Range{Start: line.Start, End: line.VisibleEnd}
	var segs []Segment
	for _, run := range line.Runs {
		r := run.Range.Intersect(visible)
		for i := r.Start; i < r.End; {
			j := i + 1
			for j < r.End && tl.StyleIndex(j) == tl.StyleIndex(i) {
				j++
			}
			seg := Segment{
				Range: textlayout.Range{Start: i, End: j},
				Style: tl.At(i),
				RTL:   run.Direction() == bidirun.RightToLeft,
				X:     math.Inf(1),
			}
			right := math.Inf(-1)
			for u := i; u < j; u++ {
				seg.X = min(seg.X, l.xs[u])
				right = max(right, l.xs[u]+l.ws[u])
			}
			seg.Width = right - seg.X
			segs = append(segs, seg)
			i = j
		}
	}
	if line.IsEllipsized() {
		segs = append(segs, Segment{
			Range:    textlayout.Range{Start: line.EllipsisAt, End: line.EllipsisAt},
			Style:    tl.Base(),
			RTL:      line.Direction == bidirun.RightToLeft,
			Ellipsis: true,
			X:        line.EllipsisLeft,
			Width:    l.in.ellipsis,
		})
	}
	sort.SliceStable(segs, func(a, b int) bool {
		return segs[a].X < segs[b].X
	})
	return segs, nil
}
