package multipara

import (
	"fmt"
	"sort"

	"github.com/npillmayer/textlayout"
	"github.com/npillmayer/textlayout/bidirun"
	"github.com/npillmayer/textlayout/paragraph"
)

func (l *Layout) checkOffset(i int, inclusive bool) error {
	if i < 0 || i > l.n || (i == l.n && !inclusive) {
		return fmt.Errorf("text position %d for text of length %d: %w", i, l.n, textlayout.ErrIndexOutOfRange)
	}
	return nil
}

// locate finds the paragraph owning text position i and the position local to
// it. A position at the boundary of two paragraphs belongs to the second one.
// Positions after the last paragraph laid out are mapped to its end, with
// truncated set.
func (l *Layout) locate(i int) (p *Placed, local int, truncated bool) {
	last := &l.paras[len(l.paras)-1]
	if i >= last.Range.End {
		return last, last.Len(), last.Range.End < l.n
	}
	k := sort.Search(len(l.paras), func(k int) bool {
		return l.paras[k].Range.End > i
	})
	return &l.paras[k], i - l.paras[k].Range.Start, false
}

// line finds the paragraph containing global line g.
func (l *Layout) line(g int) (*Placed, int, error) {
	if g < 0 || g >= l.lines {
		return nil, 0, fmt.Errorf("line %d of %d: %w", g, l.lines, textlayout.ErrIndexOutOfRange)
	}
	k := sort.Search(len(l.paras), func(k int) bool {
		return l.paras[k].Line+l.paras[k].LineCount() > g
	})
	return &l.paras[k], g - l.paras[k].Line, nil
}

// LineCount returns the number of lines of all paragraphs laid out.
func (l *Layout) LineCount() int {
	return l.lines
}

// LineForOffset returns the global line containing text position i, which
// must be in [0, Len()).
func (l *Layout) LineForOffset(i int) (int, error) {
	if err := l.checkOffset(i, false); err != nil {
		return 0, err
	}
	p, local, truncated := l.locate(i)
	if truncated {
		return l.lines - 1, nil
	}
	k, err := p.LineForOffset(local)
	return p.Line + k, err
}

// BoundingBox returns the box of the character at position i, which must be
// in [0, Len()). Characters cut off by a line limit have an empty box at the
// end of the last line.
func (l *Layout) BoundingBox(i int) (textlayout.Rect, error) {
	if err := l.checkOffset(i, false); err != nil {
		return textlayout.Rect{}, err
	}
	p, local, truncated := l.locate(i)
	if truncated {
		r, err := p.CursorRect(local)
		x := (r.Left + r.Right) / 2
		return textlayout.Rect{Left: x, Top: r.Top + p.Top, Right: x, Bottom: r.Bottom + p.Top}, err
	}
	r, err := p.BoundingBox(local)
	return r.Translate(0, p.Top), err
}

// PrimaryHorizontal returns the x position of a caret at position i, which
// must be in [0, Len()]. See paragraph.Layout.PrimaryHorizontal.
func (l *Layout) PrimaryHorizontal(i int) (float64, error) {
	if err := l.checkOffset(i, true); err != nil {
		return 0, err
	}
	p, local, _ := l.locate(i)
	return p.PrimaryHorizontal(local)
}

// SecondaryHorizontal returns the alternative x position of a caret at
// position i, which must be in [0, Len()].
func (l *Layout) SecondaryHorizontal(i int) (float64, error) {
	if err := l.checkOffset(i, true); err != nil {
		return 0, err
	}
	p, local, _ := l.locate(i)
	return p.SecondaryHorizontal(local)
}

// CursorRect returns the rectangle of a caret at position i, which must be
// in [0, Len()].
func (l *Layout) CursorRect(i int) (textlayout.Rect, error) {
	if err := l.checkOffset(i, true); err != nil {
		return textlayout.Rect{}, err
	}
	p, local, _ := l.locate(i)
	r, err := p.CursorRect(local)
	return r.Translate(0, p.Top), err
}

// OffsetForPosition returns the caret position closest to point (x, y).
// Points outside the layout are clamped.
func (l *Layout) OffsetForPosition(x, y float64) int {
	p, _, _ := l.line(l.LineForVerticalPosition(y))
	return p.Range.Start + p.OffsetForPosition(x, y-p.Top)
}

// PathForRange returns the selection highlight for the text in [start, end).
// See paragraph.Layout.PathForRange.
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
	for _, p := range l.paras {
		r := p.Range.Intersect(sel)
		if r.IsEmpty() {
			continue
		}
		r = r.Shift(-p.Range.Start)
		rects, err := p.PathForRange(r.Start, r.End)
		if err != nil {
			return nil, err
		}
		for _, rect := range rects {
			path = append(path, rect.Translate(0, p.Top))
		}
	}
	return path, nil
}

// WordBoundary returns the range of the word at position i, which must be in
// [0, Len()].
func (l *Layout) WordBoundary(i int) (textlayout.Range, error) {
	if err := l.checkOffset(i, true); err != nil {
		return textlayout.Range{}, err
	}
	p, local, truncated := l.locate(i)
	if truncated {
		return textlayout.Range{Start: i, End: i}, nil
	}
	r, err := p.WordBoundary(local)
	return r.Shift(p.Range.Start), err
}

// ParagraphDirection returns the base direction at position i, which must be
// in [0, Len()].
func (l *Layout) ParagraphDirection(i int) (bidirun.Direction, error) {
	if err := l.checkOffset(i, true); err != nil {
		return bidirun.LeftToRight, err
	}
	p, local, _ := l.locate(i)
	return p.ParagraphDirection(local)
}

// BidiRunDirection returns the visual direction of the character at
// position i, which must be in [0, Len()).
func (l *Layout) BidiRunDirection(i int) (bidirun.Direction, error) {
	if err := l.checkOffset(i, false); err != nil {
		return bidirun.LeftToRight, err
	}
	p, local, truncated := l.locate(i)
	if truncated {
		return p.ParagraphDirection(local)
	}
	return p.BidiRunDirection(local)
}

// --- Line queries ----------------------------------------------------------

// LineForVerticalPosition returns the global line at vertical position y.
// Positions outside the layout are clamped.
func (l *Layout) LineForVerticalPosition(y float64) int {
	k := sort.Search(len(l.paras), func(k int) bool {
		return y < l.paras[k].Top+l.paras[k].Height()
	})
	if k == len(l.paras) {
		return l.lines - 1
	}
	p := &l.paras[k]
	return p.Line + p.LineForVerticalPosition(y-p.Top)
}

// LineStart returns the first text position of global line g.
func (l *Layout) LineStart(g int) (int, error) {
	p, k, err := l.line(g)
	if err != nil {
		return 0, err
	}
	i, err := p.LineStart(k)
	return p.Range.Start + i, err
}

// LineEnd returns the end of global line g. If visibleEnd is set, trailing
// whitespace and text hidden by an ellipsis are excluded.
func (l *Layout) LineEnd(g int, visibleEnd bool) (int, error) {
	p, k, err := l.line(g)
	if err != nil {
		return 0, err
	}
	i, err := p.LineEnd(k, visibleEnd)
	return p.Range.Start + i, err
}

// LineTop returns the top of global line g.
func (l *Layout) LineTop(g int) (float64, error) {
	return l.vertical(g, (*paragraph.Layout).LineTop)
}

// LineBottom returns the bottom of global line g.
func (l *Layout) LineBottom(g int) (float64, error) {
	return l.vertical(g, (*paragraph.Layout).LineBottom)
}

// LineBaseline returns the baseline of global line g.
func (l *Layout) LineBaseline(g int) (float64, error) {
	return l.vertical(g, (*paragraph.Layout).LineBaseline)
}

func (l *Layout) vertical(g int, q func(*paragraph.Layout, int) (float64, error)) (float64, error) {
	p, k, err := l.line(g)
	if err != nil {
		return 0, err
	}
	y, err := q(p.Layout, k)
	return p.Top + y, err
}

func (l *Layout) horizontal(g int, q func(*paragraph.Layout, int) (float64, error)) (float64, error) {
	p, k, err := l.line(g)
	if err != nil {
		return 0, err
	}
	return q(p.Layout, k)
}

// LineLeft returns the left edge of the content of global line g.
func (l *Layout) LineLeft(g int) (float64, error) {
	return l.horizontal(g, (*paragraph.Layout).LineLeft)
}

// LineRight returns the right edge of the content of global line g.
func (l *Layout) LineRight(g int) (float64, error) {
	return l.horizontal(g, (*paragraph.Layout).LineRight)
}

// LineWidth returns the width of the content of global line g.
func (l *Layout) LineWidth(g int) (float64, error) {
	return l.horizontal(g, (*paragraph.Layout).LineWidth)
}

// LineHeight returns the height of global line g.
func (l *Layout) LineHeight(g int) (float64, error) {
	return l.horizontal(g, (*paragraph.Layout).LineHeight)
}

// IsLineEllipsized is true if part of global line g is replaced by an ellipsis.
func (l *Layout) IsLineEllipsized(g int) (bool, error) {
	p, k, err := l.line(g)
	if err != nil {
		return false, err
	}
	return p.IsLineEllipsized(k)
}

// Segments returns the visible segments of global line g from left to right,
// with global text ranges.
func (l *Layout) Segments(g int) ([]paragraph.Segment, error) {
	p, k, err := l.line(g)
	if err != nil {
		return nil, err
	}
	segs, err := p.Segments(k)
	for i := range segs {
		segs[i].Range = segs[i].Range.Shift(p.Range.Start)
	}
	return segs, err
}
