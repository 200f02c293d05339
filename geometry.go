package textlayout

import "fmt"

// Range is a half-open interval [Start, End) of UTF-16 text positions.
type Range struct {
	Start, End int
}

// Len returns the number of positions in r.
func (r Range) Len() int {
	return r.End - r.Start
}

// IsEmpty is true for ranges without any position.
func (r Range) IsEmpty() bool {
	return r.End <= r.Start
}

// Contains is true if position i is inside r.
func (r Range) Contains(i int) bool {
	return i >= r.Start && i < r.End
}

// Intersect returns the intersection of r and other. If the ranges do not
// overlap, the result is empty.
func (r Range) Intersect(other Range) Range {
	s, e := max(r.Start, other.Start), min(r.End, other.End)
	if e < s {
		e = s
	}
	return Range{Start: s, End: e}
}

// Shift moves r by d positions.
func (r Range) Shift(d int) Range {
	return Range{Start: r.Start + d, End: r.End + d}
}

func (r Range) String() string {
	return fmt.Sprintf("[%d…%d)", r.Start, r.End)
}

// Rect is an axis-aligned rectangle in logical units. Y grows downwards.
type Rect struct {
	Left, Top, Right, Bottom float64
}

// Width returns the horizontal extent of r.
func (r Rect) Width() float64 {
	return r.Right - r.Left
}

// Height returns the vertical extent of r.
func (r Rect) Height() float64 {
	return r.Bottom - r.Top
}

// Translate moves r by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{
		Left:   r.Left + dx,
		Top:    r.Top + dy,
		Right:  r.Right + dx,
		Bottom: r.Bottom + dy,
	}
}

// Union returns the smallest rectangle enclosing r and other.
func (r Rect) Union(other Rect) Rect {
	return Rect{
		Left:   min(r.Left, other.Left),
		Top:    min(r.Top, other.Top),
		Right:  max(r.Right, other.Right),
		Bottom: max(r.Bottom, other.Bottom),
	}
}

func (r Rect) String() string {
	return fmt.Sprintf("(%g,%g)-(%g,%g)", r.Left, r.Top, r.Right, r.Bottom)
}
