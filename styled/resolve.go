package styled

import (
	"fmt"
	"image/color"
	"iter"
	"slices"
	"strings"

	"github.com/npillmayer/textlayout"
)

// Defaults for attributes which neither the base style nor any override set.
const (
	DefaultFamily = "sans-serif"
	DefaultSize   = 14.0
)

// DefaultColor is used if no style sets a color.
var DefaultColor = color.NRGBA{A: 0xff}

// Resolved is a text style with every attribute set.
type Resolved struct {
	Family        string
	Size          float64 // effective size, scales applied
	Weight        Weight
	Slant         Slant
	Color         color.NRGBA
	LetterSpacing float64
	Features      []Feature
}

// IsBold is a convenience predicate for weights of 600 and above.
func (r *Resolved) IsBold() bool {
	return r.Weight >= 600
}

// IsItalic is true for italic slant.
func (r *Resolved) IsItalic() bool {
	return r.Slant == SlantItalic
}

func (r *Resolved) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s/%g/%d/%s/#%02x%02x%02x%02x/%g", r.Family, r.Size, r.Weight, r.Slant,
		r.Color.R, r.Color.G, r.Color.B, r.Color.A, r.LetterSpacing)
	for _, f := range r.Features {
		fmt.Fprintf(&b, "/%s=%d", f.Tag, f.Value)
	}
	return b.String()
}

// Timeline holds one resolved style for every position of a text.
// Styles are kept in a de-duplicated table and every position stores an
// index into it. A Timeline is immutable.
type Timeline struct {
	table []*Resolved // table[0] is the resolved base style
	index []int32     // one entry per UTF-16 code unit
}

// Resolve merges a base style with a list of position-ranged overrides into a
// style timeline for a text of the given length.
//
// Later overrides take precedence over earlier ones where they overlap.
// Resolution is per attribute: an override setting only the font size does not
// clear a color set by an earlier override. A SizeScale multiplies the size in
// effect at the point where the override is applied. Attributes left unset fall
// back to base, then to the package defaults.
//
// Ranges which are inverted or exceed [0, length] result in
// textlayout.ErrInvalidRange.
func Resolve(base TextStyle, overrides []SpanStyle, length int) (*Timeline, error) {
	if length < 0 {
		return nil, fmt.Errorf("text length %d: %w", length, textlayout.ErrInvalidArgument)
	}
	cuts := []int{0, length}
	for _, o := range overrides {
		if o.Range.Start > o.Range.End || o.Range.Start < 0 || o.Range.End > length {
			return nil, fmt.Errorf("style range %v for text of length %d: %w", o.Range, length,
				textlayout.ErrInvalidRange)
		}
		cuts = append(cuts, o.Range.Start, o.Range.End)
	}
	slices.Sort(cuts)
	cuts = slices.Compact(cuts)
	//
	tl := &Timeline{index: make([]int32, length)}
	keys := make(map[string]int32)
	tl.intern(apply(base, nil, textlayout.Range{}), keys)
	for k := 0; k+1 < len(cuts); k++ {
		seg := textlayout.Range{Start: cuts[k], End: cuts[k+1]}
		if seg.IsEmpty() {
			continue
		}
		inx := tl.intern(apply(base, overrides, seg), keys)
		for i := seg.Start; i < seg.End; i++ {
			tl.index[i] = inx
		}
	}
	tracer().Debugf("resolved %d style overrides into %d distinct styles", len(overrides), len(tl.table))
	return tl, nil
}

// apply folds every override covering seg into the base style, in list order.
func apply(base TextStyle, overrides []SpanStyle, seg textlayout.Range) *Resolved {
	res := &Resolved{
		Family:        DefaultFamily,
		Size:          DefaultSize,
		Weight:        WeightNormal,
		Slant:         SlantNormal,
		Color:         DefaultColor,
		LetterSpacing: 0,
	}
	merge(res, base)
	for _, o := range overrides {
		if o.Range.Start <= seg.Start && o.Range.End >= seg.End {
			merge(res, o.Style)
		}
	}
	return res
}

func merge(res *Resolved, ts TextStyle) {
	if ts.Family != "" {
		res.Family = ts.Family
	}
	if ts.Size > 0 {
		res.Size = ts.Size
	}
	if ts.SizeScale > 0 {
		res.Size *= ts.SizeScale
	}
	if ts.Weight != WeightUnset {
		res.Weight = ts.Weight
	}
	if ts.Slant != SlantUnset {
		res.Slant = ts.Slant
	}
	res.Color = ts.Color.Or(res.Color)
	res.LetterSpacing = ts.LetterSpacing.Or(res.LetterSpacing)
	for _, f := range ts.Features {
		i := slices.IndexFunc(res.Features, func(g Feature) bool { return g.Tag == f.Tag })
		if i < 0 {
			res.Features = append(res.Features, f)
		} else {
			res.Features[i] = f
		}
	}
}

func (tl *Timeline) intern(r *Resolved, keys map[string]int32) int32 {
	key := r.String()
	if inx, ok := keys[key]; ok {
		return inx
	}
	inx := int32(len(tl.table))
	tl.table = append(tl.table, r)
	keys[key] = inx
	return inx
}

// Len returns the number of text positions covered by the timeline.
func (tl *Timeline) Len() int {
	return len(tl.index)
}

// Base returns the resolved base style, i.e. the style of text not covered
// by any override.
func (tl *Timeline) Base() *Resolved {
	return tl.table[0]
}

// At returns the resolved style at text position i. Positions outside the
// text get the style of the nearest position, or the base style for an
// empty text.
func (tl *Timeline) At(i int) *Resolved {
	if len(tl.index) == 0 {
		return tl.table[0]
	}
	i = max(0, min(i, len(tl.index)-1))
	return tl.table[tl.index[i]]
}

// StyleIndex returns the table index of the style at position i. Positions with
// equal indices share the same style.
func (tl *Timeline) StyleIndex(i int) int {
	if len(tl.index) == 0 {
		return 0
	}
	i = max(0, min(i, len(tl.index)-1))
	return int(tl.index[i])
}

// StyleCount returns the number of distinct resolved styles.
func (tl *Timeline) StyleCount() int {
	return len(tl.table)
}

// Runs iterates over maximal runs of text sharing one resolved style.
func (tl *Timeline) Runs() iter.Seq2[textlayout.Range, *Resolved] {
	return func(yield func(textlayout.Range, *Resolved) bool) {
		start := 0
		for i := 1; i <= len(tl.index); i++ {
			if i < len(tl.index) && tl.index[i] == tl.index[start] {
				continue
			}
			if !yield(textlayout.Range{Start: start, End: i}, tl.table[tl.index[start]]) {
				return
			}
			start = i
		}
	}
}
