package styled

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/npillmayer/textlayout"
)

// --- Optional values -------------------------------------------------------

// Optional is a value which may be left unspecified. The zero value is unset.
type Optional[T any] struct {
	value T
	set   bool
}

// Some creates an optional value which is set to v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

// Get returns the value and a flag telling whether it has been set.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set
}

// IsSet is true if a value has been specified.
func (o Optional[T]) IsSet() bool {
	return o.set
}

// Or returns the value if set, def otherwise.
func (o Optional[T]) Or(def T) T {
	if o.set {
		return o.value
	}
	return def
}

// Over returns o if set, fallback otherwise.
func (o Optional[T]) Over(fallback Optional[T]) Optional[T] {
	if o.set {
		return o
	}
	return fallback
}

func (o Optional[T]) String() string {
	if !o.set {
		return "unset"
	}
	return fmt.Sprintf("%v", o.value)
}

// --- Character styles ------------------------------------------------------

// Weight is a font weight on the usual 100…900 scale. 0 means unset.
type Weight uint16

// Some common font weights.
const (
	WeightUnset  Weight = 0
	WeightThin   Weight = 100
	WeightLight  Weight = 300
	WeightNormal Weight = 400
	WeightMedium Weight = 500
	WeightBold   Weight = 700
	WeightBlack  Weight = 900
)

// Slant selects upright or italic glyphs.
type Slant uint8

// Slants. SlantUnset lets a style inherit the slant.
const (
	SlantUnset Slant = iota
	SlantNormal
	SlantItalic
)

func (s Slant) String() string {
	switch s {
	case SlantNormal:
		return "normal"
	case SlantItalic:
		return "italic"
	}
	return "unset"
}

// Feature is an OpenType feature setting, e.g. {"liga", 0} to switch off
// standard ligatures.
type Feature struct {
	Tag   string
	Value int
}

// TextStyle is a character-level style. Every attribute may be left unset
// (its zero value), in which case it is inherited when styles are resolved.
type TextStyle struct {
	Family        string           // font family name
	Size          float64          // font size in logical units
	SizeScale     float64          // multiplier for the font size in effect
	Weight        Weight           // font weight
	Slant         Slant            // upright or italic
	Color         Optional[color.NRGBA]
	LetterSpacing Optional[float64] // extra space after every grapheme
	Features      []Feature        // merged by tag
}

// IsZero is true for a style without any attribute set.
func (ts TextStyle) IsZero() bool {
	return ts.Family == "" && ts.Size == 0 && ts.SizeScale == 0 && ts.Weight == 0 &&
		ts.Slant == SlantUnset && !ts.Color.IsSet() && !ts.LetterSpacing.IsSet() &&
		len(ts.Features) == 0
}

func (ts TextStyle) String() string {
	var b strings.Builder
	b.WriteString("TextStyle{")
	if ts.Family != "" {
		fmt.Fprintf(&b, " family=%s", ts.Family)
	}
	if ts.Size != 0 {
		fmt.Fprintf(&b, " size=%g", ts.Size)
	}
	if ts.SizeScale != 0 {
		fmt.Fprintf(&b, " scale=%g", ts.SizeScale)
	}
	if ts.Weight != 0 {
		fmt.Fprintf(&b, " weight=%d", ts.Weight)
	}
	if ts.Slant != SlantUnset {
		fmt.Fprintf(&b, " slant=%s", ts.Slant)
	}
	if c, ok := ts.Color.Get(); ok {
		fmt.Fprintf(&b, " color=#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
	}
	if ts.LetterSpacing.IsSet() {
		fmt.Fprintf(&b, " spacing=%s", ts.LetterSpacing)
	}
	for _, f := range ts.Features {
		fmt.Fprintf(&b, " %s=%d", f.Tag, f.Value)
	}
	b.WriteString(" }")
	return b.String()
}

// SpanStyle is a text style applied to a range of text positions.
type SpanStyle struct {
	Style TextStyle
	Range textlayout.Range
}

// --- Paragraph styles ------------------------------------------------------

// Alignment is the horizontal alignment of lines within a paragraph.
type Alignment uint8

// Alignments. AlignStart and AlignEnd are relative to the direction of a line.
const (
	AlignUnset Alignment = iota
	AlignStart
	AlignEnd
	AlignLeft
	AlignRight
	AlignCenter
	AlignJustify
)

var alignmentNames = [...]string{"unset", "start", "end", "left", "right", "center", "justify"}

func (a Alignment) String() string {
	if int(a) < len(alignmentNames) {
		return alignmentNames[a]
	}
	return fmt.Sprintf("Alignment(%d)", a)
}

// DirectionPolicy tells how the base direction of a paragraph is determined.
// A paragraph must never be laid out with DirectionUnset.
type DirectionPolicy uint8

// Direction policies.
const (
	DirectionUnset DirectionPolicy = iota
	DirectionAuto                  // from the first strong character, default LTR
	DirectionLTR                   // force left-to-right
	DirectionRTL                   // force right-to-left
)

var directionNames = [...]string{"unset", "auto", "ltr", "rtl"}

func (d DirectionPolicy) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return fmt.Sprintf("DirectionPolicy(%d)", d)
}

// Indent holds the indentation of the first and of all following lines
// of a paragraph.
type Indent struct {
	FirstLine Optional[float64]
	RestLine  Optional[float64]
}

// ParagraphStyle is a style applicable to whole paragraphs.
type ParagraphStyle struct {
	Align      Alignment
	Direction  DirectionPolicy
	Indent     Indent
	LineHeight float64 // fixed line height; 0 uses font metrics
}

// Merge returns a paragraph style with every unset attribute of ps taken
// from fallback.
func (ps ParagraphStyle) Merge(fallback ParagraphStyle) ParagraphStyle {
	m := ps
	if m.Align == AlignUnset {
		m.Align = fallback.Align
	}
	if m.Direction == DirectionUnset {
		m.Direction = fallback.Direction
	}
	m.Indent.FirstLine = ps.Indent.FirstLine.Over(fallback.Indent.FirstLine)
	m.Indent.RestLine = ps.Indent.RestLine.Over(fallback.Indent.RestLine)
	if m.LineHeight == 0 {
		m.LineHeight = fallback.LineHeight
	}
	return m
}

func (ps ParagraphStyle) String() string {
	return fmt.Sprintf("ParagraphStyle{align=%s dir=%s indent=%s/%s lineheight=%g}",
		ps.Align, ps.Direction, ps.Indent.FirstLine, ps.Indent.RestLine, ps.LineHeight)
}

// ParagraphSpan is a paragraph style applied to a range of text positions.
type ParagraphSpan struct {
	Style ParagraphStyle
	Range textlayout.Range
}
