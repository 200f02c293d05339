package metrics

import (
	"fmt"
	"unicode"

	"github.com/npillmayer/textlayout/styled"
)

// Run is a piece of text in uniform style and direction.
type Run struct {
	Text  string
	Style *styled.Resolved
	RTL   bool
}

// LineMetrics are the vertical metrics of a font at a given size.
// Descent is positive, measured downwards from the baseline.
type LineMetrics struct {
	Ascent  float64
	Descent float64
	LineGap float64
}

// Height returns the distance between the baselines of two consecutive lines.
func (m LineMetrics) Height() float64 {
	return m.Ascent + m.Descent + m.LineGap
}

// Max returns the maximum of two metrics, attribute by attribute.
func (m LineMetrics) Max(other LineMetrics) LineMetrics {
	return LineMetrics{
		Ascent:  max(m.Ascent, other.Ascent),
		Descent: max(m.Descent, other.Descent),
		LineGap: max(m.LineGap, other.LineGap),
	}
}

func (m LineMetrics) String() string {
	return fmt.Sprintf("[↑%.2f ↓%.2f +%.2f]", m.Ascent, m.Descent, m.LineGap)
}

// Descriptor selects a font.
type Descriptor struct {
	Family string
	Weight styled.Weight
	Slant  styled.Slant
}

// DescriptorOf returns the font descriptor for a resolved style.
func DescriptorOf(style *styled.Resolved) Descriptor {
	return Descriptor{Family: style.Family, Weight: style.Weight, Slant: style.Slant}
}

func (d Descriptor) String() string {
	return fmt.Sprintf("%s/%d/%s", d.Family, d.Weight, d.Slant)
}

// Font is an opaque handle for a loaded font.
type Font interface {
	Descriptor() Descriptor
}

// Provider is the source of font metrics for layout.
//
// MeasureAdvances returns one advance width for every rune of run.Text, in
// logical order. If shaping combines several runes into one glyph, the glyph's
// advance is attributed to the first rune of the cluster and the others get 0.
//
// LineMetrics returns the vertical metrics for a style.
//
// LoadFont resolves a descriptor to a font. Providers may substitute a
// fallback font, reporting an error only if no font is available at all.
//
// Implementations must be safe for concurrent use.
type Provider interface {
	MeasureAdvances(run Run) []float64
	LineMetrics(style *styled.Resolved) LineMetrics
	LoadFont(d Descriptor) (Font, error)
}

// IsZeroWidth is true for runes which never occupy horizontal space:
// combining marks, format and control characters, and hard line separators.
// Tabs are measured like spaces.
func IsZeroWidth(r rune) bool {
	if r == '\t' {
		return false
	}
	return unicode.In(r, unicode.Mn, unicode.Me, unicode.Cf, unicode.Cc, unicode.Zl, unicode.Zp)
}

type descriptorFont Descriptor

func (f descriptorFont) Descriptor() Descriptor {
	return Descriptor(f)
}
