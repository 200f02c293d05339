package inline

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/npillmayer/textlayout/styled"
)

// Style is a set of inline formats, as found in HTML markup.
type Style int

// Some standard text formats
const (
	PlainStyle Style = 0
	BoldStyle  Style = 1 << iota
	ItalicsStyle
	StrongStyle
	EmStyle
	SmallStyle
	BigStyle
	MarkedStyle
)

const styleCount = 7

var styleNames = [...]string{"b", "i", "strong", "em", "small", "big", "mark"}

// MarkColor is the text color of marked text.
var MarkColor = color.NRGBA{R: 0xb0, G: 0x60, B: 0x00, A: 0xff}

// StyleFromHTMLName returns the style for an HTML element name, or
// PlainStyle for elements without inline formatting.
func StyleFromHTMLName(name string) Style {
	for i, n := range styleNames {
		if n == name {
			return Style(1 << (i + 1))
		}
	}
	return PlainStyle
}

// Add combines a style with another style.
func (s Style) Add(other Style) Style {
	return s | other
}

// Minus removes the formats of other from s.
func (s Style) Minus(other Style) Style {
	return s & ^other
}

// Has is true if s contains all the formats of other.
func (s Style) Has(other Style) bool {
	return s&other == other
}

func (s Style) String() string {
	if s == PlainStyle {
		return "plain"
	}
	var names []string
	for i := range styleCount {
		if s&(1<<(i+1)) != 0 {
			names = append(names, styleNames[i])
		}
	}
	if len(names) == 0 {
		return fmt.Sprintf("Style(%d)", int(s))
	}
	return strings.Join(names, "+")
}

// TextStyle translates s to a character style. Bold and strong text get a bold
// weight, italics and emphasis an italic slant. Small and big text are scaled
// by 0.8 and 1.2.
func (s Style) TextStyle() styled.TextStyle {
	var ts styled.TextStyle
	if s.Has(BoldStyle) || s.Has(StrongStyle) {
		ts.Weight = styled.WeightBold
	}
	if s.Has(ItalicsStyle) || s.Has(EmStyle) {
		ts.Slant = styled.SlantItalic
	}
	switch {
	case s.Has(SmallStyle) && !s.Has(BigStyle):
		ts.SizeScale = 0.8
	case s.Has(BigStyle) && !s.Has(SmallStyle):
		ts.SizeScale = 1.2
	}
	if s.Has(MarkedStyle) {
		ts.Color = styled.Some(MarkColor)
	}
	return ts
}
